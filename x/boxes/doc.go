/*
Package boxes implements a password gated escrow.

A creator locks funds of a single denomination in a box, protected by the
SHA-256 digest of a secret. Anyone who knows the secret can open the box
and is paid the locked funds. Funds attached to a create request are held
by the module account until a box is opened.
*/
package boxes
