/*
Package x contains helpers shared by all extensions.

Subpackages implement the extensions themselves: sigs authenticates
transactions, bank holds balances and moves coins, and boxes is the
password-gated escrow.
*/
package x
