/*
Package errors implements the error handling used across junobox.

Every error returned to a client must wrap one of the registered root errors.
Root errors carry an ABCI code so that clients can tell failures apart, while
the description may be freely extended with Wrap and Wrapf at every layer.

Extensions declare their own root errors using Register. Codes must be unique
for the whole application, registering a code twice panics.

Wrap attaches a stacktrace taken from github.com/pkg/errors the first time an
error is wrapped. Use %+v to print it.

	%s	the error message
	%v	the error message
	%+v	the error message followed by the stacktrace of its creation
*/
package errors
