/*
Package app contains the standard implementation of an ABCI application
built from weave handlers.

StoreApp keeps the committed state, serves queries and handles the chain
lifecycle. BaseApp embeds it and dispatches CheckTx and DeliverTx to a
handler, usually a Router wrapped in ChainDecorators.
*/
package app
