/*
Package weave defines the interfaces used throughout the application, such as
storage, transactions, messages and handlers, together with the context
helpers and the address scheme shared by all extensions.

Look into this package to get a brief overview of the building blocks. The
implementations live in sibling packages: store provides the key value
stores, orm the buckets built on top of them, app the ABCI glue and x/* the
extensions.
*/
package weave
