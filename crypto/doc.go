/*
Package crypto provides the key types used to authenticate transactions.

Only ed25519 is supported. Keys and signatures keep the layout of a
protobuf oneof with a single member, so that another algorithm can be added
as a new field without breaking already stored data.
*/
package crypto

// ExtensionName is used for the Condition of every public key.
const ExtensionName = "sigs"
