/*
Package codec implements the protobuf (proto3) wire format used to persist
models and to transport messages.

Each model declares its schema in a codec.proto file next to its Go
definition and implements Marshal and Unmarshal using an Encoder and Decode.
Encoding follows proto3 rules: zero values are not written, repeated scalars
are packed, and unknown fields are skipped when decoding so that older nodes
can read newer data.
*/
package codec
