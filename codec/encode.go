package codec

import (
	"github.com/gogo/protobuf/proto"
)

// protobuf wire types
const (
	wireVarint  = 0
	wireFixed64 = 1
	wireBytes   = 2
	wireFixed32 = 5
)

// Marshaller is implemented by all models that can be embedded as a nested
// message.
type Marshaller interface {
	Marshal() ([]byte, error)
}

// Encoder serializes fields into the protobuf wire format. Fields must be
// written in ascending field number order to produce canonical output.
type Encoder struct {
	buf *proto.Buffer
	err error
}

// NewEncoder returns an empty encoder.
func NewEncoder() *Encoder {
	return &Encoder{buf: proto.NewBuffer(nil)}
}

func (e *Encoder) key(field int, wire uint64) {
	e.setErr(e.buf.EncodeVarint(uint64(field)<<3 | wire))
}

func (e *Encoder) setErr(err error) {
	if e.err == nil && err != nil {
		e.err = err
	}
}

// Uvarint writes an unsigned integer field. Zero value is not written.
func (e *Encoder) Uvarint(field int, v uint64) {
	if v == 0 {
		return
	}
	e.key(field, wireVarint)
	e.setErr(e.buf.EncodeVarint(v))
}

// Varint writes a signed integer field using the int64 encoding. Zero value
// is not written.
func (e *Encoder) Varint(field int, v int64) {
	e.Uvarint(field, uint64(v))
}

// Bool writes a boolean field. False is not written.
func (e *Encoder) Bool(field int, v bool) {
	if v {
		e.Uvarint(field, 1)
	}
}

// Bytes writes a length prefixed field. Empty value is not written.
func (e *Encoder) Bytes(field int, b []byte) {
	if len(b) == 0 {
		return
	}
	e.key(field, wireBytes)
	e.setErr(e.buf.EncodeRawBytes(b))
}

// RepeatedBytes writes a repeated length prefixed field. Every element is
// written, including empty ones, so that the number of elements is kept.
func (e *Encoder) RepeatedBytes(field int, vals [][]byte) {
	for _, b := range vals {
		e.key(field, wireBytes)
		e.setErr(e.buf.EncodeRawBytes(b))
	}
}

// String writes a string field. Empty value is not written.
func (e *Encoder) String(field int, s string) {
	if s == "" {
		return
	}
	e.key(field, wireBytes)
	e.setErr(e.buf.EncodeStringBytes(s))
}

// Message writes a nested message. Nil value is not written.
func (e *Encoder) Message(field int, m Marshaller) {
	if isNil(m) {
		return
	}
	raw, err := m.Marshal()
	if err != nil {
		e.setErr(err)
		return
	}
	e.key(field, wireBytes)
	e.setErr(e.buf.EncodeRawBytes(raw))
}

// PackedUvarints writes a repeated unsigned integer field in the packed
// format. Empty list is not written.
func (e *Encoder) PackedUvarints(field int, vals []uint64) {
	if len(vals) == 0 {
		return
	}
	packed := proto.NewBuffer(nil)
	for _, v := range vals {
		e.setErr(packed.EncodeVarint(v))
	}
	e.Bytes(field, packed.Bytes())
}

// Result returns the serialized data or the first error that happened
// during encoding.
func (e *Encoder) Result() ([]byte, error) {
	if e.err != nil {
		return nil, e.err
	}
	return e.buf.Bytes(), nil
}
