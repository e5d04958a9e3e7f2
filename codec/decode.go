package codec

import (
	"fmt"
	"math"
	"reflect"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/junobox/errors"
)

// Unmarshaller is implemented by all models that can be embedded as a
// nested message.
type Unmarshaller interface {
	Unmarshal([]byte) error
}

// Field is a single decoded field, passed to the callback of Decode. Only
// one of the accessors is valid, depending on the wire type of the field.
type Field struct {
	Num  int
	wire uint64
	num  uint64
	raw  []byte
}

// Uvarint returns the field value as an unsigned integer.
func (f *Field) Uvarint() (uint64, error) {
	if f.wire != wireVarint {
		return 0, f.wrongWire("varint")
	}
	return f.num, nil
}

// Uint32 returns the field value as an unsigned 32 bit integer.
func (f *Field) Uint32() (uint32, error) {
	v, err := f.Uvarint()
	if err != nil {
		return 0, err
	}
	if v > math.MaxUint32 {
		return 0, Errorf(f, "value %d overflows uint32", v)
	}
	return uint32(v), nil
}

// Varint returns the field value as a signed integer.
func (f *Field) Varint() (int64, error) {
	v, err := f.Uvarint()
	return int64(v), err
}

// Bool returns the field value as a boolean.
func (f *Field) Bool() (bool, error) {
	v, err := f.Uvarint()
	return v != 0, err
}

// Bytes returns a copy of a length prefixed field value.
func (f *Field) Bytes() ([]byte, error) {
	if f.wire != wireBytes {
		return nil, f.wrongWire("bytes")
	}
	cpy := make([]byte, len(f.raw))
	copy(cpy, f.raw)
	return cpy, nil
}

// String returns a length prefixed field value as a string.
func (f *Field) String() (string, error) {
	if f.wire != wireBytes {
		return "", f.wrongWire("string")
	}
	return string(f.raw), nil
}

// Message decodes a nested message into given destination.
func (f *Field) Message(dest Unmarshaller) error {
	if f.wire != wireBytes {
		return f.wrongWire("message")
	}
	return dest.Unmarshal(f.raw)
}

// Uvarints returns a repeated unsigned integer field. Both packed and
// unpacked representations are accepted, as required by proto3.
func (f *Field) Uvarints() ([]uint64, error) {
	switch f.wire {
	case wireVarint:
		return []uint64{f.num}, nil
	case wireBytes:
		var vals []uint64
		buf := proto.NewBuffer(f.raw)
		for remaining := len(f.raw); remaining > 0; {
			v, err := buf.DecodeVarint()
			if err != nil {
				return nil, errors.Wrapf(errors.ErrInput, "field %d: %s", f.Num, err)
			}
			remaining -= proto.SizeVarint(v)
			vals = append(vals, v)
		}
		return vals, nil
	default:
		return nil, f.wrongWire("repeated varint")
	}
}

func (f *Field) wrongWire(want string) error {
	return errors.Wrapf(errors.ErrInput, "field %d: wire type %d is not %s", f.Num, f.wire, want)
}

// Decode reads all fields serialized in given data and passes each of them
// to the callback. Unknown fields should be ignored by the callback.
func Decode(raw []byte, fn func(*Field) error) error {
	buf := proto.NewBuffer(raw)
	for remaining := len(raw); remaining > 0; {
		key, err := buf.DecodeVarint()
		if err != nil {
			return errors.Wrapf(errors.ErrInput, "field key: %s", err)
		}
		remaining -= proto.SizeVarint(key)

		f := Field{Num: int(key >> 3), wire: key & 0x7}
		if f.Num <= 0 {
			return errors.Wrapf(errors.ErrInput, "illegal field number %d", f.Num)
		}

		switch f.wire {
		case wireVarint:
			f.num, err = buf.DecodeVarint()
			remaining -= proto.SizeVarint(f.num)
		case wireFixed64:
			f.num, err = buf.DecodeFixed64()
			remaining -= 8
		case wireFixed32:
			f.num, err = buf.DecodeFixed32()
			remaining -= 4
		case wireBytes:
			f.raw, err = buf.DecodeRawBytes(false)
			remaining -= proto.SizeVarint(uint64(len(f.raw))) + len(f.raw)
		default:
			return errors.Wrapf(errors.ErrInput, "field %d: unsupported wire type %d", f.Num, f.wire)
		}
		if err != nil {
			return errors.Wrapf(errors.ErrInput, "field %d: %s", f.Num, err)
		}
		if remaining < 0 {
			return errors.Wrap(errors.ErrInput, "unexpected end of data")
		}
		if err := fn(&f); err != nil {
			return err
		}
	}
	return nil
}

// UnknownField returns nil. It is a helper to be used in the default branch
// of the decode callback to document that unknown fields are skipped.
func UnknownField(f *Field) error {
	return nil
}

// Errorf returns an input error for a field value that cannot be accepted.
func Errorf(f *Field, format string, args ...interface{}) error {
	return errors.Wrapf(errors.ErrInput, "field %d: %s", f.Num, fmt.Sprintf(format, args...))
}

func isNil(m interface{}) bool {
	if m == nil {
		return true
	}
	v := reflect.ValueOf(m)
	return v.Kind() == reflect.Ptr && v.IsNil()
}
