package weave

import (
	"github.com/iov-one/junobox/codec"
	"github.com/iov-one/junobox/errors"
)

// Metadata is embedded in every model and message. Schema declares the
// version of the entity layout, see the migration package.
type Metadata struct {
	Schema uint32 `json:"schema"`
}

// Validate returns an error if the metadata is not complete.
func (m *Metadata) Validate() error {
	if m == nil {
		return errors.Wrap(errors.ErrMetadata, "missing metadata")
	}
	if m.Schema < 1 {
		return errors.Wrap(errors.ErrMetadata, "schema version is required")
	}
	return nil
}

// Copy returns a copy of this object. This method is helpful when
// implementing orm.CloneableData interface to make a copy of the header.
func (m *Metadata) Copy() *Metadata {
	if m == nil {
		return nil
	}
	cpy := *m
	return &cpy
}

// Marshal serializes metadata into the protobuf format.
func (m *Metadata) Marshal() ([]byte, error) {
	enc := codec.NewEncoder()
	enc.Uvarint(1, uint64(m.Schema))
	return enc.Result()
}

// Unmarshal loads metadata from its protobuf representation.
func (m *Metadata) Unmarshal(raw []byte) error {
	*m = Metadata{}
	return codec.Decode(raw, func(f *codec.Field) (err error) {
		switch f.Num {
		case 1:
			m.Schema, err = f.Uint32()
		}
		return err
	})
}
