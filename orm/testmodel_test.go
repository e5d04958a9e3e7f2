package orm

import (
	"github.com/iov-one/junobox/codec"
	"github.com/iov-one/junobox/errors"
)

// note is a minimal model used to exercise buckets.
type note struct {
	Text  string
	Count uint64
}

var _ Model = (*note)(nil)

func (n *note) Validate() error {
	if n.Text == "" {
		return errors.Wrap(errors.ErrEmpty, "text")
	}
	return nil
}

func (n *note) Copy() CloneableData {
	cpy := *n
	return &cpy
}

func (n *note) Marshal() ([]byte, error) {
	enc := codec.NewEncoder()
	enc.String(1, n.Text)
	enc.Uvarint(2, n.Count)
	return enc.Result()
}

func (n *note) Unmarshal(raw []byte) error {
	*n = note{}
	return codec.Decode(raw, func(f *codec.Field) (err error) {
		switch f.Num {
		case 1:
			n.Text, err = f.String()
		case 2:
			n.Count, err = f.Uvarint()
		}
		return err
	})
}

// other is a model of a different type than note.
type other struct{ note }

func (o *other) Copy() CloneableData {
	cpy := *o
	return &cpy
}
