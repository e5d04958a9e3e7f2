package migration

import (
	"github.com/iov-one/junobox/codec"
	"github.com/iov-one/junobox/errors"
	"github.com/iov-one/junobox/orm"
	"github.com/iov-one/junobox/weave"
)

// MyMsg is a schema versioned message used in tests only.
type MyMsg struct {
	Metadata *weave.Metadata
	Content  string
	Err      error
}

var _ weave.Msg = (*MyMsg)(nil)

func (m *MyMsg) Path() string                 { return "test/mymsg" }
func (m *MyMsg) GetMetadata() *weave.Metadata { return m.Metadata }
func (m *MyMsg) Validate() error              { return m.Err }

func (m *MyMsg) Marshal() ([]byte, error) {
	enc := codec.NewEncoder()
	enc.Message(1, m.Metadata)
	enc.String(2, m.Content)
	return enc.Result()
}

func (m *MyMsg) Unmarshal(raw []byte) error {
	*m = MyMsg{}
	return codec.Decode(raw, func(f *codec.Field) (err error) {
		switch f.Num {
		case 1:
			m.Metadata = &weave.Metadata{}
			return f.Message(m.Metadata)
		case 2:
			m.Content, err = f.String()
		}
		return err
	})
}

// MyModel is a schema versioned model used in tests only.
type MyModel struct {
	MyMsg
}

var _ orm.Model = (*MyModel)(nil)

func (m *MyModel) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return err
	}
	if m.Content == "" {
		return errors.Wrap(errors.ErrEmpty, "content")
	}
	return nil
}

func (m *MyModel) Copy() orm.CloneableData {
	cpy := *m
	cpy.Metadata = m.Metadata.Copy()
	return &cpy
}
