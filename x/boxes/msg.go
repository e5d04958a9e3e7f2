package boxes

import (
	"github.com/iov-one/junobox/codec"
	"github.com/iov-one/junobox/coin"
	"github.com/iov-one/junobox/errors"
	"github.com/iov-one/junobox/migration"
	"github.com/iov-one/junobox/weave"
)

func init() {
	migration.MustRegister(1, &InitMsg{}, migration.NoModification)
	migration.MustRegister(1, &CreateBoxesMsg{}, migration.NoModification)
	migration.MustRegister(1, &OpenBoxMsg{}, migration.NoModification)
}

const (
	pathInitMsg        = "boxes/init"
	pathCreateBoxesMsg = "boxes/create"
	pathOpenBoxMsg     = "boxes/open"

	// maxBoxesPerMsg limits the work a single transaction can request.
	maxBoxesPerMsg = 256
)

// InitMsg initializes the escrow. The signer becomes the owner.
type InitMsg struct {
	Metadata     *weave.Metadata `json:"metadata"`
	Denom        string          `json:"denom"`
	RejectReopen bool            `json:"reject_reopen,omitempty"`
}

var _ weave.Msg = (*InitMsg)(nil)

func (InitMsg) Path() string {
	return pathInitMsg
}

func (m *InitMsg) GetMetadata() *weave.Metadata {
	return m.Metadata
}

func (m *InitMsg) Validate() error {
	var errs error
	errs = errors.Append(errs, errors.Wrap(m.Metadata.Validate(), "metadata"))
	if !coin.IsDenom(m.Denom) {
		errs = errors.Append(errs, errors.Wrapf(errors.ErrCurrency, "invalid denom %q", m.Denom))
	}
	return errs
}

func (m *InitMsg) Marshal() ([]byte, error) {
	enc := codec.NewEncoder()
	enc.Message(1, m.Metadata)
	enc.String(2, m.Denom)
	enc.Bool(3, m.RejectReopen)
	return enc.Result()
}

func (m *InitMsg) Unmarshal(raw []byte) error {
	*m = InitMsg{}
	return codec.Decode(raw, func(f *codec.Field) (err error) {
		switch f.Num {
		case 1:
			m.Metadata = &weave.Metadata{}
			return f.Message(m.Metadata)
		case 2:
			m.Denom, err = f.String()
		case 3:
			m.RejectReopen, err = f.Bool()
		}
		return err
	})
}

// CreateBoxesMsg creates boxes paid by the attached funds.
type CreateBoxesMsg struct {
	Metadata *weave.Metadata `json:"metadata"`
	Boxes    []BoxSpec       `json:"boxes"`
	Funds    coin.Coins      `json:"funds"`
}

var _ weave.Msg = (*CreateBoxesMsg)(nil)

func (CreateBoxesMsg) Path() string {
	return pathCreateBoxesMsg
}

func (m *CreateBoxesMsg) GetMetadata() *weave.Metadata {
	return m.Metadata
}

// Validate checks the message format only. Payment is validated against
// the configuration when the message is processed.
func (m *CreateBoxesMsg) Validate() error {
	var errs error
	errs = errors.Append(errs, errors.Wrap(m.Metadata.Validate(), "metadata"))
	switch n := len(m.Boxes); {
	case n == 0:
		errs = errors.Append(errs, errors.Wrap(errors.ErrInput, "no boxes"))
	case n > maxBoxesPerMsg:
		errs = errors.Append(errs, errors.Wrapf(errors.ErrInput, "more than %d boxes", maxBoxesPerMsg))
	}
	for i, b := range m.Boxes {
		errs = errors.Append(errs, errors.Wrapf(b.Validate(), "box %d", i))
	}
	for i, c := range m.Funds {
		if c == nil {
			errs = errors.Append(errs, errors.Wrapf(errors.ErrEmpty, "funds %d", i))
			continue
		}
		errs = errors.Append(errs, errors.Wrapf(c.Validate(), "funds %d", i))
	}
	return errs
}

func (m *CreateBoxesMsg) Marshal() ([]byte, error) {
	enc := codec.NewEncoder()
	enc.Message(1, m.Metadata)
	for i := range m.Boxes {
		enc.Message(2, &m.Boxes[i])
	}
	for _, c := range m.Funds {
		enc.Message(3, c)
	}
	return enc.Result()
}

func (m *CreateBoxesMsg) Unmarshal(raw []byte) error {
	*m = CreateBoxesMsg{}
	return codec.Decode(raw, func(f *codec.Field) error {
		switch f.Num {
		case 1:
			m.Metadata = &weave.Metadata{}
			return f.Message(m.Metadata)
		case 2:
			var b BoxSpec
			if err := f.Message(&b); err != nil {
				return err
			}
			m.Boxes = append(m.Boxes, b)
		case 3:
			var c coin.Coin
			if err := f.Message(&c); err != nil {
				return err
			}
			m.Funds = append(m.Funds, &c)
		}
		return nil
	})
}

// OpenBoxMsg opens a box with the plaintext secret.
type OpenBoxMsg struct {
	Metadata *weave.Metadata `json:"metadata"`
	BoxID    uint64          `json:"box_id"`
	Password string          `json:"password"`
}

var _ weave.Msg = (*OpenBoxMsg)(nil)

func (OpenBoxMsg) Path() string {
	return pathOpenBoxMsg
}

func (m *OpenBoxMsg) GetMetadata() *weave.Metadata {
	return m.Metadata
}

func (m *OpenBoxMsg) Validate() error {
	var errs error
	errs = errors.Append(errs, errors.Wrap(m.Metadata.Validate(), "metadata"))
	if m.BoxID == 0 {
		errs = errors.Append(errs, errors.Wrap(errors.ErrEmpty, "box id"))
	}
	return errs
}

func (m *OpenBoxMsg) Marshal() ([]byte, error) {
	enc := codec.NewEncoder()
	enc.Message(1, m.Metadata)
	enc.Uvarint(2, m.BoxID)
	enc.String(3, m.Password)
	return enc.Result()
}

func (m *OpenBoxMsg) Unmarshal(raw []byte) error {
	*m = OpenBoxMsg{}
	return codec.Decode(raw, func(f *codec.Field) (err error) {
		switch f.Num {
		case 1:
			m.Metadata = &weave.Metadata{}
			return f.Message(m.Metadata)
		case 2:
			m.BoxID, err = f.Uvarint()
		case 3:
			m.Password, err = f.String()
		}
		return err
	})
}
