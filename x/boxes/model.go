package boxes

import (
	"bytes"
	"encoding/json"

	"github.com/iov-one/junobox/codec"
	"github.com/iov-one/junobox/coin"
	"github.com/iov-one/junobox/errors"
	"github.com/iov-one/junobox/migration"
	"github.com/iov-one/junobox/orm"
	"github.com/iov-one/junobox/weave"
)

const packageName = "boxes"

func init() {
	migration.MustRegister(1, &Config{}, migration.NoModification)
	migration.MustRegister(1, &Box{}, migration.NoModification)
}

// Config is created once by Initialize and never changes afterwards.
type Config struct {
	Metadata *weave.Metadata `json:"metadata"`
	// Owner is recorded only. No operation is restricted to the owner.
	Owner weave.Address `json:"owner"`
	Denom string        `json:"denom"`
	// RejectReopen makes opening an already opened box fail. By default
	// the box pays out again.
	RejectReopen bool `json:"reject_reopen,omitempty"`
}

func (c *Config) GetMetadata() *weave.Metadata {
	return c.Metadata
}

func (c *Config) Validate() error {
	var errs error
	errs = errors.Append(errs, errors.Wrap(c.Metadata.Validate(), "metadata"))
	errs = errors.Append(errs, errors.Wrap(c.Owner.Validate(), "owner"))
	if !coin.IsDenom(c.Denom) {
		errs = errors.Append(errs, errors.Wrapf(errors.ErrCurrency, "invalid denom %q", c.Denom))
	}
	return errs
}

func (c *Config) Marshal() ([]byte, error) {
	enc := codec.NewEncoder()
	enc.Message(1, c.Metadata)
	enc.Bytes(2, c.Owner)
	enc.String(3, c.Denom)
	enc.Bool(4, c.RejectReopen)
	return enc.Result()
}

func (c *Config) Unmarshal(raw []byte) error {
	*c = Config{}
	return codec.Decode(raw, func(f *codec.Field) (err error) {
		switch f.Num {
		case 1:
			c.Metadata = &weave.Metadata{}
			return f.Message(c.Metadata)
		case 2:
			c.Owner, err = f.Bytes()
		case 3:
			c.Denom, err = f.String()
		case 4:
			c.RejectReopen, err = f.Bool()
		}
		return err
	})
}

// BoxState tells if the box was opened.
type BoxState uint32

const (
	BoxUnopened BoxState = 1
	BoxOpened   BoxState = 2
)

func (s BoxState) String() string {
	switch s {
	case BoxUnopened:
		return "unopened"
	case BoxOpened:
		return "opened"
	}
	return "invalid"
}

func (s BoxState) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *BoxState) UnmarshalJSON(raw []byte) error {
	var name string
	if err := json.Unmarshal(raw, &name); err != nil {
		return errors.Wrap(errors.ErrInput, "box state must be a string")
	}
	switch name {
	case "unopened":
		*s = BoxUnopened
	case "opened":
		*s = BoxOpened
	default:
		return errors.Wrapf(errors.ErrInput, "unknown box state %q", name)
	}
	return nil
}

// Box locks funds behind a secret.
type Box struct {
	Metadata *weave.Metadata `json:"metadata"`
	Creator  weave.Address   `json:"creator"`
	Funds    coin.Amount     `json:"funds"`
	// HashedPassword is stored verbatim as provided by the creator.
	HashedPassword string   `json:"hashed_password"`
	State          BoxState `json:"state"`
	// Opener is the last address that opened the box. Empty unless the
	// state is BoxOpened.
	Opener weave.Address `json:"opener,omitempty"`
}

var _ orm.Model = (*Box)(nil)

// NewBox returns an unopened box.
func NewBox(creator weave.Address, funds coin.Amount, hashedPassword string) *Box {
	return &Box{
		Metadata:       &weave.Metadata{Schema: 1},
		Creator:        creator,
		Funds:          funds,
		HashedPassword: hashedPassword,
		State:          BoxUnopened,
	}
}

func (b *Box) GetMetadata() *weave.Metadata {
	return b.Metadata
}

// Opened returns true if anyone ever opened this box.
func (b *Box) Opened() bool {
	return b.State == BoxOpened
}

// OpenedBy returns the address of the opener and true, or nil and false
// for a box that was never opened.
func (b *Box) OpenedBy() (weave.Address, bool) {
	if b.State != BoxOpened {
		return nil, false
	}
	return b.Opener, true
}

// markOpened moves the box into the opened state. Funds are not modified.
func (b *Box) markOpened(by weave.Address) {
	b.State = BoxOpened
	b.Opener = by
}

func (b *Box) Validate() error {
	var errs error
	errs = errors.Append(errs, errors.Wrap(b.Metadata.Validate(), "metadata"))
	errs = errors.Append(errs, errors.Wrap(b.Creator.Validate(), "creator"))
	errs = errors.Append(errs, errors.Wrap(b.Funds.Validate(), "funds"))
	if b.HashedPassword == "" {
		errs = errors.Append(errs, errors.Wrap(errors.ErrEmpty, "hashed password"))
	}
	switch b.State {
	case BoxUnopened:
		if len(b.Opener) != 0 {
			errs = errors.Append(errs, errors.Wrap(errors.ErrState, "unopened box with opener"))
		}
	case BoxOpened:
		errs = errors.Append(errs, errors.Wrap(b.Opener.Validate(), "opener"))
	default:
		errs = errors.Append(errs, errors.Wrapf(errors.ErrState, "invalid state %d", b.State))
	}
	return errs
}

func (b *Box) Copy() orm.CloneableData {
	return &Box{
		Metadata:       b.Metadata.Copy(),
		Creator:        b.Creator.Clone(),
		Funds:          b.Funds,
		HashedPassword: b.HashedPassword,
		State:          b.State,
		Opener:         b.Opener.Clone(),
	}
}

func (b *Box) Marshal() ([]byte, error) {
	enc := codec.NewEncoder()
	enc.Message(1, b.Metadata)
	enc.Bytes(2, b.Creator)
	enc.Bytes(3, amountBytes(b.Funds))
	enc.String(4, b.HashedPassword)
	enc.Uvarint(5, uint64(b.State))
	enc.Bytes(6, b.Opener)
	return enc.Result()
}

func (b *Box) Unmarshal(raw []byte) error {
	*b = Box{}
	return codec.Decode(raw, func(f *codec.Field) (err error) {
		switch f.Num {
		case 1:
			b.Metadata = &weave.Metadata{}
			return f.Message(b.Metadata)
		case 2:
			b.Creator, err = f.Bytes()
		case 3:
			var raw []byte
			if raw, err = f.Bytes(); err == nil {
				err = b.Funds.SetBytes(raw)
			}
		case 4:
			b.HashedPassword, err = f.String()
		case 5:
			var s uint32
			s, err = f.Uint32()
			b.State = BoxState(s)
		case 6:
			b.Opener, err = f.Bytes()
		}
		return err
	})
}

// amountBytes returns the shortest big endian representation of the
// amount. Zero is encoded as no bytes.
func amountBytes(a coin.Amount) []byte {
	return bytes.TrimLeft(a.Bytes(), "\x00")
}

// BoxSpec describes a single box of a create request.
type BoxSpec struct {
	Funds          coin.Amount `json:"funds"`
	HashedPassword string      `json:"hashed_password"`
}

func (s *BoxSpec) Validate() error {
	if err := s.Funds.Validate(); err != nil {
		return errors.Wrap(err, "funds")
	}
	if s.HashedPassword == "" {
		return errors.Wrap(errors.ErrEmpty, "hashed password")
	}
	return nil
}

func (s *BoxSpec) Marshal() ([]byte, error) {
	enc := codec.NewEncoder()
	enc.Bytes(1, amountBytes(s.Funds))
	enc.String(2, s.HashedPassword)
	return enc.Result()
}

func (s *BoxSpec) Unmarshal(raw []byte) error {
	*s = BoxSpec{}
	return codec.Decode(raw, func(f *codec.Field) (err error) {
		switch f.Num {
		case 1:
			var raw []byte
			if raw, err = f.Bytes(); err == nil {
				err = s.Funds.SetBytes(raw)
			}
		case 2:
			s.HashedPassword, err = f.String()
		}
		return err
	})
}

// Transfer is the payout of a successfully opened box.
type Transfer struct {
	To     weave.Address `json:"to"`
	Amount *coin.Coin    `json:"amount"`
}

func (t *Transfer) Marshal() ([]byte, error) {
	enc := codec.NewEncoder()
	enc.Bytes(1, t.To)
	enc.Message(2, t.Amount)
	return enc.Result()
}

func (t *Transfer) Unmarshal(raw []byte) error {
	*t = Transfer{}
	return codec.Decode(raw, func(f *codec.Field) (err error) {
		switch f.Num {
		case 1:
			t.To, err = f.Bytes()
		case 2:
			t.Amount = &coin.Coin{}
			return f.Message(t.Amount)
		}
		return err
	})
}

// CreateBoxesResult is returned in the deliver result data of a create
// request.
type CreateBoxesResult struct {
	BoxIDs []uint64 `json:"box_ids"`
}

func (r *CreateBoxesResult) Marshal() ([]byte, error) {
	enc := codec.NewEncoder()
	enc.PackedUvarints(1, r.BoxIDs)
	return enc.Result()
}

func (r *CreateBoxesResult) Unmarshal(raw []byte) error {
	*r = CreateBoxesResult{}
	return codec.Decode(raw, func(f *codec.Field) (err error) {
		if f.Num != 1 {
			return nil
		}
		ids, err := f.Uvarints()
		r.BoxIDs = append(r.BoxIDs, ids...)
		return err
	})
}
