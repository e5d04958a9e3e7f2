package sigs

import (
	"github.com/iov-one/junobox/codec"
	"github.com/iov-one/junobox/crypto"
	"github.com/iov-one/junobox/errors"
	"github.com/iov-one/junobox/migration"
	"github.com/iov-one/junobox/orm"
	"github.com/iov-one/junobox/weave"
)

func init() {
	migration.MustRegister(1, &UserData{}, migration.NoModification)
}

// maxSequenceValue is limited by the client. The greatest supported nonce
// value at client side is Number.MAX_SAFE_INTEGER = 2^53 - 1.
const maxSequenceValue = (1 << 53) - 1

// UserData is the state of a signer.
type UserData struct {
	Metadata *weave.Metadata   `json:"metadata"`
	Pubkey   *crypto.PublicKey `json:"pubkey"`
	Sequence int64             `json:"sequence"`
}

var _ orm.Model = (*UserData)(nil)

func (u *UserData) GetMetadata() *weave.Metadata {
	return u.Metadata
}

func (u *UserData) Validate() error {
	var errs error
	errs = errors.Append(errs, errors.Wrap(u.Metadata.Validate(), "metadata"))
	if u.Sequence < 0 {
		errs = errors.Append(errs, errors.Wrap(ErrInvalidSequence, "negative"))
	} else if u.Sequence > 0 && u.Pubkey == nil {
		errs = errors.Append(errs, errors.Wrap(ErrInvalidSequence, "needs pubkey"))
	}
	return errs
}

func (u *UserData) Copy() orm.CloneableData {
	cpy := &UserData{
		Metadata: u.Metadata.Copy(),
		Sequence: u.Sequence,
	}
	if u.Pubkey != nil {
		cpy.Pubkey = &crypto.PublicKey{Ed25519: append([]byte(nil), u.Pubkey.Ed25519...)}
	}
	return cpy
}

// CheckAndIncrementSequence increments the sequence if it is equal to the
// expected value. Otherwise an error is returned.
func (u *UserData) CheckAndIncrementSequence(expected int64) error {
	if u.Sequence != expected {
		return errors.Wrapf(ErrInvalidSequence, "mismatch expected %d, got %d", u.Sequence, expected)
	}
	next := u.Sequence + 1
	if next <= 0 || next > maxSequenceValue {
		return errors.Wrap(errors.ErrOverflow, "sequence out of range")
	}
	u.Sequence = next
	return nil
}

func (u *UserData) Marshal() ([]byte, error) {
	enc := codec.NewEncoder()
	enc.Message(1, u.Metadata)
	enc.Message(2, u.Pubkey)
	enc.Varint(3, u.Sequence)
	return enc.Result()
}

func (u *UserData) Unmarshal(raw []byte) error {
	*u = UserData{}
	return codec.Decode(raw, func(f *codec.Field) (err error) {
		switch f.Num {
		case 1:
			u.Metadata = &weave.Metadata{}
			return f.Message(u.Metadata)
		case 2:
			u.Pubkey = &crypto.PublicKey{}
			return f.Message(u.Pubkey)
		case 3:
			u.Sequence, err = f.Varint()
		}
		return err
	})
}

// Bucket stores UserData under the signer address.
type Bucket struct {
	*migration.ModelBucket
}

// NewBucket creates the proper bucket for this extension.
func NewBucket() Bucket {
	b := orm.NewModelBucket("sigs", &UserData{})
	return Bucket{ModelBucket: migration.NewModelBucket("sigs", b)}
}

// GetOrCreate loads the user data of given key owner. A new, not yet
// stored instance is returned if the key was never used.
func (b Bucket) GetOrCreate(db weave.KVStore, pubkey *crypto.PublicKey) (*UserData, error) {
	var user UserData
	switch err := b.One(db, pubkey.Address(), &user); {
	case err == nil:
		return &user, nil
	case errors.ErrNotFound.Is(err):
		return &UserData{
			Metadata: &weave.Metadata{Schema: 1},
			Pubkey:   pubkey,
		}, nil
	default:
		return nil, err
	}
}

// RegisterQuery will register this bucket as "/auth".
func RegisterQuery(qr weave.QueryRouter) {
	NewBucket().Register("auth", qr)
}
