package sigs

import (
	"github.com/iov-one/junobox/codec"
	"github.com/iov-one/junobox/crypto"
	"github.com/iov-one/junobox/errors"
)

// SignedTx represents a transaction that contains signatures, which can be
// verified by the Decorator.
type SignedTx interface {
	// GetSignBytes returns the canonical byte representation of the Msg.
	GetSignBytes() ([]byte, error)

	// GetSignatures returns the signature of signers who signed the Msg.
	GetSignatures() []*StdSignature
}

// StdSignature is a single signature of a transaction.
type StdSignature struct {
	Sequence  int64             `json:"sequence"`
	Pubkey    *crypto.PublicKey `json:"pubkey"`
	Signature *crypto.Signature `json:"signature"`
}

// Validate ensures the StdSignature meets basic standards
func (s *StdSignature) Validate() error {
	if s.Sequence < 0 {
		return errors.Wrap(ErrInvalidSequence, "negative")
	}
	if s.Pubkey == nil {
		return errors.Wrap(errors.ErrUnauthorized, "missing public key")
	}
	if s.Signature == nil {
		return errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return nil
}

func (s *StdSignature) Marshal() ([]byte, error) {
	enc := codec.NewEncoder()
	enc.Varint(1, s.Sequence)
	enc.Message(2, s.Pubkey)
	enc.Message(4, s.Signature)
	return enc.Result()
}

func (s *StdSignature) Unmarshal(raw []byte) error {
	*s = StdSignature{}
	return codec.Decode(raw, func(f *codec.Field) (err error) {
		switch f.Num {
		case 1:
			s.Sequence, err = f.Varint()
		case 2:
			s.Pubkey = &crypto.PublicKey{}
			return f.Message(s.Pubkey)
		case 4:
			s.Signature = &crypto.Signature{}
			return f.Message(s.Signature)
		}
		return err
	})
}
