package junoboxd

import (
	"github.com/iov-one/junobox/codec"
	"github.com/iov-one/junobox/errors"
	"github.com/iov-one/junobox/migration"
	"github.com/iov-one/junobox/weave"
	"github.com/iov-one/junobox/x/bank"
	"github.com/iov-one/junobox/x/boxes"
	"github.com/iov-one/junobox/x/sigs"
)

const fieldSignatures = 1

// msgFields maps the sum field numbers to the message types they carry.
var msgFields = map[int]func() weave.Msg{
	51: func() weave.Msg { return &boxes.InitMsg{} },
	52: func() weave.Msg { return &boxes.CreateBoxesMsg{} },
	53: func() weave.Msg { return &boxes.OpenBoxMsg{} },
	54: func() weave.Msg { return &bank.SendMsg{} },
	55: func() weave.Msg { return &migration.UpgradeSchemaMsg{} },
}

func msgField(msg weave.Msg) (int, error) {
	switch msg.(type) {
	case *boxes.InitMsg:
		return 51, nil
	case *boxes.CreateBoxesMsg:
		return 52, nil
	case *boxes.OpenBoxMsg:
		return 53, nil
	case *bank.SendMsg:
		return 54, nil
	case *migration.UpgradeSchemaMsg:
		return 55, nil
	}
	return 0, errors.Wrapf(errors.ErrType, "unsupported message %T", msg)
}

// Tx contains the message and the signatures authorizing it.
type Tx struct {
	Signatures []*sigs.StdSignature
	Msg        weave.Msg
}

// make sure tx fulfills all interfaces
var _ weave.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// NewTx returns an unsigned transaction carrying given message.
func NewTx(msg weave.Msg) *Tx {
	return &Tx{Msg: msg}
}

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(bz []byte) (weave.Tx, error) {
	tx := new(Tx)
	if err := tx.Unmarshal(bz); err != nil {
		return nil, err
	}
	return tx, nil
}

// GetMsg returns the single message of this transaction.
func (tx *Tx) GetMsg() (weave.Msg, error) {
	if tx.Msg == nil {
		return nil, errors.Wrap(errors.ErrMsg, "no message")
	}
	return tx.Msg, nil
}

// GetSignatures returns all signatures of this transaction.
func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the serialized transaction without the signatures.
func (tx *Tx) GetSignBytes() ([]byte, error) {
	unsigned := Tx{Msg: tx.Msg}
	return unsigned.Marshal()
}

func (tx *Tx) Marshal() ([]byte, error) {
	enc := codec.NewEncoder()
	for _, s := range tx.Signatures {
		if s == nil {
			return nil, errors.Wrap(errors.ErrEmpty, "nil signature")
		}
		enc.Message(fieldSignatures, s)
	}
	if tx.Msg != nil {
		field, err := msgField(tx.Msg)
		if err != nil {
			return nil, err
		}
		enc.Message(field, tx.Msg)
	}
	return enc.Result()
}

func (tx *Tx) Unmarshal(raw []byte) error {
	*tx = Tx{}
	return codec.Decode(raw, func(f *codec.Field) error {
		if f.Num == fieldSignatures {
			var s sigs.StdSignature
			if err := f.Message(&s); err != nil {
				return err
			}
			tx.Signatures = append(tx.Signatures, &s)
			return nil
		}
		newMsg, ok := msgFields[f.Num]
		if !ok {
			return nil
		}
		if tx.Msg != nil {
			return codec.Errorf(f, "more than one message")
		}
		msg := newMsg()
		if err := f.Message(msg); err != nil {
			return err
		}
		tx.Msg = msg
		return nil
	})
}
