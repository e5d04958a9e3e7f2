package bank

import (
	"github.com/iov-one/junobox/codec"
	"github.com/iov-one/junobox/coin"
	"github.com/iov-one/junobox/errors"
	"github.com/iov-one/junobox/migration"
	"github.com/iov-one/junobox/weave"
)

func init() {
	migration.MustRegister(1, &SendMsg{}, migration.NoModification)
}

const (
	pathSendMsg = "bank/send"

	sendTxCost  = 100
	maxMemoSize = 128
)

// SendMsg moves coins from the source to the destination account.
type SendMsg struct {
	Metadata    *weave.Metadata `json:"metadata"`
	Source      weave.Address   `json:"source"`
	Destination weave.Address   `json:"destination"`
	Amount      *coin.Coin      `json:"amount"`
	Memo        string          `json:"memo,omitempty"`
}

var _ weave.Msg = (*SendMsg)(nil)

func (SendMsg) Path() string {
	return pathSendMsg
}

func (m *SendMsg) GetMetadata() *weave.Metadata {
	return m.Metadata
}

// Validate makes sure that this is sensible.
func (m *SendMsg) Validate() error {
	var errs error
	errs = errors.Append(errs, errors.Wrap(m.Metadata.Validate(), "metadata"))
	if m.Amount == nil || !m.Amount.IsPositive() {
		errs = errors.Append(errs, errors.Wrap(errors.ErrAmount, "non-positive amount"))
	} else {
		errs = errors.Append(errs, errors.Wrap(m.Amount.Validate(), "amount"))
	}
	errs = errors.Append(errs, errors.Wrap(m.Source.Validate(), "source"))
	errs = errors.Append(errs, errors.Wrap(m.Destination.Validate(), "destination"))
	if len(m.Memo) > maxMemoSize {
		errs = errors.Append(errs, errors.Wrapf(errors.ErrInput, "memo longer than %d", maxMemoSize))
	}
	return errs
}

func (m *SendMsg) Marshal() ([]byte, error) {
	enc := codec.NewEncoder()
	enc.Message(1, m.Metadata)
	enc.Bytes(2, m.Source)
	enc.Bytes(3, m.Destination)
	enc.Message(4, m.Amount)
	enc.String(5, m.Memo)
	return enc.Result()
}

func (m *SendMsg) Unmarshal(raw []byte) error {
	*m = SendMsg{}
	return codec.Decode(raw, func(f *codec.Field) (err error) {
		switch f.Num {
		case 1:
			m.Metadata = &weave.Metadata{}
			return f.Message(m.Metadata)
		case 2:
			m.Source, err = f.Bytes()
		case 3:
			m.Destination, err = f.Bytes()
		case 4:
			m.Amount = &coin.Coin{}
			return f.Message(m.Amount)
		case 5:
			m.Memo, err = f.String()
		}
		return err
	})
}
