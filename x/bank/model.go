package bank

import (
	"github.com/iov-one/junobox/codec"
	"github.com/iov-one/junobox/coin"
	"github.com/iov-one/junobox/errors"
	"github.com/iov-one/junobox/migration"
	"github.com/iov-one/junobox/orm"
	"github.com/iov-one/junobox/weave"
)

const packageName = "bank"

func init() {
	migration.MustRegister(1, &Wallet{}, migration.NoModification)
}

// Wallet holds all coins of a single account.
type Wallet struct {
	Metadata *weave.Metadata `json:"metadata"`
	Coins    coin.Coins      `json:"coins"`
}

var _ orm.Model = (*Wallet)(nil)

func (w *Wallet) GetMetadata() *weave.Metadata {
	return w.Metadata
}

// Validate requires the coins to be in normalized form.
func (w *Wallet) Validate() error {
	if err := w.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	return w.Coins.Validate()
}

func (w *Wallet) Copy() orm.CloneableData {
	return &Wallet{
		Metadata: w.Metadata.Copy(),
		Coins:    w.Coins.Clone(),
	}
}

func (w *Wallet) Marshal() ([]byte, error) {
	enc := codec.NewEncoder()
	enc.Message(1, w.Metadata)
	for _, c := range w.Coins {
		enc.Message(2, c)
	}
	return enc.Result()
}

func (w *Wallet) Unmarshal(raw []byte) error {
	*w = Wallet{}
	return codec.Decode(raw, func(f *codec.Field) error {
		switch f.Num {
		case 1:
			w.Metadata = &weave.Metadata{}
			return f.Message(w.Metadata)
		case 2:
			var c coin.Coin
			if err := f.Message(&c); err != nil {
				return err
			}
			w.Coins = append(w.Coins, &c)
		}
		return nil
	})
}

// WalletBucket stores wallets under the owner address.
type WalletBucket struct {
	*migration.ModelBucket
}

// NewWalletBucket returns a bucket for managing wallets.
func NewWalletBucket() WalletBucket {
	b := orm.NewModelBucket("wallets", &Wallet{})
	return WalletBucket{ModelBucket: migration.NewModelBucket(packageName, b)}
}

// GetOrCreate returns the wallet of given address. An empty, not yet
// stored wallet is returned if the address holds nothing.
func (b WalletBucket) GetOrCreate(db weave.ReadOnlyKVStore, addr weave.Address) (*Wallet, error) {
	var w Wallet
	switch err := b.One(db, addr, &w); {
	case err == nil:
		return &w, nil
	case errors.ErrNotFound.Is(err):
		return &Wallet{Metadata: &weave.Metadata{Schema: 1}}, nil
	default:
		return nil, err
	}
}

// Save persists the wallet. A wallet without coins is removed.
func (b WalletBucket) Save(db weave.KVStore, addr weave.Address, w *Wallet) error {
	if len(w.Coins) == 0 {
		if err := b.Delete(db, addr); err != nil && !errors.ErrNotFound.Is(err) {
			return err
		}
		return nil
	}
	return b.Put(db, addr, w)
}

// RegisterQuery will register this bucket as "/wallets".
func RegisterQuery(qr weave.QueryRouter) {
	NewWalletBucket().Register("wallets", qr)
}
