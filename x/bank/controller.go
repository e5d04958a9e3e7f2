package bank

import (
	"github.com/iov-one/junobox/coin"
	"github.com/iov-one/junobox/errors"
	"github.com/iov-one/junobox/weave"
)

// CoinMover moves funds between accounts.
type CoinMover interface {
	MoveCoins(db weave.KVStore, src, dest weave.Address, amount coin.Coin) error
}

// Controller is the functionality this package exposes to other
// extensions.
type Controller interface {
	CoinMover
	Balance(db weave.ReadOnlyKVStore, addr weave.Address) (coin.Coins, error)
	IssueCoins(db weave.KVStore, dest weave.Address, amount coin.Coin) error
}

// BaseController is the default Controller implementation.
type BaseController struct {
	bucket WalletBucket
}

var _ Controller = BaseController{}

// NewController returns a controller operating on given bucket.
func NewController(bucket WalletBucket) BaseController {
	return BaseController{bucket: bucket}
}

// Balance returns all coins held by given address. An unknown address
// holds nothing.
func (c BaseController) Balance(db weave.ReadOnlyKVStore, addr weave.Address) (coin.Coins, error) {
	w, err := c.bucket.GetOrCreate(db, addr)
	if err != nil {
		return nil, err
	}
	return w.Coins, nil
}

// MoveCoins moves the given amount from src to dest. If src does not exist
// or does not have sufficient coins, it fails.
func (c BaseController) MoveCoins(db weave.KVStore, src, dest weave.Address, amount coin.Coin) error {
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive amount: %s", amount)
	}
	if err := amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}

	sender, err := c.bucket.GetOrCreate(db, src)
	if err != nil {
		return errors.Wrap(err, "sender")
	}
	if !sender.Coins.Contains(amount) {
		return errors.Wrapf(errors.ErrAmount, "insufficient funds: %s", sender.Coins.Get(amount.Denom))
	}
	if sender.Coins, err = sender.Coins.Subtract(amount); err != nil {
		return errors.Wrap(err, "subtract")
	}
	if err := c.bucket.Save(db, src, sender); err != nil {
		return errors.Wrap(err, "save sender")
	}

	// Recipient is loaded after the sender is saved, so that sending to
	// self is a noop.
	recipient, err := c.bucket.GetOrCreate(db, dest)
	if err != nil {
		return errors.Wrap(err, "recipient")
	}
	if recipient.Coins, err = recipient.Coins.Add(amount); err != nil {
		return errors.Wrap(err, "add")
	}
	return c.bucket.Save(db, dest, recipient)
}

// IssueCoins adds the given amount of coins to the destination address.
// Fails if it overflows the wallet.
func (c BaseController) IssueCoins(db weave.KVStore, dest weave.Address, amount coin.Coin) error {
	if err := amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	recipient, err := c.bucket.GetOrCreate(db, dest)
	if err != nil {
		return err
	}
	if recipient.Coins, err = recipient.Coins.Add(amount); err != nil {
		return err
	}
	return c.bucket.Save(db, dest, recipient)
}
