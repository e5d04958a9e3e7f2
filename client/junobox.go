package client

import (
	"context"

	"github.com/iov-one/junobox/errors"
	"github.com/iov-one/junobox/orm"
	"github.com/iov-one/junobox/weave"
	"github.com/iov-one/junobox/x/bank"
	"github.com/iov-one/junobox/x/boxes"
	"github.com/iov-one/junobox/x/sigs"
)

// BoxCount returns the number of boxes created so far.
func (c *Client) BoxCount(ctx context.Context) (uint64, error) {
	models, err := c.Query(ctx, "/boxes/count", nil, false)
	if err != nil {
		return 0, err
	}
	if len(models) == 0 {
		return 0, errors.Wrap(errors.ErrNotFound, "box counter")
	}
	return orm.DecodeSequence(models[0].Value)
}

// Box returns the box with the given id. ErrBoxNotFound is returned for an
// id that was never assigned.
func (c *Client) Box(ctx context.Context, id uint64) (*boxes.Box, error) {
	var box boxes.Box
	switch err := c.queryOne(ctx, "/boxes", boxes.BoxKey(id), &box); {
	case err == nil:
		return &box, nil
	case errors.ErrNotFound.Is(err):
		return nil, errors.Wrapf(boxes.ErrBoxNotFound, "box %d", id)
	default:
		return nil, err
	}
}

// Config returns the escrow configuration. ErrNotFound is returned before
// the escrow is initialized.
func (c *Client) Config(ctx context.Context) (*boxes.Config, error) {
	var conf boxes.Config
	if err := c.queryOne(ctx, "/boxes/config", nil, &conf); err != nil {
		return nil, err
	}
	return &conf, nil
}

// Wallet returns the balance of an address. An address that never
// received funds has an empty wallet.
func (c *Client) Wallet(ctx context.Context, addr weave.Address) (*bank.Wallet, error) {
	var w bank.Wallet
	switch err := c.queryOne(ctx, "/wallets", addr, &w); {
	case err == nil:
		return &w, nil
	case errors.ErrNotFound.Is(err):
		return &bank.Wallet{}, nil
	default:
		return nil, err
	}
}

// NextNonce returns the sequence the next signature of addr must use.
func (c *Client) NextNonce(ctx context.Context, addr weave.Address) (int64, error) {
	var user sigs.UserData
	switch err := c.queryOne(ctx, "/auth", addr, &user); {
	case err == nil:
		return user.Sequence, nil
	case errors.ErrNotFound.Is(err):
		return 0, nil
	default:
		return 0, err
	}
}
