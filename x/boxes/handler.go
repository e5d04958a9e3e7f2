package boxes

import (
	"strconv"
	"strings"

	"github.com/iov-one/junobox/errors"
	"github.com/iov-one/junobox/migration"
	"github.com/iov-one/junobox/weave"
	"github.com/iov-one/junobox/x"
	"github.com/iov-one/junobox/x/bank"
)

const (
	initCost   = 100
	createCost = 50
	openCost   = 100
)

// ModuleCondition owns the funds of all boxes.
var ModuleCondition = weave.NewCondition(packageName, "escrow", []byte("module"))

// ModuleAddr is the address of the account holding the funds of all
// boxes.
var ModuleAddr = ModuleCondition.Address()

// RegisterRoutes registers handlers for all messages of this package.
func RegisterRoutes(r weave.Registry, auth x.Authenticator, engine *Engine, mover bank.CoinMover) {
	r = migration.SchemaMigratingRegistry(packageName, r)
	r.Handle(&InitMsg{}, &InitHandler{auth: auth, engine: engine})
	r.Handle(&CreateBoxesMsg{}, &CreateBoxesHandler{auth: auth, engine: engine, mover: mover})
	r.Handle(&OpenBoxMsg{}, &OpenBoxHandler{auth: auth, engine: engine, mover: mover})
}

// caller returns the address of the main signer.
func caller(ctx weave.Context, auth x.Authenticator) (weave.Address, error) {
	signer := x.MainSigner(ctx, auth)
	if signer == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "signature required")
	}
	return signer.Address(), nil
}

// InitHandler initializes the escrow.
type InitHandler struct {
	auth   x.Authenticator
	engine *Engine
}

var _ weave.Handler = (*InitHandler)(nil)

func (h *InitHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: initCost}, nil
}

func (h *InitHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, signer, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	owner, err := h.engine.Initialize(ctx, db, signer, msg.Denom, msg.RejectReopen)
	if err != nil {
		return nil, err
	}
	return &weave.DeliverResult{
		Data: owner,
		Tags: []weave.Tag{
			{Key: "method", Value: "instantiate"},
			{Key: "owner", Value: owner.String()},
		},
	}, nil
}

func (h *InitHandler) validate(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*InitMsg, weave.Address, error) {
	var msg InitMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	signer, err := caller(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	return &msg, signer, nil
}

// CreateBoxesHandler moves the attached funds to the module account and
// creates the boxes.
type CreateBoxesHandler struct {
	auth   x.Authenticator
	engine *Engine
	mover  bank.CoinMover
}

var _ weave.Handler = (*CreateBoxesHandler)(nil)

func (h *CreateBoxesHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	msg, _, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: int64(createCost * len(msg.Boxes))}, nil
}

// Deliver moves the funds before any box is persisted. The transaction is
// executed in a cache wrap, so a failed create discards the transfer.
func (h *CreateBoxesHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, signer, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	for _, c := range msg.Funds {
		if c.IsZero() {
			continue
		}
		if err := h.mover.MoveCoins(db, signer, ModuleAddr, *c); err != nil {
			return nil, errors.Wrap(err, "payment")
		}
	}
	ids, err := h.engine.CreateBoxes(ctx, db, signer, msg.Boxes, msg.Funds)
	if err != nil {
		return nil, err
	}
	data, err := (&CreateBoxesResult{BoxIDs: ids}).Marshal()
	if err != nil {
		return nil, errors.Wrap(err, "marshal result")
	}
	strIDs := make([]string, len(ids))
	for i, id := range ids {
		strIDs[i] = strconv.FormatUint(id, 10)
	}
	return &weave.DeliverResult{
		Data: data,
		Tags: []weave.Tag{
			{Key: "method", Value: "create_boxes"},
			{Key: "box_ids", Value: strings.Join(strIDs, ",")},
		},
	}, nil
}

// validate checks the payment before anything is moved, so that payment
// errors are reported as such instead of as failed transfers.
func (h *CreateBoxesHandler) validate(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*CreateBoxesMsg, weave.Address, error) {
	var msg CreateBoxesMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	signer, err := caller(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	if err := h.engine.CheckPayment(db, msg.Boxes, msg.Funds); err != nil {
		return nil, nil, err
	}
	return &msg, signer, nil
}

// OpenBoxHandler opens a box and pays its funds from the module account to
// the signer.
type OpenBoxHandler struct {
	auth   x.Authenticator
	engine *Engine
	mover  bank.CoinMover
}

var _ weave.Handler = (*OpenBoxHandler)(nil)

func (h *OpenBoxHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: openCost}, nil
}

// Deliver executes exactly one transfer for every successful open. A box
// created without funds reports a zero transfer and moves no coins.
func (h *OpenBoxHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, signer, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	transfer, err := h.engine.OpenBox(ctx, db, msg.BoxID, msg.Password, signer)
	if err != nil {
		return nil, err
	}
	if transfer.Amount.IsPositive() {
		if err := h.mover.MoveCoins(db, ModuleAddr, transfer.To, *transfer.Amount); err != nil {
			return nil, errors.Wrap(err, "payout")
		}
	}
	data, err := transfer.Marshal()
	if err != nil {
		return nil, errors.Wrap(err, "marshal result")
	}
	return &weave.DeliverResult{
		Data: data,
		Tags: []weave.Tag{
			{Key: "method", Value: "open_box"},
			{Key: "box_id", Value: strconv.FormatUint(msg.BoxID, 10)},
			{Key: "recipient", Value: transfer.To.String()},
			{Key: "amount", Value: transfer.Amount.String()},
		},
	}, nil
}

func (h *OpenBoxHandler) validate(ctx weave.Context, tx weave.Tx) (*OpenBoxMsg, weave.Address, error) {
	var msg OpenBoxMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	signer, err := caller(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	return &msg, signer, nil
}
