package boxes

import (
	"sync"

	"github.com/iov-one/junobox/coin"
	"github.com/iov-one/junobox/errors"
	"github.com/iov-one/junobox/weave"
)

// Engine implements the escrow operations on top of the Store.
//
// Every operation holds the engine lock for its whole read, validate and
// write sequence. When the given database can be cache wrapped, writes go
// through a cache that is written only if the operation succeeds, so a
// failed operation never leaves partial state.
type Engine struct {
	mu      sync.Mutex
	store   *Store
	metrics *engineMetrics
}

// NewEngine returns an engine operating on given store.
func NewEngine(store *Store) *Engine {
	return &Engine{
		store:   store,
		metrics: defaultMetrics(),
	}
}

// Store returns the store this engine operates on.
func (e *Engine) Store() *Store {
	return e.store
}

func (e *Engine) atomic(db weave.KVStore, fn func(weave.KVStore) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	cacheable, ok := db.(weave.CacheableKVStore)
	if !ok {
		return fn(db)
	}
	cache := cacheable.CacheWrap()
	if err := fn(cache); err != nil {
		cache.Discard()
		return err
	}
	return cache.Write()
}

// Initialize creates the configuration with the caller as the owner and a
// zero counter. It can succeed only once.
func (e *Engine) Initialize(ctx weave.Context, db weave.KVStore, caller weave.Address, denom string, rejectReopen bool) (weave.Address, error) {
	conf := &Config{
		Metadata:     &weave.Metadata{Schema: 1},
		Owner:        caller,
		Denom:        denom,
		RejectReopen: rejectReopen,
	}
	err := e.atomic(db, func(db weave.KVStore) error {
		switch _, err := e.store.LoadConfig(db); {
		case err == nil:
			return errors.Wrap(ErrAlreadyInitialized, "configuration exists")
		case !ErrNotInitialized.Is(err):
			return err
		}
		if err := e.store.SaveConfig(db, conf); err != nil {
			return errors.Wrap(err, "save configuration")
		}
		return e.store.SaveCounter(db, 0)
	})
	if err != nil {
		return nil, err
	}
	weave.GetLogger(ctx).Info("escrow initialized", "module", packageName, "owner", caller, "denom", denom)
	return caller, nil
}

// CheckPayment validates a create request without modifying any state. It
// fails for the same reasons CreateBoxes does before it writes anything.
func (e *Engine) CheckPayment(db weave.ReadOnlyKVStore, specs []BoxSpec, payment coin.Coins) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	conf, err := e.store.LoadConfig(db)
	if err != nil {
		return err
	}
	_, _, err = checkPayment(specs, payment, conf.Denom)
	return err
}

// CreateBoxes creates a box for every spec, in order, and returns their
// ids. Payment must cover the funds of all boxes. Excess is accepted and
// not accounted for.
func (e *Engine) CreateBoxes(ctx weave.Context, db weave.KVStore, caller weave.Address, specs []BoxSpec, payment coin.Coins) ([]uint64, error) {
	if len(specs) == 0 {
		return nil, errors.Wrap(errors.ErrInput, "no boxes")
	}
	ids := make([]uint64, 0, len(specs))
	var needed, got coin.Amount
	err := e.atomic(db, func(db weave.KVStore) error {
		conf, err := e.store.LoadConfig(db)
		if err != nil {
			return err
		}
		if needed, got, err = checkPayment(specs, payment, conf.Denom); err != nil {
			return err
		}
		for i, s := range specs {
			id, err := e.store.IncrementCounter(db)
			if err != nil {
				return errors.Wrap(err, "next box id")
			}
			if err := e.store.SaveBox(db, id, NewBox(caller, s.Funds, s.HashedPassword)); err != nil {
				return errors.Wrapf(err, "save box %d", i)
			}
			ids = append(ids, id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.metrics.created.Add(float64(len(ids)))
	logger := weave.GetLogger(ctx).With("module", packageName)
	logger.Info("boxes created", "creator", caller, "ids", ids)
	if got.Cmp(needed) > 0 {
		e.metrics.excess.Inc()
		excess, _ := got.Sub(needed)
		logger.Info("excess payment retained", "creator", caller, "excess", excess.String())
	}
	return ids, nil
}

// OpenBox pays the box funds to the caller if the secret matches the box
// password. The box funds are never modified, so unless the configuration
// rejects it, opening an opened box pays out again.
func (e *Engine) OpenBox(ctx weave.Context, db weave.KVStore, id uint64, secret string, caller weave.Address) (*Transfer, error) {
	var transfer *Transfer
	err := e.atomic(db, func(db weave.KVStore) error {
		box, err := e.store.LoadBox(db, id)
		if err != nil {
			return err
		}
		conf, err := e.store.LoadConfig(db)
		if err != nil {
			return err
		}
		if box.Opened() && conf.RejectReopen {
			return errors.Wrapf(ErrAlreadyOpened, "box %d", id)
		}
		if !passwordMatches(box, secret) {
			return errors.Wrapf(ErrIncorrectPassword, "box %d", id)
		}
		box.markOpened(caller)
		if err := e.store.SaveBox(db, id, box); err != nil {
			return errors.Wrap(err, "save box")
		}
		transfer = &Transfer{
			To:     caller,
			Amount: &coin.Coin{Denom: conf.Denom, Amount: box.Funds},
		}
		return nil
	})
	if err != nil {
		e.metrics.rejected.WithLabelValues(rejectReason(err)).Inc()
		return nil, err
	}
	e.metrics.opened.Inc()
	weave.GetLogger(ctx).Info("box opened", "module", packageName, "id", id, "opener", caller, "amount", transfer.Amount.String())
	return transfer, nil
}

func rejectReason(err error) string {
	switch {
	case ErrBoxNotFound.Is(err):
		return "not_found"
	case ErrIncorrectPassword.Is(err):
		return "incorrect_password"
	case ErrAlreadyOpened.Is(err):
		return "already_opened"
	case ErrNotInitialized.Is(err):
		return "not_initialized"
	}
	return "other"
}

// BoxCount returns the number of boxes created so far.
func (e *Engine) BoxCount(db weave.ReadOnlyKVStore) (uint64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.LoadCounter(db)
}

// GetBox returns the stored box. ErrBoxNotFound is returned for an unknown
// id.
func (e *Engine) GetBox(db weave.ReadOnlyKVStore, id uint64) (*Box, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.LoadBox(db, id)
}

// Config returns the escrow configuration.
func (e *Engine) Config(db weave.ReadOnlyKVStore) (*Config, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.LoadConfig(db)
}
