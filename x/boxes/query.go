package boxes

import (
	"github.com/iov-one/junobox/errors"
	"github.com/iov-one/junobox/gconf"
	"github.com/iov-one/junobox/orm"
	"github.com/iov-one/junobox/weave"
)

// RegisterQuery registers box queries:
//
//   /boxes         box records by 8 byte big endian id, or prefix
//   /boxes/count   number of boxes created so far
//   /boxes/config  escrow configuration
func RegisterQuery(qr weave.QueryRouter) {
	s := NewStore()
	s.boxes.Register("boxes", qr)
	qr.Register("/boxes/count", countQuery{store: s})
	qr.Register("/boxes/config", configQuery{})
}

type countQuery struct {
	store *Store
}

// Query returns a single model with the counter value, encoded as 8 byte
// big endian.
func (q countQuery) Query(db weave.ReadOnlyKVStore, mod string, data []byte) ([]weave.Model, error) {
	if mod != weave.KeyQueryMod {
		return nil, errors.Wrapf(errors.ErrInput, "unknown mod: %s", mod)
	}
	n, err := q.store.LoadCounter(db)
	if err != nil {
		return nil, err
	}
	return []weave.Model{weave.Pair(q.store.counterKey(), orm.EncodeSequence(n))}, nil
}

type configQuery struct{}

// Query returns the stored configuration, or nothing before
// initialization.
func (configQuery) Query(db weave.ReadOnlyKVStore, mod string, data []byte) ([]weave.Model, error) {
	if mod != weave.KeyQueryMod {
		return nil, errors.Wrapf(errors.ErrInput, "unknown mod: %s", mod)
	}
	key := gconf.Key(packageName)
	raw, err := db.Get(key)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	return []weave.Model{weave.Pair(key, raw)}, nil
}
