package boxes

import (
	"github.com/iov-one/junobox/errors"
	"github.com/iov-one/junobox/gconf"
	"github.com/iov-one/junobox/migration"
	"github.com/iov-one/junobox/orm"
	"github.com/iov-one/junobox/weave"
)

// Store persists the escrow state: the configuration singleton, the box
// counter and the box collection. It contains no business logic.
//
// Layout:
//
//   _c:boxes               configuration
//   _s.boxes:id            counter, 8 byte big endian
//   boxes:<8 byte id>      box records
type Store struct {
	counter orm.Sequence
	boxes   *migration.ModelBucket
}

const counterName = "id"

// NewStore returns a store that can operate on any KVStore.
func NewStore() *Store {
	return &Store{
		counter: orm.NewSequence(packageName, counterName),
		boxes:   migration.NewModelBucket(packageName, orm.NewModelBucket("boxes", &Box{})),
	}
}

// LoadConfig returns ErrNotInitialized if the configuration was never
// saved.
func (s *Store) LoadConfig(db weave.ReadOnlyKVStore) (*Config, error) {
	var conf Config
	switch err := gconf.Load(db, packageName, &conf); {
	case err == nil:
	case errors.ErrNotFound.Is(err):
		return nil, errors.Wrap(ErrNotInitialized, "no configuration")
	default:
		return nil, err
	}
	if err := migration.Migrate(db, packageName, &conf); err != nil {
		return nil, errors.Wrap(err, "migrate configuration")
	}
	return &conf, nil
}

// SaveConfig overwrites the configuration.
func (s *Store) SaveConfig(db weave.KVStore, conf *Config) error {
	return gconf.Save(db, packageName, conf)
}

// LoadCounter returns the number of boxes created so far.
func (s *Store) LoadCounter(db weave.ReadOnlyKVStore) (uint64, error) {
	return s.counter.Latest(db)
}

// SaveCounter overwrites the counter value.
func (s *Store) SaveCounter(db weave.KVStore, val uint64) error {
	return s.counter.Set(db, val)
}

// IncrementCounter persists the counter increased by one and returns the
// new value.
func (s *Store) IncrementCounter(db weave.KVStore) (uint64, error) {
	return s.counter.NextInt(db)
}

// LoadBox returns ErrBoxNotFound if there is no box with given id.
func (s *Store) LoadBox(db weave.ReadOnlyKVStore, id uint64) (*Box, error) {
	var box Box
	switch err := s.boxes.One(db, BoxKey(id), &box); {
	case err == nil:
		return &box, nil
	case errors.ErrNotFound.Is(err):
		return nil, errors.Wrapf(ErrBoxNotFound, "box %d", id)
	default:
		return nil, err
	}
}

// SaveBox creates or overwrites the box with given id.
func (s *Store) SaveBox(db weave.KVStore, id uint64, box *Box) error {
	return s.boxes.Put(db, BoxKey(id), box)
}

func (s *Store) counterKey() []byte {
	return s.counter.Key()
}

// BoxKey returns the bucket key of a box.
func BoxKey(id uint64) []byte {
	return orm.EncodeSequence(id)
}
