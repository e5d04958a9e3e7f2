package migration

import (
	"reflect"

	"github.com/iov-one/junobox/errors"
	"github.com/iov-one/junobox/weave"
)

// Migratable is implemented by both weave.Msg and models that support schema
// versioning.
type Migratable interface {
	GetMetadata() *weave.Metadata
	Validate() error
}

// Migrator is a function that migrates a data entity from version
// requiredVersion-1 to requested version.
type Migrator func(db weave.ReadOnlyKVStore, m Migratable) error

// NoModification is a migration function that migrates data that requires no
// change.
func NoModification(db weave.ReadOnlyKVStore, m Migratable) error {
	return nil
}

type register struct {
	handlers map[payloadVersion]Migrator
}

func newRegister() *register {
	return &register{
		handlers: make(map[payloadVersion]Migrator),
	}
}

// payloadVersion references a message or a model at a given schema version.
type payloadVersion struct {
	payload reflect.Type
	version uint32
}

func (r *register) MustRegister(migrationTo uint32, m Migratable, fn Migrator) {
	if err := r.Register(migrationTo, m, fn); err != nil {
		panic(err)
	}
}

// Register adds a migration function. Migrations must be registered one
// after another, starting with version one.
func (r *register) Register(migrationTo uint32, m Migratable, fn Migrator) error {
	if migrationTo < 1 {
		return errors.Wrap(errors.ErrInput, "migration version must be greater than zero")
	}
	tp, err := payloadType(m)
	if err != nil {
		return err
	}
	if _, ok := r.handlers[payloadVersion{payload: tp, version: migrationTo}]; ok {
		return errors.Wrapf(errors.ErrDuplicate, "already registered: %s.%s:%d", tp.PkgPath(), tp.Name(), migrationTo)
	}
	if migrationTo > 1 {
		if _, ok := r.handlers[payloadVersion{payload: tp, version: migrationTo - 1}]; !ok {
			return errors.Wrapf(errors.ErrInput, "missing %d version migration", migrationTo-1)
		}
	}
	r.handlers[payloadVersion{payload: tp, version: migrationTo}] = fn
	return nil
}

// Apply updates given entity in place by applying all missing migrations up
// to the requested version. Validation is run on the final version only.
func (r *register) Apply(db weave.ReadOnlyKVStore, m Migratable, migrateTo uint32) error {
	if migrateTo < 1 {
		return errors.Wrap(errors.ErrInput, "migration version must be greater than zero")
	}
	tp, err := payloadType(m)
	if err != nil {
		return err
	}
	if _, ok := r.handlers[payloadVersion{payload: tp, version: 1}]; !ok {
		return errors.Wrapf(errors.ErrSchema, "%s.%s is not registered", tp.PkgPath(), tp.Name())
	}

	meta := m.GetMetadata()
	if meta == nil {
		return errors.Wrapf(errors.ErrMetadata, "%T metadata is nil", m)
	}
	if meta.Schema > migrateTo {
		return errors.Wrapf(errors.ErrSchema, "schema %d is higher than %d", meta.Schema, migrateTo)
	}

	for v := meta.Schema + 1; v <= migrateTo; v++ {
		migrate, ok := r.handlers[payloadVersion{payload: tp, version: v}]
		if !ok {
			return errors.Wrapf(errors.ErrSchema, "migration to version %d missing", v)
		}
		if err := migrate(db, m); err != nil {
			return errors.Wrapf(err, "migration to version %d", v)
		}
		meta.Schema = v
	}

	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "validation")
	}
	return nil
}

func payloadType(m Migratable) (reflect.Type, error) {
	tp := reflect.TypeOf(m)
	for tp != nil && tp.Kind() == reflect.Ptr {
		tp = tp.Elem()
	}
	if tp == nil || tp.Kind() != reflect.Struct {
		return nil, errors.Wrapf(errors.ErrType, "only struct can be migrated, got %T", m)
	}
	return tp, nil
}

// reg is the register instance used during the runtime. It is declared as a
// separate type so that it can be tested without the global state.
var reg = newRegister()

// MustRegister registers a migration function for given entity and schema
// version. It panics on failure and should be called in package init.
func MustRegister(migrationTo uint32, m Migratable, fn Migrator) {
	reg.MustRegister(migrationTo, m, fn)
}

// Apply updates an entity by applying all missing migrations. Even a no
// modification migration updates the metadata to point to the latest
// schema version.
func Apply(db weave.ReadOnlyKVStore, m Migratable, migrateTo uint32) error {
	return reg.Apply(db, m, migrateTo)
}
