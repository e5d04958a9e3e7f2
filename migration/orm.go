package migration

import (
	"github.com/iov-one/junobox/errors"
	"github.com/iov-one/junobox/orm"
	"github.com/iov-one/junobox/weave"
)

// ModelBucket wraps an orm.ModelBucket and migrates every model to the
// current schema version of the package, both when reading and when
// writing.
//
// Queries return data as stored in the database and are never migrated.
type ModelBucket struct {
	orm.ModelBucket
	packageName string
	schema      *SchemaBucket
	migrations  *register
}

var _ orm.ModelBucket = (*ModelBucket)(nil)

// NewModelBucket returns a schema aware bucket. Package name is used to
// track the schema version.
func NewModelBucket(packageName string, b orm.ModelBucket) *ModelBucket {
	return &ModelBucket{
		ModelBucket: b,
		packageName: packageName,
		schema:      NewSchemaBucket(),
		migrations:  reg,
	}
}

// useRegister makes the bucket use a custom register instead of the global
// one. Used by tests only.
func (m *ModelBucket) useRegister(r *register) {
	m.migrations = r
}

func (m *ModelBucket) One(db weave.ReadOnlyKVStore, key []byte, dest orm.Model) error {
	if err := m.ModelBucket.One(db, key, dest); err != nil {
		return err
	}
	if err := m.migrate(db, dest); err != nil {
		return errors.Wrap(err, "migrate")
	}
	return nil
}

func (m *ModelBucket) Put(db weave.KVStore, key []byte, model orm.Model) error {
	if err := m.migrate(db, model); err != nil {
		return errors.Wrap(err, "migrate")
	}
	return m.ModelBucket.Put(db, key, model)
}

func (m *ModelBucket) migrate(db weave.ReadOnlyKVStore, model orm.Model) error {
	return migrate(m.migrations, m.schema, m.packageName, db, model)
}

func migrate(migrations *register, schema *SchemaBucket, pkg string, db weave.ReadOnlyKVStore, value interface{}) error {
	m, ok := value.(Migratable)
	if !ok {
		return errors.Wrapf(errors.ErrModel, "%T cannot be migrated", value)
	}
	current, err := schema.CurrentSchema(db, pkg)
	if err != nil {
		return errors.Wrapf(err, "current schema version of package %q", pkg)
	}

	meta := m.GetMetadata()
	if meta == nil {
		return errors.Wrapf(errors.ErrMetadata, "%T metadata is nil", m)
	}
	// Code creating a new entity is expecting the current version.
	if meta.Schema == 0 {
		meta.Schema = current
		return nil
	}
	if err := migrations.Apply(db, m, current); err != nil {
		return errors.Wrap(err, "schema migration")
	}
	return nil
}

// Migrate queries the current schema of the named package and migrates
// given value up to it.
func Migrate(db weave.ReadOnlyKVStore, packageName string, value interface{}) error {
	return migrate(reg, NewSchemaBucket(), packageName, db, value)
}
