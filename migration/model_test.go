package migration

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/junobox/errors"
	"github.com/iov-one/junobox/orm"
	"github.com/iov-one/junobox/store"
	"github.com/iov-one/junobox/weave"
	"github.com/iov-one/junobox/weavetest/assert"
)

func TestSchemaBucket(t *testing.T) {
	db := store.MemStore()
	b := NewSchemaBucket()

	_, err := b.CurrentSchema(db, "boxes")
	assert.IsErr(t, errors.ErrNotFound, err)

	// Versions must start with one.
	_, err = b.Create(db, &Schema{Metadata: &weave.Metadata{Schema: 1}, Pkg: "boxes", Version: 2})
	assert.IsErr(t, errors.ErrDuplicate, err)

	MustInitPkg(db, "boxes", "bank")
	// Second initialization is ignored.
	MustInitPkg(db, "boxes")

	ver, err := b.CurrentSchema(db, "boxes")
	assert.Nil(t, err)
	assert.Equal(t, uint32(1), ver)

	_, err = b.Create(db, &Schema{Metadata: &weave.Metadata{Schema: 1}, Pkg: "boxes", Version: 2})
	assert.Nil(t, err)
	ver, err = b.CurrentSchema(db, "boxes")
	assert.Nil(t, err)
	assert.Equal(t, uint32(2), ver)

	// Other packages are not affected.
	ver, err = b.CurrentSchema(db, "bank")
	assert.Nil(t, err)
	assert.Equal(t, uint32(1), ver)
}

func TestSchemaValidate(t *testing.T) {
	cases := map[string]struct {
		schema  Schema
		wantErr *errors.Error
	}{
		"valid": {
			schema: Schema{Metadata: &weave.Metadata{Schema: 1}, Pkg: "boxes", Version: 1},
		},
		"missing metadata": {
			schema:  Schema{Pkg: "boxes", Version: 1},
			wantErr: errors.ErrMetadata,
		},
		"zero version": {
			schema:  Schema{Metadata: &weave.Metadata{Schema: 1}, Pkg: "boxes"},
			wantErr: errors.ErrModel,
		},
		"missing package": {
			schema:  Schema{Metadata: &weave.Metadata{Schema: 1}, Version: 1},
			wantErr: errors.ErrModel,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.schema.Validate()
			if tc.wantErr == nil {
				assert.Nil(t, err)
			} else {
				assert.IsErr(t, tc.wantErr, err)
			}
		})
	}
}

func TestModelBucketMigrates(t *testing.T) {
	reg := newRegister()
	reg.MustRegister(1, &MyModel{}, NoModification)
	reg.MustRegister(2, &MyModel{}, func(db weave.ReadOnlyKVStore, m Migratable) error {
		m.(*MyModel).Content += " v2"
		return nil
	})

	db := store.MemStore()
	MustInitPkg(db, "mypkg")

	b := NewModelBucket("mypkg", orm.NewModelBucket("mymodels", &MyModel{}))
	b.useRegister(reg)

	// A model without a schema set is created with the current version.
	m := &MyModel{MyMsg{Metadata: &weave.Metadata{}, Content: "box"}}
	assert.Nil(t, b.Put(db, []byte("a"), m))
	assert.Equal(t, uint32(1), m.Metadata.Schema)

	_, err := NewSchemaBucket().Create(db, &Schema{Metadata: &weave.Metadata{Schema: 1}, Pkg: "mypkg", Version: 2})
	assert.Nil(t, err)

	var loaded MyModel
	assert.Nil(t, b.One(db, []byte("a"), &loaded))
	assert.Equal(t, "box v2", loaded.Content)
	assert.Equal(t, uint32(2), loaded.Metadata.Schema)

	// Models from the future are rejected.
	future := &MyModel{MyMsg{Metadata: &weave.Metadata{Schema: 3}, Content: "box"}}
	assert.IsErr(t, errors.ErrSchema, b.Put(db, []byte("b"), future))
}

func TestModelBucketRequiresInitializedSchema(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("nopkg", orm.NewModelBucket("mymodels", &MyModel{}))
	m := &MyModel{MyMsg{Metadata: &weave.Metadata{Schema: 1}, Content: "box"}}
	assert.IsErr(t, errors.ErrNotFound, b.Put(db, []byte("a"), m))
}

func TestGenesisInitializeSchemaVersions(t *testing.T) {
	const genesis = `
	{
		"conf": {
			"migration": {
				"metadata": {"schema": 1},
				"admin": "hex:6a4832947079b0a851ec4daa3dae69de1f7741eb"
			}
		},
		"initialize_schema": [
			{"pkg": "boxes", "ver": 1},
			{"pkg": "bank", "ver": 2}
		]
	}
	`
	var opts weave.Options
	assert.Nil(t, json.Unmarshal([]byte(genesis), &opts))

	db := store.MemStore()
	assert.Nil(t, Initializer{}.FromGenesis(opts, db))

	want := map[string]uint32{
		"boxes": 1,
		"bank":  2,
		// The migration package is always initialized.
		"migration": 1,
	}
	for pkg, wantVer := range want {
		ver, err := NewSchemaBucket().CurrentSchema(db, pkg)
		assert.Nil(t, err)
		assert.Equal(t, wantVer, ver)
	}

	conf, err := loadConf(db)
	assert.Nil(t, err)
	assert.Equal(t, weave.Address{0x6a, 0x48, 0x32, 0x94, 0x70, 0x79, 0xb0, 0xa8, 0x51, 0xec, 0x4d, 0xaa, 0x3d, 0xae, 0x69, 0xde, 0x1f, 0x77, 0x41, 0xeb}, conf.Admin)
}

func TestGenesisWithoutConfiguration(t *testing.T) {
	var opts weave.Options
	assert.Nil(t, json.Unmarshal([]byte(`{"initialize_schema": [{"pkg": "boxes", "ver": 1}]}`), &opts))
	db := store.MemStore()
	assert.Nil(t, Initializer{}.FromGenesis(opts, db))

	_, err := loadConf(db)
	assert.IsErr(t, errors.ErrNotFound, err)
}
