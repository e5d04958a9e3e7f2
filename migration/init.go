package migration

import (
	"github.com/iov-one/junobox/errors"
	"github.com/iov-one/junobox/gconf"
	"github.com/iov-one/junobox/weave"
)

// Initializer fulfils the weave.Initializer interface to load data from the
// genesis file.
type Initializer struct{}

var _ weave.Initializer = Initializer{}

type genesisSchema struct {
	Pkg string `json:"pkg"`
	Ver uint32 `json:"ver"`
}

// FromGenesis stores the migration configuration, if present, and
// initializes schema versions of all listed packages. The migration package
// itself is always initialized.
func (Initializer) FromGenesis(opts weave.Options, db weave.KVStore) error {
	err := gconf.InitConfig(db, opts, "migration", &Configuration{})
	if err != nil && !errors.ErrNotFound.Is(err) {
		return errors.Wrap(err, "init config")
	}

	var schemas []genesisSchema
	if err := opts.ReadOptions("initialize_schema", &schemas); err != nil {
		return err
	}
	schemas = append(schemas, genesisSchema{Pkg: "migration", Ver: 1})

	bucket := NewSchemaBucket()
	for _, s := range schemas {
		current, err := bucket.CurrentSchema(db, s.Pkg)
		switch {
		case errors.ErrNotFound.Is(err):
			current = 0
		case err != nil:
			return errors.Wrapf(err, "schema of %q", s.Pkg)
		}
		for v := current + 1; v <= s.Ver; v++ {
			_, err := bucket.Create(db, &Schema{
				Metadata: &weave.Metadata{Schema: 1},
				Pkg:      s.Pkg,
				Version:  v,
			})
			if err != nil {
				return errors.Wrapf(err, "cannot initialize %q schema version %d", s.Pkg, v)
			}
		}
	}
	return nil
}
