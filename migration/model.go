package migration

import (
	"encoding/binary"

	"github.com/iov-one/junobox/codec"
	"github.com/iov-one/junobox/errors"
	"github.com/iov-one/junobox/orm"
	"github.com/iov-one/junobox/weave"
)

// maxSchemaVersion bounds the lookup of the current version.
const maxSchemaVersion = 10000

// Schema declares a single schema version of a package.
type Schema struct {
	Metadata *weave.Metadata `json:"metadata"`
	Pkg      string          `json:"pkg"`
	Version  uint32          `json:"version"`
}

var _ orm.Model = (*Schema)(nil)

func (s *Schema) Validate() error {
	if err := s.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if s.Version < 1 {
		return errors.Wrap(errors.ErrModel, "version must be greater than zero")
	}
	if s.Pkg == "" {
		return errors.Wrap(errors.ErrModel, "pkg is required")
	}
	return nil
}

func (s *Schema) Copy() orm.CloneableData {
	return &Schema{
		Metadata: s.Metadata.Copy(),
		Version:  s.Version,
		Pkg:      s.Pkg,
	}
}

func (s *Schema) Marshal() ([]byte, error) {
	enc := codec.NewEncoder()
	enc.Message(1, s.Metadata)
	enc.String(2, s.Pkg)
	enc.Uvarint(3, uint64(s.Version))
	return enc.Result()
}

func (s *Schema) Unmarshal(raw []byte) error {
	*s = Schema{}
	return codec.Decode(raw, func(f *codec.Field) (err error) {
		switch f.Num {
		case 1:
			s.Metadata = &weave.Metadata{}
			return f.Message(s.Metadata)
		case 2:
			s.Pkg, err = f.String()
		case 3:
			s.Version, err = f.Uint32()
		}
		return err
	})
}

// schemaID returns a deterministic ID of this schema instance. Created IDs
// can be sorted using lexicographical order from the lowest to the highest
// version.
func schemaID(pkg string, version uint32) []byte {
	raw := make([]byte, len(pkg)+4)
	copy(raw, pkg)
	binary.BigEndian.PutUint32(raw[len(pkg):], version)
	return raw
}

// SchemaBucket stores the schema versions of all packages.
type SchemaBucket struct {
	b orm.Bucket
}

// NewSchemaBucket returns a bucket using the plain orm implementation, so
// that it can insert entities without its own schema being registered.
func NewSchemaBucket() *SchemaBucket {
	return &SchemaBucket{
		b: orm.NewBucket("_schema", orm.NewSimpleObj(nil, &Schema{})),
	}
}

// CurrentSchema returns the current version of the schema for a given
// package. It returns ErrNotFound if no schema version was registered for
// this package. Minimum schema version is 1.
func (b *SchemaBucket) CurrentSchema(db weave.ReadOnlyKVStore, pkg string) (uint32, error) {
	for ver := uint32(1); ver < maxSchemaVersion; ver++ {
		ok, err := db.Has(b.b.DBKey(schemaID(pkg, ver)))
		if err != nil {
			return 0, errors.Wrap(err, "has")
		}
		if ok {
			continue
		}
		if ver == 1 {
			return 0, errors.Wrapf(errors.ErrNotFound, "schema of %q not initialized", pkg)
		}
		return ver - 1, nil
	}
	return 0, errors.Wrap(errors.ErrState, "version too high")
}

// Create adds given schema instance to the store and returns the ID of the
// newly inserted entity. Versions must be sequential, starting with one.
func (b *SchemaBucket) Create(db weave.KVStore, s *Schema) ([]byte, error) {
	ver, err := b.CurrentSchema(db, s.Pkg)
	switch {
	case errors.ErrNotFound.Is(err):
		ver = 0
	case err != nil:
		return nil, errors.Wrap(err, "current schema")
	}
	if ver+1 != s.Version {
		return nil, errors.Wrapf(errors.ErrDuplicate, "previous schema of %q is %d", s.Pkg, ver)
	}
	key := schemaID(s.Pkg, s.Version)
	if err := b.b.Save(db, orm.NewSimpleObj(key, s)); err != nil {
		return nil, errors.Wrap(err, "save")
	}
	return key, nil
}

// Register registers this bucket on the query router.
func (b *SchemaBucket) Register(name string, qr weave.QueryRouter) {
	b.b.Register(name, qr)
}

// MustInitPkg initialize schema versioning for given package names. This
// registers a version one schema. Already initialized packages are ignored.
func MustInitPkg(db weave.KVStore, packageNames ...string) {
	for _, name := range packageNames {
		_, err := NewSchemaBucket().Create(db, &Schema{
			Metadata: &weave.Metadata{Schema: 1},
			Pkg:      name,
			Version:  1,
		})
		if err != nil && !errors.ErrDuplicate.Is(err) {
			panic(errors.Wrap(err, name))
		}
	}
}

// RegisterQuery registers schema bucket for querying under "/schemas".
func RegisterQuery(qr weave.QueryRouter) {
	NewSchemaBucket().Register("schemas", qr)
}
