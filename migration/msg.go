package migration

import (
	"github.com/iov-one/junobox/codec"
	"github.com/iov-one/junobox/errors"
	"github.com/iov-one/junobox/gconf"
	"github.com/iov-one/junobox/weave"
)

const pathUpgradeSchemaMsg = "migration/upgrade_schema"

func init() {
	MustRegister(1, &UpgradeSchemaMsg{}, NoModification)
}

// UpgradeSchemaMsg bumps the schema version of a package by one.
type UpgradeSchemaMsg struct {
	Metadata  *weave.Metadata `json:"metadata"`
	Pkg       string          `json:"pkg"`
	ToVersion uint32          `json:"to_version"`
}

var _ weave.Msg = (*UpgradeSchemaMsg)(nil)

func (UpgradeSchemaMsg) Path() string {
	return pathUpgradeSchemaMsg
}

func (msg *UpgradeSchemaMsg) GetMetadata() *weave.Metadata {
	return msg.Metadata
}

func (msg *UpgradeSchemaMsg) Validate() error {
	var errs error
	errs = errors.Append(errs, errors.Wrap(msg.Metadata.Validate(), "metadata"))
	if msg.Pkg == "" {
		errs = errors.Append(errs, errors.Wrap(errors.ErrEmpty, "pkg is required"))
	}
	if msg.ToVersion == 0 {
		errs = errors.Append(errs, errors.Wrap(errors.ErrEmpty, "to version is required"))
	}
	return errs
}

func (msg *UpgradeSchemaMsg) Marshal() ([]byte, error) {
	enc := codec.NewEncoder()
	enc.Message(1, msg.Metadata)
	enc.String(2, msg.Pkg)
	enc.Uvarint(3, uint64(msg.ToVersion))
	return enc.Result()
}

func (msg *UpgradeSchemaMsg) Unmarshal(raw []byte) error {
	*msg = UpgradeSchemaMsg{}
	return codec.Decode(raw, func(f *codec.Field) (err error) {
		switch f.Num {
		case 1:
			msg.Metadata = &weave.Metadata{}
			return f.Message(msg.Metadata)
		case 2:
			msg.Pkg, err = f.String()
		case 3:
			msg.ToVersion, err = f.Uint32()
		}
		return err
	})
}

// Configuration is the in-store configuration of this package.
type Configuration struct {
	Metadata *weave.Metadata `json:"metadata"`
	// Admin is allowed to upgrade package schemas.
	Admin weave.Address `json:"admin"`
}

func (c *Configuration) Validate() error {
	if err := c.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := c.Admin.Validate(); err != nil {
		return errors.Wrap(err, "admin")
	}
	return nil
}

func (c *Configuration) Marshal() ([]byte, error) {
	enc := codec.NewEncoder()
	enc.Message(1, c.Metadata)
	enc.Bytes(2, c.Admin)
	return enc.Result()
}

func (c *Configuration) Unmarshal(raw []byte) error {
	*c = Configuration{}
	return codec.Decode(raw, func(f *codec.Field) (err error) {
		switch f.Num {
		case 1:
			c.Metadata = &weave.Metadata{}
			return f.Message(c.Metadata)
		case 2:
			c.Admin, err = f.Bytes()
		}
		return err
	})
}

func loadConf(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, "migration", &conf); err != nil {
		return nil, errors.Wrap(err, "load configuration")
	}
	return &conf, nil
}
