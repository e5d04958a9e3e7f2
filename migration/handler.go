package migration

import (
	"github.com/iov-one/junobox/errors"
	"github.com/iov-one/junobox/weave"
	"github.com/iov-one/junobox/x"
)

// SchemaMigratingHandler returns a handler that ensures incoming messages
// are in the current schema version format. Messages in an older schema
// are migrated first, messages that cannot be migrated are rejected. This
// is transparent to the wrapped handler.
func SchemaMigratingHandler(packageName string, h weave.Handler) weave.Handler {
	return &schemaMigratingHandler{
		handler:     h,
		packageName: packageName,
		schema:      NewSchemaBucket(),
		migrations:  reg,
	}
}

// SchemaMigratingRegistry wraps a registry so that every registered handler
// is a SchemaMigratingHandler for given package.
func SchemaMigratingRegistry(packageName string, r weave.Registry) weave.Registry {
	return &schemaMigratingRegistry{pkg: packageName, r: r}
}

type schemaMigratingRegistry struct {
	pkg string
	r   weave.Registry
}

func (r *schemaMigratingRegistry) Handle(m weave.Msg, h weave.Handler) {
	r.r.Handle(m, SchemaMigratingHandler(r.pkg, h))
}

type schemaMigratingHandler struct {
	handler     weave.Handler
	packageName string
	schema      *SchemaBucket
	migrations  *register
}

func (h *schemaMigratingHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if err := h.migrate(db, tx); err != nil {
		return nil, errors.Wrap(err, "migration")
	}
	return h.handler.Check(ctx, db, tx)
}

func (h *schemaMigratingHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	if err := h.migrate(db, tx); err != nil {
		return nil, errors.Wrap(err, "migration")
	}
	return h.handler.Deliver(ctx, db, tx)
}

func (h *schemaMigratingHandler) migrate(db weave.ReadOnlyKVStore, tx weave.Tx) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "get msg")
	}
	m, ok := msg.(Migratable)
	if !ok {
		return errors.Wrapf(errors.ErrMsg, "%T cannot be migrated", msg)
	}
	current, err := h.schema.CurrentSchema(db, h.packageName)
	if err != nil {
		return errors.Wrap(err, "current message schema")
	}
	// Migration is applied in place, directly modifying the instance.
	if err := h.migrations.Apply(db, m, current); err != nil {
		return errors.Wrap(err, "schema migration")
	}
	return nil
}

// RegisterRoutes registers the schema upgrade message handler.
func RegisterRoutes(r weave.Registry, auth x.Authenticator) {
	r.Handle(&UpgradeSchemaMsg{}, &upgradeSchemaHandler{
		bucket: NewSchemaBucket(),
		auth:   auth,
	})
}

type upgradeSchemaHandler struct {
	bucket *SchemaBucket
	auth   x.Authenticator
}

func (h *upgradeSchemaHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{}, nil
}

func (h *upgradeSchemaHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	key, err := h.bucket.Create(db, &Schema{
		Metadata: &weave.Metadata{Schema: 1},
		Pkg:      msg.Pkg,
		Version:  msg.ToVersion,
	})
	if err != nil {
		return nil, errors.Wrap(err, "create schema version")
	}
	weave.GetLogger(ctx).Info("schema upgraded", "pkg", msg.Pkg, "version", msg.ToVersion)
	return &weave.DeliverResult{Data: key}, nil
}

func (h *upgradeSchemaHandler) validate(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*UpgradeSchemaMsg, error) {
	var msg UpgradeSchemaMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	if !h.auth.HasAddress(ctx, conf.Admin) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "admin signature required")
	}
	return &msg, nil
}
