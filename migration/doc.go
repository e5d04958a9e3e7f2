/*
Package migration provides tooling necessary for working with schema
versioned entities. Functionality provided here can be applied both to
messages and models.

Schema version is declared per package, not per entity. The current version
of every package is kept in the database (the "_schema" bucket) and is
initialized from the genesis file:

    "initialize_schema": [
        {"pkg": "boxes", "ver": 1}
    ]

Every schema versioned entity carries weave.Metadata as its first attribute
and must register a migration function for every version, in package init:

    func init() {
        migration.MustRegister(1, &Box{}, migration.NoModification)
    }

Buckets that store versioned models should be wrapped with NewModelBucket
and handlers that process versioned messages with SchemaMigratingHandler.
Both ensure the entity is migrated to the current schema version before the
application code sees it. Entities with a schema higher than the current one
are rejected.

Upgrading a package schema is done with the UpgradeSchemaMsg, which must be
signed by the admin declared in the migration configuration.
*/
package migration
