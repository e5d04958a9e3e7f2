/*
Package junoboxd links together all the various components to construct
the junobox application.
*/
package junoboxd

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/iov-one/junobox/app"
	"github.com/iov-one/junobox/errors"
	"github.com/iov-one/junobox/migration"
	"github.com/iov-one/junobox/store/iavl"
	"github.com/iov-one/junobox/weave"
	"github.com/iov-one/junobox/x"
	"github.com/iov-one/junobox/x/bank"
	"github.com/iov-one/junobox/x/boxes"
	"github.com/iov-one/junobox/x/sigs"
	"github.com/iov-one/junobox/x/utils"
)

// Authenticator returns the typical authentication, just using public key
// signatures.
func Authenticator() x.Authenticator {
	return x.ChainAuth(sigs.Authenticate{})
}

// Chain returns a chain of decorators, to handle authentication, logging,
// and recovery.
func Chain() app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		// on CheckTx, bad tx don't affect state
		utils.NewSavepoint().OnCheck(),
		sigs.NewDecorator(),
		// on DeliverTx, a failed message still increments the nonce
		utils.NewSavepoint().OnDeliver(),
		utils.NewActionTagger(),
	)
}

// Router returns the router dispatching all messages of this application.
func Router(authFn x.Authenticator, engine *boxes.Engine) *app.Router {
	r := app.NewRouter()
	ctrl := bank.NewController(bank.NewWalletBucket())
	bank.RegisterRoutes(r, authFn, ctrl)
	boxes.RegisterRoutes(r, authFn, engine, ctrl)
	migration.RegisterRoutes(r, authFn)
	return r
}

// QueryRouter returns a default query router, allowing access to "/boxes",
// "/boxes/count", "/boxes/config", "/wallets", "/auth" and "/schemas".
func QueryRouter() weave.QueryRouter {
	r := weave.NewQueryRouter()
	r.RegisterAll(
		boxes.RegisterQuery,
		bank.RegisterQuery,
		sigs.RegisterQuery,
		migration.RegisterQuery,
	)
	return r
}

// Initializers returns the genesis initializers of all extensions. The
// migration initializer must run first, as every other package requires
// its schema version to be present.
func Initializers() weave.Initializer {
	return app.ChainInitializers(
		migration.Initializer{},
		bank.Initializer{},
		boxes.Initializer{},
	)
}

// Stack wires up a standard router with a standard decorator chain. This
// can be passed into BaseApp.
func Stack(engine *boxes.Engine) weave.Handler {
	authFn := Authenticator()
	return Chain().WithHandler(Router(authFn, engine))
}

// Application constructs a basic ABCI application with the given arguments.
func Application(name string, h weave.Handler, tx weave.TxDecoder, kv weave.CommitKVStore, debug bool) app.BaseApp {
	store := app.NewStoreApp(name, kv, QueryRouter(), context.Background()).
		WithInit(Initializers())
	return app.NewBaseApp(store, tx, h, debug)
}

// CommitKVStore returns an initialized KVStore that persists the data to
// the named path. An empty path returns a memory backed store.
func CommitKVStore(dbPath string) (weave.CommitKVStore, error) {
	if dbPath == "" {
		return iavl.NewMemCommitStore(), nil
	}

	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "invalid database name: %s", dbPath)
	}

	// Some external calls accidentally add a ".db", which is now removed
	path = strings.TrimSuffix(path, filepath.Ext(path))

	dir := filepath.Dir(path)
	name := filepath.Base(path)
	return iavl.NewCommitStore(dir, name)
}
