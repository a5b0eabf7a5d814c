/*
Package app wires the escrow and cash extensions into an application
that persists its state in an iavl store.

It is a good place to see how to wire together the various components.
*/
package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/app"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/store/iavl"
	"github.com/iov-one/ledger/x"
	"github.com/iov-one/ledger/x/cash"
	"github.com/iov-one/ledger/x/escrow"
	"github.com/iov-one/ledger/x/sigs"
	"github.com/tendermint/tendermint/libs/log"
)

// Name is the application name.
const Name = "escrowd"

// Authenticator returns the typical authentication,
// just using public key signatures
func Authenticator() x.Authenticator {
	return sigs.Authenticate{}
}

// CashControl returns a controller for cash functions
func CashControl() cash.Controller {
	return cash.NewController()
}

// Chain returns a chain of decorators, to handle authentication,
// logging, and recovery
func Chain() app.Decorators {
	return app.ChainDecorators(
		app.NewLogging(),
		app.NewRecovery(),
		sigs.NewDecorator(),
	)
}

// Router returns a router dispatching escrow and cash messages.
func Router(authFn x.Authenticator) *app.Router {
	r := app.NewRouter()
	cash.RegisterRoutes(r, authFn, CashControl())
	escrow.RegisterRoutes(r, authFn, CashControl())
	return r
}

// Stack wires up a standard router with a standard decorator
// chain. This can be passed into NewStoreApp.
func Stack() ledger.Handler {
	authFn := Authenticator()
	return Chain().WithHandler(Router(authFn))
}

// Initializers returns the genesis loaders of all extensions.
func Initializers() ledger.Initializer {
	return app.ChainInitializers(
		cash.Initializer{},
		&escrow.Initializer{Minter: CashControl()},
	)
}

// Application constructs the application over the database found in
// dbPath. An empty dbPath keeps the state in memory.
func Application(dbPath string, logger log.Logger) (*app.StoreApp, error) {
	kv, err := CommitKVStore(dbPath)
	if err != nil {
		return nil, err
	}
	s, err := app.NewStoreApp(Name, kv, TxDecoder, Stack(), Initializers(), context.Background())
	if err != nil {
		return nil, err
	}
	return s.WithLogger(logger.With("module", Name)), nil
}

// CommitKVStore returns an initialized KVStore that persists
// the data to the named path.
func CommitKVStore(dbPath string) (ledger.CommitKVStore, error) {
	// memory backed case, just for testing
	if dbPath == "" {
		return iavl.MockCommitStore(), nil
	}

	// Expand the path fully
	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "invalid database name: %s", dbPath)
	}

	// Some external calls accidentally add a ".db", which is now removed
	path = strings.TrimSuffix(path, filepath.Ext(path))

	// Split the database name into it's components (dir, name)
	dir := filepath.Dir(path)
	name := filepath.Base(path)
	return iavl.NewCommitStore(dir, name)
}
