package app

import (
	"context"
	"io"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// chainIDKey is the database key under which the chain id is kept.
var chainIDKey = []byte("_app:chain_id")

// StoreApp contains a data store and all info needed to process
// transactions against it. Every transaction runs in its own cache
// wrap, which is only written back when the handler succeeds.
type StoreApp struct {
	logger log.Logger

	// name is what is returned from abci.Info
	name string

	// Database state (committed, check, deliver....)
	store ledger.CommitKVStore

	decoder     ledger.TxDecoder
	handler     ledger.Handler
	initializer ledger.Initializer

	// chainID is loaded from db in initialization
	// saved once in parseGenesis
	chainID string

	// baseContext contains context info that is valid for
	// lifetime of this app (eg. chainID)
	baseContext ledger.Context
}

// NewStoreApp initializes this app into a ready state with some defaults.
//
// It loads the latest committed version of the store and the chain id,
// if the chain was already initialized.
func NewStoreApp(
	name string,
	store ledger.CommitKVStore,
	decoder ledger.TxDecoder,
	handler ledger.Handler,
	initializer ledger.Initializer,
	ctx context.Context,
) (*StoreApp, error) {
	s := &StoreApp{
		name:        name,
		store:       store,
		decoder:     decoder,
		handler:     handler,
		initializer: initializer,
		logger:      log.NewNopLogger(),
		baseContext: ctx,
	}
	if err := store.LoadLatestVersion(); err != nil {
		return nil, errors.Wrap(err, "cannot load latest version")
	}
	chainID, err := store.Get(chainIDKey)
	if err != nil {
		return nil, errors.Wrap(err, "cannot load chain id")
	}
	if len(chainID) != 0 {
		s.chainID = string(chainID)
		s.baseContext = ledger.WithChainID(s.baseContext, s.chainID)
	}
	return s, nil
}

// WithLogger sets the logger on the StoreApp and returns it,
// to make it easy to chain in initialization
//
// also sets baseContext logger
func (s *StoreApp) WithLogger(logger log.Logger) *StoreApp {
	s.baseContext = ledger.WithLogger(s.baseContext, logger)
	s.logger = logger
	return s
}

// Logger returns the application base logger
func (s *StoreApp) Logger() log.Logger {
	return s.logger
}

// GetChainID returns the current chainID, empty until InitChain was called.
func (s *StoreApp) GetChainID() string {
	return s.chainID
}

// Name returns the application name.
func (s *StoreApp) Name() string {
	return s.name
}

// LatestVersion returns the last committed version of the store.
func (s *StoreApp) LatestVersion() (ledger.CommitID, error) {
	return s.store.LatestVersion()
}

// InitChain saves the chain id and loads the application state from
// genesis. It can only be called once for a given store.
func (s *StoreApp) InitChain(gen *Genesis) error {
	if s.chainID != "" {
		return errors.Wrapf(errors.ErrState, "chain %q already initialized", s.chainID)
	}
	if !ledger.IsValidChainID(gen.ChainID) {
		return errors.Wrapf(errors.ErrInput, "chain id %q", gen.ChainID)
	}

	cache := s.store.CacheWrap()
	if err := cache.Set(chainIDKey, []byte(gen.ChainID)); err != nil {
		cache.Discard()
		return errors.Wrap(err, "cannot save chain id")
	}
	if s.initializer != nil {
		if err := s.initializer.FromGenesis(gen.AppState, cache); err != nil {
			cache.Discard()
			return errors.Wrap(err, "initialize from genesis")
		}
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(err, "cannot write genesis state")
	}

	s.chainID = gen.ChainID
	s.baseContext = ledger.WithChainID(s.baseContext, s.chainID)
	s.logger.Info("chain initialized", "chain_id", s.chainID)
	return nil
}

// CheckTx validates a transaction without applying any change to the
// state.
func (s *StoreApp) CheckTx(txBytes []byte) (res *ledger.CheckResult, err error) {
	tx, ctx, err := s.prepare(txBytes)
	if err != nil {
		return nil, err
	}

	cache := s.store.CacheWrap()
	defer cache.Discard()
	defer errors.Recover(&err)

	return s.handler.Check(ctx, cache, tx)
}

// DeliverTx executes a transaction. The state changes are written only
// if the handler succeeds.
func (s *StoreApp) DeliverTx(txBytes []byte) (*ledger.DeliverResult, error) {
	tx, ctx, err := s.prepare(txBytes)
	if err != nil {
		return nil, err
	}

	cache := s.store.CacheWrap()
	res, err := s.deliver(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		s.logger.Debug("transaction rejected", "path", ledger.GetPath(tx), "err", err)
		return nil, err
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(err, "cannot write transaction state")
	}
	return res, nil
}

func (s *StoreApp) deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (res *ledger.DeliverResult, err error) {
	defer errors.Recover(&err)
	return s.handler.Deliver(ctx, db, tx)
}

// prepare decodes the transaction and builds the context it is
// processed in.
func (s *StoreApp) prepare(txBytes []byte) (ledger.Tx, ledger.Context, error) {
	if s.chainID == "" {
		return nil, nil, errors.Wrap(errors.ErrState, "chain not initialized")
	}
	tx, err := s.decoder(txBytes)
	if err != nil {
		return nil, nil, errors.Wrap(err, "cannot decode transaction")
	}
	last, err := s.store.LatestVersion()
	if err != nil {
		return nil, nil, errors.Wrap(err, "cannot read latest version")
	}
	ctx := ledger.WithHeight(s.baseContext, last.Version+1)
	return tx, ctx, nil
}

// Commit persists all delivered transactions as a new version.
func (s *StoreApp) Commit() (ledger.CommitID, error) {
	id, err := s.store.Commit()
	if err != nil {
		return id, errors.Wrap(err, "commit")
	}
	s.logger.Debug("commit synced", "version", id.Version, "hash", id.Hash)
	return id, nil
}

// View runs fn against a read only snapshot of the current state.
func (s *StoreApp) View(fn func(db ledger.ReadOnlyKVStore) error) error {
	cache := s.store.CacheWrap()
	defer cache.Discard()
	return fn(cache)
}

// Close releases the store, if it holds any resources.
func (s *StoreApp) Close() error {
	if c, ok := s.store.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
