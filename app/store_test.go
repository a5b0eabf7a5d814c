package app

import (
	"context"
	"strings"
	"testing"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/ledgertest"
	"github.com/iov-one/ledger/store/iavl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// decodeTx reads "<path> <key>" transactions.
func decodeTx(raw []byte) (ledger.Tx, error) {
	parts := strings.Fields(string(raw))
	if len(parts) != 2 {
		return nil, errors.Wrap(errors.ErrInput, "want two fields")
	}
	return &ledgertest.Tx{Msg: &ledgertest.Msg{RoutePath: parts[0] + "/" + parts[1]}}, nil
}

// writeHandler stores the message path and fails or panics on demand.
type writeHandler struct{}

func (writeHandler) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.CheckResult, error) {
	if err := db.Set([]byte(ledger.GetPath(tx)), []byte("checked")); err != nil {
		return nil, err
	}
	return &ledger.CheckResult{}, nil
}

func (writeHandler) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.DeliverResult, error) {
	path := ledger.GetPath(tx)
	if err := db.Set([]byte(path), []byte(ledger.GetChainID(ctx))); err != nil {
		return nil, err
	}
	switch {
	case strings.HasSuffix(path, "/fail"):
		return nil, errors.Wrap(errors.ErrState, "fail")
	case strings.HasSuffix(path, "/panic"):
		panic("boom")
	}
	h, _ := ledger.GetHeight(ctx)
	return &ledger.DeliverResult{Log: path, Data: []byte{byte(h)}}, nil
}

func newTestApp(t *testing.T, db ledger.CommitKVStore) *StoreApp {
	t.Helper()
	initializer := recordInit{key: "genesis", seen: new([]string)}
	s, err := NewStoreApp("test", db, decodeTx, writeHandler{}, initializer, context.Background())
	require.NoError(t, err)
	return s
}

func read(t *testing.T, s *StoreApp, key string) []byte {
	t.Helper()
	var val []byte
	err := s.View(func(db ledger.ReadOnlyKVStore) error {
		var err error
		val, err = db.Get([]byte(key))
		return err
	})
	require.NoError(t, err)
	return val
}

func TestStoreAppLifecycle(t *testing.T) {
	db := iavl.MockCommitStore()
	s := newTestApp(t, db)

	_, err := s.DeliverTx([]byte("a ok"))
	assert.True(t, errors.ErrState.Is(err), "not initialized: %+v", err)

	gen := &Genesis{ChainID: "test-chain", AppState: ledger.Options{"genesis": []byte(`"loaded"`)}}
	require.NoError(t, s.InitChain(gen))
	assert.Equal(t, "test-chain", s.GetChainID())
	assert.Equal(t, []byte(`"loaded"`), read(t, s, "genesis"))

	err = s.InitChain(gen)
	assert.True(t, errors.ErrState.Is(err), "second init: %+v", err)

	res, err := s.DeliverTx([]byte("a ok"))
	require.NoError(t, err)
	assert.Equal(t, "a/ok", res.Log)
	assert.Equal(t, []byte{1}, res.Data)
	assert.Equal(t, []byte("test-chain"), read(t, s, "a/ok"))

	id, err := s.Commit()
	require.NoError(t, err)
	assert.EqualValues(t, 1, id.Version)

	res, err = s.DeliverTx([]byte("b ok"))
	require.NoError(t, err)
	assert.Equal(t, []byte{2}, res.Data)
}

func TestStoreAppDiscardsFailures(t *testing.T) {
	s := newTestApp(t, iavl.MockCommitStore())
	require.NoError(t, s.InitChain(&Genesis{ChainID: "test-chain"}))

	_, err := s.DeliverTx([]byte("a fail"))
	assert.True(t, errors.ErrState.Is(err))
	assert.Nil(t, read(t, s, "a/fail"))

	_, err = s.DeliverTx([]byte("a panic"))
	assert.True(t, errors.ErrPanic.Is(err))
	assert.Nil(t, read(t, s, "a/panic"))

	_, err = s.DeliverTx([]byte("garbage"))
	assert.True(t, errors.ErrInput.Is(err))

	_, err = s.CheckTx([]byte("a checked"))
	require.NoError(t, err)
	assert.Nil(t, read(t, s, "a/checked"), "check must not persist")
}

func TestStoreAppReload(t *testing.T) {
	db, cleanup := ledgertest.CommitKVStore(t)
	defer cleanup()

	s := newTestApp(t, db)
	require.NoError(t, s.InitChain(&Genesis{ChainID: "test-chain"}))
	_, err := s.DeliverTx([]byte("a ok"))
	require.NoError(t, err)
	_, err = s.Commit()
	require.NoError(t, err)

	// A second app over the same store picks up the chain id.
	again := newTestApp(t, db)
	assert.Equal(t, "test-chain", again.GetChainID())
	assert.Equal(t, []byte("test-chain"), read(t, again, "a/ok"))
}
