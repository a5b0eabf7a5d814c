package app

import (
	"context"
	"testing"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/ledgertest"
	"github.com/iov-one/ledger/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouterSuccess(t *testing.T) {
	r := NewRouter()

	msg := &ledgertest.Msg{RoutePath: "test/good"}
	h := &ledgertest.Handler{
		CheckResult:   ledger.CheckResult{Log: "checked"},
		DeliverResult: ledger.DeliverResult{Log: "delivered"},
	}
	r.Handle(msg, h)

	tx := &ledgertest.Tx{Msg: msg}
	ctx := context.Background()
	db := store.MemStore()

	cres, err := r.Check(ctx, db, tx)
	require.NoError(t, err)
	assert.Equal(t, "checked", cres.Log)
	assert.Equal(t, 1, h.CheckCallCount())

	dres, err := r.Deliver(ctx, db, tx)
	require.NoError(t, err)
	assert.Equal(t, "delivered", dres.Log)
	assert.Equal(t, 1, h.DeliverCallCount())
}

func TestRouterNoHandler(t *testing.T) {
	r := NewRouter()
	r.Handle(&ledgertest.Msg{RoutePath: "test/good"}, &ledgertest.Handler{})

	ctx := context.Background()
	db := store.MemStore()

	cases := map[string]struct {
		tx      ledger.Tx
		wantErr *errors.Error
	}{
		"unknown path": {
			tx:      &ledgertest.Tx{Msg: &ledgertest.Msg{RoutePath: "test/missing"}},
			wantErr: errors.ErrNotFound,
		},
		"empty transaction": {
			tx:      &ledgertest.Tx{},
			wantErr: errors.ErrMsg,
		},
		"message cannot be loaded": {
			tx:      &ledgertest.Tx{Err: errors.ErrType},
			wantErr: errors.ErrType,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			_, err := r.Check(ctx, db, tc.tx)
			assert.True(t, tc.wantErr.Is(err), "check: %+v", err)
			_, err = r.Deliver(ctx, db, tc.tx)
			assert.True(t, tc.wantErr.Is(err), "deliver: %+v", err)
		})
	}
}

func TestRouterPanicOnRegistration(t *testing.T) {
	r := NewRouter()
	r.Handle(&ledgertest.Msg{RoutePath: "test/good"}, &ledgertest.Handler{})

	assert.Panics(t, func() {
		r.Handle(&ledgertest.Msg{RoutePath: "test/good"}, &ledgertest.Handler{})
	}, "duplicated path")
	assert.Panics(t, func() {
		r.Handle(&ledgertest.Msg{RoutePath: "not a path"}, &ledgertest.Handler{})
	}, "invalid path")
}
