package sigs

import (
	"context"
	"testing"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/ledgertest"
	"github.com/iov-one/ledger/store"
	"github.com/iov-one/ledger/x"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// signerHandler records the signers it was called with.
type signerHandler struct {
	ledgertest.Handler
	signers []ledger.Condition
}

func (h *signerHandler) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.DeliverResult, error) {
	h.signers = Authenticate{}.GetConditions(ctx)
	return h.Handler.Deliver(ctx, db, tx)
}

func TestDecorator(t *testing.T) {
	db := store.MemStore()
	ctx := ledger.WithChainID(context.Background(), chainID)
	key := ledgertest.NewKey()

	tx := &signedTx{data: []byte("payload")}
	sig, err := SignTx(key, tx, chainID, 0)
	require.NoError(t, err)
	tx.sigs = []*StdSignature{sig}

	h := &signerHandler{}
	stack := ledgertest.Decorate(h, NewDecorator())

	_, err = stack.Deliver(ctx, db, tx)
	require.NoError(t, err)
	require.Len(t, h.signers, 1)
	assert.Equal(t, key.PublicKey().Condition(), h.signers[0])

	// same signature again fails and the handler is not reached
	_, err = stack.Deliver(ctx, db, tx)
	assert.True(t, ErrInvalidSequence.Is(err), "%+v", err)
	assert.Equal(t, 1, h.DeliverCallCount())

	// check with next sequence succeeds
	sig, err = SignTx(key, tx, chainID, 1)
	require.NoError(t, err)
	tx.sigs = []*StdSignature{sig}
	_, err = stack.Check(ctx, db, tx)
	require.NoError(t, err)
	assert.Equal(t, 1, h.CheckCallCount())
}

func TestDecoratorMissingSignature(t *testing.T) {
	db := store.MemStore()
	ctx := ledger.WithChainID(context.Background(), chainID)

	h := &ledgertest.Handler{}
	_, err := ledgertest.Decorate(h, NewDecorator()).Deliver(ctx, db, &signedTx{})
	assert.True(t, errors.ErrUnauthorized.Is(err), "%+v", err)
	_, err = ledgertest.Decorate(h, NewDecorator()).Deliver(ctx, db, &ledgertest.Tx{})
	assert.True(t, errors.ErrUnauthorized.Is(err), "%+v", err)
	assert.Equal(t, 0, h.DeliverCallCount())

	_, err = ledgertest.Decorate(h, NewDecorator().AllowMissingSigs()).Deliver(ctx, db, &signedTx{})
	require.NoError(t, err)
	assert.Equal(t, 1, h.DeliverCallCount())
	assert.Nil(t, x.MainSigner(ctx, Authenticate{}))
}
