package cash

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

func TestSendHandler(t *testing.T) {
	alice := ledgertest.NewCondition()
	bob := ledgertest.NewCondition()

	cases := map[string]struct {
		signer    ledger.Condition
		msg       *SendMsg
		wantCheck *errors.Error
		wantErr   *errors.Error
		wantBob   uint64
	}{
		"implied source": {
			signer:  alice,
			msg:     &SendMsg{Destination: bob.Address(), Amount: 30},
			wantBob: 30,
		},
		"explicit source": {
			signer:  alice,
			msg:     &SendMsg{Source: alice.Address(), Destination: bob.Address(), Amount: 30},
			wantBob: 30,
		},
		"source not signed": {
			signer:    bob,
			msg:       &SendMsg{Source: alice.Address(), Destination: bob.Address(), Amount: 30},
			wantCheck: errors.ErrUnauthorized,
			wantErr:   errors.ErrUnauthorized,
		},
		"no signer": {
			msg:       &SendMsg{Destination: bob.Address(), Amount: 30},
			wantCheck: errors.ErrUnauthorized,
			wantErr:   errors.ErrUnauthorized,
		},
		"zero amount": {
			signer:    alice,
			msg:       &SendMsg{Destination: bob.Address()},
			wantCheck: errors.ErrMsg,
			wantErr:   errors.ErrMsg,
		},
		"too much": {
			signer:  alice,
			msg:     &SendMsg{Destination: bob.Address(), Amount: 101},
			wantErr: errors.ErrInsufficientFunds,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			db := store.MemStore()
			ctrl := NewController()
			require.NoError(t, ctrl.IssueCoins(db, alice.Address(), 100))

			auth := &ledgertest.Auth{Signer: tc.signer}
			h := NewSendHandler(auth, ctrl)
			tx := &ledgertest.Tx{Msg: tc.msg}
			ctx := context.Background()

			_, err := h.Check(ctx, db, tx)
			if tc.wantCheck != nil {
				assert.True(t, tc.wantCheck.Is(err), "check: %+v", err)
			} else {
				require.NoError(t, err)
			}
			_, err = h.Deliver(ctx, db, tx)
			if tc.wantErr != nil {
				assert.True(t, tc.wantErr.Is(err), "deliver: %+v", err)
			} else {
				require.NoError(t, err)
			}

			bal, err := ctrl.Balance(db, bob.Address())
			require.NoError(t, err)
			assert.Equal(t, tc.wantBob, bal)
		})
	}
}
