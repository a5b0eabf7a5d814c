package cash

import (
	"math"
	"testing"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/ledgertest"
	"github.com/iov-one/ledger/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoveCoins(t *testing.T) {
	alice := ledgertest.NewCondition().Address()
	bob := ledgertest.NewCondition().Address()

	cases := map[string]struct {
		issue     uint64
		move      uint64
		dest      ledger.Address
		wantErr   *errors.Error
		wantAlice uint64
		wantBob   uint64
	}{
		"move part": {
			issue: 100, move: 40, dest: bob,
			wantAlice: 60, wantBob: 40,
		},
		"move everything": {
			issue: 100, move: 100, dest: bob,
			wantAlice: 0, wantBob: 100,
		},
		"insufficient funds": {
			issue: 10, move: 11, dest: bob,
			wantErr:   errors.ErrInsufficientFunds,
			wantAlice: 10,
		},
		"empty account": {
			move: 1, dest: bob,
			wantErr: errors.ErrInsufficientFunds,
		},
		"zero amount": {
			issue: 10, move: 0, dest: bob,
			wantErr:   errors.ErrInput,
			wantAlice: 10,
		},
		"to self": {
			issue: 10, move: 10, dest: alice,
			wantAlice: 10,
		},
		"invalid destination": {
			issue: 10, move: 1, dest: ledger.Address("short"),
			wantErr:   errors.ErrInput,
			wantAlice: 10,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			db := store.MemStore()
			ctrl := NewController()
			if tc.issue > 0 {
				require.NoError(t, ctrl.IssueCoins(db, alice, tc.issue))
			}

			err := ctrl.MoveCoins(db, alice, tc.dest, tc.move)
			if tc.wantErr != nil {
				assert.True(t, tc.wantErr.Is(err), "want %s, got %+v", tc.wantErr, err)
			} else {
				require.NoError(t, err)
			}

			got, err := ctrl.Balance(db, alice)
			require.NoError(t, err)
			assert.Equal(t, tc.wantAlice, got)
			got, err = ctrl.Balance(db, bob)
			require.NoError(t, err)
			assert.Equal(t, tc.wantBob, got)
		})
	}
}

func TestIssueCoinsOverflow(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController()
	addr := ledgertest.NewCondition().Address()

	require.NoError(t, ctrl.IssueCoins(db, addr, math.MaxUint64))
	err := ctrl.IssueCoins(db, addr, 1)
	assert.True(t, errors.ErrOverflow.Is(err), "%+v", err)

	other := ledgertest.NewCondition().Address()
	require.NoError(t, ctrl.IssueCoins(db, other, 1))
	err = ctrl.MoveCoins(db, other, addr, 1)
	assert.True(t, errors.ErrOverflow.Is(err), "%+v", err)

	bal, err := ctrl.Balance(db, other)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), bal, "failed move must not debit the source")
}

func TestCloseWallet(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController()
	holder := ledgertest.NewCondition().Address()
	beneficiary := ledgertest.NewCondition().Address()

	_, err := ctrl.CloseWallet(db, holder, beneficiary)
	assert.True(t, errors.ErrNotFound.Is(err), "%+v", err)

	require.NoError(t, ctrl.IssueCoins(db, holder, 7))
	released, err := ctrl.CloseWallet(db, holder, beneficiary)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), released)

	has, err := NewBucket().Has(db, holder)
	require.NoError(t, err)
	assert.False(t, has, "wallet must be destroyed")
	bal, err := ctrl.Balance(db, beneficiary)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), bal)

	// An emptied wallet still exists until it is closed.
	require.NoError(t, ctrl.IssueCoins(db, holder, 3))
	require.NoError(t, ctrl.MoveCoins(db, holder, beneficiary, 3))
	released, err = ctrl.CloseWallet(db, holder, beneficiary)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), released)
}

func TestWalletEncoding(t *testing.T) {
	w := Wallet{Amount: 0x0102030405060708}
	raw, err := w.Marshal()
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6, 7, 8}, raw)

	var got Wallet
	require.NoError(t, got.Unmarshal(raw))
	assert.Equal(t, w, got)
	assert.True(t, errors.ErrModel.Is(got.Unmarshal(raw[:7])))
}
