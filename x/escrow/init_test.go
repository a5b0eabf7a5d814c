package escrow

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/gconf"
	"github.com/iov-one/ledger/ledgertest"
	"github.com/iov-one/ledger/store"
	"github.com/iov-one/ledger/x/cash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenesis(t *testing.T) {
	alice := ledgertest.NewCondition().Address()
	bob := ledgertest.NewCondition().Address()

	genesis := fmt.Sprintf(`{
		"conf": {"escrow": {"storage_deposit": 3}},
		"escrow": [{"initializer": %q, "taker": %q, "amount": 250}]
	}`, alice, bob)
	var opts ledger.Options
	require.NoError(t, json.Unmarshal([]byte(genesis), &opts))

	db := store.MemStore()
	bank := cash.NewController()
	require.NoError(t, (&Initializer{Minter: bank}).FromGenesis(opts, db))

	var conf Configuration
	require.NoError(t, gconf.Load(db, "escrow", &conf))
	assert.Equal(t, uint64(3), conf.StorageDeposit)

	ctrl := NewController(bank)
	e, err := ctrl.Get(db, alice)
	require.NoError(t, err)
	assert.Equal(t, &Escrow{Initializer: alice, Taker: bob, Amount: 250}, e)

	_, deposit, err := ctrl.Withdraw(db, bob, alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), deposit)
	bal, err := bank.Balance(db, bob)
	require.NoError(t, err)
	assert.Equal(t, uint64(250), bal)
}

func TestGenesisWithoutEscrowSection(t *testing.T) {
	db := store.MemStore()
	require.NoError(t, (&Initializer{}).FromGenesis(ledger.Options{}, db))

	conf, err := loadConf(db)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), conf.Deposit())
}

func TestGenesisInvalidEscrow(t *testing.T) {
	alice := ledgertest.NewCondition().Address()
	genesis := fmt.Sprintf(`{"escrow": [{"initializer": %q, "taker": %q, "amount": 0}]}`, alice, alice)
	var opts ledger.Options
	require.NoError(t, json.Unmarshal([]byte(genesis), &opts))

	err := (&Initializer{}).FromGenesis(opts, store.MemStore())
	assert.True(t, errors.ErrModel.Is(err), "%+v", err)
}
