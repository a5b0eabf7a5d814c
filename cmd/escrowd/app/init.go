package app

import (
	"encoding/json"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/app"
	"github.com/iov-one/ledger/x/escrow"
)

// GenesisAccount is a funded account of a new chain.
type GenesisAccount struct {
	Address ledger.Address
	Amount  uint64
}

// GenInitOptions produces the genesis of a chain with the given funded
// accounts and storage deposit.
func GenInitOptions(chainID string, deposit uint64, accounts ...GenesisAccount) (*app.Genesis, error) {
	type (
		dict  map[string]interface{}
		array []interface{}
	)
	cash := array{}
	for _, a := range accounts {
		cash = append(cash, dict{
			"address": a.Address,
			"amount":  a.Amount,
		})
	}
	raw, err := json.Marshal(dict{
		"cash": cash,
		"conf": dict{
			"escrow": escrow.Configuration{StorageDeposit: deposit},
		},
	})
	if err != nil {
		return nil, err
	}
	var opts ledger.Options
	if err := json.Unmarshal(raw, &opts); err != nil {
		return nil, err
	}
	return &app.Genesis{ChainID: chainID, AppState: opts}, nil
}
