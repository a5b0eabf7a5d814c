package escrow

import (
	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/gconf"
	"github.com/iov-one/ledger/x/cash"
)

// Initializer fulfils the Initializer interface to load data from the genesis file
type Initializer struct {
	Minter cash.CoinMinter
}

var _ ledger.Initializer = (*Initializer)(nil)

// FromGenesis stores the configuration found under conf.escrow, and opens
// the escrows listed under escrow. Genesis escrows are minted directly
// into their wallet and carry no storage deposit.
func (i *Initializer) FromGenesis(opts ledger.Options, db ledger.KVStore) error {
	if err := gconf.InitConfig(db, opts, packageName, &Configuration{}); err != nil && !errors.ErrNotFound.Is(err) {
		return errors.Wrap(err, "init config")
	}

	var escrows []Escrow
	if err := opts.ReadOptions("escrow", &escrows); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	minter := i.Minter
	if minter == nil {
		minter = cash.NewController()
	}
	bucket := NewBucket()
	for j := range escrows {
		e := &escrows[j]
		key := Address(e.Initializer)
		if err := bucket.Create(db, key, e); err != nil {
			return errors.Wrapf(err, "escrow %d", j)
		}
		if err := minter.IssueCoins(db, key, e.Amount); err != nil {
			return errors.Wrapf(err, "escrow %d: cannot issue coins", j)
		}
	}
	return nil
}
