package escrow

import (
	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/orm"
	"github.com/iov-one/ledger/x/cash"
)

// Controller is the escrow state machine.
//
// It never verifies signatures. Every method takes the already
// authenticated caller and compares it by strict equality against the
// party allowed to perform the transition.
type Controller struct {
	bucket orm.Bucket
	bank   cash.Controller
}

// NewController returns a controller holding escrowed value in the wallets
// managed by bank.
func NewController(bank cash.Controller) Controller {
	return Controller{
		bucket: NewBucket(),
		bank:   bank,
	}
}

// Get loads the open escrow of given initializer.
// Returns ErrNotFound if there is none.
func (c Controller) Get(db ledger.ReadOnlyKVStore, initializer ledger.Address) (*Escrow, error) {
	var e Escrow
	if err := c.bucket.One(db, Address(initializer), &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// List returns all open escrows ordered by their address.
func (c Controller) List(db ledger.ReadOnlyKVStore) ([]*Escrow, error) {
	keys, err := c.bucket.Keys(db)
	if err != nil {
		return nil, errors.Wrap(err, "keys")
	}
	res := make([]*Escrow, 0, len(keys))
	for _, k := range keys {
		var e Escrow
		if err := c.bucket.One(db, k, &e); err != nil {
			return nil, err
		}
		res = append(res, &e)
	}
	return res, nil
}

// Initialize opens an escrow of amount from initializer to taker.
//
// The initializer pays the amount plus the storage deposit into the wallet
// of the escrow address. Nothing is written if any precondition fails.
func (c Controller) Initialize(db ledger.KVStore, caller, initializer, taker ledger.Address, amount uint64) (*Escrow, error) {
	if !caller.Equals(initializer) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "caller is not the initializer")
	}
	e := &Escrow{
		Initializer: initializer.Clone(),
		Taker:       taker.Clone(),
		Amount:      amount,
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}

	key := Address(initializer)
	if exists, err := c.bucket.Has(db, key); err != nil {
		return nil, errors.Wrap(err, "has")
	} else if exists {
		return nil, errors.Wrapf(errors.ErrAlreadyExists, "escrow %s", key)
	}

	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	total := amount + conf.Deposit()
	if total < amount {
		return nil, errors.Wrap(errors.ErrOverflow, "amount with storage deposit")
	}
	if err := c.bank.MoveCoins(db, initializer, key, total); err != nil {
		return nil, errors.Wrap(err, "deposit")
	}
	if err := c.bucket.Create(db, key, e); err != nil {
		return nil, errors.Wrap(err, "cannot store escrow")
	}
	return e, nil
}

// Withdraw releases the escrow of initializer to its taker, who must be
// the caller. It returns the closed escrow and the storage deposit that
// was released along with it.
func (c Controller) Withdraw(db ledger.KVStore, caller, initializer ledger.Address) (*Escrow, uint64, error) {
	e, err := c.Get(db, initializer)
	if err != nil {
		return nil, 0, err
	}
	if !caller.Equals(e.Taker) {
		return nil, 0, errors.Wrap(errors.ErrUnauthorized, "caller is not the taker")
	}
	deposit, err := c.close(db, e, e.Taker)
	if err != nil {
		return nil, 0, err
	}
	return e, deposit, nil
}

// Cancel returns the escrow of initializer back to it. Only the
// initializer may cancel, the taker has no such right.
func (c Controller) Cancel(db ledger.KVStore, caller, initializer ledger.Address) (*Escrow, uint64, error) {
	e, err := c.Get(db, initializer)
	if err != nil {
		return nil, 0, err
	}
	if !caller.Equals(e.Initializer) {
		return nil, 0, errors.Wrap(errors.ErrUnauthorized, "caller is not the initializer")
	}
	deposit, err := c.close(db, e, e.Initializer)
	if err != nil {
		return nil, 0, err
	}
	return e, deposit, nil
}

// close moves the escrowed amount to the beneficiary and destroys the
// record. The storage of the escrow address is then deallocated and
// whatever it still holds is credited to the beneficiary.
func (c Controller) close(db ledger.KVStore, e *Escrow, beneficiary ledger.Address) (uint64, error) {
	key := Address(e.Initializer)
	if err := c.bank.MoveCoins(db, key, beneficiary, e.Amount); err != nil {
		return 0, errors.Wrap(err, "release")
	}
	if err := c.bucket.Delete(db, key); err != nil {
		return 0, errors.Wrap(err, "cannot delete escrow")
	}
	deposit, err := c.bank.CloseWallet(db, key, beneficiary)
	if err != nil {
		return 0, errors.Wrap(err, "release storage deposit")
	}
	return deposit, nil
}
