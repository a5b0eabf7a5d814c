package cash

import (
	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/orm"
)

// Balancer reads the balance of an address.
type Balancer interface {
	Balance(ledger.ReadOnlyKVStore, ledger.Address) (uint64, error)
}

// CoinMover moves value between two addresses.
type CoinMover interface {
	MoveCoins(db ledger.KVStore, src, dest ledger.Address, amount uint64) error
}

// CoinMinter creates new value on an address.
type CoinMinter interface {
	IssueCoins(db ledger.KVStore, dest ledger.Address, amount uint64) error
}

// Controller is the functionality needed by x/cash handlers and by other
// extensions that hold value on behalf of an address.
type Controller interface {
	Balancer
	CoinMover
	CoinMinter
	CloseWallet(db ledger.KVStore, addr, beneficiary ledger.Address) (uint64, error)
}

// BaseController is a simple implementation of controller.
type BaseController struct {
	bucket orm.Bucket
}

var _ Controller = BaseController{}

// NewController returns a controller operating on the cash bucket.
func NewController() BaseController {
	return BaseController{bucket: NewBucket()}
}

// Balance returns the amount held by given address. An address without a
// wallet holds nothing.
func (c BaseController) Balance(db ledger.ReadOnlyKVStore, addr ledger.Address) (uint64, error) {
	w, err := c.load(db, addr)
	if err != nil {
		return 0, err
	}
	return w.Amount, nil
}

// MoveCoins moves the given amount from src to dest.
// If src doesn't exist, or doesn't have sufficient
// coins, it fails and nothing is written.
func (c BaseController) MoveCoins(db ledger.KVStore, src, dest ledger.Address, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrInput, "non-positive amount")
	}
	if err := src.Validate(); err != nil {
		return errors.Wrap(err, "src")
	}
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "dest")
	}

	sender, err := c.load(db, src)
	if err != nil {
		return err
	}
	if err := sender.Subtract(amount); err != nil {
		return errors.Wrapf(err, "source %s", src)
	}
	if src.Equals(dest) {
		return nil
	}
	recipient, err := c.load(db, dest)
	if err != nil {
		return err
	}
	if err := recipient.Add(amount); err != nil {
		return errors.Wrapf(err, "destination %s", dest)
	}

	if err := c.bucket.Save(db, src, sender); err != nil {
		return errors.Wrap(err, "save sender")
	}
	return c.bucket.Save(db, dest, recipient)
}

// IssueCoins attempts to add the given amount of coins to
// the destination address. Fails if it overflows the wallet.
func (c BaseController) IssueCoins(db ledger.KVStore, dest ledger.Address, amount uint64) error {
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "dest")
	}
	recipient, err := c.load(db, dest)
	if err != nil {
		return err
	}
	if err := recipient.Add(amount); err != nil {
		return err
	}
	return c.bucket.Save(db, dest, recipient)
}

// CloseWallet releases the whole balance held by addr to the beneficiary
// and destroys the wallet. It returns the released amount.
// Returns ErrNotFound if addr has no wallet.
func (c BaseController) CloseWallet(db ledger.KVStore, addr, beneficiary ledger.Address) (uint64, error) {
	if err := beneficiary.Validate(); err != nil {
		return 0, errors.Wrap(err, "beneficiary")
	}
	var w Wallet
	if err := c.bucket.One(db, addr, &w); err != nil {
		return 0, err
	}
	if err := c.bucket.Delete(db, addr); err != nil {
		return 0, err
	}
	if w.Amount == 0 {
		return 0, nil
	}
	if err := c.IssueCoins(db, beneficiary, w.Amount); err != nil {
		return 0, errors.Wrap(err, "release")
	}
	return w.Amount, nil
}

func (c BaseController) load(db ledger.ReadOnlyKVStore, addr ledger.Address) (*Wallet, error) {
	var w Wallet
	err := c.bucket.One(db, addr, &w)
	switch {
	case err == nil:
		return &w, nil
	case errors.ErrNotFound.Is(err):
		return &Wallet{}, nil
	default:
		return nil, err
	}
}
