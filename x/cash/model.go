package cash

import (
	"encoding/binary"

	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/orm"
)

const walletSize = 8

// Wallet is the balance held by a single address.
type Wallet struct {
	Amount uint64
}

var _ orm.Model = (*Wallet)(nil)

// Marshal encodes the balance as 8 bytes big endian.
func (w *Wallet) Marshal() ([]byte, error) {
	raw := make([]byte, walletSize)
	binary.BigEndian.PutUint64(raw, w.Amount)
	return raw, nil
}

// Unmarshal decodes a balance written by Marshal.
func (w *Wallet) Unmarshal(raw []byte) error {
	if len(raw) != walletSize {
		return errors.Wrapf(errors.ErrModel, "wallet size %d", len(raw))
	}
	w.Amount = binary.BigEndian.Uint64(raw)
	return nil
}

// Validate accepts any balance, including zero.
func (w *Wallet) Validate() error {
	return nil
}

// Add credits the wallet, failing on overflow.
func (w *Wallet) Add(amount uint64) error {
	sum := w.Amount + amount
	if sum < w.Amount {
		return errors.Wrapf(errors.ErrOverflow, "%d + %d", w.Amount, amount)
	}
	w.Amount = sum
	return nil
}

// Subtract debits the wallet, failing when the balance is too low.
func (w *Wallet) Subtract(amount uint64) error {
	if w.Amount < amount {
		return errors.Wrapf(errors.ErrInsufficientFunds, "have %d, need %d", w.Amount, amount)
	}
	w.Amount -= amount
	return nil
}

// NewBucket returns the bucket holding all wallets, keyed by address.
func NewBucket() orm.Bucket {
	return orm.NewBucket("cash")
}
