package escrow

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/orm"
)

const (
	// BucketName is where we store the escrows
	BucketName = "escrow"

	discriminatorSize = 8

	// EscrowSize is the length of a serialized escrow.
	EscrowSize = discriminatorSize + 2*ledger.AddressLength + 8
)

// discriminator tags the serialized form of an escrow.
var discriminator = func() []byte {
	h := sha256.Sum256([]byte("account:Escrow"))
	return h[:discriminatorSize]
}()

// Escrow holds the value deposited by the initializer until it is
// either withdrawn by the taker or cancelled by the initializer.
// None of its fields ever change after creation.
type Escrow struct {
	Initializer ledger.Address `json:"initializer"`
	Taker       ledger.Address `json:"taker"`
	Amount      uint64         `json:"amount"`
}

var _ orm.Model = (*Escrow)(nil)

// Validate ensures the escrow is valid
func (e *Escrow) Validate() error {
	if err := e.Initializer.Validate(); err != nil {
		return errors.Wrap(errors.ErrModel, "initializer: "+err.Error())
	}
	if err := e.Taker.Validate(); err != nil {
		return errors.Wrap(errors.ErrModel, "taker: "+err.Error())
	}
	if e.Amount == 0 {
		return errors.Wrap(errors.ErrModel, "amount must be positive")
	}
	return nil
}

// Marshal encodes the escrow into its fixed size layout:
//
//	discriminator | initializer | taker | amount
//	8 bytes       | 32 bytes    | 32 bytes | uint64 (little endian)
func (e *Escrow) Marshal() ([]byte, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	raw := make([]byte, 0, EscrowSize)
	raw = append(raw, discriminator...)
	raw = append(raw, e.Initializer...)
	raw = append(raw, e.Taker...)
	amount := make([]byte, 8)
	binary.LittleEndian.PutUint64(amount, e.Amount)
	return append(raw, amount...), nil
}

// Unmarshal decodes an escrow written by Marshal.
func (e *Escrow) Unmarshal(raw []byte) error {
	if len(raw) != EscrowSize {
		return errors.Wrapf(errors.ErrModel, "escrow size %d", len(raw))
	}
	if !bytes.Equal(raw[:discriminatorSize], discriminator) {
		return errors.Wrapf(errors.ErrModel, "discriminator %X", raw[:discriminatorSize])
	}
	raw = raw[discriminatorSize:]
	e.Initializer = ledger.Address(raw[:ledger.AddressLength]).Clone()
	raw = raw[ledger.AddressLength:]
	e.Taker = ledger.Address(raw[:ledger.AddressLength]).Clone()
	e.Amount = binary.LittleEndian.Uint64(raw[ledger.AddressLength:])
	return nil
}

// Condition calculates the condition that controls the escrow of given
// initializer. Its address both keys the escrow record and owns the
// escrowed value.
func Condition(initializer ledger.Address) ledger.Condition {
	return ledger.NewCondition("escrow", "init", initializer)
}

// Address returns the address an escrow of given initializer is stored at.
func Address(initializer ledger.Address) ledger.Address {
	return Condition(initializer).Address()
}

// NewBucket returns the bucket of escrows keyed by their derived address.
func NewBucket() orm.Bucket {
	return orm.NewBucket(BucketName)
}
