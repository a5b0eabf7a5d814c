package sigs

import (
	"encoding/binary"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/crypto"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/orm"
)

// BucketName is where we store the accounts
const BucketName = "sigs"

// maxSequenceValue is limited by the client. The greatest supported nonce
// value at client side is 2^53 - 1.
const maxSequenceValue = (1 << 53) - 1

// User is the replay protection state of a single public key.
type User struct {
	Pubkey   crypto.PublicKey
	Sequence int64
}

var _ orm.Model = (*User)(nil)

// Marshal encodes the user as pubkey[32] | sequence[8] big endian.
func (u *User) Marshal() ([]byte, error) {
	if err := u.Pubkey.Validate(); err != nil {
		return nil, err
	}
	raw := make([]byte, len(u.Pubkey)+8)
	n := copy(raw, u.Pubkey)
	binary.BigEndian.PutUint64(raw[n:], uint64(u.Sequence))
	return raw, nil
}

// Unmarshal decodes a user written by Marshal.
func (u *User) Unmarshal(raw []byte) error {
	if len(raw) < 8 {
		return errors.Wrapf(errors.ErrModel, "user size %d", len(raw))
	}
	n := len(raw) - 8
	u.Pubkey = append(crypto.PublicKey(nil), raw[:n]...)
	u.Sequence = int64(binary.BigEndian.Uint64(raw[n:]))
	return u.Validate()
}

// Validate ensures the key and sequence are sound.
func (u *User) Validate() error {
	if err := u.Pubkey.Validate(); err != nil {
		return errors.Wrap(errors.ErrModel, err.Error())
	}
	if u.Sequence < 0 {
		return errors.Wrap(ErrInvalidSequence, "negative")
	}
	return nil
}

// CheckAndIncrementSequence implements check and increment operation.
// If current sequence value is the same as given expected value then it is
// incremented. Otherwise an error is returned.
func (u *User) CheckAndIncrementSequence(expected int64) error {
	if u.Sequence != expected {
		return errors.Wrapf(ErrInvalidSequence, "mismatch expected %d, got %d", u.Sequence, expected)
	}
	next := u.Sequence + 1
	if next <= 0 || next > maxSequenceValue {
		return errors.Wrap(errors.ErrOverflow, "sequence out of range")
	}
	u.Sequence = next
	return nil
}

// NewBucket returns the bucket of users, keyed by the address of their key.
func NewBucket() orm.Bucket {
	return orm.NewBucket(BucketName)
}

// NextSequence returns the sequence the next signature of given key must
// carry.
func NextSequence(db ledger.ReadOnlyKVStore, pubkey crypto.PublicKey) (int64, error) {
	var u User
	err := NewBucket().One(db, pubkey.Address(), &u)
	switch {
	case err == nil:
		return u.Sequence, nil
	case errors.ErrNotFound.Is(err):
		return 0, nil
	default:
		return 0, err
	}
}
