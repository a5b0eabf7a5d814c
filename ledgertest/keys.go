package ledgertest

import (
	"testing"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/crypto"
)

// NewKey returns a random ed25519 private key.
func NewKey() crypto.PrivateKey {
	return crypto.GenPrivKeyEd25519()
}

// NewCondition returns the signer condition of a random key.
func NewCondition() ledger.Condition {
	return NewKey().PublicKey().Condition()
}

// ParseAddress takes an address in a human readable format and returns
// its binary representation.
func ParseAddress(t testing.TB, enc string) ledger.Address {
	t.Helper()

	addr, err := ledger.ParseAddress(enc)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", enc, err)
	}
	return addr
}
