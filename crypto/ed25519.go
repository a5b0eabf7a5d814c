package crypto

import (
	"bytes"
	"encoding/hex"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
	"github.com/stellar/go/exp/crypto/derivation"
	"golang.org/x/crypto/ed25519"
)

const (
	// ExtensionName is used for the Condition of a public key.
	ExtensionName = "sigs"

	// DefaultPath is the derivation path used when none is given.
	DefaultPath = "m/44'/234'/0'"
)

// Signer is the interface of a private key.
type Signer interface {
	Sign(message []byte) ([]byte, error)
	PublicKey() PublicKey
}

// PublicKey is an ed25519 public key.
type PublicKey []byte

// Verify verifies the signature was created with this message and public key
func (p PublicKey) Verify(message, sig []byte) bool {
	if len(p) != ed25519.PublicKeySize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(p), message, sig)
}

// Condition encodes the public key into a ledger condition
func (p PublicKey) Condition() ledger.Condition {
	return ledger.NewCondition(ExtensionName, "ed25519", p)
}

// Address returns the address controlled by this key.
func (p PublicKey) Address() ledger.Address {
	return p.Condition().Address()
}

// Equals checks if two keys are the same.
func (p PublicKey) Equals(o PublicKey) bool {
	return bytes.Equal(p, o)
}

// Validate returns an error if the key has a wrong length.
func (p PublicKey) Validate() error {
	if len(p) != ed25519.PublicKeySize {
		return errors.Wrapf(errors.ErrInput, "public key length %d", len(p))
	}
	return nil
}

// PrivateKey is an ed25519 private key.
type PrivateKey []byte

var _ Signer = PrivateKey(nil)

// Sign returns a matching signature for this private key
func (p PrivateKey) Sign(message []byte) ([]byte, error) {
	if len(p) != ed25519.PrivateKeySize {
		return nil, errors.Wrap(errors.ErrInput, "invalid private key")
	}
	return ed25519.Sign(ed25519.PrivateKey(p), message), nil
}

// PublicKey returns the corresponding PublicKey
func (p PrivateKey) PublicKey() PublicKey {
	if len(p) != ed25519.PrivateKeySize {
		return nil
	}
	return PublicKey(ed25519.PrivateKey(p).Public().(ed25519.PublicKey))
}

// Seed returns the 32 byte seed the key was built from.
func (p PrivateKey) Seed() []byte {
	return ed25519.PrivateKey(p).Seed()
}

// GenPrivKeyEd25519 returns a random new private key
func GenPrivKeyEd25519() PrivateKey {
	_, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		panic(err)
	}
	return PrivateKey(priv)
}

// PrivKeyEd25519FromSeed will deterministically generate a private key from
// a given seed. Use if you have a strong source of external randomness,
// or for deterministic keys in test cases.
func PrivKeyEd25519FromSeed(seed []byte) PrivateKey {
	return PrivateKey(ed25519.NewKeyFromSeed(seed))
}

// DeriveKey derives a hardened SLIP-0010 ed25519 key for given path from a
// master seed.
func DeriveKey(seed []byte, path string) (PrivateKey, error) {
	if path == "" {
		path = DefaultPath
	}
	k, err := derivation.DeriveForPath(path, seed)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "derive %q: %s", path, err)
	}
	return PrivKeyEd25519FromSeed(k.Key), nil
}

// ParsePrivateKey decodes a hex encoded private key or 32 byte seed.
func ParsePrivateKey(enc string) (PrivateKey, error) {
	raw, err := hex.DecodeString(enc)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, "cannot decode hex")
	}
	switch len(raw) {
	case ed25519.SeedSize:
		return PrivKeyEd25519FromSeed(raw), nil
	case ed25519.PrivateKeySize:
		return PrivateKey(raw), nil
	default:
		return nil, errors.Wrapf(errors.ErrInput, "private key length %d", len(raw))
	}
}
