package escrow

import (
	"crypto/sha256"
	"encoding/binary"
	"testing"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/ledgertest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscrowLayout(t *testing.T) {
	e := Escrow{
		Initializer: ledgertest.NewCondition().Address(),
		Taker:       ledgertest.NewCondition().Address(),
		Amount:      1000,
	}
	raw, err := e.Marshal()
	require.NoError(t, err)
	require.Len(t, raw, 80)

	tag := sha256.Sum256([]byte("account:Escrow"))
	assert.Equal(t, tag[:8], raw[:8])
	assert.Equal(t, []byte(e.Initializer), raw[8:40])
	assert.Equal(t, []byte(e.Taker), raw[40:72])
	assert.Equal(t, uint64(1000), binary.LittleEndian.Uint64(raw[72:]))

	var got Escrow
	require.NoError(t, got.Unmarshal(raw))
	assert.Equal(t, e, got)
}

func TestEscrowUnmarshalRejects(t *testing.T) {
	e := Escrow{
		Initializer: ledgertest.NewCondition().Address(),
		Taker:       ledgertest.NewCondition().Address(),
		Amount:      1,
	}
	raw, err := e.Marshal()
	require.NoError(t, err)

	var got Escrow
	assert.True(t, errors.ErrModel.Is(got.Unmarshal(raw[:79])))
	assert.True(t, errors.ErrModel.Is(got.Unmarshal(append(raw, 0))))

	bad := append([]byte(nil), raw...)
	bad[0] ^= 0xff
	assert.True(t, errors.ErrModel.Is(got.Unmarshal(bad)))
}

func TestEscrowValidate(t *testing.T) {
	addr := ledgertest.NewCondition().Address()
	cases := map[string]Escrow{
		"missing initializer": {Taker: addr, Amount: 1},
		"short taker":         {Initializer: addr, Taker: ledger.Address{1, 2, 3}, Amount: 1},
		"zero amount":         {Initializer: addr, Taker: addr},
	}
	for name, e := range cases {
		t.Run(name, func(t *testing.T) {
			assert.True(t, errors.ErrModel.Is(e.Validate()))
			_, err := e.Marshal()
			assert.True(t, errors.ErrModel.Is(err))
		})
	}
}

func TestDerivedAddress(t *testing.T) {
	alice := ledgertest.NewCondition().Address()
	bob := ledgertest.NewCondition().Address()

	assert.Equal(t, Address(alice), Address(alice.Clone()))
	assert.NotEqual(t, Address(alice), Address(bob))
	assert.NotEqual(t, alice, Address(alice))
	require.NoError(t, Address(alice).Validate())

	ext, typ, data, err := Condition(alice).Parse()
	require.NoError(t, err)
	assert.Equal(t, "escrow", ext)
	assert.Equal(t, "init", typ)
	assert.Equal(t, []byte(alice), data)
}
