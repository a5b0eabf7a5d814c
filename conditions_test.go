package ledger_test

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressPrinting(t *testing.T) {
	Convey("address is printed in bech32", t, func() {
		addr := ledger.NewAddress([]byte("ABCD123456LHB"))

		So(addr.String(), ShouldStartWith, ledger.AddressHRP+"1")
		So(addr.String(), ShouldNotEqual, fmt.Sprintf("%X", []byte(addr)))
	})

	Convey("condition data is printed in hex", t, func() {
		cond := ledger.NewCondition("foo", "bar", []byte{0xAB, 0xCD})

		So(cond.String(), ShouldEqual, "foo/bar/ABCD")
	})

	Convey("empty address", t, func() {
		So(ledger.Address(nil).String(), ShouldEqual, "(nil)")
	})
}

func TestAddressRoundTrip(t *testing.T) {
	addr := ledger.NewCondition("sigs", "ed25519", []byte("pubkey")).Address()

	parsed, err := ledger.ParseAddress(addr.String())
	require.NoError(t, err)
	assert.Equal(t, addr, parsed)

	raw, err := json.Marshal(addr)
	require.NoError(t, err)
	var decoded ledger.Address
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, addr, decoded)
}

func TestAddressUnmarshalJSON(t *testing.T) {
	addr := ledger.NewAddress([]byte("some data"))
	hexAddr := strings.ToLower(fmt.Sprintf("%X", []byte(addr)))

	cases := map[string]struct {
		json     string
		wantErr  *errors.Error
		wantAddr ledger.Address
	}{
		"default decoding": {
			json:     `"` + hexAddr + `"`,
			wantAddr: addr,
		},
		"hex decoding": {
			json:     `"hex:` + hexAddr + `"`,
			wantAddr: addr,
		},
		"bech32 decoding": {
			json:     `"` + addr.String() + `"`,
			wantAddr: addr,
		},
		"cond decoding": {
			json:     `"cond:foo/bar/636f6e646974696f6e64617461"`,
			wantAddr: ledger.NewCondition("foo", "bar", []byte("conditiondata")).Address(),
		},
		"invalid condition format": {
			json:    `"cond:foo/636f6e646974696f6e64617461"`,
			wantErr: errors.ErrInput,
		},
		"invalid condition data": {
			json:    `"cond:foo/bar/zzzzz"`,
			wantErr: errors.ErrInput,
		},
		"too short": {
			json:    `"6865782d61646472"`,
			wantErr: errors.ErrInput,
		},
		"unknown format": {
			json:    `"foobar:xxx"`,
			wantErr: errors.ErrInput,
		},
		"zero address": {
			json:     `""`,
			wantAddr: nil,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var a ledger.Address
			err := json.Unmarshal([]byte(tc.json), &a)
			if !tc.wantErr.Is(err) {
				t.Fatalf("got error: %+v", err)
			}
			if err == nil && !reflect.DeepEqual(a, tc.wantAddr) {
				t.Fatalf("got address: %q", a)
			}
		})
	}
}

func TestConditionParse(t *testing.T) {
	cases := map[string]struct {
		cond    ledger.Condition
		wantErr *errors.Error
		ext     string
		typ     string
		data    []byte
	}{
		"valid": {
			cond: ledger.NewCondition("escrow", "init", []byte{1, 2, 3}),
			ext:  "escrow",
			typ:  "init",
			data: []byte{1, 2, 3},
		},
		"data with newline": {
			cond: ledger.NewCondition("sigs", "ed25519", []byte("a\nb")),
			ext:  "sigs",
			typ:  "ed25519",
			data: []byte("a\nb"),
		},
		"extension too short": {
			cond:    ledger.NewCondition("ab", "init", []byte{1}),
			wantErr: errors.ErrInput,
		},
		"missing data": {
			cond:    ledger.Condition("escrow/init/"),
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			ext, typ, data, err := tc.cond.Parse()
			if !tc.wantErr.Is(err) {
				t.Fatalf("got error: %+v", err)
			}
			assert.True(t, tc.wantErr.Is(tc.cond.Validate()))
			if tc.wantErr != nil {
				return
			}
			assert.Equal(t, tc.ext, ext)
			assert.Equal(t, tc.typ, typ)
			assert.Equal(t, tc.data, data)
		})
	}
}

func TestDerive(t *testing.T) {
	seed := []byte("initializer")

	a := ledger.Derive("escrow", "init", seed)
	b := ledger.Derive("escrow", "init", seed)
	assert.Equal(t, a, b)
	assert.NoError(t, a.Validate())
	assert.Equal(t, ledger.NewCondition("escrow", "init", seed).Address(), a)

	assert.NotEqual(t, a, ledger.Derive("escrow", "init", []byte("other")))
	assert.NotEqual(t, a, ledger.Derive("other", "init", seed))
}

func TestAddressClone(t *testing.T) {
	a := ledger.NewAddress([]byte("foo"))
	c := a.Clone()
	assert.True(t, a.Equals(c))
	c[0]++
	assert.False(t, a.Equals(c))
	assert.Nil(t, ledger.Address(nil).Clone())
}
