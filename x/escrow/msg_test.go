package escrow

import (
	"testing"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/ledgertest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMsgValidate(t *testing.T) {
	alice := ledgertest.NewCondition().Address()
	bob := ledgertest.NewCondition().Address()

	cases := map[string]struct {
		msg   CreateMsg
		valid bool
	}{
		"valid":           {msg: CreateMsg{Initializer: alice, Taker: bob, Amount: 1}, valid: true},
		"implied taker":   {msg: CreateMsg{Initializer: alice, Amount: 1}, valid: true},
		"zero amount":     {msg: CreateMsg{Initializer: alice, Taker: bob}},
		"no initializer":  {msg: CreateMsg{Taker: bob, Amount: 1}},
		"malformed taker": {msg: CreateMsg{Initializer: alice, Taker: ledger.Address("bob"), Amount: 1}},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			err := tc.msg.Validate()
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.True(t, errors.ErrMsg.Is(err), "%+v", err)
			}
		})
	}
}

func TestCreateMsgTaker(t *testing.T) {
	alice := ledgertest.NewCondition().Address()
	bob := ledgertest.NewCondition().Address()

	assert.Equal(t, alice, (&CreateMsg{Initializer: alice}).GetTaker())
	assert.Equal(t, bob, (&CreateMsg{Initializer: alice, Taker: bob}).GetTaker())
}

func TestSettleMsgValidate(t *testing.T) {
	alice := ledgertest.NewCondition().Address()

	require.NoError(t, (&WithdrawMsg{Initializer: alice}).Validate())
	require.NoError(t, (&CancelMsg{Initializer: alice}).Validate())
	assert.True(t, errors.ErrMsg.Is((&WithdrawMsg{}).Validate()))
	assert.True(t, errors.ErrMsg.Is((&CancelMsg{Initializer: alice[:4]}).Validate()))
}

func TestMsgEncoding(t *testing.T) {
	msg := &CreateMsg{
		Initializer: ledgertest.NewCondition().Address(),
		Taker:       ledgertest.NewCondition().Address(),
		Amount:      42,
	}
	raw, err := ledger.Marshal(msg)
	require.NoError(t, err)

	var got CreateMsg
	require.NoError(t, ledger.Unmarshal(raw, &got))
	assert.Equal(t, *msg, got)

	for _, path := range []string{msg.Path(), (&WithdrawMsg{}).Path(), (&CancelMsg{}).Path()} {
		assert.NoError(t, ledger.ValidatePath(path))
	}
}
