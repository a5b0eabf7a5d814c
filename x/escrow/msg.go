package escrow

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
)

const (
	pathCreateMsg   = "escrow/create"
	pathWithdrawMsg = "escrow/withdraw"
	pathCancelMsg   = "escrow/cancel"
)

// CreateMsg opens an escrow, moving Amount from the initializer.
// An empty Taker means the initializer escrows for itself.
type CreateMsg struct {
	Initializer ledger.Address `protobuf:"bytes,1,opt,name=initializer,proto3" json:"initializer,omitempty"`
	Taker       ledger.Address `protobuf:"bytes,2,opt,name=taker,proto3" json:"taker,omitempty"`
	Amount      uint64         `protobuf:"varint,3,opt,name=amount,proto3" json:"amount,omitempty"`
}

func (m *CreateMsg) Reset()         { *m = CreateMsg{} }
func (m *CreateMsg) String() string { return proto.CompactTextString(m) }
func (*CreateMsg) ProtoMessage()    {}

// WithdrawMsg releases the escrow of Initializer to its taker.
type WithdrawMsg struct {
	Initializer ledger.Address `protobuf:"bytes,1,opt,name=initializer,proto3" json:"initializer,omitempty"`
}

func (m *WithdrawMsg) Reset()         { *m = WithdrawMsg{} }
func (m *WithdrawMsg) String() string { return proto.CompactTextString(m) }
func (*WithdrawMsg) ProtoMessage()    {}

// CancelMsg returns the escrow of Initializer back to it.
type CancelMsg struct {
	Initializer ledger.Address `protobuf:"bytes,1,opt,name=initializer,proto3" json:"initializer,omitempty"`
}

func (m *CancelMsg) Reset()         { *m = CancelMsg{} }
func (m *CancelMsg) String() string { return proto.CompactTextString(m) }
func (*CancelMsg) ProtoMessage()    {}

var _ ledger.Msg = (*CreateMsg)(nil)
var _ ledger.Msg = (*WithdrawMsg)(nil)
var _ ledger.Msg = (*CancelMsg)(nil)

// Path fulfills ledger.Msg interface to allow routing
func (CreateMsg) Path() string {
	return pathCreateMsg
}

// Path fulfills ledger.Msg interface to allow routing
func (WithdrawMsg) Path() string {
	return pathWithdrawMsg
}

// Path fulfills ledger.Msg interface to allow routing
func (CancelMsg) Path() string {
	return pathCancelMsg
}

// Validate makes sure that this is sensible
func (m *CreateMsg) Validate() error {
	if err := m.Initializer.Validate(); err != nil {
		return errors.Wrap(errors.ErrMsg, "initializer: "+err.Error())
	}
	if len(m.Taker) != 0 {
		if err := m.Taker.Validate(); err != nil {
			return errors.Wrap(errors.ErrMsg, "taker: "+err.Error())
		}
	}
	if m.Amount == 0 {
		return errors.Wrap(errors.ErrMsg, "amount must be positive")
	}
	return nil
}

// GetTaker returns the taker, which defaults to the initializer.
func (m *CreateMsg) GetTaker() ledger.Address {
	if len(m.Taker) == 0 {
		return m.Initializer
	}
	return m.Taker
}

// Validate makes sure that this is sensible
func (m *WithdrawMsg) Validate() error {
	if err := m.Initializer.Validate(); err != nil {
		return errors.Wrap(errors.ErrMsg, "initializer: "+err.Error())
	}
	return nil
}

// Validate makes sure that this is sensible
func (m *CancelMsg) Validate() error {
	if err := m.Initializer.Validate(); err != nil {
		return errors.Wrap(errors.ErrMsg, "initializer: "+err.Error())
	}
	return nil
}
