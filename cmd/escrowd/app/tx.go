package app

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/crypto"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/x/cash"
	"github.com/iov-one/ledger/x/escrow"
	"github.com/iov-one/ledger/x/sigs"
)

// Tx contains the message and the signatures authorizing it. Exactly one
// of the message fields must be set.
type Tx struct {
	Signatures        []*sigs.StdSignature `protobuf:"bytes,1,rep,name=signatures,proto3" json:"signatures,omitempty"`
	CreateEscrowMsg   *escrow.CreateMsg    `protobuf:"bytes,2,opt,name=create_escrow_msg,json=createEscrowMsg,proto3" json:"create_escrow_msg,omitempty"`
	WithdrawEscrowMsg *escrow.WithdrawMsg  `protobuf:"bytes,3,opt,name=withdraw_escrow_msg,json=withdrawEscrowMsg,proto3" json:"withdraw_escrow_msg,omitempty"`
	CancelEscrowMsg   *escrow.CancelMsg    `protobuf:"bytes,4,opt,name=cancel_escrow_msg,json=cancelEscrowMsg,proto3" json:"cancel_escrow_msg,omitempty"`
	SendMsg           *cash.SendMsg        `protobuf:"bytes,5,opt,name=send_msg,json=sendMsg,proto3" json:"send_msg,omitempty"`
}

func (m *Tx) Reset()         { *m = Tx{} }
func (m *Tx) String() string { return proto.CompactTextString(m) }
func (*Tx) ProtoMessage()    {}

// make sure tx fulfills all interfaces
var _ ledger.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(bz []byte) (ledger.Tx, error) {
	var tx Tx
	if err := ledger.Unmarshal(bz, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

// NewTx wraps a single message into a transaction.
func NewTx(msg ledger.Msg) (*Tx, error) {
	var tx Tx
	switch m := msg.(type) {
	case *escrow.CreateMsg:
		tx.CreateEscrowMsg = m
	case *escrow.WithdrawMsg:
		tx.WithdrawEscrowMsg = m
	case *escrow.CancelMsg:
		tx.CancelEscrowMsg = m
	case *cash.SendMsg:
		tx.SendMsg = m
	default:
		return nil, errors.Wrapf(errors.ErrType, "unsupported message %T", msg)
	}
	return &tx, nil
}

// GetMsg returns the single message carried by the transaction, or nil
// if there is none.
func (tx *Tx) GetMsg() (ledger.Msg, error) {
	var msgs []ledger.Msg
	if tx.CreateEscrowMsg != nil {
		msgs = append(msgs, tx.CreateEscrowMsg)
	}
	if tx.WithdrawEscrowMsg != nil {
		msgs = append(msgs, tx.WithdrawEscrowMsg)
	}
	if tx.CancelEscrowMsg != nil {
		msgs = append(msgs, tx.CancelEscrowMsg)
	}
	if tx.SendMsg != nil {
		msgs = append(msgs, tx.SendMsg)
	}

	switch len(msgs) {
	case 0:
		return nil, nil
	case 1:
		return msgs[0], nil
	default:
		return nil, errors.Wrapf(errors.ErrMsg, "transaction carries %d messages", len(msgs))
	}
}

// GetSignatures returns the signatures attached to the transaction.
func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the bytes to sign...
func (tx *Tx) GetSignBytes() ([]byte, error) {
	// temporarily unset the signatures, as the sign bytes
	// should only come from the data itself, not previous signatures
	signatures := tx.Signatures
	tx.Signatures = nil

	bz, err := ledger.Marshal(tx)

	// reset the signatures after calculating the bytes
	tx.Signatures = signatures
	return bz, err
}

// SignTx wraps msg into a transaction signed by key, using the next
// sequence of key found in db, and returns its serialized form.
func SignTx(db ledger.ReadOnlyKVStore, chainID string, key crypto.PrivateKey, msg ledger.Msg) ([]byte, error) {
	tx, err := NewTx(msg)
	if err != nil {
		return nil, err
	}
	seq, err := sigs.NextSequence(db, key.PublicKey())
	if err != nil {
		return nil, errors.Wrap(err, "cannot read sequence")
	}
	sig, err := sigs.SignTx(key, tx, chainID, seq)
	if err != nil {
		return nil, errors.Wrap(err, "cannot sign")
	}
	tx.Signatures = []*sigs.StdSignature{sig}
	return ledger.Marshal(tx)
}
