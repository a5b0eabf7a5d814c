package sigs

import (
	"fmt"

	"github.com/iov-one/ledger"
)

// signedTx is a minimal SignedTx used by the tests.
type signedTx struct {
	data []byte
	sigs []*StdSignature
}

var _ SignedTx = (*signedTx)(nil)
var _ ledger.Tx = (*signedTx)(nil)

func (tx *signedTx) GetMsg() (ledger.Msg, error)    { return nil, nil }
func (tx *signedTx) GetSignBytes() ([]byte, error)  { return tx.data, nil }
func (tx *signedTx) GetSignatures() []*StdSignature { return tx.sigs }
func (tx *signedTx) Reset()                         { *tx = signedTx{} }
func (tx *signedTx) String() string                 { return fmt.Sprintf("%X", tx.data) }
func (*signedTx) ProtoMessage()                     {}
