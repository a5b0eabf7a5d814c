package escrow

import (
	"math"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/gconf"
)

const packageName = "escrow"

// Configuration of the escrow extension.
type Configuration struct {
	// StorageDeposit is charged per byte of a stored escrow. It is paid
	// by the initializer on creation and released to whoever closes the
	// escrow.
	StorageDeposit uint64 `protobuf:"varint,1,opt,name=storage_deposit,json=storageDeposit,proto3" json:"storage_deposit,omitempty"`
}

func (m *Configuration) Reset()         { *m = Configuration{} }
func (m *Configuration) String() string { return proto.CompactTextString(m) }
func (*Configuration) ProtoMessage()    {}

var _ gconf.Configuration = (*Configuration)(nil)

// Validate rejects a deposit that would overflow for an escrow.
func (c *Configuration) Validate() error {
	if c.StorageDeposit > math.MaxUint64/EscrowSize {
		return errors.Wrap(errors.ErrModel, "storage deposit too high")
	}
	return nil
}

// Deposit returns the storage deposit of a single escrow.
func (c *Configuration) Deposit() uint64 {
	return c.StorageDeposit * EscrowSize
}

// loadConf returns the stored configuration. An extension that was never
// configured charges no storage deposit.
func loadConf(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	err := gconf.Load(db, packageName, &conf)
	switch {
	case err == nil:
		return &conf, nil
	case errors.ErrNotFound.Is(err):
		return &Configuration{}, nil
	default:
		return nil, errors.Wrap(err, "load configuration")
	}
}

// SaveConfig stores the configuration of this extension.
func SaveConfig(db ledger.KVStore, conf *Configuration) error {
	return gconf.Save(db, packageName, conf)
}
