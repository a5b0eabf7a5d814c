package main

import (
	"github.com/iov-one/ledger"
)

// addressFlag is a flag.Value for addresses in any format accepted by
// ledger.ParseAddress.
type addressFlag struct {
	addr ledger.Address
}

func (f *addressFlag) String() string {
	if f == nil || f.addr == nil {
		return ""
	}
	return f.addr.String()
}

func (f *addressFlag) Set(raw string) error {
	addr, err := ledger.ParseAddress(raw)
	if err != nil {
		return err
	}
	f.addr = addr
	return nil
}
