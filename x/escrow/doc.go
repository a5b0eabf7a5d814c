/*
Package escrow implements a two party conditional transfer.

The initializer deposits a fixed amount earmarked for a taker. From then
on exactly one of two things may happen: the taker withdraws the amount,
or the initializer cancels and takes it back. Either transition destroys
the record, so any further attempt fails with ErrNotFound.

Every record lives at an address derived from its initializer, which
allows at most one open escrow per initializer. The value is held by the
cash wallet of that same address, together with a storage deposit that is
released to whoever closes the escrow.
*/
package escrow
