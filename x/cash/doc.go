/*
Package cash defines wallets holding a single base unit of value, and the
primitives other extensions use to move that value between addresses.

A wallet is created on first credit. It is only ever destroyed through
CloseWallet, which releases whatever it still holds to a beneficiary.
*/
package cash
