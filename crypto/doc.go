/*
Package crypto provides the ed25519 keys used to sign transactions.

A PublicKey is turned into the signer Condition that handlers check
against, so the address of a party is a function of its key only.
*/
package crypto
