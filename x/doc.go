/*
Package x contains some standard extensions.

Extensions implement common functionality (Handler, Decorator, etc.)
for use in a ledger application. The sub-packages hold the extensions
themselves; this package provides the glue they share, most notably
the Authenticator used to learn who signed a transaction.
*/
package x
