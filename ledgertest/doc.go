/*
Package ledgertest provides mocks and helpers for testing extensions.

The mocks record how many times they were called so a test can assert
that a failing decorator stopped the chain.
*/
package ledgertest
