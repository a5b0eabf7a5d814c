/*
Package errors implements the error kinds used across the ledger.

Every failure returned by a handler wraps one of the root errors declared
here. Callers test the kind with the Is method of the root error:

	if errors.ErrNotFound.Is(err) {
		...
	}

Extensions may declare their own root errors with Register. Codes must be
unique; Register panics on reuse.

Wrap attaches a stack trace at the innermost wrap. Format with %+v to see it.
*/
package errors
