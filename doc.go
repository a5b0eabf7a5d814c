/*
Package ledger defines the common interfaces that tie together the
storage, authentication and extension packages of the escrow ledger, as
well as implementations of some of the simpler components (when
interfaces would be too much overhead).

We pass context through context.Context between app, decorators and
handlers. For every value of type T carried in the context there are two
functions:

	WithXYZ(Context, T) Context
	GetXYZ(Context) (val T, ok bool)

WithXYZ panics if the value was previously set, so that lower level
modules cannot overwrite what the app has set (eg. chain id).
*/
package ledger
