package orm

// Model is implemented by any entity that can be stored in a Bucket.
type Model interface {
	Marshal() ([]byte, error)
	Unmarshal([]byte) error
	// Validate returns error if the model is not in a valid state to
	// save to the db (eg. field missing, out of range, ...).
	Validate() error
}
