package orm

import (
	"fmt"
	"regexp"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
)

var isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString

// Bucket is a prefixed subspace of the DB holding models of one type.
//
// Bucket operations are the storage primitive of the ledger: Create
// allocates a key and fails if it is taken, Delete releases it and fails if
// it was never allocated.
type Bucket struct {
	name   string
	prefix []byte
}

// NewBucket creates a bucket to store data. Panics on an illegal name.
func NewBucket(name string) Bucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("Illegal bucket: %s", name))
	}
	return Bucket{
		name:   name,
		prefix: append([]byte(name), ':'),
	}
}

// Name returns the name of this bucket.
func (b Bucket) Name() string {
	return b.name
}

// DBKey is the full key we store in the db, including prefix.
// We copy into a new array rather than use append, as we don't
// want consecutive calls to overwrite the same byte array.
func (b Bucket) DBKey(key []byte) []byte {
	l := len(b.prefix)
	out := make([]byte, l+len(key))
	copy(out, b.prefix)
	copy(out[l:], key)
	return out
}

// One loads the model stored under given key into dest.
// Returns ErrNotFound if nothing is stored under that key.
func (b Bucket) One(db ledger.ReadOnlyKVStore, key []byte, dest Model) error {
	raw, err := db.Get(b.DBKey(key))
	if err != nil {
		return errors.Wrap(err, "get")
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%s %X", b.name, key)
	}
	if err := dest.Unmarshal(raw); err != nil {
		return errors.Wrapf(err, "unmarshal %s %X", b.name, key)
	}
	return nil
}

// Has returns true if a model is stored under given key.
func (b Bucket) Has(db ledger.ReadOnlyKVStore, key []byte) (bool, error) {
	return db.Has(b.DBKey(key))
}

// Create stores a new model under given key. Returns ErrAlreadyExists if
// the key is already allocated; the existing value is left untouched.
func (b Bucket) Create(db ledger.KVStore, key []byte, m Model) error {
	exists, err := b.Has(db, key)
	if err != nil {
		return errors.Wrap(err, "has")
	}
	if exists {
		return errors.Wrapf(errors.ErrAlreadyExists, "%s %X", b.name, key)
	}
	return b.Save(db, key, m)
}

// Save writes a model, overwriting any previous value.
func (b Bucket) Save(db ledger.KVStore, key []byte, m Model) error {
	if len(key) == 0 {
		return errors.Wrap(errors.ErrHuman, "missing key")
	}
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}
	raw, err := m.Marshal()
	if err != nil {
		return errors.Wrap(err, "marshal")
	}
	return db.Set(b.DBKey(key), raw)
}

// Delete removes the model stored under given key.
// Returns ErrNotFound if nothing is stored under that key.
func (b Bucket) Delete(db ledger.KVStore, key []byte) error {
	dbkey := b.DBKey(key)
	exists, err := db.Has(dbkey)
	if err != nil {
		return errors.Wrap(err, "has")
	}
	if !exists {
		return errors.Wrapf(errors.ErrNotFound, "%s %X", b.name, key)
	}
	return db.Delete(dbkey)
}

// Keys returns the primary keys of all models in this bucket, in ascending
// order.
func (b Bucket) Keys(db ledger.ReadOnlyKVStore) ([][]byte, error) {
	it, err := db.Iterator(b.prefix, prefixEnd(b.prefix))
	if err != nil {
		return nil, err
	}
	defer it.Release()

	var keys [][]byte
	for {
		key, _, err := it.Next()
		if errors.ErrIteratorDone.Is(err) {
			return keys, nil
		}
		if err != nil {
			return nil, err
		}
		keys = append(keys, key[len(b.prefix):])
	}
}

// prefixEnd returns the smallest key greater than all keys with given prefix.
func prefixEnd(prefix []byte) []byte {
	end := append([]byte(nil), prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}
