package iavl

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertGetHas(t testing.TB, kv store.ReadOnlyKVStore, key, val []byte, has bool) {
	t.Helper()
	got, err := kv.Get(key)
	require.NoError(t, err)
	assert.Equal(t, val, got)
	exists, err := kv.Has(key)
	require.NoError(t, err)
	assert.Equal(t, has, exists)
}

func TestCommitStoreCacheAndCommit(t *testing.T) {
	commit := MockCommitStore()
	require.NoError(t, commit.LoadLatestVersion())

	k, v := []byte("french"), []byte("fry")
	cache := commit.CacheWrap()
	require.NoError(t, cache.Set(k, v))
	assertGetHas(t, cache, k, v, true)

	// nothing visible in the committed state before Write and Commit
	got, err := commit.Get(k)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, cache.Write())
	id, err := commit.Commit()
	require.NoError(t, err)
	assert.Equal(t, int64(1), id.Version)
	assert.NotEmpty(t, id.Hash)

	got, err = commit.Get(k)
	require.NoError(t, err)
	assert.Equal(t, v, got)

	latest, err := commit.LatestVersion()
	require.NoError(t, err)
	assert.Equal(t, id, latest)

	// discarded changes never reach the tree
	c2 := commit.CacheWrap()
	require.NoError(t, c2.Delete(k))
	c2.Discard()
	assertGetHas(t, commit.CacheWrap(), k, v, true)
}

func TestCommitStoreIterator(t *testing.T) {
	commit := MockCommitStore()
	cache := commit.CacheWrap()
	for _, k := range []string{"a", "b", "c"} {
		require.NoError(t, cache.Set([]byte(k), []byte(k)))
	}
	require.NoError(t, cache.Write())

	it, err := commit.CacheWrap().ReverseIterator(nil, nil)
	require.NoError(t, err)
	defer it.Release()
	var keys []string
	for {
		k, _, err := it.Next()
		if errors.ErrIteratorDone.Is(err) {
			break
		}
		require.NoError(t, err)
		keys = append(keys, string(k))
	}
	assert.Equal(t, []string{"c", "b", "a"}, keys)
}

func TestCommitStoreReload(t *testing.T) {
	dir, err := ioutil.TempDir("", "iavl-commit-")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	commit, err := NewCommitStore(dir, "state")
	require.NoError(t, err)
	require.NoError(t, commit.LoadLatestVersion())
	cache := commit.CacheWrap()
	require.NoError(t, cache.Set([]byte("key"), []byte("value")))
	require.NoError(t, cache.Write())
	id, err := commit.Commit()
	require.NoError(t, err)

	// goleveldb holds a file lock, so the reload uses the same handle
	require.NoError(t, commit.LoadLatestVersion())
	latest, err := commit.LatestVersion()
	require.NoError(t, err)
	assert.Equal(t, id.Version, latest.Version)
	assert.Equal(t, id.Hash, latest.Hash)
	got, err := commit.Get([]byte("key"))
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), got)
}
