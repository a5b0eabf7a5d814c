package store

import "github.com/iov-one/ledger"

// Move references for all storage types into this package
// for shorter names everywhere.

type ReadOnlyKVStore = ledger.ReadOnlyKVStore
type SetDeleter = ledger.SetDeleter
type KVStore = ledger.KVStore
type Batch = ledger.Batch
type Iterator = ledger.Iterator
type CacheableKVStore = ledger.CacheableKVStore
type KVCacheWrap = ledger.KVCacheWrap
type CommitKVStore = ledger.CommitKVStore
type CommitID = ledger.CommitID
type Model = ledger.Model
