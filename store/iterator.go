package store

import (
	"bytes"

	"github.com/google/btree"
	"github.com/iov-one/ledger/errors"
)

// mergeIterator combines the cached changes of a BTreeCacheWrap with the
// content of the parent store. Cached items shadow the parent ones, and
// deleted items hide them.
type mergeIterator struct {
	parent    Iterator
	items     []btree.Item
	ascending bool

	// pending is the next parent model not yet returned.
	pending    *Model
	parentDone bool
}

var _ Iterator = (*mergeIterator)(nil)

func newMergeIterator(parent Iterator, items []btree.Item, ascending bool) *mergeIterator {
	return &mergeIterator{
		parent:    parent,
		items:     items,
		ascending: ascending,
	}
}

func (m *mergeIterator) peekParent() (*Model, error) {
	if m.pending != nil || m.parentDone {
		return m.pending, nil
	}
	key, value, err := m.parent.Next()
	if err != nil {
		if errors.ErrIteratorDone.Is(err) {
			m.parentDone = true
			return nil, nil
		}
		return nil, err
	}
	m.pending = &Model{Key: key, Value: value}
	return m.pending, nil
}

// first returns true if key a is to be returned before key b.
func (m *mergeIterator) first(a, b []byte) bool {
	if m.ascending {
		return bytes.Compare(a, b) < 0
	}
	return bytes.Compare(a, b) > 0
}

func (m *mergeIterator) Next() (key, value []byte, err error) {
	for {
		p, err := m.peekParent()
		if err != nil {
			return nil, nil, err
		}

		if len(m.items) == 0 {
			if p == nil {
				return nil, nil, errors.ErrIteratorDone
			}
			m.pending = nil
			return p.Key, p.Value, nil
		}

		local := m.items[0]
		lkey := local.(keyer).Key()
		if p != nil && m.first(p.Key, lkey) {
			m.pending = nil
			return p.Key, p.Value, nil
		}

		// Local item is next. It overwrites a parent item with the same key.
		m.items = m.items[1:]
		if p != nil && bytes.Equal(p.Key, lkey) {
			m.pending = nil
		}
		switch t := local.(type) {
		case setItem:
			return t.key, t.value, nil
		case deletedItem:
			continue
		default:
			return nil, nil, errors.Wrapf(errors.ErrDatabase, "unknown item in btree: %#v", local)
		}
	}
}

func (m *mergeIterator) Release() {
	m.parent.Release()
	m.items = nil
}
