package store

import (
	"bytes"

	"github.com/iov-one/junobox/errors"
)

// cacheIterator combines the items of a cache wrap with the iterator of
// the store it wraps, taking into consideration overwrites and deletes.
// Both sources must be ordered in the same direction.
type cacheIterator struct {
	items     []keyer
	idx       int
	ascending bool

	parent     Iterator
	parentKey  []byte
	parentVal  []byte
	parentRead bool
	parentDone bool
}

var _ Iterator = (*cacheIterator)(nil)

func newCacheIterator(items []keyer, parent Iterator, ascending bool) *cacheIterator {
	return &cacheIterator{
		items:     items,
		parent:    parent,
		ascending: ascending,
	}
}

func (i *cacheIterator) Next() (key, value []byte, err error) {
	for {
		if err := i.loadParent(); err != nil {
			return nil, nil, err
		}

		cacheDone := i.idx >= len(i.items)
		if cacheDone && i.parentDone {
			return nil, nil, errors.Wrap(errors.ErrIteratorDone, "cache iterator")
		}

		if cacheDone {
			return i.takeParent()
		}
		item := i.items[i.idx]
		if !i.parentDone {
			cmp := bytes.Compare(item.Key(), i.parentKey)
			if !i.ascending {
				cmp = -cmp
			}
			if cmp > 0 {
				return i.takeParent()
			}
			if cmp == 0 {
				// cached value overwrites the parent
				i.parentRead = false
			}
		}

		i.idx++
		if set, ok := item.(setItem); ok {
			return set.key, set.value, nil
		}
		// deleted item, skip it
	}
}

func (i *cacheIterator) takeParent() ([]byte, []byte, error) {
	i.parentRead = false
	return i.parentKey, i.parentVal, nil
}

// loadParent reads the next parent value, unless the current one was not
// consumed yet.
func (i *cacheIterator) loadParent() error {
	if i.parentRead || i.parentDone {
		return nil
	}
	key, val, err := i.parent.Next()
	switch {
	case errors.ErrIteratorDone.Is(err):
		i.parentDone = true
		i.parentKey, i.parentVal = nil, nil
	case err != nil:
		return err
	default:
		i.parentKey, i.parentVal = key, val
		i.parentRead = true
	}
	return nil
}

func (i *cacheIterator) Release() {
	i.parent.Release()
	i.items = nil
}
