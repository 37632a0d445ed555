package processor

import (
	"github.com/erigontech/cachecore/container"
	"github.com/erigontech/cachecore/event"
	"github.com/erigontech/cachecore/filter"
)

// Invocable is the external interface (§6) for running an entry processor
// against a single key, a key collection, or a filter-selected set.
type Invocable[K comparable, V any] interface {
	InvokeKey(key K, p EntryProcessor[K, V]) (any, error)
	InvokeKeys(keys []K, p EntryProcessor[K, V]) (map[K]any, error)
	InvokeFilter(f filter.Filter, p EntryProcessor[K, V]) (map[K]any, error)
}

// MapInvoker is the reference Invocable implementation: it runs a
// processor's Process/ProcessAll directly against live entries of a
// backing container.Map, the only collaborator this module actually owns
// (the partitioned/remote invocation path is an external collaborator,
// §1).
type MapInvoker[K comparable, V any] struct {
	Backing container.Map[K, V]
}

func (inv MapInvoker[K, V]) InvokeKey(key K, p EntryProcessor[K, V]) (any, error) {
	e, ok := newMapEntry(inv.Backing, key)
	if !ok {
		return nil, nil
	}
	return p.Process(e)
}

func (inv MapInvoker[K, V]) InvokeKeys(keys []K, p EntryProcessor[K, V]) (map[K]any, error) {
	entries := make([]container.Entry[K, V], 0, len(keys))
	for _, k := range keys {
		if e, ok := newMapEntry(inv.Backing, k); ok {
			entries = append(entries, e)
		}
	}
	return p.ProcessAll(sliceCollection[K, V](entries))
}

func (inv MapInvoker[K, V]) InvokeFilter(f filter.Filter, p EntryProcessor[K, V]) (map[K]any, error) {
	var entries []container.Entry[K, V]
	it := inv.Backing.Entries().Iterator()
	for it.HasNext() {
		e, err := it.Next()
		if err != nil {
			return nil, err
		}
		if f == nil || f.Evaluate(&event.MapEvent{EventKey: e.Key(), New: e.Value()}) {
			entries = append(entries, e)
		}
	}
	return p.ProcessAll(sliceCollection[K, V](entries))
}

func newMapEntry[K comparable, V any](m container.Map[K, V], key K) (container.Entry[K, V], bool) {
	it := m.Entries().Iterator()
	for it.HasNext() {
		e, err := it.Next()
		if err != nil {
			return nil, false
		}
		if e.Key() == key {
			return e, true
		}
	}
	return nil, false
}

// sliceCollection adapts a plain slice of entries to container.Collection,
// since InvokeKeys/InvokeFilter build their batch outside the backing
// map's own collection views.
type sliceCollection[K comparable, V any] []container.Entry[K, V]

func (s sliceCollection[K, V]) Size() int     { return len(s) }
func (s sliceCollection[K, V]) IsEmpty() bool { return len(s) == 0 }
func (s sliceCollection[K, V]) Contains(e container.Entry[K, V]) bool {
	for _, existing := range s {
		if existing.Key() == e.Key() {
			return true
		}
	}
	return false
}
func (s sliceCollection[K, V]) ToSlice() []container.Entry[K, V] { return []container.Entry[K, V](s) }
func (s sliceCollection[K, V]) Iterator() container.Iterator[container.Entry[K, V]] {
	return &sliceIterator[K, V]{items: s}
}

type sliceIterator[K comparable, V any] struct {
	items sliceCollection[K, V]
	idx   int
}

func (it *sliceIterator[K, V]) HasNext() bool { return it.idx < len(it.items) }

func (it *sliceIterator[K, V]) Next() (container.Entry[K, V], error) {
	if !it.HasNext() {
		return nil, container.NoSuchElement("slice iterator exhausted")
	}
	v := it.items[it.idx]
	it.idx++
	return v, nil
}
