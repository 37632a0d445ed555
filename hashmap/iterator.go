package hashmap

import "github.com/erigontech/cachecore/cerrors"

// entryIterator walks the table generation that was current at
// construction, skipping cells marked removed. Because nodes are immutable
// once constructed, this is safe to run concurrently with
// puts/removes/resizes on the live map. Puts and removes applied to that
// same generation (before a resize or Clear replaces it) can still be
// observed when they land in a bucket the iterator has not reached yet;
// changes made after the map moved to a newer table are not seen.
type entryIterator[K comparable, V any] struct {
	tbl       *table[K, V]
	bucketIdx int
	node      *node[K, V]
	m         *Map[K, V]
	last      *cell[K, V]
}

func newEntryIterator[K comparable, V any](m *Map[K, V]) *entryIterator[K, V] {
	it := &entryIterator[K, V]{tbl: m.tbl.Load(), bucketIdx: -1, m: m}
	it.seek()
	return it
}

// seek advances it.node to the next non-removed candidate, or nil if the
// table is exhausted.
func (it *entryIterator[K, V]) seek() {
	for {
		if it.node == nil {
			it.bucketIdx++
			if it.bucketIdx >= len(it.tbl.buckets) {
				return
			}
			it.node = it.tbl.buckets[it.bucketIdx].Load()
			continue
		}
		if !it.node.cell.removed.Load() {
			return
		}
		it.node = it.node.next
	}
}

func (it *entryIterator[K, V]) HasNext() bool { return it.node != nil }

func (it *entryIterator[K, V]) Next() (entry[K, V], error) {
	if it.node == nil {
		return entry[K, V]{}, cerrors.ErrNoSuchElement
	}
	cur := it.node.cell
	it.last = cur
	it.node = it.node.next
	it.seek()
	return entry[K, V]{c: cur}, nil
}

// Remove removes the key last returned by Next from the live map (not from
// this iterator's frozen snapshot, which cannot be mutated in place).
func (it *entryIterator[K, V]) Remove() error {
	if it.last == nil {
		return cerrors.ErrIllegalState
	}
	it.m.Remove(it.last.key)
	it.last = nil
	return nil
}

// stale reports whether the live map has moved on to a newer table
// generation than the one this iterator started on — i.e. at least one
// resize has happened since construction. Purely informational: iteration
// correctness never depends on checking this.
func (it *entryIterator[K, V]) stale() bool {
	return it.tbl != it.m.tbl.Load()
}

// Iterator returns a MutableIterator over this map's entries, stable under
// concurrent resize per §8.1.
func (m *Map[K, V]) Iterator() *entryIterator[K, V] {
	return newEntryIterator(m)
}
