// Package hashmap implements SafeHashMap (§4.C): the concurrent, open-hash
// map that backs every local cache in this module. Mutators serialize on the
// map instance; readers are wait-free and never observe a torn entry, and an
// iterator constructed before a resize keeps observing every surviving key
// it started with.
//
// The concurrency trick is structural immutability: a node's next pointer is
// set once at construction and never mutated again. Removal rebuilds only
// the chain prefix up to the removed node (copy-on-write) and republishes
// the bucket head atomically; resize builds an entirely new table and swaps
// it in atomically. A key's identity across resizes is its cell, which
// holds the live, atomically-swapped value pointer — so a frozen iterator
// walking a pre-resize table still reads live post-resize values through
// the cells it reaches, without needing to relink anything.
package hashmap

import (
	"sync"
	"sync/atomic"

	"github.com/erigontech/cachecore/container"
	"github.com/erigontech/cachecore/internal/bucket"
)

// cell is a key's stable identity. The same *cell is reused across table
// generations during resize, so value updates are visible through any node
// that still points at it, including nodes belonging to an abandoned
// pre-resize table that an in-flight iterator is still walking.
type cell[K comparable, V any] struct {
	key     K
	hash    uint64
	value   atomic.Pointer[V]
	removed atomic.Bool
}

// node is a single link in a bucket chain. Immutable once constructed.
type node[K comparable, V any] struct {
	cell *cell[K, V]
	next *node[K, V]
}

// table is one generation of the bucket array. Each bucket head is an
// atomic pointer so a single prepend (insert) or COW-rebuilt head
// (remove) publishes without a reader-visible torn state.
type table[K comparable, V any] struct {
	buckets []atomic.Pointer[node[K, V]]
}

func newTable[K comparable, V any](bucketCount int) *table[K, V] {
	return &table[K, V]{buckets: make([]atomic.Pointer[node[K, V]], bucketCount)}
}

// HashFunc computes a key's identity hash. Callers own hash quality; a weak
// hash just degrades chain length, it never breaks correctness.
type HashFunc[K comparable] func(K) uint64

// Map is SafeHashMap. The zero value is not usable; construct with New.
type Map[K comparable, V any] struct {
	mu     sync.Mutex // serializes put/remove/clear/grow
	tbl    atomic.Pointer[table[K, V]]
	size   atomic.Int64
	hash   HashFunc[K]
	policy bucket.Policy
}

// New constructs a SafeHashMap with the given resize policy and hash
// function. Pass bucket.DefaultPolicy for a conservative default.
func New[K comparable, V any](policy bucket.Policy, hash HashFunc[K]) *Map[K, V] {
	if policy.InitialBuckets <= 0 {
		policy.InitialBuckets = bucket.DefaultPolicy.InitialBuckets
	}
	m := &Map[K, V]{hash: hash, policy: policy}
	m.tbl.Store(newTable[K, V](policy.InitialBuckets))
	return m
}

func (m *Map[K, V]) Size() int     { return int(m.size.Load()) }
func (m *Map[K, V]) IsEmpty() bool { return m.Size() == 0 }

func (m *Map[K, V]) bucketIndex(t *table[K, V], h uint64) int {
	return int(h % uint64(len(t.buckets)))
}

// Get never blocks on a mutator and never returns a torn entry: it reads the
// current table reference once, then follows immutable node links.
func (m *Map[K, V]) Get(k K) (V, bool) {
	var zero V
	t := m.tbl.Load()
	h := m.hash(k)
	idx := m.bucketIndex(t, h)
	for n := t.buckets[idx].Load(); n != nil; n = n.next {
		if n.cell.hash == h && n.cell.key == k {
			if n.cell.removed.Load() {
				return zero, false
			}
			return *n.cell.value.Load(), true
		}
	}
	return zero, false
}

func (m *Map[K, V]) ContainsKey(k K) bool {
	_, ok := m.Get(k)
	return ok
}

// Put inserts or replaces k's value, returning the prior value if any. It
// may trigger a resize; readers are never blocked while that happens.
func (m *Map[K, V]) Put(k K, v V) (V, bool) {
	var zero V
	m.mu.Lock()
	defer m.mu.Unlock()

	t := m.tbl.Load()
	h := m.hash(k)
	idx := m.bucketIndex(t, h)
	for n := t.buckets[idx].Load(); n != nil; n = n.next {
		if n.cell.hash == h && n.cell.key == k && !n.cell.removed.Load() {
			old := n.cell.value.Load()
			n.cell.value.Store(&v)
			return *old, true
		}
	}

	c := &cell[K, V]{key: k, hash: h}
	c.value.Store(&v)
	newHead := &node[K, V]{cell: c, next: t.buckets[idx].Load()}
	t.buckets[idx].Store(newHead)
	m.size.Add(1)

	if m.policy.ShouldGrow(int(m.size.Load()), len(t.buckets)) {
		m.growLocked()
	}
	return zero, false
}

// Remove unlinks k from its bucket chain, rebuilding only the prefix up to
// the removed node and leaving the tail (and every node reachable from an
// in-flight iterator) untouched.
func (m *Map[K, V]) Remove(k K) (V, bool) {
	var zero V
	m.mu.Lock()
	defer m.mu.Unlock()

	t := m.tbl.Load()
	h := m.hash(k)
	idx := m.bucketIndex(t, h)
	head := t.buckets[idx].Load()
	newHead, removedCell, found := unlink(head, h, k)
	if !found {
		return zero, false
	}
	removedCell.removed.Store(true)
	t.buckets[idx].Store(newHead)
	m.size.Add(-1)
	return *removedCell.value.Load(), true
}

// unlink rebuilds the chain prefix up to (and excluding) the node matching
// (h, k), reusing the tail unchanged. Returns the new head, the removed
// cell, and whether it was found.
func unlink[K comparable, V any](head *node[K, V], h uint64, k K) (*node[K, V], *cell[K, V], bool) {
	if head == nil {
		return nil, nil, false
	}
	if head.cell.hash == h && head.cell.key == k {
		return head.next, head.cell, true
	}
	rest, c, found := unlink(head.next, h, k)
	if !found {
		return head, nil, false
	}
	return &node[K, V]{cell: head.cell, next: rest}, c, true
}

// Clear empties the map and invalidates no in-flight iterator: each
// iterator already holds its own frozen table reference and will complete
// over that snapshot undisturbed.
func (m *Map[K, V]) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tbl.Store(newTable[K, V](m.policy.InitialBuckets))
	m.size.Store(0)
}

func (m *Map[K, V]) growLocked() {
	t := m.tbl.Load()
	newCount := m.policy.NextBucketCount(len(t.buckets))
	nt := newTable[K, V](newCount)
	for i := range t.buckets {
		for n := t.buckets[i].Load(); n != nil; n = n.next {
			if n.cell.removed.Load() {
				continue
			}
			idx := int(n.cell.hash % uint64(newCount))
			nt.buckets[idx].Store(&node[K, V]{cell: n.cell, next: nt.buckets[idx].Load()})
		}
	}
	m.tbl.Store(nt)
}

// entry is the container.Entry view over a live cell.
type entry[K comparable, V any] struct{ c *cell[K, V] }

func (e entry[K, V]) Key() K   { return e.c.key }
func (e entry[K, V]) Value() V { return *e.c.value.Load() }
func (e entry[K, V]) SetValue(v V) V {
	old := e.c.value.Load()
	e.c.value.Store(&v)
	return *old
}

var _ container.Entry[int, int] = entry[int, int]{}
var _ container.Map[int, int] = (*Map[int, int])(nil)
