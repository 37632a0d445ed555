package treemap

import (
	"github.com/erigontech/cachecore/cerrors"
	"github.com/erigontech/cachecore/container"
)

// liveEntry wraps a tree node. SetValue writes through to the tree node
// directly; this is safe because rotations and removals only relink nodes
// (a two-child removal splices the successor's node into the removed
// node's place), they never move a node's key/value into a different
// object.
type liveEntry[K comparable, V any] struct{ n *node[K, V] }

func (e liveEntry[K, V]) Key() K   { return e.n.key }
func (e liveEntry[K, V]) Value() V { return e.n.value }
func (e liveEntry[K, V]) SetValue(v V) V {
	old := e.n.value
	e.n.value = v
	return old
}

// Iterator walks a Map (or a bounded view of one) in ascending key order.
//
// Rather than literally replicating the narrative "cursor with a
// directional ABOVE/LEFT/SITTING/RIGHT state" description, this
// implementation re-seeks the next key by value on every step. That
// costs O(log n) per step instead of O(1) amortized; HasNext stays
// idempotent since it only reads already-computed state.
type Iterator[K comparable, V any] struct {
	m         *Map[K, V]
	started   bool
	hasCur    bool
	curKey    K
	hasLast   bool
	lastKey   K
}

// Iterator returns a MutableIterator over this view's entries in
// ascending key order.
func (m *Map[K, V]) Iterator() *Iterator[K, V] {
	return &Iterator[K, V]{m: m}
}

func (it *Iterator[K, V]) HasNext() bool {
	if !it.started {
		it.started = true
		n := it.m.firstInRange()
		it.hasCur = n != nil
		if it.hasCur {
			it.curKey = n.key
		}
	}
	return it.hasCur
}

func (it *Iterator[K, V]) Next() (container.Entry[K, V], error) {
	if !it.HasNext() {
		var zero container.Entry[K, V]
		return zero, cerrors.ErrNoSuchElement
	}
	n := findNode(it.m.t, it.curKey)
	it.lastKey = it.curKey
	it.hasLast = true

	nxt := treeHigher(it.m.t, it.curKey)
	if nxt != nil && it.m.belowHi(nxt.key) {
		it.curKey = nxt.key
		it.hasCur = true
	} else {
		it.hasCur = false
	}
	return liveEntry[K, V]{n: n}, nil
}

// Remove removes the key last returned by Next.
func (it *Iterator[K, V]) Remove() error {
	if !it.hasLast {
		return cerrors.ErrIllegalState
	}
	it.m.Remove(it.lastKey)
	it.hasLast = false
	return nil
}
