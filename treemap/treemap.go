// Package treemap implements TreeMap (§4.D): an AVL-balanced ordered map
// whose headMap/tailMap/subMap views share the parent's tree and stay
// consistent with it in both directions.
//
// Unlike hashmap.Map, TreeMap is not safe for concurrent use by itself
// (§5): the indexing layer is responsible for synchronizing it when it is
// used as an ordered inverse index.
//
// No example in this module's dependency pack implements a self-balancing
// binary tree with the exact rotation and rebalance-propagation rules §4.D
// specifies; google/btree's B-tree nodes have a different branching
// structure and no notion of a live, bound-sharing sub-range view, so this
// package is a direct, hand-written AVL tree rather than a wrapper around
// a pack dependency.
package treemap

// Comparator orders two keys: negative if a < b, zero if equal, positive
// if a > b.
type Comparator[K any] func(a, b K) int

type node[K comparable, V any] struct {
	key                 K
	value               V
	left, right, parent *node[K, V]
	balance             int8
}

// tree is the shared mutable state behind a Map and every view derived
// from it.
type tree[K comparable, V any] struct {
	root *node[K, V]
	size int
	cmp  Comparator[K]
}

type bound[K comparable] struct {
	key       K
	inclusive bool
	has       bool
}

// Map is TreeMap, or a headMap/tailMap/subMap view over one. Views embed
// the same *tree as their parent: mutation through a view is immediately
// visible in the parent and vice versa, subject to the view's bounds.
type Map[K comparable, V any] struct {
	t      *tree[K, V]
	lo, hi bound[K]
}

// New constructs an empty TreeMap ordered by cmp.
func New[K comparable, V any](cmp Comparator[K]) *Map[K, V] {
	return &Map[K, V]{t: &tree[K, V]{cmp: cmp}}
}

func (m *Map[K, V]) belowHi(k K) bool {
	if !m.hi.has {
		return true
	}
	c := m.t.cmp(k, m.hi.key)
	if m.hi.inclusive {
		return c <= 0
	}
	return c < 0
}

func (m *Map[K, V]) aboveLo(k K) bool {
	if !m.lo.has {
		return true
	}
	c := m.t.cmp(k, m.lo.key)
	if m.lo.inclusive {
		return c >= 0
	}
	return c > 0
}

func (m *Map[K, V]) inRange(k K) bool {
	return m.aboveLo(k) && m.belowHi(k)
}

func findNode[K comparable, V any](t *tree[K, V], k K) *node[K, V] {
	n := t.root
	for n != nil {
		c := t.cmp(k, n.key)
		switch {
		case c < 0:
			n = n.left
		case c > 0:
			n = n.right
		default:
			return n
		}
	}
	return nil
}

// Size reports the number of keys within this view's bounds.
func (m *Map[K, V]) Size() int {
	if m.lo.has || m.hi.has {
		n := 0
		it := m.Iterator()
		for it.HasNext() {
			it.Next()
			n++
		}
		return n
	}
	return m.t.size
}

func (m *Map[K, V]) IsEmpty() bool { return m.Size() == 0 }

func (m *Map[K, V]) Get(k K) (V, bool) {
	var zero V
	if !m.inRange(k) {
		return zero, false
	}
	n := findNode(m.t, k)
	if n == nil {
		return zero, false
	}
	return n.value, true
}

func (m *Map[K, V]) ContainsKey(k K) bool {
	_, ok := m.Get(k)
	return ok
}

// Put inserts or replaces the value for k. It returns an illegal-argument
// error (§7) if k falls outside this view's bounds; that case cannot be
// expressed through container.Map's narrower signature, so Map
// deliberately does not assert conformance to that interface.
func (m *Map[K, V]) Put(k K, v V) (V, bool, error) {
	var zero V
	if !m.inRange(k) {
		return zero, false, outOfRange(k)
	}
	old, existed := insert(m.t, k, v)
	return old, existed, nil
}

func (m *Map[K, V]) Remove(k K) (V, bool) {
	var zero V
	if !m.inRange(k) {
		return zero, false
	}
	return deleteKey(m.t, k)
}

// Clear empties this view. On the root map it explicitly unlinks every
// node's parent/child pointers (§4.D) so a long-lived back-reference
// doesn't keep a discarded subtree's ancestors alive; on a bound view it
// removes just the keys within range.
func (m *Map[K, V]) Clear() {
	if !m.lo.has && !m.hi.has {
		unlinkAll(m.t.root)
		m.t.root = nil
		m.t.size = 0
		return
	}
	for {
		k, ok := m.firstKeyOK()
		if !ok {
			return
		}
		m.Remove(k)
	}
}

func unlinkAll[K comparable, V any](n *node[K, V]) {
	if n == nil {
		return
	}
	unlinkAll(n.left)
	unlinkAll(n.right)
	n.left, n.right, n.parent = nil, nil, nil
}

func (m *Map[K, V]) firstKeyOK() (K, bool) {
	n := m.firstInRange()
	if n == nil {
		var zero K
		return zero, false
	}
	return n.key, true
}

// FirstKey returns the smallest key in this view, or a no-such-element
// error if it is empty.
func (m *Map[K, V]) FirstKey() (K, error) {
	n := m.firstInRange()
	if n == nil {
		var zero K
		return zero, noSuchElement("first key")
	}
	return n.key, nil
}

// LastKey returns the largest key in this view, or a no-such-element error
// if it is empty.
func (m *Map[K, V]) LastKey() (K, error) {
	n := m.lastInRange()
	if n == nil {
		var zero K
		return zero, noSuchElement("last key")
	}
	return n.key, nil
}
