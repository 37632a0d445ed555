package treemap

// treeMin/treeMax/treeCeiling/treeFloor/treeHigher/treeLower are raw,
// bound-unaware tree navigation; Map wraps them with its own view bounds.

func treeMin[K comparable, V any](n *node[K, V]) *node[K, V] {
	if n == nil {
		return nil
	}
	for n.left != nil {
		n = n.left
	}
	return n
}

func treeMax[K comparable, V any](n *node[K, V]) *node[K, V] {
	if n == nil {
		return nil
	}
	for n.right != nil {
		n = n.right
	}
	return n
}

// treeCeiling returns the smallest key >= k, or nil.
func treeCeiling[K comparable, V any](t *tree[K, V], k K) *node[K, V] {
	n := t.root
	var best *node[K, V]
	for n != nil {
		c := t.cmp(k, n.key)
		switch {
		case c == 0:
			return n
		case c < 0:
			best = n
			n = n.left
		default:
			n = n.right
		}
	}
	return best
}

// treeFloor returns the largest key <= k, or nil.
func treeFloor[K comparable, V any](t *tree[K, V], k K) *node[K, V] {
	n := t.root
	var best *node[K, V]
	for n != nil {
		c := t.cmp(k, n.key)
		switch {
		case c == 0:
			return n
		case c > 0:
			best = n
			n = n.right
		default:
			n = n.left
		}
	}
	return best
}

// treeHigher returns the smallest key > k, or nil.
func treeHigher[K comparable, V any](t *tree[K, V], k K) *node[K, V] {
	n := t.root
	var best *node[K, V]
	for n != nil {
		if t.cmp(k, n.key) < 0 {
			best = n
			n = n.left
		} else {
			n = n.right
		}
	}
	return best
}

// treeLower returns the largest key < k, or nil.
func treeLower[K comparable, V any](t *tree[K, V], k K) *node[K, V] {
	n := t.root
	var best *node[K, V]
	for n != nil {
		if t.cmp(k, n.key) > 0 {
			best = n
			n = n.right
		} else {
			n = n.left
		}
	}
	return best
}

func (m *Map[K, V]) firstInRange() *node[K, V] {
	var n *node[K, V]
	if !m.lo.has {
		n = treeMin(m.t.root)
	} else if m.lo.inclusive {
		n = treeCeiling(m.t, m.lo.key)
	} else {
		n = treeHigher(m.t, m.lo.key)
	}
	if n == nil || !m.belowHi(n.key) {
		return nil
	}
	return n
}

func (m *Map[K, V]) lastInRange() *node[K, V] {
	var n *node[K, V]
	if !m.hi.has {
		n = treeMax(m.t.root)
	} else if m.hi.inclusive {
		n = treeFloor(m.t, m.hi.key)
	} else {
		n = treeLower(m.t, m.hi.key)
	}
	if n == nil || !m.aboveLo(n.key) {
		return nil
	}
	return n
}

// CeilingKey returns the smallest key >= k within this view's bounds. If k
// falls below the view's own lo bound, every in-range key is already >= k,
// so the answer is the view's first key rather than whatever treeCeiling
// finds globally (which may lie below lo or beyond hi).
func (m *Map[K, V]) CeilingKey(k K) (K, bool) {
	var zero K
	if !m.aboveLo(k) {
		n := m.firstInRange()
		if n == nil {
			return zero, false
		}
		return n.key, true
	}
	n := treeCeiling(m.t, k)
	if n == nil || !m.belowHi(n.key) {
		return zero, false
	}
	return n.key, true
}

// FloorKey returns the largest key <= k within this view's bounds. If k
// falls above the view's own hi bound, every in-range key is already <= k,
// so the answer is the view's last key rather than whatever treeFloor finds
// globally.
func (m *Map[K, V]) FloorKey(k K) (K, bool) {
	var zero K
	if !m.belowHi(k) {
		n := m.lastInRange()
		if n == nil {
			return zero, false
		}
		return n.key, true
	}
	n := treeFloor(m.t, k)
	if n == nil || !m.aboveLo(n.key) {
		return zero, false
	}
	return n.key, true
}

// HigherKey returns the smallest key > k within this view's bounds, with
// the same below-lo fallback as CeilingKey.
func (m *Map[K, V]) HigherKey(k K) (K, bool) {
	var zero K
	if !m.aboveLo(k) {
		n := m.firstInRange()
		if n == nil {
			return zero, false
		}
		return n.key, true
	}
	n := treeHigher(m.t, k)
	if n == nil || !m.belowHi(n.key) {
		return zero, false
	}
	return n.key, true
}

// LowerKey returns the largest key < k within this view's bounds, with the
// same above-hi fallback as FloorKey.
func (m *Map[K, V]) LowerKey(k K) (K, bool) {
	var zero K
	if !m.belowHi(k) {
		n := m.lastInRange()
		if n == nil {
			return zero, false
		}
		return n.key, true
	}
	n := treeLower(m.t, k)
	if n == nil || !m.aboveLo(n.key) {
		return zero, false
	}
	return n.key, true
}

// PollFirstEntry removes and returns the smallest entry in this view, or
// false if it is empty.
func (m *Map[K, V]) PollFirstEntry() (mapEntry[K, V], bool) {
	n := m.firstInRange()
	if n == nil {
		return mapEntry[K, V]{}, false
	}
	e := mapEntry[K, V]{k: n.key, v: n.value}
	m.Remove(n.key)
	return e, true
}

// PollLastEntry removes and returns the largest entry in this view, or
// false if it is empty.
func (m *Map[K, V]) PollLastEntry() (mapEntry[K, V], bool) {
	n := m.lastInRange()
	if n == nil {
		return mapEntry[K, V]{}, false
	}
	e := mapEntry[K, V]{k: n.key, v: n.value}
	m.Remove(n.key)
	return e, true
}

// mapEntry is a snapshot (key, value) pair; unlike hashmap's live entry
// view, a polled entry has already been removed so it cannot round-trip
// SetValue back into the tree.
type mapEntry[K comparable, V any] struct {
	k K
	v V
}

func (e mapEntry[K, V]) Key() K   { return e.k }
func (e mapEntry[K, V]) Value() V { return e.v }
func (e mapEntry[K, V]) SetValue(v V) V {
	old := e.v
	e.v = v
	return old
}
