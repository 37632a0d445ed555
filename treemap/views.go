package treemap

import "github.com/erigontech/cachecore/container"

func tightenLo[K comparable](existing, candidate bound[K], cmp Comparator[K]) bound[K] {
	if !existing.has {
		return candidate
	}
	if !candidate.has {
		return existing
	}
	c := cmp(candidate.key, existing.key)
	switch {
	case c > 0:
		return candidate
	case c < 0:
		return existing
	default:
		return bound[K]{key: existing.key, inclusive: existing.inclusive && candidate.inclusive, has: true}
	}
}

func tightenHi[K comparable](existing, candidate bound[K], cmp Comparator[K]) bound[K] {
	if !existing.has {
		return candidate
	}
	if !candidate.has {
		return existing
	}
	c := cmp(candidate.key, existing.key)
	switch {
	case c < 0:
		return candidate
	case c > 0:
		return existing
	default:
		return bound[K]{key: existing.key, inclusive: existing.inclusive && candidate.inclusive, has: true}
	}
}

// HeadMap returns a view of all keys strictly (or, if inclusive, up to
// and including) less than to. Composes with any existing bound on this
// view: the result only ever tightens, never widens.
func (m *Map[K, V]) HeadMap(to K, inclusive bool) (*Map[K, V], error) {
	newHi := tightenHi(m.hi, bound[K]{key: to, inclusive: inclusive, has: true}, m.t.cmp)
	return &Map[K, V]{t: m.t, lo: m.lo, hi: newHi}, nil
}

// TailMap returns a view of all keys greater than (or, if inclusive,
// greater than or equal to) from.
func (m *Map[K, V]) TailMap(from K, inclusive bool) (*Map[K, V], error) {
	newLo := tightenLo(m.lo, bound[K]{key: from, inclusive: inclusive, has: true}, m.t.cmp)
	return &Map[K, V]{t: m.t, lo: newLo, hi: m.hi}, nil
}

// SubMap returns a view bounded on both ends.
func (m *Map[K, V]) SubMap(from K, fromInclusive bool, to K, toInclusive bool) (*Map[K, V], error) {
	if c := m.t.cmp(from, to); c > 0 || (c == 0 && !(fromInclusive && toInclusive)) {
		return nil, outOfRange(from)
	}
	newLo := tightenLo(m.lo, bound[K]{key: from, inclusive: fromInclusive, has: true}, m.t.cmp)
	newHi := tightenHi(m.hi, bound[K]{key: to, inclusive: toInclusive, has: true}, m.t.cmp)
	return &Map[K, V]{t: m.t, lo: newLo, hi: newHi}, nil
}

type keySet[K comparable, V any] struct{ m *Map[K, V] }

func (v keySet[K, V]) Size() int         { return v.m.Size() }
func (v keySet[K, V]) IsEmpty() bool     { return v.m.IsEmpty() }
func (v keySet[K, V]) Contains(k K) bool { return v.m.ContainsKey(k) }
func (v keySet[K, V]) Iterator() container.Iterator[K] {
	return &keyIterator[K, V]{inner: v.m.Iterator()}
}
func (v keySet[K, V]) ToSlice() []K {
	out := make([]K, 0, v.m.Size())
	it := v.m.Iterator()
	for it.HasNext() {
		e, _ := it.Next()
		out = append(out, e.Key())
	}
	return out
}

type keyIterator[K comparable, V any] struct{ inner *Iterator[K, V] }

func (it *keyIterator[K, V]) HasNext() bool { return it.inner.HasNext() }
func (it *keyIterator[K, V]) Next() (K, error) {
	e, err := it.inner.Next()
	return e.Key(), err
}

type valueCollection[K comparable, V any] struct{ m *Map[K, V] }

func (v valueCollection[K, V]) Size() int     { return v.m.Size() }
func (v valueCollection[K, V]) IsEmpty() bool { return v.m.IsEmpty() }
func (v valueCollection[K, V]) Contains(want V) bool {
	it := v.m.Iterator()
	for it.HasNext() {
		e, _ := it.Next()
		if any(e.Value()) == any(want) {
			return true
		}
	}
	return false
}
func (v valueCollection[K, V]) Iterator() container.Iterator[V] {
	return &valueIterator[K, V]{inner: v.m.Iterator()}
}
func (v valueCollection[K, V]) ToSlice() []V {
	out := make([]V, 0, v.m.Size())
	it := v.m.Iterator()
	for it.HasNext() {
		e, _ := it.Next()
		out = append(out, e.Value())
	}
	return out
}

type valueIterator[K comparable, V any] struct{ inner *Iterator[K, V] }

func (it *valueIterator[K, V]) HasNext() bool { return it.inner.HasNext() }
func (it *valueIterator[K, V]) Next() (V, error) {
	e, err := it.inner.Next()
	return e.Value(), err
}

type entrySet[K comparable, V any] struct{ m *Map[K, V] }

func (v entrySet[K, V]) Size() int     { return v.m.Size() }
func (v entrySet[K, V]) IsEmpty() bool { return v.m.IsEmpty() }
func (v entrySet[K, V]) Contains(want container.Entry[K, V]) bool {
	val, ok := v.m.Get(want.Key())
	return ok && any(val) == any(want.Value())
}
func (v entrySet[K, V]) Iterator() container.Iterator[container.Entry[K, V]] {
	return &entryColIterator[K, V]{inner: v.m.Iterator()}
}
func (v entrySet[K, V]) ToSlice() []container.Entry[K, V] {
	out := make([]container.Entry[K, V], 0, v.m.Size())
	it := v.m.Iterator()
	for it.HasNext() {
		e, _ := it.Next()
		out = append(out, e)
	}
	return out
}

type entryColIterator[K comparable, V any] struct{ inner *Iterator[K, V] }

func (it *entryColIterator[K, V]) HasNext() bool { return it.inner.HasNext() }
func (it *entryColIterator[K, V]) Next() (container.Entry[K, V], error) {
	e, err := it.inner.Next()
	return e, err
}

func (m *Map[K, V]) Keys() container.Collection[K]   { return keySet[K, V]{m: m} }
func (m *Map[K, V]) Values() container.Collection[V] { return valueCollection[K, V]{m: m} }
func (m *Map[K, V]) Entries() container.Collection[container.Entry[K, V]] {
	return entrySet[K, V]{m: m}
}
