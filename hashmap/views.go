package hashmap

import "github.com/erigontech/cachecore/container"

// keyIterator/valueIterator/entryColIterator adapt entryIterator to the
// container.Iterator[T] shapes Keys()/Values()/Entries() need to expose.

type keyIterator[K comparable, V any] struct{ inner *entryIterator[K, V] }

func (it *keyIterator[K, V]) HasNext() bool { return it.inner.HasNext() }
func (it *keyIterator[K, V]) Next() (K, error) {
	e, err := it.inner.Next()
	return e.Key(), err
}

type valueIterator[K comparable, V any] struct{ inner *entryIterator[K, V] }

func (it *valueIterator[K, V]) HasNext() bool { return it.inner.HasNext() }
func (it *valueIterator[K, V]) Next() (V, error) {
	e, err := it.inner.Next()
	return e.Value(), err
}

type entryColIterator[K comparable, V any] struct{ inner *entryIterator[K, V] }

func (it *entryColIterator[K, V]) HasNext() bool { return it.inner.HasNext() }
func (it *entryColIterator[K, V]) Next() (container.Entry[K, V], error) {
	e, err := it.inner.Next()
	return e, err
}

// keySet, valueCollection and entrySet are live, non-owning views: they
// re-derive a fresh iterator against the backing map on every call, so they
// always reflect the map's current contents.

type keySet[K comparable, V any] struct{ m *Map[K, V] }

func (v keySet[K, V]) Size() int     { return v.m.Size() }
func (v keySet[K, V]) IsEmpty() bool { return v.m.IsEmpty() }
func (v keySet[K, V]) Contains(k K) bool {
	return v.m.ContainsKey(k)
}
func (v keySet[K, V]) Iterator() container.Iterator[K] {
	return &keyIterator[K, V]{inner: newEntryIterator(v.m)}
}
func (v keySet[K, V]) ToSlice() []K {
	out := make([]K, 0, v.m.Size())
	it := newEntryIterator(v.m)
	for it.HasNext() {
		e, _ := it.Next()
		out = append(out, e.Key())
	}
	return out
}

type valueCollection[K comparable, V any] struct{ m *Map[K, V] }

func (v valueCollection[K, V]) Size() int     { return v.m.Size() }
func (v valueCollection[K, V]) IsEmpty() bool { return v.m.IsEmpty() }
func (v valueCollection[K, V]) Contains(want V) bool {
	it := newEntryIterator(v.m)
	for it.HasNext() {
		e, _ := it.Next()
		if any(e.Value()) == any(want) {
			return true
		}
	}
	return false
}
func (v valueCollection[K, V]) Iterator() container.Iterator[V] {
	return &valueIterator[K, V]{inner: newEntryIterator(v.m)}
}
func (v valueCollection[K, V]) ToSlice() []V {
	out := make([]V, 0, v.m.Size())
	it := newEntryIterator(v.m)
	for it.HasNext() {
		e, _ := it.Next()
		out = append(out, e.Value())
	}
	return out
}

type entrySet[K comparable, V any] struct{ m *Map[K, V] }

func (v entrySet[K, V]) Size() int     { return v.m.Size() }
func (v entrySet[K, V]) IsEmpty() bool { return v.m.IsEmpty() }
func (v entrySet[K, V]) Contains(want container.Entry[K, V]) bool {
	val, ok := v.m.Get(want.Key())
	return ok && any(val) == any(want.Value())
}
func (v entrySet[K, V]) Iterator() container.Iterator[container.Entry[K, V]] {
	return &entryColIterator[K, V]{inner: newEntryIterator(v.m)}
}
func (v entrySet[K, V]) ToSlice() []container.Entry[K, V] {
	out := make([]container.Entry[K, V], 0, v.m.Size())
	it := newEntryIterator(v.m)
	for it.HasNext() {
		e, _ := it.Next()
		out = append(out, e)
	}
	return out
}

func (m *Map[K, V]) Keys() container.Collection[K]                     { return keySet[K, V]{m: m} }
func (m *Map[K, V]) Values() container.Collection[V]                   { return valueCollection[K, V]{m: m} }
func (m *Map[K, V]) Entries() container.Collection[container.Entry[K, V]] { return entrySet[K, V]{m: m} }
