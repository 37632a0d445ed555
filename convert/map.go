package convert

import "github.com/erigontech/cachecore/container"

// Map is a lazy, re-typing view over a backing container.Map: keys and
// values are converted on the way in (Down) and out (Up) of every
// operation. The view is non-owning (§3, "Ownership"): it holds no entries
// of its own, delegating every read/write to the backing map through the
// converter pair.
type Map[KIn comparable, VIn any, KOut comparable, VOut any] struct {
	backing container.Map[KIn, VIn]
	keys    Converters[KIn, KOut]
	values  Converters[VIn, VOut]
}

// New wraps backing with the given key/value converter pairs.
func New[KIn comparable, VIn any, KOut comparable, VOut any](
	backing container.Map[KIn, VIn],
	keys Converters[KIn, KOut],
	values Converters[VIn, VOut],
) *Map[KIn, VIn, KOut, VOut] {
	return &Map[KIn, VIn, KOut, VOut]{backing: backing, keys: keys, values: values}
}

func (m *Map[KIn, VIn, KOut, VOut]) Size() int      { return m.backing.Size() }
func (m *Map[KIn, VIn, KOut, VOut]) IsEmpty() bool  { return m.backing.IsEmpty() }

func (m *Map[KIn, VIn, KOut, VOut]) Get(k KOut) (VOut, bool) {
	v, ok := m.backing.Get(m.keys.Down(k))
	if !ok {
		var zero VOut
		return zero, false
	}
	return m.values.Up(v), true
}

func (m *Map[KIn, VIn, KOut, VOut]) Put(k KOut, v VOut) (VOut, bool) {
	old, had := m.backing.Put(m.keys.Down(k), m.values.Down(v))
	if !had {
		var zero VOut
		return zero, false
	}
	return m.values.Up(old), true
}

func (m *Map[KIn, VIn, KOut, VOut]) Remove(k KOut) (VOut, bool) {
	old, had := m.backing.Remove(m.keys.Down(k))
	if !had {
		var zero VOut
		return zero, false
	}
	return m.values.Up(old), true
}

func (m *Map[KIn, VIn, KOut, VOut]) ContainsKey(k KOut) bool {
	return m.backing.ContainsKey(m.keys.Down(k))
}

func (m *Map[KIn, VIn, KOut, VOut]) Clear() { m.backing.Clear() }

func (m *Map[KIn, VIn, KOut, VOut]) Keys() container.Collection[KOut] {
	return &convertedCollection[KIn, KOut]{backing: m.backing.Keys(), conv: m.keys.Up}
}

func (m *Map[KIn, VIn, KOut, VOut]) Values() container.Collection[VOut] {
	return &convertedCollection[VIn, VOut]{backing: m.backing.Values(), conv: m.values.Up}
}

func (m *Map[KIn, VIn, KOut, VOut]) Entries() container.Collection[container.Entry[KOut, VOut]] {
	return &convertedCollection[container.Entry[KIn, VIn], container.Entry[KOut, VOut]]{
		backing: m.backing.Entries(),
		conv: func(e container.Entry[KIn, VIn]) container.Entry[KOut, VOut] {
			return &convertedEntry[KIn, VIn, KOut, VOut]{inner: e, keys: m.keys, values: m.values}
		},
	}
}

var _ container.Map[int, int] = (*Map[int, int, int, int])(nil)

// convertedEntry lazily re-types an Entry's key/value via the converter
// pair, caching the converted key (immutable once bound, §3) but always
// re-deriving Value() fresh since SetValue writes through to the backing
// entry and must not return a stale cached conversion.
type convertedEntry[KIn comparable, VIn any, KOut comparable, VOut any] struct {
	inner container.Entry[KIn, VIn]
	keys  Converters[KIn, KOut]
	values Converters[VIn, VOut]

	hasKey   bool
	cachedKey KOut
}

func (e *convertedEntry[KIn, VIn, KOut, VOut]) Key() KOut {
	if !e.hasKey {
		e.cachedKey = e.keys.Up(e.inner.Key())
		e.hasKey = true
	}
	return e.cachedKey
}

func (e *convertedEntry[KIn, VIn, KOut, VOut]) Value() VOut {
	return e.values.Up(e.inner.Value())
}

func (e *convertedEntry[KIn, VIn, KOut, VOut]) SetValue(v VOut) VOut {
	old := e.inner.SetValue(e.values.Down(v))
	return e.values.Up(old)
}

// convertedCollection lazily re-types a Collection[In] into a Collection[Out].
type convertedCollection[In, Out any] struct {
	backing container.Collection[In]
	conv    func(In) Out
}

func (c *convertedCollection[In, Out]) Size() int     { return c.backing.Size() }
func (c *convertedCollection[In, Out]) IsEmpty() bool { return c.backing.IsEmpty() }

func (c *convertedCollection[In, Out]) Contains(v Out) bool {
	for _, s := range c.ToSlice() {
		if sameValue(s, v) {
			return true
		}
	}
	return false
}

// sameValue compares two converted values for equality, tolerating a
// non-comparable Out (e.g. a converted value that happens to be a func or
// slice) by treating a comparison panic as "not equal" rather than
// crashing Contains.
func sameValue[T any](a, b T) (eq bool) {
	defer func() {
		if recover() != nil {
			eq = false
		}
	}()
	return any(a) == any(b)
}

func (c *convertedCollection[In, Out]) ToSlice() []Out {
	out := make([]Out, 0, c.backing.Size())
	it := c.backing.Iterator()
	for it.HasNext() {
		v, _ := it.Next()
		out = append(out, c.conv(v))
	}
	return out
}

func (c *convertedCollection[In, Out]) Iterator() container.Iterator[Out] {
	return &convertedIterator[In, Out]{inner: c.backing.Iterator(), conv: c.conv}
}

type convertedIterator[In, Out any] struct {
	inner container.Iterator[In]
	conv  func(In) Out
}

func (it *convertedIterator[In, Out]) HasNext() bool { return it.inner.HasNext() }

func (it *convertedIterator[In, Out]) Next() (Out, error) {
	v, err := it.inner.Next()
	if err != nil {
		var zero Out
		return zero, err
	}
	return it.conv(v), nil
}
