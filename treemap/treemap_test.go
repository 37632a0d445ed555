package treemap_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/erigontech/cachecore/treemap"
)

// TestScenarioS2SubMapFidelity implements §4.D's worked example for
// sub-map fidelity and composition.
func TestScenarioS2SubMapFidelity(t *testing.T) {
	m := treemap.New[int, string](treemap.Natural[int]())
	for _, k := range []int{1, 2, 3, 14, 15, 16} {
		_, existed, err := m.Put(k, "")
		require.NoError(t, err)
		require.False(t, existed)
	}

	v, err := m.SubMap(2, true, 15, false)
	require.NoError(t, err)
	require.Equal(t, 3, v.Size())
	first, err := v.FirstKey()
	require.NoError(t, err)
	require.Equal(t, 3, first)
	last, err := v.LastKey()
	require.NoError(t, err)
	require.Equal(t, 14, last)

	_, ok := m.Remove(2)
	require.True(t, ok)
	require.Equal(t, 5, m.Size())
	require.Equal(t, 3, v.Size())

	_, ok = m.Remove(15)
	require.True(t, ok)
	require.Equal(t, 4, m.Size())
	require.Equal(t, 2, v.Size())

	_, existed, err := v.Put(5, "")
	require.NoError(t, err)
	require.False(t, existed)
	require.Equal(t, 5, m.Size())

	_, _, err = v.Put(20, "")
	require.Error(t, err)
}

func TestFirstLastKeyEmptyIsNoSuchElement(t *testing.T) {
	m := treemap.New[int, string](treemap.Natural[int]())
	_, err := m.FirstKey()
	require.Error(t, err)
	_, err = m.LastKey()
	require.Error(t, err)
}

func TestNavigableNeighbors(t *testing.T) {
	m := treemap.New[int, string](treemap.Natural[int]())
	for _, k := range []int{10, 20, 30, 40} {
		m.Put(k, "")
	}
	c, ok := m.CeilingKey(25)
	require.True(t, ok)
	require.Equal(t, 30, c)
	f, ok := m.FloorKey(25)
	require.True(t, ok)
	require.Equal(t, 20, f)
	h, ok := m.HigherKey(20)
	require.True(t, ok)
	require.Equal(t, 30, h)
	l, ok := m.LowerKey(20)
	require.True(t, ok)
	require.Equal(t, 10, l)

	_, ok = m.HigherKey(40)
	require.False(t, ok)
}

// TestNavigableNeighborsOnBoundedView covers a subMap view navigated with a
// key outside the view's own bounds: the raw whole-tree neighbor can lie
// outside the view even though an in-range neighbor exists.
func TestNavigableNeighborsOnBoundedView(t *testing.T) {
	m := treemap.New[int, string](treemap.Natural[int]())
	for _, k := range []int{5, 15, 19, 25} {
		m.Put(k, "")
	}

	v, err := m.SubMap(10, true, 18, false)
	require.NoError(t, err)
	require.Equal(t, 1, v.Size())

	f, ok := v.FloorKey(23)
	require.True(t, ok)
	require.Equal(t, 15, f, "floor of a key above the view's range must fall back to the view's last key")

	l, ok := v.LowerKey(23)
	require.True(t, ok)
	require.Equal(t, 15, l)

	c, ok := v.CeilingKey(3)
	require.True(t, ok)
	require.Equal(t, 15, c, "ceiling of a key below the view's range must fall back to the view's first key")

	h, ok := v.HigherKey(3)
	require.True(t, ok)
	require.Equal(t, 15, h)

	_, ok = v.FloorKey(3)
	require.False(t, ok, "no key in the view is <= 3")
	_, ok = v.CeilingKey(23)
	require.False(t, ok, "no key in the view is >= 23")
}

func TestPollFirstLastEntry(t *testing.T) {
	m := treemap.New[int, string](treemap.Natural[int]())
	m.Put(2, "b")
	m.Put(1, "a")
	m.Put(3, "c")

	e, ok := m.PollFirstEntry()
	require.True(t, ok)
	require.Equal(t, 1, e.Key())
	require.Equal(t, "a", e.Value())
	require.Equal(t, 2, m.Size())

	e, ok = m.PollLastEntry()
	require.True(t, ok)
	require.Equal(t, 3, e.Key())
	require.Equal(t, 1, m.Size())
}

func TestIteratorAscendingOrderAndRemove(t *testing.T) {
	m := treemap.New[int, int](treemap.Natural[int]())
	for i := 0; i < 20; i++ {
		m.Put(i, i*i)
	}
	it := m.Iterator()
	var keys []int
	for it.HasNext() {
		e, err := it.Next()
		require.NoError(t, err)
		keys = append(keys, e.Key())
		if e.Key()%3 == 0 {
			require.NoError(t, it.Remove())
		}
	}
	require.Len(t, keys, 20)
	for i := 1; i < len(keys); i++ {
		require.Less(t, keys[i-1], keys[i])
	}
	require.Equal(t, 13, m.Size())
	for k := 0; k < 20; k++ {
		_, ok := m.Get(k)
		require.Equal(t, k%3 != 0, ok)
	}
}

func TestClearEmptiesRootMap(t *testing.T) {
	m := treemap.New[int, int](treemap.Natural[int]())
	for i := 0; i < 50; i++ {
		m.Put(i, i)
	}
	m.Clear()
	require.Equal(t, 0, m.Size())
	require.True(t, m.IsEmpty())
	_, ok := m.Get(10)
	require.False(t, ok)
}
