package collections_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/erigontech/cachecore/cerrors"
	"github.com/erigontech/cachecore/collections"
)

func TestEmptySetInvariants(t *testing.T) {
	s := collections.EmptySet[int]()
	require.Equal(t, 0, s.Size())
	require.True(t, s.IsEmpty())
	require.False(t, s.Contains(1))
	require.False(t, s.Iterator().HasNext())
	require.Empty(t, s.ToSlice())
}

func TestEmptySetMutatorsPanicUnsupported(t *testing.T) {
	s := collections.EmptySet[int]()

	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		require.ErrorIs(t, err, cerrors.ErrUnsupportedOperation)
	}()
	s.Add(1)
}

func TestEmptyMapInvariants(t *testing.T) {
	m := collections.EmptyMap[string, int]()
	require.Equal(t, 0, m.Size())
	_, ok := m.Get("x")
	require.False(t, ok)
	require.False(t, m.ContainsKey("x"))
	require.Equal(t, 0, m.Keys().Size())
	require.Equal(t, 0, m.Values().Size())
	require.Equal(t, 0, m.Entries().Size())
}

func TestReadOnlyWrapperForbidsMutation(t *testing.T) {
	s := collections.EmptySet[int]() // any Collection works as backing
	ro := collections.Wrap[int](s)
	require.Equal(t, 0, ro.Size())
	require.Panics(t, func() { ro.Add(1) })
	require.Panics(t, func() { ro.Remove(1) })
	require.Panics(t, func() { ro.Clear() })
}

func TestEmptyIteratorNextIsNoSuchElement(t *testing.T) {
	it := collections.EmptyIterator[string]()
	require.False(t, it.HasNext())
	_, err := it.Next()
	require.ErrorIs(t, err, cerrors.ErrNoSuchElement)
}
