package liteset_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/erigontech/cachecore/liteset"
)

// TestModeInvariant implements §8 property 7: iteration count, Size, and
// the storage-mode's implied cardinality always agree.
func TestModeInvariant(t *testing.T) {
	s := liteset.New[int]()
	assertConsistent(t, s, 0)

	s.Add(1)
	assertConsistent(t, s, 1)

	for i := 2; i <= 8; i++ {
		s.Add(i)
		assertConsistent(t, s, i)
	}

	// Ninth element promotes to the delegate.
	s.Add(9)
	assertConsistent(t, s, 9)

	for i := 9; i >= 1; i-- {
		s.Remove(i)
		assertConsistent(t, s, i-1)
	}
}

func assertConsistent(t *testing.T, s *liteset.Set[int], want int) {
	t.Helper()
	require.Equal(t, want, s.Size())
	n := 0
	it := s.Iterator()
	for it.HasNext() {
		_, err := it.Next()
		require.NoError(t, err)
		n++
	}
	require.Equal(t, want, n)
	require.Equal(t, want == 0, s.IsEmpty())
}

func TestAddRemoveDuplicates(t *testing.T) {
	s := liteset.New[string]()
	require.True(t, s.Add("a"))
	require.False(t, s.Add("a"))
	require.Equal(t, 1, s.Size())
	require.True(t, s.Remove("a"))
	require.False(t, s.Remove("a"))
}

func TestEqualityIsUnorderedAndModeIndependent(t *testing.T) {
	small := liteset.Of(2, 1, 0)
	var large *liteset.Set[int]
	large = liteset.New[int]()
	for i := 0; i < 20; i++ {
		large.Add(i)
	}
	for i := 3; i < 20; i++ {
		large.Remove(i)
	}
	require.True(t, small.Equal(large))
}

func TestRemoveAllRetainAll(t *testing.T) {
	s := liteset.Of(1, 2, 3, 4, 5)
	other := liteset.Of(2, 4)

	changed := s.RemoveAll(other)
	require.True(t, changed)
	require.ElementsMatch(t, []int{1, 3, 5}, s.ToSlice())

	s2 := liteset.Of(1, 2, 3, 4, 5)
	changed = s2.RetainAll(other)
	require.True(t, changed)
	require.ElementsMatch(t, []int{2, 4}, s2.ToSlice())
}
