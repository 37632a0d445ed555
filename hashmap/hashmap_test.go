package hashmap_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/erigontech/cachecore/hashmap"
	"github.com/erigontech/cachecore/internal/bucket"
)

func identityHash(k int) uint64 { return uint64(k) }

// TestScenarioS1ResizeDuringIteration implements §8 scenario S1: resize
// happens mid-iteration, and the iterator still yields exactly the keys
// present at construction that survive, plus post-resize values remain
// correct.
func TestScenarioS1ResizeDuringIteration(t *testing.T) {
	policy := bucket.Policy{InitialBuckets: 3, LoadFactor: 1.0, GrowthRate: 1.0}
	m := hashmap.New[int, string](policy, identityHash)

	m.Put(1, "one")
	m.Put(2, "two")
	m.Put(3, "three")

	it := m.Iterator()
	require.True(t, it.HasNext())
	e, err := it.Next()
	require.NoError(t, err)
	seen := map[int]bool{e.Key(): true}

	// Triggers a resize (entryCount=4 > bucketCount=3*1.0).
	m.Put(4, "four")

	for it.HasNext() {
		e, err := it.Next()
		require.NoError(t, err)
		seen[e.Key()] = true
	}

	require.Len(t, seen, 3, "iterator should see exactly the keys present at construction")
	for k := range seen {
		require.Contains(t, []int{1, 2, 3}, k)
	}

	require.Equal(t, 4, m.Size())
	for k, want := range map[int]string{1: "one", 2: "two", 3: "three", 4: "four"} {
		v, ok := m.Get(k)
		require.True(t, ok)
		require.Equal(t, want, v)
	}
}

func TestPutGetRemoveRoundTrip(t *testing.T) {
	m := hashmap.New[int, string](bucket.DefaultPolicy, identityHash)

	_, existed := m.Put(1, "a")
	require.False(t, existed)
	v, ok := m.Get(1)
	require.True(t, ok)
	require.Equal(t, "a", v)

	old, existed := m.Put(1, "b")
	require.True(t, existed)
	require.Equal(t, "a", old)

	removed, ok := m.Remove(1)
	require.True(t, ok)
	require.Equal(t, "b", removed)
	require.False(t, m.ContainsKey(1))
}

func TestClearDoesNotCorruptInFlightIterator(t *testing.T) {
	m := hashmap.New[int, int](bucket.DefaultPolicy, identityHash)
	for i := 0; i < 10; i++ {
		m.Put(i, i*i)
	}
	it := m.Iterator()
	m.Clear()
	count := 0
	for it.HasNext() {
		_, err := it.Next()
		require.NoError(t, err)
		count++
	}
	require.Equal(t, 10, count, "iterator should complete its frozen pre-clear snapshot")
	require.Equal(t, 0, m.Size())
}

// TestConcurrentMutationStableIteration is a stress test for §8.1: many
// goroutines put/remove concurrently with an iterator running; the iterator
// must never panic, never tear, only report keys that existed when it
// started or were inserted while it ran, and report each key at most once.
func TestConcurrentMutationStableIteration(t *testing.T) {
	policy := bucket.Policy{InitialBuckets: 7, LoadFactor: 0.75, GrowthRate: 0.5}
	m := hashmap.New[int, int](policy, identityHash)
	const n = 500
	for i := 0; i < n; i++ {
		m.Put(i, i)
	}

	startSnapshot := make(map[int]bool, n)
	for i := 0; i < n; i++ {
		startSnapshot[i] = true
	}

	var g errgroup.Group
	var wg sync.WaitGroup
	wg.Add(1)
	g.Go(func() error {
		defer wg.Done()
		yielded := make(map[int]bool, n)
		it := m.Iterator()
		for it.HasNext() {
			e, err := it.Next()
			if err != nil {
				return err
			}
			k := e.Key()
			if !startSnapshot[k] && (k < n || k >= 2*n) {
				t.Errorf("iterator yielded key %d neither present at construction nor inserted during iteration", k)
			}
			if yielded[k] {
				t.Errorf("iterator yielded key %d more than once", k)
			}
			yielded[k] = true
		}
		return nil
	})

	for i := 0; i < 8; i++ {
		i := i
		g.Go(func() error {
			for j := 0; j < 200; j++ {
				k := (i*200 + j) % n
				m.Put(k+n, k) // new key, inserted while the iterator runs
				m.Remove(k)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}
