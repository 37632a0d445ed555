package processor_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/erigontech/cachecore/event"
	"github.com/erigontech/cachecore/hashmap"
	"github.com/erigontech/cachecore/internal/bucket"
	"github.com/erigontech/cachecore/processor"
)

func strHash(k string) uint64 {
	var h uint64 = 14695981039346656037
	for _, b := range []byte(k) {
		h ^= uint64(b)
		h *= 1099511628211
	}
	return h
}

func TestConditionalPutAllOnlyTouchesExistingMatchingKeys(t *testing.T) {
	backing := hashmap.New[string, int](bucket.DefaultPolicy, strHash)
	backing.Put("a", 1)
	backing.Put("b", 2)
	backing.Put("c", 3)

	p := &processor.ConditionalPutAll[string, int]{
		Entries: map[string]int{"a": 10, "b": 20, "z": 99},
	}
	inv := processor.MapInvoker[string, int]{Backing: backing}

	results, err := inv.InvokeKeys([]string{"a", "b", "c", "z"}, p)
	require.NoError(t, err)

	va, _ := backing.Get("a")
	vb, _ := backing.Get("b")
	vc, _ := backing.Get("c")
	require.Equal(t, 10, va)
	require.Equal(t, 20, vb)
	require.Equal(t, 3, vc, "c has no replacement entry, must be untouched")
	_, hasZ := backing.Get("z")
	require.False(t, hasZ, "z was never a key in the backing map")

	require.Equal(t, 1, results["a"])
	require.Equal(t, 2, results["b"])
	require.Nil(t, results["c"])
}

func TestConditionalPutAllRespectsFilter(t *testing.T) {
	backing := hashmap.New[string, int](bucket.DefaultPolicy, strHash)
	backing.Put("a", 1)
	backing.Put("b", 2)

	p := &processor.ConditionalPutAll[string, int]{
		Filter:  filterOnlyKeyA{},
		Entries: map[string]int{"a": 10, "b": 20},
	}
	inv := processor.MapInvoker[string, int]{Backing: backing}

	_, err := inv.InvokeKeys([]string{"a", "b"}, p)
	require.NoError(t, err)

	va, _ := backing.Get("a")
	vb, _ := backing.Get("b")
	require.Equal(t, 10, va)
	require.Equal(t, 2, vb, "b's replacement must be rejected by the filter")
}

func TestPofOrdinalsAreFixed(t *testing.T) {
	p := &processor.ConditionalPutAll[string, int]{}
	require.Equal(t, 0, p.FilterOrdinal())
	require.Equal(t, 1, p.EntriesOrdinal())
}

type filterOnlyKeyA struct{}

func (filterOnlyKeyA) Evaluate(e event.Event) bool { return e.Key() == "a" }
