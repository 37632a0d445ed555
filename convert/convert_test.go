package convert_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/erigontech/cachecore/convert"
	"github.com/erigontech/cachecore/event"
	"github.com/erigontech/cachecore/hashmap"
	"github.com/erigontech/cachecore/internal/bucket"
)

func intHash(k int) uint64 { return uint64(k) }

func TestConverterMapRoundTrip(t *testing.T) {
	backing := hashmap.New[int, int](bucket.DefaultPolicy, intHash)
	backing.Put(1, 100)
	backing.Put(2, 200)

	keys := convert.Converters[int, string]{
		Up:   func(k int) string { return strconv.Itoa(k) },
		Down: func(s string) int { v, _ := strconv.Atoi(s); return v },
	}
	values := convert.Converters[int, string]{
		Up:   func(v int) string { return "v" + strconv.Itoa(v) },
		Down: func(s string) int { v, _ := strconv.Atoi(s[1:]); return v },
	}

	view := convert.New[int, int, string, string](backing, keys, values)

	v, ok := view.Get("1")
	require.True(t, ok)
	require.Equal(t, "v100", v)

	view.Put("3", "v300")
	raw, ok := backing.Get(3)
	require.True(t, ok)
	require.Equal(t, 300, raw)

	require.Equal(t, 3, view.Size())

	keySet := view.Keys().ToSlice()
	require.ElementsMatch(t, []string{"1", "2", "3"}, keySet)
}

func TestConverterEventLazyConversionCachesResult(t *testing.T) {
	calls := 0
	up := func(v any) any {
		calls++
		return v
	}
	src := &event.MapEvent{EventKey: "k", Old: 1, New: 2}
	ce := convert.NewEvent(src, convert.Converters[any, any]{Up: up}, convert.Converters[any, any]{Up: up})

	_ = ce.Key()
	_ = ce.Key()
	require.Equal(t, 1, calls, "Key converter must be invoked at most once")

	_ = ce.OldValue()
	_ = ce.NewValue()
	_ = ce.OldValue()
	require.Equal(t, 3, calls, "old+new convert once each, old's second call must be cached")
}
