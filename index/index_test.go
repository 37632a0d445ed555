package index_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/erigontech/cachecore/index"
	"github.com/erigontech/cachecore/treemap"
)

func tagsExtractor(v any) (any, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, errors.New("not a tagged value")
	}
	tags, ok := m["tags"].([]string)
	if !ok {
		return nil, errors.New("missing tags")
	}
	out := make([]any, len(tags))
	for i, t := range tags {
		out[i] = t
	}
	return out, nil
}

// TestScenarioS3CollectionSplittingAndReferenceSharing implements §8's S3.
func TestScenarioS3CollectionSplittingAndReferenceSharing(t *testing.T) {
	idx := index.New(index.ExtractorFunc(tagsExtractor), index.Options{})

	idx.Insert("k1", map[string]any{"tags": []string{"a", "b", "c"}})
	idx.Insert("k2", map[string]any{"tags": []string{"a", "b", "c"}})

	contents := idx.GetIndexContents()
	require.ElementsMatch(t, []any{"k1", "k2"}, contents["a"])
	require.ElementsMatch(t, []any{"k1", "k2"}, contents["b"])
	require.ElementsMatch(t, []any{"k1", "k2"}, contents["c"])

	ref1, ok := idx.Get("k1")
	require.True(t, ok)
	ref2, ok := idx.Get("k2")
	require.True(t, ok)
	require.True(t, sameUnderlying(ref1, ref2), "forward(k1) and forward(k2) should share a reference")

	idx.Update("k2", map[string]any{"tags": []string{"a", "b", "d"}})

	contents = idx.GetIndexContents()
	require.ElementsMatch(t, []any{"k1"}, contents["c"])
	require.ElementsMatch(t, []any{"k2"}, contents["d"])

	newRef2, ok := idx.Get("k2")
	require.True(t, ok)
	require.Equal(t, []any{"a", "b", "d"}, newRef2)

	unchangedRef1, ok := idx.Get("k1")
	require.True(t, ok)
	require.Equal(t, ref1, unchangedRef1)
}

// sameUnderlying compares two []any-shaped forward references by
// identity of their backing array where possible; falling back to value
// equality keeps the test meaningful even if a future refactor changes
// the concrete extracted-slice representation.
func sameUnderlying(a, b any) bool {
	as, aok := a.([]any)
	bs, bok := b.([]any)
	if aok && bok && len(as) > 0 && len(bs) > 0 {
		return &as[0] == &bs[0]
	}
	return false
}

// TestScenarioS4IndexCorruptionTolerance implements §8's S4.
func TestScenarioS4IndexCorruptionTolerance(t *testing.T) {
	idx := index.New(index.ExtractorFunc(tagsExtractor), index.Options{})

	idx.Insert("k1", map[string]any{"tags": []string{"a"}})
	idx.Insert("k3", "not-a-map") // extractor throws for this value

	require.True(t, idx.IsPartial())
	_, ok := idx.Get("k3")
	require.False(t, ok)

	contents := idx.GetIndexContents()
	for _, keys := range contents {
		require.NotContains(t, keys, "k3")
	}

	idx.Remove("k3")
	require.False(t, idx.IsPartial())
}

func TestInsertUpdateRemoveScalar(t *testing.T) {
	extractor := index.ExtractorFunc(func(v any) (any, error) {
		return v.(int) % 3, nil
	})
	idx := index.New(extractor, index.Options{})

	idx.Insert("a", 1)
	idx.Insert("b", 4)
	idx.Insert("c", 2)

	contents := idx.GetIndexContents()
	require.ElementsMatch(t, []any{"a", "b"}, contents[1])
	require.ElementsMatch(t, []any{"c"}, contents[2])

	idx.Update("a", 2)
	contents = idx.GetIndexContents()
	require.ElementsMatch(t, []any{"b"}, contents[1])
	require.ElementsMatch(t, []any{"a", "c"}, contents[2])

	idx.Remove("b")
	contents = idx.GetIndexContents()
	_, stillThere := contents[1]
	require.False(t, stillThere, "empty inverse bucket must be pruned")
}

func TestOrderedIndexBacksInverseWithTreeMap(t *testing.T) {
	extractor := index.ExtractorFunc(func(v any) (any, error) {
		return v.(int), nil
	})
	cmp := func(a, b any) int { return a.(int) - b.(int) }
	idx := index.New(extractor, index.Options{
		Ordered:    true,
		Comparator: treemap.Comparator[any](cmp),
	})

	idx.Insert("a", 30)
	idx.Insert("b", 10)
	idx.Insert("c", 20)

	contents := idx.GetIndexContents()
	require.Len(t, contents, 3)
	require.ElementsMatch(t, []any{"a"}, contents[30])
	require.ElementsMatch(t, []any{"b"}, contents[10])
	require.ElementsMatch(t, []any{"c"}, contents[20])
}
