package index

import (
	"github.com/google/btree"

	"github.com/erigontech/cachecore/liteset"
)

// keySet is the set of keys recorded under one indexed value. Ordered
// indexes back it with a google/btree.BTreeG so the keys it yields (for
// update's diff, and for range walks over getIndexContents) come out in a
// reproducible order instead of liteset's unordered storage.
type keySet interface {
	Add(k any) bool
	Remove(k any) bool
	Contains(k any) bool
	Size() int
	Keys() []any
}

type liteKeySet struct{ s *liteset.Set[any] }

func newLiteKeySet() *liteKeySet { return &liteKeySet{s: liteset.New[any]()} }

func (k *liteKeySet) Add(v any) bool      { return k.s.Add(v) }
func (k *liteKeySet) Remove(v any) bool   { return k.s.Remove(v) }
func (k *liteKeySet) Contains(v any) bool { return k.s.Contains(v) }
func (k *liteKeySet) Size() int           { return k.s.Size() }
func (k *liteKeySet) Keys() []any         { return k.s.ToSlice() }

type btreeKeySet struct {
	t *btree.BTreeG[any]
}

func newBTreeKeySet(cmp func(a, b any) int) *btreeKeySet {
	less := func(a, b any) bool { return cmp(a, b) < 0 }
	return &btreeKeySet{t: btree.NewG(32, less)}
}

func (k *btreeKeySet) Add(v any) bool {
	_, existed := k.t.ReplaceOrInsert(v)
	return !existed
}
func (k *btreeKeySet) Remove(v any) bool {
	_, existed := k.t.Delete(v)
	return existed
}
func (k *btreeKeySet) Contains(v any) bool { return k.t.Has(v) }
func (k *btreeKeySet) Size() int           { return k.t.Len() }
func (k *btreeKeySet) Keys() []any {
	out := make([]any, 0, k.t.Len())
	k.t.Ascend(func(item any) bool {
		out = append(out, item)
		return true
	})
	return out
}
