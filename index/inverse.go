package index

import (
	"github.com/erigontech/cachecore/hashmap"
	"github.com/erigontech/cachecore/internal/bucket"
	"github.com/erigontech/cachecore/treemap"
)

// inverseStore is indexed-value -> keySet. Unordered indexes back it with
// hashmap.Map; ordered indexes back it with treemap.Map keyed by the
// index's comparator, per §4.F's "Ordered-index contract".
type inverseStore interface {
	get(v any) (keySet, bool)
	getOrCreate(v any) keySet
	delete(v any)
	forEach(func(v any, ks keySet) bool)
	size() int
}

type hashInverse struct {
	m *hashmap.Map[any, keySet]
}

func newHashInverse() *hashInverse {
	return &hashInverse{m: hashmap.New[any, keySet](bucket.DefaultPolicy, hashAny)}
}

func (h *hashInverse) get(v any) (keySet, bool) { return h.m.Get(v) }
func (h *hashInverse) getOrCreate(v any) keySet {
	if ks, ok := h.m.Get(v); ok {
		return ks
	}
	ks := newLiteKeySet()
	h.m.Put(v, ks)
	return ks
}
func (h *hashInverse) delete(v any) { h.m.Remove(v) }
func (h *hashInverse) forEach(fn func(v any, ks keySet) bool) {
	it := h.m.Entries().Iterator()
	for it.HasNext() {
		e, _ := it.Next()
		if !fn(e.Key(), e.Value()) {
			return
		}
	}
}
func (h *hashInverse) size() int { return h.m.Size() }

type treeInverse struct {
	m   *treemap.Map[any, keySet]
	cmp func(a, b any) int
}

func newTreeInverse(cmp func(a, b any) int) *treeInverse {
	return &treeInverse{m: treemap.New[any, keySet](treemap.Comparator[any](cmp)), cmp: cmp}
}

func (h *treeInverse) get(v any) (keySet, bool) { return h.m.Get(v) }
func (h *treeInverse) getOrCreate(v any) keySet {
	if ks, ok := h.m.Get(v); ok {
		return ks
	}
	ks := newBTreeKeySet(h.cmp)
	h.m.Put(v, ks)
	return ks
}
func (h *treeInverse) delete(v any) { h.m.Remove(v) }
func (h *treeInverse) forEach(fn func(v any, ks keySet) bool) {
	it := h.m.Entries().Iterator()
	for it.HasNext() {
		e, _ := it.Next()
		if !fn(e.Key(), e.Value()) {
			return
		}
	}
}
func (h *treeInverse) size() int { return h.m.Size() }
