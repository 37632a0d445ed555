// Package processor implements the entry-processor contract (§6):
// `process(entry)` returning an arbitrary holder, `processAll(entrySet)`
// returning a map from key to result, and the representative
// `ConditionalPutAll` processor with its fixed POF slot ordinals
// (SPEC_FULL.md supplemented feature 5).
package processor

import "github.com/erigontech/cachecore/container"

// EntryProcessor processes one or more entries of a map in place, returning
// an arbitrary per-key result. Process is the single-entry primitive;
// ProcessAll's default implementation (via Base) simply calls Process for
// every entry, letting concrete processors override it only when a batch
// has a cheaper combined implementation.
type EntryProcessor[K comparable, V any] interface {
	Process(entry container.Entry[K, V]) (any, error)
	ProcessAll(entries container.Collection[container.Entry[K, V]]) (map[K]any, error)
}

// Base provides the default ProcessAll (loop over Process): a concrete
// processor implements Process and delegates ProcessAll to
// Base{Processor: p}, as ConditionalPutAll does.
type Base[K comparable, V any] struct {
	Processor interface {
		Process(entry container.Entry[K, V]) (any, error)
	}
}

// ProcessAll calls b.Processor.Process for every entry, collecting the
// per-key results. The first error aborts the remaining entries.
func (b Base[K, V]) ProcessAll(entries container.Collection[container.Entry[K, V]]) (map[K]any, error) {
	out := make(map[K]any, entries.Size())
	it := entries.Iterator()
	for it.HasNext() {
		e, err := it.Next()
		if err != nil {
			return out, err
		}
		result, err := b.Processor.Process(e)
		if err != nil {
			return out, err
		}
		out[e.Key()] = result
	}
	return out, nil
}
