package processor

import (
	"github.com/erigontech/cachecore/container"
	"github.com/erigontech/cachecore/event"
	"github.com/erigontech/cachecore/filter"
)

// conditionalPutAllFilterSlot and conditionalPutAllEntriesSlot fix the POF
// wire-slot ordinals, per `original_source/src/coherence/util/processor/
// ConditionalPutAll.cpp` (SPEC_FULL.md supplemented feature 5): 0 = filter,
// 1 = map of entries to apply. This module does not implement POF encoding
// itself (serialization is an external collaborator, §1); FilterOrdinal and
// EntriesOrdinal exist purely so an embedding serializer can find the right slot.
const (
	conditionalPutAllFilterSlot  = 0
	conditionalPutAllEntriesSlot = 1
)

// ConditionalPutAll applies Entries to every key already present in the
// target map whose current value passes Filter (per Coherence's processor
// of the same name): a guarded batch-put. Process is defined over a single
// entry for uniformity with EntryProcessor, checking Filter against that
// one entry and applying the corresponding replacement from Entries if
// present and accepted.
type ConditionalPutAll[K comparable, V any] struct {
	Filter  filter.Filter
	Entries map[K]V
}

// FilterOrdinal returns the POF slot ConditionalPutAll's filter occupies.
func (*ConditionalPutAll[K, V]) FilterOrdinal() int { return conditionalPutAllFilterSlot }

// EntriesOrdinal returns the POF slot ConditionalPutAll's entries map
// occupies.
func (*ConditionalPutAll[K, V]) EntriesOrdinal() int { return conditionalPutAllEntriesSlot }

// Process implements EntryProcessor: if entry's key has no replacement in
// Entries, it is left untouched (result nil, no guard evaluated — matching
// "applies to every key already present" rather than inserting new keys).
// Otherwise Filter is evaluated against a synthetic update event for entry;
// if it passes, entry's value is replaced and the prior value returned as
// the result.
func (p *ConditionalPutAll[K, V]) Process(entry container.Entry[K, V]) (any, error) {
	replacement, ok := p.Entries[entry.Key()]
	if !ok {
		return nil, nil
	}
	if p.Filter != nil {
		e := &event.MapEvent{
			EventID: event.Updated,
			EventKey: entry.Key(),
			Old:      entry.Value(),
			New:      entry.Value(),
		}
		if !p.Filter.Evaluate(e) {
			return nil, nil
		}
	}
	old := entry.SetValue(replacement)
	return old, nil
}

// ProcessAll applies Process to every entry in the batch.
func (p *ConditionalPutAll[K, V]) ProcessAll(entries container.Collection[container.Entry[K, V]]) (map[K]any, error) {
	return Base[K, V]{Processor: p}.ProcessAll(entries)
}

var _ EntryProcessor[int, int] = (*ConditionalPutAll[int, int])(nil)
