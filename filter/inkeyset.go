package filter

import (
	"sync"

	"github.com/erigontech/cachecore/event"
	"github.com/erigontech/cachecore/liteset"
)

// KeyConverter re-types a key into whatever internal form the partitioned
// runtime stores keys in (e.g. a binary/partition-hashed form). It mirrors
// the up/down converter shape used elsewhere (§4.B) but is kept as a bare
// function here since InKeySetFilter only ever needs one direction.
type KeyConverter func(key any) any

// InKeySetFilter matches events whose key is a member of a fixed key set
// (§6), wrapped by an optional inner filter. EnsureConverted performs a
// one-time, idempotent conversion of the key set into internal form; the
// partitioned-cache runtime calls it when this filter is the outermost
// query filter, converting plain keys into whatever internal representation
// the runtime's key set actually stores.
type InKeySetFilter struct {
	Inner Filter
	Keys  *liteset.Set[any]

	mu        sync.Mutex
	converted bool
}

func NewInKeySetFilter(inner Filter, keys ...any) *InKeySetFilter {
	return &InKeySetFilter{Inner: inner, Keys: liteset.Of(keys...)}
}

func (f *InKeySetFilter) Evaluate(e event.Event) bool {
	if !f.Keys.Contains(e.Key()) {
		return false
	}
	if f.Inner == nil {
		return true
	}
	return f.Inner.Evaluate(e)
}

// EnsureConverted converts every key in the set through conv exactly once;
// calling it again after a successful conversion is a no-op, matching §6's
// "idempotent, late conversion" requirement.
func (f *InKeySetFilter) EnsureConverted(conv KeyConverter) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.converted || conv == nil {
		return
	}
	converted := liteset.New[any]()
	for _, k := range f.Keys.ToSlice() {
		converted.Add(conv(k))
	}
	f.Keys = converted
	f.converted = true
}
