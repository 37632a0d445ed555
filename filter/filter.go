// Package filter implements the Filter contract (§6) used both as a query
// predicate and as the registration key for filter-scoped listeners (§4.G).
// Grounded on SPEC_FULL.md's domain stack: InKeySetFilter is the
// hand-rolled, spec-literal filter; CelFilter is a second filter with a
// real evaluation cost (google/cel-go, LRU-cached compiled programs) so the
// listener core's "scan all registered filters" path is exercised against
// something more realistic than a map lookup.
package filter

import "github.com/erigontech/cachecore/event"

// Filter evaluates a boolean predicate against an event's key/value pair.
// The same interface is used to query a cache (§6) and to scope a listener
// registration (§4.G); a nil Filter in a registration means "global".
type Filter interface {
	Evaluate(e event.Event) bool
}

// Func adapts a plain function to Filter.
type Func func(e event.Event) bool

func (f Func) Evaluate(e event.Event) bool { return f(e) }

// EqualsFilter matches events whose new value equals Value.
type EqualsFilter struct {
	Value any
}

func (f *EqualsFilter) Evaluate(e event.Event) bool {
	return e.NewValue() == f.Value
}
