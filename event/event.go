// Package event defines the map-event payload (§6) dispatched by the
// listener core: an entry's id, key, old/new values, and the synthetic,
// transformation-state and priming flags that govern how the listener layer
// collects and enriches it before delivery. Event is an interface rather
// than a concrete struct so that converter-wrapped and filter-wrapped events
// (§4.G, §4.B) can re-type or enrich a base event without copying it.
package event

// ID classifies what happened to an entry.
type ID int

const (
	Inserted ID = iota
	Updated
	Deleted
)

func (id ID) String() string {
	switch id {
	case Inserted:
		return "inserted"
	case Updated:
		return "updated"
	case Deleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// TransformationState is the tri-state carried by an event: whether its
// values may still be transformed by a map-event-transformer, must not be,
// or already have been (§4.G, §8 property 5).
type TransformationState int

const (
	Transformable TransformationState = iota
	NonTransformable
	Transformed
)

// Event is the core payload contract (§6). Concrete events are dynamically
// typed (`any` key/value) since the listener core dispatches over capability
// interfaces rather than generic type parameters (§9, "Dynamic dispatch").
type Event interface {
	ID() ID
	Key() any
	OldValue() any
	NewValue() any
	Synthetic() bool
	Transformation() TransformationState
	Priming() bool
}

// MapEvent is the base, non-wrapping Event implementation.
type MapEvent struct {
	EventID        ID
	EventKey       any
	Old            any
	New            any
	IsSynthetic    bool
	TransformState TransformationState
	IsPriming      bool
}

func (e *MapEvent) ID() ID                              { return e.EventID }
func (e *MapEvent) Key() any                            { return e.EventKey }
func (e *MapEvent) OldValue() any                       { return e.Old }
func (e *MapEvent) NewValue() any                       { return e.New }
func (e *MapEvent) Synthetic() bool                     { return e.IsSynthetic }
func (e *MapEvent) Transformation() TransformationState { return e.TransformState }
func (e *MapEvent) Priming() bool                       { return e.IsPriming }

var _ Event = (*MapEvent)(nil)

// FilterProvenance names the filters whose evaluation of an event caused a
// given listener set to be collected (§4.G, "Event enrichment"); attached to
// the outgoing event so downstream layers can short-circuit re-evaluation.
type FilterProvenance []any

// FilterEvent wraps an Event with its filter provenance. Key/value/state
// accessors delegate to the wrapped event unchanged; only Provenance is new.
type FilterEvent struct {
	Event
	Provenance FilterProvenance
}

var _ Event = (*FilterEvent)(nil)

// Enrich wraps e with provenance, unless provenance is empty, in which case
// e is returned unwrapped — no enrichment is needed for a plain collection.
func Enrich(e Event, provenance FilterProvenance) Event {
	if len(provenance) == 0 {
		return e
	}
	if fe, ok := e.(*FilterEvent); ok {
		return &FilterEvent{Event: fe.Event, Provenance: append(append(FilterProvenance{}, fe.Provenance...), provenance...)}
	}
	return &FilterEvent{Event: e, Provenance: provenance}
}
