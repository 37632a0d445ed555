package convert

import "github.com/erigontech/cachecore/event"

// Event wraps a source event.Event from a converter-backed map, lazily
// re-typing Key/OldValue/NewValue via the up-converters (§4.G,
// "Converter-wrapped events"). Per §9's "Converter-event laziness": each
// accessor converts at most once per event instance and caches the result;
// a later SetValue-style override is not modeled here since events are
// read-only, but the cache is never invalidated once populated, matching
// "not re-derived" for the read path.
type Event struct {
	source event.Event
	keys   Converters[any, any]
	values Converters[any, any]

	hasKey bool
	key    any
	hasOld bool
	old    any
	hasNew bool
	newVal any
}

// NewEvent wraps source with the given key/value converter pairs.
func NewEvent(source event.Event, keys, values Converters[any, any]) *Event {
	return &Event{source: source, keys: keys, values: values}
}

func (e *Event) ID() event.ID { return e.source.ID() }

func (e *Event) Key() any {
	if !e.hasKey {
		e.key = e.keys.Up(e.source.Key())
		e.hasKey = true
	}
	return e.key
}

func (e *Event) OldValue() any {
	if !e.hasOld {
		e.old = e.values.Up(e.source.OldValue())
		e.hasOld = true
	}
	return e.old
}

func (e *Event) NewValue() any {
	if !e.hasNew {
		e.newVal = e.values.Up(e.source.NewValue())
		e.hasNew = true
	}
	return e.newVal
}

func (e *Event) Synthetic() bool                     { return e.source.Synthetic() }
func (e *Event) Transformation() event.TransformationState { return e.source.Transformation() }
func (e *Event) Priming() bool                       { return e.source.Priming() }

var _ event.Event = (*Event)(nil)
