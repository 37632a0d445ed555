// Package convert implements converter views (component B): lazy, in-place
// re-typing of collections and events through a paired up/down converter,
// per SPEC_FULL.md's supplemented feature 1 (ConverterCollections up/down
// pairing) and §4.G's "Converter-wrapped events" / §9's "Converter-event
// laziness" contract.
package convert

// Converters is an up/down converter pair: Up re-types a stored (internal)
// value for an external caller; Down re-types an external value into
// internal form for storage. A single pair is constructed once and shared
// by every view derived from it (ConverterCollections' own pairing, per
// SPEC_FULL.md supplement 1), rather than each view re-deriving one.
type Converters[In, Out any] struct {
	Up   func(In) Out
	Down func(Out) In
}

// Identity returns a Converters pair that performs no conversion, useful
// when only one side of a map/set needs re-typing (e.g. a key-preserving
// value converter view).
func Identity[T any]() Converters[T, T] {
	return Converters[T, T]{
		Up:   func(v T) T { return v },
		Down: func(v T) T { return v },
	}
}
