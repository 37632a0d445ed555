// Package listener implements the event fan-out core (§4.G): registration
// of filter- and key-scoped listeners, the lazily-computed optimization
// plan that fast-paths listener collection, event enrichment with
// filter-provenance, and dispatch ordering. Grounded on the teacher's split
// between a registration-holding support object and a dispatch routine that
// snapshots state under a narrow lock before doing any (potentially slow)
// work without it.
package listener

import "github.com/erigontech/cachecore/event"

// MapListener reacts to map events. Entry is invoked once per delivered
// event; an error returned from a synchronous listener aborts the current
// dispatch (§7, "Listener failures"), matching the original's "fatal to the
// current dispatch" semantics for a thrown exception.
type MapListener interface {
	Entry(e event.Event) error
}

// Func adapts a plain function to MapListener.
type Func func(e event.Event) error

func (f Func) Entry(e event.Event) error { return f(e) }

// Synchronous is a marker interface (§9, supplemented feature 4): a
// listener implementing it is always dispatched on the calling goroutine,
// regardless of how it was registered, mirroring original_source's
// SynchronousListener marker (its only method beyond the embedded
// MapListener is the unexported synchronous marker).
type Synchronous interface {
	MapListener
	synchronous()
}

// SynchronousFunc adapts a plain function to a Synchronous MapListener.
type SynchronousFunc func(e event.Event) error

func (f SynchronousFunc) Entry(e event.Event) error { return f(e) }
func (f SynchronousFunc) synchronous()              {}

var _ Synchronous = SynchronousFunc(nil)

// Priming wraps a Synchronous listener with a marker indicating it should
// receive a synthetic priming event on initial subscription (§4.G,
// "Priming listeners"). The wrapper is itself Synchronous, since the
// original ties priming to a synchronous wrapper specifically.
type Priming struct {
	Synchronous
}

func NewPriming(l Synchronous) *Priming { return &Priming{Synchronous: l} }

// primingEvent synthesizes the initial priming event for key under a
// freshly registered Priming listener.
func primingEvent(key any) event.Event {
	return &event.MapEvent{EventID: event.Inserted, EventKey: key, IsSynthetic: true, IsPriming: true}
}

// IsPriming reports whether l is a priming wrapper.
func IsPriming(l MapListener) (*Priming, bool) {
	p, ok := l.(*Priming)
	return p, ok
}
