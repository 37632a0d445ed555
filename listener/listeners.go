package listener

import (
	"go.uber.org/zap"

	"github.com/erigontech/cachecore/event"
)

// entry is one listener registration surviving into a collected set: its
// identity (for dedup across a union) and its original registration
// sequence (dispatch order, §5). Whether it runs synchronously is decided
// at dispatch time from the listener's type.
type entry struct {
	seq      int64
	listener MapListener
}

// Listeners is the "collector" of §4.G's full-evaluation algorithm: an
// ordered, deduplicated set of listener registrations assembled while
// walking matching filters and key registrations, then dispatched once
// enrichment is done. Copy-on-write: add/union never mutate a Listeners
// that has already been handed to a caller (§5, "copy-on-write sequences").
type Listeners struct {
	entries []entry
}

// Empty returns a Listeners with no registrations, the "no-listeners" plan
// result (§4.G table).
func Empty() *Listeners { return &Listeners{} }

// IsEmpty reports whether the collector holds no listeners.
func (l *Listeners) IsEmpty() bool { return l == nil || len(l.entries) == 0 }

// ToSlice returns the collected listeners in registration order.
func (l *Listeners) ToSlice() []MapListener {
	if l == nil {
		return nil
	}
	sorted := l.sorted()
	out := make([]MapListener, len(sorted))
	for i, e := range sorted {
		out[i] = e.listener
	}
	return out
}

// add appends reg, deduplicating by listener identity (same object
// registered under more than one matching filter is delivered once,
// satisfying §8 property 5's set-union semantics). Returns a new Listeners;
// the receiver is left unmodified.
func (l *Listeners) add(e entry) *Listeners {
	for _, existing := range l.entries {
		if sameListener(existing.listener, e.listener) {
			return l
		}
	}
	out := make([]entry, len(l.entries), len(l.entries)+1)
	copy(out, l.entries)
	out = append(out, e)
	return &Listeners{entries: out}
}

// union merges other into l, deduplicating by listener identity.
func (l *Listeners) union(other *Listeners) *Listeners {
	out := l
	for _, e := range other.entries {
		out = out.add(e)
	}
	return out
}

// sorted returns entries ordered by registration sequence (§4.G, "Dispatch
// ordering": registration order within each of the synchronous/asynchronous
// groups).
func (l *Listeners) sorted() []entry {
	out := make([]entry, len(l.entries))
	copy(out, l.entries)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1].seq > out[j].seq; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

// Dispatch delivers e to every collected listener in registration order.
// Synchronous listeners (those implementing Synchronous, plus every
// listener when async is nil) run on the calling goroutine; an error from
// one aborts the remaining synchronous dispatch (§7, "Listener failures").
// Listeners that are not Synchronous are handed to async, which is
// responsible for whatever scheduling facility the host provides; async may
// be nil, in which case every listener dispatches synchronously.
func (l *Listeners) Dispatch(e event.Event, async func(func()), log *zap.Logger) error {
	if l == nil {
		return nil
	}
	if log == nil {
		log = zap.NewNop()
	}
	for _, en := range l.sorted() {
		if _, isSync := en.listener.(Synchronous); isSync || async == nil {
			if err := en.listener.Entry(e); err != nil {
				return err
			}
			continue
		}
		listener := en.listener
		async(func() {
			if err := listener.Entry(e); err != nil {
				log.Error("async listener failed", zap.Error(err))
			}
		})
	}
	return nil
}

// sameListener compares two listeners for identity. Go panics comparing two
// interface values whose dynamic type is a non-comparable func; recover
// treats that case as "not equal" rather than crashing dedup, since the
// overwhelmingly common listener shape (a pointer to a struct) is safely
// comparable and funcs are only ever used for one-off, non-deduplicated
// registrations in this module's own tests.
func sameListener(a, b MapListener) (eq bool) {
	defer func() {
		if recover() != nil {
			eq = false
		}
	}()
	return a == b
}
