package listener

import (
	"sync"

	"go.uber.org/zap"

	"github.com/erigontech/cachecore/event"
	"github.com/erigontech/cachecore/filter"
)

// Plan is the lazily-computed optimization-plan classification (§4.G table).
type Plan int

const (
	PlanNone Plan = iota
	PlanNoListeners
	PlanAllListener
	PlanKeyListener
	PlanNoOptimize
)

// registration is one add-listener call's bookkeeping: the listener itself,
// the lite flag synthesized across every registration of this (scope,
// listener) pair, and the sequence number of its *first* registration
// (dispatch order is defined by first-registration order, not by the most
// recent re-registration).
type registration struct {
	seq      int64
	listener MapListener
	lite     bool // true only if every registration of this pair was lite
}

// filterGroup is the set of listeners registered against one filter (nil
// filter = global).
type filterGroup struct {
	filter filter.Filter
	regs   []registration
}

// MapListenerSupport is MapListenerSupport (§4.G): tracks filter-scoped and
// key-scoped registrations, synthesizes the lite/standard distinction per
// (scope, listener) pair, and computes the optimization plan on demand
// (it is not cached between calls).
// Registration changes are serialized on the instance lock; event
// collection snapshots under the same lock but dispatches without holding
// it (§5).
type MapListenerSupport struct {
	mu sync.Mutex

	nextSeq int64

	filterGroups []*filterGroup // in first-registration order; the global group is the one with a nil filter
	keyGroups    map[any][]registration
}

func New() *MapListenerSupport {
	return &MapListenerSupport{keyGroups: make(map[any][]registration)}
}

func (s *MapListenerSupport) groupFor(f filter.Filter) *filterGroup {
	for _, g := range s.filterGroups {
		if sameFilter(g.filter, f) {
			return g
		}
	}
	g := &filterGroup{filter: f}
	s.filterGroups = append(s.filterGroups, g)
	return g
}

func sameFilter(a, b filter.Filter) (eq bool) {
	defer func() {
		if recover() != nil {
			eq = false
		}
	}()
	return a == b
}

// mergeRegistration inserts or updates l's registration in regs, returning
// the updated slice. Re-registering an existing listener updates its lite
// flag by AND-combining (a single non-lite registration makes the pair
// "standard" forever, per §4.G) but keeps its original sequence number.
func mergeRegistration(regs []registration, l MapListener, lite bool, seq int64) []registration {
	for i := range regs {
		if sameListener(regs[i].listener, l) {
			regs[i].lite = regs[i].lite && lite
			return regs
		}
	}
	return append(regs, registration{seq: seq, listener: l, lite: lite})
}

func removeRegistration(regs []registration, l MapListener) ([]registration, bool) {
	for i := range regs {
		if sameListener(regs[i].listener, l) {
			return append(regs[:i], regs[i+1:]...), true
		}
	}
	return regs, false
}

// AddFilterListener registers l for events matching f (nil f = global,
// §4.G "Filter-scoped").
func (s *MapListenerSupport) AddFilterListener(f filter.Filter, l MapListener, lite bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g := s.groupFor(f)
	g.regs = mergeRegistration(g.regs, l, lite, s.nextSeq)
	s.nextSeq++
}

// RemoveFilterListener drops l's registration under f.
func (s *MapListenerSupport) RemoveFilterListener(f filter.Filter, l MapListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, g := range s.filterGroups {
		if !sameFilter(g.filter, f) {
			continue
		}
		regs, removed := removeRegistration(g.regs, l)
		g.regs = regs
		if removed && len(g.regs) == 0 {
			s.filterGroups = append(s.filterGroups[:i], s.filterGroups[i+1:]...)
		}
		return
	}
}

// AddKeyListener registers l for events on key (§4.G "Key-scoped"). If l is
// a Priming wrapper, it is delivered a synthetic priming event for key
// immediately upon registration (§4.G, "Priming listeners").
func (s *MapListenerSupport) AddKeyListener(key any, l MapListener, lite bool) {
	s.mu.Lock()
	s.keyGroups[key] = mergeRegistration(s.keyGroups[key], l, lite, s.nextSeq)
	s.nextSeq++
	s.mu.Unlock()

	if _, ok := IsPriming(l); ok {
		_ = l.Entry(primingEvent(key))
	}
}

// RemoveKeyListener drops l's registration under key.
func (s *MapListenerSupport) RemoveKeyListener(key any, l MapListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	regs, _ := removeRegistration(s.keyGroups[key], l)
	if len(regs) == 0 {
		delete(s.keyGroups, key)
	} else {
		s.keyGroups[key] = regs
	}
}

// IsStandard reports whether any listener registered under f
// (filter-scoped) is "standard" (any non-lite registration of a listener
// makes that listener's pair standard, permanently).
func (s *MapListenerSupport) IsStandard(f filter.Filter) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, g := range s.filterGroups {
		if !sameFilter(g.filter, f) {
			continue
		}
		for _, r := range g.regs {
			if !r.lite {
				return true
			}
		}
	}
	return false
}

// Plan computes the optimization plan from the current registrations. The
// plan is recomputed on every call and never cached, so PlanNone is never
// returned.
func (s *MapListenerSupport) Plan() Plan {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.computePlanLocked()
}

func (s *MapListenerSupport) computePlanLocked() Plan {
	globalCount := 0
	filteredCount := 0
	for _, g := range s.filterGroups {
		if len(g.regs) == 0 {
			continue
		}
		if g.filter == nil {
			globalCount += len(g.regs)
		} else {
			filteredCount++
		}
	}
	keyCount := len(s.keyGroups)

	if globalCount == 0 && filteredCount == 0 && keyCount == 0 {
		return PlanNoListeners
	}
	if globalCount == 1 && filteredCount == 0 && keyCount == 0 {
		return PlanAllListener
	}
	if globalCount == 0 && filteredCount == 0 && keyCount > 0 {
		if s.allKeysShareIdenticalSetLocked() {
			return PlanKeyListener
		}
	}
	return PlanNoOptimize
}

func (s *MapListenerSupport) allKeysShareIdenticalSetLocked() bool {
	var first []registration
	firstSet := false
	for _, regs := range s.keyGroups {
		if !firstSet {
			first = regs
			firstSet = true
			continue
		}
		if !sameRegistrationSet(first, regs) {
			return false
		}
	}
	return true
}

func sameRegistrationSet(a, b []registration) bool {
	if len(a) != len(b) {
		return false
	}
	for _, ra := range a {
		found := false
		for _, rb := range b {
			if sameListener(ra.listener, rb.listener) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// CollectListeners implements the full-evaluation algorithm (§4.G steps
// 1-4), taking the plan's cached fast path where it soundly applies
// (§8 property 6: the result must equal what full evaluation would produce).
// It returns the collected listeners and the event to dispatch, enriched
// with filter provenance when the evaluation recorded any (§4.G, "Event
// enrichment").
func (s *MapListenerSupport) CollectListeners(e event.Event) (*Listeners, event.Event) {
	s.mu.Lock()
	plan := s.computePlanLocked()

	switch plan {
	case PlanNoListeners:
		s.mu.Unlock()
		return Empty(), e
	case PlanAllListener:
		out := Empty()
		for _, g := range s.filterGroups {
			if g.filter == nil {
				for _, r := range g.regs {
					out = out.add(entry{seq: r.seq, listener: r.listener})
				}
			}
		}
		s.mu.Unlock()
		return out, e
	case PlanKeyListener:
		regs, ok := s.keyGroups[e.Key()]
		s.mu.Unlock()
		if !ok || e.Transformation() == event.Transformed {
			return Empty(), e
		}
		out := Empty()
		for _, r := range regs {
			out = out.add(entry{seq: r.seq, listener: r.listener})
		}
		return out, e
	}

	// PlanNoOptimize (or recomputed none): snapshot groups, release the
	// lock, then evaluate filters/keys without holding it (§5).
	filterGroups := make([]*filterGroup, len(s.filterGroups))
	for i, g := range s.filterGroups {
		filterGroups[i] = &filterGroup{filter: g.filter, regs: append([]registration(nil), g.regs...)}
	}
	var keyRegs []registration
	var hasKeyRegs bool
	if e.Transformation() != event.Transformed {
		keyRegs, hasKeyRegs = s.keyGroups[e.Key()]
		keyRegs = append([]registration(nil), keyRegs...)
	}
	s.mu.Unlock()

	return fullEvaluate(e, filterGroups, keyRegs, hasKeyRegs)
}

// fullEvaluate is the step-by-step algorithm from §4.G, runnable without
// holding the instance lock.
func fullEvaluate(e event.Event, groups []*filterGroup, keyRegs []registration, hasKeyRegs bool) (*Listeners, event.Event) {
	out := Empty()
	var matched event.FilterProvenance

	fe, hasProvenance := e.(*event.FilterEvent)

	for _, g := range groups {
		if len(g.regs) == 0 {
			continue
		}
		var included bool
		if hasProvenance {
			included = provenanceNames(fe.Provenance, g.filter)
		} else if g.filter == nil {
			included = true
		} else {
			if isTransformerFilter(g.filter) && e.Transformation() == event.NonTransformable {
				// step 4: a transformer filter never receives a
				// non-transformable event even if it would match.
				included = false
			} else {
				included = g.filter.Evaluate(e)
			}
		}
		if !included {
			continue
		}
		if g.filter != nil {
			matched = append(matched, g.filter)
		}
		for _, r := range g.regs {
			out = out.add(entry{seq: r.seq, listener: r.listener})
		}
	}

	if hasKeyRegs && e.Transformation() != event.Transformed {
		for _, r := range keyRegs {
			out = out.add(entry{seq: r.seq, listener: r.listener})
		}
	}

	return out, event.Enrich(e, matched)
}

func provenanceNames(provenance event.FilterProvenance, f filter.Filter) bool {
	for _, p := range provenance {
		if pf, ok := p.(filter.Filter); ok && sameFilter(pf, f) {
			return true
		}
		if p == f {
			return true
		}
	}
	return false
}

// transformerFilter is implemented by filters that are also
// map-event-transformers (§4.G step 4); its single extra method, Transforms,
// is a marker that only makes it distinguishable from a plain Filter.
type transformerFilter interface {
	filter.Filter
	Transforms()
}

func isTransformerFilter(f filter.Filter) bool {
	_, ok := f.(transformerFilter)
	return ok
}

// Fire collects listeners for e and dispatches it to them, in one call.
// async and log are forwarded to Listeners.Dispatch unchanged.
func (s *MapListenerSupport) Fire(e event.Event, async func(func()), log *zap.Logger) error {
	listeners, enriched := s.CollectListeners(e)
	return listeners.Dispatch(enriched, async, log)
}
