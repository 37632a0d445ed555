// Package index implements SimpleMapIndex (§4.F): an inverted-index
// engine keeping a forward (key -> indexed value) map and an inverse
// (indexed value -> set of keys) map in sync, with collection-splitting,
// reference-sharing, and corruption tolerance.
package index

import (
	"reflect"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/erigontech/cachecore/hashmap"
	"github.com/erigontech/cachecore/internal/bucket"
	"github.com/erigontech/cachecore/internal/xmath"
	"github.com/erigontech/cachecore/liteset"
	"github.com/erigontech/cachecore/logging"
	"github.com/erigontech/cachecore/treemap"
)

// defaultRefSearchThreshold is Open Question (1) from §9: preserved from
// the source, not claimed optimal.
const defaultRefSearchThreshold = 50

// defaultWarnBurst/defaultWarnWindow are Open Question (2) from §9.
const (
	defaultWarnBurst  = 10
	defaultWarnWindow = 5 * time.Minute
)

// Options configures an Index's tunables and observability hooks; the
// core has no configuration surface of its own, so callers pass these in
// as a typed struct rather than through flags or environment variables.
type Options struct {
	Ordered            bool
	Comparator         treemap.Comparator[any] // required iff Ordered
	MultiValued        bool
	RefSearchThreshold int // 0 means defaultRefSearchThreshold
	Logger             *zap.Logger
	WarnBurst          int           // 0 means defaultWarnBurst
	WarnWindow         time.Duration // 0 means defaultWarnWindow
}

// Index is SimpleMapIndex. Construct with New; a zero Index is not
// usable.
type Index struct {
	mu sync.Mutex // §5: insert/update/remove each take a per-index lock

	extractor          Extractor
	multiValued        bool
	ordered            bool
	refSearchThreshold int

	forward  *hashmap.Map[any, any]
	inverse  inverseStore
	excluded *liteset.Set[any]

	warn *logging.RateLimitedWarner
}

// New constructs an Index over extractor. Pass a non-nil Comparator and
// Ordered=true for a sorted inverse (index queries that want a range over
// indexed values); otherwise the inverse is unordered.
func New(extractor Extractor, opts Options) *Index {
	if opts.RefSearchThreshold <= 0 {
		opts.RefSearchThreshold = defaultRefSearchThreshold
	} else if opts.RefSearchThreshold > xmath.MaxInt32 {
		// Clamp an oversized caller-supplied threshold to MaxInt32; at that
		// size findSharedReference effectively always takes the
		// intersection branch.
		opts.RefSearchThreshold = xmath.MaxInt32
	}
	if opts.WarnBurst <= 0 {
		opts.WarnBurst = defaultWarnBurst
	}
	if opts.WarnWindow <= 0 {
		opts.WarnWindow = defaultWarnWindow
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var inv inverseStore
	if opts.Ordered {
		inv = newTreeInverse(opts.Comparator)
	} else {
		inv = newHashInverse()
	}

	return &Index{
		extractor:          extractor,
		multiValued:        opts.MultiValued,
		ordered:            opts.Ordered,
		refSearchThreshold: opts.RefSearchThreshold,
		forward:            hashmap.New[any, any](bucket.DefaultPolicy, hashAny),
		inverse:            inv,
		excluded:           liteset.New[any](),
		warn:               logging.NewRateLimitedWarner(logger, opts.WarnBurst, opts.WarnWindow),
	}
}

// Get returns the previously extracted (possibly shared) reference for
// key, or false if key is not indexed (never inserted, removed, or
// excluded due to a corrupt extraction).
func (idx *Index) Get(key any) (any, bool) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	return idx.forward.Get(key)
}

// IsPartial reports whether any key has been excluded from the index due
// to a throwing extractor.
func (idx *Index) IsPartial() bool {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	return !idx.excluded.IsEmpty()
}

// GetIndexContents returns a snapshot of the inverse map, taken under the
// index lock: indexed value to the keys recorded under it. Later changes
// to the index are not reflected in the returned map.
func (idx *Index) GetIndexContents() map[any][]any {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	out := make(map[any][]any)
	idx.inverse.forEach(func(v any, ks keySet) bool {
		out[v] = ks.Keys()
		return true
	})
	return out
}

// Insert applies the extractor to value and records key -> indexed value
// in the forward map, plus key in the inverse set(s) for the extracted
// value. An extractor failure is recovered locally per §7: key is added
// to the excluded set and a rate-limited warning is logged; Insert itself
// never returns an error for that case.
func (idx *Index) Insert(key, value any) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	e, err := idx.extractor.Extract(value)
	if err != nil {
		idx.excluded.Add(key)
		idx.warn.Warn("indexing failure", zap.Any("key", key), zap.Error(err))
		return
	}
	idx.excluded.Remove(key)
	idx.indexValueLocked(key, e)
}

// indexValueLocked records e as key's extracted value, splitting it
// across the inverse map if it is a collection and the extractor is not
// declared multi-valued (§4.F "Collection-splitting").
func (idx *Index) indexValueLocked(key, e any) {
	elems, isCollection := asElements(e)
	if isCollection && !idx.multiValued {
		ref := idx.findSharedReference(elems, e)
		idx.forward.Put(key, ref)
		for _, el := range elems {
			idx.addKeyLocked(el, key)
		}
		return
	}
	idx.forward.Put(key, e)
	idx.addKeyLocked(e, key)
}

func (idx *Index) addKeyLocked(indexedValue, key any) {
	idx.inverse.getOrCreate(indexedValue).Add(key)
}

func (idx *Index) removeKeyLocked(indexedValue, key any) {
	ks, ok := idx.inverse.get(indexedValue)
	if !ok {
		return
	}
	ks.Remove(key)
	if ks.Size() == 0 {
		idx.inverse.delete(indexedValue)
	}
}

// Update recomputes key's indexed value from value and reconciles the
// forward/inverse maps against the prior extraction.
func (idx *Index) Update(key, value any) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	oldRef, hadOld := idx.forward.Get(key)

	e, err := idx.extractor.Extract(value)
	if err != nil {
		if hadOld {
			idx.unindexLocked(key, oldRef)
			idx.forward.Remove(key)
		}
		idx.excluded.Add(key)
		idx.warn.Warn("indexing failure", zap.Any("key", key), zap.Error(err))
		return
	}
	idx.excluded.Remove(key)

	if !hadOld {
		idx.indexValueLocked(key, e)
		return
	}

	oldElems, oldIsCollection := asElements(oldRef)
	newElems, newIsCollection := asElements(e)

	oldSet := collectionOf(oldRef, oldElems, oldIsCollection && !idx.multiValued)
	newSet := collectionOf(e, newElems, newIsCollection && !idx.multiValued)

	for _, v := range oldSet {
		if !containsAny(newSet, v) {
			idx.removeKeyLocked(v, key)
		}
	}

	var ref any
	if newIsCollection && !idx.multiValued {
		ref = idx.findSharedReference(newElems, e)
	} else {
		ref = e
	}
	idx.forward.Put(key, ref)

	for _, v := range newSet {
		if !containsAny(oldSet, v) {
			idx.addKeyLocked(v, key)
		}
	}
}

// collectionOf returns the set of inverse-map keys a given forward value
// occupies: its split elements if it is a collection (and the index
// isn't multi-valued), or the scalar value itself otherwise.
func collectionOf(value any, elems []any, isCollection bool) []any {
	if isCollection {
		return elems
	}
	return []any{value}
}

func containsAny(haystack []any, v any) bool {
	for _, h := range haystack {
		if equalElements([]any{h}, []any{v}) {
			return true
		}
	}
	return false
}

// unindexLocked removes key from every inverse bucket its (possibly
// collection-valued) prior reference touches.
func (idx *Index) unindexLocked(key, oldRef any) {
	if elems, ok := asElements(oldRef); ok && !idx.multiValued {
		for _, el := range elems {
			idx.removeKeyLocked(el, key)
		}
		return
	}
	idx.removeKeyLocked(oldRef, key)
}

// Remove drops key from the index entirely. If key was previously
// excluded due to a corrupt extraction, its old indexed value is
// unrecoverable, so Remove instead does a full scan of the inverse map
// (§7 "Indexing failure" corruption handling).
func (idx *Index) Remove(key any) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if idx.excluded.Remove(key) {
		idx.fullScanRemoveLocked(key)
		return
	}

	oldRef, hadOld := idx.forward.Get(key)
	if !hadOld {
		return
	}
	idx.unindexLocked(key, oldRef)
	idx.forward.Remove(key)
}

func (idx *Index) fullScanRemoveLocked(key any) {
	var stale []any
	idx.inverse.forEach(func(v any, ks keySet) bool {
		if ks.Contains(key) {
			ks.Remove(key)
			if ks.Size() == 0 {
				stale = append(stale, v)
			}
		}
		return true
	})
	for _, v := range stale {
		idx.inverse.delete(v)
	}
}

// Equal reports index equality (§4.F): identical ordering flags and
// equal extractors. reflect.DeepEqual rather than == guards against a
// panic when the Extractor happens to be backed by a func value
// (ExtractorFunc), which Go refuses to compare with ==.
func (idx *Index) Equal(other *Index) bool {
	if idx == other {
		return true
	}
	if other == nil {
		return false
	}
	return idx.ordered == other.ordered && reflect.DeepEqual(idx.extractor, other.extractor)
}
