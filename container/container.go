// Package container defines the semantic contracts (component A) shared by
// every concrete storage engine in this module: iterators, collections,
// sets, lists, maps, sorted/navigable maps and entries. Concrete engines
// (hashmap.Map, treemap.Map, liteset.Set, ...) implement these generically
// over comparable keys; the higher layers that need dynamic polymorphism
// (indexes, filters, listeners, converters) work in terms of `any`, mirroring
// the teacher's own split between strongly-typed storage (e.g. its generic
// github.com/google/btree.BTreeG) and dynamically-dispatched business logic.
package container

import "github.com/erigontech/cachecore/cerrors"

// Iterator is a forward, read-only cursor.
type Iterator[T any] interface {
	HasNext() bool
	// Next advances the cursor and returns the element. Calling Next after
	// HasNext reports false returns cerrors.ErrNoSuchElement.
	Next() (T, error)
}

// MutableIterator additionally allows removing the element last returned by
// Next (§9, "Iterator-as-muterator").
type MutableIterator[T any] interface {
	Iterator[T]
	Remove() error
}

// Collection is the common read surface of Set, List and the map-derived
// views (keySet, values, entrySet).
type Collection[T any] interface {
	Size() int
	IsEmpty() bool
	Contains(v T) bool
	Iterator() Iterator[T]
	ToSlice() []T
}

// MutableCollection additionally supports element removal. Read-only
// implementations of it (the empty singletons, collections.ReadOnly) panic
// with an error wrapping cerrors.ErrUnsupportedOperation when a mutator is
// called, since these methods have no error result.
type MutableCollection[T any] interface {
	Collection[T]
	Add(v T) bool
	Remove(v T) bool
	Clear()
}

// Set is a Collection with no duplicate elements, compared via Go equality.
type Set[T comparable] interface {
	MutableCollection[T]
}

// List is an ordered, index-addressable Collection.
type List[T any] interface {
	MutableCollection[T]
	Get(i int) (T, error)
	Set(i int, v T) (T, error)
	InsertAt(i int, v T) error
	RemoveAt(i int) (T, error)
	SubList(from, to int) (List[T], error)
}

// Entry is an ordered (key, value) pair. Keys are immutable once bound;
// SetValue reassigns the value and returns the prior one.
type Entry[K any, V any] interface {
	Key() K
	Value() V
	SetValue(v V) V
}

// Map is the core key/value contract every storage engine implements.
type Map[K comparable, V any] interface {
	Size() int
	IsEmpty() bool
	Get(k K) (V, bool)
	// Put inserts or replaces the value for k, returning the prior value
	// (or the zero value) and whether one existed.
	Put(k K, v V) (V, bool)
	Remove(k K) (V, bool)
	ContainsKey(k K) bool
	Clear()
	Keys() Collection[K]
	Values() Collection[V]
	Entries() Collection[Entry[K, V]]
}

// SortedMap is a Map with a total order over its keys.
type SortedMap[K comparable, V any] interface {
	Map[K, V]
	FirstKey() (K, error)
	LastKey() (K, error)
}

// NavigableMap adds neighbor-search and range-view operations (§4.D).
type NavigableMap[K comparable, V any] interface {
	SortedMap[K, V]
	CeilingKey(k K) (K, bool)
	FloorKey(k K) (K, bool)
	HigherKey(k K) (K, bool)
	LowerKey(k K) (K, bool)
	PollFirstEntry() (Entry[K, V], bool)
	PollLastEntry() (Entry[K, V], bool)
	HeadMap(to K, inclusive bool) (NavigableMap[K, V], error)
	TailMap(from K, inclusive bool) (NavigableMap[K, V], error)
	SubMap(from K, fromInclusive bool, to K, toInclusive bool) (NavigableMap[K, V], error)
}

// NoSuchElement is a convenience constructor for the common "empty
// navigable structure" failure.
func NoSuchElement(what string) error {
	return cerrors.Wrap(cerrors.ErrNoSuchElement, "%s", what)
}
