// Package collections implements the Collections utilities (component H):
// process-wide immutable singletons (SPEC_FULL.md supplemented feature 2,
// NullImplementation) and a read-only wrapper distinct from the converter
// views (supplemented feature 3, WrapperCollections), plus the
// equality/toString helpers the index and listener packages lean on.
package collections

import (
	"fmt"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/erigontech/cachecore/cerrors"
	"github.com/erigontech/cachecore/container"
)

// emptyIterator is the singleton empty Iterator: HasNext is always false,
// Next always fails with ErrNoSuchElement (§9, "Singleton immutable
// collections").
type emptyIterator[T any] struct{}

func (emptyIterator[T]) HasNext() bool { return false }
func (emptyIterator[T]) Next() (T, error) {
	var zero T
	return zero, cerrors.Wrap(cerrors.ErrNoSuchElement, "empty iterator")
}

// EmptyIterator returns the process-wide empty iterator for T.
func EmptyIterator[T any]() container.Iterator[T] { return emptyIterator[T]{} }

// emptyCollection is the singleton empty Collection/Set: size/isEmpty/
// contains always succeed (reporting emptiness), iteration always
// terminates immediately, and every mutator fails (§9).
type emptyCollection[T comparable] struct{}

func (emptyCollection[T]) Size() int                        { return 0 }
func (emptyCollection[T]) IsEmpty() bool                     { return true }
func (emptyCollection[T]) Contains(T) bool                   { return false }
func (emptyCollection[T]) Iterator() container.Iterator[T]   { return EmptyIterator[T]() }
func (emptyCollection[T]) ToSlice() []T                      { return nil }
func (emptyCollection[T]) Add(T) bool                        { panic(unsupported("add")) }
func (emptyCollection[T]) Remove(T) bool                     { panic(unsupported("remove")) }
func (emptyCollection[T]) Clear()                            { panic(unsupported("clear")) }

func unsupported(op string) error {
	return cerrors.Wrap(cerrors.ErrUnsupportedOperation, "%s on empty collection", op)
}

// EmptySet returns the process-wide empty Set for T.
func EmptySet[T comparable]() container.Set[T] { return emptyCollection[T]{} }

// emptyMap is the singleton empty Map (§9, "NullImplementation").
type emptyMap[K comparable, V any] struct{}

func (emptyMap[K, V]) Size() int              { return 0 }
func (emptyMap[K, V]) IsEmpty() bool          { return true }
func (emptyMap[K, V]) Get(K) (V, bool)        { var zero V; return zero, false }
func (emptyMap[K, V]) Put(K, V) (V, bool)     { panic(unsupported("put")) }
func (emptyMap[K, V]) Remove(K) (V, bool)     { panic(unsupported("remove")) }
func (emptyMap[K, V]) ContainsKey(K) bool     { return false }
func (emptyMap[K, V]) Clear()                 { panic(unsupported("clear")) }
func (emptyMap[K, V]) Keys() container.Collection[K]                 { return EmptySet[K]() }
func (emptyMap[K, V]) Values() container.Collection[V]                { return emptyValues[V]{} }
func (emptyMap[K, V]) Entries() container.Collection[container.Entry[K, V]] {
	return emptyEntries[K, V]{}
}

type emptyValues[V any] struct{}

func (emptyValues[V]) Size() int                      { return 0 }
func (emptyValues[V]) IsEmpty() bool                  { return true }
func (emptyValues[V]) Contains(V) bool                { return false }
func (emptyValues[V]) Iterator() container.Iterator[V] { return EmptyIterator[V]() }
func (emptyValues[V]) ToSlice() []V                   { return nil }

type emptyEntries[K comparable, V any] struct{}

func (emptyEntries[K, V]) Size() int     { return 0 }
func (emptyEntries[K, V]) IsEmpty() bool { return true }
func (emptyEntries[K, V]) Contains(container.Entry[K, V]) bool { return false }
func (emptyEntries[K, V]) Iterator() container.Iterator[container.Entry[K, V]] {
	return EmptyIterator[container.Entry[K, V]]()
}
func (emptyEntries[K, V]) ToSlice() []container.Entry[K, V] { return nil }

// EmptyMap returns the process-wide empty Map for K, V.
func EmptyMap[K comparable, V any]() container.Map[K, V] { return emptyMap[K, V]{} }

// ReadOnly wraps a Collection forbidding mutation without re-typing
// elements (distinct from the convert package's converter views, §9
// supplement 3, "WrapperCollections"). Reads delegate straight through.
type ReadOnly[T comparable] struct {
	backing container.Collection[T]
}

// Wrap returns a read-only view over backing.
func Wrap[T comparable](backing container.Collection[T]) *ReadOnly[T] {
	return &ReadOnly[T]{backing: backing}
}

func (r *ReadOnly[T]) Size() int                      { return r.backing.Size() }
func (r *ReadOnly[T]) IsEmpty() bool                  { return r.backing.IsEmpty() }
func (r *ReadOnly[T]) Contains(v T) bool              { return r.backing.Contains(v) }
func (r *ReadOnly[T]) Iterator() container.Iterator[T] { return r.backing.Iterator() }
func (r *ReadOnly[T]) ToSlice() []T                   { return r.backing.ToSlice() }
func (r *ReadOnly[T]) Add(T) bool                     { panic(unsupported("add on read-only view")) }
func (r *ReadOnly[T]) Remove(T) bool                  { panic(unsupported("remove on read-only view")) }
func (r *ReadOnly[T]) Clear()                         { panic(unsupported("clear on read-only view")) }

var _ container.MutableCollection[int] = (*ReadOnly[int])(nil)

// Equal reports unordered-set equality between two collections, via
// golang.org/x/exp/slices.Contains for the membership check (SPEC_FULL.md's
// domain stack allocates x/exp/slices and x/exp/maps to this package).
func Equal[T comparable](a, b container.Collection[T]) bool {
	if a.Size() != b.Size() {
		return false
	}
	bs := b.ToSlice()
	for _, v := range a.ToSlice() {
		if !slices.Contains(bs, v) {
			return false
		}
	}
	return true
}

// ToString renders m as a deterministic, sorted `{k1=v1, k2=v2}` string for
// logging/debugging, using golang.org/x/exp/maps to snapshot the backing
// data and fmt.Sprintf for the per-pair rendering (no third-party
// dependency renders arbitrary `any` key/value pairs in the pack).
func ToString[K comparable, V any](m container.Map[K, V]) string {
	snapshot := make(map[string]string, m.Size())
	it := m.Entries().Iterator()
	for it.HasNext() {
		e, _ := it.Next()
		snapshot[fmt.Sprintf("%v", e.Key())] = fmt.Sprintf("%v", e.Value())
	}
	keys := maps.Keys(snapshot)
	slices.Sort(keys)
	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+snapshot[k])
	}
	return "{" + strings.Join(pairs, ", ") + "}"
}
