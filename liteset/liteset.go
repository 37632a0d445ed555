// Package liteset implements LiteSet (§4.E): a size-adaptive set that
// stores zero, one, or a handful of elements inline and hands off to a
// general-purpose delegate set once it outgrows inline storage. The
// delegate is github.com/deckarep/golang-set/v2, matching how the pack's
// domain stack reserves google/btree for ordered structures and
// golang-set for unordered ones.
package liteset

import (
	"sort"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/erigontech/cachecore/cerrors"
	"github.com/erigontech/cachecore/container"
)

var noSuchElement = cerrors.ErrNoSuchElement

type storageMode int

const (
	modeEmpty storageMode = iota
	modeSingle
	modeArray
	modeDelegate
)

// arrayCeiling is the largest size still held inline as a slice (§4.E:
// "array of 2..8"); the next Add past it promotes to the delegate set.
const arrayCeiling = 8

// Set is LiteSet. The zero value is not usable; construct with New.
type Set[T comparable] struct {
	mode     storageMode
	single   T
	arr      []T
	delegate mapset.Set[T]
}

// New constructs an empty LiteSet.
func New[T comparable]() *Set[T] {
	return &Set[T]{mode: modeEmpty}
}

// Of constructs a LiteSet containing the given elements (duplicates
// collapse, as for any set).
func Of[T comparable](elems ...T) *Set[T] {
	s := New[T]()
	for _, e := range elems {
		s.Add(e)
	}
	return s
}

func (s *Set[T]) Size() int {
	switch s.mode {
	case modeEmpty:
		return 0
	case modeSingle:
		return 1
	case modeArray:
		return len(s.arr)
	default:
		return s.delegate.Cardinality()
	}
}

func (s *Set[T]) IsEmpty() bool { return s.mode == modeEmpty }

func (s *Set[T]) Contains(v T) bool {
	switch s.mode {
	case modeEmpty:
		return false
	case modeSingle:
		return s.single == v
	case modeArray:
		for _, e := range s.arr {
			if e == v {
				return true
			}
		}
		return false
	default:
		return s.delegate.ContainsOne(v)
	}
}

// Add inserts v, returning true iff the set changed. Storage mode only
// ever expands here; Remove is where it may contract back (§4.E:
// "transitions are both expansionary ... and contracting").
func (s *Set[T]) Add(v T) bool {
	switch s.mode {
	case modeEmpty:
		s.single = v
		s.mode = modeSingle
		return true
	case modeSingle:
		if s.single == v {
			return false
		}
		s.arr = []T{s.single, v}
		var zero T
		s.single = zero
		s.mode = modeArray
		return true
	case modeArray:
		for _, e := range s.arr {
			if e == v {
				return false
			}
		}
		if len(s.arr) < arrayCeiling {
			s.arr = append(s.arr, v)
			return true
		}
		s.delegate = mapset.NewThreadUnsafeSet(s.arr...)
		s.arr = nil
		s.mode = modeDelegate
		return s.delegate.Add(v)
	default:
		return s.delegate.Add(v)
	}
}

// Remove deletes v, returning true iff the set changed. After a
// delegate-mode removal it checks whether the set can shrink back into
// inline array storage (§4.E).
func (s *Set[T]) Remove(v T) bool {
	switch s.mode {
	case modeEmpty:
		return false
	case modeSingle:
		if s.single != v {
			return false
		}
		var zero T
		s.single = zero
		s.mode = modeEmpty
		return true
	case modeArray:
		for i, e := range s.arr {
			if e != v {
				continue
			}
			s.arr = append(s.arr[:i], s.arr[i+1:]...)
			s.shrinkFromArray()
			return true
		}
		return false
	default:
		if !s.delegate.ContainsOne(v) {
			return false
		}
		s.delegate.Remove(v)
		s.maybeShrinkFromDelegate()
		return true
	}
}

func (s *Set[T]) shrinkFromArray() {
	if len(s.arr) == 1 {
		s.single = s.arr[0]
		s.arr = nil
		s.mode = modeSingle
	} else if len(s.arr) == 0 {
		s.mode = modeEmpty
	}
}

func (s *Set[T]) maybeShrinkFromDelegate() {
	if s.delegate.Cardinality() > arrayCeiling {
		return
	}
	elems := s.delegate.ToSlice()
	s.delegate = nil
	switch len(elems) {
	case 0:
		s.mode = modeEmpty
	case 1:
		s.single = elems[0]
		s.mode = modeSingle
	default:
		s.arr = elems
		s.mode = modeArray
	}
}

func (s *Set[T]) Clear() {
	var zero T
	s.mode = modeEmpty
	s.single = zero
	s.arr = nil
	s.delegate = nil
}

// RemoveAll deletes every element of other from s, returning true iff s
// changed. Each element goes through Remove, so §4.E's contraction check
// runs after every single removal.
func (s *Set[T]) RemoveAll(other container.Collection[T]) bool {
	changed := false
	it := other.Iterator()
	for it.HasNext() {
		v, _ := it.Next()
		if s.Remove(v) {
			changed = true
		}
	}
	return changed
}

// RetainAll keeps only the elements of s that are also in other.
func (s *Set[T]) RetainAll(other container.Collection[T]) bool {
	keep := make([]T, 0, s.Size())
	it := s.Iterator()
	for it.HasNext() {
		v, _ := it.Next()
		if other.Contains(v) {
			keep = append(keep, v)
		}
	}
	if len(keep) == s.Size() {
		return false
	}
	s.Clear()
	for _, v := range keep {
		s.Add(v)
	}
	return true
}

func (s *Set[T]) ToSlice() []T {
	switch s.mode {
	case modeEmpty:
		return nil
	case modeSingle:
		return []T{s.single}
	case modeArray:
		out := make([]T, len(s.arr))
		copy(out, s.arr)
		return out
	default:
		return s.delegate.ToSlice()
	}
}

type iterator[T comparable] struct {
	items []T
	idx   int
}

func (it *iterator[T]) HasNext() bool { return it.idx < len(it.items) }
func (it *iterator[T]) Next() (T, error) {
	var zero T
	if !it.HasNext() {
		return zero, noSuchElement
	}
	v := it.items[it.idx]
	it.idx++
	return v, nil
}

func (s *Set[T]) Iterator() container.Iterator[T] {
	return &iterator[T]{items: s.ToSlice()}
}

// Equal reports unordered-set equality (§4.E), independent of either
// set's current storage mode.
func (s *Set[T]) Equal(other *Set[T]) bool {
	if s.Size() != other.Size() {
		return false
	}
	for _, v := range s.ToSlice() {
		if !other.Contains(v) {
			return false
		}
	}
	return true
}

// SortedString renders elements in a deterministic order; useful for
// logging and test diffs, not for any ordering guarantee of the set
// itself (LiteSet is unordered).
func (s *Set[T]) SortedString(less func(a, b T) bool) []T {
	out := s.ToSlice()
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

var _ container.Set[int] = (*Set[int])(nil)
