// Package cerrors defines the error taxonomy shared by every component of
// the cache data model (§7 of the design). Each sentinel is wrapped with
// github.com/pkg/errors at the call site so callers can still errors.Is
// against the sentinel while development builds retain a stack trace.
package cerrors

import "github.com/pkg/errors"

// Sentinels for the taxonomy in §7. Indexing failure is deliberately absent:
// it is recovered locally (the key is excluded) and never surfaced as an
// error to the caller of insert/update.
var (
	// ErrUnsupportedOperation is returned when a read-only view is mutated,
	// or an optional operation is invoked on a no-op implementation.
	ErrUnsupportedOperation = errors.New("unsupported operation")

	// ErrNoSuchElement is returned when an iterator is exhausted or an
	// empty navigable map/set is asked for its first or last element.
	ErrNoSuchElement = errors.New("no such element")

	// ErrIndexOutOfBounds is returned when a list is accessed out of range.
	ErrIndexOutOfBounds = errors.New("index out of bounds")

	// ErrIllegalState is returned when an invariant of the map is
	// violated, e.g. requesting the old value of an entry when none is
	// available.
	ErrIllegalState = errors.New("illegal state")

	// ErrIllegalArgument is returned for a key outside a sub-view's range,
	// or a null/zero value where one is not permitted.
	ErrIllegalArgument = errors.New("illegal argument")

	// ErrConcurrentModification is returned in the rare case where the
	// iteration-after-resize path cannot reconcile its bucket table
	// reference with the map's current one.
	ErrConcurrentModification = errors.New("concurrent modification")
)

// Wrap attaches additional context to a sentinel without losing the ability
// to errors.Is against it.
func Wrap(sentinel error, format string, args ...any) error {
	return errors.Wrapf(sentinel, format, args...)
}
