package index

import "reflect"

// Extractor computes the indexed value from an entry's value. A non-nil
// error marks the entry as corrupt for indexing purposes (§7, "Indexing
// failure") without affecting the entry's visibility in the backing
// cache.
type Extractor interface {
	Extract(value any) (any, error)
}

// ExtractorFunc adapts a plain function to Extractor.
type ExtractorFunc func(value any) (any, error)

func (f ExtractorFunc) Extract(value any) (any, error) { return f(value) }

// asElements reports whether e is a collection-valued extraction (a Go
// slice/array, or anything exposing ToSlice() []any) and, if so, its
// elements. Scalars (including strings, which are not treated as
// "collections" here) return ok=false.
func asElements(e any) ([]any, bool) {
	if tsr, ok := e.(interface{ ToSlice() []any }); ok {
		return tsr.ToSlice(), true
	}
	rv := reflect.ValueOf(e)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}
		return out, true
	default:
		return nil, false
	}
}

// equalElements reports whether two collection-valued extractions are
// equal elementwise, in order — the comparison the reference-sharing
// search (§4.F) uses to decide whether an existing forward reference can
// be reused for a new collection value.
func equalElements(a, b []any) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !reflect.DeepEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}
