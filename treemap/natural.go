package treemap

import "cmp"

// Natural returns the comparator for a TreeMap ordered by the keys' own
// natural ordering (§4.D "or by the natural order of keys if none is
// configured").
func Natural[K cmp.Ordered]() Comparator[K] {
	return func(a, b K) int { return cmp.Compare(a, b) }
}
