package index

// findSharedReference implements §4.F's reference-sharing search: given a
// newly extracted collection value (as its elements, plus the value
// itself), look for an existing forward reference that is elementwise
// equal, so future exact-match queries can compare by identity.
//
// The search strategy is bounded by the size of the smallest inverse
// bucket among the collection's elements: below refSearchThreshold keys,
// intersect those buckets' key sets (cheap when the buckets are small);
// at or above it, a single linear scan of the forward map's values is
// cheaper than repeated large-set intersections.
func (idx *Index) findSharedReference(elems []any, newValue any) any {
	if len(elems) == 0 {
		return newValue
	}

	smallest := -1
	for _, el := range elems {
		ks, ok := idx.inverse.get(el)
		if !ok {
			// One element has never been indexed before: the
			// intersection of all elements' key sets is empty, so no
			// reference can be shared.
			return newValue
		}
		if smallest == -1 || ks.Size() < smallest {
			smallest = ks.Size()
		}
	}

	if smallest < idx.refSearchThreshold {
		return idx.searchByIntersection(elems, newValue)
	}
	return idx.searchByForwardScan(elems, newValue)
}

func (idx *Index) searchByIntersection(elems []any, newValue any) any {
	counts := make(map[any]int)
	for _, el := range elems {
		ks, ok := idx.inverse.get(el)
		if !ok {
			return newValue
		}
		for _, k := range ks.Keys() {
			counts[k]++
		}
	}
	for k, c := range counts {
		if c != len(elems) {
			continue
		}
		ref, ok := idx.forward.Get(k)
		if !ok {
			continue
		}
		if refElems, isColl := asElements(ref); isColl && equalElements(refElems, elems) {
			return ref
		}
	}
	return newValue
}

func (idx *Index) searchByForwardScan(elems []any, newValue any) any {
	it := idx.forward.Values().Iterator()
	for it.HasNext() {
		v, _ := it.Next()
		if ve, isColl := asElements(v); isColl && equalElements(ve, elems) {
			return v
		}
	}
	return newValue
}
