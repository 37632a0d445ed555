// Copyright 2021 The Erigon Authors
// This file is part of Erigon.
//
// Erigon is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Erigon is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Erigon. If not, see <http://www.gnu.org/licenses/>.

// Package bucket holds the bucket-count modulus table used by the hash map's
// resize policy. Bucket counts are always drawn from this table rather than
// grown by an arbitrary multiplier, the same way a storage engine only ever
// resizes into one of a small set of blessed layouts instead of an arbitrary
// one.
package bucket

import (
	"sort"

	"github.com/erigontech/cachecore/internal/xmath"
)

// Moduli is the sorted table of allowed bucket counts. It is deliberately a
// mix of primes and near-primes across a wide range of magnitudes so that
// NextModulus always has somewhere reasonable to land regardless of how
// large the map grows. This list will be sorted in init().
var Moduli = []int{
	17, 37, 67, 131, 257, 521, 1031, 2053, 4099, 8209, 16411, 32771, 65537,
	131101, 262147, 524309, 1048583, 2097169, 1 << 22, 1 << 23, 1 << 24,
	1 << 25, 1 << 26, 1 << 27, 1 << 28,
}

func init() {
	reinit()
}

func reinit() {
	sort.Ints(Moduli)
}

// NextModulus returns the smallest allowed modulus strictly greater than
// target. When target exceeds every entry in the table, it falls back to
// target*2+1 (kept odd, as an ad-hoc modulus beyond the blessed table) so the
// map can still grow arbitrarily large.
func NextModulus(target int) int {
	i := sort.SearchInts(Moduli, target+1)
	if i < len(Moduli) {
		return Moduli[i]
	}
	return target*2 + 1
}

// Policy is the resize policy for a hash map: how many buckets to start
// with, at what load the map resizes, and by how much.
type Policy struct {
	InitialBuckets int
	LoadFactor     float64
	GrowthRate     float64
}

// DefaultPolicy mirrors a conservative general-purpose cache configuration.
var DefaultPolicy = Policy{
	InitialBuckets: 17,
	LoadFactor:     0.75,
	GrowthRate:     1.0,
}

// ShouldGrow reports whether a map with the given entry and bucket counts
// has crossed this policy's load factor.
func (p Policy) ShouldGrow(entryCount, bucketCount int) bool {
	return float64(entryCount) > float64(bucketCount)*p.LoadFactor
}

// NextBucketCount computes the next bucket count per §4.C's resize policy:
// the smallest allowed modulus strictly greater than
// bucketCount * (1 + growthRate). The multiply-then-divide is done in
// integer arithmetic via xmath.SafeMul/CeilDiv (growth rate scaled to
// per-mille) rather than float64, so a map with an enormous bucket count
// saturates at xmath.MaxInt32 instead of silently producing a nonsense
// target through float rounding.
func (p Policy) NextBucketCount(bucketCount int) int {
	growthPerMille := uint64(p.GrowthRate * 1000)
	scaled, overflowed := xmath.SafeMul(uint64(bucketCount), 1000+growthPerMille)
	var target int
	if overflowed || scaled > uint64(xmath.MaxInt32) {
		target = xmath.MaxInt32
	} else {
		target = xmath.CeilDiv(int(scaled), 1000)
	}
	if target <= bucketCount {
		target = bucketCount + 1
	}
	return NextModulus(target)
}
