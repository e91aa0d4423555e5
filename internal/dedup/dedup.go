// Package dedup removes repeated values from integer sequences.
package dedup

import "slices"

// Dedup returns each distinct value of values exactly once, in the order of
// first occurrence. It runs in O(n) time and O(n) auxiliary space and never
// mutates its input. The result is non-nil even for empty input.
func Dedup(values []uint64) []uint64 {
	return dedup(values, nil)
}

// Sorted returns the distinct values of values in ascending order. The sort
// happens once, after the linear membership pass.
func Sorted(values []uint64) []uint64 {
	out := dedup(values, nil)
	slices.Sort(out)
	return out
}

// dedup is the membership-set pass shared by Dedup and Sorted. When inserts is
// non-nil it is incremented once per set insertion.
func dedup(values []uint64, inserts *int) []uint64 {
	seen := make(map[uint64]struct{}, len(values))
	out := make([]uint64, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		if inserts != nil {
			*inserts++
		}
		out = append(out, v)
	}
	return out
}
