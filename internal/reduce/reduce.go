// Package reduce provides stateless reductions over int64 sequences.
//
// Inputs are caller-owned and read-only. Every function is total: empty or
// degenerate inputs produce documented zero values, never errors.
package reduce

// SumEven returns the sum of every element divisible by two, negative even
// numbers included. The slice is ranged over exactly once; an empty slice
// sums to 0. The sum wraps on int64 overflow.
func SumEven(values []int64) int64 {
	var acc int64
	for _, v := range values {
		if v%2 == 0 {
			acc += v
		}
	}
	return acc
}

// AveragePositive returns the arithmetic mean of the strictly positive
// elements of values. When no element is positive the result is 0.0, not NaN.
//
// The sum is accumulated as a float64 and does not wrap; sums below 2^53
// are exact.
func AveragePositive(values []int64) float64 {
	var (
		sum   float64
		count int
	)
	for _, v := range values {
		if v > 0 {
			sum += float64(v)
			count++
		}
	}
	if count == 0 {
		return 0.0
	}
	return sum / float64(count)
}
