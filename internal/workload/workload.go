// Package workload builds the fixed synthetic inputs fed to the benchmark
// and differential harnesses.
package workload

// DefaultText mixes ASCII, Unicode whitespace and characters whose case
// folding is not a one-to-one ASCII mapping.
const DefaultText = "  Stra\u00dfe\u00a0GROSS\t\u03a3\u038a\u03a3\u03a5\u03a6\u039f\u03a3 \uff27\uff4f\u3000Lang \n"

// Inputs describes the size of every synthetic input.
type Inputs struct {
	// RangeSize is n for the [0, n) range.
	RangeSize int
	// FibN is the Fibonacci index.
	FibN uint64
	// DedupPairs is the number of distinct values, each present twice.
	DedupPairs int
	// Workers and Increments size a counter campaign.
	Workers    int
	Increments int
	// Text is the Normalize input. Empty means DefaultText.
	Text string
}

// Range returns [0, n).
func Range(n int) []int64 {
	out := make([]int64, max(n, 0))
	for i := range out {
		out[i] = int64(i)
	}
	return out
}

// Centered returns n consecutive values starting at -n/2, so roughly half
// are negative.
func Centered(n int) []int64 {
	out := make([]int64, max(n, 0))
	half := int64(n / 2)
	for i := range out {
		out[i] = int64(i) - half
	}
	return out
}

// Pairs returns [0, 0, 1, 1, ..., n-1, n-1].
func Pairs(n int) []uint64 {
	out := make([]uint64, 0, 2*max(n, 0))
	for i := range max(n, 0) {
		out = append(out, uint64(i), uint64(i))
	}
	return out
}

// Sparse returns n bytes where every fourth byte, starting at index 0, is
// zero and the rest are non-zero.
func Sparse(n int) []byte {
	out := make([]byte, max(n, 0))
	for i := range out {
		out[i] = byte(i % 4)
	}
	return out
}

// SparseNonZero is the number of non-zero bytes in Sparse(n).
func SparseNonZero(n int) int {
	if n <= 0 {
		return 0
	}
	return n - (n+3)/4
}

// RangeEvenSum is the sum of the even values in Range(n).
func RangeEvenSum(n int) int64 {
	if n <= 0 {
		return 0
	}
	k := int64(n+1) / 2 // evens: 0, 2, ..., 2(k-1)
	return k * (k - 1)
}

// CenteredPositiveMean is the mean of the positive values in Centered(n),
// or 0 when there are none.
func CenteredPositiveMean(n int) float64 {
	p := int64(n) - int64(n/2) - 1 // positives: 1..p
	if p <= 0 {
		return 0
	}
	return float64(p+1) / 2
}

// TextOrDefault returns in.Text, or DefaultText when it is empty.
func (in Inputs) TextOrDefault() string {
	if in.Text == "" {
		return DefaultText
	}
	return in.Text
}
