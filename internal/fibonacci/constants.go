package fibonacci

// ─────────────────────────────────────────────────────────────────────────────
// Domain Constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	// MaxExactN is the largest index whose Fibonacci number fits in a uint64.
	// F(93) = 12,200,160,415,121,876,738; F(94) exceeds 2^64 - 1.
	MaxExactN = 93

	// BenchmarkN is the index evaluated by the benchmark harness.
	BenchmarkN = 32
)
