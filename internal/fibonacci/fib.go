package fibonacci

import "math/bits"

// Fib returns F(n) using two rolling accumulators updated n-1 times.
//
// Arithmetic wraps modulo 2^64: for n > MaxExactN the result is F(n) mod 2^64.
// Fib never panics.
func Fib(n uint64) uint64 {
	if n < 2 {
		return n
	}
	a, b := uint64(0), uint64(1)
	for i := uint64(1); i < n; i++ {
		a, b = b, a+b
	}
	return b
}

// FibChecked returns F(n) mod 2^64 and reports whether the value is exact,
// that is, whether no addition along the way carried out of 64 bits.
func FibChecked(n uint64) (uint64, bool) {
	if n < 2 {
		return n, true
	}
	a, b := uint64(0), uint64(1)
	exact := true
	for i := uint64(1); i < n; i++ {
		next, carry := bits.Add64(a, b, 0)
		if carry != 0 {
			exact = false
		}
		a, b = b, next
	}
	return b, exact
}
