package fibonacci

import "testing"

// FuzzFibOracleConsistency checks the iterative evaluator against the
// fast doubling oracle for arbitrary indices.
func FuzzFibOracleConsistency(f *testing.F) {
	for _, n := range []uint64{0, 1, 2, 10, 50, 92, 93, 94, 100, 1000} {
		f.Add(n)
	}

	f.Fuzz(func(t *testing.T, n uint64) {
		if n > 200_000 {
			return
		}
		if got, want := Fib(n), OracleUint64(n); got != want {
			t.Errorf("Fib(%d) = %d, oracle = %d", n, got, want)
		}
	})
}
