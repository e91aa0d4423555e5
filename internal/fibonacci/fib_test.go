package fibonacci

import (
	"encoding/json"
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"
)

type goldenEntry struct {
	N       uint64 `json:"n"`
	Value   string `json:"value"`
	Wrapped uint64 `json:"wrapped"`
}

func loadGolden(t *testing.T) []goldenEntry {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "fib_golden.json"))
	if err != nil {
		t.Fatalf("reading golden file: %v", err)
	}
	var entries []goldenEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		t.Fatalf("decoding golden file: %v", err)
	}
	if len(entries) == 0 {
		t.Fatal("golden file is empty")
	}
	return entries
}

func TestFib_KnownValues(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		n    uint64
		want uint64
	}{
		{"F(0) base case", 0, 0},
		{"F(1) base case", 1, 1},
		{"F(2) first non-trivial", 2, 1},
		{"F(10)", 10, 55},
		{"F(32) benchmark index", BenchmarkN, 2178309},
		{"F(50)", 50, 12586269025},
		{"F(90)", 90, 2880067194370816120},
		{"F(93) max uint64", MaxExactN, 12200160415121876738},
		{"F(94) wraps", 94, 1293530146158671551},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Fib(tt.n); got != tt.want {
				t.Errorf("Fib(%d) = %d, want %d", tt.n, got, tt.want)
			}
		})
	}
}

func TestFib_Golden(t *testing.T) {
	t.Parallel()
	for _, e := range loadGolden(t) {
		if got := Fib(e.N); got != e.Wrapped {
			t.Errorf("Fib(%d) = %d, want %d", e.N, got, e.Wrapped)
		}

		exact, ok := new(big.Int).SetString(e.Value, 10)
		if !ok {
			t.Fatalf("golden value for n=%d is not a decimal integer: %q", e.N, e.Value)
		}
		got, isExact := FibChecked(e.N)
		if got != e.Wrapped {
			t.Errorf("FibChecked(%d) value = %d, want %d", e.N, got, e.Wrapped)
		}
		if wantExact := exact.IsUint64(); isExact != wantExact {
			t.Errorf("FibChecked(%d) exact = %v, want %v", e.N, isExact, wantExact)
		}
	}
}

func TestFib_Recurrence(t *testing.T) {
	t.Parallel()
	for n := uint64(2); n <= 90; n++ {
		if Fib(n) != Fib(n-1)+Fib(n-2) {
			t.Fatalf("F(%d) != F(%d) + F(%d)", n, n-1, n-2)
		}
	}
}

func TestFibChecked_Boundary(t *testing.T) {
	t.Parallel()
	if _, exact := FibChecked(MaxExactN); !exact {
		t.Errorf("F(%d) should be exact", MaxExactN)
	}
	if _, exact := FibChecked(MaxExactN + 1); exact {
		t.Errorf("F(%d) should be reported as wrapped", MaxExactN+1)
	}
}

func TestFib_WrapsWithoutPanic(t *testing.T) {
	t.Parallel()
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("Fib panicked on overflow: %v", r)
		}
	}()
	for _, n := range []uint64{94, 200, 1000, 100_000} {
		if got, want := Fib(n), OracleUint64(n); got != want {
			t.Errorf("Fib(%d) = %d, want F(n) mod 2^64 = %d", n, got, want)
		}
	}
}

func TestFib_SmallIndices(t *testing.T) {
	t.Parallel()
	want := []uint64{0, 1, 1, 2, 3, 5}
	for n, w := range want {
		if got := Fib(uint64(n)); got != w {
			t.Errorf("Fib(%d) = %d, want %d", n, got, w)
		}
		if got, exact := FibChecked(uint64(n)); got != w || !exact {
			t.Errorf("FibChecked(%d) = %d, %v, want %d, true", n, got, exact, w)
		}
	}
}

// TestFib_Fast guards the linear-time contract. An exponential evaluator
// needs seconds for n = 50.
func TestFib_Fast(t *testing.T) {
	const iterations = 1000
	start := time.Now()
	for i := 0; i < iterations; i++ {
		_ = Fib(50)
	}
	perCall := time.Since(start) / iterations
	if perCall > time.Millisecond {
		t.Errorf("Fib(50) took %s per call, want sub-millisecond", perCall)
	}
}

func BenchmarkFib(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = Fib(BenchmarkN)
	}
}
