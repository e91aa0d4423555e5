// Command generate-golden writes the Fibonacci golden file used by the
// fibonacci package tests. Each entry carries the exact decimal value of
// F(n), computed with math/big, and its value modulo 2^64.
//
// Usage:
//
//	go run ./cmd/generate-golden -out internal/fibonacci/testdata/fib_golden.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
)

type goldenEntry struct {
	N       uint64 `json:"n"`
	Value   string `json:"value"`
	Wrapped uint64 `json:"wrapped"`
}

// fibBig computes F(n) exactly by iteration.
func fibBig(n uint64) *big.Int {
	a, b := big.NewInt(0), big.NewInt(1)
	for i := uint64(0); i < n; i++ {
		a.Add(a, b)
		a, b = b, a
	}
	return a
}

var mod64 = new(big.Int).Lsh(big.NewInt(1), 64)

func entries(maxN uint64) []goldenEntry {
	out := make([]goldenEntry, 0, maxN+1)
	for n := uint64(0); n <= maxN; n++ {
		v := fibBig(n)
		out = append(out, goldenEntry{
			N:       n,
			Value:   v.String(),
			Wrapped: new(big.Int).Mod(v, mod64).Uint64(),
		})
	}
	return out
}

func main() {
	outPath := flag.String("out", filepath.Join("internal", "fibonacci", "testdata", "fib_golden.json"), "golden file to write")
	maxN := flag.Uint64("max", 100, "largest index to include")
	flag.Parse()

	data, err := json.MarshalIndent(entries(*maxN), "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "encoding golden data: %v\n", err)
		os.Exit(1)
	}
	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "creating directory: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*outPath, append(data, '\n'), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "writing %s: %v\n", *outPath, err)
		os.Exit(1)
	}
	fmt.Printf("wrote %d entries to %s\n", *maxN+1, *outPath)
}
