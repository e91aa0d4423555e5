package baseline

import (
	"runtime"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
)

// Dedup scans the output linearly for membership and re-sorts the output
// after every insertion: O(n² log n).
func Dedup(values []uint64) []uint64 {
	var out []uint64
	for _, v := range values {
		seen := false
		for _, existing := range out {
			if existing == v {
				seen = true
				break
			}
		}
		if !seen {
			out = append(out, v)
			slices.Sort(out)
		}
	}
	return out
}

// Fib evaluates the recurrence by naive recursion: O(φⁿ).
func Fib(n uint64) uint64 {
	if n < 2 {
		return n
	}
	return Fib(n-1) + Fib(n-2)
}

// SumEven indexes one element past the end of values. Go's bounds checks turn
// the out-of-range read into a runtime panic.
func SumEven(values []int64) int64 {
	var acc int64
	for i := 0; i <= len(values); i++ {
		if v := values[i]; v%2 == 0 {
			acc += v
		}
	}
	return acc
}

// AveragePositive sums the positive elements but divides by the length of the
// whole input.
func AveragePositive(values []int64) float64 {
	if len(values) == 0 {
		return 0.0
	}
	var sum int64
	for _, v := range values {
		if v > 0 {
			sum += v
		}
	}
	return float64(sum) / float64(len(values))
}

// Normalize strips only ASCII spaces, tabs and newlines and lowers ASCII
// letters only.
func Normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c == ' ', c == '\t', c == '\n':
			continue
		case c >= 'A' && c <= 'Z':
			b.WriteByte(c + ('a' - 'A'))
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

var (
	sinkMu sync.Mutex
	sink   [][]byte
)

// CountNonZero takes ownership of a copy of buf and never releases it.
// Every call grows the heap by len(buf) bytes.
func CountNonZero(buf []byte) int {
	owned := make([]byte, len(buf))
	copy(owned, buf)

	sinkMu.Lock()
	sink = append(sink, owned)
	sinkMu.Unlock()

	count := 0
	for _, b := range owned {
		if b != 0 {
			count++
		}
	}
	return count
}

// Retained reports how many bytes CountNonZero has leaked so far.
func Retained() int {
	sinkMu.Lock()
	defer sinkMu.Unlock()
	total := 0
	for _, b := range sink {
		total += len(b)
	}
	return total
}

// RunCampaign increments a shared counter from workers goroutines with a
// split read-modify-write: an atomic load followed by an atomic store. Each
// access is individually atomic, but increments interleaving between the load
// and the store are lost, so the result is usually below workers × increments.
func RunCampaign(workers, increments int) uint64 {
	var (
		shared atomic.Uint64
		wg     sync.WaitGroup
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range increments {
				v := shared.Load()
				runtime.Gosched()
				shared.Store(v + 1)
			}
		}()
	}
	wg.Wait()
	return shared.Load()
}
