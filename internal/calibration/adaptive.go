// This file generates the worker counts swept by calibration.

package calibration

import "runtime"

// GenerateWorkerCounts returns 1, 2, 4, ... up to maxWorkers, with
// maxWorkers itself appended when it is not a power of two. A non-positive
// maxWorkers uses runtime.NumCPU().
func GenerateWorkerCounts(maxWorkers int) []int {
	if maxWorkers <= 0 {
		maxWorkers = runtime.NumCPU()
	}
	var counts []int
	for w := 1; w <= maxWorkers; w *= 2 {
		counts = append(counts, w)
	}
	if counts[len(counts)-1] != maxWorkers {
		counts = append(counts, maxWorkers)
	}
	return counts
}

// GenerateQuickWorkerCounts is the reduced sweep: one worker, half the
// CPUs and all of them, without duplicates.
func GenerateQuickWorkerCounts() []int {
	n := runtime.NumCPU()
	counts := []int{1}
	if half := n / 2; half > 1 {
		counts = append(counts, half)
	}
	if n > 1 {
		counts = append(counts, n)
	}
	return counts
}
