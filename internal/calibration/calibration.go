package calibration

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/agbru/refalgo/internal/counter"
	apperrors "github.com/agbru/refalgo/internal/errors"
	"github.com/agbru/refalgo/internal/metrics"
)

// Result is the measurement of one worker count.
type Result struct {
	Workers  int           `json:"workers"`
	Duration time.Duration `json:"duration_ns"`
	Value    uint64        `json:"value"`
	Err      error         `json:"-"`
}

// Throughput returns increments per second, or 0 for failed or
// unmeasurably fast runs.
func (r Result) Throughput() float64 {
	if r.Err != nil || r.Duration <= 0 {
		return 0
	}
	return float64(r.Value) / r.Duration.Seconds()
}

// Sweep runs one campaign of increments per worker for each worker count
// and checks the joined value against workers × increments. It stops at
// the first cancellation and returns what it measured so far.
func Sweep(ctx context.Context, workerCounts []int, increments int, rec *metrics.Recorder) ([]Result, error) {
	var c counter.Campaign
	results := make([]Result, 0, len(workerCounts))
	for _, w := range workerCounts {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		start := time.Now()
		v := c.Run(w, increments)
		r := Result{Workers: w, Duration: time.Since(start), Value: v}

		want := counter.Expected(w, increments)
		rec.RecordCampaign(want, v)
		if v != want {
			r.Err = apperrors.ValidationError{
				Field:   "counter",
				Message: fmt.Sprintf("joined at %d with %d workers, want %d", v, w, want),
			}
		}
		results = append(results, r)
	}
	return results, nil
}

// Best returns the worker count with the shortest successful run, or 0 if
// none succeeded.
func Best(results []Result) int {
	best, bestDur := 0, time.Duration(0)
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		if best == 0 || r.Duration < bestDur {
			best, bestDur = r.Workers, r.Duration
		}
	}
	return best
}

// RunCalibration sweeps worker counts up to maxWorkers, prints the summary
// table and returns the measurements with an exit code.
func RunCalibration(ctx context.Context, out io.Writer, maxWorkers, increments int, rec *metrics.Recorder) ([]Result, int) {
	counts := GenerateWorkerCounts(maxWorkers)
	fmt.Fprintf(out, "Calibrating counter fan-out: %d increments per worker, worker counts %v\n", increments, counts)

	results, err := Sweep(ctx, counts, increments, rec)
	best := Best(results)
	printCalibrationResults(out, results, best)

	if err != nil {
		return results, apperrors.HandleRunError(err, out)
	}
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(out, "\nCalibration failed: %v\n", r.Err)
			return results, apperrors.ExitErrorMismatch
		}
	}
	printCalibrationOutput(out, best)
	return results, apperrors.ExitSuccess
}
