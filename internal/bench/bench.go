package bench

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/agbru/refalgo/internal/dedup"
	"github.com/agbru/refalgo/internal/fibonacci"
	"github.com/agbru/refalgo/internal/logging"
	"github.com/agbru/refalgo/internal/metrics"
	"github.com/agbru/refalgo/internal/reduce"
	"github.com/agbru/refalgo/internal/workload"
)

const tracerName = "github.com/agbru/refalgo/internal/bench"

// Operation is one timed call. Run must not retain its inputs between calls.
type Operation struct {
	Name string
	Run  func()
}

// Sample is a single timed call.
type Sample struct {
	Round     int           `json:"round"`
	Operation string        `json:"operation"`
	Duration  time.Duration `json:"duration_ns"`
}

// Stat summarizes the samples of one operation.
type Stat struct {
	Operation string        `json:"operation"`
	Samples   int           `json:"samples"`
	Min       time.Duration `json:"min_ns"`
	Mean      time.Duration `json:"mean_ns"`
	Max       time.Duration `json:"max_ns"`
}

// Report is the outcome of Run.
type Report struct {
	Rounds       int                    `json:"rounds"`
	Samples      []Sample               `json:"samples"`
	Stats        []Stat                 `json:"stats"`
	MemoryBefore metrics.MemorySnapshot `json:"memory_before"`
	MemoryAfter  metrics.MemorySnapshot `json:"memory_after"`
	MemoryDelta  metrics.MemoryDelta    `json:"memory_delta"`
	Elapsed      time.Duration          `json:"elapsed_ns"`
}

// sinks keep results observable so calls are not optimized away.
var (
	sinkInt64  int64
	sinkUint64 uint64
	sinkLen    int
)

// DefaultSuite returns the sum_even, fib and dedup operations over in.
// Inputs are built once here, outside the timed section.
func DefaultSuite(in workload.Inputs) []Operation {
	rng := workload.Range(in.RangeSize)
	pairs := workload.Pairs(in.DedupPairs)
	n := in.FibN
	return []Operation{
		{Name: "sum_even", Run: func() { sinkInt64 = reduce.SumEven(rng) }},
		{Name: "fib", Run: func() { sinkUint64 = fibonacci.Fib(n) }},
		{Name: "dedup", Run: func() { sinkLen = len(dedup.Dedup(pairs)) }},
	}
}

// Option configures Run.
type Option func(*runner)

// WithRecorder records every sample into r.
func WithRecorder(r *metrics.Recorder) Option {
	return func(rn *runner) { rn.recorder = r }
}

// WithLogger sets the logger for round and GC events.
func WithLogger(l logging.Logger) Option {
	return func(rn *runner) { rn.logger = l }
}

// WithGCMode controls the collector during the timed section.
func WithGCMode(m GCMode) Option {
	return func(rn *runner) { rn.gcMode = m }
}

// WithSampleHook is called after every sample, e.g. for progress display.
func WithSampleHook(fn func(Sample)) Option {
	return func(rn *runner) { rn.hook = fn }
}

type runner struct {
	recorder *metrics.Recorder
	logger   logging.Logger
	gcMode   GCMode
	hook     func(Sample)
}

// maxPreallocSamples bounds the initial sample buffer so a huge round
// count interrupted by a timeout does not allocate up front.
const maxPreallocSamples = 4096

// Run times every operation of suite once per round. Cancellation is
// checked between operations; on cancellation the partial report is
// returned together with the context error.
func Run(ctx context.Context, suite []Operation, rounds int, opts ...Option) (Report, error) {
	rn := runner{
		logger: logging.NewZerologAdapter(zerolog.Nop()),
		gcMode: GCModeDefault,
	}
	for _, opt := range opts {
		opt(&rn)
	}

	ctx, span := otel.Tracer(tracerName).Start(ctx, "bench.Run")
	span.SetAttributes(attribute.Int("refalgo.rounds", rounds), attribute.Int("refalgo.operations", len(suite)))
	defer span.End()

	mc := metrics.NewMemoryCollector()
	report := Report{Rounds: rounds, Samples: make([]Sample, 0, min(max(rounds, 0)*len(suite), maxPreallocSamples))}
	report.MemoryBefore = mc.SettledSnapshot()
	rn.recorder.SetMemory(report.MemoryBefore)

	gc := newGCController(rn.gcMode, rn.logger)
	gc.begin()
	start := time.Now()
	err := rn.loop(ctx, suite, rounds, &report)
	report.Elapsed = time.Since(start)
	gc.end()

	report.MemoryAfter = mc.SettledSnapshot()
	report.MemoryDelta = report.MemoryAfter.Since(report.MemoryBefore)
	rn.recorder.SetMemory(report.MemoryAfter)
	report.Stats = Summarize(report.Samples)

	if err != nil {
		span.RecordError(err)
		return report, fmt.Errorf("bench interrupted after %d samples: %w", len(report.Samples), err)
	}
	return report, nil
}

func (rn *runner) loop(ctx context.Context, suite []Operation, rounds int, report *Report) error {
	for round := 1; round <= rounds; round++ {
		for _, op := range suite {
			if err := ctx.Err(); err != nil {
				return err
			}
			t0 := time.Now()
			op.Run()
			s := Sample{Round: round, Operation: op.Name, Duration: time.Since(t0)}

			report.Samples = append(report.Samples, s)
			rn.recorder.ObserveOperation(op.Name, "reference", s.Duration)
			if rn.hook != nil {
				rn.hook(s)
			}
		}
		rn.logger.Debug("round complete", logging.Int("round", round))
	}
	return nil
}

// Summarize folds samples into per-operation statistics, ordered by first
// appearance.
func Summarize(samples []Sample) []Stat {
	var order []string
	byOp := make(map[string]*Stat)
	totals := make(map[string]time.Duration)
	for _, s := range samples {
		st, ok := byOp[s.Operation]
		if !ok {
			st = &Stat{Operation: s.Operation, Min: s.Duration, Max: s.Duration}
			byOp[s.Operation] = st
			order = append(order, s.Operation)
		}
		st.Samples++
		st.Min = min(st.Min, s.Duration)
		st.Max = max(st.Max, s.Duration)
		totals[s.Operation] += s.Duration
	}

	stats := make([]Stat, 0, len(order))
	for _, name := range order {
		st := byOp[name]
		st.Mean = totals[name] / time.Duration(st.Samples)
		stats = append(stats, *st)
	}
	return stats
}
