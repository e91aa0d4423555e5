package bench

import (
	"bytes"
	"context"
	"errors"
	"runtime/debug"
	"strings"
	"testing"
	"time"

	"github.com/agbru/refalgo/internal/logging"
	"github.com/agbru/refalgo/internal/metrics"
	"github.com/agbru/refalgo/internal/workload"
	"github.com/rs/zerolog"
)

func TestRunDefaultSuite(t *testing.T) {
	in := workload.Inputs{RangeSize: 50_000, FibN: 32, DedupPairs: 5_000}
	rec := metrics.NewRecorder()

	var hooked int
	report, err := Run(context.Background(), DefaultSuite(in), 3,
		WithRecorder(rec),
		WithSampleHook(func(Sample) { hooked++ }))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(report.Samples) != 9 || hooked != 9 {
		t.Fatalf("samples = %d, hook calls = %d, want 9", len(report.Samples), hooked)
	}
	wantOrder := []string{"sum_even", "fib", "dedup"}
	for i, s := range report.Samples {
		if s.Operation != wantOrder[i%3] || s.Round != i/3+1 {
			t.Errorf("sample %d = %+v", i, s)
		}
	}
	if len(report.Stats) != 3 {
		t.Fatalf("stats = %d, want 3", len(report.Stats))
	}
	for _, st := range report.Stats {
		if st.Samples != 3 || st.Min > st.Mean || st.Mean > st.Max {
			t.Errorf("inconsistent stat %+v", st)
		}
	}
	if report.Elapsed <= 0 || report.MemoryBefore.HeapAlloc == 0 {
		t.Errorf("report missing timing or memory: %+v", report)
	}

	// sinks hold the last results
	if sinkInt64 != workload.RangeEvenSum(50_000) || sinkUint64 != 2178309 || sinkLen != 5_000 {
		t.Errorf("unexpected sink values %d %d %d", sinkInt64, sinkUint64, sinkLen)
	}

	var buf bytes.Buffer
	if err := rec.WriteText(&buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `refalgo_operation_duration_seconds_count{impl="reference",operation="dedup"} 3`) {
		t.Errorf("recorder missing dedup samples:\n%s", buf.String())
	}
}

func TestRunCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	suite := []Operation{
		{Name: "a", Run: func() { calls++ }},
		{Name: "b", Run: func() { calls++; cancel() }},
		{Name: "c", Run: func() { calls++ }},
	}

	report, err := Run(ctx, suite, 10)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if calls != 2 || len(report.Samples) != 2 {
		t.Errorf("calls = %d, samples = %d, want 2", calls, len(report.Samples))
	}
	if len(report.Stats) != 2 {
		t.Errorf("partial stats = %d, want 2", len(report.Stats))
	}
}

func TestRunZeroRounds(t *testing.T) {
	report, err := Run(context.Background(), DefaultSuite(workload.Inputs{}), 0)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(report.Samples) != 0 || len(report.Stats) != 0 {
		t.Errorf("expected an empty report, got %+v", report)
	}
}

func TestRunGCDisabledRestoresPercent(t *testing.T) {
	orig := debug.SetGCPercent(150)
	defer debug.SetGCPercent(orig)

	var logs bytes.Buffer
	logger := logging.NewZerologAdapter(zerolog.New(&logs).Level(zerolog.DebugLevel))
	_, err := Run(context.Background(), DefaultSuite(workload.Inputs{RangeSize: 1000, FibN: 10, DedupPairs: 100}), 2,
		WithGCMode(GCModeDisabled), WithLogger(logger))
	if err != nil {
		t.Fatal(err)
	}

	if got := debug.SetGCPercent(150); got != 150 {
		t.Errorf("GC percent after run = %d, want 150", got)
	}
	for _, want := range []string{"gc disabled", "gc re-enabled", "round complete"} {
		if !strings.Contains(logs.String(), want) {
			t.Errorf("logs missing %q:\n%s", want, logs.String())
		}
	}
}

func TestParseGCMode(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in     string
		want   GCMode
		wantOK bool
	}{
		{"", GCModeDefault, true},
		{"default", GCModeDefault, true},
		{"disabled", GCModeDisabled, true},
		{"aggressive", "", false},
	}
	for _, tc := range tests {
		got, ok := ParseGCMode(tc.in)
		if got != tc.want || ok != tc.wantOK {
			t.Errorf("ParseGCMode(%q) = (%q, %v), want (%q, %v)", tc.in, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()
	ms := time.Millisecond
	stats := Summarize([]Sample{
		{1, "fib", 3 * ms},
		{1, "dedup", 10 * ms},
		{2, "fib", 1 * ms},
		{2, "dedup", 20 * ms},
		{3, "fib", 2 * ms},
	})
	want := []Stat{
		{Operation: "fib", Samples: 3, Min: 1 * ms, Mean: 2 * ms, Max: 3 * ms},
		{Operation: "dedup", Samples: 2, Min: 10 * ms, Mean: 15 * ms, Max: 20 * ms},
	}
	if len(stats) != len(want) {
		t.Fatalf("got %d stats, want %d", len(stats), len(want))
	}
	for i := range want {
		if stats[i] != want[i] {
			t.Errorf("stats[%d] = %+v, want %+v", i, stats[i], want[i])
		}
	}
	if got := Summarize(nil); len(got) != 0 {
		t.Errorf("Summarize(nil) = %v", got)
	}
}

func BenchmarkDefaultSuite(b *testing.B) {
	suite := DefaultSuite(workload.Inputs{RangeSize: 50_000, FibN: 32, DedupPairs: 5_000})
	for _, op := range suite {
		b.Run(op.Name, func(b *testing.B) {
			for b.Loop() {
				op.Run()
			}
		})
	}
}
