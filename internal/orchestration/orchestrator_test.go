package orchestration

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"

	apperrors "github.com/agbru/refalgo/internal/errors"
	"github.com/agbru/refalgo/internal/metrics"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// MockResultPresenter records what it was asked to present.
type MockResultPresenter struct {
	mu          sync.Mutex
	tableRows   int
	divergences bool
}

func (p *MockResultPresenter) PresentDifferentialTable(results []CaseResult, _ io.Writer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tableRows = len(results)
}

func (p *MockResultPresenter) PresentDivergences(_ []CaseResult, _ io.Writer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.divergences = true
}

func value(v any) Func {
	return func(context.Context) (any, error) { return v, nil }
}

func TestExecuteCases(t *testing.T) {
	t.Parallel()

	errBoom := errors.New("boom")
	tests := []struct {
		name        string
		c           Case
		wantOutcome string
		check       func(t *testing.T, r CaseResult)
	}{
		{
			name:        "match",
			c:           Case{Name: "same", Reference: value([]uint64{1, 2}), Candidate: value([]uint64{1, 2})},
			wantOutcome: metrics.OutcomeMatch,
		},
		{
			name:        "nil and empty slices match",
			c:           Case{Name: "empty", Reference: value([]uint64{}), Candidate: value([]uint64(nil))},
			wantOutcome: metrics.OutcomeMatch,
		},
		{
			name:        "diverged value",
			c:           Case{Name: "avg", Reference: value(2.5), Candidate: value(1.25)},
			wantOutcome: metrics.OutcomeDiverged,
			check: func(t *testing.T, r CaseResult) {
				if !strings.Contains(r.Diff, "2.5") || !strings.Contains(r.Diff, "1.25") {
					t.Errorf("Diff = %q, want both values", r.Diff)
				}
			},
		},
		{
			name: "candidate panic recovered",
			c: Case{Name: "sum", Reference: value(int64(6)), Candidate: func(context.Context) (any, error) {
				var s []int64
				return s[1], nil
			}},
			wantOutcome: metrics.OutcomeDiverged,
			check: func(t *testing.T, r CaseResult) {
				var pe apperrors.PanicError
				if !errors.As(r.Candidate.Err, &pe) {
					t.Fatalf("candidate error %v is not a PanicError", r.Candidate.Err)
				}
				if pe.Operation != "sum (naive)" {
					t.Errorf("Operation = %q", pe.Operation)
				}
				if r.Diff != "" {
					t.Errorf("Diff should be empty when a side failed, got %q", r.Diff)
				}
			},
		},
		{
			name:        "reference error",
			c:           Case{Name: "ref", Reference: func(context.Context) (any, error) { return nil, errBoom }, Candidate: value(1)},
			wantOutcome: metrics.OutcomeFailed,
			check: func(t *testing.T, r CaseResult) {
				if !errors.Is(r.Reference.Err, errBoom) {
					t.Errorf("Reference.Err = %v, want boom", r.Reference.Err)
				}
				if r.Candidate.Err != nil {
					t.Errorf("candidate should still run, got %v", r.Candidate.Err)
				}
			},
		},
		{
			name: "verify failure",
			c: Case{Name: "fib", Reference: value(uint64(54)), Candidate: value(uint64(55)),
				Verify: func(any) error { return errBoom }},
			wantOutcome: metrics.OutcomeFailed,
			check: func(t *testing.T, r CaseResult) {
				var oe apperrors.OperationError
				if !errors.As(r.Reference.Err, &oe) || oe.Operation != "verify fib" {
					t.Errorf("Reference.Err = %v, want verify OperationError", r.Reference.Err)
				}
			},
		},
		{
			name:        "missing candidate",
			c:           Case{Name: "half", Reference: value(1)},
			wantOutcome: metrics.OutcomeDiverged,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			results := ExecuteCases(context.Background(), []Case{tc.c}, NullProgressReporter{}, io.Discard)
			if len(results) != 1 {
				t.Fatalf("got %d results, want 1", len(results))
			}
			r := results[0]
			if r.Name != tc.c.Name {
				t.Errorf("Name = %q, want %q", r.Name, tc.c.Name)
			}
			if got := r.Outcome(); got != tc.wantOutcome {
				t.Errorf("Outcome() = %q, want %q (result %+v)", got, tc.wantOutcome, r)
			}
			if tc.check != nil {
				tc.check(t, r)
			}
		})
	}
}

func TestExecuteCasesTimesSides(t *testing.T) {
	t.Parallel()
	slow := func(context.Context) (any, error) {
		time.Sleep(5 * time.Millisecond)
		return 1, nil
	}
	results := ExecuteCases(context.Background(), []Case{{Name: "slow", Reference: slow, Candidate: slow}}, NullProgressReporter{}, io.Discard)
	if results[0].Reference.Duration < 5*time.Millisecond || results[0].Candidate.Duration < 5*time.Millisecond {
		t.Errorf("durations not recorded: %+v", results[0])
	}
}

func TestExecuteCasesCanceled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	results := ExecuteCases(ctx, []Case{{Name: "late", Reference: func(context.Context) (any, error) {
		called = true
		return 1, nil
	}, Candidate: value(1)}}, NullProgressReporter{}, io.Discard)

	if called {
		t.Error("reference ran despite a canceled context")
	}
	if !errors.Is(results[0].Reference.Err, context.Canceled) {
		t.Errorf("Reference.Err = %v, want context.Canceled", results[0].Reference.Err)
	}
}

func TestExecuteCasesProgress(t *testing.T) {
	t.Parallel()

	cases := make([]Case, 6)
	for i := range cases {
		cases[i] = Case{Name: string(rune('a' + i)), Reference: value(i), Candidate: value(i)}
	}

	var (
		updates  []ProgressUpdate
		numCases int
	)
	reporter := ProgressReporterFunc(func(wg *sync.WaitGroup, ch <-chan ProgressUpdate, n int, _ io.Writer) {
		defer wg.Done()
		numCases = n
		for u := range ch {
			updates = append(updates, u)
		}
	})

	ExecuteCases(context.Background(), cases, reporter, io.Discard)

	if numCases != len(cases) {
		t.Errorf("reporter saw %d cases, want %d", numCases, len(cases))
	}
	if len(updates) != 2*len(cases) {
		t.Fatalf("got %d updates, want %d", len(updates), 2*len(cases))
	}
	agg := NewProgressAggregator(len(cases))
	for _, u := range updates {
		agg.Update(u)
	}
	if got := agg.CalculateAverage(); got != 1 {
		t.Errorf("final progress = %v, want 1", got)
	}
}

func TestExecuteCasesSlowReporterDoesNotDeadlock(t *testing.T) {
	t.Parallel()

	cases := make([]Case, 20)
	for i := range cases {
		cases[i] = Case{Name: "c", Reference: value(i), Candidate: value(i)}
	}
	reporter := ProgressReporterFunc(func(wg *sync.WaitGroup, ch <-chan ProgressUpdate, _ int, _ io.Writer) {
		defer wg.Done()
		for range ch {
			time.Sleep(time.Millisecond)
		}
	})

	done := make(chan struct{})
	go func() {
		ExecuteCases(context.Background(), cases, reporter, io.Discard)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("ExecuteCases did not return")
	}
}

func TestAnalyzeDifferentialResults(t *testing.T) {
	t.Parallel()

	ok := SideResult{Value: 1}
	tests := []struct {
		name       string
		results    []CaseResult
		verbose    bool
		wantCode   int
		wantStatus string
	}{
		{
			name: "all references hold",
			results: []CaseResult{
				{Name: "b", Reference: ok, Candidate: ok},
				{Name: "a", Reference: ok, Candidate: SideResult{Err: errors.New("x")}},
			},
			wantCode:   apperrors.ExitSuccess,
			wantStatus: "1 naive counterparts diverged",
		},
		{
			name: "reference broke contract",
			results: []CaseResult{
				{Name: "fib", Reference: SideResult{Err: errors.New("wrong")}, Candidate: ok},
			},
			verbose:    true,
			wantCode:   apperrors.ExitErrorMismatch,
			wantStatus: "CRITICAL ERROR! Reference fib",
		},
		{
			name: "timeout",
			results: []CaseResult{
				{Name: "campaign", Reference: SideResult{Err: context.DeadlineExceeded}, Candidate: ok},
			},
			wantCode:   apperrors.ExitErrorTimeout,
			wantStatus: "Interrupted",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			var out bytes.Buffer
			p := &MockResultPresenter{}
			code := AnalyzeDifferentialResults(tc.results, p, tc.verbose, &out)
			if code != tc.wantCode {
				t.Errorf("exit code = %d, want %d", code, tc.wantCode)
			}
			if !strings.Contains(out.String(), tc.wantStatus) {
				t.Errorf("output %q missing %q", out.String(), tc.wantStatus)
			}
			if p.tableRows != len(tc.results) {
				t.Errorf("table rows = %d, want %d", p.tableRows, len(tc.results))
			}
			if p.divergences != tc.verbose {
				t.Errorf("divergences presented = %v, want %v", p.divergences, tc.verbose)
			}
			for i := 1; i < len(tc.results); i++ {
				if tc.results[i-1].Name > tc.results[i].Name {
					t.Errorf("results not sorted by name: %q before %q", tc.results[i-1].Name, tc.results[i].Name)
				}
			}
		})
	}
}
