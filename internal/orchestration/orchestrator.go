package orchestration

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/refalgo/internal/errors"
)

const tracerName = "github.com/agbru/refalgo/internal/orchestration"

// ProgressBufferMultiplier sizes the progress channel per case so sides do
// not block on a slow display.
const ProgressBufferMultiplier = 4

// Func is one side of a differential case.
type Func func(ctx context.Context) (any, error)

// Case is a named reference operation paired with a naive candidate.
type Case struct {
	Name      string
	Reference Func
	Candidate Func
	// Verify, if set, checks the reference value against its contract. A
	// failure is recorded as the reference side's error.
	Verify func(value any) error
}

var diffOptions = cmp.Options{
	cmpopts.EquateNaNs(),
	cmpopts.EquateEmpty(),
}

// ExecuteCases runs every case concurrently, one goroutine per case. Within
// a case the reference side runs first, then the candidate. Panics on
// either side are recovered into apperrors.PanicError. Results keep the
// order of cases.
func ExecuteCases(ctx context.Context, cases []Case, progressReporter ProgressReporter, out io.Writer) []CaseResult {
	results := make([]CaseResult, len(cases))
	progressChan := make(chan ProgressUpdate, len(cases)*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go progressReporter.DisplayProgress(&displayWg, progressChan, len(cases), out)

	var g errgroup.Group
	for i, c := range cases {
		g.Go(func() error {
			results[i] = runCase(ctx, c, func(v float64) {
				progressChan <- ProgressUpdate{CaseIndex: i, Value: v}
			})
			return nil
		})
	}

	_ = g.Wait()
	close(progressChan)
	displayWg.Wait()

	return results
}

func runCase(ctx context.Context, c Case, report func(float64)) CaseResult {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "case "+c.Name)
	defer span.End()

	res := CaseResult{Name: c.Name}
	res.Reference = runSide(ctx, c.Name, SideReference, c.Reference)
	if res.Reference.Err == nil && c.Verify != nil {
		if err := c.Verify(res.Reference.Value); err != nil {
			res.Reference.Err = apperrors.OperationError{Operation: "verify " + c.Name, Cause: err}
		}
	}
	report(0.5)
	res.Candidate = runSide(ctx, c.Name, SideCandidate, c.Candidate)
	report(1)

	if res.Reference.Err == nil && res.Candidate.Err == nil {
		res.Diff = cmp.Diff(res.Reference.Value, res.Candidate.Value, diffOptions)
	}
	span.SetAttributes(attribute.String("refalgo.outcome", res.Outcome()))
	if res.Reference.Err != nil {
		span.SetStatus(codes.Error, res.Reference.Err.Error())
	}
	return res
}

func runSide(ctx context.Context, name, side string, fn Func) (res SideResult) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, name+"/"+side,
		trace.WithAttributes(attribute.String("refalgo.case", name), attribute.String("refalgo.side", side)))
	defer span.End()

	if err := ctx.Err(); err != nil {
		return SideResult{Err: err}
	}
	if fn == nil {
		return SideResult{Err: fmt.Errorf("%s: no %s implementation", name, side)}
	}

	start := time.Now()
	defer func() {
		res.Duration = time.Since(start)
		if r := recover(); r != nil {
			res = SideResult{
				Duration: time.Since(start),
				Err:      apperrors.PanicError{Operation: name + " (" + side + ")", Value: r},
			}
		}
		if res.Err != nil {
			span.RecordError(res.Err)
			span.SetStatus(codes.Error, res.Err.Error())
		}
	}()

	value, err := fn(ctx)
	if err != nil {
		return SideResult{Err: err}
	}
	return SideResult{Value: value}
}

// AnalyzeDifferentialResults sorts results by name, presents them, and
// returns the exit code. Every reference side must succeed; candidate
// divergence is expected and only reported.
func AnalyzeDifferentialResults(results []CaseResult, presenter ResultPresenter, verbose bool, out io.Writer) int {
	sort.SliceStable(results, func(i, j int) bool { return results[i].Name < results[j].Name })

	presenter.PresentDifferentialTable(results, out)
	if verbose {
		presenter.PresentDivergences(results, out)
	}

	var firstFailure *CaseResult
	diverged := 0
	for i := range results {
		switch {
		case results[i].Reference.Err != nil:
			if firstFailure == nil {
				firstFailure = &results[i]
			}
		case results[i].Candidate.Err != nil || results[i].Diff != "":
			diverged++
		}
	}

	if firstFailure != nil {
		err := firstFailure.Reference.Err
		if apperrors.IsContextError(err) {
			fmt.Fprintf(out, "\nGlobal Status: Interrupted while running %s: %v\n", firstFailure.Name, err)
			return apperrors.ExitCode(err)
		}
		fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! Reference %s broke its contract: %v\n", firstFailure.Name, err)
		return apperrors.ExitErrorMismatch
	}

	fmt.Fprintf(out, "\nGlobal Status: Success. %d reference operations honored their contracts; %d naive counterparts diverged.\n",
		len(results), diverged)
	return apperrors.ExitSuccess
}
