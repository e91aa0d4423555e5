package orchestration

import (
	"io"
	"sync"
	"time"

	"github.com/agbru/refalgo/internal/metrics"
)

// Sides of a differential case.
const (
	SideReference = "reference"
	SideCandidate = "naive"
)

// SideResult is the outcome of running one side of a case.
type SideResult struct {
	// Value is whatever the side returned. It is nil if an error occurred.
	Value any
	// Duration is the wall time of the call.
	Duration time.Duration
	// Err holds a returned error, a recovered panic (apperrors.PanicError) or
	// a failed verification.
	Err error
}

// CaseResult pairs the two sides of a differential case.
type CaseResult struct {
	Name      string
	Reference SideResult
	Candidate SideResult
	// Diff is a go-cmp diff of reference and candidate values when both
	// succeeded and disagree. Empty otherwise.
	Diff string
}

// Outcome classifies the case: "failed" when the reference side failed,
// "diverged" when the candidate failed or disagrees, "match" otherwise.
func (r CaseResult) Outcome() string {
	switch {
	case r.Reference.Err != nil:
		return metrics.OutcomeFailed
	case r.Candidate.Err != nil || r.Diff != "":
		return metrics.OutcomeDiverged
	default:
		return metrics.OutcomeMatch
	}
}

// ProgressReporter displays case progress. DisplayProgress runs in its own
// goroutine until progressChan is closed and calls wg.Done on return.
type ProgressReporter interface {
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numCases int, out io.Writer)
}

// ProgressReporterFunc is a function adapter that implements ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numCases int, out io.Writer)

// DisplayProgress calls the underlying function.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numCases int, out io.Writer) {
	f(wg, progressChan, numCases, out)
}

// NullProgressReporter drains the progress channel without displaying
// anything. Used in quiet mode and tests.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	DrainChannel(progressChan)
}

// ResultPresenter renders differential results.
type ResultPresenter interface {
	// PresentDifferentialTable displays one row per case.
	PresentDifferentialTable(results []CaseResult, out io.Writer)

	// PresentDivergences prints the diff or error of every case that did
	// not match.
	PresentDivergences(results []CaseResult, out io.Writer)
}
