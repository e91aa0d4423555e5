package orchestration

import (
	"time"

	"github.com/agbru/refalgo/internal/format"
)

// ProgressUpdate reports that case CaseIndex has advanced to Value (0.0 to
// 1.0). Each side completing adds one half.
type ProgressUpdate struct {
	CaseIndex int
	Value     float64
}

// ProgressAggregator folds per-case updates into an overall progress value.
type ProgressAggregator struct {
	state    *format.ProgressWithETA
	numCases int
}

// NewProgressAggregator creates an aggregator for numCases cases.
// Returns nil if numCases <= 0.
func NewProgressAggregator(numCases int) *ProgressAggregator {
	if numCases <= 0 {
		return nil
	}
	return &ProgressAggregator{
		state:    format.NewProgressWithETA(numCases),
		numCases: numCases,
	}
}

// AggregatedProgress is the result of folding one update.
type AggregatedProgress struct {
	CaseIndex       int
	Value           float64
	AverageProgress float64
	ETA             time.Duration
}

// Update folds a single progress update.
func (a *ProgressAggregator) Update(update ProgressUpdate) AggregatedProgress {
	avg, eta := a.state.UpdateWithETA(update.CaseIndex, update.Value)
	return AggregatedProgress{
		CaseIndex:       update.CaseIndex,
		Value:           update.Value,
		AverageProgress: avg,
		ETA:             eta,
	}
}

// CalculateAverage returns the current average progress without updating.
func (a *ProgressAggregator) CalculateAverage() float64 {
	return a.state.CalculateAverage()
}

// GetETA returns the current ETA estimate without updating.
func (a *ProgressAggregator) GetETA() time.Duration {
	return a.state.GetETA()
}

// NumCases returns the number of cases being tracked.
func (a *ProgressAggregator) NumCases() int {
	return a.numCases
}

// DrainChannel reads all updates from the channel without processing.
func DrainChannel(progressChan <-chan ProgressUpdate) {
	for range progressChan {
	}
}
