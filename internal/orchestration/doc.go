// Package orchestration runs reference operations side by side with their
// naive counterparts and aggregates the outcomes. It decouples execution
// from presentation via the ProgressReporter and ResultPresenter interfaces.
package orchestration
