package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/agbru/refalgo/internal/bench"
	"github.com/agbru/refalgo/internal/calibration"
	"github.com/agbru/refalgo/internal/cli"
	"github.com/agbru/refalgo/internal/counter"
	apperrors "github.com/agbru/refalgo/internal/errors"
	"github.com/agbru/refalgo/internal/logging"
	"github.com/agbru/refalgo/internal/metrics"
	"github.com/agbru/refalgo/internal/orchestration"
)

// runBench times the reference suite over the configured rounds.
func (a *Application) runBench(ctx context.Context, out io.Writer, rec *metrics.Recorder, report *cli.Report) int {
	gcMode, ok := bench.ParseGCMode(a.Config.GCMode)
	if !ok {
		return apperrors.HandleRunError(apperrors.NewConfigError("unknown gc mode %q", a.Config.GCMode), a.ErrWriter)
	}

	rep, err := bench.Run(ctx, bench.DefaultSuite(a.inputs()), a.Config.Rounds,
		bench.WithRecorder(rec),
		bench.WithLogger(a.Logger),
		bench.WithGCMode(gcMode),
		bench.WithSampleHook(func(smp bench.Sample) {
			a.Logger.Debug("sample",
				logging.Int("round", smp.Round),
				logging.String("operation", smp.Operation),
				logging.Duration("duration", smp.Duration))
		}),
	)
	report.Bench = &rep

	if a.Config.Quiet {
		cli.DisplayQuietBench(rep, out)
	} else {
		cli.DisplayBenchReport(rep, a.Config.Verbose, out)
	}
	if err != nil {
		return apperrors.HandleRunError(err, out)
	}
	return apperrors.ExitSuccess
}

// runDiff runs every reference operation against its naive counterpart.
func (a *Application) runDiff(ctx context.Context, out io.Writer, rec *metrics.Recorder, report *cli.Report) int {
	cases := orchestration.DefaultCases(a.inputs())

	var reporter orchestration.ProgressReporter = cli.CLIProgressReporter{}
	progressOut, presentOut := out, out
	if a.Config.Quiet {
		reporter = orchestration.NullProgressReporter{}
		progressOut, presentOut = io.Discard, io.Discard
	}

	results := orchestration.ExecuteCases(ctx, cases, reporter, progressOut)
	code := orchestration.AnalyzeDifferentialResults(results, cli.CLIResultPresenter{}, a.Config.Verbose, presentOut)

	for _, r := range results {
		outcome := r.Outcome()
		rec.RecordCase(r.Name, outcome)
		rec.ObserveOperation(r.Name, orchestration.SideReference, r.Reference.Duration)
		rec.ObserveOperation(r.Name, orchestration.SideCandidate, r.Candidate.Duration)
		a.Logger.Debug("case finished", logging.String("case", r.Name), logging.String("outcome", outcome))
		if a.Config.Quiet {
			fmt.Fprintf(out, "%s %s\n", r.Name, outcome)
		}
	}
	report.Cases = cli.NewCaseReports(results)
	return code
}

// runCampaign runs the configured number of counter campaigns back to back
// and checks each joined value against workers × increments.
func (a *Application) runCampaign(ctx context.Context, out io.Writer, rec *metrics.Recorder, report *cli.Report) int {
	workers, increments := a.Config.Workers, a.Config.Increments
	want := counter.Expected(workers, increments)

	trials := make([]cli.CampaignTrial, 0, a.Config.Trials)
	var runErr error
	for i := 1; i <= a.Config.Trials; i++ {
		if err := ctx.Err(); err != nil {
			runErr = fmt.Errorf("campaign interrupted after %d trials: %w", len(trials), err)
			break
		}
		start := time.Now()
		v := counter.RunCampaign(workers, increments)
		t := cli.CampaignTrial{Trial: i, Value: v, Expected: want, Duration: time.Since(start)}
		trials = append(trials, t)

		rec.RecordCampaign(want, v)
		rec.ObserveOperation(orchestration.CaseCampaign, orchestration.SideReference, t.Duration)
		a.Logger.Debug("campaign joined",
			logging.Int("trial", i),
			logging.Uint64("value", v),
			logging.Duration("duration", t.Duration))
	}
	report.Campaigns = trials

	if a.Config.Quiet {
		for _, t := range trials {
			fmt.Fprintln(out, t.Value)
		}
	} else {
		cli.DisplayCampaign(trials, out)
	}

	if runErr != nil {
		return apperrors.HandleRunError(runErr, out)
	}
	for _, t := range trials {
		if !t.OK() {
			return apperrors.ExitErrorMismatch
		}
	}
	return apperrors.ExitSuccess
}

// runCalibrate sweeps campaign worker counts up to the configured workers.
func (a *Application) runCalibrate(ctx context.Context, out io.Writer, rec *metrics.Recorder, report *cli.Report) int {
	results, code := calibration.RunCalibration(ctx, out, a.Config.Workers, a.Config.Increments, rec)
	report.Calibration = cli.NewCalibrationReports(results)
	return code
}
