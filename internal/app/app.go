package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/agbru/refalgo/internal/cli"
	"github.com/agbru/refalgo/internal/config"
	apperrors "github.com/agbru/refalgo/internal/errors"
	"github.com/agbru/refalgo/internal/logging"
	"github.com/agbru/refalgo/internal/metrics"
	"github.com/agbru/refalgo/internal/sysmon"
	"github.com/agbru/refalgo/internal/ui"
	"github.com/agbru/refalgo/internal/workload"
)

// Application represents the refalgo application instance.
type Application struct {
	Config    config.AppConfig
	ErrWriter io.Writer
	Logger    logging.Logger
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithLogger sets the logger used for run diagnostics. By default a
// console logger writes to the error writer.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// New creates a new Application instance by parsing command-line arguments.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}

	programName := "refalgo"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}
	app.Config = cfg

	for _, opt := range opts {
		opt(app)
	}
	if app.Logger == nil {
		app.Logger = logging.NewConsoleLogger(errWriter, "refalgo", cfg.LogLevel)
	}
	return app, nil
}

// Run executes the configured mode and returns the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	zerolog.SetGlobalLevel(logging.ParseLevel(a.Config.LogLevel))
	ui.InitTheme(a.Config.NoColor)

	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	rec := metrics.NewRecorder()
	report := cli.Report{
		Tool:        "refalgo",
		Version:     Version,
		Mode:        a.Config.Mode,
		GeneratedAt: time.Now().UTC(),
		Host:        sysmon.Describe(),
		Load:        sysmon.Sample(),
	}

	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, report.Host, report.Load, out)
		cli.PrintExecutionMode(a.Config, out)
	}
	a.Logger.Debug("run started",
		logging.String("mode", a.Config.Mode),
		logging.Int("workers", a.Config.Workers),
		logging.Duration("timeout", a.Config.Timeout))

	start := time.Now()
	var code int
	switch a.Config.Mode {
	case config.ModeBench:
		code = a.runBench(ctx, out, rec, &report)
	case config.ModeDiff:
		code = a.runDiff(ctx, out, rec, &report)
	case config.ModeCampaign:
		code = a.runCampaign(ctx, out, rec, &report)
	case config.ModeCalibrate:
		code = a.runCalibrate(ctx, out, rec, &report)
	default:
		code = apperrors.HandleRunError(apperrors.NewConfigError("unknown mode %q", a.Config.Mode), a.ErrWriter)
	}
	report.ExitCode = code

	a.Logger.Info("run finished",
		logging.String("mode", a.Config.Mode),
		logging.Int("exit_code", code),
		logging.Duration("elapsed", time.Since(start)))

	if err := a.writeArtifacts(out, rec, report); err != nil {
		a.Logger.Error("writing run artifacts", err)
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		if code == apperrors.ExitSuccess {
			code = apperrors.ExitErrorGeneric
		}
	}
	return code
}

// inputs sizes the synthetic workloads from the configuration.
func (a *Application) inputs() workload.Inputs {
	return workload.Inputs{
		RangeSize:  a.Config.RangeSize,
		FibN:       a.Config.FibN,
		DedupPairs: a.Config.DedupPairs,
		Workers:    a.Config.Workers,
		Increments: a.Config.Increments,
	}
}

// writeArtifacts writes the --metrics and --output files, when requested.
func (a *Application) writeArtifacts(out io.Writer, rec *metrics.Recorder, report cli.Report) error {
	if path := a.Config.MetricsFile; path != "" {
		rec.SetMemory(metrics.NewMemoryCollector().Snapshot())
		if err := rec.WriteFile(path); err != nil {
			return apperrors.WrapError(err, "writing metrics")
		}
		if !a.Config.Quiet {
			cli.DisplaySaved(out, "Metrics", path)
		}
	}
	if path := a.Config.OutputFile; path != "" {
		if err := cli.WriteReportToFile(report, path); err != nil {
			return apperrors.WrapError(err, "writing report")
		}
		if !a.Config.Quiet {
			cli.DisplaySaved(out, "Report", path)
		}
	}
	return nil
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
