package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	apperrors "github.com/agbru/refalgo/internal/errors"
	"github.com/agbru/refalgo/internal/fibonacci"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment variable override.
const EnvPrefix = "REFALGO_"

// Run modes.
const (
	ModeBench     = "bench"
	ModeDiff      = "diff"
	ModeCampaign  = "campaign"
	ModeCalibrate = "calibrate"
)

// Modes lists the accepted values for --mode.
var Modes = []string{ModeBench, ModeDiff, ModeCampaign, ModeCalibrate}

// MaxDiffFibN bounds the Fibonacci index in diff mode, where the naive
// recursive evaluator runs alongside the reference one.
const MaxDiffFibN = 40

var logLevels = []string{"debug", "info", "warn", "error"}

// GCModes lists the accepted values for --gc.
var GCModes = []string{"default", "disabled"}

// AppConfig aggregates the configuration of a refalgo run.
type AppConfig struct {
	// Mode selects what the harness does: bench, diff, campaign or calibrate.
	Mode string `yaml:"mode"`
	// ConfigFile is the optional YAML file read before env and flags.
	ConfigFile string `yaml:"-"`

	// Rounds is the number of benchmark rounds.
	Rounds int `yaml:"rounds"`
	// RangeSize is the length of the [0, n) range fed to SumEven.
	RangeSize int `yaml:"range_size"`
	// FibN is the Fibonacci index evaluated by the harness.
	FibN uint64 `yaml:"fib_n"`
	// DedupPairs is the number of distinct values, each present twice, fed to Dedup.
	DedupPairs int `yaml:"dedup_pairs"`

	// Workers is the number of goroutines in a counter campaign.
	Workers int `yaml:"workers"`
	// Increments is the number of increments each worker performs.
	Increments int `yaml:"increments"`
	// Trials is how many campaigns campaign mode runs back to back.
	Trials int `yaml:"trials"`
	// GCMode is "disabled" to switch the collector off while a bench suite runs.
	GCMode string `yaml:"gc"`

	Timeout     time.Duration `yaml:"timeout"`
	OutputFile  string        `yaml:"output"`
	MetricsFile string        `yaml:"metrics"`
	Quiet       bool          `yaml:"quiet"`
	Verbose     bool          `yaml:"verbose"`
	NoColor     bool          `yaml:"no_color"`
	LogLevel    string        `yaml:"log_level"`
}

// Defaults returns the built-in configuration. Workers is left at zero and
// resolved from the host by ApplyAdaptiveDefaults.
func Defaults() AppConfig {
	return AppConfig{
		Mode:       ModeBench,
		Rounds:     3,
		RangeSize:  50_000,
		FibN:       fibonacci.BenchmarkN,
		DedupPairs: 5_000,
		Increments: 100_000,
		Trials:     1,
		GCMode:     "default",
		Timeout:    5 * time.Minute,
		LogLevel:   "info",
	}
}

// ParseConfig parses command-line arguments and applies the YAML and
// environment layers. Usage and parse errors are written to errWriter.
// flag.ErrHelp is returned unchanged when -h or --help is given.
func ParseConfig(programName string, args []string, errWriter io.Writer) (AppConfig, error) {
	probe := Defaults()
	fs := newFlagSet(programName, &probe, errWriter)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return AppConfig{}, err
		}
		return AppConfig{}, apperrors.NewConfigError("parsing arguments: %v", err)
	}
	if fs.NArg() > 0 {
		err := apperrors.NewConfigError("unexpected arguments: %s", strings.Join(fs.Args(), " "))
		fmt.Fprintln(errWriter, err)
		return AppConfig{}, err
	}

	cfg := Defaults()
	if probe.ConfigFile != "" {
		if err := LoadFile(probe.ConfigFile, &cfg); err != nil {
			fmt.Fprintln(errWriter, err)
			return AppConfig{}, err
		}
	}
	applyEnvOverrides(&cfg, fs)

	// Flags are bound a second time with the layered values as defaults, so
	// only the flags given explicitly override them.
	final := newFlagSet(programName, &cfg, io.Discard)
	if err := final.Parse(args); err != nil {
		return AppConfig{}, apperrors.NewConfigError("parsing arguments: %v", err)
	}

	cfg = ApplyAdaptiveDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(errWriter, err)
		return AppConfig{}, err
	}
	return cfg, nil
}

func newFlagSet(programName string, c *AppConfig, errWriter io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)

	fs.StringVar(&c.Mode, "mode", c.Mode, "Run mode: "+strings.Join(Modes, ", "))
	fs.StringVar(&c.ConfigFile, "config", c.ConfigFile, "Path to a YAML configuration file")
	fs.IntVar(&c.Rounds, "rounds", c.Rounds, "Number of benchmark rounds")
	fs.IntVar(&c.RangeSize, "range", c.RangeSize, "Length of the integer range used by sum_even")
	fs.Uint64Var(&c.FibN, "n", c.FibN, "Fibonacci index to evaluate")
	fs.IntVar(&c.DedupPairs, "dedup-pairs", c.DedupPairs, "Distinct values (each duplicated) fed to dedup")
	fs.IntVar(&c.Workers, "workers", c.Workers, "Counter campaign workers (0 = number of CPUs)")
	fs.IntVar(&c.Increments, "increments", c.Increments, "Increments per campaign worker")
	fs.IntVar(&c.Trials, "trials", c.Trials, "Campaigns to run in campaign mode")
	fs.StringVar(&c.GCMode, "gc", c.GCMode, "Garbage collector during bench: "+strings.Join(GCModes, ", "))
	fs.DurationVar(&c.Timeout, "timeout", c.Timeout, "Maximum run time (e.g. 30s, 5m)")
	fs.StringVar(&c.OutputFile, "output", c.OutputFile, "Write the JSON report to this file")
	fs.StringVar(&c.OutputFile, "o", c.OutputFile, "Shorthand for --output")
	fs.StringVar(&c.MetricsFile, "metrics", c.MetricsFile, "Write Prometheus text metrics to this file")
	fs.BoolVar(&c.Quiet, "quiet", c.Quiet, "Print only the essential result lines")
	fs.BoolVar(&c.Quiet, "q", c.Quiet, "Shorthand for --quiet")
	fs.BoolVar(&c.Verbose, "verbose", c.Verbose, "Print every sample and divergence")
	fs.BoolVar(&c.Verbose, "v", c.Verbose, "Shorthand for --verbose")
	fs.BoolVar(&c.NoColor, "no-color", c.NoColor, "Disable colored output")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "Log level: "+strings.Join(logLevels, ", "))
	return fs
}

// LoadFile overlays the keys present in the YAML file at path onto cfg.
// Keys absent from the file leave cfg untouched.
func LoadFile(path string, cfg *AppConfig) error {
	f, err := os.Open(path)
	if err != nil {
		return apperrors.NewConfigError("reading config file: %v", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return apperrors.NewConfigError("decoding config file %s: %v", path, err)
	}
	return nil
}

// Validate checks the configuration for semantic errors.
func (c AppConfig) Validate() error {
	if !slices.Contains(Modes, c.Mode) {
		return apperrors.NewConfigError("unknown mode %q (want one of %s)", c.Mode, strings.Join(Modes, ", "))
	}
	if c.Rounds < 1 {
		return apperrors.NewConfigError("rounds must be at least 1, got %d", c.Rounds)
	}
	if c.RangeSize < 0 {
		return apperrors.NewConfigError("range must not be negative, got %d", c.RangeSize)
	}
	if c.DedupPairs < 0 {
		return apperrors.NewConfigError("dedup-pairs must not be negative, got %d", c.DedupPairs)
	}
	if c.Mode == ModeDiff && c.FibN > MaxDiffFibN {
		return apperrors.NewConfigError("n must be at most %d in diff mode, got %d", MaxDiffFibN, c.FibN)
	}
	if c.Workers < 1 {
		return apperrors.NewConfigError("workers must be at least 1, got %d", c.Workers)
	}
	if c.Increments < 0 {
		return apperrors.NewConfigError("increments must not be negative, got %d", c.Increments)
	}
	if c.Trials < 1 {
		return apperrors.NewConfigError("trials must be at least 1, got %d", c.Trials)
	}
	if !slices.Contains(GCModes, c.GCMode) {
		return apperrors.NewConfigError("unknown gc mode %q (want one of %s)", c.GCMode, strings.Join(GCModes, ", "))
	}
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout must be positive, got %s", c.Timeout)
	}
	if !slices.Contains(logLevels, strings.ToLower(c.LogLevel)) {
		return apperrors.NewConfigError("unknown log level %q", c.LogLevel)
	}
	return nil
}
