// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     Examples: [DisplayProgress], [DisplayBenchReport], [DisplayCampaign].
//
//   - Print* functions write the run header.
//     Examples: [PrintExecutionConfig], [PrintExecutionMode].
//
//   - Write* functions write data to files on the filesystem.
//     Examples: [WriteReportToFile].

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/agbru/refalgo/internal/bench"
	"github.com/agbru/refalgo/internal/calibration"
	"github.com/agbru/refalgo/internal/orchestration"
	"github.com/agbru/refalgo/internal/sysmon"
	"github.com/agbru/refalgo/internal/ui"
)

// SideReport is the JSON form of orchestration.SideResult.
type SideReport struct {
	Value    any           `json:"value,omitempty"`
	Duration time.Duration `json:"duration_ns"`
	Error    string        `json:"error,omitempty"`
}

// CaseReport is the JSON form of orchestration.CaseResult.
type CaseReport struct {
	Name      string     `json:"name"`
	Outcome   string     `json:"outcome"`
	Reference SideReport `json:"reference"`
	Naive     SideReport `json:"naive"`
	Diff      string     `json:"diff,omitempty"`
}

// CalibrationReport is the JSON form of calibration.Result.
type CalibrationReport struct {
	calibration.Result
	Error string `json:"error,omitempty"`
}

// Report is the machine-readable outcome of a run, written by --output.
type Report struct {
	Tool        string              `json:"tool"`
	Version     string              `json:"version"`
	Mode        string              `json:"mode"`
	GeneratedAt time.Time           `json:"generated_at"`
	Host        sysmon.Host         `json:"host"`
	Load        sysmon.Stats        `json:"load"`
	ExitCode    int                 `json:"exit_code"`
	Bench       *bench.Report       `json:"bench,omitempty"`
	Cases       []CaseReport        `json:"cases,omitempty"`
	Campaigns   []CampaignTrial     `json:"campaigns,omitempty"`
	Calibration []CalibrationReport `json:"calibration,omitempty"`
}

// sliceValueLimit caps how many elements of a slice value are kept in a
// report; larger values are replaced by a summary.
const sliceValueLimit = 32

func reportValue(v any) any {
	if s, ok := v.([]uint64); ok && len(s) > sliceValueLimit {
		return fmt.Sprintf("[%d values]", len(s))
	}
	return v
}

func sideReport(s orchestration.SideResult) SideReport {
	r := SideReport{Value: reportValue(s.Value), Duration: s.Duration}
	if s.Err != nil {
		r.Error = s.Err.Error()
	}
	return r
}

// NewCaseReports converts differential results for JSON output.
func NewCaseReports(results []orchestration.CaseResult) []CaseReport {
	out := make([]CaseReport, 0, len(results))
	for _, r := range results {
		out = append(out, CaseReport{
			Name:      r.Name,
			Outcome:   r.Outcome(),
			Reference: sideReport(r.Reference),
			Naive:     sideReport(r.Candidate),
			Diff:      r.Diff,
		})
	}
	return out
}

// NewCalibrationReports converts calibration results for JSON output.
func NewCalibrationReports(results []calibration.Result) []CalibrationReport {
	out := make([]CalibrationReport, 0, len(results))
	for _, r := range results {
		cr := CalibrationReport{Result: r}
		if r.Err != nil {
			cr.Error = r.Err.Error()
		}
		out = append(out, cr)
	}
	return out
}

// WriteReportToFile writes report as indented JSON to path, creating the
// parent directory if needed. An empty path writes nothing.
func WriteReportToFile(report Report, path string) (err error) {
	if path == "" {
		return nil
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close output file: %w", cerr)
		}
	}()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}

// DisplaySaved confirms that a file was written.
func DisplaySaved(out io.Writer, what, path string) {
	fmt.Fprintf(out, "\n%s✓ %s saved to: %s%s%s\n", ui.ColorGreen(), what, ui.ColorCyan(), path, ui.ColorReset())
}
