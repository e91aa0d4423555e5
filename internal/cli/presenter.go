package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/agbru/refalgo/internal/bench"
	"github.com/agbru/refalgo/internal/format"
	"github.com/agbru/refalgo/internal/metrics"
	"github.com/agbru/refalgo/internal/orchestration"
	"github.com/agbru/refalgo/internal/ui"
)

// detailLimit caps the error text shown in a table cell.
const detailLimit = 60

// CLIProgressReporter implements orchestration.ProgressReporter with a
// spinner and progress bar.
type CLIProgressReporter struct{}

// DisplayProgress delegates to DisplayProgress.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, numCases int, out io.Writer) {
	DisplayProgress(wg, progressChan, numCases, out)
}

// CLIResultPresenter implements orchestration.ResultPresenter with
// lipgloss tables.
type CLIResultPresenter struct{}

// Verify interface compliance.
var (
	_ orchestration.ProgressReporter = CLIProgressReporter{}
	_ orchestration.ResultPresenter  = CLIResultPresenter{}
)

// newTable returns a table styled from the active theme. outcomeCol, if
// non-negative, is colored per row by outcomes.
func newTable(headers []string, rows [][]string, outcomeCol int, outcomes []string) *table.Table {
	styles := ui.CurrentTableStyles()
	theme := ui.GetCurrentTheme()
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styles.Border).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.Header
			}
			if col == outcomeCol && row >= 0 && row < len(outcomes) {
				switch outcomes[row] {
				case metrics.OutcomeFailed:
					return styles.Cell.Foreground(lipgloss.Color(ansi256(theme.Error)))
				case metrics.OutcomeDiverged:
					return styles.Cell.Foreground(lipgloss.Color(ansi256(theme.Warning)))
				}
			}
			return styles.Cell
		})
}

// ansi256 extracts the 256-color index from a "\033[38;5;Nm" escape so
// the same palette drives lipgloss styles. Empty for the no-color theme.
func ansi256(code string) string {
	const prefix = "\033[38;5;"
	if !strings.HasPrefix(code, prefix) || !strings.HasSuffix(code, "m") {
		return ""
	}
	return strings.TrimSuffix(strings.TrimPrefix(code, prefix), "m")
}

func sideCell(s orchestration.SideResult) string {
	if s.Err != nil {
		return "error"
	}
	if s.Duration == 0 {
		return "< 1µs"
	}
	return format.FormatExecutionDuration(s.Duration)
}

func caseDetail(r orchestration.CaseResult) string {
	var detail string
	switch {
	case r.Reference.Err != nil:
		detail = r.Reference.Err.Error()
	case r.Candidate.Err != nil:
		detail = r.Candidate.Err.Error()
	case r.Diff != "":
		detail = "values differ"
	}
	if len(detail) > detailLimit {
		detail = detail[:detailLimit-3] + "..."
	}
	return detail
}

// PresentDifferentialTable renders one row per case: side timings,
// outcome and a short detail.
func (CLIResultPresenter) PresentDifferentialTable(results []orchestration.CaseResult, out io.Writer) {
	fmt.Fprintf(out, "\n--- Differential Summary ---\n")
	rows := make([][]string, 0, len(results))
	outcomes := make([]string, 0, len(results))
	for _, r := range results {
		outcome := r.Outcome()
		outcomes = append(outcomes, outcome)
		rows = append(rows, []string{r.Name, sideCell(r.Reference), sideCell(r.Candidate), outcome, caseDetail(r)})
	}
	fmt.Fprintln(out, newTable([]string{"Case", "Reference", "Naive", "Outcome", "Detail"}, rows, 3, outcomes).Render())
}

// PresentDivergences prints the full diff or error of every case that
// did not match.
func (CLIResultPresenter) PresentDivergences(results []orchestration.CaseResult, out io.Writer) {
	for _, r := range results {
		if r.Outcome() == metrics.OutcomeMatch {
			continue
		}
		fmt.Fprintf(out, "\n%s%s%s:\n", ui.ColorBold(), r.Name, ui.ColorReset())
		if r.Reference.Err != nil {
			fmt.Fprintf(out, "  %sreference: %v%s\n", ui.ColorRed(), r.Reference.Err, ui.ColorReset())
		}
		if r.Candidate.Err != nil {
			fmt.Fprintf(out, "  %snaive: %v%s\n", ui.ColorYellow(), r.Candidate.Err, ui.ColorReset())
		}
		if r.Diff != "" {
			fmt.Fprintf(out, "  (-reference +naive)\n")
			for _, line := range strings.Split(strings.TrimRight(r.Diff, "\n"), "\n") {
				fmt.Fprintf(out, "  %s\n", line)
			}
		}
	}
}

// DisplayBenchReport renders per-operation statistics, and every sample
// when verbose is set.
func DisplayBenchReport(report bench.Report, verbose bool, out io.Writer) {
	fmt.Fprintf(out, "\n--- Benchmark Summary (%d rounds) ---\n", report.Rounds)
	rows := make([][]string, 0, len(report.Stats))
	for _, st := range report.Stats {
		rows = append(rows, []string{
			st.Operation,
			fmt.Sprintf("%d", st.Samples),
			format.FormatExecutionDuration(st.Min),
			format.FormatExecutionDuration(st.Mean),
			format.FormatExecutionDuration(st.Max),
		})
	}
	fmt.Fprintln(out, newTable([]string{"Operation", "Samples", "Min", "Mean", "Max"}, rows, -1, nil).Render())

	if verbose {
		for _, s := range report.Samples {
			fmt.Fprintf(out, "  round %d  %-10s %s\n", s.Round, s.Operation, format.FormatExecutionDuration(s.Duration))
		}
	}
	DisplayMemoryDelta(report.MemoryDelta, out)
}

// DisplayQuietBench prints one "operation mean" line per stat.
func DisplayQuietBench(report bench.Report, out io.Writer) {
	for _, st := range report.Stats {
		fmt.Fprintf(out, "%s %s\n", st.Operation, format.FormatExecutionDuration(st.Mean))
	}
}

// DisplayMemoryDelta shows how the heap moved across a run.
func DisplayMemoryDelta(d metrics.MemoryDelta, out io.Writer) {
	fmt.Fprintf(out, "\nMemory: heap %s, allocated %s, %d GC cycles\n",
		format.FormatSignedBytes(d.HeapAlloc), format.FormatBytes(d.TotalAlloc), d.NumGC)
}
