package calibration

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/agbru/refalgo/internal/format"
	"github.com/agbru/refalgo/internal/ui"
)

// printCalibrationResults formats and prints the calibration results table.
func printCalibrationResults(out io.Writer, results []Result, bestWorkers int) {
	fmt.Fprintf(out, "\n--- Calibration Summary ---\n")
	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "  %sWorkers%s\t│ %sExecution Time%s\t│ %sIncrements/s%s\n",
		ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset())
	fmt.Fprintf(tw, "  %s\t┼%s\t┼%s\n", strings.Repeat("─", 8), strings.Repeat("─", 16), strings.Repeat("─", 14))
	for _, res := range results {
		durationStr := fmt.Sprintf("%sN/A%s", ui.ColorRed(), ui.ColorReset())
		rateStr := durationStr
		if res.Err == nil {
			durationStr = format.FormatExecutionDuration(res.Duration)
			rateStr = fmt.Sprintf("%.3g", res.Throughput())
		}
		highlight := ""
		if res.Workers == bestWorkers && res.Err == nil {
			highlight = fmt.Sprintf(" %s(Optimal)%s", ui.ColorGreen(), ui.ColorReset())
		}
		fmt.Fprintf(tw, "  %s%d%s\t│ %s%s%s\t│ %s%s\n",
			ui.ColorCyan(), res.Workers, ui.ColorReset(),
			ui.ColorYellow(), durationStr, ui.ColorReset(),
			rateStr, highlight)
	}
	tw.Flush()
}

// printCalibrationOutput prints the recommended setting.
func printCalibrationOutput(out io.Writer, bestWorkers int) {
	fmt.Fprintf(out, "\n%sRecommended%s: --workers %s%d%s (or REFALGO_WORKERS=%d)\n",
		ui.ColorGreen(), ui.ColorReset(),
		ui.ColorYellow(), bestWorkers, ui.ColorReset(), bestWorkers)
}
