package cli

import (
	"fmt"
	"io"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sys/cpu"

	"github.com/agbru/refalgo/internal/config"
	"github.com/agbru/refalgo/internal/format"
	"github.com/agbru/refalgo/internal/metrics"
	"github.com/agbru/refalgo/internal/sysmon"
	"github.com/agbru/refalgo/internal/ui"
)

// CPUFeatures lists the instruction-set extensions relevant to the atomic
// counter and hashing paths that the running CPU reports.
func CPUFeatures() []string {
	var feats []string
	add := func(ok bool, name string) {
		if ok {
			feats = append(feats, name)
		}
	}
	add(cpu.X86.HasAVX2, "avx2")
	add(cpu.X86.HasBMI2, "bmi2")
	add(cpu.X86.HasPOPCNT, "popcnt")
	add(cpu.X86.HasSSE42, "sse4.2")
	add(cpu.ARM64.HasATOMICS, "lse-atomics")
	add(cpu.ARM64.HasASIMD, "asimd")
	return feats
}

// PrintExecutionConfig displays the configuration and host of the run.
func PrintExecutionConfig(cfg config.AppConfig, host sysmon.Host, load sysmon.Stats, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Mode %s%s%s with a timeout of %s%s%s.\n",
		ui.ColorMagenta(), cfg.Mode, ui.ColorReset(), ui.ColorYellow(), cfg.Timeout, ui.ColorReset())

	cpuDesc := fmt.Sprintf("%d logical processors", host.LogicalCores)
	if host.CPUModel != "" {
		cpuDesc = fmt.Sprintf("%s, %s", strings.TrimSpace(host.CPUModel), cpuDesc)
	}
	fmt.Fprintf(out, "Environment: %s%s%s, Go %s%s%s.\n",
		ui.ColorCyan(), cpuDesc, ui.ColorReset(), ui.ColorCyan(), runtime.Version(), ui.ColorReset())
	if host.TotalMemory > 0 {
		fmt.Fprintf(out, "Memory: %s total, load CPU %.0f%% / memory %.0f%%.\n",
			format.FormatBytes(host.TotalMemory), load.CPUPercent, load.MemPercent)
	}
	if feats := CPUFeatures(); len(feats) > 0 {
		fmt.Fprintf(out, "CPU features: %s.\n", strings.Join(feats, ", "))
	}
}

// PrintExecutionMode describes what the selected mode is about to do.
func PrintExecutionMode(cfg config.AppConfig, out io.Writer) {
	var desc string
	switch cfg.Mode {
	case config.ModeBench:
		desc = fmt.Sprintf("Benchmark of sum_even(range %d), fib(%d) and dedup(%d pairs) over %d rounds",
			cfg.RangeSize, cfg.FibN, cfg.DedupPairs, cfg.Rounds)
	case config.ModeDiff:
		desc = "Differential run of every reference operation against its naive counterpart"
	case config.ModeCampaign:
		desc = fmt.Sprintf("%d counter campaign(s) of %d workers × %d increments", cfg.Trials, cfg.Workers, cfg.Increments)
	case config.ModeCalibrate:
		desc = fmt.Sprintf("Worker sweep up to %d workers", cfg.Workers)
	default:
		desc = cfg.Mode
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", desc)
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}

// CampaignTrial is one joined counter campaign.
type CampaignTrial struct {
	Trial    int           `json:"trial"`
	Value    uint64        `json:"value"`
	Expected uint64        `json:"expected"`
	Duration time.Duration `json:"duration_ns"`
}

// OK reports whether the joined value equals the expected product.
func (t CampaignTrial) OK() bool { return t.Value == t.Expected }

// DisplayCampaign renders one row per trial and a verdict line.
func DisplayCampaign(trials []CampaignTrial, out io.Writer) {
	fmt.Fprintf(out, "\n--- Campaign Summary ---\n")
	rows := make([][]string, 0, len(trials))
	outcomes := make([]string, 0, len(trials))
	failed := 0
	for _, t := range trials {
		status := metrics.OutcomeMatch
		if !t.OK() {
			status = metrics.OutcomeFailed
			failed++
		}
		outcomes = append(outcomes, status)
		rows = append(rows, []string{
			fmt.Sprintf("%d", t.Trial),
			fmt.Sprintf("%d", t.Value),
			fmt.Sprintf("%d", t.Expected),
			format.FormatExecutionDuration(t.Duration),
			status,
		})
	}
	fmt.Fprintln(out, newTable([]string{"Trial", "Value", "Expected", "Duration", "Status"}, rows, 4, outcomes).Render())

	if failed > 0 {
		fmt.Fprintf(out, "%s%d of %d campaigns lost increments.%s\n", ui.ColorRed(), failed, len(trials), ui.ColorReset())
		return
	}
	fmt.Fprintf(out, "%sAll %d campaigns joined at workers × increments.%s\n", ui.ColorGreen(), len(trials), ui.ColorReset())
}
