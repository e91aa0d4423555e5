package bench

import (
	"math"
	"runtime"
	"runtime/debug"

	"github.com/agbru/refalgo/internal/logging"
	"github.com/agbru/refalgo/internal/metrics"
)

// GCMode controls the garbage collector while a suite runs.
type GCMode string

const (
	// GCModeDefault leaves the collector untouched.
	GCModeDefault GCMode = "default"
	// GCModeDisabled turns the collector off for the timed section, with a
	// soft memory limit as a safety net.
	GCModeDisabled GCMode = "disabled"
)

// ParseGCMode validates a mode name. The empty string means default.
func ParseGCMode(s string) (GCMode, bool) {
	switch GCMode(s) {
	case "", GCModeDefault:
		return GCModeDefault, true
	case GCModeDisabled:
		return GCModeDisabled, true
	}
	return "", false
}

// gcController suspends the collector between begin and end.
type gcController struct {
	mode        GCMode
	origPercent int
	logger      logging.Logger
	start       metrics.MemorySnapshot
}

func newGCController(mode GCMode, logger logging.Logger) *gcController {
	return &gcController{mode: mode, logger: logger}
}

func (gc *gcController) begin() {
	if gc.mode != GCModeDisabled {
		return
	}
	gc.start = metrics.NewMemoryCollector().Snapshot()
	gc.origPercent = debug.SetGCPercent(-1)
	if limit := int64(gc.start.Sys) * 3; limit > 0 {
		debug.SetMemoryLimit(limit)
	}
	gc.logger.Debug("gc disabled", logging.Uint64("heap_alloc_bytes", gc.start.HeapAlloc))
}

func (gc *gcController) end() {
	if gc.mode != GCModeDisabled {
		return
	}
	snap := metrics.NewMemoryCollector().Snapshot()
	debug.SetGCPercent(gc.origPercent)
	debug.SetMemoryLimit(math.MaxInt64)
	runtime.GC()
	d := snap.Since(gc.start)
	gc.logger.Debug("gc re-enabled",
		logging.Uint64("total_alloc_bytes", d.TotalAlloc),
		logging.Int("gc_cycles", int(d.NumGC)))
}
