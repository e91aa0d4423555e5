package metrics

import "runtime"

// MemorySnapshot holds a point-in-time memory reading.
type MemorySnapshot struct {
	HeapAlloc    uint64 `json:"heap_alloc"`
	HeapObjects  uint64 `json:"heap_objects"`
	TotalAlloc   uint64 `json:"total_alloc"`
	Sys          uint64 `json:"sys"`
	NumGC        uint32 `json:"num_gc"`
	PauseTotalNs uint64 `json:"pause_total_ns"`
}

// MemoryDelta is the difference between two snapshots. HeapAlloc may be
// negative when a collection ran in between.
type MemoryDelta struct {
	HeapAlloc  int64  `json:"heap_alloc"`
	TotalAlloc uint64 `json:"total_alloc"`
	NumGC      uint32 `json:"num_gc"`
}

// MemoryCollector reads runtime memory statistics.
type MemoryCollector struct{}

// NewMemoryCollector creates a new memory collector.
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{}
}

// Snapshot reads current memory statistics.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:    m.HeapAlloc,
		HeapObjects:  m.HeapObjects,
		TotalAlloc:   m.TotalAlloc,
		Sys:          m.Sys,
		NumGC:        m.NumGC,
		PauseTotalNs: m.PauseTotalNs,
	}
}

// SettledSnapshot forces a collection before reading, so HeapAlloc reflects
// live objects only.
func (mc *MemoryCollector) SettledSnapshot() MemorySnapshot {
	runtime.GC()
	return mc.Snapshot()
}

// Since returns the change from before to s.
func (s MemorySnapshot) Since(before MemorySnapshot) MemoryDelta {
	return MemoryDelta{
		HeapAlloc:  int64(s.HeapAlloc) - int64(before.HeapAlloc),
		TotalAlloc: s.TotalAlloc - before.TotalAlloc,
		NumGC:      s.NumGC - before.NumGC,
	}
}
