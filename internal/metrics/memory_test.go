package metrics

import "testing"

var sink []byte

func TestMemoryCollector_Snapshot(t *testing.T) {
	t.Parallel()

	snap := NewMemoryCollector().Snapshot()
	if snap.HeapAlloc == 0 {
		t.Error("HeapAlloc should be > 0")
	}
	if snap.Sys == 0 {
		t.Error("Sys should be > 0")
	}
}

func TestMemorySnapshot_Since(t *testing.T) {
	mc := NewMemoryCollector()
	before := mc.SettledSnapshot()

	sink = make([]byte, 1<<20)

	after := mc.SettledSnapshot()
	d := after.Since(before)
	if d.TotalAlloc < 1<<20 {
		t.Errorf("TotalAlloc delta = %d, want >= 1 MiB", d.TotalAlloc)
	}
	if d.NumGC == 0 {
		t.Error("NumGC delta should count the forced collection")
	}
	if d.HeapAlloc < 1<<19 {
		t.Errorf("HeapAlloc delta = %d, want the retained buffer to show", d.HeapAlloc)
	}
	sink = nil
}

func TestMemorySnapshot_SinceNegative(t *testing.T) {
	t.Parallel()

	d := MemorySnapshot{HeapAlloc: 10}.Since(MemorySnapshot{HeapAlloc: 30})
	if d.HeapAlloc != -20 {
		t.Errorf("HeapAlloc delta = %d, want -20", d.HeapAlloc)
	}
}
