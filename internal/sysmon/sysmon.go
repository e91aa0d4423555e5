// Package sysmon samples host CPU and memory so benchmark and campaign
// reports carry the load they were measured under.
package sysmon

import (
	"runtime"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Stats holds a single snapshot of system-wide resource usage.
type Stats struct {
	CPUPercent float64 `json:"cpu_percent"` // 0.0 .. 100.0
	MemPercent float64 `json:"mem_percent"` // 0.0 .. 100.0
}

// Host describes the machine a run executes on. Fields the platform does
// not report are left zero.
type Host struct {
	CPUModel      string `json:"cpu_model,omitempty"`
	PhysicalCores int    `json:"physical_cores,omitempty"`
	LogicalCores  int    `json:"logical_cores"`
	TotalMemory   uint64 `json:"total_memory,omitempty"`
}

// Sample collects a single system-wide CPU and memory snapshot.
// CPU uses interval=0 (delta since last call). Returns zero values on error.
func Sample() Stats {
	var s Stats
	cpuPcts, err := cpu.Percent(0, false)
	if err == nil && len(cpuPcts) > 0 {
		s.CPUPercent = cpuPcts[0]
	}
	vmem, err := mem.VirtualMemory()
	if err == nil && vmem != nil {
		s.MemPercent = vmem.UsedPercent
	}
	return s
}

// Describe reports static host information. LogicalCores falls back to
// runtime.NumCPU when gopsutil cannot count them.
func Describe() Host {
	h := Host{LogicalCores: runtime.NumCPU()}
	if infos, err := cpu.Info(); err == nil && len(infos) > 0 {
		h.CPUModel = infos[0].ModelName
	}
	if n, err := cpu.Counts(false); err == nil {
		h.PhysicalCores = n
	}
	if n, err := cpu.Counts(true); err == nil && n > 0 {
		h.LogicalCores = n
	}
	if vmem, err := mem.VirtualMemory(); err == nil && vmem != nil {
		h.TotalMemory = vmem.Total
	}
	return h
}
