package config

import "runtime"

// ApplyAdaptiveDefaults fills hardware-dependent settings left at zero.
// Explicit values from any layer are preserved.
func ApplyAdaptiveDefaults(cfg AppConfig) AppConfig {
	if cfg.Workers == 0 {
		cfg.Workers = EstimateWorkers()
	}
	return cfg
}

// EstimateWorkers returns the default campaign fan-out: one worker per CPU,
// capped at 64.
func EstimateWorkers() int {
	n := runtime.NumCPU()
	switch {
	case n < 1:
		return 1
	case n > 64:
		return 64
	default:
		return n
	}
}
