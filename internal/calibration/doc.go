// Package calibration sweeps counter campaign fan-out to find the worker
// count with the best throughput on the current host.
package calibration
