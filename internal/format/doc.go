// Package format holds display helpers shared by the CLI: durations, byte
// sizes, progress bars and ETA estimates.
package format
