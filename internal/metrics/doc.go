// Package metrics collects runtime memory readings and Prometheus metrics
// for benchmark rounds, differential cases and counter campaigns.
package metrics
