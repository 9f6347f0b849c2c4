// Package monitoring provides Prometheus metrics for the transpiler
// backend: HTTP request counters and latency histograms, plus per-operation
// counters for transpile and diff invocations and the warnings they emit.
//
// Metrics are registered on a private registry so tests can create
// collectors freely; the registry is exposed through Handler on /metrics.
package monitoring
