// Package metric provides Prometheus metrics for flowlog.
//
// This package implements metrics collection and exposition:
//
//   - prometheus.go: Prometheus registry and HTTP handler
//   - collector.go: Collector for values read at scrape time
//
// Metrics include:
//
//   - Log entries written, by level
//   - Log entries dropped, by reason
//   - Fields masked by redaction
//   - Values reported through Logger.Metric
//   - Size of the active redaction policy
//
// Metrics are exposed at /metrics in Prometheus format.
package metric
