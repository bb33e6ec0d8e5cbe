// Package metric provides Prometheus metrics for tablesync.
//
//   - prometheus.go: registry, recorders, and the /metrics handler
//   - collector.go: scrape-time collector reading table revision and size
//
// Metrics are exposed at /metrics in Prometheus text format.
package metric
