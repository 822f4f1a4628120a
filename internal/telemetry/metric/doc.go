// Package metric provides Prometheus metrics for configuration loading.
//
// This package implements metrics collection and exposition:
//
//   - prometheus.go: Prometheus registry, load event recording and exposition
//   - collector.go: Collector reporting the size of a live store
//
// Metrics include:
//
//   - Files loaded and keys merged, per driver
//   - Parse failures, per format
//   - Load latency histograms
//   - Merged tree size gauges
//
// Registry implements confloader.Recorder, so it can be passed to a store
// with confloader.WithRecorder. Metrics are exposed through Handler in the
// Prometheus text format, or written once with WriteText.
package metric
