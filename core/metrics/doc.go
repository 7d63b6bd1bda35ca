// Package metrics exposes Prometheus metrics for merge computations.
//
// Merges are counted by source and outcome (clean, mergeable, conflict, error),
// with histograms for the number of differences and the computation latency.
// Handler serves the default registry through Fiber's net/http adaptor.
package metrics
