package metrics

import (
	"time"

	"asset-diff/core/merge"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Merge outcomes.
const (
	OutcomeClean     = "clean"
	OutcomeMergeable = "mergeable"
	OutcomeConflict  = "conflict"
	OutcomeError     = "error"
)

var (
	// mergesTotal counts merge computations.
	// Labels: source (inline, objects, cli), outcome
	mergesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "asset_diff",
		Name:      "merges_total",
		Help:      "Total three-way merges computed",
	}, []string{"source", "outcome"})

	// mergeDifferences tracks how many differences a merge reports.
	mergeDifferences = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "asset_diff",
		Name:      "merge_differences",
		Help:      "Number of differences per merge",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
	})

	// mergeDuration measures the time spent computing a merge tree.
	mergeDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "asset_diff",
		Name:      "merge_duration_seconds",
		Help:      "Merge computation latency in seconds",
		Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
	})

	// documentCache counts document cache lookups.
	// Labels: result (hit, miss)
	documentCache = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "asset_diff",
		Name:      "document_cache_total",
		Help:      "Document cache lookups by result",
	}, []string{"result"})
)

// Outcome classifies a merge plan.
func Outcome(plan *merge.Plan) string {
	switch {
	case plan.Summary.TotalDifferences == 0:
		return OutcomeClean
	case plan.Mergeable():
		return OutcomeMergeable
	default:
		return OutcomeConflict
	}
}

// ObserveMerge records one merge. A nil plan records an error outcome.
func ObserveMerge(source string, plan *merge.Plan, elapsed time.Duration) {
	if plan == nil {
		mergesTotal.WithLabelValues(source, OutcomeError).Inc()
		return
	}
	mergesTotal.WithLabelValues(source, Outcome(plan)).Inc()
	mergeDifferences.Observe(float64(plan.Summary.TotalDifferences))
	mergeDuration.Observe(elapsed.Seconds())
}

// ObserveCache records a document cache lookup.
func ObserveCache(hit bool) {
	if hit {
		documentCache.WithLabelValues("hit").Inc()
		return
	}
	documentCache.WithLabelValues("miss").Inc()
}

// Handler serves the default Prometheus registry.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
