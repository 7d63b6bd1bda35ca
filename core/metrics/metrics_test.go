package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"asset-diff/core/merge"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutcome(t *testing.T) {
	tests := []struct {
		name    string
		summary merge.PlanSummary
		want    string
	}{
		{"Clean", merge.PlanSummary{}, OutcomeClean},
		{"Mergeable", merge.PlanSummary{TotalDifferences: 2, ChangedBySide1: 2}, OutcomeMergeable},
		{"Conflict", merge.PlanSummary{TotalDifferences: 1, SizeConflicts: 1}, OutcomeConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Outcome(&merge.Plan{Summary: tt.summary}))
		})
	}
}

func TestObserveMerge(t *testing.T) {
	before := testutil.ToFloat64(mergesTotal.WithLabelValues("test", OutcomeMergeable))
	ObserveMerge("test", &merge.Plan{Summary: merge.PlanSummary{TotalDifferences: 1, ChangedBySide2: 1}}, time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(mergesTotal.WithLabelValues("test", OutcomeMergeable)))

	errorsBefore := testutil.ToFloat64(mergesTotal.WithLabelValues("test", OutcomeError))
	ObserveMerge("test", nil, 0)
	assert.Equal(t, errorsBefore+1, testutil.ToFloat64(mergesTotal.WithLabelValues("test", OutcomeError)))

	hits := testutil.ToFloat64(documentCache.WithLabelValues("hit"))
	ObserveCache(true)
	assert.Equal(t, hits+1, testutil.ToFloat64(documentCache.WithLabelValues("hit")))
}

func TestHandler(t *testing.T) {
	ObserveMerge("test", &merge.Plan{}, time.Millisecond)

	app := fiber.New()
	app.Get("/metrics", Handler())

	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "asset_diff_merges_total")
}
