package metrics

import (
	"net/http/httptest"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorderCounts(t *testing.T) {
	registry := prom.NewRegistry()
	rec := NewPrometheusRecorder(registry)

	rec.IncBuildOutcome(OutcomeSuccess)
	rec.IncBuildOutcome(OutcomeSuccess)
	rec.IncBuildOutcome(OutcomeFailed)
	rec.IncWatchEvent(EventQualified)
	rec.IncWatchEvent(EventIgnored)
	rec.ObserveBuildDuration(2 * time.Second)
	rec.ObserveStageDuration("typeset", time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(rec.buildOutcome.WithLabelValues(OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.buildOutcome.WithLabelValues(OutcomeFailed)))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.watchEvents.WithLabelValues(EventQualified)))
}

func TestHTTPHandlerServesMetrics(t *testing.T) {
	registry := prom.NewRegistry()
	rec := NewPrometheusRecorder(registry)
	rec.IncBuildOutcome(OutcomeSuccess)

	req := httptest.NewRequest("GET", "/metrics", nil)
	w := httptest.NewRecorder()
	HTTPHandler(registry).ServeHTTP(w, req)

	require.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), "mdpress_build_outcomes_total")
}

func TestNopRecorderIsSafe(t *testing.T) {
	var rec Recorder = NopRecorder{}
	rec.IncBuildOutcome(OutcomeFailed)
	rec.IncWatchEvent(EventIgnored)
	rec.ObserveBuildDuration(time.Second)
	rec.ObserveStageDuration("concat", time.Second)
}
