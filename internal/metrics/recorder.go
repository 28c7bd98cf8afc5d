// Package metrics records build and watch instrumentation.
package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// Outcome labels for build results.
const (
	OutcomeSuccess = "success"
	OutcomeFailed  = "failed"
)

// Watch event labels.
const (
	EventQualified = "qualified"
	EventIgnored   = "ignored"
)

// Recorder receives build and watch observations.
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	ObserveBuildDuration(d time.Duration)
	IncBuildOutcome(outcome string)
	IncWatchEvent(result string)
}

// NopRecorder discards all observations.
type NopRecorder struct{}

func (NopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NopRecorder) ObserveBuildDuration(time.Duration)         {}
func (NopRecorder) IncBuildOutcome(string)                     {}
func (NopRecorder) IncWatchEvent(string)                       {}

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	stageDuration *prom.HistogramVec
	buildDuration prom.Histogram
	buildOutcome  *prom.CounterVec
	watchEvents   *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers Prometheus metrics.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		stageDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "mdpress",
			Name:      "stage_duration_seconds",
			Help:      "Duration of individual build stages",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"}),
		buildDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "mdpress",
			Name:      "build_duration_seconds",
			Help:      "Total build duration",
			Buckets:   prom.DefBuckets,
		}),
		buildOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "mdpress",
			Name:      "build_outcomes_total",
			Help:      "Build outcomes by final status",
		}, []string{"outcome"}),
		watchEvents: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "mdpress",
			Name:      "watch_events_total",
			Help:      "Filesystem events by filter result",
		}, []string{"result"}),
	}
	reg.MustRegister(pr.stageDuration, pr.buildDuration, pr.buildOutcome, pr.watchEvents)
	return pr
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncBuildOutcome(outcome string) {
	p.buildOutcome.WithLabelValues(outcome).Inc()
}

func (p *PrometheusRecorder) IncWatchEvent(result string) {
	p.watchEvents.WithLabelValues(result).Inc()
}
