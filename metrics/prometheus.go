package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder exports resolution metrics under the "ecs" namespace.
type PrometheusRecorder struct {
	resolutions *prometheus.CounterVec
	latency     *prometheus.HistogramVec
}

func NewPrometheusRecorder() Recorder {
	resolutions := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ecs",
			Name:      "resolutions_total",
			Help:      "Credential resolution attempts by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)

	latency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ecs",
			Name:      "resolution_latency_seconds",
			Help:      "End-to-end credential resolution latency",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	prometheus.MustRegister(resolutions, latency)

	return &PrometheusRecorder{
		resolutions: resolutions,
		latency:     latency,
	}
}

func (p *PrometheusRecorder) RecordResolution(outcome string, d time.Duration) {
	p.record("resolve", outcome, d)
}

func (p *PrometheusRecorder) RecordRegistryRead(outcome string, d time.Duration) {
	p.record("registry_read", outcome, d)
}

func (p *PrometheusRecorder) record(operation, outcome string, d time.Duration) {
	p.resolutions.With(prometheus.Labels{
		"operation": operation,
		"outcome":   outcome,
	}).Inc()
	p.latency.With(prometheus.Labels{
		"operation": operation,
	}).Observe(d.Seconds())
}
