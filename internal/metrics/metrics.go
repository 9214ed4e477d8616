// Package metrics exposes prometheus instrumentation for the screening
// operations.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Operation status labels.
const (
	StatusSuccess = "success"
	StatusError   = "error"
	StatusCached  = "cached"
)

// Metrics holds the collectors registered for one service instance. A nil
// *Metrics is valid and records nothing.
type Metrics struct {
	gatherer prometheus.Gatherer

	Operations   *prometheus.CounterVec
	Duration     *prometheus.HistogramVec
	BulkInFlight prometheus.Gauge
	OverallScore prometheus.Histogram
}

// New registers the collectors on reg. Passing nil uses a fresh registry.
func New(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)

	return &Metrics{
		gatherer: reg,
		Operations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "screening_operations_total",
				Help: "Total number of engine operations by outcome",
			},
			[]string{"operation", "status"},
		),
		Duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "screening_operation_duration_seconds",
				Help:    "Duration of engine operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		BulkInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "screening_bulk_in_flight",
				Help: "Number of bulk screenings currently running",
			},
		),
		OverallScore: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "screening_overall_score",
				Help:    "Distribution of overall screening scores",
				Buckets: prometheus.LinearBuckets(10, 10, 10),
			},
		),
	}
}

// Observe records one operation that started at start. err decides the
// status label.
func (m *Metrics) Observe(operation string, start time.Time, err error) {
	status := StatusSuccess
	if err != nil {
		status = StatusError
	}
	m.ObserveStatus(operation, start, status)
}

// ObserveStatus records one operation with an explicit status label.
func (m *Metrics) ObserveStatus(operation string, start time.Time, status string) {
	if m == nil {
		return
	}
	m.Operations.WithLabelValues(operation, status).Inc()
	m.Duration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// ObserveScore adds an overall screening score to the distribution.
func (m *Metrics) ObserveScore(score float64) {
	if m == nil {
		return
	}
	m.OverallScore.Observe(score)
}

// TrackBulk marks a bulk screening as running and returns the func that
// marks it done.
func (m *Metrics) TrackBulk() func() {
	if m == nil {
		return func() {}
	}
	m.BulkInFlight.Inc()
	return m.BulkInFlight.Dec
}

// Handler serves the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.HandlerFor(prometheus.NewRegistry(), promhttp.HandlerOpts{})
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
