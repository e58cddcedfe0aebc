// Package metrics provides Prometheus metrics for the estimator.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder owns the estimator's collectors.
type Recorder struct {
	EstimatesTotal   *prometheus.CounterVec
	LineItemsTotal   prometheus.Counter
	DiagnosticsTotal *prometheus.CounterVec
	EstimateDuration prometheus.Histogram
	EstimateTotal    prometheus.Histogram
	StoreOpsTotal    *prometheus.CounterVec
}

// New registers the collectors with reg. Pass prometheus.DefaultRegisterer
// in production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		EstimatesTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reno_estimates_total",
				Help: "Total number of estimates computed",
			},
			[]string{"source"},
		),
		LineItemsTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "reno_line_items_total",
			Help: "Total number of priced line items emitted",
		}),
		DiagnosticsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reno_estimate_diagnostics_total",
				Help: "Catalog and assembly gaps hit while pricing",
			},
			[]string{"code"},
		),
		EstimateDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "reno_estimate_duration_seconds",
			Help:    "Time taken to compute an estimate",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}),
		EstimateTotal: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "reno_estimate_total_amount",
			Help:    "Grand total of computed estimates, in the estimate currency",
			Buckets: prometheus.ExponentialBuckets(1000, 2, 10),
		}),
		StoreOpsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reno_store_operations_total",
				Help: "Saved-estimate storage operations",
			},
			[]string{"op", "status"},
		),
	}
}

// RecordEstimate records one computed estimate.
func (r *Recorder) RecordEstimate(source string, lineItems int, total float64, diagnosticCodes []string, duration time.Duration) {
	r.EstimatesTotal.WithLabelValues(source).Inc()
	r.LineItemsTotal.Add(float64(lineItems))
	r.EstimateTotal.Observe(total)
	r.EstimateDuration.Observe(duration.Seconds())
	for _, code := range diagnosticCodes {
		r.DiagnosticsTotal.WithLabelValues(code).Inc()
	}
}

// RecordStore records a storage operation outcome.
func (r *Recorder) RecordStore(op string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	r.StoreOpsTotal.WithLabelValues(op, status).Inc()
}

// Timer measures elapsed time.
type Timer struct {
	start time.Time
}

// NewTimer starts a timer.
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// Duration returns the time elapsed since NewTimer.
func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}
