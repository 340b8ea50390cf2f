package summary

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus metrics of a Builder.
type Metrics struct {
	Passes         prometheus.Counter
	Failures       *prometheus.CounterVec
	StepDuration   *prometheus.HistogramVec
	DerivedRecords *prometheus.CounterVec
}

// NewMetrics creates and registers all metrics with the provided registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	passes := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "seqsum_summary_passes_total",
		Help: "Total summarization passes started",
	})

	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "seqsum_summary_failures_total",
		Help: "Total summarization passes that failed, by step",
	}, []string{"step"})

	stepDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "seqsum_summary_step_duration_seconds",
		Help:    "Time spent in each summarization step",
		Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
	}, []string{"step"})

	derived := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "seqsum_derived_records_total",
		Help: "Records computed for derived metric stores",
	}, []string{"store"})

	reg.MustRegister(passes, failures, stepDuration, derived)

	return &Metrics{
		Passes:         passes,
		Failures:       failures,
		StepDuration:   stepDuration,
		DerivedRecords: derived,
	}
}
