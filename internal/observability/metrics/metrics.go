package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Ingestion outcomes and summary results used as metric labels.
const (
	OutcomeCreated   = "created"
	OutcomeDuplicate = "duplicate"
	OutcomeError     = "error"

	ResultSuccess = "success"
	ResultError   = "error"
)

var (
	registerOnce sync.Once

	poursIngested  *prometheus.CounterVec
	summaryLatency *prometheus.HistogramVec
)

// Init registers the service metrics with the default registry. Safe to
// call more than once. Recording helpers are no-ops before Init, so unit
// tests need no registry setup.
func Init() {
	registerOnce.Do(func() {
		poursIngested = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pours_ingested_total",
				Help: "Total pour ingestion requests by outcome",
			},
			[]string{"outcome"},
		)
		summaryLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "summary_request_duration_seconds",
				Help:    "Device summary query latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)

		prometheus.MustRegister(poursIngested, summaryLatency)
	})
}

// IncPourIngested increments the ingestion outcome counter.
func IncPourIngested(outcome string) {
	if poursIngested != nil {
		poursIngested.WithLabelValues(outcome).Inc()
	}
}

// ObserveSummary records one summary query duration and result.
func ObserveSummary(result string, duration time.Duration) {
	if summaryLatency != nil {
		summaryLatency.WithLabelValues(result).Observe(duration.Seconds())
	}
}
