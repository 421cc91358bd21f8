package metrics

import (
	"time"

	"perch-hq/perch/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// UpstreamMetrics tracks outbound JSON-RPC calls to the MCP server.
//
// Metrics:
//   - perch_upstream_requests_total: Total call count by method, outcome
//   - perch_upstream_duration_seconds: Call duration histogram
type UpstreamMetrics struct {
	// Total call count by outcome classification
	requestsTotal *prometheus.CounterVec

	// Call duration histogram
	callDuration *prometheus.HistogramVec
}

// NewUpstreamMetrics creates and registers upstream metrics with the provided registry.
func NewUpstreamMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *UpstreamMetrics {
	um := &UpstreamMetrics{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "upstream_requests_total",
				Help:      "Total number of upstream JSON-RPC calls by outcome",
			},
			[]string{"method", "outcome"},
		),

		callDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Name:      "upstream_duration_seconds",
				Help:      "Duration of upstream JSON-RPC calls in seconds",
				Buckets:   cfg.UpstreamDurationBuckets,
			},
			[]string{"method"},
		),
	}

	registry.MustRegister(
		um.requestsTotal,
		um.callDuration,
	)

	return um
}

// RecordCall records one upstream call with its outcome classification.
func (um *UpstreamMetrics) RecordCall(method, outcome string, duration time.Duration) {
	um.requestsTotal.WithLabelValues(method, outcome).Inc()
	um.callDuration.WithLabelValues(method).Observe(duration.Seconds())
}
