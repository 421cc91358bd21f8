package metrics

import (
	"perch-hq/perch/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// RateLimitMetrics tracks rate limiter activity.
//
// Metrics:
//   - perch_ratelimit_rejected_total: Requests rejected with 429 by path
//   - perch_ratelimit_tracked_clients: Client keys currently tracked
type RateLimitMetrics struct {
	// Requests rejected by the limiter
	rejectedTotal *prometheus.CounterVec

	// Client keys currently held in the limiter, updated by the sweeper
	trackedClients prometheus.Gauge
}

// NewRateLimitMetrics creates and registers rate limiter metrics with the provided registry.
func NewRateLimitMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *RateLimitMetrics {
	rlm := &RateLimitMetrics{
		rejectedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "ratelimit_rejected_total",
				Help:      "Total number of requests rejected by the rate limiter",
			},
			[]string{"path"},
		),

		trackedClients: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Name:      "ratelimit_tracked_clients",
				Help:      "Number of client keys currently tracked by the rate limiter",
			},
		),
	}

	registry.MustRegister(
		rlm.rejectedTotal,
		rlm.trackedClients,
	)

	return rlm
}

// RecordRejected records a request rejected with 429.
func (rlm *RateLimitMetrics) RecordRejected(path string) {
	rlm.rejectedTotal.WithLabelValues(path).Inc()
}

// SetTrackedClients updates the tracked client gauge.
func (rlm *RateLimitMetrics) SetTrackedClients(n int) {
	rlm.trackedClients.Set(float64(n))
}
