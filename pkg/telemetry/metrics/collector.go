package metrics

import (
	"time"

	"perch-hq/perch/pkg/config"
	"perch-hq/perch/pkg/upstream"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector owns all Prometheus metrics for the bridge. It satisfies the
// recorder interfaces of the request middleware and the endpoint handlers,
// so one instance observes both sides of the proxy: inbound HTTP requests
// and outbound JSON-RPC calls.
//
// Label cardinality is bounded: the path label only ever takes the fixed
// route set plus "other", and status, method, and outcome are closed sets
// by construction.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	// Inbound request metrics
	requestMetrics *RequestMetrics

	// Outbound upstream call metrics
	upstreamMetrics *UpstreamMetrics

	// Rate limiter metrics
	ratelimitMetrics *RateLimitMetrics

	// knownPaths is the fixed route set. Anything else folds into "other"
	// so probing random URLs cannot grow the metric space.
	knownPaths map[string]struct{}
}

// NewCollector creates a metrics collector registered against the given
// registry. If registry is nil, a fresh registry is used.
//
// Example:
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	mux.Handle(cfg.Telemetry.Metrics.Path, collector.Handler())
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}
	if len(cfg.RequestDurationBuckets) == 0 {
		cfg.RequestDurationBuckets = config.DefaultRequestDurationBuckets
	}
	if len(cfg.UpstreamDurationBuckets) == 0 {
		cfg.UpstreamDurationBuckets = config.DefaultUpstreamDurationBuckets
	}

	metricsPath := cfg.Path
	if metricsPath == "" {
		metricsPath = config.DefaultMetricsPath
	}

	c := &Collector{
		config:   cfg,
		registry: registry,
		knownPaths: map[string]struct{}{
			"/health":   {},
			"/tools":    {},
			"/search":   {},
			metricsPath: {},
		},
	}

	c.requestMetrics = NewRequestMetrics(cfg, registry)
	c.upstreamMetrics = NewUpstreamMetrics(cfg, registry)
	c.ratelimitMetrics = NewRateLimitMetrics(cfg, registry)

	return c
}

// RecordRequest observes a finished inbound request with its final status.
func (c *Collector) RecordRequest(method, path, status string, duration time.Duration) {
	if c.config.Disabled {
		return
	}

	c.requestMetrics.RecordRequest(method, c.normalizePath(path), status, duration)
}

// RecordRateLimited counts a request rejected by the rate limiter.
func (c *Collector) RecordRateLimited(path string) {
	if c.config.Disabled {
		return
	}

	c.ratelimitMetrics.RecordRejected(c.normalizePath(path))
}

// RecordConditionalHit counts a conditional GET answered with 304.
func (c *Collector) RecordConditionalHit(path string) {
	if c.config.Disabled {
		return
	}

	c.requestMetrics.RecordConditionalHit(c.normalizePath(path))
}

// RecordUpstream observes one upstream JSON-RPC call.
//
// Parameters:
//   - method: JSON-RPC method name ("tools/list", "tools/call")
//   - outcome: result classification ("success", "http_error", "timeout",
//     "transport_error", "credential_error")
//   - duration: wall time of the call including connection setup
func (c *Collector) RecordUpstream(method string, outcome upstream.Outcome, duration time.Duration) {
	if c.config.Disabled {
		return
	}

	c.upstreamMetrics.RecordCall(method, string(outcome), duration)
}

// SetTrackedClients updates the gauge of client keys currently held by the
// in-memory rate limiter. The sweeper reports this after each sweep.
func (c *Collector) SetTrackedClients(n int) {
	if c.config.Disabled {
		return
	}

	c.ratelimitMetrics.SetTrackedClients(n)
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// normalizePath folds unknown request paths into "other".
func (c *Collector) normalizePath(path string) string {
	if _, ok := c.knownPaths[path]; ok {
		return path
	}
	return "other"
}
