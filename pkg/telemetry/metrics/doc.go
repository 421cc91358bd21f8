// Package metrics provides Prometheus metrics collection for the bridge.
//
// # Overview
//
// The metrics package implements Prometheus metrics for monitoring inbound
// HTTP request processing, outbound JSON-RPC calls, and rate limiter
// activity. One Collector instance observes all three concerns and plugs
// into the request middleware and the endpoint handlers through their
// recorder interfaces.
//
// # Metrics Categories
//
//   - Request Metrics: Request count, duration, and conditional cache hits
//   - Upstream Metrics: JSON-RPC call count by outcome and call duration
//   - Rate Limit Metrics: Rejection count and tracked client gauge
//
// # Usage
//
//	// Create collector
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//
//	// Observe inbound requests through the middleware
//	handler = middleware.MetricsMiddleware(collector)(handler)
//
//	// Observe upstream calls through the handlers
//	toolsHandler := handlers.NewToolsHandler(client, collector)
//
//	// Expose the endpoint
//	mux.Handle(cfg.Telemetry.Metrics.Path, collector.Handler())
//
// # Cardinality Management
//
// All label sets are closed by construction. The path label takes only the
// served routes plus "other"; unknown request paths fold into "other" so
// URL probing cannot grow the metric space. Method, status, and outcome are
// finite sets.
//
// # Prometheus Endpoint
//
// All metrics are exposed in standard Prometheus format:
//
//	# HELP perch_requests_total Total number of HTTP requests processed
//	# TYPE perch_requests_total counter
//	perch_requests_total{method="GET",path="/tools",status="200"} 1234
package metrics
