// Package server assembles the HTTP bridge server.
//
// This package ties together the bridge components (handlers, middleware,
// the rate limiter, telemetry) and provides server lifecycle management
// including start, shutdown, and TLS termination.
//
// # Architecture
//
// The server package is the top-level orchestrator that:
//   - Sets up HTTP routes and handlers
//   - Chains middleware for cross-cutting concerns
//   - Configures TLS termination
//   - Manages graceful shutdown
//   - Handles OS signals (SIGTERM, SIGINT)
//
// # Basic Usage
//
// Creating and starting a server:
//
//	import (
//	    "context"
//	    "perch-hq/perch/pkg/config"
//	    "perch-hq/perch/pkg/limits/ratelimit"
//	    "perch-hq/perch/pkg/server"
//	    "perch-hq/perch/pkg/upstream"
//	)
//
//	cfg, err := config.LoadConfigWithEnvOverrides("perch.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	client := upstream.NewClient(upstream.Config{URL: cfg.Upstream.URL}, nil)
//	limiter := ratelimit.NewMemoryLimiter(ratelimit.Config{
//	    Limit:  cfg.RateLimit.Limit,
//	    Window: cfg.RateLimit.Window,
//	})
//
//	srv := server.NewServer(cfg, client, limiter, nil, nil)
//	if err := srv.Start(context.Background()); err != nil {
//	    log.Fatal(err)
//	}
//
// # Graceful Shutdown
//
// The server shuts down on SIGTERM or SIGINT, on context cancellation, or
// when Shutdown is called:
//
//	if err := srv.Shutdown(context.Background()); err != nil {
//	    slog.Error("shutdown error", "error", err)
//	}
//
// The shutdown process:
//  1. Stops accepting new connections
//  2. Waits for active connections to complete (up to shutdown timeout)
//  3. Forces connection closure if timeout exceeded
//
// # Routes
//
// The server exposes the following HTTP endpoints:
//
//   - GET /health - Liveness payload (service name, status, request id)
//   - GET /tools - Upstream tool catalog, cacheable for a client-chosen ttl
//   - GET /search - Post search through the upstream search tool
//   - GET /metrics - Prometheus metrics (unless metrics are disabled)
//
// All other paths return a 404 envelope. All non-GET methods return a 405
// envelope with an Allow: GET header.
//
// # Middleware Chain
//
// Requests pass through the chain documented in the middleware package:
// request id, response headers, tracing, metrics, logging, panic recovery,
// the method gate, and the rate-limit gate, in that order from the outside
// in. The limiter, collector, and tracer stages are skipped when the
// corresponding collaborator is nil.
//
// # TLS Support
//
// The server terminates TLS with configurable certificates:
//
//	server:
//	  tls:
//	    enabled: true
//	    cert_file: "/path/to/cert.pem"
//	    key_file: "/path/to/key.pem"
//	    min_version: "1.3"
//
// min_version accepts "1.2" or "1.3" and defaults to "1.3".
//
// # Thread Safety
//
// All server operations are safe to call concurrently from multiple
// goroutines.
package server
