// Package telemetry provides observability for the bridge.
//
// # Overview
//
// The telemetry package implements structured logging, Prometheus metrics,
// and OpenTelemetry distributed tracing. It provides visibility into both
// sides of the bridge: inbound HTTP requests and outbound JSON-RPC calls.
//
// # Components
//
//   - logging: structured slog logging with runtime level control
//   - metrics: Prometheus metrics collection and exposition
//   - tracing: OpenTelemetry distributed tracing over OTLP
//
// # Usage
//
//	// Logging
//	logger, err := logging.New(&cfg.Telemetry.Logging, os.Stdout)
//	logger.Install()
//
//	// Metrics
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	mux.Handle("/metrics", collector.Handler())
//
//	// Tracing
//	tracer, err := tracing.New(ctx, &cfg.Telemetry.Tracing)
//	defer tracer.Shutdown(context.Background())
//
// All three components are independent: each can be disabled without
// affecting the others, and the request path treats every one of them as
// optional.
package telemetry
