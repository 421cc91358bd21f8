// Package tracing provides distributed tracing via OpenTelemetry.
//
// # Overview
//
// The tracing package wraps the OpenTelemetry SDK to provide:
//   - One server span per inbound request and one client span per
//     upstream JSON-RPC call
//   - W3C Trace Context propagation in both directions
//   - Configurable sampling (always, never, ratio)
//   - OTLP gRPC export to a collector
//
// When tracing is disabled, New returns a noop tracer so callers never
// need to branch on the setting.
//
// # Usage
//
//	tracer, err := tracing.New(ctx, &cfg.Telemetry.Tracing)
//	if err != nil {
//	    return err
//	}
//	defer tracer.Shutdown(context.Background())
//
//	ctx, span := tracer.Start(ctx, "tools_list",
//	    trace.WithSpanKind(trace.SpanKindClient),
//	)
//	defer span.End()
//
// # Sampling
//
// The sampler is chosen by configuration:
//
//	telemetry:
//	  tracing:
//	    enabled: true
//	    sampler: ratio
//	    sample_ratio: 0.1
//	    endpoint: "localhost:4317"
//
// All strategies are wrapped in ParentBased, so a sampled inbound trace
// stays sampled through the bridge regardless of the local ratio.
//
// # Attributes
//
// Spans carry the correlation id assigned by the request id middleware
// under perch.request_id, which also appears in logs and response headers.
// One id links a log line, a trace, and a client-visible response.
package tracing
