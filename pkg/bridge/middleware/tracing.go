package middleware

import (
	"context"
	"net/http"

	"perch-hq/perch/pkg/telemetry/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// SpanStarter starts trace spans. Satisfied by *tracing.Tracer.
type SpanStarter interface {
	Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span)
}

// TracingMiddleware opens one server span per request. Inbound W3C trace
// context joins the caller's trace; without it the span starts a new one,
// subject to the configured sampler.
//
// The span records the method, path, final status, and the correlation id
// assigned by RequestIDMiddleware, so a trace can be joined against logs
// and the client-visible X-Request-ID header. Conditional requests answered
// with 304 are flagged as cache hits.
//
// Example usage:
//
//	handler = TracingMiddleware(tracer)(handler)
func TracingMiddleware(tracer SpanStarter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if tracer == nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := tracing.Extract(r.Context(), r.Header)

			ctx, span := tracer.Start(ctx, r.Method+" "+r.URL.Path,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					attribute.String("http.method", r.Method),
					attribute.String("http.target", r.URL.Path),
				),
			)
			defer span.End()

			tracing.SetRequestAttributes(span, GetRequestID(ctx))

			rw := newResponseWriter(w)
			next.ServeHTTP(rw, r.WithContext(ctx))

			span.SetAttributes(attribute.Int("http.status_code", rw.statusCode))
			if rw.statusCode == http.StatusNotModified {
				tracing.SetCacheHitAttribute(span, true)
			}
			if rw.statusCode >= 500 {
				span.SetStatus(codes.Error, http.StatusText(rw.statusCode))
			}
		})
	}
}
