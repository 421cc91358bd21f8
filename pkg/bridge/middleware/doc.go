// Package middleware provides the HTTP middleware chain for the bridge.
//
// This package implements the cross-cutting request concerns: correlation
// ids, uniform response headers, tracing, metrics, logging, panic recovery,
// method gating, and rate limiting.
//
// # Middleware Chain
//
// The server applies middleware in a fixed order (outermost first):
//
//	handler = RequestID(Headers(Tracing(Metrics(Logging(Recovery(MethodGate(RateLimit(mux))))))))
//
// The order is load-bearing:
//
//  1. RequestID runs first so every later stage, including the span, the
//     log line, and panic responses, carries the correlation id.
//  2. Headers stamps CORS and nosniff before anything can write.
//  3. Tracing opens the server span so metrics, logs, and handler work all
//     happen inside it, and the log line can carry the trace id.
//  4. Metrics and Logging wrap everything below, so rejected, panicking,
//     and conditional requests are all observed with their final status.
//  5. Recovery catches panics from everything below it.
//  6. MethodGate rejects non-GET before the rate limiter, so probing with
//     unsupported methods cannot consume a client's quota.
//  7. RateLimit gates every path, including /health, before dispatch.
//
// # Request ID
//
// Correlation ids are 16 lowercase hex characters from a cryptographic
// random source, generated server-side for every request:
//
//	X-Request-ID: 9f86d081884c7d65
//
// Client-supplied X-Request-ID headers are ignored so ids cannot be forged
// or collide.
//
// # Logging
//
// LoggingMiddleware emits exactly one line per request via log/slog with
// method, path, final status, elapsed milliseconds, and the correlation id.
// The level escalates with the status class: Info, Warn for 4xx, Error for
// 5xx.
//
// # Rate Limiting
//
// RateLimitMiddleware keys clients by X-Real-IP, falling back to the first
// X-Forwarded-For entry, then the literal "unknown". Rejected requests get
// a 429 envelope with a Retry-After header. If the limiter store fails the
// middleware fails open: an unreachable Redis must not take the bridge down
// with it.
package middleware
