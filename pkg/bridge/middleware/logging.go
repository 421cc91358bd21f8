package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"perch-hq/perch/pkg/telemetry/tracing"
)

// responseWriter wraps http.ResponseWriter to capture status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

// newResponseWriter creates a new response writer wrapper.
func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK, // Default to 200
	}
}

// WriteHeader captures the status code before writing.
func (rw *responseWriter) WriteHeader(code int) {
	if !rw.written {
		rw.statusCode = code
		rw.written = true
		rw.ResponseWriter.WriteHeader(code)
	}
}

// Write ensures WriteHeader is called if not already done.
func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

// LoggingMiddleware emits one structured log line per request with method,
// path, status, elapsed milliseconds, and correlation id.
//
// Log format (JSON):
//
//	{
//	  "time": "2026-08-21T10:30:00Z",
//	  "level": "INFO",
//	  "msg": "request completed",
//	  "method": "GET",
//	  "path": "/search",
//	  "status": 200,
//	  "elapsed_ms": 84,
//	  "request_id": "9f86d081884c7d65"
//	}
//
// The level escalates with the status class: Info for success, Warn for
// 4xx, Error for 5xx. When the request runs inside a sampled trace, the
// line also carries trace_id.
//
// Example usage:
//
//	handler = LoggingMiddleware(handler)
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		startTime := time.Now()
		ctx := r.Context()

		// Wrap response writer to capture status code
		rw := newResponseWriter(w)

		next.ServeHTTP(rw, r)

		elapsed := time.Since(startTime)
		requestID := GetRequestID(ctx)

		logLevel := slog.LevelInfo
		if rw.statusCode >= 500 {
			logLevel = slog.LevelError
		} else if rw.statusCode >= 400 {
			logLevel = slog.LevelWarn
		}

		args := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"elapsed_ms", elapsed.Milliseconds(),
			"request_id", requestID,
		}
		// The span context is only present when the tracing middleware
		// runs outside this one and the trace is sampled.
		if traceID := tracing.TraceID(ctx); traceID != "" {
			args = append(args, "trace_id", traceID)
		}

		slog.Log(ctx, logLevel, "request completed", args...)
	})
}
