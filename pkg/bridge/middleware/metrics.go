package middleware

import (
	"net/http"
	"strconv"
	"time"
)

// RequestRecorder receives one observation per completed request.
// Implementations must be safe for concurrent use.
type RequestRecorder interface {
	// RecordRequest observes a finished request with its final status.
	RecordRequest(method, path, status string, duration time.Duration)

	// RecordRateLimited counts a request rejected by the rate limiter.
	RecordRateLimited(path string)

	// RecordConditionalHit counts a conditional GET answered with 304.
	RecordConditionalHit(path string)
}

// MetricsMiddleware observes every request's final status and duration.
// It sits outside the rate limiter and the handlers so rejected and
// conditional responses are visible by their status codes.
//
// Example usage:
//
//	handler = MetricsMiddleware(collector)(handler)
func MetricsMiddleware(recorder RequestRecorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if recorder == nil {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			rw := newResponseWriter(w)

			next.ServeHTTP(rw, r)

			elapsed := time.Since(start)
			path := r.URL.Path

			recorder.RecordRequest(r.Method, path, strconv.Itoa(rw.statusCode), elapsed)

			switch rw.statusCode {
			case http.StatusTooManyRequests:
				recorder.RecordRateLimited(path)
			case http.StatusNotModified:
				recorder.RecordConditionalHit(path)
			}
		})
	}
}
