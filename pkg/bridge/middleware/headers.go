package middleware

import "net/http"

// HeadersMiddleware sets the response headers every reply carries regardless
// of outcome:
//
//	Access-Control-Allow-Origin: *
//	X-Content-Type-Options: nosniff
//
// The gateway serves anonymous read-only GETs, so the permissive CORS origin
// is intentional and there is no preflight handling: browsers do not
// preflight simple GET requests.
//
// Example usage:
//
//	handler = HeadersMiddleware(handler)
func HeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Headers must be set before the handler writes the status line.
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("X-Content-Type-Options", "nosniff")

		next.ServeHTTP(w, r)
	})
}
