package middleware

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// Context keys for storing values in request context.
const (
	// RequestIDKey stores the correlation id assigned to the request.
	RequestIDKey contextKey = "request_id"

	// ClientKeyKey stores the rate-limit client key derived from
	// forwarding headers.
	ClientKeyKey contextKey = "client_key"
)
