package types

// ErrorEnvelope is the JSON body returned for every error the gateway
// constructs itself. Pass-through upstream bodies never use this shape.
type ErrorEnvelope struct {
	// Error is the machine-readable error code.
	Error string `json:"error"`

	// Detail is a human-readable description of what went wrong.
	Detail string `json:"detail"`

	// RequestID is the correlation id assigned to the inbound request.
	RequestID string `json:"requestId"`
}

// Error code constants. Each maps to exactly one HTTP status.
const (
	// CodeMethodNotAllowed indicates a non-GET request (405).
	CodeMethodNotAllowed = "method_not_allowed"

	// CodeTooManyRequests indicates the client exceeded its rate limit (429).
	CodeTooManyRequests = "too_many_requests"

	// CodeBadRequest indicates invalid query parameters (400).
	CodeBadRequest = "bad_request"

	// CodeNotFound indicates an unknown path (404).
	CodeNotFound = "not_found"

	// CodeBadGateway indicates an upstream connection or configuration
	// failure, or an unexpected internal failure (502).
	CodeBadGateway = "bad_gateway"

	// CodeUpstreamTimeout indicates the upstream call exceeded its
	// deadline (504).
	CodeUpstreamTimeout = "upstream_timeout"
)

// NewErrorEnvelope creates an error envelope with the given code, detail,
// and correlation id.
func NewErrorEnvelope(code, detail, requestID string) *ErrorEnvelope {
	return &ErrorEnvelope{
		Error:     code,
		Detail:    detail,
		RequestID: requestID,
	}
}

// NewMethodNotAllowed creates a 405 envelope.
func NewMethodNotAllowed(detail, requestID string) *ErrorEnvelope {
	return NewErrorEnvelope(CodeMethodNotAllowed, detail, requestID)
}

// NewTooManyRequests creates a 429 envelope.
func NewTooManyRequests(detail, requestID string) *ErrorEnvelope {
	return NewErrorEnvelope(CodeTooManyRequests, detail, requestID)
}

// NewBadRequest creates a 400 envelope.
func NewBadRequest(detail, requestID string) *ErrorEnvelope {
	return NewErrorEnvelope(CodeBadRequest, detail, requestID)
}

// NewNotFound creates a 404 envelope.
func NewNotFound(detail, requestID string) *ErrorEnvelope {
	return NewErrorEnvelope(CodeNotFound, detail, requestID)
}

// NewBadGateway creates a 502 envelope.
func NewBadGateway(detail, requestID string) *ErrorEnvelope {
	return NewErrorEnvelope(CodeBadGateway, detail, requestID)
}

// NewUpstreamTimeout creates a 504 envelope.
func NewUpstreamTimeout(detail, requestID string) *ErrorEnvelope {
	return NewErrorEnvelope(CodeUpstreamTimeout, detail, requestID)
}

// HTTPStatusCode returns the HTTP status for the envelope's error code.
func (e *ErrorEnvelope) HTTPStatusCode() int {
	switch e.Error {
	case CodeBadRequest:
		return 400
	case CodeNotFound:
		return 404
	case CodeMethodNotAllowed:
		return 405
	case CodeTooManyRequests:
		return 429
	case CodeBadGateway:
		return 502
	case CodeUpstreamTimeout:
		return 504
	default:
		return 502
	}
}
