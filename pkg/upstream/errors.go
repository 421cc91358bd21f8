package upstream

import (
	"errors"
	"fmt"
	"time"
)

// CredentialError reports a missing or empty bearer token. It is returned
// before any network I/O happens, so a misconfigured deployment never sends
// unauthenticated requests upstream.
type CredentialError struct {
	// Cause is the secrets chain error, if resolution was attempted.
	Cause error
}

// Error implements the error interface.
func (e *CredentialError) Error() string {
	return "upstream credential not configured"
}

// Unwrap returns the underlying error for error chain support.
func (e *CredentialError) Unwrap() error {
	return e.Cause
}

// TimeoutError reports that an upstream call exceeded its deadline.
type TimeoutError struct {
	// Timeout is the configured per-call timeout.
	Timeout time.Duration
}

// Error implements the error interface.
func (e *TimeoutError) Error() string {
	return fmt.Sprintf("upstream request timed out after %s", e.Timeout)
}

// TransportError reports a connection-level failure: dial errors, resets,
// interrupted reads. The upstream never produced a complete response.
type TransportError struct {
	// Cause is the underlying transport error.
	Cause error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("upstream connection failed: %v", e.Cause)
}

// Unwrap returns the underlying error for error chain support.
func (e *TransportError) Unwrap() error {
	return e.Cause
}

// Outcome labels the result of an upstream call. The labels feed metrics and
// drive the HTTP status the bridge answers with.
type Outcome string

const (
	OutcomeSuccess    Outcome = "success"
	OutcomeHTTPError  Outcome = "http_error"
	OutcomeTimeout    Outcome = "timeout"
	OutcomeTransport  Outcome = "transport_error"
	OutcomeCredential Outcome = "credential_error"
)

// ClassifyError maps a client error to its outcome label.
func ClassifyError(err error) Outcome {
	var credErr *CredentialError
	if errors.As(err, &credErr) {
		return OutcomeCredential
	}
	var timeoutErr *TimeoutError
	if errors.As(err, &timeoutErr) {
		return OutcomeTimeout
	}
	return OutcomeTransport
}
