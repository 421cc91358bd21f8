package bridge

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"perch-hq/perch/pkg/bridge/types"
	"perch-hq/perch/pkg/upstream"
)

// MaxEchoedUpstreamBody bounds how many characters of an upstream error body
// are echoed back to the client.
const MaxEchoedUpstreamBody = 2048

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, statusCode int, v interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON response: %w", err)
	}
	return nil
}

// WriteError writes a self-constructed error envelope. Envelopes embed the
// correlation id, so they are never cacheable.
func WriteError(w http.ResponseWriter, envelope *types.ErrorEnvelope) error {
	w.Header().Set("Cache-Control", "no-store")
	return WriteJSON(w, envelope.HTTPStatusCode(), envelope)
}

// WriteUpstreamFailure translates an upstream client error into its error
// envelope: 504 for timeouts, 502 for credential and transport failures.
func WriteUpstreamFailure(w http.ResponseWriter, err error, requestID string) error {
	var envelope *types.ErrorEnvelope
	switch upstream.ClassifyError(err) {
	case upstream.OutcomeTimeout:
		envelope = types.NewUpstreamTimeout(err.Error(), requestID)
	default:
		envelope = types.NewBadGateway(err.Error(), requestID)
	}
	return WriteError(w, envelope)
}

// WriteUpstreamResult renders a completed upstream call.
//
// http_error outcomes echo the upstream status with a truncated copy of its
// body and are never cached.
//
// success outcomes pass the upstream text through behind an ETag: JSON
// bodies verbatim, non-JSON bodies wrapped as {"raw": <text>}. The ETag is
// computed over the exact bytes that would be written, and an If-None-Match
// hit short-circuits to a bodyless 304 carrying the same cache headers.
func WriteUpstreamResult(w http.ResponseWriter, r *http.Request, result *upstream.Result, ttl int, requestID string) error {
	if result.Outcome == upstream.OutcomeHTTPError {
		body := types.NewUpstreamErrorBody(result.Status, truncateRunes(result.Body, MaxEchoedUpstreamBody), requestID)
		w.Header().Set("Cache-Control", "no-store")
		return WriteJSON(w, result.Status, body)
	}

	payload := []byte(result.Body)
	if !result.ValidJSON {
		wrapped, err := json.Marshal(rawEnvelope{Raw: result.Body})
		if err != nil {
			return fmt.Errorf("failed to wrap upstream body: %w", err)
		}
		payload = wrapped
	}

	etag := ComputeETag(payload)
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", ttl))
	w.Header().Set("ETag", etag)

	if etagMatches(r.Header.Get("If-None-Match"), etag) {
		w.WriteHeader(http.StatusNotModified)
		return nil
	}

	w.WriteHeader(result.Status)
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("failed to write response body: %w", err)
	}
	return nil
}

// rawEnvelope wraps non-JSON upstream text. Deliberately without a
// correlation id field: success bodies stay upstream-shaped.
type rawEnvelope struct {
	Raw string `json:"raw"`
}

// ComputeETag returns the strong ETag for a response body: the double-quoted
// lowercase hex SHA-256 digest of the exact bytes to be written.
func ComputeETag(body []byte) string {
	sum := sha256.Sum256(body)
	return `"` + hex.EncodeToString(sum[:]) + `"`
}

// etagMatches reports whether an If-None-Match header names the ETag among
// its comma-separated values. Weak validator prefixes compare equal to their
// strong form.
func etagMatches(header, etag string) bool {
	if header == "" {
		return false
	}
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		candidate = strings.TrimPrefix(candidate, "W/")
		if candidate == etag {
			return true
		}
	}
	return false
}

// truncateRunes returns at most max runes of s.
func truncateRunes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}
