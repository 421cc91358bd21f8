package tracing

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Span attribute helpers.
//
// Standard attribute keys follow OpenTelemetry semantic conventions
// (http.*, rpc.*). Custom attribute keys use the "perch.*" namespace.

// Common attribute keys used throughout the bridge
const (
	// Request attributes
	AttrRequestID = "perch.request_id"
	AttrClientKey = "perch.client_key"

	// Upstream call attributes
	AttrRPCMethod      = "perch.rpc.method"
	AttrRPCID          = "perch.rpc.id"
	AttrOutcome        = "perch.outcome"
	AttrUpstreamStatus = "perch.upstream.status"

	// Cache attributes
	AttrCacheHit = "perch.cache.hit"
)

// SetRequestAttributes sets the correlation id on a server span.
//
// Example:
//
//	SetRequestAttributes(span, "9f86d081884c7d65")
func SetRequestAttributes(span trace.Span, requestID string) {
	if requestID != "" {
		span.SetAttributes(attribute.String(AttrRequestID, requestID))
	}
}

// SetUpstreamAttributes sets JSON-RPC call attributes on a client span.
//
// Example:
//
//	SetUpstreamAttributes(span, "tools/call", rpcID)
func SetUpstreamAttributes(span trace.Span, method, rpcID string) {
	span.SetAttributes(
		attribute.String(AttrRPCMethod, method),
		attribute.String(AttrRPCID, rpcID),
	)
}

// SetOutcomeAttribute records the outcome classification of an upstream call.
//
// Example:
//
//	SetOutcomeAttribute(span, "timeout")
func SetOutcomeAttribute(span trace.Span, outcome string) {
	span.SetAttributes(attribute.String(AttrOutcome, outcome))
}

// SetUpstreamStatusAttribute records the upstream HTTP status code.
func SetUpstreamStatusAttribute(span trace.Span, status int) {
	span.SetAttributes(attribute.Int(AttrUpstreamStatus, status))
}

// SetCacheHitAttribute records whether a conditional request was answered
// from the client cache with 304.
func SetCacheHitAttribute(span trace.Span, hit bool) {
	span.SetAttributes(attribute.Bool(AttrCacheHit, hit))
}
