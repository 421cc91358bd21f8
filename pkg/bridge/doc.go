// Package bridge implements the request mediation pipeline between the
// public HTTP surface and the upstream MCP server.
//
// Every inbound request flows through the same stages: parameter validation
// and normalization, one upstream JSON-RPC call, and uniform response
// shaping. This package owns the first and last stages; the middle one lives
// in pkg/upstream.
//
// # Architecture
//
//   - Params: per-endpoint query validation with defaults and clamping
//   - Respond: response construction (error envelopes, upstream echo,
//     ETag/conditional-GET handling)
//   - Handlers: per-path handlers composing the stages (subpackage)
//   - Middleware: cross-cutting request concerns (subpackage)
//   - Types: wire shapes for envelopes and status payloads (subpackage)
//
// # Validation
//
// Query parameters never error when coercible: integers parse via numeric
// string coercion truncating toward zero, fall back to their default when
// non-numeric or non-finite, and clamp to their documented range. Only a
// missing or oversized q on the search endpoint rejects a request, with a
// 400 before anything is sent upstream.
//
// # Response Shaping
//
// Successful upstream bodies pass through verbatim when they are valid JSON
// and are wrapped as {"raw": <text>} when they are not. Either way the body
// is cacheable: an ETag (double-quoted lowercase hex SHA-256 of the exact
// bytes written) plus Cache-Control: public with the request's clamped ttl.
// A request presenting a matching If-None-Match validator gets a bodyless
// 304 with the same cache headers.
//
// Everything else the bridge constructs itself: error envelopes
// {error, detail, requestId} and upstream error echoes
// {upstreamStatus, body, requestId}, all marked no-store.
package bridge
