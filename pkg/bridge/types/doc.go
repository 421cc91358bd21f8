// Package types defines the JSON error contract of the gateway.
//
// Every error the gateway constructs itself uses a single flat envelope:
//
//	{
//	  "error": "too_many_requests",
//	  "detail": "rate limit exceeded, retry later",
//	  "requestId": "9f86d081884c7d65"
//	}
//
// Successful pass-through responses are the upstream body verbatim and never
// carry this shape; the correlation id travels only in the X-Request-ID
// header for those.
//
// # Error Codes
//
// Each code maps to exactly one HTTP status:
//   - bad_request (400): invalid query parameters
//   - not_found (404): unknown path
//   - method_not_allowed (405): any non-GET method
//   - too_many_requests (429): rate limit exceeded
//   - bad_gateway (502): upstream connection or credential failure,
//     or an unexpected internal failure
//   - upstream_timeout (504): upstream deadline exceeded
//
// Upstream HTTP errors are a separate case: the upstream status is echoed
// and the body is {"upstreamStatus": ..., "body": ..., "requestId": ...}.
package types
