// Package handlers contains the per-path request handlers.
//
// Each handler composes the same pipeline: validate the query, make at most
// one upstream call, shape the response. Handlers receive the upstream
// client as a narrow interface so tests can substitute stubs, and optionally
// a recorder for upstream call metrics.
//
//   - HealthHandler: static liveness payload, no upstream call
//   - ToolsHandler: tool catalog via tools/list
//   - SearchHandler: post search via tools/call
//   - NotFoundHandler: the 404 envelope for unknown paths
//
// Method gating, rate limiting, correlation ids, and logging happen in the
// middleware chain before a handler runs; handlers can assume a GET request
// that is within its client's rate budget.
package handlers
