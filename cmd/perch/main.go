// Perch is an HTTP bridge for Model Context Protocol tool servers.
//
// It exposes a small read-only HTTP surface and translates each request
// into a single JSON-RPC 2.0 call against the configured upstream:
//   - GET /tools lists the upstream tool catalog
//   - GET /search runs the post search tool
//   - GET /health reports liveness
//
// Every request is rate limited per client, responses carry strong ETags
// for client-side caching, and the upstream bearer token is resolved
// through a secrets chain on every call so rotation needs no restart.
//
// Usage:
//
//	# Start server with default configuration
//	perch run
//
//	# Start with custom configuration file
//	perch run --config /etc/perch/perch.yaml
//
//	# Validate a configuration file
//	perch validate --config /etc/perch/perch.yaml
//
//	# Show version information
//	perch version
package main

func main() {
	Execute()
}
