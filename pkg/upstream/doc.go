/*
Package upstream is the JSON-RPC 2.0 client for the MCP server behind the
bridge.

# Overview

The bridge exposes two read paths, a tool catalog and a post search, and both
map to exactly one upstream call:

  - tools/list with an empty params object
  - tools/call invoking the get_twitter_posts tool with {query, limit}

Every call POSTs to one fixed URL with a bearer token, carries a freshly
generated UUID as its JSON-RPC id, and is bounded by a 10 second context
deadline. There are no retries: a failed call surfaces to the handler, which
translates it into an honest 502 or 504 for the client.

# Outcomes

A call ends in one of five outcomes:

  - success: 2xx response, full body read; ValidJSON reports whether the body
    parses as JSON (a non-JSON 2xx body is still a success)
  - http_error: non-2xx response with full body read
  - timeout: the 10 second deadline expired during the round trip or read
  - transport_error: dial failure, reset, or interrupted read
  - credential_error: no bearer token available; detected before any network
    I/O

success and http_error come back as a Result; the rest come back as typed
errors (TimeoutError, TransportError, CredentialError) classified by
ClassifyError.

# Credential Resolution

The bearer token resolves per call: a static config token wins, otherwise
the secrets chain is asked for "upstream-token". Nothing is cached, so a
rotated token applies to the very next request.

# Usage

	client := upstream.NewClient(upstream.Config{
		URL: "https://mcp.example.com/rpc",
	}, secretsChain)

	result, err := client.SearchPosts(ctx, "golang", 20)
	if err != nil {
		// TimeoutError, TransportError, or CredentialError.
	}
*/
package upstream
