// Package mcptest provides a mock MCP JSON-RPC server for exercising the
// upstream client and the bridge handlers in tests.
package mcptest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"perch-hq/perch/pkg/upstream"
)

// Server is a mock MCP endpoint. It records every request it receives and
// answers with a configurable response.
type Server struct {
	server   *httptest.Server
	mu       sync.Mutex
	response Response
	requests []RecordedRequest
}

// Response configures what the mock answers with.
type Response struct {
	// StatusCode defaults to 200.
	StatusCode int

	// Body is written verbatim (string or []byte) or JSON-encoded.
	// Ignored when RPCResult or RPCError is set.
	Body interface{}

	// RPCResult, when set, is wrapped in a JSON-RPC envelope that echoes
	// the id of the call being answered.
	RPCResult interface{}

	// RPCError, when set, is wrapped in a JSON-RPC error envelope.
	RPCError *upstream.RPCError

	// Delay postpones the response, for timeout tests.
	Delay time.Duration

	// Headers are set on the response.
	Headers map[string]string
}

// RecordedRequest captures one request as the mock saw it.
type RecordedRequest struct {
	// HTTPMethod is the HTTP method used.
	HTTPMethod string

	// Authorization is the raw Authorization header.
	Authorization string

	// ContentType is the Content-Type header.
	ContentType string

	// RPC is the decoded JSON-RPC envelope, zero-valued when the body did
	// not decode.
	RPC RPCCall

	// RawBody is the request body as received.
	RawBody []byte
}

// RPCCall is the request envelope shape the mock decodes into. Params stays
// raw so tests can assert its exact JSON.
type RPCCall struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      string          `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
}

// NewServer starts a mock MCP server answering 200 with an empty JSON-RPC
// result until configured otherwise.
func NewServer() *Server {
	s := &Server{
		response: Response{RPCResult: map[string]interface{}{}},
	}
	s.server = httptest.NewServer(http.HandlerFunc(s.handler))
	return s
}

// URL returns the mock server's base URL.
func (s *Server) URL() string {
	return s.server.URL
}

// Close shuts the mock server down.
func (s *Server) Close() {
	s.server.Close()
}

// SetResponse replaces the configured response.
func (s *Server) SetResponse(response Response) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.response = response
}

// Requests returns a copy of everything recorded so far.
func (s *Server) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]RecordedRequest, len(s.requests))
	copy(out, s.requests)
	return out
}

// RequestCount returns how many requests the mock has received.
func (s *Server) RequestCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

// Reset clears the recorded requests.
func (s *Server) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = nil
}

func (s *Server) handler(w http.ResponseWriter, r *http.Request) {
	recorded := RecordedRequest{
		HTTPMethod:    r.Method,
		Authorization: r.Header.Get("Authorization"),
		ContentType:   r.Header.Get("Content-Type"),
	}

	body, _ := io.ReadAll(r.Body)
	recorded.RawBody = body
	_ = json.Unmarshal(body, &recorded.RPC)

	s.mu.Lock()
	s.requests = append(s.requests, recorded)
	response := s.response
	s.mu.Unlock()

	if response.Delay > 0 {
		time.Sleep(response.Delay)
	}

	for key, value := range response.Headers {
		w.Header().Set(key, value)
	}

	status := response.StatusCode
	if status == 0 {
		status = http.StatusOK
	}

	if response.RPCResult != nil || response.RPCError != nil {
		envelope := upstream.Response{
			JSONRPC: upstream.Version,
			ID:      recorded.RPC.ID,
			Error:   response.RPCError,
		}
		if response.RPCResult != nil {
			raw, _ := json.Marshal(response.RPCResult)
			envelope.Result = raw
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(envelope)
		return
	}

	w.WriteHeader(status)
	switch v := response.Body.(type) {
	case nil:
	case string:
		_, _ = w.Write([]byte(v))
	case []byte:
		_, _ = w.Write(v)
	default:
		_ = json.NewEncoder(w).Encode(v)
	}
}

// ToolCatalog returns a canned tools/list result with the post search tool.
func ToolCatalog() map[string]interface{} {
	return map[string]interface{}{
		"tools": []map[string]interface{}{
			{
				"name":        upstream.ToolName,
				"description": "Search recent posts matching a query",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"query": map[string]interface{}{"type": "string"},
						"limit": map[string]interface{}{"type": "integer"},
					},
					"required": []string{"query"},
				},
			},
		},
	}
}

// SearchResult returns a canned tools/call result carrying a few posts.
func SearchResult(query string) map[string]interface{} {
	return map[string]interface{}{
		"content": []map[string]interface{}{
			{
				"type": "text",
				"text": "results for " + query,
			},
		},
		"isError": false,
	}
}

// MethodNotFound returns a JSON-RPC method-not-found error.
func MethodNotFound(method string) *upstream.RPCError {
	return &upstream.RPCError{
		Code:    upstream.CodeMethodNotFound,
		Message: "method not found: " + method,
	}
}

// ServerError returns a 500 response with a plain error body.
func ServerError() Response {
	return Response{
		StatusCode: http.StatusInternalServerError,
		Body:       map[string]interface{}{"error": "internal server error"},
	}
}

// AuthError returns a 401 response.
func AuthError() Response {
	return Response{
		StatusCode: http.StatusUnauthorized,
		Body:       map[string]interface{}{"error": "invalid token"},
	}
}

// SlowResponse returns a 200 response delayed long enough to trip a caller
// with a shorter deadline.
func SlowResponse(delay time.Duration) Response {
	return Response{
		StatusCode: http.StatusOK,
		RPCResult:  map[string]interface{}{},
		Delay:      delay,
	}
}
