package upstream

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Version is the JSON-RPC protocol version spoken to the MCP server.
const Version = "2.0"

// Standard JSON-RPC 2.0 error codes.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
)

// Request is a JSON-RPC 2.0 request envelope.
type Request struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      string      `json:"id"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params"`
}

// Response is a JSON-RPC 2.0 response envelope. The bridge passes response
// bodies through as opaque text, so this type exists for callers that do
// want to decode them, and for test servers that produce them.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      string          `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *RPCError       `json:"error,omitempty"`
}

// RPCError is the error member of a JSON-RPC response.
type RPCError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Error implements the error interface.
func (e *RPCError) Error() string {
	return e.Message
}

// toolCallParams is the params object for a tools/call request.
type toolCallParams struct {
	Name      string          `json:"name"`
	Arguments searchArguments `json:"arguments"`
}

// searchArguments carries the arguments for the post search tool.
type searchArguments struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

// NewListToolsRequest builds a tools/list request with a fresh correlation
// id. The id is independent of the inbound HTTP request's id; the MCP server
// never sees bridge correlation ids.
func NewListToolsRequest() Request {
	return Request{
		JSONRPC: Version,
		ID:      uuid.New().String(),
		Method:  "tools/list",
		Params:  struct{}{},
	}
}

// NewSearchRequest builds a tools/call request invoking the post search tool
// with a fresh correlation id.
func NewSearchRequest(query string, limit int) Request {
	return Request{
		JSONRPC: Version,
		ID:      uuid.New().String(),
		Method:  "tools/call",
		Params: toolCallParams{
			Name: ToolName,
			Arguments: searchArguments{
				Query: query,
				Limit: limit,
			},
		},
	}
}
