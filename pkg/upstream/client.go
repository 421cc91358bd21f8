package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"perch-hq/perch/pkg/secrets"
	"perch-hq/perch/pkg/telemetry/tracing"
)

const (
	// DefaultTimeout bounds each upstream call via context cancellation.
	DefaultTimeout = 10 * time.Second

	// TokenSecretName is the secret consulted when no static token is
	// configured.
	TokenSecretName = "upstream-token"

	// ToolName is the MCP tool invoked for post search.
	ToolName = "get_twitter_posts"
)

// Config holds the upstream MCP server settings.
type Config struct {
	// URL is the single JSON-RPC endpoint all calls are POSTed to.
	URL string

	// Token is a static bearer token. When empty, the secrets chain is
	// consulted on every call instead.
	Token string

	// Timeout is the per-call deadline. Defaults to DefaultTimeout.
	Timeout time.Duration

	// Connection pool settings.
	MaxIdleConns        int
	MaxIdleConnsPerHost int
	IdleConnTimeout     time.Duration
}

func (c Config) withDefaults() Config {
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.MaxIdleConns <= 0 {
		c.MaxIdleConns = 100
	}
	if c.MaxIdleConnsPerHost <= 0 {
		c.MaxIdleConnsPerHost = 10
	}
	if c.IdleConnTimeout <= 0 {
		c.IdleConnTimeout = 90 * time.Second
	}
	return c
}

// Client performs single-shot JSON-RPC 2.0 calls against the MCP server.
// Each bridge request maps to exactly one upstream call: no retries, no
// fallback endpoints. Transient upstream failures surface to the caller so
// the bridge can answer honestly instead of masking them.
type Client struct {
	config  Config
	secrets *secrets.Chain
	client  *http.Client
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewClient creates an upstream client with a pooled transport. The secrets
// chain may be nil when a static token is configured.
func NewClient(cfg Config, chain *secrets.Chain) *Client {
	cfg = cfg.withDefaults()

	transport := &http.Transport{
		MaxIdleConns:        cfg.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.MaxIdleConnsPerHost,
		IdleConnTimeout:     cfg.IdleConnTimeout,
		ForceAttemptHTTP2:   true,
	}

	return &Client{
		config:  cfg,
		secrets: chain,
		// The deadline lives on the per-call context, not the client, so
		// that cancellation covers body reads as well as the round trip.
		client: &http.Client{Transport: transport},
		logger: slog.With("component", "upstream"),
		tracer: otel.Tracer("perch/upstream"),
	}
}

// Result is the terminal state of one upstream call that produced an HTTP
// response. Calls that fail before or during transport return an error
// instead.
type Result struct {
	// Outcome is OutcomeSuccess or OutcomeHTTPError.
	Outcome Outcome

	// Status is the upstream HTTP status code.
	Status int

	// Body is the full response body as text.
	Body string

	// ValidJSON reports whether Body parses as JSON. A 2xx body that does
	// not parse is still a success; the caller decides how to present it.
	ValidJSON bool
}

// ListTools fetches the upstream tool catalog via tools/list.
func (c *Client) ListTools(ctx context.Context) (*Result, error) {
	return c.call(ctx, NewListToolsRequest())
}

// SearchPosts invokes the post search tool via tools/call.
func (c *Client) SearchPosts(ctx context.Context, query string, limit int) (*Result, error) {
	return c.call(ctx, NewSearchRequest(query, limit))
}

func (c *Client) call(ctx context.Context, rpcReq Request) (*Result, error) {
	// Resolve the credential first so a misconfigured deployment fails
	// before any bytes leave the process.
	token, err := c.resolveToken(ctx)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(rpcReq)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	// The span opens before the request is built so the injected trace
	// context carries this call's span, not the server span.
	ctx, span := c.tracer.Start(ctx, rpcReq.Method, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	tracing.SetUpstreamAttributes(span, rpcReq.Method, rpcReq.ID)

	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.URL, bytes.NewReader(body))
	if err != nil {
		tracing.SetError(span, err)
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	tracing.Inject(ctx, req.Header)

	c.logger.DebugContext(ctx, "calling upstream",
		"method", rpcReq.Method,
		"rpc_id", rpcReq.ID,
	)

	resp, err := c.client.Do(req)
	if err != nil {
		err = c.classifyTransportFailure(ctx, err)
		tracing.SetOutcomeAttribute(span, string(ClassifyError(err)))
		tracing.SetError(span, err)
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		err = c.classifyTransportFailure(ctx, err)
		tracing.SetOutcomeAttribute(span, string(ClassifyError(err)))
		tracing.SetError(span, err)
		return nil, err
	}

	result := &Result{
		Status: resp.StatusCode,
		Body:   string(raw),
	}
	tracing.SetUpstreamStatusAttribute(span, resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		result.Outcome = OutcomeHTTPError
		tracing.SetOutcomeAttribute(span, string(OutcomeHTTPError))
		return result, nil
	}

	result.Outcome = OutcomeSuccess
	result.ValidJSON = json.Valid(raw)
	tracing.SetOutcomeAttribute(span, string(OutcomeSuccess))
	return result, nil
}

// classifyTransportFailure distinguishes a blown deadline from other
// transport failures. A timeout during the body read counts the same as a
// timeout during the round trip.
func (c *Client) classifyTransportFailure(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &TimeoutError{Timeout: c.config.Timeout}
	}
	return &TransportError{Cause: err}
}

// resolveToken picks the bearer token for a single call. A static config
// token wins; otherwise the secrets chain is consulted. Resolution runs on
// every call, never cached, so rotated credentials take effect immediately.
func (c *Client) resolveToken(ctx context.Context) (string, error) {
	if token := strings.TrimSpace(c.config.Token); token != "" {
		return token, nil
	}

	if c.secrets == nil {
		return "", &CredentialError{}
	}

	token, err := c.secrets.GetSecret(ctx, TokenSecretName)
	if err != nil {
		return "", &CredentialError{Cause: err}
	}
	if strings.TrimSpace(token) == "" {
		return "", &CredentialError{}
	}
	return token, nil
}
