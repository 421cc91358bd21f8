package config

import "time"

// Config is the root configuration structure for the bridge. It contains all
// configuration sections for the HTTP server, the upstream MCP endpoint,
// rate limiting, telemetry, secret resolution, and hot reload.
type Config struct {
	// Server contains HTTP server configuration including listen address,
	// timeouts, and TLS settings.
	Server ServerConfig `yaml:"server"`

	// Upstream contains configuration for the MCP server the bridge
	// forwards to.
	Upstream UpstreamConfig `yaml:"upstream"`

	// RateLimit contains configuration for per-client request limiting.
	RateLimit RateLimitConfig `yaml:"ratelimit"`

	// Telemetry contains configuration for observability including logging,
	// metrics, and distributed tracing.
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Secrets contains configuration for the secret provider chain used to
	// resolve the upstream bearer token.
	Secrets SecretsConfig `yaml:"secrets"`

	// Reload contains configuration for config file hot reload.
	Reload ReloadConfig `yaml:"reload"`
}

// ServerConfig contains configuration for the HTTP server.
type ServerConfig struct {
	// ListenAddress is the address and port for the server to listen on.
	// Format: "host:port" (e.g., "127.0.0.1:8080", "0.0.0.0:8080").
	// Default: "127.0.0.1:8080"
	ListenAddress string `yaml:"listen_address"`

	// ReadTimeout is the maximum duration for reading the entire request,
	// including the body. A zero or negative value means no timeout.
	// Default: 30s
	ReadTimeout time.Duration `yaml:"read_timeout"`

	// WriteTimeout is the maximum duration before timing out writes of the
	// response. It must exceed the upstream call timeout or slow upstream
	// responses are cut off mid-write.
	// Default: 30s
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// IdleTimeout is the maximum amount of time to wait for the next request
	// when keep-alives are enabled. If IdleTimeout is zero, ReadTimeout is used.
	// Default: 120s
	IdleTimeout time.Duration `yaml:"idle_timeout"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown.
	// If requests are still in-flight after this timeout, the server will
	// force shutdown.
	// Default: 30s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// MaxHeaderBytes controls the maximum number of bytes the server will
	// read parsing the request header's keys and values, including the
	// request line.
	// Default: 1048576 (1MB)
	MaxHeaderBytes int `yaml:"max_header_bytes"`

	// TLS contains TLS configuration for the server.
	TLS TLSConfig `yaml:"tls"`
}

// TLSConfig contains TLS configuration.
type TLSConfig struct {
	// Enabled controls whether TLS is enabled for the server.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// CertFile is the path to the TLS certificate file.
	// Required when Enabled is true.
	CertFile string `yaml:"cert_file"`

	// KeyFile is the path to the TLS private key file.
	// Required when Enabled is true.
	KeyFile string `yaml:"key_file"`

	// MinVersion is the minimum TLS version to accept.
	// Options: "1.2", "1.3"
	// Default: "1.3"
	MinVersion string `yaml:"min_version"`
}

// UpstreamConfig contains configuration for the upstream MCP server.
type UpstreamConfig struct {
	// URL is the JSON-RPC endpoint all upstream calls are POSTed to.
	// Example: "https://mcp.example.com/rpc"
	// Required.
	URL string `yaml:"url"`

	// Token is a static bearer token for the upstream. When empty, the
	// secret provider chain is consulted on every request instead, which
	// lets rotated credentials take effect without a restart.
	Token string `yaml:"token"`

	// Timeout is the per-call deadline for upstream requests.
	// Default: 10s
	Timeout time.Duration `yaml:"timeout"`

	// MaxIdleConns is the connection pool size across all hosts.
	// Default: 100
	MaxIdleConns int `yaml:"max_idle_conns"`

	// MaxIdleConnsPerHost is the connection pool size per host.
	// Default: 10
	MaxIdleConnsPerHost int `yaml:"max_idle_conns_per_host"`

	// IdleConnTimeout is how long an idle connection is kept in the pool.
	// Default: 90s
	IdleConnTimeout time.Duration `yaml:"idle_conn_timeout"`
}

// RateLimitConfig contains configuration for per-client rate limiting.
type RateLimitConfig struct {
	// Limit is the maximum number of requests per client within the window.
	// Default: 60
	Limit int `yaml:"limit"`

	// Window is the sliding window duration.
	// Default: 60s
	Window time.Duration `yaml:"window"`

	// Store selects the limiter backend.
	// Options: "memory" (single instance), "redis" (shared across instances)
	// Default: "memory"
	Store string `yaml:"store"`

	// MaxClients caps the number of clients tracked by the memory store.
	// When a new client would exceed the cap, the longest-idle client is
	// evicted. Has no effect on the redis store.
	// Default: 10000
	MaxClients int `yaml:"max_clients"`

	// SweepSchedule is the cron schedule for evicting idle clients from the
	// memory store. Standard five-field cron syntax.
	// Default: "* * * * *" (every minute)
	SweepSchedule string `yaml:"sweep_schedule"`

	// Redis contains connection settings for the redis store.
	// Only used when Store is "redis".
	Redis RedisConfig `yaml:"redis"`
}

// RedisConfig contains Redis connection configuration.
type RedisConfig struct {
	// Address is the Redis server address.
	// Default: "127.0.0.1:6379"
	Address string `yaml:"address"`

	// Password is the Redis server password. Empty means no auth.
	Password string `yaml:"password"`

	// DB is the Redis database number.
	// Default: 0
	DB int `yaml:"db"`
}

// TelemetryConfig contains configuration for observability.
type TelemetryConfig struct {
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains metrics collection configuration.
	Metrics MetricsConfig `yaml:"metrics"`

	// Tracing contains distributed tracing configuration.
	Tracing TracingConfig `yaml:"tracing"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level to emit.
	// Options: "debug", "info", "warn", "error"
	// Default: "info"
	Level string `yaml:"level"`

	// Format controls the log output format.
	// Options: "json", "text"
	// Default: "json"
	Format string `yaml:"format"`

	// AddSource includes file and line number in log entries.
	// Default: false
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig contains metrics collection configuration.
type MetricsConfig struct {
	// Disabled turns off metric collection and the metrics endpoint.
	// Default: false
	Disabled bool `yaml:"disabled"`

	// Path is the HTTP path for the Prometheus metrics endpoint.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// Namespace is the metric name prefix.
	// Default: "perch"
	Namespace string `yaml:"namespace"`

	// RequestDurationBuckets defines histogram buckets for inbound request
	// duration in seconds.
	// Default: [0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0]
	RequestDurationBuckets []float64 `yaml:"request_duration_buckets"`

	// UpstreamDurationBuckets defines histogram buckets for upstream call
	// duration in seconds.
	// Default: [0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0]
	UpstreamDurationBuckets []float64 `yaml:"upstream_duration_buckets"`
}

// TracingConfig contains distributed tracing configuration.
type TracingConfig struct {
	// Enabled controls whether distributed tracing is active.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Sampler determines the sampling strategy.
	// Options: "always", "never", "ratio"
	// Default: "ratio"
	Sampler string `yaml:"sampler"`

	// SampleRatio is the fraction of traces to sample (0.0 to 1.0).
	// Only used when Sampler is "ratio".
	// Default: 0.1 (10%)
	SampleRatio float64 `yaml:"sample_ratio"`

	// Endpoint is the OTLP collector endpoint.
	// Example: "localhost:4317"
	// Required when Enabled is true.
	Endpoint string `yaml:"endpoint"`

	// ServiceName is the service name in traces.
	// Default: "perch"
	ServiceName string `yaml:"service_name"`

	// OTLP contains OTLP exporter specific configuration.
	OTLP OTLPConfig `yaml:"otlp"`
}

// OTLPConfig contains OTLP exporter configuration.
type OTLPConfig struct {
	// Insecure disables TLS for the OTLP connection. Set to true for
	// collectors listening on plaintext gRPC.
	// Default: false
	Insecure bool `yaml:"insecure"`

	// Timeout is the timeout for OTLP exports.
	// Default: 10s
	Timeout time.Duration `yaml:"timeout"`
}

// SecretsConfig contains secret resolution configuration.
type SecretsConfig struct {
	// EnvPrefix is the prefix for environment variable secrets. Secret
	// names are uppercased with hyphens replaced by underscores, so the
	// secret "upstream-token" becomes PERCH_SECRET_UPSTREAM_TOKEN.
	// Default: "PERCH_SECRET_"
	EnvPrefix string `yaml:"env_prefix"`

	// FileDir is a directory of secret files, one secret per file, named
	// after the secret. Files must be mode 0600 or 0400. When set, file
	// secrets take precedence over environment secrets. Empty disables the
	// file provider.
	FileDir string `yaml:"file_dir"`
}

// ReloadConfig contains config hot reload configuration.
type ReloadConfig struct {
	// Enabled controls whether the config file is watched for changes.
	// On change, the safe subset (log level, rate limit, window) is
	// applied at runtime; other fields require a restart.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Debounce is the quiet period after a file event before the reload
	// fires. Editors often produce bursts of write events for one save.
	// Default: 200ms
	Debounce time.Duration `yaml:"debounce"`
}
