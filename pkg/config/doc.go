// Package config provides configuration management for the bridge.
//
// This package handles loading, validating, and watching configuration from
// YAML files with environment variable overrides. It provides a type-safe
// configuration system with validation and sensible defaults.
//
// # Configuration Loading
//
// Configuration can be loaded in two ways:
//
//  1. From a YAML file only:
//     cfg, err := config.LoadConfig("config.yaml")
//
//  2. From a YAML file with environment variable overrides:
//     cfg, err := config.LoadConfigWithEnvOverrides("config.yaml")
//
// The second form also tolerates a missing file: defaults plus environment
// overrides produce a runnable configuration as long as the upstream URL is
// set.
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention PERCH_SECTION_FIELD.
// For example:
//
//   - PERCH_SERVER_LISTEN_ADDRESS overrides server.listen_address
//   - PERCH_UPSTREAM_URL overrides upstream.url
//   - PERCH_RATELIMIT_LIMIT overrides ratelimit.limit
//   - PERCH_TELEMETRY_LOGGING_LEVEL overrides telemetry.logging.level
//
// Environment variables always take precedence over file-based configuration.
// Note that PERCH_UPSTREAM_TOKEN sets the static token in the upstream
// section, while PERCH_SECRET_UPSTREAM_TOKEN feeds the secret provider chain;
// the static token wins when both are set.
//
// # Configuration Precedence
//
// Configuration values are applied in the following order (later overrides
// earlier):
//
//  1. Default values (defined in defaults.go)
//  2. Values from YAML file
//  3. Environment variable overrides
//  4. Validation (fails fast if invalid)
//
// # Hot Reload
//
// When reload.enabled is set, a Watcher observes the configuration file and
// invokes a callback after each debounced change. Callers decide which
// changes are safe to apply at runtime; the bridge applies the log level
// and the rate limit settings and ignores the rest until restart.
//
// # Validation
//
// All configuration is validated during loading. Validation errors include
// field paths and messages:
//
//	configuration validation failed with 2 errors:
//	  - upstream.url: upstream URL is required
//	  - ratelimit.store: unknown store "disk": must be 'memory' or 'redis'
//
// # Example Configuration
//
// Here is a minimal configuration file:
//
//	server:
//	  listen_address: "127.0.0.1:8080"
//
//	upstream:
//	  url: "https://mcp.example.com/rpc"
//
//	telemetry:
//	  logging:
//	    level: "info"
//	    format: "json"
package config
