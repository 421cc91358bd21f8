// Package secrets resolves credentials from pluggable sources.
package secrets

import "context"

// Provider retrieves secrets from a backend.
//
// Implementations cover environment variables and mounted secret files.
// Providers are combined with priority-based fallback through a Chain.
// Lookups are performed fresh on every call: the upstream credential is
// checked per request, so rotation takes effect without a restart.
type Provider interface {
	// GetSecret retrieves a secret by name.
	// Returns an error if the secret is not found or cannot be read.
	GetSecret(ctx context.Context, name string) (string, error)

	// Provider returns the provider name (env, file).
	Provider() string

	// Supports indicates if this provider can serve the given secret
	// name. Used to decide which provider to try when several are
	// configured.
	Supports(name string) bool
}
