package secrets

import (
	"context"
	"fmt"
	"log/slog"
)

// Chain resolves secrets by trying a list of providers in priority order.
// The first provider that supports the secret and returns a value wins.
//
// The chain never caches values. Every GetSecret call goes back to the
// underlying providers, so rotated credentials are picked up on the next
// request that needs them.
type Chain struct {
	providers []Provider
	logger    *slog.Logger
}

// NewChain creates a secret resolution chain. Providers are consulted in the
// order given.
func NewChain(providers ...Provider) *Chain {
	return &Chain{
		providers: providers,
		logger:    slog.With("component", "secrets"),
	}
}

// GetSecret resolves a secret through the provider chain. Providers that do
// not support the secret are skipped; providers that fail are logged and the
// chain moves on. If no provider yields a value an error is returned.
func (c *Chain) GetSecret(ctx context.Context, name string) (string, error) {
	if len(c.providers) == 0 {
		return "", fmt.Errorf("no secret providers configured")
	}

	var lastErr error
	for _, provider := range c.providers {
		if !provider.Supports(name) {
			continue
		}

		value, err := provider.GetSecret(ctx, name)
		if err != nil {
			c.logger.DebugContext(ctx, "secret provider miss",
				"provider", provider.Provider(),
				"secret", name,
				"error", err,
			)
			lastErr = err
			continue
		}

		return value, nil
	}

	if lastErr != nil {
		return "", fmt.Errorf("secret %s not resolvable: %w", name, lastErr)
	}
	return "", fmt.Errorf("secret %s not supported by any provider", name)
}

// Providers returns the names of the configured providers in priority order.
func (c *Chain) Providers() []string {
	names := make([]string, 0, len(c.providers))
	for _, p := range c.providers {
		names = append(names, p.Provider())
	}
	return names
}
