/*
Package secrets resolves upstream credentials from pluggable sources.

# Overview

The bridge authenticates to its upstream MCP server with a bearer token. That
token can live in configuration, in an environment variable, or in a mounted
file (Kubernetes-style). This package provides the environment and file
providers plus a priority-ordered chain that tries them in turn.

Secrets are resolved fresh on every call. There is no cache: a rotated token
takes effect on the next request that needs it, without a process restart.

# Providers

Each provider implements the Provider interface:

  - EnvProvider: reads secrets from environment variables, mapping the secret
    name "upstream-token" to a variable such as PERCH_SECRET_UPSTREAM_TOKEN.
  - FileProvider: reads one secret per file from a directory, refusing files
    whose permissions are looser than 0600 or 0400.

# Basic Usage

Create a chain with both providers:

	envProvider := secrets.NewEnvProvider("PERCH_SECRET_")
	fileProvider, err := secrets.NewFileProvider("/var/run/secrets/perch")
	if err != nil {
		log.Fatal(err)
	}

	chain := secrets.NewChain(envProvider, fileProvider)

	token, err := chain.GetSecret(ctx, "upstream-token")
	if err != nil {
		// No provider had the secret.
	}

# Resolution Order

The chain consults providers in the order they were given. A provider that
does not support the secret is skipped; a provider that supports it but fails
is logged at debug level and the chain continues. The first value wins.
*/
package secrets
