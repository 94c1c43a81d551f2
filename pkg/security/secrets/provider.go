// Package secrets resolves secret-valued configuration fields from
// external sources.
//
// Config fields such as the shared secret and the upstream access token
// may hold either a literal value or a reference of the form "env:VAR",
// which is resolved at startup. Secrets are resolved once; the resolved
// configuration is immutable for the process lifetime.
package secrets

import "context"

// Provider retrieves secrets from a backend.
type Provider interface {
	// GetSecret retrieves a secret by name.
	// Returns an error if the secret is not found or cannot be retrieved.
	GetSecret(ctx context.Context, name string) (string, error)

	// Provider returns the provider name (currently only "env").
	Provider() string
}
