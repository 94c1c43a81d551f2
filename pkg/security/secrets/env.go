package secrets

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// envRefPrefix marks a configuration value as an environment reference,
// e.g. "env:GANYMEDE_SHARED_SECRET".
const envRefPrefix = "env:"

// EnvProvider loads secrets from environment variables.
type EnvProvider struct{}

// NewEnvProvider creates a new environment variable secret provider.
func NewEnvProvider() *EnvProvider {
	return &EnvProvider{}
}

// GetSecret retrieves a secret from the named environment variable.
func (p *EnvProvider) GetSecret(ctx context.Context, name string) (string, error) {
	value := os.Getenv(name)
	if value == "" {
		return "", fmt.Errorf("secret not found in environment: %s", name)
	}
	return value, nil
}

// Provider returns the provider name.
func (p *EnvProvider) Provider() string {
	return "env"
}

// IsRef reports whether a configuration value is a secret reference
// rather than a literal value.
func IsRef(value string) bool {
	return strings.HasPrefix(value, envRefPrefix)
}

// Resolve returns the value itself when it is a literal, or the resolved
// secret when it is an "env:VAR" reference.
func Resolve(ctx context.Context, p Provider, value string) (string, error) {
	if !IsRef(value) {
		return value, nil
	}
	name := strings.TrimPrefix(value, envRefPrefix)
	if name == "" {
		return "", fmt.Errorf("empty secret reference")
	}
	return p.GetSecret(ctx, name)
}
