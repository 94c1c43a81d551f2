// Package auth validates the shared secret that callers present with each
// request.
//
// A single static secret is shared between the analytics sandbox and this
// proxy. Comparison is constant time so the secret cannot be recovered
// through timing differences.
package auth

import (
	"crypto/subtle"
	"errors"
)

// Validation errors. The caller-visible classification is decided by the
// proxy layer; these errors carry no secret material.
var (
	// ErrNotConfigured indicates the server has no shared secret
	// configured. This is an operator problem, not a caller problem.
	ErrNotConfigured = errors.New("shared secret is not configured")

	// ErrInvalidSecret indicates the presented secret is missing or does
	// not match the configured one.
	ErrInvalidSecret = errors.New("invalid shared secret")
)

// SecretValidator validates presented secrets against the configured
// shared secret. It is immutable and safe for concurrent use.
type SecretValidator struct {
	secret []byte
}

// NewSecretValidator creates a validator for the given shared secret.
// An empty secret produces a validator that rejects every request with
// ErrNotConfigured.
func NewSecretValidator(secret string) *SecretValidator {
	return &SecretValidator{secret: []byte(secret)}
}

// Configured reports whether a shared secret is set.
func (v *SecretValidator) Configured() bool {
	return len(v.secret) > 0
}

// Validate checks the presented secret in constant time.
func (v *SecretValidator) Validate(presented string) error {
	if !v.Configured() {
		return ErrNotConfigured
	}
	if subtle.ConstantTimeCompare(v.secret, []byte(presented)) != 1 {
		return ErrInvalidSecret
	}
	return nil
}
