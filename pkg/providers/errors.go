// Package providers defines the error taxonomy shared by upstream platform
// adapters.
//
// Errors are classified so the proxy layer can map them onto caller-visible
// status codes without inspecting upstream detail: configuration problems
// are the operator's fault (500), everything that goes wrong on or past the
// wire to the upstream platform is a gateway problem (502).
package providers

import "fmt"

// ConfigError represents a provider configuration error, such as a missing
// access token or shop domain. It signals an operator problem, not a
// caller problem.
type ConfigError struct {
	// Provider is the name of the misconfigured provider
	Provider string

	// Field is the configuration field that is invalid
	Field string

	// Message describes the configuration error
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("provider %q configuration error for field %q: %s",
		e.Provider, e.Field, e.Message)
}

// UpstreamError represents a failed exchange with the upstream platform:
// a non-success HTTP status, a network-level failure, or a timeout. All
// three receive the same caller-visible classification.
type UpstreamError struct {
	// Provider is the name of the provider that returned the error
	Provider string

	// StatusCode is the upstream HTTP status (0 for network failures)
	StatusCode int

	// Body is the raw upstream error body, kept for server-side logging
	// only. It must never be returned to the caller.
	Body string

	// Cause is the underlying transport error (if any)
	Cause error
}

// Error implements the error interface.
func (e *UpstreamError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("provider %q upstream error (status %d)", e.Provider, e.StatusCode)
	}
	return fmt.Sprintf("provider %q upstream request failed: %v", e.Provider, e.Cause)
}

// Unwrap returns the underlying error for error chain support.
func (e *UpstreamError) Unwrap() error {
	return e.Cause
}

// ParseError represents a response parsing failure. This occurs when the
// upstream platform returns a body that is not valid JSON or lacks the
// expected shape.
type ParseError struct {
	// Provider is the name of the provider that returned the malformed
	// response
	Provider string

	// Cause is the underlying parse error
	Cause error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("provider %q response parse error: %v", e.Provider, e.Cause)
}

// Unwrap returns the underlying error for error chain support.
func (e *ParseError) Unwrap() error {
	return e.Cause
}
