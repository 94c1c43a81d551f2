package providers

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestUpstreamErrorMessage(t *testing.T) {
	t.Run("status error", func(t *testing.T) {
		err := &UpstreamError{Provider: "shopify", StatusCode: 404, Body: `{"errors":"Not Found"}`}
		msg := err.Error()
		if !strings.Contains(msg, "404") {
			t.Errorf("Error() = %q, want status code mentioned", msg)
		}
		if strings.Contains(msg, "Not Found") {
			t.Errorf("Error() = %q, must not include the upstream body", msg)
		}
	})

	t.Run("network error", func(t *testing.T) {
		cause := errors.New("dial tcp: connection refused")
		err := &UpstreamError{Provider: "shopify", Cause: cause}
		if !strings.Contains(err.Error(), "connection refused") {
			t.Errorf("Error() = %q, want the cause mentioned", err.Error())
		}
	})
}

func TestErrorUnwrapping(t *testing.T) {
	cause := errors.New("root cause")

	t.Run("upstream error", func(t *testing.T) {
		wrapped := fmt.Errorf("listing orders: %w", &UpstreamError{Provider: "shopify", Cause: cause})

		var upErr *UpstreamError
		if !errors.As(wrapped, &upErr) {
			t.Fatal("errors.As failed to find *UpstreamError in chain")
		}
		if !errors.Is(wrapped, cause) {
			t.Error("errors.Is failed to reach the cause through Unwrap")
		}
	})

	t.Run("parse error", func(t *testing.T) {
		wrapped := fmt.Errorf("decoding: %w", &ParseError{Provider: "shopify", Cause: cause})

		var parseErr *ParseError
		if !errors.As(wrapped, &parseErr) {
			t.Fatal("errors.As failed to find *ParseError in chain")
		}
		if !errors.Is(wrapped, cause) {
			t.Error("errors.Is failed to reach the cause through Unwrap")
		}
	})
}

func TestConfigErrorMessage(t *testing.T) {
	err := &ConfigError{Provider: "shopify", Field: "access_token", Message: "upstream access token is not configured"}
	msg := err.Error()
	if !strings.Contains(msg, "shopify") || !strings.Contains(msg, "access_token") {
		t.Errorf("Error() = %q, want provider and field named", msg)
	}
}
