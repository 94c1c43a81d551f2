package proxy

import (
	"errors"
	"net/http"

	"mercator-hq/ganymede/pkg/providers"
	"mercator-hq/ganymede/pkg/security/auth"
)

// Generic caller-visible messages. These never carry secrets, upstream
// bodies, or internal detail.
const (
	msgConfiguration = "Server configuration error"
	msgUnauthorized  = "Unauthorized"
	msgBadRequest    = "Invalid request: customerId is required"
	msgMalformed     = "Invalid request body"
	msgUpstream      = "Failed to retrieve order data"
	msgInternal      = "An internal error occurred"
)

// Classify maps a pipeline error to the caller-visible HTTP status and
// message.
//
// Classification (first match wins):
//   - shared secret unconfigured, provider misconfigured → 500
//   - apiKey missing or mismatched → 401
//   - body unparsable → 400
//   - customerId missing → 400
//   - upstream non-success, network failure, malformed response → 502
//   - anything else → 500
func Classify(err error) (int, string) {
	var configErr *providers.ConfigError
	var upstreamErr *providers.UpstreamError
	var parseErr *providers.ParseError

	switch {
	case errors.Is(err, auth.ErrNotConfigured):
		return http.StatusInternalServerError, msgConfiguration

	case errors.Is(err, auth.ErrInvalidSecret):
		return http.StatusUnauthorized, msgUnauthorized

	case errors.Is(err, ErrMalformedBody):
		return http.StatusBadRequest, msgMalformed

	case errors.Is(err, ErrMissingCustomerID):
		return http.StatusBadRequest, msgBadRequest

	case errors.As(err, &configErr):
		return http.StatusInternalServerError, msgConfiguration

	case errors.As(err, &upstreamErr), errors.As(err, &parseErr):
		// The caller cannot distinguish a failed upstream exchange
		// from a malformed upstream response; both are a bad gateway.
		return http.StatusBadGateway, msgUpstream

	default:
		return http.StatusInternalServerError, msgInternal
	}
}
