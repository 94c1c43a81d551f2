package proxy

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"mercator-hq/ganymede/pkg/proxy/types"
)

// maxBodyBytes bounds the inbound request body. The expected body is a
// two-field JSON object; anything near this limit is garbage.
const maxBodyBytes = 1 << 20 // 1 MB

// Request validation errors.
var (
	// ErrMalformedBody indicates the body did not parse as the expected
	// JSON object.
	ErrMalformedBody = errors.New("request body is not a valid JSON object")

	// ErrMissingCustomerID indicates the customerId field is missing or
	// empty.
	ErrMissingCustomerID = errors.New("customerId is missing or empty")
)

// ParseInsightsRequest decodes and structurally validates the inbound
// request body. Authentication of the apiKey happens separately; this only
// confirms the body parses and carries a customer identifier.
func ParseInsightsRequest(r *http.Request) (*types.InsightsRequest, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}

	var req types.InsightsRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}

	return &req, nil
}
