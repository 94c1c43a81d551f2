package types

import (
	"encoding/json"
	"fmt"
)

// InsightsRequest is the inbound body for the insights endpoint.
type InsightsRequest struct {
	// APIKey is the shared secret the caller presents.
	APIKey string `json:"apiKey"`

	// CustomerID identifies the customer whose orders are aggregated.
	// Callers may send it as a JSON string or number.
	CustomerID FlexID `json:"customerId"`
}

// FlexID is an identifier that accepts both JSON strings and JSON numbers
// on the wire. Analytics sandboxes frequently emit numeric customer IDs
// without quoting them.
type FlexID string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("customerId must be a string or number: %w", err)
	}
	*f = FlexID(n.String())
	return nil
}

// String returns the identifier as a plain string.
func (f FlexID) String() string {
	return string(f)
}
