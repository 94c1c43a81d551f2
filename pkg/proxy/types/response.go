package types

// InsightsResponse is the success envelope.
type InsightsResponse struct {
	// Success is always true on this variant.
	Success bool `json:"success"`

	// CustomerStatus is the derived classification label.
	CustomerStatus string `json:"customerStatus"`

	// OrderCount is the number of orders found for the customer.
	OrderCount int `json:"orderCount"`

	// LifetimeValue is the decimal sum of all order totals, rendered
	// with exactly two fractional digits.
	LifetimeValue string `json:"lifetimeValue"`
}

// ErrorResponse is the failure envelope. The message is always one of the
// generic classifications; upstream detail, secrets, and stack traces stay
// in the server logs.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is the liveness probe body.
type HealthResponse struct {
	OK      bool   `json:"ok"`
	Service string `json:"service"`

	// TS is the current time in epoch milliseconds.
	TS int64 `json:"ts"`
}
