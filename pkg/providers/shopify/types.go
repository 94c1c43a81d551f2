package shopify

import "encoding/json"

// Order is a single order record from the admin API order listing.
// Only the fields the aggregation needs are decoded; everything else in
// the upstream payload is ignored.
type Order struct {
	// ID is the upstream order identifier.
	ID int64 `json:"id"`

	// TotalPrice is the order total as a decimal string, e.g. "10.50".
	// The admin API represents monetary amounts as text on the wire.
	TotalPrice string `json:"total_price"`

	// FinancialStatus is the payment lifecycle state ("paid",
	// "refunded", ...). Informational only; it does not affect
	// aggregation.
	FinancialStatus string `json:"financial_status"`

	// CreatedAt is the order creation timestamp in RFC 3339 format.
	CreatedAt string `json:"created_at"`
}

// ordersEnvelope is the wrapper object the admin API returns from the
// order-listing resource: {"orders": [...]}.
//
// Orders is kept as raw JSON so a missing, null, or wrongly typed field
// can be treated as an empty collection while an unparsable body remains
// a malformed response.
type ordersEnvelope struct {
	Orders json.RawMessage `json:"orders"`
}
