package insights

import (
	"fmt"
	"strconv"
	"strings"

	"mercator-hq/ganymede/pkg/providers/shopify"
)

// Customer status labels derived from order count.
//
// The status is a function of order count alone; no other order attribute
// (recency, value, fulfillment state) affects it.
const (
	// StatusNoOrders is assigned when the customer has no orders.
	StatusNoOrders = "New - No Orders"

	// StatusFirstOrder is assigned when the customer has exactly one order.
	StatusFirstOrder = "New - First Order"

	// StatusReturning is assigned when the customer has two or more orders.
	StatusReturning = "Returning Customer"
)

// Result contains the derived metrics for a single customer.
// It is immutable after construction.
type Result struct {
	// OrderCount is the number of orders in the collection.
	OrderCount int

	// LifetimeCents is the exact sum of all order totals, in cents.
	// Negative upstream prices propagate arithmetically; no clamping
	// is performed.
	LifetimeCents int64

	// CustomerStatus is one of StatusNoOrders, StatusFirstOrder,
	// StatusReturning.
	CustomerStatus string
}

// LifetimeValue renders the lifetime value with exactly two fractional
// digits, e.g. "15.75" or "0.00".
func (r Result) LifetimeValue() string {
	return FormatCents(r.LifetimeCents)
}

// Aggregate reduces an order collection into count, lifetime value, and a
// customer status label. A nil collection is treated as empty. An order
// with a missing or non-numeric total contributes zero to the sum rather
// than failing the whole aggregation.
func Aggregate(orders []shopify.Order) Result {
	var total int64
	for _, order := range orders {
		cents, err := ParseCents(order.TotalPrice)
		if err != nil {
			// One bad record must not reject the request.
			continue
		}
		total += cents
	}

	return Result{
		OrderCount:     len(orders),
		LifetimeCents:  total,
		CustomerStatus: statusForCount(len(orders)),
	}
}

// statusForCount maps an order count to a customer status label.
func statusForCount(count int) string {
	switch {
	case count == 0:
		return StatusNoOrders
	case count == 1:
		return StatusFirstOrder
	default:
		return StatusReturning
	}
}

// ParseCents parses a decimal monetary amount ("10.50", "-3.2", "7") into
// cents without going through floating point. Fractional digits beyond the
// second are truncated. Returns an error for empty or non-numeric input.
func ParseCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}

	negative := false
	switch s[0] {
	case '-':
		negative = true
		s = s[1:]
	case '+':
		s = s[1:]
	}

	intPart := s
	fracPart := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart = s[:i]
		fracPart = s[i+1:]
	}

	if intPart == "" && fracPart == "" {
		return 0, fmt.Errorf("invalid amount %q", s)
	}

	var units int64
	if intPart != "" {
		v, err := strconv.ParseInt(intPart, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid amount %q: %w", s, err)
		}
		units = v
	}

	// Normalize the fraction to exactly two digits.
	if len(fracPart) > 2 {
		fracPart = fracPart[:2]
	}
	for len(fracPart) < 2 {
		fracPart += "0"
	}

	frac, err := strconv.ParseInt(fracPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}

	cents := units*100 + frac
	if negative {
		cents = -cents
	}
	return cents, nil
}

// FormatCents renders a cent amount as a decimal string with exactly two
// fractional digits.
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
