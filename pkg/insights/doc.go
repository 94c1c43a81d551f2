// Package insights computes derived customer metrics from a collection of
// storefront orders.
//
// The aggregation is a pure function: the same order collection always
// produces the same result, and no state is kept between calls. Monetary
// amounts are summed exactly in cents to avoid floating point drift.
package insights
