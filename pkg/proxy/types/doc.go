// Package types defines the wire format of the insights endpoint.
//
// Exactly one envelope variant is emitted per request: the success variant
// carrying the aggregated metrics, or the failure variant carrying a single
// human-readable error string.
package types
