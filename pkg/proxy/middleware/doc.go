// Package middleware provides the HTTP middleware chain for the proxy.
//
// Order matters: recovery wraps everything so panics become uniform error
// envelopes; CORS runs before routing so preflight requests are answered
// before any body parsing or authentication; logging and metrics observe
// the final status code of each request.
package middleware
