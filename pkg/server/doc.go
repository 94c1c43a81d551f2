// Package server assembles the HTTP server: routes, middleware chain,
// TLS, and graceful shutdown.
package server
