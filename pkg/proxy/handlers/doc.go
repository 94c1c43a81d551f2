// Package handlers contains the HTTP handlers served by the proxy: the
// customer insights pipeline and the liveness probe.
package handlers
