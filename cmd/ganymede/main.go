// Mercator Ganymede is a customer insights proxy for storefront analytics.
//
// It exposes a single authenticated endpoint that fetches a customer's
// order history from a storefront admin API and returns three derived
// metrics: order count, lifetime value, and a customer status label. The
// proxy exists because browser-side analytics sandboxes cannot hold the
// admin API credential themselves.
//
// Usage:
//
//	# Start the server with environment-driven configuration
//	ganymede run
//
//	# Start with a configuration file
//	ganymede run --config /path/to/config.yaml
//
//	# Validate a configuration file without starting the server
//	ganymede validate --config /path/to/config.yaml
//
//	# Show version information
//	ganymede version
package main

func main() {
	Execute()
}
