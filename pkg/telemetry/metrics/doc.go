// Package metrics provides Prometheus instrumentation for the proxy.
//
// Two metric families are tracked: inbound HTTP request metrics (count and
// duration by method, path, and status) and upstream call metrics (count
// and duration by outcome). All metrics live in a dedicated registry
// exposed through the /metrics endpoint.
package metrics
