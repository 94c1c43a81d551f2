package middleware

import (
	"net/http"
	"time"

	"mercator-hq/ganymede/pkg/telemetry/metrics"
)

// MetricsMiddleware records request count and duration for every request.
// The path label uses the raw request path; this service has a fixed tiny
// route set, so cardinality stays bounded.
func MetricsMiddleware(rm *metrics.RequestMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rw := newResponseWriter(w)
			next.ServeHTTP(rw, r)

			rm.RecordRequest(r.Method, r.URL.Path, rw.statusCode, time.Since(start))
		})
	}
}
