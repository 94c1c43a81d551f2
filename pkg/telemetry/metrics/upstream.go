package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"mercator-hq/ganymede/pkg/config"
)

// UpstreamMetrics tracks calls to the storefront admin API.
//
// Metrics:
//   - <ns>_<sub>_upstream_requests_total: call count by outcome and status
//   - <ns>_<sub>_upstream_duration_seconds: call duration histogram
//
// Outcome is one of "success", "upstream_error", "network_error",
// "parse_error".
type UpstreamMetrics struct {
	upstreamTotal    *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
}

// NewUpstreamMetrics creates and registers upstream metrics with the
// provided registry.
func NewUpstreamMetrics(cfg config.MetricsConfig, registry *prometheus.Registry) *UpstreamMetrics {
	um := &UpstreamMetrics{
		upstreamTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "upstream_requests_total",
				Help:      "Total number of upstream admin API calls",
			},
			[]string{"outcome", "status"},
		),

		upstreamDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "upstream_duration_seconds",
				Help:      "Duration of upstream admin API calls in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"outcome"},
		),
	}

	registry.MustRegister(um.upstreamTotal, um.upstreamDuration)
	return um
}

// RecordUpstreamRequest records a completed upstream call. It satisfies
// the shopify.MetricsRecorder interface.
func (um *UpstreamMetrics) RecordUpstreamRequest(outcome string, statusCode int, duration time.Duration) {
	um.upstreamTotal.WithLabelValues(outcome, strconv.Itoa(statusCode)).Inc()
	um.upstreamDuration.WithLabelValues(outcome).Observe(duration.Seconds())
}
