package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"mercator-hq/ganymede/pkg/config"
)

// Collector owns the Prometheus registry and all proxy metrics.
// It is safe for concurrent use.
type Collector struct {
	config   config.MetricsConfig
	registry *prometheus.Registry

	requestMetrics  *RequestMetrics
	upstreamMetrics *UpstreamMetrics
}

// NewCollector creates a collector with a fresh registry. Go runtime and
// process collectors are registered alongside the proxy metrics.
func NewCollector(cfg config.MetricsConfig) *Collector {
	registry := prometheus.NewRegistry()

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Collector{
		config:          cfg,
		registry:        registry,
		requestMetrics:  NewRequestMetrics(cfg, registry),
		upstreamMetrics: NewUpstreamMetrics(cfg, registry),
	}
}

// Requests returns the inbound request metrics.
func (c *Collector) Requests() *RequestMetrics {
	return c.requestMetrics
}

// Upstream returns the upstream call metrics.
func (c *Collector) Upstream() *UpstreamMetrics {
	return c.upstreamMetrics
}

// Registry returns the underlying Prometheus registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
