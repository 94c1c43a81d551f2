// Package config defines the Ganymede configuration surface.
//
// Configuration is loaded once at process start from an optional YAML file,
// overlaid with GANYMEDE_* environment variables, validated, and then
// treated as immutable. The loaded value is passed explicitly into the
// request-handling pipeline; nothing reads ambient global state per
// request.
package config

import "time"

// ServiceName identifies this service in health responses and logs.
const ServiceName = "ganymede"

// Config is the root configuration for the Ganymede proxy.
type Config struct {
	// Server contains HTTP server settings.
	Server ServerConfig `yaml:"server"`

	// Auth contains inbound authentication settings.
	Auth AuthConfig `yaml:"auth"`

	// Upstream contains the storefront admin API connection settings.
	Upstream UpstreamConfig `yaml:"upstream"`

	// CORS contains cross-origin resource sharing settings.
	CORS CORSConfig `yaml:"cors"`

	// TLS contains TLS serving settings.
	TLS TLSConfig `yaml:"tls"`

	// Telemetry contains logging and metrics settings.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	// ListenAddress is the address to listen on, e.g. ":8080".
	ListenAddress string `yaml:"listen_address"`

	// ReadTimeout is the maximum duration for reading the request.
	ReadTimeout time.Duration `yaml:"read_timeout"`

	// WriteTimeout is the maximum duration for writing the response.
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// IdleTimeout is the maximum keep-alive idle time.
	IdleTimeout time.Duration `yaml:"idle_timeout"`

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// MaxHeaderBytes limits request header size.
	MaxHeaderBytes int `yaml:"max_header_bytes"`
}

// AuthConfig contains inbound authentication settings.
type AuthConfig struct {
	// SharedSecret is the static secret callers must present. Supports
	// an "env:VAR" reference resolved at startup. When empty, every
	// request is rejected with a configuration error.
	SharedSecret string `yaml:"shared_secret"`
}

// UpstreamConfig contains the storefront admin API connection settings.
type UpstreamConfig struct {
	// ShopDomain is the shop host, e.g. "example.myshopify.com".
	ShopDomain string `yaml:"shop_domain"`

	// AccessToken is the admin API access token. Supports an "env:VAR"
	// reference resolved at startup.
	AccessToken string `yaml:"access_token"`

	// APIVersion selects the admin API version.
	APIVersion string `yaml:"api_version"`

	// Timeout bounds each upstream call.
	Timeout time.Duration `yaml:"timeout"`
}

// CORSConfig contains cross-origin resource sharing settings.
type CORSConfig struct {
	// Enabled controls whether CORS headers are emitted.
	Enabled bool `yaml:"enabled"`

	// AllowedOrigins is the list of allowed origins. Use ["*"] to allow
	// all origins.
	AllowedOrigins []string `yaml:"allowed_origins"`

	// AllowedMethods is the list of allowed HTTP methods.
	AllowedMethods []string `yaml:"allowed_methods"`

	// AllowedHeaders is the list of allowed request headers.
	AllowedHeaders []string `yaml:"allowed_headers"`

	// MaxAge is the preflight cache duration in seconds.
	MaxAge int `yaml:"max_age"`
}

// TLSConfig contains TLS serving settings.
type TLSConfig struct {
	// Enabled controls whether the server terminates TLS itself.
	Enabled bool `yaml:"enabled"`

	// CertFile is the path to the PEM certificate chain.
	CertFile string `yaml:"cert_file"`

	// KeyFile is the path to the PEM private key.
	KeyFile string `yaml:"key_file"`
}

// TelemetryConfig contains logging and metrics settings.
type TelemetryConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig contains structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level ("debug", "info", "warn", "error").
	Level string `yaml:"level"`

	// Format is the output format ("json", "text").
	Format string `yaml:"format"`
}

// MetricsConfig contains Prometheus metrics settings.
type MetricsConfig struct {
	// Enabled controls whether the metrics endpoint is served.
	Enabled bool `yaml:"enabled"`

	// Path is the metrics endpoint path.
	Path string `yaml:"path"`

	// Namespace is the metric name prefix.
	Namespace string `yaml:"namespace"`

	// Subsystem is the metric name subsystem.
	Subsystem string `yaml:"subsystem"`
}
