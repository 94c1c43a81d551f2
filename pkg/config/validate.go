package config

import (
	"fmt"
	"strings"
)

var (
	validLogLevels  = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	validLogFormats = map[string]bool{"json": true, "text": true}
)

// Validate checks the configuration for structural problems.
//
// The shared secret, access token, and shop domain are deliberately not
// required here: their absence is a request-time configuration error (the
// server starts and answers every request with a 500-class error), which
// keeps credential rotation failures observable instead of crash-looping
// the process. Validation messages never echo secret values.
func Validate(cfg *Config) error {
	var problems []string

	if cfg.Server.ListenAddress == "" {
		problems = append(problems, "server.listen_address must not be empty")
	}
	if cfg.Server.ReadTimeout <= 0 {
		problems = append(problems, "server.read_timeout must be positive")
	}
	if cfg.Server.WriteTimeout <= 0 {
		problems = append(problems, "server.write_timeout must be positive")
	}
	if cfg.Server.ShutdownTimeout <= 0 {
		problems = append(problems, "server.shutdown_timeout must be positive")
	}

	if cfg.Upstream.Timeout <= 0 {
		problems = append(problems, "upstream.timeout must be positive")
	}
	if strings.ContainsAny(cfg.Upstream.ShopDomain, "/?#") {
		problems = append(problems, "upstream.shop_domain must be a bare host, not a URL")
	}

	if cfg.CORS.MaxAge < 0 {
		problems = append(problems, "cors.max_age must not be negative")
	}

	if cfg.TLS.Enabled {
		if cfg.TLS.CertFile == "" {
			problems = append(problems, "tls.cert_file is required when tls.enabled is true")
		}
		if cfg.TLS.KeyFile == "" {
			problems = append(problems, "tls.key_file is required when tls.enabled is true")
		}
	}

	if !validLogLevels[cfg.Telemetry.Logging.Level] {
		problems = append(problems, fmt.Sprintf("telemetry.logging.level %q is not one of debug, info, warn, error", cfg.Telemetry.Logging.Level))
	}
	if !validLogFormats[cfg.Telemetry.Logging.Format] {
		problems = append(problems, fmt.Sprintf("telemetry.logging.format %q is not one of json, text", cfg.Telemetry.Logging.Format))
	}
	if cfg.Telemetry.Metrics.Enabled && !strings.HasPrefix(cfg.Telemetry.Metrics.Path, "/") {
		problems = append(problems, "telemetry.metrics.path must start with /")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}
