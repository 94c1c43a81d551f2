package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"mercator-hq/ganymede/pkg/security/secrets"
)

// Load loads configuration for the process.
//
// The loading sequence is:
//  1. Parse the YAML file at path (skipped when path is empty, which
//     supports fully environment-driven deployments)
//  2. Apply default values
//  3. Apply GANYMEDE_* environment variable overrides
//  4. Resolve "env:VAR" secret references
//  5. Validate the final configuration
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
		}
	}

	ApplyDefaults(&cfg)
	applyEnvOverrides(&cfg)

	if err := resolveSecrets(&cfg); err != nil {
		return nil, err
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the
// configuration. Variables use the format GANYMEDE_SECTION_FIELD and
// always take precedence over file-based configuration.
//
// The platform-provided PORT variable is honored when no explicit listen
// address override is present.
func applyEnvOverrides(cfg *Config) {
	if val := os.Getenv("GANYMEDE_SERVER_LISTEN_ADDRESS"); val != "" {
		cfg.Server.ListenAddress = val
	} else if port := os.Getenv("PORT"); port != "" {
		cfg.Server.ListenAddress = ":" + port
	}
	if val := os.Getenv("GANYMEDE_SERVER_READ_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Server.ReadTimeout = d
		}
	}
	if val := os.Getenv("GANYMEDE_SERVER_WRITE_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Server.WriteTimeout = d
		}
	}
	if val := os.Getenv("GANYMEDE_SERVER_SHUTDOWN_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Server.ShutdownTimeout = d
		}
	}

	if val := os.Getenv("GANYMEDE_AUTH_SHARED_SECRET"); val != "" {
		cfg.Auth.SharedSecret = val
	}

	if val := os.Getenv("GANYMEDE_UPSTREAM_SHOP_DOMAIN"); val != "" {
		cfg.Upstream.ShopDomain = val
	}
	if val := os.Getenv("GANYMEDE_UPSTREAM_ACCESS_TOKEN"); val != "" {
		cfg.Upstream.AccessToken = val
	}
	if val := os.Getenv("GANYMEDE_UPSTREAM_API_VERSION"); val != "" {
		cfg.Upstream.APIVersion = val
	}
	if val := os.Getenv("GANYMEDE_UPSTREAM_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Upstream.Timeout = d
		}
	}

	if val := os.Getenv("GANYMEDE_TLS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.TLS.Enabled = b
		}
	}
	if val := os.Getenv("GANYMEDE_TLS_CERT_FILE"); val != "" {
		cfg.TLS.CertFile = val
	}
	if val := os.Getenv("GANYMEDE_TLS_KEY_FILE"); val != "" {
		cfg.TLS.KeyFile = val
	}

	if val := os.Getenv("GANYMEDE_TELEMETRY_LOGGING_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("GANYMEDE_TELEMETRY_LOGGING_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
	if val := os.Getenv("GANYMEDE_TELEMETRY_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Metrics.Enabled = b
		}
	}
	if val := os.Getenv("GANYMEDE_TELEMETRY_METRICS_PATH"); val != "" {
		cfg.Telemetry.Metrics.Path = val
	}
}

// resolveSecrets resolves "env:VAR" references in secret-valued fields.
// A broken explicit reference is a startup error; a plainly absent secret
// is not, because its absence is classified at request time.
func resolveSecrets(cfg *Config) error {
	provider := secrets.NewEnvProvider()
	ctx := context.Background()

	resolved, err := secrets.Resolve(ctx, provider, cfg.Auth.SharedSecret)
	if err != nil {
		return fmt.Errorf("failed to resolve auth.shared_secret: %w", err)
	}
	cfg.Auth.SharedSecret = resolved

	resolved, err = secrets.Resolve(ctx, provider, cfg.Upstream.AccessToken)
	if err != nil {
		return fmt.Errorf("failed to resolve upstream.access_token: %w", err)
	}
	cfg.Upstream.AccessToken = resolved

	return nil
}
