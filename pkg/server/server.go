package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"mercator-hq/ganymede/pkg/config"
	"mercator-hq/ganymede/pkg/providers/shopify"
	"mercator-hq/ganymede/pkg/proxy/handlers"
	"mercator-hq/ganymede/pkg/proxy/middleware"
	"mercator-hq/ganymede/pkg/security/auth"
	securitytls "mercator-hq/ganymede/pkg/security/tls"
	"mercator-hq/ganymede/pkg/telemetry/metrics"
)

// Server is the Ganymede HTTP proxy server.
type Server struct {
	config       *config.Config
	collector    *metrics.Collector
	ordersClient handlers.OrdersClient
	secrets      *auth.SecretValidator

	httpServer   *http.Server
	shutdownOnce sync.Once
	mu           sync.RWMutex
	isRunning    bool
}

// New creates a server from the loaded configuration, wiring the shared
// secret validator, the upstream client, and the metrics collector.
func New(cfg *config.Config) *Server {
	collector := metrics.NewCollector(cfg.Telemetry.Metrics)

	ordersClient := shopify.NewClient(shopify.Config{
		ShopDomain:  cfg.Upstream.ShopDomain,
		AccessToken: cfg.Upstream.AccessToken,
		APIVersion:  cfg.Upstream.APIVersion,
		Timeout:     cfg.Upstream.Timeout,
	}, collector.Upstream())

	return NewWithOrders(cfg, collector, ordersClient)
}

// NewWithOrders creates a server with an explicit orders client. Tests use
// this to substitute the upstream.
func NewWithOrders(cfg *config.Config, collector *metrics.Collector, orders handlers.OrdersClient) *Server {
	if collector == nil {
		collector = metrics.NewCollector(cfg.Telemetry.Metrics)
	}
	return &Server{
		config:       cfg,
		collector:    collector,
		ordersClient: orders,
		secrets:      auth.NewSecretValidator(cfg.Auth.SharedSecret),
	}
}

// Start starts the HTTP server and blocks until shutdown is triggered by
// context cancellation, SIGINT/SIGTERM, or a server error.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return fmt.Errorf("server is already running")
	}
	s.isRunning = true
	s.mu.Unlock()

	if !s.secrets.Configured() {
		slog.Warn("shared secret is not configured, all requests will be rejected")
	}
	if s.config.Upstream.AccessToken == "" || s.config.Upstream.ShopDomain == "" {
		slog.Warn("upstream credentials are not fully configured, order lookups will fail")
	}

	s.httpServer = &http.Server{
		Addr:           s.config.Server.ListenAddress,
		Handler:        s.Handler(),
		ReadTimeout:    s.config.Server.ReadTimeout,
		WriteTimeout:   s.config.Server.WriteTimeout,
		IdleTimeout:    s.config.Server.IdleTimeout,
		MaxHeaderBytes: s.config.Server.MaxHeaderBytes,
	}

	// TLS with certificate hot reload, when enabled.
	reloadCtx, cancelReload := context.WithCancel(context.Background())
	defer cancelReload()
	if s.config.TLS.Enabled {
		reloader := securitytls.NewCertificateReloader(
			s.config.TLS.CertFile,
			s.config.TLS.KeyFile,
		)
		if err := reloader.Start(reloadCtx); err != nil {
			return fmt.Errorf("failed to configure TLS: %w", err)
		}
		s.httpServer.TLSConfig = securitytls.NewServerConfig(reloader)
	}

	errChan := make(chan error, 1)
	go func() {
		slog.Info("starting proxy server",
			"address", s.config.Server.ListenAddress,
			"tls_enabled", s.config.TLS.Enabled,
			"api_version", s.config.Upstream.APIVersion,
		)

		var err error
		if s.config.TLS.Enabled {
			// Cert and key come from the reloader via TLSConfig.
			err = s.httpServer.ListenAndServeTLS("", "")
		} else {
			err = s.httpServer.ListenAndServe()
		}

		if err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case <-ctx.Done():
		slog.Info("context cancelled, initiating shutdown")
		return s.Shutdown(context.Background())
	case sig := <-sigChan:
		slog.Info("received shutdown signal", "signal", sig.String())
		return s.Shutdown(context.Background())
	case err := <-errChan:
		return err
	}
}

// Shutdown gracefully shuts down the server, draining in-flight requests
// up to the configured shutdown timeout.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.mu.Lock()
		if !s.isRunning {
			s.mu.Unlock()
			return
		}
		s.mu.Unlock()

		slog.Info("initiating graceful shutdown",
			"timeout", s.config.Server.ShutdownTimeout.String(),
		)

		shutdownCtx, cancel := context.WithTimeout(ctx, s.config.Server.ShutdownTimeout)
		defer cancel()

		if s.httpServer != nil {
			if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
				slog.Error("error during server shutdown", "error", err)
				shutdownErr = fmt.Errorf("server shutdown error: %w", err)
			}
		}

		s.mu.Lock()
		s.isRunning = false
		s.mu.Unlock()

		slog.Info("proxy server stopped")
	})

	return shutdownErr
}

// Handler returns the fully configured HTTP handler: routes wrapped in
// the middleware chain. Exposed separately for tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	insightsHandler := handlers.NewInsightsHandler(s.secrets, s.ordersClient)
	healthHandler := handlers.NewHealthHandler()

	mux.Handle("/", insightsHandler)
	mux.Handle("/health", healthHandler)

	if s.config.Telemetry.Metrics.Enabled {
		mux.Handle(s.config.Telemetry.Metrics.Path, s.collector.Handler())
	}

	var handler http.Handler = mux

	// Innermost to outermost: metrics and logging observe the final
	// status; CORS answers preflight before routing; recovery catches
	// everything.
	handler = middleware.MetricsMiddleware(s.collector.Requests())(handler)
	handler = middleware.CORSMiddleware(s.config.CORS)(handler)
	handler = middleware.RequestIDMiddleware(handler)
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.RecoveryMiddleware(handler)

	return handler
}

// IsRunning returns true if the server is running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}
