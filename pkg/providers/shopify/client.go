// Package shopify implements the upstream adapter for a Shopify-style
// storefront admin API.
//
// The only operation the proxy needs is listing a customer's orders. The
// access token travels in a dedicated request header, never in the URL, so
// credentials cannot leak into access logs or caches. A single attempt is
// made per call; retries are deliberately not performed.
package shopify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"mercator-hq/ganymede/pkg/providers"
)

const (
	// DefaultAPIVersion is the admin API version used when none is
	// configured.
	DefaultAPIVersion = "2024-01"

	// accessTokenHeader carries the admin API access token.
	accessTokenHeader = "X-Shopify-Access-Token"

	// providerName identifies this adapter in errors and logs.
	providerName = "shopify"

	// maxErrorBodyBytes bounds how much of an upstream error body is
	// retained for logging.
	maxErrorBodyBytes = 4096
)

// Config contains the upstream connection settings.
type Config struct {
	// ShopDomain is the shop host, e.g. "example.myshopify.com".
	ShopDomain string

	// AccessToken is the admin API access token.
	AccessToken string

	// APIVersion selects the admin API version. Defaults to
	// DefaultAPIVersion when empty.
	APIVersion string

	// Timeout bounds each upstream call.
	Timeout time.Duration

	// Connection pool settings.
	MaxIdleConns        int
	MaxIdleConnsPerHost int
	IdleConnTimeout     time.Duration
}

// MetricsRecorder receives the outcome of each upstream call.
// Implementations must be safe for concurrent use.
type MetricsRecorder interface {
	RecordUpstreamRequest(outcome string, statusCode int, duration time.Duration)
}

// Client is the order-listing client for the admin API.
// It is safe for concurrent use; all requests share one pooled transport.
type Client struct {
	config  Config
	client  *http.Client
	metrics MetricsRecorder
}

// NewClient creates a new admin API client. The metrics recorder may be
// nil, in which case no metrics are recorded.
func NewClient(cfg Config, metrics MetricsRecorder) *Client {
	if cfg.APIVersion == "" {
		cfg.APIVersion = DefaultAPIVersion
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.MaxIdleConns == 0 {
		cfg.MaxIdleConns = 100
	}
	if cfg.MaxIdleConnsPerHost == 0 {
		cfg.MaxIdleConnsPerHost = 10
	}
	if cfg.IdleConnTimeout == 0 {
		cfg.IdleConnTimeout = 90 * time.Second
	}

	transport := &http.Transport{
		MaxIdleConns:        cfg.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.MaxIdleConnsPerHost,
		IdleConnTimeout:     cfg.IdleConnTimeout,
		ForceAttemptHTTP2:   true,
	}

	return &Client{
		config: cfg,
		client: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
		metrics: metrics,
	}
}

// APIVersion returns the admin API version in use.
func (c *Client) APIVersion() string {
	return c.config.APIVersion
}

// ListOrders fetches every order for the given customer, regardless of
// order lifecycle state. The customer ID is escaped for safe inclusion in
// the resource path.
//
// Exactly one attempt is made. Failures are classified as:
//   - *providers.ConfigError when the access token or shop domain is
//     missing at call time,
//   - *providers.UpstreamError for network failures, timeouts, and
//     non-success upstream statuses,
//   - *providers.ParseError when the response body is not the expected
//     shape.
func (c *Client) ListOrders(ctx context.Context, customerID string) ([]Order, error) {
	if c.config.AccessToken == "" {
		return nil, &providers.ConfigError{
			Provider: providerName,
			Field:    "access_token",
			Message:  "upstream access token is not configured",
		}
	}
	if c.config.ShopDomain == "" {
		return nil, &providers.ConfigError{
			Provider: providerName,
			Field:    "shop_domain",
			Message:  "shop domain is not configured",
		}
	}

	requestURL := fmt.Sprintf("https://%s/admin/api/%s/customers/%s/orders.json?status=any",
		c.config.ShopDomain,
		c.config.APIVersion,
		url.PathEscape(customerID),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, &providers.UpstreamError{Provider: providerName, Cause: err}
	}
	req.Header.Set(accessTokenHeader, c.config.AccessToken)
	req.Header.Set("Accept", "application/json")

	slog.DebugContext(ctx, "fetching customer orders",
		"provider", providerName,
		"shop", c.config.ShopDomain,
		"api_version", c.config.APIVersion,
	)

	start := time.Now()
	resp, err := c.client.Do(req)
	duration := time.Since(start)

	if err != nil {
		c.record("network_error", 0, duration)
		return nil, &providers.UpstreamError{Provider: providerName, Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		c.record("upstream_error", resp.StatusCode, duration)
		return nil, &providers.UpstreamError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	var envelope ordersEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		c.record("parse_error", resp.StatusCode, duration)
		return nil, &providers.ParseError{Provider: providerName, Cause: err}
	}

	orders := decodeOrders(ctx, envelope.Orders)

	c.record("success", resp.StatusCode, duration)

	slog.DebugContext(ctx, "customer orders fetched",
		"provider", providerName,
		"order_count", len(orders),
		"upstream_latency_ms", duration.Milliseconds(),
	)

	return orders, nil
}

// decodeOrders interprets the raw orders field. A missing, null, or
// non-array field is treated as an empty collection rather than a failure;
// one oddly shaped field must not reject the whole request.
func decodeOrders(ctx context.Context, raw json.RawMessage) []Order {
	if len(raw) == 0 || string(raw) == "null" {
		return []Order{}
	}

	var orders []Order
	if err := json.Unmarshal(raw, &orders); err != nil {
		slog.WarnContext(ctx, "orders field is not an order array, treating as empty",
			"provider", providerName,
			"error", err,
		)
		return []Order{}
	}
	return orders
}

// record forwards the call outcome to the metrics recorder, if any.
func (c *Client) record(outcome string, statusCode int, duration time.Duration) {
	if c.metrics != nil {
		c.metrics.RecordUpstreamRequest(outcome, statusCode, duration)
	}
}
