package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"mercator-hq/ganymede/pkg/insights"
	"mercator-hq/ganymede/pkg/providers"
	"mercator-hq/ganymede/pkg/providers/shopify"
	"mercator-hq/ganymede/pkg/proxy"
	"mercator-hq/ganymede/pkg/proxy/middleware"
	"mercator-hq/ganymede/pkg/proxy/types"
	"mercator-hq/ganymede/pkg/security/auth"
)

// OrdersClient lists a customer's orders from the upstream platform.
type OrdersClient interface {
	ListOrders(ctx context.Context, customerID string) ([]shopify.Order, error)
}

// InsightsHandler runs the core pipeline for each request: credential
// validation, upstream fetch, aggregation, and envelope writing. The
// pipeline is strictly linear with early exit on the first failure.
type InsightsHandler struct {
	secrets *auth.SecretValidator
	orders  OrdersClient
}

// NewInsightsHandler creates the insights handler.
func NewInsightsHandler(secrets *auth.SecretValidator, orders OrdersClient) *InsightsHandler {
	return &InsightsHandler{
		secrets: secrets,
		orders:  orders,
	}
}

// ServeHTTP implements http.Handler.
//
// OPTIONS preflight never reaches this handler; the CORS middleware
// answers it before routing.
func (h *InsightsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	if r.Method != http.MethodPost {
		_ = proxy.WriteJSONResponse(w, http.StatusMethodNotAllowed, types.ErrorResponse{
			Error: "Method not allowed. Use POST.",
		})
		return
	}

	req, err := proxy.ParseInsightsRequest(r)
	if err != nil {
		slog.WarnContext(ctx, "rejected malformed request body",
			"request_id", requestID,
			"error", err,
		)
		h.writeError(ctx, w, err)
		return
	}

	// Authenticate before looking at anything else in the body. The
	// secret value itself is never logged.
	if err := h.secrets.Validate(req.APIKey); err != nil {
		if errors.Is(err, auth.ErrNotConfigured) {
			slog.ErrorContext(ctx, "shared secret is not configured",
				"request_id", requestID,
			)
		} else {
			slog.WarnContext(ctx, "rejected request with invalid api key",
				"request_id", requestID,
				"remote_addr", r.RemoteAddr,
			)
		}
		h.writeError(ctx, w, err)
		return
	}

	customerID := req.CustomerID.String()
	if customerID == "" {
		slog.WarnContext(ctx, "rejected request without customer id",
			"request_id", requestID,
		)
		h.writeError(ctx, w, proxy.ErrMissingCustomerID)
		return
	}

	orders, err := h.orders.ListOrders(ctx, customerID)
	if err != nil {
		h.logUpstreamFailure(ctx, requestID, customerID, err)
		h.writeError(ctx, w, err)
		return
	}

	result := insights.Aggregate(orders)

	slog.InfoContext(ctx, "customer insights computed",
		"request_id", requestID,
		"customer_id", customerID,
		"order_count", result.OrderCount,
		"customer_status", result.CustomerStatus,
	)

	if err := proxy.WriteInsightsResponse(w, result); err != nil {
		slog.ErrorContext(ctx, "failed to write response",
			"request_id", requestID,
			"error", err,
		)
	}
}

// logUpstreamFailure logs the full upstream failure detail server-side.
// The caller only ever sees the generic classification.
func (h *InsightsHandler) logUpstreamFailure(ctx context.Context, requestID, customerID string, err error) {
	attrs := []any{
		"request_id", requestID,
		"customer_id", customerID,
		"error", err,
	}

	var upstreamErr *providers.UpstreamError
	if errors.As(err, &upstreamErr) {
		attrs = append(attrs,
			"upstream_status", upstreamErr.StatusCode,
			"upstream_body", upstreamErr.Body,
		)
	}

	slog.ErrorContext(ctx, "failed to fetch customer orders", attrs...)
}

// writeError converts a pipeline error into the failure envelope.
func (h *InsightsHandler) writeError(ctx context.Context, w http.ResponseWriter, err error) {
	if werr := proxy.WriteErrorResponse(w, err); werr != nil {
		slog.ErrorContext(ctx, "failed to write error response", "error", werr)
	}
}
