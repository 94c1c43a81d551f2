package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"mercator-hq/ganymede/pkg/providers"
	"mercator-hq/ganymede/pkg/providers/shopify"
	"mercator-hq/ganymede/pkg/proxy/types"
	"mercator-hq/ganymede/pkg/security/auth"
)

// stubOrders is an OrdersClient returning canned orders or a canned error.
type stubOrders struct {
	orders []shopify.Order
	err    error

	lastCustomerID string
	calls          int
}

func (s *stubOrders) ListOrders(ctx context.Context, customerID string) ([]shopify.Order, error) {
	s.calls++
	s.lastCustomerID = customerID
	if s.err != nil {
		return nil, s.err
	}
	return s.orders, nil
}

func newInsightsTest(secret string, orders *stubOrders) *InsightsHandler {
	return NewInsightsHandler(auth.NewSecretValidator(secret), orders)
}

func postInsights(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) types.ErrorResponse {
	t.Helper()
	var resp types.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response %q is not the error envelope: %v", w.Body.String(), err)
	}
	if resp.Error == "" {
		t.Fatalf("error envelope %q has empty error field", w.Body.String())
	}
	return resp
}

func TestInsightsHandlerSuccess(t *testing.T) {
	stub := &stubOrders{orders: []shopify.Order{
		{ID: 1, TotalPrice: "10.50"},
		{ID: 2, TotalPrice: "5.25"},
	}}
	h := newInsightsTest("s3cret", stub)

	w := postInsights(t, h, `{"apiKey":"s3cret","customerId":"6543210"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", w.Code, w.Body.String())
	}

	var resp types.InsightsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if !resp.Success {
		t.Error("success = false, want true")
	}
	if resp.OrderCount != 2 {
		t.Errorf("orderCount = %d, want 2", resp.OrderCount)
	}
	if resp.LifetimeValue != "15.75" {
		t.Errorf("lifetimeValue = %q, want %q", resp.LifetimeValue, "15.75")
	}
	if resp.CustomerStatus != "Returning Customer" {
		t.Errorf("customerStatus = %q, want %q", resp.CustomerStatus, "Returning Customer")
	}
	if stub.lastCustomerID != "6543210" {
		t.Errorf("upstream called with customer %q, want 6543210", stub.lastCustomerID)
	}
}

func TestInsightsHandlerCustomerStatuses(t *testing.T) {
	tests := []struct {
		name       string
		orders     []shopify.Order
		wantCount  int
		wantValue  string
		wantStatus string
	}{
		{
			name:       "no orders",
			orders:     nil,
			wantCount:  0,
			wantValue:  "0.00",
			wantStatus: "New - No Orders",
		},
		{
			name:       "single order",
			orders:     []shopify.Order{{TotalPrice: "25.00"}},
			wantCount:  1,
			wantValue:  "25.00",
			wantStatus: "New - First Order",
		},
		{
			name: "malformed price contributes zero",
			orders: []shopify.Order{
				{TotalPrice: "25.00"},
				{TotalPrice: "oops"},
			},
			wantCount:  2,
			wantValue:  "25.00",
			wantStatus: "Returning Customer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newInsightsTest("s3cret", &stubOrders{orders: tt.orders})

			w := postInsights(t, h, `{"apiKey":"s3cret","customerId":"1"}`)
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", w.Code)
			}

			var resp types.InsightsResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decoding response: %v", err)
			}
			if resp.OrderCount != tt.wantCount {
				t.Errorf("orderCount = %d, want %d", resp.OrderCount, tt.wantCount)
			}
			if resp.LifetimeValue != tt.wantValue {
				t.Errorf("lifetimeValue = %q, want %q", resp.LifetimeValue, tt.wantValue)
			}
			if resp.CustomerStatus != tt.wantStatus {
				t.Errorf("customerStatus = %q, want %q", resp.CustomerStatus, tt.wantStatus)
			}
		})
	}
}

func TestInsightsHandlerAuth(t *testing.T) {
	t.Run("wrong api key", func(t *testing.T) {
		stub := &stubOrders{}
		h := newInsightsTest("s3cret", stub)

		w := postInsights(t, h, `{"apiKey":"wrong","customerId":"1"}`)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
		decodeError(t, w)
		if stub.calls != 0 {
			t.Error("upstream was called for an unauthenticated request")
		}
	})

	t.Run("missing api key", func(t *testing.T) {
		h := newInsightsTest("s3cret", &stubOrders{})

		w := postInsights(t, h, `{"customerId":"1"}`)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})

	t.Run("auth failure reported even without customer id", func(t *testing.T) {
		h := newInsightsTest("s3cret", &stubOrders{})

		w := postInsights(t, h, `{"apiKey":"wrong"}`)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401, auth must be checked before customerId", w.Code)
		}
	})

	t.Run("secret unconfigured", func(t *testing.T) {
		stub := &stubOrders{}
		h := newInsightsTest("", stub)

		w := postInsights(t, h, `{"apiKey":"anything","customerId":"1"}`)
		if w.Code != http.StatusInternalServerError {
			t.Errorf("status = %d, want 500", w.Code)
		}
		resp := decodeError(t, w)
		if resp.Error != "Server configuration error" {
			t.Errorf("error = %q, want the configuration message", resp.Error)
		}
		if stub.calls != 0 {
			t.Error("upstream was called while the server is unconfigured")
		}
	})
}

func TestInsightsHandlerMissingCustomerID(t *testing.T) {
	for _, body := range []string{
		`{"apiKey":"s3cret"}`,
		`{"apiKey":"s3cret","customerId":""}`,
		`{"apiKey":"s3cret","customerId":null}`,
	} {
		stub := &stubOrders{}
		h := newInsightsTest("s3cret", stub)

		w := postInsights(t, h, body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("body %s: status = %d, want 400", body, w.Code)
		}
		if stub.calls != 0 {
			t.Errorf("body %s: upstream was called without a customer id", body)
		}
	}
}

func TestInsightsHandlerMalformedBody(t *testing.T) {
	h := newInsightsTest("s3cret", &stubOrders{})

	w := postInsights(t, h, `not json at all`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	decodeError(t, w)
}

func TestInsightsHandlerUpstreamFailures(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "upstream 404", err: &providers.UpstreamError{Provider: "shopify", StatusCode: 404, Body: `{"errors":"Not Found"}`}},
		{name: "upstream 500", err: &providers.UpstreamError{Provider: "shopify", StatusCode: 500}},
		{name: "network failure", err: &providers.UpstreamError{Provider: "shopify", Cause: errors.New("dial tcp: connection refused")}},
		{name: "malformed upstream body", err: &providers.ParseError{Provider: "shopify", Cause: errors.New("unexpected EOF")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newInsightsTest("s3cret", &stubOrders{err: tt.err})

			w := postInsights(t, h, `{"apiKey":"s3cret","customerId":"1"}`)
			if w.Code != http.StatusBadGateway {
				t.Errorf("status = %d, want 502", w.Code)
			}
			resp := decodeError(t, w)
			if resp.Error != "Failed to retrieve order data" {
				t.Errorf("error = %q, want the generic upstream message", resp.Error)
			}
			if strings.Contains(w.Body.String(), "Not Found") || strings.Contains(w.Body.String(), "connection refused") {
				t.Error("upstream failure detail leaked to the caller")
			}
		})
	}
}

func TestInsightsHandlerProviderUnconfigured(t *testing.T) {
	h := newInsightsTest("s3cret", &stubOrders{
		err: &providers.ConfigError{Provider: "shopify", Field: "access_token"},
	})

	w := postInsights(t, h, `{"apiKey":"s3cret","customerId":"1"}`)
	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
	resp := decodeError(t, w)
	if resp.Error != "Server configuration error" {
		t.Errorf("error = %q, want the configuration message", resp.Error)
	}
}

func TestInsightsHandlerMethodNotAllowed(t *testing.T) {
	h := newInsightsTest("s3cret", &stubOrders{})

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		r := httptest.NewRequest(method, "/", nil)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)

		if w.Code != http.StatusMethodNotAllowed {
			t.Errorf("%s: status = %d, want 405", method, w.Code)
		}
		decodeError(t, w)
	}
}

func TestInsightsHandlerNumericCustomerID(t *testing.T) {
	stub := &stubOrders{orders: []shopify.Order{}}
	h := newInsightsTest("s3cret", stub)

	w := postInsights(t, h, `{"apiKey":"s3cret","customerId":6543210}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", w.Code, w.Body.String())
	}
	if stub.lastCustomerID != "6543210" {
		t.Errorf("upstream called with customer %q, want coerced 6543210", stub.lastCustomerID)
	}
}
