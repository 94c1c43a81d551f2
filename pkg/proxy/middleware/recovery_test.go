package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"mercator-hq/ganymede/pkg/proxy/types"
)

func TestRecoveryMiddleware(t *testing.T) {
	t.Run("recovers and returns the error envelope", func(t *testing.T) {
		panicking := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic("boom: secret internal detail")
		})

		r := httptest.NewRequest(http.MethodPost, "/", nil)
		w := httptest.NewRecorder()

		RecoveryMiddleware(panicking).ServeHTTP(w, r)

		if w.Code != http.StatusInternalServerError {
			t.Errorf("status = %d, want 500", w.Code)
		}

		var resp types.ErrorResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("response is not the error envelope: %v", err)
		}
		if resp.Error != "An internal error occurred" {
			t.Errorf("error = %q, want the generic message", resp.Error)
		}
		if strings.Contains(w.Body.String(), "secret internal detail") {
			t.Error("panic detail leaked to the caller")
		}
	})

	t.Run("passes normal requests through", func(t *testing.T) {
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		})

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		w := httptest.NewRecorder()

		RecoveryMiddleware(next).ServeHTTP(w, r)

		if w.Code != http.StatusTeapot {
			t.Errorf("status = %d, want %d", w.Code, http.StatusTeapot)
		}
	})
}
