package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

func TestRequestIDMiddleware(t *testing.T) {
	t.Run("generates an id when none is provided", func(t *testing.T) {
		var seen string
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = GetRequestID(r.Context())
		})

		r := httptest.NewRequest(http.MethodPost, "/", nil)
		w := httptest.NewRecorder()

		RequestIDMiddleware(next).ServeHTTP(w, r)

		if seen == "" {
			t.Fatal("no request ID in handler context")
		}
		if _, err := uuid.Parse(seen); err != nil {
			t.Errorf("request ID %q is not a UUID: %v", seen, err)
		}
		if got := w.Header().Get(RequestIDHeader); got != seen {
			t.Errorf("response header = %q, want %q", got, seen)
		}
	})

	t.Run("passes through a client-provided id", func(t *testing.T) {
		var seen string
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = GetRequestID(r.Context())
		})

		r := httptest.NewRequest(http.MethodPost, "/", nil)
		r.Header.Set(RequestIDHeader, "client-id-123")
		w := httptest.NewRecorder()

		RequestIDMiddleware(next).ServeHTTP(w, r)

		if seen != "client-id-123" {
			t.Errorf("request ID = %q, want client-id-123", seen)
		}
		if got := w.Header().Get(RequestIDHeader); got != "client-id-123" {
			t.Errorf("response header = %q, want client-id-123", got)
		}
	})
}

func TestGetRequestIDMissing(t *testing.T) {
	if got := GetRequestID(context.Background()); got != "" {
		t.Errorf("GetRequestID on empty context = %q, want empty", got)
	}
}
