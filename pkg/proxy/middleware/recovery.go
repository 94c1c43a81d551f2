package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"runtime/debug"

	"mercator-hq/ganymede/pkg/proxy/types"
)

// RecoveryMiddleware recovers from panics in HTTP handlers and returns the
// uniform error envelope with a 500 status. The panic and stack trace are
// logged; no internal detail reaches the caller. Because this runs inside
// the CORS middleware, even a panic response carries the allow headers.
func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				requestID := GetRequestID(r.Context())

				slog.ErrorContext(r.Context(), "panic in handler",
					"error", err,
					"request_id", requestID,
					"method", r.Method,
					"path", r.URL.Path,
					"stack", string(debug.Stack()),
				)

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_ = json.NewEncoder(w).Encode(types.ErrorResponse{
					Error: "An internal error occurred",
				})
			}
		}()

		next.ServeHTTP(w, r)
	})
}
