package handlers

import (
	"net/http"
	"time"

	"mercator-hq/ganymede/pkg/config"
	"mercator-hq/ganymede/pkg/proxy"
	"mercator-hq/ganymede/pkg/proxy/types"
)

// HealthHandler answers liveness probes. It is unauthenticated and carries
// no business logic.
type HealthHandler struct{}

// NewHealthHandler creates a new health check handler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// ServeHTTP implements http.Handler.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	_ = proxy.WriteJSONResponse(w, http.StatusOK, types.HealthResponse{
		OK:      true,
		Service: config.ServiceName,
		TS:      time.Now().UnixMilli(),
	})
}
