package proxy

import (
	"encoding/json"
	"net/http"

	"mercator-hq/ganymede/pkg/insights"
	"mercator-hq/ganymede/pkg/proxy/types"
)

// WriteJSONResponse writes a JSON body with the given status code.
func WriteJSONResponse(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

// WriteInsightsResponse writes the success envelope for an aggregation
// result.
func WriteInsightsResponse(w http.ResponseWriter, result insights.Result) error {
	return WriteJSONResponse(w, http.StatusOK, types.InsightsResponse{
		Success:        true,
		CustomerStatus: result.CustomerStatus,
		OrderCount:     result.OrderCount,
		LifetimeValue:  result.LifetimeValue(),
	})
}

// WriteErrorResponse classifies the error and writes the failure envelope.
func WriteErrorResponse(w http.ResponseWriter, err error) error {
	status, message := Classify(err)
	return WriteJSONResponse(w, status, types.ErrorResponse{Error: message})
}
