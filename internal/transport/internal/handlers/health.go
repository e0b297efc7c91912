package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// healthResponse is the health check response body.
type healthResponse struct {
	Status string `json:"status"`
}

// NewHealthHandler creates the health check handler.
// It reports process liveness only; it deliberately does not probe the
// identity provider, since a provider outage must not take the authorizer
// out of rotation while cached tokens remain usable.
func NewHealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(healthResponse{Status: "ok"}); err != nil {
			slog.Error("failed to encode health response", "error", err)
		}
	}
}
