package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/authbridge/gateway-authorizer/internal/transport/transportcore"
)

// errorResponse represents a JSON error response body.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// errorResponder implements transportcore.ErrorResponder.
type errorResponder struct{}

// NewErrorResponder creates a new error responder.
func NewErrorResponder() transportcore.ErrorResponder {
	return &errorResponder{}
}

// BadRequest sends a 400 Bad Request response.
// The logged error carries the detail; the response body stays generic so
// nothing internal reaches the caller.
func (e *errorResponder) BadRequest(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)

	slog.Warn("bad request", "error", err)

	resp := errorResponse{
		Error:   "bad_request",
		Message: "Invalid request body",
	}
	if encodeErr := json.NewEncoder(w).Encode(resp); encodeErr != nil {
		slog.Error("failed to encode error response", "error", encodeErr)
	}
}

// InternalError sends a 500 Internal Server Error response.
func (e *errorResponder) InternalError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)

	slog.Error("internal server error", "error", err)

	resp := errorResponse{
		Error:   "internal_error",
		Message: "An internal server error occurred",
	}
	if encodeErr := json.NewEncoder(w).Encode(resp); encodeErr != nil {
		slog.Error("failed to encode error response", "error", encodeErr)
	}
}
