// Package handlers provides HTTP handlers for the transport layer.
package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/authbridge/gateway-authorizer/internal/gateway"
	"github.com/authbridge/gateway-authorizer/internal/transport/transportcore"
)

// maxRequestBodySize bounds invocation body reads (1 MB).
const maxRequestBodySize = 1 << 20

// NewAuthorizeHandler creates the handler for gateway authorization
// invocations. It decodes one invocation, delegates to the gateway entry
// point, and writes the decision. Both ALLOW and DENY are 200 responses;
// only a body the handler cannot decode is a 400.
func NewAuthorizeHandler(gw gateway.Handler, responder transportcore.ErrorResponder) http.HandlerFunc {
	if gw == nil {
		panic("gateway handler cannot be nil")
	}
	if responder == nil {
		panic("responder cannot be nil")
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req gateway.Request

		body := io.LimitReader(r.Body, maxRequestBodySize)
		if err := json.NewDecoder(body).Decode(&req); err != nil {
			responder.BadRequest(w, fmt.Errorf("%w: %v", transportcore.ErrMalformedRequest, err))
			return
		}

		result := gw.Authorize(r.Context(), &req)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(result); err != nil {
			slog.Error("failed to encode authorization result", "error", err)
		}
	}
}
