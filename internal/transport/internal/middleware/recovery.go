package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/authbridge/gateway-authorizer/internal/transport/transportcore"
)

// NewRecoveryMiddleware creates middleware that recovers from panics in
// downstream handlers. The panic is logged with a stack trace and the
// client receives a generic 500 response with no internal detail.
// If logger is nil, it uses the default slog logger.
func NewRecoveryMiddleware(logger *slog.Logger) transportcore.Middleware {
	if logger == nil {
		logger = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("panic recovered",
						"panic", rec,
						"method", r.Method,
						"path", r.URL.Path,
						"stack", string(debug.Stack()),
					)

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					resp := map[string]string{
						"error":   "internal_error",
						"message": "An internal server error occurred",
					}
					if err := json.NewEncoder(w).Encode(resp); err != nil {
						logger.Error("failed to encode panic response", "error", err)
					}
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
