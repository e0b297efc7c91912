package transport

import (
	"fmt"
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/authbridge/gateway-authorizer/internal/config"
	"github.com/authbridge/gateway-authorizer/internal/gateway"
	"github.com/authbridge/gateway-authorizer/internal/transport/internal/handlers"
	"github.com/authbridge/gateway-authorizer/internal/transport/internal/httpserver"
	"github.com/authbridge/gateway-authorizer/internal/transport/internal/middleware"
	"github.com/authbridge/gateway-authorizer/internal/transport/transportcore"
)

// Config holds the dependencies needed to construct the transport layer.
type Config struct {
	// ServerConfig is the loaded process configuration.
	ServerConfig *config.Config

	// Gateway is the authorizer entry point handling each invocation.
	Gateway gateway.Handler

	// Logger is used by the request middleware. If nil, the default
	// slog logger is used.
	Logger *slog.Logger
}

// NewTransportServices builds the HTTP server with its routes and
// middleware. This is the composition point for the transport layer.
//
// Routes:
//   - POST /authorize — one gateway authorization invocation
//   - GET  /health    — process liveness
func NewTransportServices(cfg *Config) (transportcore.Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("transport config cannot be nil")
	}
	if cfg.ServerConfig == nil {
		return nil, fmt.Errorf("server config cannot be nil")
	}
	if cfg.Gateway == nil {
		return nil, fmt.Errorf("gateway handler cannot be nil")
	}

	responder := httpserver.NewErrorResponder()

	router := chi.NewRouter()
	router.Use(middleware.NewLoggingMiddleware(cfg.Logger))
	router.Use(middleware.NewRecoveryMiddleware(cfg.Logger))

	router.Post("/authorize", handlers.NewAuthorizeHandler(cfg.Gateway, responder))
	router.Get("/health", handlers.NewHealthHandler())

	return httpserver.NewServer(cfg.ServerConfig, router), nil
}
