// Package main provides the entry point for the gateway token authorizer.
// It wires together all components using dependency injection and manages
// the server lifecycle with graceful shutdown.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/authbridge/gateway-authorizer/internal/authz"
	"github.com/authbridge/gateway-authorizer/internal/config"
	"github.com/authbridge/gateway-authorizer/internal/gateway"
	"github.com/authbridge/gateway-authorizer/internal/token"
	"github.com/authbridge/gateway-authorizer/internal/token/tokencore"
	"github.com/authbridge/gateway-authorizer/internal/transport"
)

func main() {
	// Set up structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	slog.Info("authorizer configuration loaded",
		"addr", cfg.Addr,
		"token_endpoint", cfg.TokenEndpointURL,
		"permitted_scopes", cfg.PermittedScopes,
		"match_policy", cfg.MatchPolicy,
		"expiry_margin", cfg.ExpiryMargin,
	)

	// Wire token services
	tokenCfg := &token.Config{
		EndpointURL:    cfg.TokenEndpointURL,
		RequestTimeout: cfg.RequestTimeout,
		ExpiryMargin:   cfg.ExpiryMargin,
	}

	tokenManager, tokenStore, tokenIssuer := token.NewTokenServices(tokenCfg)
	_ = tokenStore  // Owned by the manager; exposed for embedding and tests
	_ = tokenIssuer // Owned by the manager; exposed for embedding and tests

	// Wire the scope authorizer
	scopeAuthorizer, err := authz.NewAuthorizer(cfg.PermittedScopes, authz.MatchPolicy(cfg.MatchPolicy))
	if err != nil {
		log.Fatalf("failed to create scope authorizer: %v", err)
	}

	// Wire the gateway entry point
	issuance := tokencore.IssuanceRequest{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Scope:        cfg.TokenScope,
	}
	gatewayHandler := gateway.NewHandler(tokenManager, scopeAuthorizer, issuance, logger)

	slog.Info("authorizer services initialized")

	// Wire transport layer
	server, err := transport.NewTransportServices(&transport.Config{
		ServerConfig: cfg,
		Gateway:      gatewayHandler,
		Logger:       logger,
	})
	if err != nil {
		log.Fatalf("failed to create transport services: %v", err)
	}

	// Create context for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start server in background goroutine
	serverErrCh := make(chan error, 1)
	go func() {
		slog.Info("starting server", "addr", cfg.Addr)
		if err := server.Start(); err != nil {
			serverErrCh <- err
		}
	}()

	// Wait for shutdown signal or server error
	select {
	case <-ctx.Done():
		slog.Info("shutdown signal received, stopping server gracefully...")
	case err := <-serverErrCh:
		slog.Error("server error", "error", err)
		stop()
	}

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped successfully")
}
