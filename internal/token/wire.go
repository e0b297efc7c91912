package token

import (
	"time"

	"github.com/authbridge/gateway-authorizer/internal/token/internal/issuer"
	"github.com/authbridge/gateway-authorizer/internal/token/internal/manager"
	"github.com/authbridge/gateway-authorizer/internal/token/internal/store"
)

// Config holds the configuration needed to construct token services.
type Config struct {
	// EndpointURL is the identity provider's token endpoint.
	EndpointURL string

	// RequestTimeout bounds each issuance call.
	RequestTimeout time.Duration

	// ExpiryMargin is the safety margin subtracted from token lifetimes;
	// a token within the margin of its expiry is treated as absent.
	ExpiryMargin time.Duration
}

// NewStore creates the in-memory token store with the configured
// safety margin.
func NewStore(cfg *Config) Store {
	return store.NewStore(cfg.ExpiryMargin)
}

// NewIssuer creates the token endpoint client with the configured
// request timeout.
func NewIssuer(cfg *Config) Issuer {
	return issuer.NewClient(cfg.EndpointURL, cfg.RequestTimeout)
}

// NewManager creates the cache manager over the given store and issuer.
// The store is passed in rather than created internally so tests can seed
// and inspect it, and so the process owns a single shared instance.
func NewManager(st Store, iss Issuer) Manager {
	return manager.NewManager(st, iss)
}

// NewTokenServices creates all token services from the configuration.
// This is a convenience function for dependency injection.
func NewTokenServices(cfg *Config) (Manager, Store, Issuer) {
	st := NewStore(cfg)
	iss := NewIssuer(cfg)
	mgr := NewManager(st, iss)

	return mgr, st, iss
}
