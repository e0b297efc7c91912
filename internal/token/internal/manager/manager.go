// Package manager implements the token refresh protocol: serve from the
// store when a fresh token exists, otherwise drive at most one concurrent
// issuance call per credential identity and publish its result.
package manager

import (
	"context"

	"golang.org/x/sync/singleflight"

	"github.com/authbridge/gateway-authorizer/internal/token/tokencore"
)

// Store defines the token store operations the manager needs.
// This avoids importing the parent token package.
type Store interface {
	Get(key string) (tokencore.CachedToken, bool)
	Set(key string, tok tokencore.CachedToken)
}

// Issuer defines the issuance operation the manager needs.
type Issuer interface {
	Issue(ctx context.Context, req tokencore.IssuanceRequest) (tokencore.CachedToken, error)
}

// Manager coordinates reads from the store with single-flight refresh.
// It is safe for concurrent use by multiple goroutines.
type Manager struct {
	store  Store
	issuer Issuer
	group  singleflight.Group
}

// NewManager creates a new cache manager over the given store and issuer.
func NewManager(store Store, issuer Issuer) *Manager {
	return &Manager{
		store:  store,
		issuer: issuer,
	}
}

// GetValidToken returns a token whose expiry (less the store's safety
// margin) is still in the future, issuing a fresh one if necessary.
//
// The fast path is a store read with no network call and must dominate in
// steady state. On a miss, concurrent callers for the same credential
// identity coalesce onto one in-flight issuance call and share its result.
// On issuance failure the store is left untouched and the error is
// propagated to every waiting caller.
func (m *Manager) GetValidToken(ctx context.Context, req tokencore.IssuanceRequest) (tokencore.CachedToken, error) {
	key := req.CacheKey()

	// Fast path: fresh token already in the store.
	if tok, ok := m.store.Get(key); ok {
		return tok, nil
	}

	// Refresh required. Callers arriving while a refresh is in flight
	// wait for and reuse its result rather than each issuing their own.
	// The flight runs under the first caller's context; a bounded race
	// where a second flight starts after the first completes is acceptable.
	result, err, _ := m.group.Do(key, func() (any, error) {
		// Re-check under the flight: another caller may have completed
		// a refresh between our store read and entering the flight.
		if tok, ok := m.store.Get(key); ok {
			return tok, nil
		}

		tok, err := m.issuer.Issue(ctx, req)
		if err != nil {
			return nil, err
		}

		m.store.Set(key, tok)
		return tok, nil
	})
	if err != nil {
		return tokencore.CachedToken{}, err
	}

	return result.(tokencore.CachedToken), nil
}
