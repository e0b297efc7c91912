// Package token provides the process-lifetime token cache and refresh
// protocol used to supply upstream bearer tokens to the gateway authorizer.
//
// The cache is shared by every invocation handled in the same warm process.
// A token is fetched from the identity provider's token endpoint only when
// the store holds nothing fresh, and concurrent refreshes for the same
// credential identity coalesce into a single issuance call.
package token

import (
	"context"

	"github.com/authbridge/gateway-authorizer/internal/token/tokencore"
)

// Store holds cached tokens keyed by credential identity.
// Implementations must be safe for concurrent use by multiple invocations
// executing in the same warm process.
type Store interface {
	// Get retrieves the cached token for the given key.
	// Returns false if no token is stored or the stored token is within
	// the safety margin of its expiry; a stale token is never handed out.
	Get(key string) (tokencore.CachedToken, bool)

	// Set stores a token under the given key, replacing any prior entry
	// unconditionally.
	Set(key string, tok tokencore.CachedToken)
}

// Issuer performs the network call to the identity provider's token
// endpoint to obtain a fresh token.
type Issuer interface {
	// Issue performs one synchronous client-credentials call and returns
	// the issued token with its computed expiry. It makes no retries.
	//
	// Returns an issuance DomainError (kind errors.ErrIssuance) when the
	// network call errors, the response status is not success, or the
	// response is missing the token value.
	Issue(ctx context.Context, req tokencore.IssuanceRequest) (tokencore.CachedToken, error)
}

// Manager is the refresh protocol: it decides whether the stored token is
// usable and, if not, drives at most one concurrent issuance call per
// credential identity before updating the store.
type Manager interface {
	// GetValidToken returns a token whose expiry (less the safety margin)
	// is still in the future, issuing a fresh one if necessary.
	//
	// Fails with an issuance DomainError only if issuance is attempted
	// and fails; the store is left untouched on failure so any token that
	// becomes observable to other callers is one a successful issuance
	// produced.
	GetValidToken(ctx context.Context, req tokencore.IssuanceRequest) (tokencore.CachedToken, error)
}
