// Package tokencore provides core types for the token cache vertical.
// This package exists to break import cycles between the token package
// and its internal subpackages.
package tokencore

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// CachedToken is an upstream bearer token together with the instant after
// which it must not be reused. The zero value represents an absent token.
type CachedToken struct {
	// Value is the opaque bearer token string.
	Value string

	// ExpiresAt is the absolute instant after which the token is stale.
	ExpiresAt time.Time
}

// Fresh reports whether the token can still be handed out at the given
// instant. The safety margin is subtracted from the token lifetime so a
// token nearing expiry is treated as absent rather than raced against
// server-side expiry.
func (t CachedToken) Fresh(now time.Time, margin time.Duration) bool {
	if t.Value == "" || t.ExpiresAt.IsZero() {
		return false
	}
	return now.Add(margin).Before(t.ExpiresAt)
}

// String returns a representation safe for logging. The token value is
// always redacted.
func (t CachedToken) String() string {
	value := "[REDACTED]"
	if t.Value == "" {
		value = "<empty>"
	}
	return fmt.Sprintf("CachedToken{Value: %s, ExpiresAt: %s}", value, t.ExpiresAt.Format(time.RFC3339))
}

// IssuanceRequest carries the client-credentials parameters for one token
// issuance call. Values are loaded once from configuration and immutable
// thereafter.
type IssuanceRequest struct {
	// ClientID identifies the client at the identity provider.
	ClientID string

	// ClientSecret authenticates the client. Never logged.
	ClientSecret string

	// Scope is the optional scope string requested at issuance,
	// in the identity provider's own format.
	Scope string
}

// CacheKey returns a stable key identifying the credential identity.
// Tokens issued for the same client and scope share one cache slot and
// one refresh flight. The key is a digest so the client identifier never
// appears verbatim in cache internals or diagnostics.
func (r IssuanceRequest) CacheKey() string {
	sum := sha256.Sum256([]byte(r.ClientID + "\x00" + r.Scope))
	return hex.EncodeToString(sum[:])
}

// String returns a representation safe for logging. The client secret is
// always redacted.
func (r IssuanceRequest) String() string {
	secret := "[REDACTED]"
	if r.ClientSecret == "" {
		secret = "<empty>"
	}
	return fmt.Sprintf("IssuanceRequest{ClientID: %s, ClientSecret: %s, Scope: %s}", r.ClientID, secret, r.Scope)
}
