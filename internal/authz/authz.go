// Package authz provides the scope authorization decision for the gateway
// authorizer. The decision is a pure function of the requested scope claim
// and the configured permitted-scopes set; it never consults the upstream
// token, so token freshness and scope authorization stay independent
// concerns composed only at the entry point.
package authz

import (
	"fmt"
	"strings"
)

// Decision is the outcome of a scope authorization check.
type Decision int

const (
	// Deny rejects the invocation. This is the zero value so an
	// uninitialized decision never allows.
	Deny Decision = iota

	// Allow permits the invocation.
	Allow
)

// String returns the gateway wire representation of the decision.
func (d Decision) String() string {
	if d == Allow {
		return "ALLOW"
	}
	return "DENY"
}

// MarshalText implements encoding.TextMarshaler so decisions serialize as
// their wire representation in JSON responses.
func (d Decision) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// MatchPolicy selects how a requested scope is compared against the
// permitted set.
type MatchPolicy string

const (
	// MatchExact permits a requested scope only when it appears verbatim
	// in the permitted set.
	MatchExact MatchPolicy = "exact"

	// MatchPrefix additionally permits a requested scope that descends
	// from a permitted entry in the scope hierarchy, e.g. permitted
	// "orders" covers requested "orders:read".
	MatchPrefix MatchPolicy = "prefix"
)

// scopeDelimiter separates levels in hierarchical scope names.
const scopeDelimiter = ":"

// Authorizer decides whether a requested scope claim is covered by the
// configured permitted scopes. It is immutable after construction and safe
// for concurrent use.
type Authorizer struct {
	permitted []string
	policy    MatchPolicy
}

// NewAuthorizer creates an authorizer for the given permitted scopes and
// match policy. An unknown policy is rejected so a configuration typo
// cannot silently widen the match behavior.
func NewAuthorizer(permitted []string, policy MatchPolicy) (*Authorizer, error) {
	switch policy {
	case MatchExact, MatchPrefix:
	default:
		return nil, fmt.Errorf("unknown scope match policy %q", policy)
	}

	return &Authorizer{
		permitted: permitted,
		policy:    policy,
	}, nil
}

// Authorize returns Allow iff the requested scope claim is non-empty and
// every scope it names is covered by the permitted set. The claim may
// carry multiple space-separated scopes per the OAuth scope syntax.
func (a *Authorizer) Authorize(requestedScope string) Decision {
	requested := ParseScopes(requestedScope)
	if len(requested) == 0 || len(a.permitted) == 0 {
		return Deny
	}

	for _, scope := range requested {
		if !a.covers(scope) {
			return Deny
		}
	}

	return Allow
}

// covers reports whether a single requested scope matches the permitted set
// under the configured policy.
func (a *Authorizer) covers(scope string) bool {
	for _, p := range a.permitted {
		if scope == p {
			return true
		}
		if a.policy == MatchPrefix && strings.HasPrefix(scope, p+scopeDelimiter) {
			return true
		}
	}
	return false
}

// ParseScopes parses a space-separated scope string into a slice.
func ParseScopes(scopeStr string) []string {
	if scopeStr == "" {
		return nil
	}

	parts := strings.Split(scopeStr, " ")
	var scopes []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			scopes = append(scopes, trimmed)
		}
	}
	return scopes
}
