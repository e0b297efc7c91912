// Package gateway provides the authorizer entry point: it receives one
// gateway invocation, composes the scope decision with the cached upstream
// token, and produces the gateway's expected response shape.
package gateway

import (
	"context"

	"github.com/authbridge/gateway-authorizer/internal/authz"
)

// ContextKeyToken is the response context key the gateway forwards to the
// protected backend as its Authorization value.
const ContextKeyToken = "token_response"

// Request is one inbound gateway invocation. The gateway has already
// authenticated the caller; the authorizer consumes only the requested
// scope claim and passes the remaining context through untouched.
type Request struct {
	// Scope is the requested-scope claim extracted from the inbound call.
	// It may carry multiple space-separated scopes.
	Scope string `json:"scope"`

	// Context carries gateway-provided pass-through fields the backend
	// needs. The authorizer never interprets them.
	Context map[string]string `json:"context,omitempty"`
}

// Result is the decision object returned to the gateway. On DENY the
// context carries no token field.
type Result struct {
	// Decision is ALLOW or DENY.
	Decision authz.Decision `json:"decision"`

	// Scope echoes the authorized scope claim on ALLOW.
	Scope string `json:"scope,omitempty"`

	// Context carries the upstream token (under ContextKeyToken, only on
	// ALLOW) plus any pass-through fields from the request.
	Context map[string]string `json:"context,omitempty"`
}

// Handler handles one gateway invocation.
// Implementations must always resolve to a Result: failures inside the
// authorizer map to DENY, never to an error surfaced to the gateway.
type Handler interface {
	// Authorize produces the decision for one invocation. On ALLOW the
	// result context carries the upstream bearer token; on DENY it does
	// not, and the denial reason is surfaced only in diagnostic logs.
	Authorize(ctx context.Context, req *Request) *Result
}
