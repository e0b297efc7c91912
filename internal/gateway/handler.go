package gateway

import (
	"context"
	"log/slog"

	"github.com/authbridge/gateway-authorizer/internal/authz"
	"github.com/authbridge/gateway-authorizer/internal/token"
	"github.com/authbridge/gateway-authorizer/internal/token/tokencore"
)

// Denial reasons recorded in diagnostic logs. A scope mismatch and an
// issuance failure both surface to the gateway as the same DENY, so the
// log reason is the only place they stay distinguishable.
const (
	reasonInsufficientScope = "insufficient_scope"
	reasonIssuanceFailed    = "issuance_failed"
)

// ScopeAuthorizer is the scope decision dependency of the entry point.
type ScopeAuthorizer interface {
	Authorize(requestedScope string) authz.Decision
}

// handler implements Handler.
type handler struct {
	tokens   token.Manager
	scopes   ScopeAuthorizer
	issuance tokencore.IssuanceRequest
	logger   *slog.Logger
}

// NewHandler creates the entry point over the token manager and scope
// authorizer. The issuance request is the configured client credential,
// immutable for the process lifetime. If logger is nil, the default slog
// logger is used.
func NewHandler(tokens token.Manager, scopes ScopeAuthorizer, issuance tokencore.IssuanceRequest, logger *slog.Logger) Handler {
	if tokens == nil {
		panic("token manager cannot be nil")
	}
	if scopes == nil {
		panic("scope authorizer cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &handler{
		tokens:   tokens,
		scopes:   scopes,
		issuance: issuance,
		logger:   logger,
	}
}

// Authorize decides one invocation. The scope decision runs first so a
// request that will be denied anyway never triggers an issuance call; the
// token is fetched only for invocations that are otherwise allowed.
func (h *handler) Authorize(ctx context.Context, req *Request) *Result {
	if req == nil {
		req = &Request{}
	}

	if h.scopes.Authorize(req.Scope) != authz.Allow {
		h.logger.Warn("invocation denied",
			"reason", reasonInsufficientScope,
			"requested_scope", req.Scope,
		)
		return h.deny(req)
	}

	tok, err := h.tokens.GetValidToken(ctx, h.issuance)
	if err != nil {
		// Issuance failure resolves to DENY, never ALLOW without a
		// token. The error detail stays in the log.
		h.logger.Error("invocation denied",
			"reason", reasonIssuanceFailed,
			"requested_scope", req.Scope,
			"error", err,
		)
		return h.deny(req)
	}

	h.logger.Info("invocation allowed", "requested_scope", req.Scope)

	result := &Result{
		Decision: authz.Allow,
		Scope:    req.Scope,
		Context:  passthrough(req),
	}
	result.Context[ContextKeyToken] = "Bearer " + tok.Value
	return result
}

// deny builds a DENY result carrying pass-through context but no token.
func (h *handler) deny(req *Request) *Result {
	return &Result{
		Decision: authz.Deny,
		Context:  req.Context,
	}
}

// passthrough copies the request's pass-through context so the result can
// be extended without mutating the caller's map.
func passthrough(req *Request) map[string]string {
	out := make(map[string]string, len(req.Context)+1)
	for k, v := range req.Context {
		out[k] = v
	}
	return out
}
