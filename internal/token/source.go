package token

import (
	"context"

	"golang.org/x/oauth2"

	"github.com/authbridge/gateway-authorizer/internal/token/tokencore"
)

// managerTokenSource adapts a Manager to oauth2.TokenSource so embedding
// programs can plug the shared cache into oauth2 transports.
type managerTokenSource struct {
	ctx     context.Context
	manager Manager
	request tokencore.IssuanceRequest
}

// NewTokenSource returns an oauth2.TokenSource backed by the manager's
// cache and refresh protocol. The context is used for every issuance call
// made on behalf of Token, matching the oauth2 package's own convention
// for client-credentials sources.
func NewTokenSource(ctx context.Context, mgr Manager, req tokencore.IssuanceRequest) oauth2.TokenSource {
	return &managerTokenSource{
		ctx:     ctx,
		manager: mgr,
		request: req,
	}
}

// Token returns a fresh oauth2.Token, issuing one through the manager
// if the cache holds nothing usable.
func (s *managerTokenSource) Token() (*oauth2.Token, error) {
	tok, err := s.manager.GetValidToken(s.ctx, s.request)
	if err != nil {
		return nil, err
	}

	return &oauth2.Token{
		AccessToken: tok.Value,
		TokenType:   "Bearer",
		Expiry:      tok.ExpiresAt,
	}, nil
}
