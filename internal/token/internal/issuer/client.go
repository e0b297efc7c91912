// Package issuer provides the client-credentials client for the identity
// provider's token endpoint.
package issuer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/authbridge/gateway-authorizer/internal/token/tokencore"
	"github.com/authbridge/gateway-authorizer/internal/token/tokenerr"
)

const (
	// grantTypeClientCredentials is the OAuth 2.0 grant type used for
	// every issuance call (RFC 6749 Section 4.4).
	grantTypeClientCredentials = "client_credentials"

	// maxResponseBodySize bounds token endpoint response reads (1 MB).
	maxResponseBodySize = 1 << 20

	// fallbackLifetime is assumed when the provider reports no lifetime
	// and the token carries no readable exp claim.
	fallbackLifetime = 5 * time.Minute
)

// tokenResponse is the subset of the token endpoint response the client
// consumes (RFC 6749 Section 5.1).
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// Client performs token issuance calls against a single token endpoint.
// It makes exactly one network call per Issue invocation; retries, if any,
// are the caller's responsibility.
type Client struct {
	httpClient  *http.Client
	endpointURL string
	now         func() time.Time
}

// NewClient creates a new issuer client for the given token endpoint.
// The timeout bounds the whole issuance call including body read.
func NewClient(endpointURL string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		endpointURL: endpointURL,
		now:         time.Now,
	}
}

// Issue performs one client-credentials call and returns the issued token
// with its computed expiry. The expiry is taken from the token's own exp
// claim when it is a readable JWT, falling back to the provider-reported
// expires_in, then to a fixed five minute lifetime.
//
// Returns an issuance DomainError when the network call errors, the
// response status is not success, or the response is missing the token value.
func (c *Client) Issue(ctx context.Context, req tokencore.IssuanceRequest) (tokencore.CachedToken, error) {
	form := url.Values{}
	form.Set("grant_type", grantTypeClientCredentials)
	if req.Scope != "" {
		form.Set("scope", req.Scope)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpointURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return tokencore.CachedToken{}, tokenerr.NewNetworkError("Issue", err)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.SetBasicAuth(url.QueryEscape(req.ClientID), url.QueryEscape(req.ClientSecret))

	issuedAt := c.now()

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if isTimeout(err) {
			return tokencore.CachedToken{}, tokenerr.NewTimeoutError("Issue", err)
		}
		return tokencore.CachedToken{}, tokenerr.NewNetworkError("Issue", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return tokencore.CachedToken{}, tokenerr.NewStatusError("Issue", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
	if err != nil {
		return tokencore.CachedToken{}, tokenerr.NewNetworkError("Issue", err)
	}

	var tokenResp tokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return tokencore.CachedToken{}, tokenerr.NewMalformedResponseError("Issue", err)
	}

	if tokenResp.AccessToken == "" {
		return tokencore.CachedToken{}, tokenerr.NewMalformedResponseError("Issue",
			fmt.Errorf("token endpoint response missing access_token"))
	}

	return tokencore.CachedToken{
		Value:     tokenResp.AccessToken,
		ExpiresAt: c.resolveExpiry(issuedAt, &tokenResp),
	}, nil
}

// resolveExpiry computes the token's absolute expiry instant.
func (c *Client) resolveExpiry(issuedAt time.Time, resp *tokenResponse) time.Time {
	if exp, ok := expiryFromClaims(resp.AccessToken); ok {
		return exp
	}
	if resp.ExpiresIn > 0 {
		return issuedAt.Add(time.Duration(resp.ExpiresIn) * time.Second)
	}
	return issuedAt.Add(fallbackLifetime)
}

// isTimeout reports whether the error represents a deadline or timeout.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Timeout()
	}
	return false
}
