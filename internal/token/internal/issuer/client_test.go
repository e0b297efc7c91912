package issuer

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	ierrors "github.com/authbridge/gateway-authorizer/internal/errors"
	"github.com/authbridge/gateway-authorizer/internal/token/tokencore"
)

// testRequest is the issuance request used across tests.
var testRequest = tokencore.IssuanceRequest{
	ClientID:     "client-a",
	ClientSecret: "secret",
	Scope:        "urn:backend:invoke",
}

// newTokenEndpoint creates a token endpoint stub that validates the
// client-credentials request shape before responding.
func newTokenEndpoint(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func TestClient_Issue(t *testing.T) {
	t.Parallel()

	server := newTokenEndpoint(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("token endpoint called with method %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
			t.Errorf("Content-Type = %q, want form encoding", ct)
		}
		if _, _, ok := r.BasicAuth(); !ok {
			t.Error("token endpoint called without Basic client authentication")
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("failed to parse form: %v", err)
		}
		if got := r.PostForm.Get("grant_type"); got != "client_credentials" {
			t.Errorf("grant_type = %q, want client_credentials", got)
		}
		if got := r.PostForm.Get("scope"); got != testRequest.Scope {
			t.Errorf("scope = %q, want %q", got, testRequest.Scope)
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "opaque-token",
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	})

	client := NewClient(server.URL, 5*time.Second)
	before := time.Now()

	tok, err := client.Issue(context.Background(), testRequest)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if tok.Value != "opaque-token" {
		t.Errorf("Issue() value = %q, want %q", tok.Value, "opaque-token")
	}

	// Expiry comes from expires_in for opaque tokens.
	wantExpiry := before.Add(3600 * time.Second)
	if tok.ExpiresAt.Before(wantExpiry.Add(-5*time.Second)) || tok.ExpiresAt.After(wantExpiry.Add(5*time.Second)) {
		t.Errorf("Issue() expiry = %v, want about %v", tok.ExpiresAt, wantExpiry)
	}
}

func TestClient_IssueOmitsEmptyScope(t *testing.T) {
	t.Parallel()

	server := newTokenEndpoint(t, func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatalf("failed to parse form: %v", err)
		}
		if _, present := r.PostForm["scope"]; present {
			t.Error("scope parameter should be omitted when not configured")
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "opaque-token",
			"expires_in":   3600,
		})
	})

	client := NewClient(server.URL, 5*time.Second)

	req := tokencore.IssuanceRequest{ClientID: "client-a", ClientSecret: "secret"}
	if _, err := client.Issue(context.Background(), req); err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
}

func TestClient_IssueNonSuccessStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
	}{
		{name: "unauthorized", status: http.StatusUnauthorized},
		{name: "bad request", status: http.StatusBadRequest},
		{name: "server error", status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := newTokenEndpoint(t, func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, `{"error":"invalid_client"}`, tt.status)
			})

			client := NewClient(server.URL, 5*time.Second)

			_, err := client.Issue(context.Background(), testRequest)
			if err == nil {
				t.Fatal("Issue() error = nil, want issuance error")
			}
			if !errors.Is(err, ierrors.ErrIssuance) {
				t.Errorf("Issue() error = %v, want kind ErrIssuance", err)
			}
		})
	}
}

func TestClient_IssueMalformedResponse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: "<html>oops</html>"},
		{name: "missing access_token", body: `{"token_type":"Bearer","expires_in":3600}`},
		{name: "empty access_token", body: `{"access_token":"","expires_in":3600}`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := newTokenEndpoint(t, func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(tt.body))
			})

			client := NewClient(server.URL, 5*time.Second)

			_, err := client.Issue(context.Background(), testRequest)
			if err == nil {
				t.Fatal("Issue() error = nil, want issuance error")
			}
			if !errors.Is(err, ierrors.ErrIssuance) {
				t.Errorf("Issue() error = %v, want kind ErrIssuance", err)
			}
		})
	}
}

func TestClient_IssueMissingLifetimeUsesFallback(t *testing.T) {
	t.Parallel()

	server := newTokenEndpoint(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "opaque-token",
		})
	})

	client := NewClient(server.URL, 5*time.Second)
	before := time.Now()

	tok, err := client.Issue(context.Background(), testRequest)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	wantExpiry := before.Add(fallbackLifetime)
	if tok.ExpiresAt.Before(wantExpiry.Add(-5*time.Second)) || tok.ExpiresAt.After(wantExpiry.Add(5*time.Second)) {
		t.Errorf("Issue() expiry = %v, want fallback about %v", tok.ExpiresAt, wantExpiry)
	}
}

func TestClient_IssueNetworkError(t *testing.T) {
	t.Parallel()

	// Endpoint that is already closed.
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()

	client := NewClient(server.URL, 1*time.Second)

	_, err := client.Issue(context.Background(), testRequest)
	if err == nil {
		t.Fatal("Issue() error = nil, want network error")
	}
	if !errors.Is(err, ierrors.ErrIssuance) {
		t.Errorf("Issue() error = %v, want kind ErrIssuance", err)
	}
}

func TestClient_IssueTimeout(t *testing.T) {
	t.Parallel()

	block := make(chan struct{})
	server := newTokenEndpoint(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-block:
		case <-r.Context().Done():
		}
	})
	defer close(block)

	client := NewClient(server.URL, 50*time.Millisecond)

	_, err := client.Issue(context.Background(), testRequest)
	if err == nil {
		t.Fatal("Issue() error = nil, want timeout error")
	}
	if !errors.Is(err, ierrors.ErrIssuance) {
		t.Errorf("Issue() error = %v, want kind ErrIssuance", err)
	}

	var domainErr *ierrors.DomainError
	if !errors.As(err, &domainErr) {
		t.Fatalf("Issue() error = %T, want *DomainError", err)
	}
	if got := domainErr.Context["reason"]; got != "timeout" {
		t.Errorf("error reason = %v, want timeout", got)
	}
}
