package config

import (
	"fmt"
	"net/url"
	"time"
)

// Validate checks that the configuration is valid and complete.
// It returns an error if required fields are missing or values are invalid.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config cannot be nil")
	}

	// Validate server configuration
	if err := validateServer(cfg); err != nil {
		return fmt.Errorf("invalid server config: %w", err)
	}

	// Validate token configuration
	if err := validateToken(cfg); err != nil {
		return fmt.Errorf("invalid token config: %w", err)
	}

	// Validate authorization configuration
	if err := validateAuthz(cfg); err != nil {
		return fmt.Errorf("invalid authz config: %w", err)
	}

	return nil
}

// isLocalhost returns true if the host is localhost or a loopback address.
// It handles bare hostnames and host:port combinations.
func isLocalhost(host string) bool {
	if host == "localhost" || host == "127.0.0.1" {
		return true
	}

	if len(host) > len("localhost:") && host[:len("localhost:")] == "localhost:" {
		return true
	}
	if len(host) > len("127.0.0.1:") && host[:len("127.0.0.1:")] == "127.0.0.1:" {
		return true
	}

	return false
}

// validateServer validates the server-related fields.
func validateServer(cfg *Config) error {
	if cfg.Addr == "" {
		return fmt.Errorf("SERVER_ADDR is required")
	}

	if cfg.ReadTimeout <= 0 {
		return fmt.Errorf("SERVER_READ_TIMEOUT must be positive")
	}

	if cfg.WriteTimeout <= 0 {
		return fmt.Errorf("SERVER_WRITE_TIMEOUT must be positive")
	}

	// IdleTimeout of 0 is allowed, meaning no timeout.
	if cfg.IdleTimeout < 0 {
		return fmt.Errorf("SERVER_IDLE_TIMEOUT must be non-negative")
	}

	return nil
}

// validateToken validates the token issuance fields.
func validateToken(cfg *Config) error {
	if cfg.TokenEndpointURL == "" {
		return fmt.Errorf("TOKEN_ENDPOINT_URL is required")
	}

	parsedURL, err := url.Parse(cfg.TokenEndpointURL)
	if err != nil {
		return fmt.Errorf("invalid TOKEN_ENDPOINT_URL: %w", err)
	}

	if !parsedURL.IsAbs() {
		return fmt.Errorf("TOKEN_ENDPOINT_URL must be an absolute URL")
	}

	if parsedURL.Scheme != "https" && parsedURL.Scheme != "http" {
		return fmt.Errorf("TOKEN_ENDPOINT_URL must use http or https scheme")
	}

	// Credentials travel over this URL; plain HTTP is only acceptable
	// against a local stand-in for the identity provider.
	if parsedURL.Scheme == "http" && !isLocalhost(parsedURL.Host) {
		return fmt.Errorf("TOKEN_ENDPOINT_URL must use https scheme for non-localhost hosts")
	}

	if cfg.ClientID == "" {
		return fmt.Errorf("TOKEN_CLIENT_ID is required")
	}

	if cfg.ClientSecret == "" {
		return fmt.Errorf("TOKEN_CLIENT_SECRET is required")
	}

	if cfg.ExpiryMargin <= 0 {
		return fmt.Errorf("TOKEN_EXPIRY_MARGIN must be positive")
	}

	// Clock skew between margin computation and actual use is tolerated
	// by keeping the margin generous rather than exact.
	if cfg.ExpiryMargin < time.Second {
		return fmt.Errorf("TOKEN_EXPIRY_MARGIN must be at least one second")
	}

	if cfg.RequestTimeout <= 0 {
		return fmt.Errorf("TOKEN_REQUEST_TIMEOUT must be positive")
	}

	return nil
}

// validateAuthz validates the authorization fields.
func validateAuthz(cfg *Config) error {
	if len(cfg.PermittedScopes) == 0 {
		return fmt.Errorf("AUTHZ_PERMITTED_SCOPES is required (at least one scope)")
	}

	if cfg.MatchPolicy != "exact" && cfg.MatchPolicy != "prefix" {
		return fmt.Errorf("AUTHZ_MATCH_POLICY must be %q or %q", "exact", "prefix")
	}

	return nil
}
