// Package config provides configuration management for the gateway token
// authorizer. Configuration is loaded once from environment variables at
// process start and immutable thereafter.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	ierrors "github.com/authbridge/gateway-authorizer/internal/errors"
)

// Config holds the complete authorizer configuration in a flat structure.
type Config struct {
	// Server settings
	// Addr is the address to bind the HTTP server (e.g., ":8080").
	Addr string

	// ReadTimeout is the maximum duration for reading the entire request.
	ReadTimeout time.Duration

	// WriteTimeout is the maximum duration before timing out writes of the response.
	WriteTimeout time.Duration

	// IdleTimeout is the maximum duration to wait for the next request when keep-alives are enabled.
	IdleTimeout time.Duration

	// Token settings
	// TokenEndpointURL is the identity provider's token endpoint.
	TokenEndpointURL string

	// ClientID identifies this authorizer at the identity provider.
	ClientID string

	// ClientSecret authenticates this authorizer. Redacted in all output.
	ClientSecret string

	// TokenScope is the optional scope string requested at issuance.
	TokenScope string

	// ExpiryMargin is the safety margin applied to token lifetimes.
	// A token within the margin of its expiry is treated as absent.
	ExpiryMargin time.Duration

	// RequestTimeout bounds each issuance call to the token endpoint.
	RequestTimeout time.Duration

	// Authorization settings
	// PermittedScopes is the set of scopes this authorizer allows.
	PermittedScopes []string

	// MatchPolicy selects scope comparison: "exact" or "prefix".
	MatchPolicy string
}

// Load reads configuration from environment variables and returns a Config.
// It sets default values for optional fields and validates the configuration.
// Validation failures are fatal at process start.
func Load() (*Config, error) {
	readTimeout, err := parseDurationWithDefault("SERVER_READ_TIMEOUT", "30s")
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_READ_TIMEOUT: %w", err)
	}

	writeTimeout, err := parseDurationWithDefault("SERVER_WRITE_TIMEOUT", "30s")
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_WRITE_TIMEOUT: %w", err)
	}

	idleTimeout, err := parseDurationWithDefault("SERVER_IDLE_TIMEOUT", "120s")
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_IDLE_TIMEOUT: %w", err)
	}

	expiryMargin, err := parseDurationWithDefault("TOKEN_EXPIRY_MARGIN", "30s")
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_EXPIRY_MARGIN: %w", err)
	}

	requestTimeout, err := parseDurationWithDefault("TOKEN_REQUEST_TIMEOUT", "10s")
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_REQUEST_TIMEOUT: %w", err)
	}

	cfg := &Config{
		// Server settings
		Addr:         getEnvWithDefault("SERVER_ADDR", ":8080"),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,

		// Token settings
		TokenEndpointURL: os.Getenv("TOKEN_ENDPOINT_URL"),
		ClientID:         os.Getenv("TOKEN_CLIENT_ID"),
		ClientSecret:     os.Getenv("TOKEN_CLIENT_SECRET"),
		TokenScope:       os.Getenv("TOKEN_SCOPE"),
		ExpiryMargin:     expiryMargin,
		RequestTimeout:   requestTimeout,

		// Authorization settings
		PermittedScopes: parseCommaSeparated("AUTHZ_PERMITTED_SCOPES"),
		MatchPolicy:     getEnvWithDefault("AUTHZ_MATCH_POLICY", "exact"),
	}

	// Validate configuration
	if err := Validate(cfg); err != nil {
		return nil, ierrors.New("config", "Load", ierrors.ErrInvalidConfig, err)
	}

	return cfg, nil
}

// getEnvWithDefault returns the environment variable value or the default if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// parseCommaSeparated parses a comma-separated environment variable into a string slice.
// Empty values are filtered out. Returns nil if the environment variable is not set.
func parseCommaSeparated(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	var result []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	if len(result) == 0 {
		return nil
	}
	return result
}

// parseDurationWithDefault parses a duration from an environment variable.
// If the variable is not set, it uses the default value.
// Returns an error if the value is set but cannot be parsed.
func parseDurationWithDefault(key, defaultValue string) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		duration, err := time.ParseDuration(defaultValue)
		if err != nil {
			return 0, fmt.Errorf("invalid default duration %q: %w", defaultValue, err)
		}
		return duration, nil
	}

	duration, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("cannot parse duration %q: %w", value, err)
	}

	return duration, nil
}

// String returns a string representation of the configuration (for debugging).
// Sensitive values are redacted.
func (c *Config) String() string {
	secret := "[REDACTED]"
	if c.ClientSecret == "" {
		secret = "<empty>"
	}
	return fmt.Sprintf("Config{Addr: %s, ReadTimeout: %v, WriteTimeout: %v, IdleTimeout: %v, TokenEndpointURL: %s, ClientID: %s, ClientSecret: %s, TokenScope: %s, ExpiryMargin: %v, RequestTimeout: %v, PermittedScopes: %v, MatchPolicy: %s}",
		c.Addr, c.ReadTimeout, c.WriteTimeout, c.IdleTimeout,
		c.TokenEndpointURL, c.ClientID, secret, c.TokenScope,
		c.ExpiryMargin, c.RequestTimeout, c.PermittedScopes, c.MatchPolicy)
}
