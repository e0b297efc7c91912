// Package tokenerr provides issuance error constructors.
// This package is separate from internal/token to avoid import cycles
// when internal packages need to create issuance errors.
package tokenerr

import (
	"fmt"

	ierrors "github.com/authbridge/gateway-authorizer/internal/errors"
)

// Domain identifier for token errors.
const domainToken = "token"

// Reason values recorded in error context for diagnostics.
const (
	ReasonNetwork           = "network"
	ReasonTimeout           = "timeout"
	ReasonStatus            = "status"
	ReasonMalformedResponse = "malformed_response"
)

// NewNetworkError creates a DomainError for a failed network call to the
// identity provider's token endpoint.
func NewNetworkError(op string, err error) *ierrors.DomainError {
	return ierrors.New(domainToken, op, ierrors.ErrIssuance, err).
		WithContext("reason", ReasonNetwork)
}

// NewTimeoutError creates a DomainError for a token endpoint call that
// exceeded its deadline.
func NewTimeoutError(op string, err error) *ierrors.DomainError {
	return ierrors.New(domainToken, op, ierrors.ErrIssuance, err).
		WithContext("reason", ReasonTimeout)
}

// NewStatusError creates a DomainError for a non-success response status
// from the token endpoint. The response body is deliberately not captured
// so provider error detail cannot leak into caller-visible output.
func NewStatusError(op string, statusCode int) *ierrors.DomainError {
	return ierrors.New(domainToken, op, ierrors.ErrIssuance,
		fmt.Errorf("token endpoint returned status %d", statusCode)).
		WithContext("reason", ReasonStatus).
		WithContext("status_code", statusCode)
}

// NewMalformedResponseError creates a DomainError for a token endpoint
// response missing required fields or failing to decode.
func NewMalformedResponseError(op string, err error) *ierrors.DomainError {
	return ierrors.New(domainToken, op, ierrors.ErrIssuance, err).
		WithContext("reason", ReasonMalformedResponse)
}
