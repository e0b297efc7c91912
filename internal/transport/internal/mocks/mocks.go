// Package mocks provides mock implementations for testing the transport layer.
package mocks

import (
	"context"
	"net/http"

	"github.com/authbridge/gateway-authorizer/internal/authz"
	"github.com/authbridge/gateway-authorizer/internal/gateway"
)

// GatewayHandler is a mock implementation of gateway.Handler.
type GatewayHandler struct {
	AuthorizeFunc func(ctx context.Context, req *gateway.Request) *gateway.Result
	LastRequest   *gateway.Request
}

// Authorize records the request and calls the mock AuthorizeFunc.
func (m *GatewayHandler) Authorize(ctx context.Context, req *gateway.Request) *gateway.Result {
	m.LastRequest = req
	if m.AuthorizeFunc != nil {
		return m.AuthorizeFunc(ctx, req)
	}
	return &gateway.Result{Decision: authz.Deny}
}

// ErrorResponder is a mock implementation for error response handling.
type ErrorResponder struct {
	BadRequestCalled bool
	BadRequestErr    error
	InternalCalled   bool
	InternalErr      error
}

// BadRequest records the call and writes a 400 response.
func (m *ErrorResponder) BadRequest(w http.ResponseWriter, err error) {
	m.BadRequestCalled = true
	m.BadRequestErr = err
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_, _ = w.Write([]byte(`{"error":"bad_request"}`))
}

// InternalError records the call and writes a 500 response.
func (m *ErrorResponder) InternalError(w http.ResponseWriter, err error) {
	m.InternalCalled = true
	m.InternalErr = err
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write([]byte(`{"error":"internal_error"}`))
}

// Reset clears all recorded state.
func (m *ErrorResponder) Reset() {
	m.BadRequestCalled = false
	m.BadRequestErr = nil
	m.InternalCalled = false
	m.InternalErr = nil
}
