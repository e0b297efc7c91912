package transportcore

import "errors"

// Sentinel errors for transport operations.
var (
	// ErrServerClosed indicates the server has been shut down.
	ErrServerClosed = errors.New("server closed")

	// ErrMalformedRequest indicates the invocation body could not be decoded.
	ErrMalformedRequest = errors.New("malformed request body")
)
