// Package transport provides the HTTP surface the API gateway invokes.
//
// # Architecture
//
// The transport layer connects the gateway's invocation contract with the
// authorizer entry point. The exact transport shape is gateway-defined; the
// core consumes only the requested-scope claim from the decoded invocation.
//
// Package structure:
//
//	internal/transport/
//	├── doc.go                    # This file
//	├── wire.go                   # Composition of router, middleware, server
//	├── transportcore/
//	│   ├── types.go              # Server, Middleware, ErrorResponder
//	│   └── errors.go             # Transport sentinel errors
//	└── internal/
//	    ├── httpserver/
//	    │   ├── server.go         # HTTP server with graceful shutdown
//	    │   └── response.go       # JSON error responder
//	    ├── middleware/
//	    │   ├── logging.go        # Request logging with request IDs
//	    │   └── recovery.go       # Panic recovery
//	    ├── handlers/
//	    │   ├── authorize.go      # POST /authorize
//	    │   └── health.go         # GET /health
//	    └── mocks/
//	        └── mocks.go          # Test doubles for the transport layer
//
// # Response contract
//
// ALLOW and DENY decisions are both 200 responses carrying the decision
// object; a DENY is a normal outcome, not a transport error. The only
// error statuses are 400 for a body that cannot be decoded and 500 for an
// unexpected internal failure, and neither carries internal detail, token
// values, or provider error bodies.
package transport
