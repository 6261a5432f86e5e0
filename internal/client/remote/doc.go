// Package remote talks to the storefront REST backend.
//
// # Overview
//
// Client is the transport-agnostic contract used by the services layer: one
// method per backend operation, each issuing exactly one request and
// returning the decoded response envelope. HTTPClient implements it over
// net/http and JSON.
//
// # Error Handling
//
// Only transport problems are errors here: a request that could not be sent,
// a broken connection, or a body that is not a JSON envelope. These are
// returned as *common.NetworkError. An envelope with success=false is a
// normal return value; deciding what it means is up to the caller.
//
// The client never retries and never validates input.
//
// See Also
//
//   - Interface: Client
//   - HTTP impl: HTTPClient
//   - Test backend: package remotetest
package remote
