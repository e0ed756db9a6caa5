// Package api provides the HTTP client for the Mingle platform API.
//
// # Overview
//
// The client wraps net/http with the platform's conventions: bearer-token
// auth, JSON and multipart bodies, and a single transparent refresh-and-retry
// cycle after a 401. Endpoint methods are thin typed wrappers over the shared
// request path in client.go.
//
// # Authentication
//
// Requests attach "Authorization: Bearer <token>" whenever the configured
// CredentialSource holds a token. A 401 on an authenticated request triggers
// exactly one RefreshAccess call followed by one retry with the new token.
// The auth endpoints themselves opt out of that cycle so a failing refresh
// can never recurse.
//
// # Error taxonomy
//
//   - *HTTPError: non-2xx response, carrying status and raw body
//   - *NetworkError: transport failure (connection refused, DNS, offline)
//   - *MalformedError: 2xx body that fails to decode into the expected shape
//   - ErrAuthRequired: 401 whose refresh attempt failed
//   - context.Canceled: expected outcome of a superseded request; detect
//     with Aborted(err) and never surface it to the user
//
// A 2xx response with an empty body decodes to the zero value and returns a
// nil error.
//
// # Timeouts
//
// The client sets no request timeout of its own. A hanging request is bounded
// only by context cancellation, typically a superseding request through the
// flight package.
package api
