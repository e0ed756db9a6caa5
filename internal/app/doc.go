// Package app provides the orchestration layer for the Mingle client.
//
// It is the composition root: configuration is loaded, the debug log, API
// client and session manager are wired together, the background token
// refresher is started, and the UI runs until the context is cancelled.
//
// The refresher goroutine checks the access token on a fixed cadence and
// renews it shortly before expiry, so interactive requests rarely hit the
// 401-refresh-retry path in the API client.
package app
