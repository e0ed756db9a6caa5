// Package ui provides the terminal user interface for the Mingle client.
//
// # Architecture Overview
//
// The UI is built on Bubble Tea. A single root Model owns the navigation
// shell (nav bar, snackbar, confirm prompt, loading indicator) and exactly
// one mounted page at a time. Pages are self-contained models implementing
// the page interface; navigating replaces the current page wholesale, so no
// screen state ever leaks across routes.
//
// # Navigation
//
// Routes are URL-style paths resolved by the router package. The root model
// keeps a browser-like history: "[" walks back, "]" walks forward, and the
// uppercase keys (H, F, E, P, S, C, O, R, L) jump straight to their pages.
// Pages request navigation by emitting a navigateMsg rather than touching
// the shell directly.
//
// # Stale Responses
//
// Every mount increments a sequence number that is stamped into the fetch
// commands a page issues. Result messages implement the sequenced interface,
// and the root model drops any result whose stamp no longer matches, so a
// slow response can never paint a page the user already left. Fetches also
// run under per-key flight groups, which cancel the previous request for the
// same key before starting a new one.
//
// # Pages
//
// One file per screen, named page_<route>.go:
//
//   - page_home.go: landing screen with follow suggestions
//   - page_login.go: sign-in and sign-up forms (huh)
//   - page_feed.go: post feed with compose and delete
//   - page_events.go: paginated events list
//   - page_event.go: event detail with tickets, merch and media tabs
//   - page_places.go, page_place.go: venue list and detail
//   - page_create_event.go, page_create_place.go: creation forms
//   - page_profile.go, page_user.go: own and public profiles
//   - page_search.go: platform-wide search
//   - page_settings.go: account settings
//
// Forms use huh embedded as a Bubble Tea model; while a form (or any text
// input) is focused the page reports capturesInput and the shell suspends
// its global key bindings.
package ui
