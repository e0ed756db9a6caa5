// Package session owns the authentication state of the client: tokens,
// the persisted credential file, the cached profile, and the single-flight
// token refresh the API client calls into on a 401.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"net/mail"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/sync/singleflight"

	"github.com/davfen/mingle/internal/api"
	"github.com/davfen/mingle/internal/debuglog"
)

// State is the session lifecycle state.
type State int

const (
	Anonymous State = iota
	Authenticated
	Refreshing
)

func (s State) String() string {
	switch s {
	case Authenticated:
		return "authenticated"
	case Refreshing:
		return "refreshing"
	default:
		return "anonymous"
	}
}

// Authenticator is the slice of the API client the manager needs. Implemented
// by *api.Client and by test doubles.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (api.AuthData, error)
	Register(ctx context.Context, username, email, password string) error
	RefreshToken(ctx context.Context, refreshToken string) (string, error)
}

// ValidationError is a client-side field check failure. No request is sent
// when one occurs.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Manager owns the token pair, the user identity, and the cached profile.
// It is the only writer of session state; every other component reads it
// through the Manager's interface.
type Manager struct {
	auth  Authenticator
	store *Store

	mu        sync.RWMutex
	access    string
	refresh   string
	userID    string
	profile   *api.Profile
	state     State
	listeners []func()

	group singleflight.Group
}

// NewManager builds a Manager, restoring any persisted session from store.
func NewManager(auth Authenticator, store *Store) *Manager {
	m := &Manager{auth: auth, store: store, state: Anonymous}

	creds := store.Load()
	if creds.AccessToken != "" {
		m.access = creds.AccessToken
		m.refresh = creds.RefreshToken
		m.userID = creds.UserID
		if m.userID == "" {
			m.userID = subjectClaim(creds.AccessToken)
		}
		m.state = Authenticated
		if creds.ProfileJSON != "" {
			var profile api.Profile
			if err := json.Unmarshal([]byte(creds.ProfileJSON), &profile); err == nil {
				m.profile = &profile
			}
		}
	}
	return m
}

// OnChange registers a listener invoked after every session transition
// (login, refresh, logout, profile cache change).
func (m *Manager) OnChange(fn func()) {
	m.mu.Lock()
	m.listeners = append(m.listeners, fn)
	m.mu.Unlock()
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Authenticated reports whether a token is held. Mutating operations must
// check this before issuing any request.
func (m *Manager) Authenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.access != ""
}

// AccessToken implements api.CredentialSource.
func (m *Manager) AccessToken() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.access
}

// UserID returns the logged-in user's id, empty when anonymous.
func (m *Manager) UserID() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.userID
}

// Login exchanges credentials for a session and persists it.
func (m *Manager) Login(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return &ValidationError{Message: "please enter a username and password"}
	}

	data, err := m.auth.Login(ctx, username, password)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.access = data.Token
	m.refresh = data.RefreshToken
	m.userID = data.UserID
	if m.userID == "" {
		m.userID = subjectClaim(data.Token)
	}
	m.state = Authenticated
	m.profile = nil
	m.mu.Unlock()

	m.persist()
	m.notify()
	return nil
}

// Signup validates the fields locally, then registers the account. The new
// user is not authenticated; the caller redirects to the login screen.
func (m *Manager) Signup(ctx context.Context, username, email, password string) error {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if n := len(username); n < 3 || n > 20 {
		return &ValidationError{Message: "username must be between 3 and 20 characters"}
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return &ValidationError{Message: "please enter a valid email"}
	}
	if len(password) < 6 {
		return &ValidationError{Message: "password must be at least 6 characters long"}
	}

	return m.auth.Register(ctx, username, email, password)
}

// RefreshAccess replaces the access token using the stored refresh token.
// Concurrent callers are funnelled through a single in-flight refresh and all
// receive its result. Implements api.CredentialSource.
func (m *Manager) RefreshAccess(ctx context.Context) error {
	_, err, _ := m.group.Do("refresh", func() (any, error) {
		return nil, m.refreshOnce(ctx)
	})
	return err
}

func (m *Manager) refreshOnce(ctx context.Context) error {
	m.mu.Lock()
	refresh := m.refresh
	if refresh == "" {
		m.clearLocked()
		m.mu.Unlock()
		m.clearStore()
		m.notify()
		return fmt.Errorf("no refresh token held")
	}
	m.state = Refreshing
	m.mu.Unlock()

	token, err := m.auth.RefreshToken(ctx, refresh)
	if err != nil {
		if api.Aborted(err) {
			// The triggering request went away; leave the session intact so
			// the next request can retry the refresh.
			m.mu.Lock()
			if m.state == Refreshing {
				m.state = Authenticated
			}
			m.mu.Unlock()
			return err
		}
		debuglog.Error("token refresh", err)
		m.Logout()
		return err
	}

	m.mu.Lock()
	m.access = token
	m.state = Authenticated
	m.mu.Unlock()

	m.persist()
	m.notify()
	return nil
}

// Logout clears the session in memory and on disk. It is idempotent: logging
// out while anonymous changes nothing. The interactive confirmation lives in
// the UI layer.
func (m *Manager) Logout() {
	m.mu.Lock()
	wasAnonymous := m.access == "" && m.refresh == "" && m.userID == ""
	m.clearLocked()
	m.mu.Unlock()

	if wasAnonymous {
		return
	}
	m.clearStore()
	m.notify()
}

// CachedProfile returns the cached profile, or nil when absent. The cache is
// served before any network call and invalidated only on update or logout.
func (m *Manager) CachedProfile() *api.Profile {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.profile == nil {
		return nil
	}
	clone := *m.profile
	return &clone
}

// SetProfile replaces the cached profile and persists it.
func (m *Manager) SetProfile(profile *api.Profile) {
	m.mu.Lock()
	if profile == nil {
		m.profile = nil
	} else {
		clone := *profile
		m.profile = &clone
	}
	m.mu.Unlock()
	m.persist()
	m.notify()
}

// InvalidateProfile drops the cached profile without touching the tokens.
func (m *Manager) InvalidateProfile() {
	m.mu.Lock()
	m.profile = nil
	m.mu.Unlock()
	m.persist()
}

// TokenExpired reports whether the held access token's exp claim is in the
// past. The claim is decoded without verification; it is a trusted hint, not
// a security check.
func (m *Manager) TokenExpired(now time.Time) bool {
	m.mu.RLock()
	token := m.access
	m.mu.RUnlock()
	if token == "" {
		return false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}

func (m *Manager) clearLocked() {
	m.access = ""
	m.refresh = ""
	m.userID = ""
	m.profile = nil
	m.state = Anonymous
}

func (m *Manager) persist() {
	m.mu.RLock()
	creds := Credentials{
		AccessToken:  m.access,
		RefreshToken: m.refresh,
		UserID:       m.userID,
	}
	if m.profile != nil {
		if encoded, err := json.Marshal(m.profile); err == nil {
			creds.ProfileJSON = string(encoded)
		}
	}
	m.mu.RUnlock()

	if err := m.store.Save(creds); err != nil {
		debuglog.Error("persist session", err)
	}
}

func (m *Manager) clearStore() {
	if err := m.store.Clear(); err != nil {
		debuglog.Error("clear session store", err)
	}
}

func (m *Manager) notify() {
	m.mu.RLock()
	listeners := make([]func(), len(m.listeners))
	copy(listeners, m.listeners)
	m.mu.RUnlock()

	for _, fn := range listeners {
		fn()
	}
}

// subjectClaim pulls the sub claim out of a JWT without verifying it.
func subjectClaim(token string) string {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return ""
	}
	sub, err := claims.GetSubject()
	if err != nil {
		return ""
	}
	return sub
}
