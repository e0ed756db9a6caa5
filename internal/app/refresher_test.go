package app

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeSession struct {
	authenticated bool
	expired       bool
	refreshErr    error
	refreshCalls  int
}

func (f *fakeSession) Authenticated() bool { return f.authenticated }

func (f *fakeSession) TokenExpired(time.Time) bool { return f.expired }

func (f *fakeSession) RefreshAccess(context.Context) error {
	f.refreshCalls++
	return f.refreshErr
}

func TestRefreshIfNeeded_SkipsAnonymous(t *testing.T) {
	sess := &fakeSession{authenticated: false, expired: true}
	refreshIfNeeded(context.Background(), sess)
	if sess.refreshCalls != 0 {
		t.Errorf("refresh called %d times for anonymous session, want 0", sess.refreshCalls)
	}
}

func TestRefreshIfNeeded_SkipsFreshToken(t *testing.T) {
	sess := &fakeSession{authenticated: true, expired: false}
	refreshIfNeeded(context.Background(), sess)
	if sess.refreshCalls != 0 {
		t.Errorf("refresh called %d times for fresh token, want 0", sess.refreshCalls)
	}
}

func TestRefreshIfNeeded_RenewsExpiringToken(t *testing.T) {
	sess := &fakeSession{authenticated: true, expired: true}
	refreshIfNeeded(context.Background(), sess)
	if sess.refreshCalls != 1 {
		t.Errorf("refresh called %d times for expiring token, want 1", sess.refreshCalls)
	}
}

func TestRefreshIfNeeded_SwallowsRefreshError(t *testing.T) {
	sess := &fakeSession{
		authenticated: true,
		expired:       true,
		refreshErr:    errors.New("server down"),
	}
	// Must not panic; the failure is logged and the next tick retries.
	refreshIfNeeded(context.Background(), sess)
	if sess.refreshCalls != 1 {
		t.Errorf("refresh called %d times, want 1", sess.refreshCalls)
	}
}
