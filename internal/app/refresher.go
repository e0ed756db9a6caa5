package app

import (
	"context"
	"time"

	"github.com/davfen/mingle/internal/debuglog"
)

const (
	defaultRefreshCheck = 30 * time.Second

	// expiryLeeway renews tokens that are about to expire, not only ones
	// already past their deadline.
	expiryLeeway = time.Minute
)

// tokenSession is the slice of the session manager the refresher needs.
type tokenSession interface {
	Authenticated() bool
	TokenExpired(now time.Time) bool
	RefreshAccess(ctx context.Context) error
}

// StartRefresher launches a background goroutine that renews the access token
// shortly before it expires. It returns immediately.
func StartRefresher(ctx context.Context, sess tokenSession, interval time.Duration) {
	if interval <= 0 {
		interval = defaultRefreshCheck
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
			refreshIfNeeded(ctx, sess)
		}
	}()
}

func refreshIfNeeded(ctx context.Context, sess tokenSession) {
	if !sess.Authenticated() {
		return
	}
	if !sess.TokenExpired(time.Now().Add(expiryLeeway)) {
		return
	}
	if err := sess.RefreshAccess(ctx); err != nil {
		debuglog.Error("background token refresh", err)
	}
}
