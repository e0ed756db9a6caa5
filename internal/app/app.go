package app

import (
	"context"
	"fmt"

	"github.com/davfen/mingle/internal/api"
	"github.com/davfen/mingle/internal/config"
	"github.com/davfen/mingle/internal/debuglog"
	"github.com/davfen/mingle/internal/session"
	"github.com/davfen/mingle/internal/ui"
)

// Options configure the Mingle application.
type Options struct {
	ConfigPath string
	APIBaseURL string // overrides the configured base URL when set
}

// Run boots the Mingle TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.APIBaseURL != "" {
		cfg.APIBaseURL = opts.APIBaseURL
	}

	if err := debuglog.Init(cfg.DebugLogPath()); err != nil {
		return fmt.Errorf("init debug log: %w", err)
	}
	defer debuglog.Sync()

	client, err := api.NewClient(cfg.APIBaseURL)
	if err != nil {
		return fmt.Errorf("init api client: %w", err)
	}

	store := session.NewStore(cfg.CredentialsPath())
	sess := session.NewManager(client, store)
	client.SetCredentials(sess)

	// Keep the access token fresh in the background so interactive requests
	// rarely pay the refresh round trip.
	StartRefresher(ctx, sess, defaultRefreshCheck)

	uiOpts := ui.Options{
		Context:   ctx,
		Client:    client,
		Session:   sess,
		ThemeName: cfg.Theme,
		PageSize:  cfg.PageSize,
		StartPath: "/",
	}
	return ui.Run(uiOpts)
}
