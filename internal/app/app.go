// Package app assembles the Sahayak client: config, storage, session,
// API client, state store, translation loader, connectivity watcher, and
// the terminal UI.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/krishisahayak/sahayak/internal/api"
	"github.com/krishisahayak/sahayak/internal/auth"
	"github.com/krishisahayak/sahayak/internal/config"
	"github.com/krishisahayak/sahayak/internal/logging"
	"github.com/krishisahayak/sahayak/internal/market"
	"github.com/krishisahayak/sahayak/internal/storage"
	"github.com/krishisahayak/sahayak/internal/store"
	"github.com/krishisahayak/sahayak/internal/translate"
	"github.com/krishisahayak/sahayak/internal/ui"
)

// Options configure the Sahayak application.
type Options struct {
	ConfigPath  string
	PollSeconds int // zero uses the config value
}

// Run boots the Sahayak TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.PollSeconds > 0 {
		cfg.PollSeconds = opts.PollSeconds
	}

	logger, err := logging.Open(cfg.LogPath(), cfg.Debug)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	disk, err := storage.Open(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	sessions := auth.NewManager(disk)

	st := store.New()
	client, err := api.NewClient(cfg.APIURL,
		api.WithTokenSource(sessions),
		api.WithUnauthorizedHandler(func() {
			// Token rejected server-side. Dropping the user triggers the
			// provider mirror, which clears the persisted session.
			st.Dispatch(store.SetUser{})
			st.Dispatch(store.SetError{Message: "Authentication required"})
		}))
	if err != nil {
		return fmt.Errorf("init api client: %w", err)
	}

	notifier := store.NewNotifier(st)
	defer notifier.Close()

	provider := NewProvider(st, disk, sessions, logger)
	provider.Hydrate()
	defer provider.Close()

	translations := translate.NewLoader(client, st, logger)
	translations.EnsureLanguage(ctx, st.State().Language)

	prices := market.NewService(client, st, logger)

	StartWatcher(ctx, st, notifier, client, time.Duration(cfg.PollSeconds)*time.Second, logger)

	uiOpts := ui.Options{
		Context:      ctx,
		Store:        st,
		Notifier:     notifier,
		Client:       client,
		Sessions:     sessions,
		Prices:       prices,
		Translations: translations,
		Config:       &cfg,
		Logger:       logger,
	}
	return ui.Run(uiOpts)
}
