package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"playbeat/internal/catalog"
	"playbeat/internal/config"
	"playbeat/internal/contact"
	"playbeat/internal/deps"
	"playbeat/internal/feedback"
	"playbeat/internal/logging"
	"playbeat/internal/notifications"
	"playbeat/internal/player"
	"playbeat/internal/playlist"
	"playbeat/internal/rating"
	"playbeat/internal/remote"
	"playbeat/internal/store"
	"playbeat/internal/theme"
)

// Options overrides collaborators chosen by New. Zero values select the
// configured defaults.
type Options struct {
	Backend  store.Backend
	Catalog  *catalog.Catalog
	Player   player.Player
	Bell     feedback.Cue
	Notifier notifications.Service
	Logger   *slog.Logger
	// Intn picks quotes; nil uses math/rand/v2.
	Intn func(n int) int
}

// App owns the site state for one process.
type App struct {
	Config   *config.Config
	Logger   *slog.Logger
	Store    *store.KV
	Catalog  *catalog.Catalog
	Playlist *playlist.Manager
	Ratings  *rating.Factory
	Theme    *theme.Controller
	Remote   *remote.Service
	Contact  *contact.Submitter
	Player   player.Player
	Notifier notifications.Service
	// Bell is the audible half of the feedback cue; Cue adds the visual bump.
	Bell feedback.Cue
	Cue  feedback.Cue
}

// New opens the store (SQLite under the data directory unless opts.Backend is
// set) and loads every manager from it.
func New(ctx context.Context, cfg *config.Config, opts Options) (*App, error) {
	if cfg == nil {
		return nil, errors.New("app requires config")
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	backend := opts.Backend
	if backend == nil {
		db, err := store.Open(cfg)
		if err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}
		backend = db
	}
	kv := store.New(backend, logger)

	cat := opts.Catalog
	if cat == nil {
		cat = catalog.Default()
	}

	play := opts.Player
	if play == nil {
		play = player.NewCLI(
			player.WithBinary(cfg.Player.Command),
			player.WithArgs(cfg.Player.Args...),
			player.WithMediaDir(cfg.Paths.MediaDir),
		)
	}

	bell := opts.Bell
	if bell == nil {
		bell = feedback.NewBell(os.Stdout)
	}
	cue := feedback.Multi(bell, feedback.Visual{})

	notifier := opts.Notifier
	if notifier == nil {
		notifier = notifications.NewService(cfg)
	}

	svc := remote.New(remote.Options{
		ContactDelay: time.Duration(cfg.Site.ContactDelayMillis) * time.Millisecond,
		QuoteDelay:   time.Duration(cfg.Site.QuoteDelayMillis) * time.Millisecond,
		Notifier:     notifier,
		Logger:       logger,
		Intn:         opts.Intn,
	})

	a := &App{
		Config:   cfg,
		Logger:   logger,
		Store:    kv,
		Catalog:  cat,
		Player:   play,
		Notifier: notifier,
		Bell:     bell,
		Cue:      cue,
		Remote:   svc,
		Ratings:  rating.NewFactory(kv, cue, logger),
		Theme:    theme.NewController(kv, cue, logger),
		Contact:  contact.NewSubmitter(svc, cue, logger),
	}
	a.Playlist = playlist.New(ctx, kv, cat, playlist.Options{
		Default: cfg.Site.DefaultPlaylist,
		Player:  play,
		Cue:     cue,
		Logger:  logger,
	})

	logger.Debug("app state loaded",
		logging.Int("tracks", cat.Len()),
		logging.Int("playlist_length", len(a.Playlist.IDs())),
	)
	return a, nil
}

// Dependencies reports the external binaries the configuration relies on.
func (a *App) Dependencies() []deps.Status {
	return deps.CheckBinaries(deps.Requirements(a.Config))
}

// StorePath returns the SQLite path backing the app, or "" for other backends.
func (a *App) StorePath() string {
	if db, ok := a.Store.Backend().(*store.SQLite); ok {
		return db.Path()
	}
	return ""
}

// Close stops playback and closes the store.
func (a *App) Close() error {
	if a == nil {
		return nil
	}
	if a.Player != nil {
		a.Player.Stop()
	}
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}
