package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"

	"github.com/gofrs/flock"

	"playbeat/internal/api"
	"playbeat/internal/app"
	"playbeat/internal/config"
	"playbeat/internal/logging"
	"playbeat/internal/site"
)

// Daemon serves the site and enforces single-instance execution.
type Daemon struct {
	cfg    *config.Config
	app    *app.App
	svc    *api.Service
	logger *slog.Logger
	site   *site.Server
	http   *httpServer

	lockPath string
	lock     *flock.Flock

	mu       sync.Mutex
	running  atomic.Bool
	ctx      context.Context
	cancel   context.CancelFunc
	shutdown chan struct{}
	stopOnce sync.Once
}

// New constructs a daemon around a loaded app.
func New(cfg *config.Config, a *app.App, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil || a == nil {
		return nil, errors.New("daemon requires config and app")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	d := &Daemon{
		cfg:      cfg,
		app:      a,
		svc:      api.NewService(a),
		logger:   logging.NewComponentLogger(logger, "daemon"),
		lockPath: cfg.LockPath(),
		lock:     flock.New(cfg.LockPath()),
		shutdown: make(chan struct{}),
	}
	srv, err := site.New(d.svc, site.Options{
		Token:                cfg.Paths.APIToken,
		ContactRatePerMinute: cfg.Site.ContactRatePerMinute,
		Status:               d.Status,
		Logger:               logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build site: %w", err)
	}
	d.site = srv
	d.http = newHTTPServer(cfg.Paths.APIBind, srv, logger)
	return d, nil
}

// Start acquires the daemon lock and starts serving HTTP.
func (d *Daemon) Start(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	if err := d.cfg.EnsureDirectories(); err != nil {
		return fmt.Errorf("ensure directories: %w", err)
	}
	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another playbeat daemon instance is already running")
	}

	d.ctx, d.cancel = context.WithCancel(ctx)
	if err := d.http.start(d.ctx); err != nil {
		_ = d.lock.Unlock()
		d.cancel()
		d.ctx = nil
		d.cancel = nil
		return fmt.Errorf("start site: %w", err)
	}

	d.running.Store(true)
	d.logger.Info("playbeat daemon started",
		logging.String("lock", d.lockPath),
		logging.String("address", d.http.addr()),
	)
	return nil
}

// Stop stops serving and releases the daemon lock.
func (d *Daemon) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.running.Load() {
		return
	}

	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.http.stop()
	d.app.Player.Stop()
	if err := d.lock.Unlock(); err != nil {
		logging.WarnWithContext(d.logger, "failed to release daemon lock", "daemon_lock_release_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "remove the lock file if no daemon is running"),
			logging.String(logging.FieldImpact, "the next start may report a running instance"),
		)
	}
	d.ctx = nil
	d.running.Store(false)
	d.logger.Info("playbeat daemon stopped")
}

// Close releases resources held by the daemon.
func (d *Daemon) Close() error {
	d.Stop()
	return d.app.Close()
}

// RequestShutdown asks the process hosting the daemon to exit.
func (d *Daemon) RequestShutdown() {
	d.stopOnce.Do(func() { close(d.shutdown) })
}

// ShutdownRequested is closed once RequestShutdown has been called.
func (d *Daemon) ShutdownRequested() <-chan struct{} {
	return d.shutdown
}

// Running reports whether the daemon holds the lock and serves HTTP.
func (d *Daemon) Running() bool {
	return d.running.Load()
}

// Addr returns the bound HTTP address, or "" when not serving.
func (d *Daemon) Addr() string {
	return d.http.addr()
}

// Service returns the shared API service.
func (d *Daemon) Service() *api.Service {
	return d.svc
}

// Site returns the HTTP handler.
func (d *Daemon) Site() *site.Server {
	return d.site
}

// Status reports daemon runtime information.
func (d *Daemon) Status(ctx context.Context) api.Status {
	status := d.svc.Status(ctx)
	status.Running = d.running.Load()
	status.PID = os.Getpid()
	status.LockPath = d.lockPath
	status.APIBind = d.cfg.Paths.APIBind
	if addr := d.http.addr(); addr != "" {
		status.APIBind = addr
	}
	return status
}
