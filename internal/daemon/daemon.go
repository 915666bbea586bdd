package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync/atomic"

	"github.com/gofrs/flock"

	"callsheet/internal/api"
	"callsheet/internal/config"
	"callsheet/internal/logging"
	"callsheet/internal/storage"
	"callsheet/internal/storage/drive"
	"callsheet/internal/store"
	"callsheet/internal/uploads"
)

// Daemon coordinates the background services and enforces single-instance
// execution.
type Daemon struct {
	cfg     *config.Config
	logger  *slog.Logger
	store   *store.Store
	orch    *uploads.Orchestrator
	service *api.Service

	lockPath string
	lock     *flock.Flock

	httpAPI *apiServer

	running atomic.Bool
	cancel  context.CancelFunc
}

// New constructs a daemon, choosing the storage backend from configuration:
// Google Drive when enabled, otherwise an in-memory remote so uploads can be
// exercised without credentials (dry-run mode).
func New(ctx context.Context, cfg *config.Config, st *store.Store, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil || st == nil {
		return nil, errors.New("daemon requires config and store")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	var remote storage.Remote
	if cfg.Drive.Enabled {
		r, err := drive.New(ctx, cfg.Drive.CredentialsFile, cfg.Drive.UploadChunkMiB)
		if err != nil {
			return nil, err
		}
		remote = r
	} else {
		logger.Warn("drive backend disabled, uploads run against an in-memory store")
		remote = storage.NewMemory()
	}

	orch := uploads.NewOrchestrator(remote, logger)
	d := &Daemon{
		cfg:      cfg,
		logger:   logger.With(logging.FieldComponent, "daemon"),
		store:    st,
		orch:     orch,
		service:  api.NewService(cfg, st, orch, logger),
		lockPath: cfg.LockPath(),
		lock:     flock.New(cfg.LockPath()),
	}

	httpAPI, err := newAPIServer(cfg, d.service, logger)
	if err != nil {
		return nil, err
	}
	d.httpAPI = httpAPI
	return d, nil
}

// Service returns the shared operation surface for transports.
func (d *Daemon) Service() *api.Service {
	return d.service
}

// LockPath returns the daemon lock file location.
func (d *Daemon) LockPath() string {
	return d.lockPath
}

// Start acquires the daemon lock and launches the orchestrator and the
// optional HTTP API.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another callsheet daemon instance is already running")
	}

	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	d.orch.Start(runCtx)
	if err := d.httpAPI.start(runCtx); err != nil {
		d.orch.Stop()
		cancel()
		d.cancel = nil
		_ = d.lock.Unlock()
		return err
	}

	d.running.Store(true)
	d.logger.Info("callsheet daemon started", "lock", d.lockPath, "pid", os.Getpid())
	return nil
}

// Stop halts background processing and releases the daemon lock. Any
// in-flight upload is left paused with its cursor preserved.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}

	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.orch.Stop()
	d.httpAPI.stop()
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release daemon lock", logging.FieldError, err)
	}
	d.running.Store(false)
	d.logger.Info("callsheet daemon stopped")
}

// Close stops the daemon and closes the store.
func (d *Daemon) Close() error {
	d.Stop()
	if d.store != nil {
		return d.store.Close()
	}
	return nil
}

// Status reports runtime information for status commands.
func (d *Daemon) Status(ctx context.Context) api.DaemonStatus {
	status := d.service.Status(ctx, os.Getpid(), d.lockPath)
	status.Running = d.running.Load()
	return status
}
