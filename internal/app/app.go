package app

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/gofrs/flock"

	"github.com/dori/taskflow/internal/api"
	"github.com/dori/taskflow/internal/config"
	"github.com/dori/taskflow/internal/logging"
	"github.com/dori/taskflow/internal/notify"
	"github.com/dori/taskflow/internal/platform"
)

// ErrAlreadyRunning is returned when another TUI instance holds the lock
var ErrAlreadyRunning = errors.New("another instance of taskflow is already running")

// App holds the application state and dependencies
type App struct {
	Client   *api.Client
	Notifier *notify.Notifier
	Logger   *logging.Logger
	Config   config.Config
	Paths    platform.Paths
	lockFile *flock.Flock
}

// New creates the data directory, takes the single-instance lock and builds the API client
func New(cfg config.Config, paths platform.Paths, logger *logging.Logger) (*App, error) {
	if err := os.MkdirAll(paths.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	notifier := notify.NewNotifier()
	notifier.SetEnabled(cfg.Notify.Desktop)

	app := &App{
		Notifier: notifier,
		Logger:   logger,
		Config:   cfg,
		Paths:    paths,
	}

	if err := app.acquireLock(); err != nil {
		return nil, err
	}

	app.Client = api.New(cfg.Server.BaseURL,
		api.WithTimeout(time.Duration(cfg.Server.TimeoutSeconds)*time.Second),
		api.WithLogger(logger),
	)

	return app, nil
}

// acquireLock acquires an exclusive file lock to prevent multiple instances
func (a *App) acquireLock() error {
	a.lockFile = flock.New(a.Paths.LockPath)

	locked, err := a.lockFile.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}

	if !locked {
		return ErrAlreadyRunning
	}

	return nil
}

// releaseLock releases the file lock
func (a *App) releaseLock() error {
	if a.lockFile == nil {
		return nil
	}
	return a.lockFile.Unlock()
}

// Close releases the lock
func (a *App) Close() error {
	if err := a.releaseLock(); err != nil {
		return fmt.Errorf("failed to release lock: %w", err)
	}
	return nil
}
