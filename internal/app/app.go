// Package app wires the daemon together and owns its lifecycle: startup
// preconditions, resource acquisition, the single event loop, and teardown.
package app

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/chatterd/chatterd/internal/config"
	"github.com/chatterd/chatterd/internal/debounce"
	"github.com/chatterd/chatterd/internal/hook"
	"github.com/chatterd/chatterd/internal/sigbridge"
)

// Options configures the application.
type Options struct {
	// Config is the resolved daemon configuration.
	Config config.Config

	// LogLevel sets logging verbosity (debug, info, warn, error).
	LogLevel string

	// Logger overrides the default logger. Used by tests.
	Logger *Logger

	// Hook overrides the platform input hook. Used by tests.
	Hook hook.Hook
}

// Application is the daemon's long-lived context object. Every resource the
// process holds hangs off it; nothing lives in package-level state.
type Application struct {
	opts    Options
	logger  *Logger
	metrics *Metrics

	filter *debounce.Filter
	bridge *sigbridge.Bridge
	hk     hook.Hook
	events <-chan hook.Event

	running      atomic.Bool
	shutdownOnce sync.Once
}

// New checks the startup preconditions and acquires the daemon's resources.
// Preconditions are verified before anything is acquired, so a refused start
// leaves no trace on the input stream.
func New(opts Options) (*Application, error) {
	if err := checkPreconditions(); err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		cfg := DefaultLoggerConfig()
		cfg.Level = ParseLogLevel(opts.LogLevel)
		logger = NewLogger(cfg)
	}

	app := &Application{
		opts:    opts,
		logger:  logger,
		metrics: NewMetrics(),
	}

	if err := app.bootstrap(); err != nil {
		return nil, err
	}
	return app, nil
}

// Logger returns the application logger.
func (app *Application) Logger() *Logger {
	return app.logger
}

// Metrics returns the application's counters.
func (app *Application) Metrics() *Metrics {
	return app.metrics
}

// Shutdown releases resources in reverse acquisition order and logs the
// session summary. Safe to call more than once and after a failed Run.
func (app *Application) Shutdown() {
	app.shutdownOnce.Do(func() {
		if app.hk != nil {
			if err := app.hk.Stop(); err != nil {
				app.logger.WithComponent("hook").Error("stop: %v", err)
			}
		}
		if app.bridge != nil {
			app.bridge.Disarm()
		}

		snap := app.metrics.Snapshot()
		app.logger.Info("shutdown: %d events seen, %d suppressed (%d down / %d up), %d keys tracked, uptime %s",
			snap.Events, snap.DownsSuppressed+snap.UpsSuppressed,
			snap.DownsSuppressed, snap.UpsSuppressed,
			app.filter.Tracked(), snap.Uptime.Round(time.Second))
	})
}
