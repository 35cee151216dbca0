// Package app provides the application context and dependency management
// for the rostersync CLI. It centralizes configuration, dependency
// injection, and lifecycle management.
package app

import (
	"context"
	"io"
	"sync"

	"github.com/rs/zerolog"

	"github.com/rostersync/rostersync"
	"github.com/rostersync/rostersync/internal/appcontext"
	"github.com/rostersync/rostersync/internal/armory"
	"github.com/rostersync/rostersync/internal/transport"
	"github.com/rostersync/rostersync/pkg/errors"
	"github.com/rostersync/rostersync/pkg/logging"
	"github.com/rostersync/rostersync/pkg/reconciler"
	"github.com/rostersync/rostersync/pkg/store"
)

// App represents the rostersync application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger
	out    io.Writer

	// Store backend (lazy-initialized, singleton)
	mu         sync.Mutex
	backend    store.Backend
	closeStore func() error
	fetchers   rostersync.FetcherFactory
}

var _ appcontext.Interface = (*App)(nil)

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, errors.NewConfigError("config", "loading configuration", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the --format value, empty for auto-detection.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// NoColor reports whether --no-color was given.
func (a *App) NoColor() bool {
	return a.config.NoColor
}

// Store returns the store backend, opening it on first use.
func (a *App) Store(ctx context.Context) (store.Backend, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.backend != nil {
		return a.backend, nil
	}

	backend, closeFn, err := openStore(logging.WithLogger(ctx, a.logger), a.config)
	if err != nil {
		return nil, err
	}
	a.backend = backend
	a.closeStore = closeFn
	return backend, nil
}

// Syncer returns a new syncer over the store and the armory.
func (a *App) Syncer(ctx context.Context, opts ...rostersync.Option) (rostersync.Syncer, error) {
	backend, err := a.Store(ctx)
	if err != nil {
		return nil, err
	}
	return rostersync.New(backend, a.fetcherFactory(), append(a.syncerOptions(), opts...)...)
}

// Shutdown releases the store. For the memory store this writes the
// snapshot.
func (a *App) Shutdown(_ context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closeStore == nil {
		return nil
	}
	err := a.closeStore()
	a.backend = nil
	a.closeStore = nil
	return err
}

// fetcherFactory returns armory fetchers sharing one HTTP client.
func (a *App) fetcherFactory() rostersync.FetcherFactory {
	if a.fetchers != nil {
		return a.fetchers
	}

	client := transport.New(
		transport.WithTimeout(a.config.HTTPTimeout),
		transport.WithAccept("application/xml, text/xml"),
	)
	return func(realm string) (reconciler.Fetcher, error) {
		return armory.New(realm,
			armory.WithBaseURL(a.config.ArmoryURL),
			armory.WithClient(client),
			armory.WithUTCOffset(a.config.ArmoryUTCOffset),
		)
	}
}

// syncerOptions constructs syncer options from the app configuration.
func (a *App) syncerOptions() []rostersync.Option {
	opts := []rostersync.Option{
		rostersync.WithRealmConcurrency(a.config.RealmConcurrency),
		rostersync.WithGuildConcurrency(a.config.GuildConcurrency),
		rostersync.WithCharacterConcurrency(a.config.CharacterConcurrency),
		rostersync.WithRetries(a.config.Retries),
		rostersync.WithContinueOnError(a.config.ContinueOnError),
		rostersync.WithGuildTimeout(a.config.GuildTimeout),
		rostersync.WithLogger(a.logger),
	}
	if a.config.TasksFile != "" {
		opts = append(opts, rostersync.WithTasksFile(a.config.TasksFile))
	}
	return opts
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithStore sets a store backend (useful for testing).
func WithStore(backend store.Backend) Option {
	return func(a *App) error {
		a.backend = backend
		a.closeStore = func() error { return nil }
		return nil
	}
}

// WithOutput sets where commands write their results (default stdout).
func WithOutput(w io.Writer) Option {
	return func(a *App) error {
		a.out = w
		return nil
	}
}

// WithFetchers sets the fetcher factory (useful for testing).
func WithFetchers(fetchers rostersync.FetcherFactory) Option {
	return func(a *App) error {
		a.fetchers = fetchers
		return nil
	}
}
