// Package app provides the application context and dependency management
// for the samidb CLI. It centralizes configuration, logging and the API
// client so that commands only see the context.Context interface.
package app

import (
	"context"
	"io"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/samidb"
	appcontext "github.com/agentstation/samidb/cmd/samidb/context"
	"github.com/agentstation/samidb/internal/config"
	"github.com/agentstation/samidb/pkg/errors"
)

// App represents the samidb application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	// Configuration
	config *config.Config

	// Logger, rebuilt from flags unless set with WithLogger
	logger      *zerolog.Logger
	fixedLogger bool

	// Command output, stdout when nil
	out io.Writer

	// Extra client options applied after the configured ones
	clientOpts []samidb.Option

	// Client instance (lazy-initialized, singleton)
	mu     sync.RWMutex
	client *samidb.Client
}

// Ensure App implements the command context at compile time.
var _ appcontext.Context = (*App)(nil)

// New creates a new App instance with the given version information.
// Configuration is read from the environment and config file; flags are
// applied when a command runs.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	cfg, err := config.Load(nil)
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = cfg

	logger := NewLogger(cfg)
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
func (a *App) Config() *config.Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the requested output format.
func (a *App) OutputFormat() string {
	return a.config.Output
}

// Client returns the API client. Without options the instance is created
// once and cached; with options a new client is built every call.
func (a *App) Client(ctx context.Context, opts ...samidb.Option) (*samidb.Client, error) {
	if len(opts) > 0 {
		client, err := samidb.New(ctx, append(a.buildClientOptions(), opts...)...)
		if err != nil {
			return nil, errors.WrapResource("create", "client", "with custom options", err)
		}
		return client, nil
	}

	a.mu.RLock()
	if a.client != nil {
		client := a.client
		a.mu.RUnlock()
		return client, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	// Double-check after acquiring write lock
	if a.client != nil {
		return a.client, nil
	}

	client, err := samidb.New(ctx, a.buildClientOptions()...)
	if err != nil {
		return nil, errors.WrapResource("create", "client", "", err)
	}

	a.client = client
	return client, nil
}

// buildClientOptions constructs client options from the app configuration.
func (a *App) buildClientOptions() []samidb.Option {
	opts := []samidb.Option{
		samidb.WithAPIURL(a.config.APIURL),
		samidb.WithVersion(a.config.APIVersion),
		samidb.WithIgnoreDefaultEndpoints(a.config.IgnoreDefaultEndpoints),
		samidb.WithLogger(a.logger),
		samidb.WithUserAgent("samidb-cli/" + a.version),
	}

	for _, bucket := range a.config.Buckets() {
		opts = append(opts, samidb.WithEndpoints(bucket, a.config.Endpoints[bucket]...))
	}

	return append(opts, a.clientOpts...)
}

// setConfig replaces the configuration and drops the cached client.
func (a *App) setConfig(cfg *config.Config) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.config = cfg
	a.client = nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithLogger sets a custom logger. It is kept when flags are parsed.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		a.fixedLogger = true
		return nil
	}
}

// WithOutput sets the writer commands print to.
func WithOutput(w io.Writer) Option {
	return func(a *App) error {
		a.out = w
		return nil
	}
}

// WithClientOptions adds client options applied after the configured ones
// (useful for testing).
func WithClientOptions(opts ...samidb.Option) Option {
	return func(a *App) error {
		a.clientOpts = append(a.clientOpts, opts...)
		return nil
	}
}
