// Package context provides the application context interface for samidb commands.
//
// Commands accept a Context rather than the concrete App so that they can be
// tested against a MockContext:
//
//	mock := &context.MockContext{
//	    ClientFunc: func(ctx stdctx.Context, opts ...samidb.Option) (*samidb.Client, error) {
//	        return samidb.New(ctx, samidb.WithAPIURL(server.URL))
//	    },
//	}
//	cmd := cmd.NewGetCommand(mock)
package context

import (
	stdctx "context"

	"github.com/rs/zerolog"

	"github.com/agentstation/samidb"
)

// Context provides what commands need from the application.
//
// Thread Safety: All methods must be safe for concurrent access.
type Context interface {
	// Client returns an API client built from the resolved configuration.
	// When called without options, returns the cached instance (lazy-initialized).
	// When called with options, builds a new client with the options applied
	// after the configured ones (no caching).
	Client(ctx stdctx.Context, opts ...samidb.Option) (*samidb.Client, error)

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the requested output format (table, json, yaml),
	// or "" when none was requested.
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
