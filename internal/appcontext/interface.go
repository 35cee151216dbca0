// Package appcontext provides the shared application context interface
// used by all commands. Commands depend on this interface instead of the
// concrete App so they can be tested with the Mock.
package appcontext

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/rostersync/rostersync"
	"github.com/rostersync/rostersync/pkg/store"
)

// Interface defines the application context interface that commands need.
type Interface interface {
	// Store returns the configured store backend, opening it lazily.
	Store(ctx context.Context) (store.Backend, error)

	// Syncer returns a syncer over the configured store and armory. The
	// options are applied after the configured ones.
	Syncer(ctx context.Context, opts ...rostersync.Option) (rostersync.Syncer, error)

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (json, yaml, table).
	OutputFormat() string

	// NoColor reports whether colored terminal output is disabled.
	NoColor() bool

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
