// Package rostersync runs the guild roster synchronization: it reads the
// configured realm and guild tasks, reconciles every guild against the
// armory snapshot and stamps each completed guild with its lastUpdate.
package rostersync

import (
	"context"
	"fmt"

	"github.com/rostersync/rostersync/internal/matcher"
	"github.com/rostersync/rostersync/pkg/errors"
	"github.com/rostersync/rostersync/pkg/reconciler"
	"github.com/rostersync/rostersync/pkg/store"
)

// FetcherFactory builds the snapshot fetcher for one realm.
type FetcherFactory func(realm string) (reconciler.Fetcher, error)

// Syncer runs guild synchronizations with event hooks
type Syncer interface {
	// Sync runs every configured task
	Sync(ctx context.Context) (*Result, error)

	// SyncGuild runs a single guild
	SyncGuild(ctx context.Context, realm, guild string) (*GuildResult, error)

	// Tasks returns the tasks the next Sync would run
	Tasks(ctx context.Context) (Tasks, error)

	// OnGuildSynced registers a callback for completed guild runs
	OnGuildSynced(GuildSyncedHook)

	// OnCharacterArchived registers a callback for archived characters
	OnCharacterArchived(CharacterArchivedHook)

	// OnGuildFailed registers a callback for failed guild runs
	OnGuildFailed(GuildFailedHook)
}

// syncer is the internal implementation of the Syncer interface
type syncer struct {
	root     store.Ref
	fetchers FetcherFactory
	config   *config

	// Event hooks
	*hooks
}

// New creates a new Syncer writing to backend with the given options
func New(backend store.Backend, fetchers FetcherFactory, opts ...Option) (Syncer, error) {
	if backend == nil {
		return nil, errors.NewValidationError("store", nil, "store backend is required")
	}
	if fetchers == nil {
		return nil, errors.NewValidationError("fetcher", nil, "fetcher factory is required")
	}

	cfg := defaultConfig()
	if err := cfg.apply(opts...); err != nil {
		return nil, fmt.Errorf("applying options: %w", err)
	}

	return &syncer{
		root:     store.Root(backend),
		fetchers: fetchers,
		config:   cfg,
		hooks:    newHooks(),
	}, nil
}

// Tasks returns the static tasks, the tasks file or the tasks node, in
// that order of preference, narrowed by WithOnly
func (s *syncer) Tasks(ctx context.Context) (Tasks, error) {
	var (
		tasks Tasks
		err   error
	)
	switch {
	case s.config.tasks != nil:
		tasks = s.config.tasks.Clone()
	case s.config.tasksFile != "":
		tasks, err = LoadTasksFile(s.config.tasksFile)
	default:
		tasks, err = ReadTasks(ctx, s.root)
	}
	if err != nil {
		return nil, err
	}

	if only := s.config.only; only != nil {
		tasks = tasks.Filter(func(realm, guild string) bool {
			return only.Match(matcher.Key(realm, guild))
		})
	}
	return tasks, nil
}
