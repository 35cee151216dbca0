// Package reconciler synchronizes one guild's roster into the store.
//
// A run fetches the current roster, archives members that left, upserts the
// remaining characters and then reconciles each character's professions,
// reputations and feed activities against what is already stored. Every
// write is idempotent, so re-running a failed guild is always safe.
package reconciler

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/rostersync/rostersync/pkg/constants"
	"github.com/rostersync/rostersync/pkg/errors"
	"github.com/rostersync/rostersync/pkg/logging"
	"github.com/rostersync/rostersync/pkg/models"
	"github.com/rostersync/rostersync/pkg/store"
)

// Reconciler syncs one guild. A Reconciler must not run concurrently with itself.
type Reconciler struct {
	realm       string
	guild       string
	ref         store.Ref
	fetcher     Fetcher
	concurrency int
	now         func() time.Time
	logger      *zerolog.Logger

	stats *stats
}

// New creates a Reconciler for guild on realm, writing below ref (the
// guild's node). It fails with a validation error when an argument is
// missing and with an authentication error when the store cannot prove
// its identity.
func New(ctx context.Context, realm, guild string, ref store.Ref, fetcher Fetcher, opts ...Option) (*Reconciler, error) {
	switch {
	case realm == "":
		return nil, errors.NewValidationError("realm", realm, "realm is required")
	case guild == "":
		return nil, errors.NewValidationError("guild", guild, "guild name is required")
	case ref.IsZero():
		return nil, errors.NewValidationError("store", nil, "store handle is required")
	case fetcher == nil:
		return nil, errors.NewValidationError("fetcher", nil, "fetcher is required")
	}

	options, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}

	principal, err := ref.Identity(ctx)
	if err != nil {
		if errors.IsUnauthenticated(err) {
			return nil, err
		}
		return nil, errors.NewAuthenticationError("store", "identity check failed", err)
	}
	if principal == "" {
		return nil, errors.NewAuthenticationError("store", "store is not authenticated", nil)
	}

	return &Reconciler{
		realm:       realm,
		guild:       guild,
		ref:         ref,
		fetcher:     fetcher,
		concurrency: options.concurrency,
		now:         options.now,
		logger:      options.logger,
		stats:       &stats{},
	}, nil
}

// Run performs a full sync of the guild. It returns the first failure;
// nothing is retried.
func (r *Reconciler) Run(ctx context.Context) (*Result, error) {
	r.stats = &stats{}
	start := r.now()

	ctx = r.context(ctx)
	logger := logging.FromContext(ctx)
	logger.Info().Msg("Syncing guild")

	fetched, err := r.fetcher.Characters(ctx, r.guild)
	if err != nil {
		return nil, err
	}
	// invalid members stay in the roster; only nameless records are dropped
	characters := make([]*models.Character, 0, len(fetched))
	names := make([]string, 0, len(fetched))
	for _, c := range fetched {
		if c == nil || c.Name() == "" {
			continue
		}
		characters = append(characters, c)
		names = append(names, c.Name())
	}
	r.stats.fetched.Store(int64(len(characters)))
	r.stats.dropped.Add(int64(len(fetched) - len(characters)))

	// archival completes before any upsert starts
	if err := r.CleanRemovedCharacters(ctx, names); err != nil {
		return nil, err
	}

	g, gctx := errgroup.WithContext(ctx)
	if r.concurrency > 0 {
		g.SetLimit(r.concurrency)
	}
	for _, c := range characters {
		g.Go(func() error {
			return r.syncCharacter(gctx, c)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := r.stats.result(r.realm, r.guild, start, r.now())
	logger.Info().
		Int("characters", result.CharactersFetched).
		Int("archived", len(result.Archived)).
		Int("writes", result.Writes()).
		Dur("duration", result.Duration).
		Msg("Guild synced")
	return result, nil
}

// syncCharacter runs the ordered pipeline for one character:
// character, professions, reputations, activities.
func (r *Reconciler) syncCharacter(ctx context.Context, c *models.Character) error {
	name := c.Name()
	ctx = logging.WithCharacter(ctx, name)

	if err := r.SaveCharacter(ctx, c); err != nil {
		return err
	}

	professions, err := r.fetcher.Professions(ctx, name)
	if err != nil {
		return err
	}
	if err := r.SaveProfessions(ctx, name, professions); err != nil {
		return err
	}

	reputations, err := r.fetcher.Reputations(ctx, name)
	if err != nil {
		return err
	}
	if err := r.SaveReputations(ctx, name, reputations); err != nil {
		return err
	}

	activities, err := r.fetcher.Activities(ctx, name)
	if err != nil {
		return err
	}
	// sequential: two entries for one item share an array node
	for _, a := range activities {
		if err := r.SaveActivity(ctx, a); err != nil {
			return err
		}
	}

	logging.FromContext(ctx).Debug().
		Int("professions", len(professions)).
		Int("reputations", len(reputations)).
		Int("activities", len(activities)).
		Msg("Character synced")
	return nil
}

func (r *Reconciler) context(ctx context.Context) context.Context {
	if r.logger != nil {
		ctx = logging.WithLogger(ctx, r.logger)
	}
	ctx = logging.WithRealm(ctx, r.realm)
	return logging.WithGuild(ctx, r.guild)
}

func (r *Reconciler) today() string {
	return r.now().UTC().Format(constants.DateFormat)
}

func (r *Reconciler) node(parts ...string) store.Ref {
	return r.ref.Child(parts...)
}
