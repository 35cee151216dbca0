package rostersync

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v5"
	"golang.org/x/sync/errgroup"

	"github.com/rostersync/rostersync/pkg/constants"
	"github.com/rostersync/rostersync/pkg/errors"
	"github.com/rostersync/rostersync/pkg/logging"
	"github.com/rostersync/rostersync/pkg/reconciler"
)

// Sync runs every task. Realms run in sorted order and guilds in declared
// order. By default the first failing guild stops the run and its
// SyncError is returned; with WithContinueOnError every guild runs and the
// failures are returned joined.
func (s *syncer) Sync(ctx context.Context) (*Result, error) {
	ctx = s.context(ctx)
	logger := logging.FromContext(ctx)

	tasks, err := s.Tasks(ctx)
	if err != nil {
		return nil, err
	}

	result := newResult(s.config.now())
	logger.Info().
		Int("realms", len(tasks)).
		Int("guilds", tasks.Len()).
		Msg("Starting sync")

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.realmConcurrency)
	for _, realm := range tasks.Realms() {
		guilds := tasks[realm]
		g.Go(func() error {
			return s.syncRealm(gctx, realm, guilds, result)
		})
	}
	err = g.Wait()
	result.finish(s.config.now())

	if s.config.continueOnError {
		err = result.Err()
	}
	if err != nil {
		logger.Error().Err(err).
			Int("failures", len(result.Failures)).
			Msg("Sync failed")
		return result, err
	}

	logger.Info().
		Int("guilds", len(result.Guilds)).
		Dur("duration", result.Duration).
		Msg("Sync completed")
	return result, nil
}

// syncRealm runs the guilds of one realm.
func (s *syncer) syncRealm(ctx context.Context, realm string, guilds []string, result *Result) error {
	g, gctx := errgroup.WithContext(logging.WithRealm(ctx, realm))
	g.SetLimit(s.config.guildConcurrency)
	for _, guild := range guilds {
		g.Go(func() error {
			// a failed sibling cancelled the run
			if gctx.Err() != nil && !s.config.continueOnError {
				return nil
			}
			gr, err := s.SyncGuild(gctx, realm, guild)
			if err != nil {
				result.fail(realm, guild, err)
				if s.config.continueOnError {
					return nil
				}
				return err
			}
			result.add(*gr)
			return nil
		})
	}
	return g.Wait()
}

// SyncGuild runs one guild with retries, then writes its lastUpdate. Any
// failure is returned as a SyncError.
func (s *syncer) SyncGuild(ctx context.Context, realm, guild string) (*GuildResult, error) {
	ctx = logging.WithGuild(logging.WithRealm(s.context(ctx), realm), guild)
	logger := logging.FromContext(ctx)

	if s.config.guildTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.guildTimeout)
		defer cancel()
	}

	attempts := 0
	operation := func() (*GuildResult, error) {
		attempts++
		gr, err := s.runGuild(ctx, realm, guild)
		if err != nil && errors.IsPermanent(err) {
			return nil, backoff.Permanent(err)
		}
		return gr, err
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = s.config.retryBackoff
	policy.MaxInterval = constants.MaxRetryBackoff

	gr, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(policy),
		backoff.WithMaxTries(uint(s.config.retries+1)),
		backoff.WithMaxElapsedTime(0),
		backoff.WithNotify(func(err error, next time.Duration) {
			logger.Warn().Err(err).
				Int("attempt", attempts).
				Dur("retry_in", next).
				Msg("Guild sync failed, retrying")
		}),
	)
	if err != nil {
		err = errors.NewSyncError(realm, guild, err)
		logger.Error().Err(err).Int("attempts", attempts).Msg("Guild sync failed")
		s.triggerGuildFailed(realm, guild, err)
		return nil, err
	}

	gr.Attempts = attempts
	logger.Info().
		Int("attempts", attempts).
		Str("last_update", gr.LastUpdate.Format(constants.TimestampFormat)).
		Msg(gr.Summary())
	s.triggerGuildSynced(*gr)
	return gr, nil
}

// runGuild performs a single attempt.
func (s *syncer) runGuild(ctx context.Context, realm, guild string) (*GuildResult, error) {
	fetcher, err := s.fetchers(realm)
	if err != nil {
		return nil, err
	}

	ref := s.root.Child(constants.NodeGuilds, guild)
	opts := []reconciler.Option{
		reconciler.WithConcurrency(s.config.characterConcurrency),
		reconciler.WithClock(s.config.now),
	}
	if s.config.logger != nil {
		opts = append(opts, reconciler.WithLogger(s.config.logger))
	}

	r, err := reconciler.New(ctx, realm, guild, ref, fetcher, opts...)
	if err != nil {
		return nil, err
	}
	res, err := r.Run(ctx)
	if err != nil {
		return nil, err
	}

	stamp := s.config.now().UTC()
	if err := ref.Child(constants.NodeLastUpdate).Set(ctx, stamp.Format(constants.TimestampFormat)); err != nil {
		return nil, err
	}
	return &GuildResult{
		Realm:      realm,
		Guild:      guild,
		LastUpdate: stamp,
		Result:     res,
	}, nil
}

func (s *syncer) context(ctx context.Context) context.Context {
	if s.config.logger != nil {
		ctx = logging.WithLogger(ctx, s.config.logger)
	}
	return ctx
}
