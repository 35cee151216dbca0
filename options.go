package rostersync

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/rostersync/rostersync/internal/matcher"
	"github.com/rostersync/rostersync/pkg/constants"
	"github.com/rostersync/rostersync/pkg/errors"
)

// Option is a function that configures a Syncer instance
type Option func(*config) error

// config holds the run-wide settings of a Syncer
type config struct {
	tasks     Tasks
	tasksFile string
	only      *matcher.MultiMatcher

	realmConcurrency     int
	guildConcurrency     int
	characterConcurrency int

	retries         int
	retryBackoff    time.Duration
	continueOnError bool
	guildTimeout    time.Duration

	now    func() time.Time
	logger *zerolog.Logger
}

// defaultConfig returns the settings of the original sequential run
func defaultConfig() *config {
	return &config{
		realmConcurrency:     constants.DefaultRealmConcurrency,
		guildConcurrency:     constants.DefaultGuildConcurrency,
		characterConcurrency: constants.DefaultCharacterConcurrency,
		retries:              constants.DefaultRetries,
		retryBackoff:         constants.RetryBackoff,
		guildTimeout:         constants.GuildSyncTimeout,
		now:                  time.Now,
	}
}

// WithTasks uses a static realm to guilds map instead of the tasks node
func WithTasks(tasks Tasks) Option {
	return func(c *config) error {
		c.tasks = tasks.Clone()
		return nil
	}
}

// WithTasksFile reads the tasks from a YAML file on every Sync
func WithTasksFile(path string) Option {
	return func(c *config) error {
		if path == "" {
			return errors.NewValidationError("tasks_file", path, "path is required")
		}
		c.tasksFile = path
		return nil
	}
}

// WithOnly restricts runs to the tasks whose "realm/guild" key matches
// one of the glob or regex patterns, ignoring case
func WithOnly(patterns ...string) Option {
	return func(c *config) error {
		if len(patterns) == 0 {
			c.only = nil
			return nil
		}
		mm, err := matcher.NewMultiMatcher(patterns, matcher.Auto, &matcher.Options{CaseInsensitive: true})
		if err != nil {
			return errors.NewValidationError("only", patterns, err.Error())
		}
		c.only = mm
		return nil
	}
}

// WithRealmConcurrency bounds how many realms run at once
func WithRealmConcurrency(n int) Option {
	return func(c *config) error {
		if n < 1 {
			return errors.NewValidationError("realm_concurrency", n, "must be at least 1")
		}
		c.realmConcurrency = n
		return nil
	}
}

// WithGuildConcurrency bounds how many guilds of one realm run at once
func WithGuildConcurrency(n int) Option {
	return func(c *config) error {
		if n < 1 {
			return errors.NewValidationError("guild_concurrency", n, "must be at least 1")
		}
		c.guildConcurrency = n
		return nil
	}
}

// WithCharacterConcurrency bounds the per-character fan-out of each guild
// run. Zero means unbounded.
func WithCharacterConcurrency(n int) Option {
	return func(c *config) error {
		if n < 0 {
			return errors.NewValidationError("character_concurrency", n, "must not be negative")
		}
		c.characterConcurrency = n
		return nil
	}
}

// WithRetries retries a failed guild run up to n more times with
// exponential backoff
func WithRetries(n int) Option {
	return func(c *config) error {
		if n < 0 {
			return errors.NewValidationError("retries", n, "must not be negative")
		}
		c.retries = n
		return nil
	}
}

// WithRetryBackoff sets the initial interval between retries
func WithRetryBackoff(d time.Duration) Option {
	return func(c *config) error {
		if d <= 0 {
			return errors.NewValidationError("retry_backoff", d, "must be positive")
		}
		c.retryBackoff = d
		return nil
	}
}

// WithContinueOnError keeps running the remaining guilds after a failure
func WithContinueOnError(enabled bool) Option {
	return func(c *config) error {
		c.continueOnError = enabled
		return nil
	}
}

// WithGuildTimeout bounds a single guild run, retries included. Zero
// disables the timeout.
func WithGuildTimeout(d time.Duration) Option {
	return func(c *config) error {
		if d < 0 {
			return errors.NewValidationError("guild_timeout", d, "must not be negative")
		}
		c.guildTimeout = d
		return nil
	}
}

// WithClock sets the time source for dates and lastUpdate
func WithClock(now func() time.Time) Option {
	return func(c *config) error {
		if now == nil {
			return errors.NewValidationError("clock", nil, "clock is required")
		}
		c.now = now
		return nil
	}
}

// WithLogger sets the logger used for run events
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *config) error {
		c.logger = logger
		return nil
	}
}

// apply applies the given options to the config
func (c *config) apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}
