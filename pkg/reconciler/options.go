package reconciler

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/rostersync/rostersync/pkg/errors"
)

// Options configures a reconciler.
type options struct {
	concurrency int
	now         func() time.Time
	logger      *zerolog.Logger
}

func defaultOptions() *options {
	return &options{
		now: time.Now,
	}
}

// Option is a function that configures a Reconciler.
type Option func(*options) error

func (options *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}
	return options, nil
}

// newOptions returns reconciler options with default values.
func newOptions(opts ...Option) (*options, error) {
	return defaultOptions().apply(opts...)
}

// WithConcurrency caps how many characters are synced at once.
// Zero means no limit.
func WithConcurrency(n int) Option {
	return func(o *options) error {
		if n < 0 {
			return &errors.ValidationError{
				Field:   "concurrency",
				Value:   n,
				Message: "cannot be negative",
			}
		}
		o.concurrency = n
		return nil
	}
}

// WithClock sets the source of dateAdded and dateRemoved.
func WithClock(now func() time.Time) Option {
	return func(o *options) error {
		if now == nil {
			return &errors.ValidationError{
				Field:   "clock",
				Message: "cannot be nil",
			}
		}
		o.now = now
		return nil
	}
}

// WithLogger sets the logger. By default the logger of the Run context is used.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) error {
		o.logger = logger
		return nil
	}
}
