package rostersync

import (
	"fmt"
	"sync"
	"time"

	"github.com/rostersync/rostersync/pkg/constants"
	"github.com/rostersync/rostersync/pkg/errors"
	"github.com/rostersync/rostersync/pkg/reconciler"
)

// GuildResult is the outcome of one successful guild run.
type GuildResult struct {
	Realm    string
	Guild    string
	Attempts int

	// LastUpdate is the instant written to the guild's lastUpdate node.
	LastUpdate time.Time

	*reconciler.Result
}

// Failure records a guild run that failed after all retries.
type Failure struct {
	Realm string
	Guild string
	Err   error
}

// Result represents the outcome of a Sync.
type Result struct {
	Guilds   []GuildResult
	Failures []Failure

	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration

	mu sync.Mutex
}

func newResult(start time.Time) *Result {
	return &Result{StartTime: start}
}

func (r *Result) add(gr GuildResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Guilds = append(r.Guilds, gr)
}

func (r *Result) fail(realm, guild string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Failures = append(r.Failures, Failure{Realm: realm, Guild: guild, Err: err})
}

func (r *Result) finish(end time.Time) {
	r.EndTime = end
	r.Duration = end.Sub(r.StartTime)
}

// Failed reports whether any guild failed.
func (r *Result) Failed() bool {
	return len(r.Failures) > 0
}

// Err joins the failures, or returns nil.
func (r *Result) Err() error {
	errs := make([]error, 0, len(r.Failures))
	for _, f := range r.Failures {
		errs = append(errs, f.Err)
	}
	return errors.Join(errs...)
}

// Writes returns the total number of store changes across all guilds.
func (r *Result) Writes() int {
	n := 0
	for _, g := range r.Guilds {
		n += g.Writes()
	}
	return n
}

// Summary returns a human-readable summary of the result.
func (r *Result) Summary() string {
	return fmt.Sprintf("%d guilds synced, %d failed, %d writes in %s (started %s)",
		len(r.Guilds), len(r.Failures), r.Writes(),
		r.Duration.Round(time.Millisecond),
		r.StartTime.UTC().Format(constants.TimestampFormat))
}
