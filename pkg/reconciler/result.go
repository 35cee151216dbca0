package reconciler

import (
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// Result represents the outcome of one guild run.
type Result struct {
	Realm string
	Guild string

	// Characters
	CharactersFetched int
	CharactersAdded   int
	CharactersUpdated int
	CharactersSkipped int

	// Archived lists the characters moved to ex-characters, sorted.
	Archived []string

	// Sub-resources
	ProfessionsSaved   int
	ProfessionsRemoved int
	ReputationsSaved   int
	BosskillsRecorded  int
	ItemsRecorded      int
	ItemsAppended      int

	// RecordsDropped counts fetched records discarded as invalid.
	RecordsDropped int

	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}

// Writes returns the number of records that changed the store.
func (r *Result) Writes() int {
	return r.CharactersAdded + r.CharactersUpdated + len(r.Archived) +
		r.ProfessionsSaved + r.ProfessionsRemoved + r.ReputationsSaved +
		r.BosskillsRecorded + r.ItemsRecorded + r.ItemsAppended
}

// Summary returns a human-readable summary of the result.
func (r *Result) Summary() string {
	return fmt.Sprintf("%s/%s: %d characters (%d added, %d updated, %d archived), %d bosskills, %d items in %s",
		r.Realm, r.Guild,
		r.CharactersFetched, r.CharactersAdded, r.CharactersUpdated, len(r.Archived),
		r.BosskillsRecorded, r.ItemsRecorded+r.ItemsAppended,
		r.Duration.Round(time.Millisecond))
}

// stats is shared by the concurrent branches of a run.
type stats struct {
	fetched            atomic.Int64
	added              atomic.Int64
	updated            atomic.Int64
	skipped            atomic.Int64
	professionsSaved   atomic.Int64
	professionsRemoved atomic.Int64
	reputationsSaved   atomic.Int64
	bosskills          atomic.Int64
	itemsRecorded      atomic.Int64
	itemsAppended      atomic.Int64
	dropped            atomic.Int64

	mu       sync.Mutex
	archived []string
}

func (s *stats) archive(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.archived = append(s.archived, name)
}

func (s *stats) result(realm, guild string, start, end time.Time) *Result {
	s.mu.Lock()
	archived := append([]string{}, s.archived...)
	s.mu.Unlock()
	sort.Strings(archived)

	return &Result{
		Realm:              realm,
		Guild:              guild,
		CharactersFetched:  int(s.fetched.Load()),
		CharactersAdded:    int(s.added.Load()),
		CharactersUpdated:  int(s.updated.Load()),
		CharactersSkipped:  int(s.skipped.Load()),
		Archived:           archived,
		ProfessionsSaved:   int(s.professionsSaved.Load()),
		ProfessionsRemoved: int(s.professionsRemoved.Load()),
		ReputationsSaved:   int(s.reputationsSaved.Load()),
		BosskillsRecorded:  int(s.bosskills.Load()),
		ItemsRecorded:      int(s.itemsRecorded.Load()),
		ItemsAppended:      int(s.itemsAppended.Load()),
		RecordsDropped:     int(s.dropped.Load()),
		StartTime:          start,
		EndTime:            end,
		Duration:           end.Sub(start),
	}
}
