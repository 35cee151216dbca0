// Package models defines the validated domain records synchronized by
// rostersync: characters, professions, reputations and feed activities.
//
// Every record starts with all fields unset. Setters accept a raw value and
// keep it only when it lies inside the field's domain; anything else is
// dropped and reported to the reject hook. A record is valid once every
// declared field has been set, and only valid records are ever persisted.
package models

import (
	"sync"

	"github.com/rostersync/rostersync/pkg/logging"
)

// Record is implemented by every domain record.
type Record interface {
	// IsValid reports whether every declared field is set.
	IsValid() bool

	// Fields returns every declared field keyed by its store name.
	// Unset fields map to nil.
	Fields() map[string]any
}

// Valid reports whether no declared field of r is unset.
func Valid(r Record) bool {
	if r == nil {
		return false
	}
	for _, v := range r.Fields() {
		if v == nil {
			return false
		}
	}
	return true
}

// Filter returns the valid records of in, preserving order.
func Filter[T Record](in []T) []T {
	out := make([]T, 0, len(in))
	for _, r := range in {
		if r.IsValid() {
			out = append(out, r)
		}
	}
	return out
}

// Rejection describes a value a setter refused to store.
type Rejection struct {
	Record string // "character", "profession", "reputation", "activity"
	Field  string
	Value  any
}

// RejectHook receives every rejected setter value.
type RejectHook func(Rejection)

var (
	hookMu     sync.RWMutex
	rejectHook RejectHook = logRejection
)

// SetRejectHook installs h as the receiver of rejected values and returns
// the previous hook. A nil hook restores the default, which logs at debug level.
func SetRejectHook(h RejectHook) RejectHook {
	hookMu.Lock()
	defer hookMu.Unlock()
	prev := rejectHook
	if h == nil {
		h = logRejection
	}
	rejectHook = h
	return prev
}

func reject(record, field string, value any) {
	hookMu.RLock()
	h := rejectHook
	hookMu.RUnlock()
	h(Rejection{Record: record, Field: field, Value: value})
}

func logRejection(r Rejection) {
	logging.Debug().
		Str("record", r.Record).
		Str("field", r.Field).
		Interface("value", r.Value).
		Msg("Rejected field value")
}

func ptr[T any](v T) *T { return &v }

// deref returns the pointed-to value as any, or nil when unset.
func deref[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}

func value[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

func oneOf(set map[string]struct{}, v string) bool {
	_, ok := set[v]
	return ok
}

func newSet(values ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
