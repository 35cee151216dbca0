package rostersync

import (
	"sync"
)

// Hook function types for run events
type (
	// GuildSyncedHook is called after a guild run completed and its
	// lastUpdate was written
	GuildSyncedHook func(result GuildResult)

	// CharacterArchivedHook is called for every character moved to
	// ex-characters during a guild run
	CharacterArchivedHook func(realm, guild, name string)

	// GuildFailedHook is called when a guild run failed after all retries
	GuildFailedHook func(realm, guild string, err error)
)

// hooks manages event callbacks for guild runs
type hooks struct {
	mu                  sync.RWMutex
	onGuildSynced       []GuildSyncedHook
	onCharacterArchived []CharacterArchivedHook
	onGuildFailed       []GuildFailedHook
}

// newHooks creates a new hooks instance
func newHooks() *hooks {
	return &hooks{}
}

// OnGuildSynced registers a callback for completed guild runs
func (h *hooks) OnGuildSynced(fn GuildSyncedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onGuildSynced = append(h.onGuildSynced, fn)
}

// OnCharacterArchived registers a callback for archived characters
func (h *hooks) OnCharacterArchived(fn CharacterArchivedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onCharacterArchived = append(h.onCharacterArchived, fn)
}

// OnGuildFailed registers a callback for failed guild runs
func (h *hooks) OnGuildFailed(fn GuildFailedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onGuildFailed = append(h.onGuildFailed, fn)
}

// triggerGuildSynced fires the archive hooks for each archived character,
// then the synced hooks
func (h *hooks) triggerGuildSynced(result GuildResult) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if result.Result != nil {
		for _, name := range result.Result.Archived {
			for _, hook := range h.onCharacterArchived {
				hook(result.Realm, result.Guild, name)
			}
		}
	}
	for _, hook := range h.onGuildSynced {
		hook(result)
	}
}

func (h *hooks) triggerGuildFailed(realm, guild string, err error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, hook := range h.onGuildFailed {
		hook(realm, guild, err)
	}
}
