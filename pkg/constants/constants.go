// Package constants provides shared constants used throughout the rostersync codebase.
// This includes timeouts, limits, file permissions, store layout keys and the
// armory defaults that should be consistent across the application.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// DefaultHTTPTimeout is the standard timeout for HTTP requests to the armory and store
	DefaultHTTPTimeout = 30 * time.Second

	// DefaultTimeout is the standard timeout for general operations
	DefaultTimeout = 10 * time.Second

	// GuildSyncTimeout bounds a single guild reconciliation
	GuildSyncTimeout = 15 * time.Minute

	// CommandTimeout is the default timeout for CLI commands
	CommandTimeout = 2 * time.Hour

	// RetryBackoff is the base backoff duration for retries
	RetryBackoff = 1 * time.Second

	// MaxRetryBackoff is the maximum backoff duration for retries
	MaxRetryBackoff = 30 * time.Second
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Limit constants define various limits and capacities
const (
	// DefaultRealmConcurrency is how many realms are synced at once
	DefaultRealmConcurrency = 1

	// DefaultGuildConcurrency is how many guilds of one realm are synced at once
	DefaultGuildConcurrency = 1

	// DefaultCharacterConcurrency caps per-guild character fan-out (0 = unbounded)
	DefaultCharacterConcurrency = 0

	// DefaultRetries is the number of extra attempts for a failed guild run
	DefaultRetries = 0
)

// Armory constants
const (
	// DefaultArmoryURL is the armory the original roster tool scraped
	DefaultArmoryURL = "http://armory.twinstar.cz"

	// DefaultArmoryUTCOffset is how far armory server time runs ahead of UTC
	DefaultArmoryUTCOffset = 1 * time.Hour

	// DefaultUserAgent identifies rostersync to remote services
	DefaultUserAgent = "rostersync/1.0"
)

// Store layout constants name the nodes under guilds/<guild>/
const (
	NodeGuilds       = "guilds"
	NodeTasks        = "tasks"
	NodeCharacters   = "characters"
	NodeExCharacters = "ex-characters"
	NodeProfessions  = "professions"
	NodeReputations  = "reputations"
	NodeItems        = "items"
	NodeBosskills    = "bosskills"
	NodeLastUpdate   = "lastUpdate"
)

// Date formats written to the store
const (
	// DateFormat is used for dateAdded and dateRemoved
	DateFormat = "2006-01-02"

	// TimestampFormat is used for lastUpdate
	TimestampFormat = "2006-01-02T15:04:05-07:00"
)
