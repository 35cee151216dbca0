package reconciler

import (
	"context"

	"github.com/rostersync/rostersync/pkg/models"
)

// Fetcher produces fresh snapshots of one realm's guilds and characters.
// Implementations normalize character names to lower case and report an
// upstream error page as an error, never as an empty result.
type Fetcher interface {
	// Characters returns the current roster of guild.
	Characters(ctx context.Context, guild string) ([]*models.Character, error)

	// Professions returns the professions and secondary skills of character.
	Professions(ctx context.Context, character string) ([]*models.Profession, error)

	// Reputations returns the faction standings of character.
	Reputations(ctx context.Context, character string) ([]*models.Reputation, error)

	// Activities returns the feed entries of character.
	Activities(ctx context.Context, character string) ([]*models.Activity, error)
}
