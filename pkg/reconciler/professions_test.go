package reconciler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rostersync/rostersync/pkg/models"
	"github.com/rostersync/rostersync/pkg/store/memory"
)

func TestSaveProfessionsCleanup(t *testing.T) {
	s := memory.New(memory.WithData(map[string]any{
		"guilds": map[string]any{"vanguard": map[string]any{
			"professions": map[string]any{
				"cooking":     map[string]any{"a": 300},
				"mining":      map[string]any{"a": 300, "b": 150},
				"herbalism":   map[string]any{"a": 10},
				"engineering": map[string]any{"b": 225},
			},
		}},
	}))
	r := newTestReconciler(t, s, &fakeFetcher{})

	err := r.SaveProfessions(context.Background(), "a", []*models.Profession{
		profession("a", "herbalism", 120),
		profession("a", "fishing", 75),
	})
	require.NoError(t, err)

	assert.Nil(t, read(t, s, "guilds/vanguard/professions/mining/a"), "absent primary is removed")
	assert.Equal(t, float64(300), read(t, s, "guilds/vanguard/professions/cooking/a"), "secondary is kept")
	assert.Equal(t, float64(120), read(t, s, "guilds/vanguard/professions/herbalism/a"))
	assert.Equal(t, float64(75), read(t, s, "guilds/vanguard/professions/fishing/a"))

	// other characters are untouched
	assert.Equal(t, float64(150), read(t, s, "guilds/vanguard/professions/mining/b"))
	assert.Equal(t, float64(225), read(t, s, "guilds/vanguard/professions/engineering/b"))

	assert.EqualValues(t, 2, r.stats.professionsSaved.Load())
	assert.EqualValues(t, 1, r.stats.professionsRemoved.Load())
}

func TestSaveProfessionsDropsInvalid(t *testing.T) {
	backend := &countingBackend{Store: memory.New()}
	r := newTestReconciler(t, backend, &fakeFetcher{})

	bad := models.NewProfession()
	bad.SetName("mining")
	bad.SetCharacterName("a")

	require.NoError(t, r.SaveProfessions(context.Background(), "a", []*models.Profession{bad}))
	assert.Empty(t, backend.Writes())
	assert.EqualValues(t, 1, r.stats.dropped.Load())
}

func TestSaveReputations(t *testing.T) {
	s := memory.New()
	r := newTestReconciler(t, s, &fakeFetcher{})

	err := r.SaveReputations(context.Background(), "a", []*models.Reputation{
		reputation("a", "timbermaw hold", -3000),
		reputation("a", "shen'dralar", 0),
	})
	require.NoError(t, err)

	assert.Equal(t, float64(-3000), read(t, s, "guilds/vanguard/reputations/timbermaw hold/a"))
	assert.Equal(t, float64(0), read(t, s, "guilds/vanguard/reputations/shen'dralar/a"))
	assert.EqualValues(t, 2, r.stats.reputationsSaved.Load())
}
