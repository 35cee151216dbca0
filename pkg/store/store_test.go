package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rostersync/rostersync/pkg/errors"
	"github.com/rostersync/rostersync/pkg/store"
	"github.com/rostersync/rostersync/pkg/store/memory"
)

func TestRefChild(t *testing.T) {
	root := store.Root(memory.New())

	ref := root.Child("guilds", "vanguard").Child("professions", "first aid", "thrall")
	assert.Equal(t, "guilds/vanguard/professions/first aid/thrall", ref.Path())
	assert.Equal(t, "thrall", ref.Key())
	assert.Equal(t, "/guilds/vanguard/professions/first aid/thrall", ref.String())
	assert.Equal(t, "", root.Path())
	assert.True(t, store.Ref{}.IsZero())
	assert.False(t, root.IsZero())

	assert.Equal(t, "a/b", store.Join("/a/", "", "b/"))
}

type failingBackend struct{ memory.Store }

func (f *failingBackend) Set(context.Context, string, any) error {
	return errors.New("quota exceeded")
}

func TestRefWrapsBackendErrors(t *testing.T) {
	ref := store.Root(&failingBackend{}).Child("characters", "thrall")

	err := ref.Set(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, errors.IsStoreError(err))
	assert.Contains(t, err.Error(), "characters/thrall")
}

func TestNode(t *testing.T) {
	n := store.NewNode(map[string]any{
		"thrall": map[string]any{"level": float64(60)},
		"jaina":  map[string]any{},
		"items":  []any{"a", "b", 3},
	})

	assert.True(t, n.Exists())
	assert.Equal(t, []string{"items", "thrall"}, n.Keys())

	level, ok := n.Child("thrall").Child("level").Int()
	require.True(t, ok)
	assert.Equal(t, 60, level)

	_, ok = store.NewNode(1.5).Int()
	assert.False(t, ok)

	assert.Equal(t, []string{"a", "b"}, n.Child("items").Strings())
	assert.False(t, n.Child("jaina").Exists())
	assert.False(t, store.NewNode([]any{}).Exists())
	assert.False(t, n.Child("missing").Exists())

	var out struct {
		Level int `json:"level"`
	}
	require.NoError(t, n.Child("thrall").Decode(&out))
	assert.Equal(t, 60, out.Level)
}

func TestFlattenUnflatten(t *testing.T) {
	tree := map[string]any{
		"characters": map[string]any{
			"thrall": map[string]any{"level": float64(60), "class": "shaman"},
		},
		"items": map[string]any{
			"thrall": map[string]any{"19019": []any{"2015-12-31T00:00:00Z"}},
		},
		"empty": map[string]any{},
	}

	leaves := store.Flatten("guilds/vanguard", tree)
	assert.Equal(t, map[string]any{
		"guilds/vanguard/characters/thrall/level": float64(60),
		"guilds/vanguard/characters/thrall/class": "shaman",
		"guilds/vanguard/items/thrall/19019":      []any{"2015-12-31T00:00:00Z"},
	}, leaves)

	delete(tree, "empty")
	assert.Equal(t, tree, store.Unflatten("guilds/vanguard", leaves))
	assert.Equal(t, float64(60), store.Unflatten("guilds/vanguard/characters/thrall/level", leaves))
	assert.Nil(t, store.Unflatten("guilds/horde", leaves))

	// prefix must match whole segments
	assert.Nil(t, store.Unflatten("guilds/vang", leaves))
}

func TestAncestors(t *testing.T) {
	assert.Equal(t, []string{"a/b", "a"}, store.Ancestors("a/b/c"))
	assert.Empty(t, store.Ancestors("a"))
	assert.True(t, store.Descendant("a", "a/b"))
	assert.False(t, store.Descendant("a", "ab/c"))
	assert.True(t, store.Descendant("", "a"))
}
