package redis

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rostersync/rostersync/pkg/store"
)

func TestEscapeGlob(t *testing.T) {
	assert.Equal(t, `rs:guilds/a\*b\?c\[d\]`, escapeGlob("rs:guilds/a*b?c[d]"))
	assert.Equal(t, `plain`, escapeGlob("plain"))
}

func TestKeys(t *testing.T) {
	s := New(nil, "")
	assert.Equal(t, "rostersync:guilds/vanguard", s.key("guilds/vanguard"))
	assert.Equal(t, "guilds/vanguard", s.path("rostersync:guilds/vanguard"))
}

// openTestStore connects to REDIS_ADDR under a per-test prefix.
func openTestStore(t *testing.T) *Store {
	t.Helper()
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	cfg := DefaultConfig()
	cfg.Addr = addr
	cfg.Prefix = "rostersync-test-" + t.Name()
	s := Open(cfg)
	t.Cleanup(func() {
		_ = s.Remove(context.Background(), "")
		_ = s.Close()
	})
	return s
}

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	_, err := s.Identity(ctx)
	require.NoError(t, err)

	require.NoError(t, s.Set(ctx, "guilds/vanguard/characters/thrall", map[string]any{
		"level": 60, "dateAdded": "2016-01-02",
	}))
	require.NoError(t, s.Update(ctx, "guilds/vanguard/characters/thrall", map[string]any{"level": 45}))
	require.NoError(t, s.Set(ctx, "guilds/vanguard/items/thrall/19019", []string{"2015-12-31T00:00:00Z"}))

	v, err := s.Get(ctx, "guilds/vanguard")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"characters": map[string]any{
			"thrall": map[string]any{"level": float64(45), "dateAdded": "2016-01-02"},
		},
		"items": map[string]any{
			"thrall": map[string]any{"19019": []any{"2015-12-31T00:00:00Z"}},
		},
	}, v)

	require.NoError(t, s.Remove(ctx, "guilds/vanguard/characters"))
	node, err := store.NewRef(s, "guilds/vanguard/characters").Read(ctx)
	require.NoError(t, err)
	assert.False(t, node.Exists())
}
