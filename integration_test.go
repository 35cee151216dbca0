package rostersync_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rostersync/rostersync"
	"github.com/rostersync/rostersync/internal/armory"
	"github.com/rostersync/rostersync/internal/store/sqlite"
	"github.com/rostersync/rostersync/pkg/reconciler"
	"github.com/rostersync/rostersync/pkg/store"
)

// armoryServer serves the armory fixtures. Once departed is set the guild
// roster only lists Nameone.
func armoryServer(t *testing.T, departed *atomic.Bool) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := filepath.Base(r.URL.Path)
		file := filepath.Join("internal", "armory", "testdata", name)
		if name == "guild-info.xml" && departed.Load() {
			file = filepath.Join("testdata", "guild-info-departed.xml")
		}
		data, err := os.ReadFile(file)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/xml")
		_, _ = w.Write(data)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func read(t *testing.T, ref store.Ref, parts ...string) store.Node {
	t.Helper()
	n, err := ref.Child(parts...).Read(context.Background())
	require.NoError(t, err)
	return n
}

func TestSyncAgainstArmoryAndSQLite(t *testing.T) {
	var departed atomic.Bool
	srv := armoryServer(t, &departed)

	backend, err := sqlite.Open(filepath.Join(t.TempDir(), "roster.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = backend.Close() })

	fetchers := func(realm string) (reconciler.Fetcher, error) {
		return armory.New(realm, armory.WithBaseURL(srv.URL+"/"))
	}
	now := time.Date(2016, 1, 2, 10, 30, 0, 0, time.UTC)
	s, err := rostersync.New(backend, fetchers,
		rostersync.WithTasks(rostersync.Tasks{"Realm Name": {"vanguard"}}),
		rostersync.WithClock(func() time.Time { return now }),
	)
	require.NoError(t, err)

	ctx := context.Background()
	guild := store.Root(backend).Child("guilds", "vanguard")

	first, err := s.Sync(ctx)
	require.NoError(t, err)
	require.Len(t, first.Guilds, 1)
	res := first.Guilds[0]
	assert.Equal(t, 2, res.CharactersAdded)
	// deathknight fails validation but is still a member
	assert.Equal(t, 3, res.BosskillsRecorded)
	assert.Equal(t, 1, res.CharactersSkipped)
	assert.Empty(t, res.Archived)

	assert.True(t, read(t, guild, "characters", "nameone").Exists())
	assert.True(t, read(t, guild, "characters", "nametwo").Exists())
	assert.False(t, read(t, guild, "characters", "deathknight").Exists())
	assert.True(t, read(t, guild, "professions", "blacksmithing", "deathknight").Exists())

	level, ok := read(t, guild, "professions", "blacksmithing", "nameone").Int()
	require.True(t, ok)
	assert.Equal(t, 300, level)

	boss, ok := read(t, guild, "bosskills", "nameone", "123456", "bossID").Int()
	require.True(t, ok)
	assert.Equal(t, 14510, boss)
	assert.Len(t, read(t, guild, "items", "nameone", "22337").Strings(), 2)
	assert.Equal(t, "2016-01-02T10:30:00+00:00", read(t, guild, "lastUpdate").Value())

	second, err := s.Sync(ctx)
	require.NoError(t, err)
	res = second.Guilds[0]
	assert.Zero(t, res.CharactersAdded)
	assert.Zero(t, res.BosskillsRecorded)
	assert.Zero(t, res.ItemsRecorded+res.ItemsAppended)
	assert.Len(t, read(t, guild, "items", "nameone", "22337").Strings(), 2)

	departed.Store(true)
	third, err := s.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"nametwo"}, third.Guilds[0].Archived)

	assert.False(t, read(t, guild, "characters", "nametwo").Exists())
	assert.Equal(t, "2016-01-02", read(t, guild, "ex-characters", "nametwo", "dateRemoved").Value())
	assert.False(t, read(t, guild, "ex-characters", "nametwo", "dateAdded").Exists())
	assert.False(t, read(t, guild, "professions", "blacksmithing", "nametwo").Exists())
	assert.False(t, read(t, guild, "items", "nametwo").Exists())
	assert.False(t, read(t, guild, "bosskills", "nametwo").Exists())
	assert.True(t, read(t, guild, "characters", "nameone").Exists())
}
