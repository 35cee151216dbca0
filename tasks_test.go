package rostersync

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rostersync/rostersync/pkg/errors"
	"github.com/rostersync/rostersync/pkg/store"
	"github.com/rostersync/rostersync/pkg/store/memory"
)

func TestTasksRealms(t *testing.T) {
	tasks := Tasks{"Nostalrius": {"vanguard", "nightfall"}, "Kronos": {"dawn"}, "Elysium": nil}
	assert.Equal(t, []string{"Elysium", "Kronos", "Nostalrius"}, tasks.Realms())
	assert.Equal(t, 3, tasks.Len())

	clone := tasks.Clone()
	clone["Kronos"][0] = "changed"
	assert.Equal(t, "dawn", tasks["Kronos"][0])
}

func TestLoadTasksFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("valid", func(t *testing.T) {
		path := filepath.Join(dir, "tasks.yaml")
		require.NoError(t, os.WriteFile(path, []byte("Nostalrius:\n  - vanguard\n  - nightfall\nKronos:\n  - dawn\n"), 0o600))

		tasks, err := LoadTasksFile(path)
		require.NoError(t, err)
		assert.Equal(t, Tasks{"Nostalrius": {"vanguard", "nightfall"}, "Kronos": {"dawn"}}, tasks)
	})

	t.Run("empty", func(t *testing.T) {
		path := filepath.Join(dir, "empty.yaml")
		require.NoError(t, os.WriteFile(path, nil, 0o600))

		tasks, err := LoadTasksFile(path)
		require.NoError(t, err)
		assert.Empty(t, tasks)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := LoadTasksFile(filepath.Join(dir, "missing.yaml"))
		assert.True(t, errors.IsNotFound(err))
	})

	t.Run("malformed", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("Nostalrius: [vanguard\n"), 0o600))

		_, err := LoadTasksFile(path)
		var parseErr *errors.ParseError
		assert.True(t, errors.As(err, &parseErr))
	})
}

func TestReadTasks(t *testing.T) {
	s := memory.New(memory.WithData(map[string]any{
		"tasks": map[string]any{
			"Nostalrius": []any{"vanguard", "nightfall"},
			"Kronos":     map[string]any{"-Ka": "dawn", "-Kb": "dusk"},
		},
	}))

	tasks, err := ReadTasks(context.Background(), store.Root(s))
	require.NoError(t, err)
	assert.Equal(t, Tasks{
		"Nostalrius": {"vanguard", "nightfall"},
		"Kronos":     {"dawn", "dusk"},
	}, tasks)

	tasks, err = ReadTasks(context.Background(), store.Root(memory.New()))
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestTasksFilter(t *testing.T) {
	tasks := Tasks{"Nostalrius": {"vanguard", "nightfall"}, "Kronos": {"dawn"}}
	filtered := tasks.Filter(func(realm, guild string) bool { return guild != "dawn" })
	assert.Equal(t, Tasks{"Nostalrius": {"vanguard", "nightfall"}}, filtered)
}

func TestSyncerTasksWithOnly(t *testing.T) {
	syncer, err := New(memory.New(), newFactory().New,
		WithTasks(Tasks{"Nostalrius": {"vanguard", "nightfall"}, "Kronos": {"dawn"}}),
		WithOnly("nostalrius/v*", "*/dawn"))
	require.NoError(t, err)

	tasks, err := syncer.Tasks(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Tasks{"Nostalrius": {"vanguard"}, "Kronos": {"dawn"}}, tasks)

	_, err = New(memory.New(), newFactory().New, WithOnly("(bad"))
	assert.True(t, errors.IsValidationError(err))
}
