package alerts

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rostersync/rostersync"
	"github.com/rostersync/rostersync/pkg/reconciler"
)

func TestAlertString(t *testing.T) {
	a := NewError("guild vanguard on Nostalrius failed").WithError(errors.New("timeout"))
	assert.Equal(t, "✗ guild vanguard on Nostalrius failed: timeout", a.String())
	assert.Equal(t, "✓ done", NewSuccess("done").String())
	assert.Equal(t, "warning", LevelWarning.String())
	assert.Equal(t, "unknown(9)", Level(9).String())
}

func TestTextWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewTextWriter(&buf, false)
	require.NoError(t, w.WriteAlert(NewWarning("archived").WithDetails("thrall, jaina")))
	assert.Equal(t, "! archived\n  thrall, jaina\n", buf.String())

	buf.Reset()
	w.WithConfig(WriterConfig{UseColor: true})
	require.NoError(t, w.WriteAlert(NewInfo("hello").WithDetails("hidden")))
	assert.Equal(t, "\033[36mi hello\033[0m\n", buf.String())
}

func TestMultiWriter(t *testing.T) {
	var a, b int
	w := MultiWriter(
		WriterFunc(func(*Alert) error { a++; return nil }),
		WriterFunc(func(*Alert) error { b++; return nil }),
	)
	require.NoError(t, WriteAll(w, []*Alert{NewInfo("x"), NewInfo("y")}))
	assert.Equal(t, 2, a)
	assert.Equal(t, 2, b)
	assert.NoError(t, DiscardWriter.WriteAlert(NewInfo("z")))
}

func TestFromResult(t *testing.T) {
	end := time.Date(2016, 1, 2, 10, 30, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		result := &rostersync.Result{
			Guilds: []rostersync.GuildResult{
				{Realm: "Nostalrius", Guild: "vanguard", Result: &reconciler.Result{Archived: []string{"jaina", "thrall"}}},
				{Realm: "Kronos", Guild: "dawn", Result: &reconciler.Result{}},
			},
			EndTime: end,
		}
		got := FromResult(result)
		require.Len(t, got, 2)
		assert.Equal(t, LevelWarning, got[0].Level)
		assert.Equal(t, []string{"jaina, thrall"}, got[0].Details)
		assert.Equal(t, "✓ 2 guild(s) synchronized", got[1].String())
		assert.Equal(t, end, got[1].Timestamp)
	})

	t.Run("failures", func(t *testing.T) {
		result := &rostersync.Result{
			Failures: []rostersync.Failure{{Realm: "Kronos", Guild: "dawn", Err: errors.New("boom")}},
		}
		got := FromResult(result)
		require.Len(t, got, 2)
		assert.Equal(t, "✗ guild dawn on Kronos failed: boom", got[0].String())
		assert.Equal(t, "✗ 1 of 1 guild(s) failed", got[1].String())
	})

	assert.Nil(t, FromResult(nil))
}
