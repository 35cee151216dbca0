package logging

import (
	"context"
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"INFO", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
		{"warning", zerolog.WarnLevel},
		{"off", zerolog.Disabled},
		{"nonsense", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.input))
		})
	}
}

func TestGetWriter(t *testing.T) {
	t.Run("discard", func(t *testing.T) {
		w := getWriter(&Config{Output: "discard", Format: "json"})
		assert.Equal(t, io.Discard, w)
	})

	t.Run("console wraps output", func(t *testing.T) {
		w := getWriter(&Config{Output: "discard", Format: "console", NoColor: true})
		_, ok := w.(zerolog.ConsoleWriter)
		assert.True(t, ok)
	})
}

func TestContextFields(t *testing.T) {
	tl := NewTestLogger(t)

	ctx := WithLogger(context.Background(), tl.Logger)
	ctx = WithRealm(ctx, "Nostalrius")
	ctx = WithGuild(ctx, "vanguard")
	ctx = WithCharacter(ctx, "thrall")
	ctx = WithOperation(ctx, "save_character")

	FromContext(ctx).Info().Msg("saved")

	lines := tl.Lines()
	require.Len(t, lines, 1)
	tl.AssertContains(t, `"realm":"Nostalrius"`)
	tl.AssertContains(t, `"guild":"vanguard"`)
	tl.AssertContains(t, `"character":"thrall"`)
	tl.AssertContains(t, `"operation":"save_character"`)
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	//nolint:staticcheck // nil context is handled explicitly
	assert.Same(t, Default(), FromContext(nil))
	assert.Same(t, Default(), FromContext(context.Background()))
}

func TestCaptureLoggingForTest(t *testing.T) {
	tl := CaptureLoggingForTest(t)

	Warn().Str("guild", "vanguard").Msg("guild skipped")

	tl.AssertContains(t, "guild skipped")
	tl.AssertNotContains(t, "panic")
}
