package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rostersync/rostersync/internal/cmd/table"
)

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"table", "JSON", "yaml", ""} {
		_, err := ParseFormat(s)
		assert.NoError(t, err, s)
	}
	_, err := ParseFormat("csv")
	assert.Error(t, err)
}

func TestTableFormatter(t *testing.T) {
	var buf bytes.Buffer
	err := NewFormatter(FormatTable).Format(&buf, table.Data{
		Headers: []string{"Name", "Level"},
		Rows:    [][]string{{"thrall", "60"}, {"jaina", "45"}},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "thrall")
	assert.Contains(t, out, "jaina")
	assert.Contains(t, strings.ToUpper(out), "LEVEL")
}

func TestTableFormatterFallsBackToJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatTable).Format(&buf, map[string]int{"level": 60}))
	assert.JSONEq(t, `{"level": 60}`, buf.String())
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, "yaml", table.Roster{{Name: "thrall", Level: 60}}))
	assert.Contains(t, buf.String(), "name: thrall")
	assert.Contains(t, buf.String(), "level: 60")
}
