// Package table provides common table formatting utilities for CLI commands.
package table

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents data formatted for table output.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

// Tabular is implemented by command results that render as a table.
type Tabular interface {
	Table() Data
}

// Title turns a store key such as "guildRank" or "date_added" into a
// column header like "Guild Rank".
func Title(key string) string {
	var b strings.Builder
	for i, r := range key {
		switch {
		case r == '_' || r == '-':
			b.WriteByte(' ')
			continue
		case i > 0 && r >= 'A' && r <= 'Z':
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	// Casers keep state, so each call gets its own.
	return cases.Title(language.English).String(b.String())
}

// Headers titles every key.
func Headers(keys ...string) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = Title(k)
	}
	return out
}

// FormatInt formats an optional integer, "-" when absent.
func FormatInt(n int, ok bool) string {
	if !ok {
		return "-"
	}
	return strconv.Itoa(n)
}

// FormatString returns s or "-" when empty.
func FormatString(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
