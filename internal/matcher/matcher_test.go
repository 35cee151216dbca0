package matcher

import (
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		pattern     string
		patternType PatternType
		want        PatternType
		wantErr     bool
	}{
		{name: "valid glob pattern", pattern: "Nostalrius/*", patternType: Glob, want: Glob},
		{name: "valid regex pattern", pattern: "^Nost.*", patternType: Regex, want: Regex},
		{name: "invalid regex pattern", pattern: "(unclosed", patternType: Regex, wantErr: true},
		{name: "invalid glob pattern", pattern: "[unclosed", patternType: Glob, wantErr: true},
		{name: "auto detect glob", pattern: "*/vanguard", patternType: Auto, want: Glob},
		{name: "auto detect regex", pattern: "^Kronos/(dawn|dusk)$", patternType: Auto, want: Regex},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := New(tt.patternType, tt.pattern, nil)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if m.Type() != tt.want {
				t.Errorf("Type() = %v, want %v", m.Type(), tt.want)
			}
			if m.Pattern() != tt.pattern {
				t.Errorf("Pattern() = %q, want %q", m.Pattern(), tt.pattern)
			}
		})
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		opts    *Options
		input   string
		want    bool
	}{
		{"realm glob", "Nostalrius/*", nil, Key("Nostalrius", "vanguard"), true},
		{"realm glob other realm", "Nostalrius/*", nil, Key("Kronos", "vanguard"), false},
		{"star stays in segment", "*", nil, Key("Nostalrius", "vanguard"), false},
		{"guild glob", "*/vanguard", nil, Key("Kronos", "vanguard"), true},
		{"exact", "Kronos/dawn", nil, Key("Kronos", "dawn"), true},
		{"case sensitive by default", "kronos/dawn", nil, Key("Kronos", "dawn"), false},
		{"case insensitive glob", "kronos/*", &Options{CaseInsensitive: true}, Key("Kronos", "dawn"), true},
		{"regex alternation", "^Kronos/(dawn|dusk)$", nil, Key("Kronos", "dusk"), true},
		{"anchored regex", "Kronos/d.*", &Options{Anchored: true}, Key("Kronos", "dawn"), true},
		{"anchored regex rejects prefix", "ronos/d.*", &Options{Anchored: true}, Key("Kronos", "dawn"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := New(Auto, tt.pattern, tt.opts)
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if got := m.Match(tt.input); got != tt.want {
				t.Errorf("Match(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestMultiMatcher(t *testing.T) {
	mm, err := NewMultiMatcher([]string{"Kronos/*", "*/vanguard"}, Auto, &Options{CaseInsensitive: true})
	if err != nil {
		t.Fatalf("NewMultiMatcher() error = %v", err)
	}
	if mm.Len() != 2 {
		t.Errorf("Len() = %d, want 2", mm.Len())
	}

	for input, want := range map[string]bool{
		Key("Kronos", "dawn"):         true,
		Key("Nostalrius", "Vanguard"): true,
		Key("Nostalrius", "night"):    false,
	} {
		if got := mm.Match(input); got != want {
			t.Errorf("Match(%q) = %v, want %v", input, got, want)
		}
	}

	if _, err := NewMultiMatcher([]string{"ok", "(bad"}, Regex, nil); err == nil {
		t.Error("expected error for invalid pattern")
	}
}

func TestPatternTypeString(t *testing.T) {
	if Glob.String() != "glob" || Regex.String() != "regex" || Auto.String() != "auto" || PatternType(9).String() != "unknown" {
		t.Error("unexpected PatternType strings")
	}
}
