package output

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestColorSchemes(t *testing.T) {
	for name, scheme := range map[string]*ColorScheme{
		"default":  DefaultColorScheme(),
		"no color": NoColorScheme(),
	} {
		for i, c := range scheme.all() {
			if c == nil {
				t.Errorf("%s scheme color %d is nil", name, i)
			}
		}
	}

	if got := NoColorScheme().Bad.Sprint("x"); got != "x" {
		t.Errorf("NoColorScheme().Bad.Sprint() = %q, want plain text", got)
	}
	if got := DefaultColorScheme().Bad.Sprint("x"); !strings.Contains(got, "\x1b[") {
		t.Errorf("DefaultColorScheme().Bad.Sprint() = %q, want escape codes", got)
	}
}

func TestSchemeFor(t *testing.T) {
	var buf bytes.Buffer
	if got := SchemeFor(&buf, false).Good.Sprint("x"); got != "x" {
		t.Errorf("SchemeFor(buffer) colored output: %q", got)
	}
	if got := SchemeFor(os.Stdout, true).Good.Sprint("x"); got != "x" {
		t.Errorf("SchemeFor(stdout, noColor) colored output: %q", got)
	}
	if IsTerminal(&buf) {
		t.Error("IsTerminal(buffer) = true")
	}
}

func TestIcons(t *testing.T) {
	tests := []struct {
		name string
		icon func(bool) string
		want string
	}{
		{"success", SuccessIcon, "✓"},
		{"error", ErrorIcon, "✗"},
		{"warning", WarningIcon, "⚠"},
	}
	for _, tt := range tests {
		if got := tt.icon(true); got != tt.want {
			t.Errorf("%s icon = %q, want %q", tt.name, got, tt.want)
		}
		if got := tt.icon(false); !strings.Contains(got, tt.want) {
			t.Errorf("%s colored icon = %q, want it to contain %q", tt.name, got, tt.want)
		}
	}
}
