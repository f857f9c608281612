package ui

import (
	"os"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestFormatterWithColor(t *testing.T) {
	os.Unsetenv("NO_COLOR")
	color.NoColor = false
	defer func() { color.NoColor = true }()

	result := Highlight.Sprintf("payload: %s", "CONFIDENTIAL")
	if strings.HasPrefix(result, "'") {
		t.Errorf("Highlight should not add quotes when color is enabled, got: %s", result)
	}
	if !strings.Contains(result, "\x1b[") {
		t.Errorf("expected ANSI escape codes, got: %q", result)
	}
	if !strings.Contains(result, "payload: CONFIDENTIAL") {
		t.Errorf("formatted text missing, got: %q", result)
	}
}

func TestFormatterWithNoColor(t *testing.T) {
	os.Setenv("NO_COLOR", "1")
	defer os.Unsetenv("NO_COLOR")

	tests := []struct {
		name      string
		formatter Formatter
		input     string
		want      string
	}{
		{"Code adds backticks", Code, "vaultmark watermark embed", "`vaultmark watermark embed`"},
		{"Path has no decoration", Path, "photo.png", "photo.png"},
		{"Flag has no decoration", Flag, "--seal", "--seal"},
		{"Success has no decoration", Success, "✓", "✓"},
		{"Error has no decoration", Error, "✗", "✗"},
		{"Highlight adds quotes", Highlight, "CONFIDENTIAL", "'CONFIDENTIAL'"},
		{"Muted adds parentheses", Muted, "obfuscated", "(obfuscated)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.formatter.Sprint(tt.input); got != tt.want {
				t.Errorf("Sprint(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestEnsureNewline(t *testing.T) {
	tests := map[string]string{
		"":       "\n",
		"done":   "done\n",
		"done\n": "done\n",
		"a\nb":   "a\nb\n",
	}
	for in, want := range tests {
		if got := EnsureNewline(in); got != want {
			t.Errorf("EnsureNewline(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestBytesAndUnits(t *testing.T) {
	if got := Bytes(3750); got != "3.8 kB" {
		t.Errorf("Bytes(3750) = %q", got)
	}
	if got := Bytes(-1); got != "0 B" {
		t.Errorf("Bytes(-1) = %q", got)
	}
	if got := Units(65535); got != "65,535 chars" {
		t.Errorf("Units(65535) = %q", got)
	}
}
