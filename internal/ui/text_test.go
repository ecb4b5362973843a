package ui

import (
	"os"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestFormatterWithColor(t *testing.T) {
	// Ensure NO_COLOR is not set for this test.
	os.Unsetenv("NO_COLOR")
	// Force color output for testing.
	color.NoColor = false

	// Code formatter should not have backticks when color is enabled.
	result := Code.Sprint("totara init")
	if strings.Contains(result, "`") {
		t.Errorf("Code.Sprint should not contain backticks when color is enabled, got: %s", result)
	}

	// Verify it contains ANSI escape codes (color output).
	if !strings.Contains(result, "\x1b[") {
		t.Errorf("Code.Sprint should contain ANSI escape codes when color is enabled, got: %s", result)
	}
}

func TestFormatterWithNoColor(t *testing.T) {
	// Set NO_COLOR for this test.
	os.Setenv("NO_COLOR", "1")
	defer os.Unsetenv("NO_COLOR")

	tests := []struct {
		name      string
		formatter Formatter
		input     string
		want      string
	}{
		{"Code adds backticks", Code, "totara init", "`totara init`"},
		{"Path has no decoration", Path, "profile.toml", "profile.toml"},
		{"Success has no decoration", Success, "✓", "✓"},
		{"Error has no decoration", Error, "✗", "✗"},
		{"Warning has no decoration", Warning, "⚠", "⚠"},
		{"Info has no decoration", Info, "→", "→"},
		{"Highlight adds quotes", Highlight, "api_token", "'api_token'"},
		{"Muted adds parentheses", Muted, "encrypted", "(encrypted)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.formatter.Sprint(tt.input)
			if got != tt.want {
				t.Errorf("%s.Sprint(%q) = %q, want %q", tt.name, tt.input, got, tt.want)
			}
		})
	}
}

func TestEnsureNewline(t *testing.T) {
	if got := EnsureNewline("hello"); got != "hello\n" {
		t.Errorf("EnsureNewline(%q) = %q", "hello", got)
	}
	if got := EnsureNewline("hello\n"); got != "hello\n" {
		t.Errorf("EnsureNewline(%q) = %q", "hello\n", got)
	}
	if got := EnsureNewline(""); got != "\n" {
		t.Errorf("EnsureNewline(%q) = %q", "", got)
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  string
	}{
		{"short line unchanged", "hello world", 20, "hello world"},
		{"wraps at word boundary", "one two three four", 9, "one two\nthree\nfour"},
		{"long word on own line", "a verylongword b", 6, "a\nverylongword\nb"},
		{"preserves paragraphs", "first paragraph\nsecond one", 40, "first paragraph\nsecond one"},
		{"zero width unchanged", "hello world", 0, "hello world"},
		{"collapses interior spaces", "a   b", 10, "a b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Wrap(tt.text, tt.width)
			if got != tt.want {
				t.Errorf("Wrap(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
			}
		})
	}
}

func TestWrapLineLengths(t *testing.T) {
	text := "the quick brown fox jumps over the lazy dog and keeps on running"
	for _, line := range strings.Split(Wrap(text, 20), "\n") {
		if len(line) > 20 {
			t.Errorf("line %q exceeds width 20", line)
		}
	}
}
