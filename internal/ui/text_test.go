package ui

import (
	"os"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestFormatterWithColor(t *testing.T) {
	if v, ok := os.LookupEnv("NO_COLOR"); ok {
		os.Unsetenv("NO_COLOR")
		defer os.Setenv("NO_COLOR", v)
	}
	original := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = original }()

	result := Code.Sprint("storyvault seal serruchin")
	if strings.Contains(result, "`") {
		t.Errorf("Code.Sprint should not contain backticks when color is enabled, got: %s", result)
	}
	if !strings.Contains(result, "\x1b[") {
		t.Errorf("Code.Sprint should contain ANSI escape codes when color is enabled, got: %s", result)
	}
}

func TestFormatterWithNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	tests := []struct {
		name      string
		formatter Formatter
		input     string
		want      string
	}{
		{"Code adds backticks", Code, "storyvault list", "`storyvault list`"},
		{"Path has no decoration", Path, "src-tauri/resources", "src-tauri/resources"},
		{"Flag has no decoration", Flag, "--dry-run", "--dry-run"},
		{"Story adds quotes", Story, "serruchin", "'serruchin'"},
		{"Success has no decoration", Success, "✓", "✓"},
		{"Error has no decoration", Error, "✗", "✗"},
		{"Warning has no decoration", Warning, "⚠", "⚠"},
		{"Info has no decoration", Info, "→", "→"},
		{"Muted adds parentheses", Muted, "default", "(default)"},
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

func TestFormatterSprintf(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	if got := Story.Sprintf("%s-%d", "chapter", 2); got != "'chapter-2'" {
		t.Errorf("Story.Sprintf = %q, want %q", got, "'chapter-2'")
	}
}

func TestEnsureNewline(t *testing.T) {
	tests := []struct{ in, want string }{
		{"", "\n"},
		{"done", "done\n"},
		{"done\n", "done\n"},
	}
	for _, tc := range tests {
		if got := EnsureNewline(tc.in); got != tc.want {
			t.Errorf("EnsureNewline(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
