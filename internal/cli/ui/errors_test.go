package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestFormatError(t *testing.T) {
	// Disable color for testing
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name     string
		opts     ErrorOptions
		contains []string
		excludes []string
	}{
		{
			name: "basic error",
			opts: ErrorOptions{
				Level:   ErrorLevelError,
				Context: "type not found",
				Problem: "Cannot find resource type 'post'.",
				NoColor: true,
			},
			contains: []string{"❌", "TYPE NOT FOUND", "Cannot find resource type 'post'."},
			excludes: []string{"Did you mean"},
		},
		{
			name: "suggestions and help",
			opts: ErrorOptions{
				Level:        ErrorLevelError,
				Problem:      "bad include",
				Suggestions:  []string{"author", "comments"},
				HelpCommands: []string{"Get help: compound render --help"},
				NoColor:      true,
			},
			contains: []string{"Did you mean: author, comments?", "→ Get help: compound render --help"},
		},
		{
			name:     "warning",
			opts:     ErrorOptions{Level: ErrorLevelWarning, Problem: "careful", Consequence: "it may break", NoColor: true},
			contains: []string{"⚠️", "careful", "it may break"},
		},
		{
			name:     "info",
			opts:     ErrorOptions{Level: ErrorLevelInfo, Problem: "fyi", NoColor: true},
			contains: []string{"ℹ️", "fyi"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatError(tt.opts)
			for _, s := range tt.contains {
				if !strings.Contains(result, s) {
					t.Errorf("FormatError() missing %q in:\n%s", s, result)
				}
			}
			for _, s := range tt.excludes {
				if strings.Contains(result, s) {
					t.Errorf("FormatError() unexpectedly contains %q in:\n%s", s, result)
				}
			}
		})
	}
}

func TestDomainErrors(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name     string
		got      string
		contains []string
	}{
		{
			name:     "type not found",
			got:      TypeNotFoundError("post", []string{"posts"}, true),
			contains: []string{"TYPE NOT FOUND", "'post'", "Did you mean: posts?", "compound render FILE --types"},
		},
		{
			name:     "record not found",
			got:      RecordNotFoundError("posts", "7", true),
			contains: []string{"RESOURCE NOT FOUND", "Cannot find posts with id '7'.", "--type posts"},
		},
		{
			name:     "invalid parameter",
			got:      InvalidParameterError("include", "auther", []string{"author"}, true),
			contains: []string{"INVALID INCLUDE", "'auther' is not a valid include value.", "Did you mean: author?"},
		},
		{
			name:     "fixture",
			got:      FixtureError("duplicate resource posts:1", true),
			contains: []string{"FIXTURE ERROR", "duplicate resource posts:1", "No document was rendered."},
		},
		{
			name:     "config",
			got:      ConfigError("server.port must be between 0 and 65535", true),
			contains: []string{"CONFIGURATION ERROR", "cat compound.yaml"},
		},
		{
			name:     "warning",
			got:      Warning("nothing included", true),
			contains: []string{"⚠️", "nothing included"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, s := range tt.contains {
				if !strings.Contains(tt.got, s) {
					t.Errorf("missing %q in:\n%s", s, tt.got)
				}
			}
		})
	}
}

func TestWriteSuccess(t *testing.T) {
	var buf bytes.Buffer
	WriteSuccess(&buf, "rendered posts", true)

	if buf.String() != "✓ rendered posts\n" {
		t.Errorf("unexpected output %q", buf.String())
	}
}
