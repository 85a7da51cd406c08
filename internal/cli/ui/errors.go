package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// ErrorLevel represents the severity of a message
type ErrorLevel int

const (
	ErrorLevelError ErrorLevel = iota
	ErrorLevelWarning
	ErrorLevelInfo
)

// ErrorOptions configures the error message formatting
type ErrorOptions struct {
	Level        ErrorLevel
	Context      string
	Problem      string
	Consequence  string
	Suggestions  []string
	HelpCommands []string
	NoColor      bool
}

type levelStyle struct {
	symbol string
	attr   color.Attribute
}

var levelStyles = map[ErrorLevel]levelStyle{
	ErrorLevelError:   {symbol: "❌", attr: color.FgRed},
	ErrorLevelWarning: {symbol: "⚠️", attr: color.FgYellow},
	ErrorLevelInfo:    {symbol: "ℹ️", attr: color.FgCyan},
}

// newColor returns a color that honours noColor
func newColor(noColor bool, attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if noColor {
		c.DisableColor()
	}
	return c
}

// FormatError creates a standardized error message with suggestions and help commands
//
// Example output:
//
//	❌ TYPE NOT FOUND: Cannot find resource type 'post'.
//	   Cannot find resource type 'post'.
//
//	   Did you mean: posts?
//
//	   → See all types: compound render FILE --types
func FormatError(opts ErrorOptions) string {
	var b strings.Builder

	style := levelStyles[opts.Level]
	header := newColor(opts.NoColor, style.attr, color.Bold)
	body := newColor(opts.NoColor, style.attr)

	if opts.Context != "" {
		header.Fprintf(&b, "%s %s: %s\n", style.symbol, strings.ToUpper(opts.Context), opts.Problem)
		body.Fprintf(&b, "   %s\n", opts.Problem)
	} else {
		header.Fprintf(&b, "%s %s\n", style.symbol, opts.Problem)
	}

	if opts.Consequence != "" {
		b.WriteString("\n")
		body.Fprintf(&b, "   %s\n", opts.Consequence)
	}

	if len(opts.Suggestions) > 0 {
		b.WriteString("\n")
		newColor(opts.NoColor, color.FgYellow).Fprintf(&b, "   Did you mean: %s?\n", strings.Join(opts.Suggestions, ", "))
	}

	if len(opts.HelpCommands) > 0 {
		b.WriteString("\n")
		cyan := newColor(opts.NoColor, color.FgCyan)
		for _, cmd := range opts.HelpCommands {
			cyan.Fprintf(&b, "   → %s\n", cmd)
		}
	}

	return b.String()
}

// WriteError writes a formatted error message to the writer
func WriteError(w io.Writer, opts ErrorOptions) {
	fmt.Fprint(w, FormatError(opts))
}

// FormatSuccess creates a success message
func FormatSuccess(message string, noColor bool) string {
	return newColor(noColor, color.FgGreen, color.Bold).Sprintf("✓ %s", message)
}

// WriteSuccess writes a success message to the writer
func WriteSuccess(w io.Writer, message string, noColor bool) {
	fmt.Fprintln(w, FormatSuccess(message, noColor))
}

// TypeNotFoundError reports a resource type missing from a fixture
func TypeNotFoundError(typ string, suggestions []string, noColor bool) string {
	return FormatError(ErrorOptions{
		Level:       ErrorLevelError,
		Context:     "TYPE NOT FOUND",
		Problem:     fmt.Sprintf("Cannot find resource type '%s'.", typ),
		Suggestions: suggestions,
		HelpCommands: []string{
			"See all types: compound render FILE --types",
			"Get help: compound render --help",
		},
		NoColor: noColor,
	})
}

// RecordNotFoundError reports a missing type/id pair
func RecordNotFoundError(typ, id string, noColor bool) string {
	return FormatError(ErrorOptions{
		Level:   ErrorLevelError,
		Context: "RESOURCE NOT FOUND",
		Problem: fmt.Sprintf("Cannot find %s with id '%s'.", typ, id),
		HelpCommands: []string{
			fmt.Sprintf("List %s: compound render FILE --type %s", typ, typ),
		},
		NoColor: noColor,
	})
}

// InvalidParameterError reports a rejected query parameter
func InvalidParameterError(parameter, value string, suggestions []string, noColor bool) string {
	return FormatError(ErrorOptions{
		Level:       ErrorLevelError,
		Context:     "INVALID " + parameter,
		Problem:     fmt.Sprintf("'%s' is not a valid %s value.", value, parameter),
		Suggestions: suggestions,
		HelpCommands: []string{
			"Get help: compound render --help",
		},
		NoColor: noColor,
	})
}

// FixtureError reports a fixture that could not be loaded
func FixtureError(message string, noColor bool) string {
	return FormatError(ErrorOptions{
		Level:       ErrorLevelError,
		Context:     "FIXTURE ERROR",
		Problem:     message,
		Consequence: "No document was rendered.",
		NoColor:     noColor,
	})
}

// ConfigError creates a standardized configuration error
func ConfigError(message string, noColor bool) string {
	return FormatError(ErrorOptions{
		Level:   ErrorLevelError,
		Context: "CONFIGURATION ERROR",
		Problem: message,
		HelpCommands: []string{
			"View config: cat compound.yaml",
			"Get help: compound --help",
		},
		NoColor: noColor,
	})
}

// Warning creates a standardized warning message
func Warning(message string, noColor bool) string {
	return FormatError(ErrorOptions{
		Level:   ErrorLevelWarning,
		Problem: message,
		NoColor: noColor,
	})
}
