package printer

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

func init() {
	// Force color output even when not connected to TTY
	// Users can disable with NO_COLOR environment variable
	if os.Getenv("NO_COLOR") == "" {
		color.NoColor = false
	}
}

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed, color.Bold)
	cyan   = color.New(color.FgCyan)
)

// Output is where Success, Info, Warning and Step write. Errors always go to Errors.
var (
	Output io.Writer = os.Stdout
	Errors io.Writer = os.Stderr
)

// Success prints a success message in green with a checkmark prefix
func Success(format string, a ...any) {
	msg := fmt.Sprintf(format, a...)
	if !strings.HasPrefix(msg, "✓") {
		msg = "✓ " + msg
	}
	green.Fprint(Output, msg)
}

// Info prints an informational message in the default color
func Info(format string, a ...any) {
	fmt.Fprintf(Output, format, a...)
}

// Warning prints a warning message in yellow with a warning prefix
func Warning(format string, a ...any) {
	msg := fmt.Sprintf(format, a...)
	if !strings.HasPrefix(msg, "⚠️") {
		msg = "⚠️  " + msg
	}
	yellow.Fprint(Output, msg)
}

// Step prints a step message with emphasis (used for streamed events)
func Step(format string, a ...any) {
	cyan.Fprintf(Output, "→ %s", fmt.Sprintf(format, a...))
}

// Availability renders an availability flag for humans.
func Availability(available bool) string {
	if available {
		return green.Sprint("available")
	}
	return yellow.Sprint("unavailable")
}

// Error prints a title, explanation and suggestions to Errors and returns an
// error carrying only the title, for cobra to exit non-zero with.
func Error(title string, explanation string, suggestions []string) error {
	return ErrorWithContext(title, explanation, nil, suggestions)
}

// ErrorWithContext is Error with extra key/value details printed between the
// explanation and the suggestions.
func ErrorWithContext(title string, explanation string, context map[string]string, suggestions []string) error {
	red.Fprintf(Errors, "%s\n\n", title)

	if explanation != "" {
		fmt.Fprintf(Errors, "%s\n", explanation)
	}

	if len(context) > 0 {
		fmt.Fprintf(Errors, "\n")
		for key, value := range context {
			fmt.Fprintf(Errors, "  %s: %s\n", key, value)
		}
	}

	if len(suggestions) > 0 {
		fmt.Fprintf(Errors, "\n")
		if len(suggestions) == 1 {
			fmt.Fprintf(Errors, "%s\n", suggestions[0])
		} else {
			fmt.Fprintf(Errors, "Either:\n")
			for i, suggestion := range suggestions {
				fmt.Fprintf(Errors, "  %d. %s\n", i+1, suggestion)
			}
		}
	}

	return fmt.Errorf("%s", title)
}
