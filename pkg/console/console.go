// Package console formats user-facing CLI output. Validation code produces
// plain strings; only this package applies styling.
package console

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/githubnext/pkgvet/pkg/styles"
	"github.com/githubnext/pkgvet/pkg/tty"
)

var isStdoutTTY = tty.IsStdoutTerminal()

func applyStyle(style lipgloss.Style, text string) string {
	if !isStdoutTTY {
		return text
	}
	return style.Render(text)
}

// FormatSuccessMessage formats a success line.
func FormatSuccessMessage(message string) string {
	return applyStyle(styles.Success, "✓ ") + message
}

// FormatInfoMessage formats an informational line.
func FormatInfoMessage(message string) string {
	return applyStyle(styles.Info, "ℹ ") + message
}

// FormatWarningMessage formats a warning line.
func FormatWarningMessage(message string) string {
	return applyStyle(styles.Warning, "⚠ ") + message
}

// FormatErrorMessage formats an error. Multi-line messages keep their
// structure; only the first line gets the marker.
func FormatErrorMessage(message string) string {
	return applyStyle(styles.Error, "✗ ") + message
}

// FormatVerboseMessage formats a dimmed diagnostic line.
func FormatVerboseMessage(message string) string {
	return applyStyle(styles.Verbose, message)
}

// FormatListItem formats an indented bullet.
func FormatListItem(item string) string {
	return "  • " + item
}

// LogVerbose prints message to stderr when verbose is set.
func LogVerbose(verbose bool, message string) {
	if verbose {
		fmt.Fprintln(os.Stderr, FormatVerboseMessage(message))
	}
}

// Indent prefixes every line of text with prefix.
func Indent(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}

// IsAccessibleMode reports whether prompts should use huh's accessible mode:
// ACCESSIBLE is set, or the terminal cannot render styled forms.
func IsAccessibleMode() bool {
	return os.Getenv("ACCESSIBLE") != "" || os.Getenv("TERM") == "dumb" || os.Getenv("NO_COLOR") != ""
}
