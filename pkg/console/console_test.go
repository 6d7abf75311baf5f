//go:build !integration

package console

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatMessagesPlain(t *testing.T) {
	old := isStdoutTTY
	isStdoutTTY = false
	defer func() { isStdoutTTY = old }()

	assert.Equal(t, "✓ done", FormatSuccessMessage("done"))
	assert.Equal(t, "ℹ note", FormatInfoMessage("note"))
	assert.Equal(t, "⚠ careful", FormatWarningMessage("careful"))
	assert.Equal(t, "✗ broken", FormatErrorMessage("broken"))
	assert.Equal(t, "quiet", FormatVerboseMessage("quiet"))
}

func TestIndent(t *testing.T) {
	assert.Equal(t, "  a\n\n  b", Indent("a\n\nb", "  "), "Empty lines should stay empty")
}

func TestRenderTable(t *testing.T) {
	out := RenderTable(TableConfig{
		Title:   "Rules",
		Headers: []string{"Kind", "State"},
		Rows: [][]string{
			{"changelog", "Failed"},
			{"package-version", "Succeeded"},
		},
		ShowTotal: true,
		TotalRow:  []string{"TOTAL", "2"},
	})

	for _, want := range []string{"Rules", "Kind", "State", "changelog", "Failed", "package-version", "TOTAL"} {
		assert.Contains(t, out, want, "Rendered table should contain %q", want)
	}
	assert.True(t, strings.HasSuffix(out, "\n"), "Table should end with a newline")
}

func TestRenderTable_Empty(t *testing.T) {
	assert.Empty(t, RenderTable(TableConfig{}), "Table without headers renders nothing")
}

func TestIsAccessibleMode(t *testing.T) {
	t.Setenv("ACCESSIBLE", "")
	t.Setenv("NO_COLOR", "")
	t.Setenv("TERM", "xterm-256color")
	assert.False(t, IsAccessibleMode(), "Plain terminal should not be accessible mode")

	t.Setenv("ACCESSIBLE", "1")
	assert.True(t, IsAccessibleMode(), "ACCESSIBLE should enable accessible mode")

	t.Setenv("ACCESSIBLE", "")
	t.Setenv("TERM", "dumb")
	assert.True(t, IsAccessibleMode(), "Dumb terminals should use accessible mode")
}
