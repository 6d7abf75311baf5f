//go:build !integration

package logger

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureOutput redirects logger output for the duration of f.
func captureOutput(t *testing.T, f func()) string {
	t.Helper()
	var buf bytes.Buffer
	old := output
	output = &buf
	defer func() { output = old }()
	f()
	return buf.String()
}

func withDebugEnv(t *testing.T, value string) {
	t.Helper()
	old := debugEnv
	debugEnv = value
	t.Cleanup(func() { debugEnv = old })
}

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		debugEnv  string
		namespace string
		enabled   bool
	}{
		{name: "empty DEBUG disables all loggers", debugEnv: "", namespace: "validation:suite", enabled: false},
		{name: "wildcard enables all loggers", debugEnv: "*", namespace: "validation:suite", enabled: true},
		{name: "exact match", debugEnv: "validation:suite", namespace: "validation:suite", enabled: true},
		{name: "exact match other namespace", debugEnv: "validation:suite", namespace: "rules:changelog", enabled: false},
		{name: "prefix wildcard", debugEnv: "validation:*", namespace: "validation:scheduler", enabled: true},
		{name: "prefix wildcard nested", debugEnv: "rules:*", namespace: "rules:assembly:walk", enabled: true},
		{name: "prefix wildcard other prefix", debugEnv: "rules:*", namespace: "cli:validate", enabled: false},
		{name: "suffix wildcard", debugEnv: "*:changelog", namespace: "rules:changelog", enabled: true},
		{name: "middle wildcard", debugEnv: "cli:*:command", namespace: "cli:validate:command", enabled: true},
		{name: "middle wildcard too short", debugEnv: "cli:*:command", namespace: "cli:command", enabled: false},
		{name: "list of patterns", debugEnv: "cli:*, rules:*", namespace: "rules:changelog", enabled: true},
		{name: "exclusion wins", debugEnv: "*,-console:*", namespace: "console:render", enabled: false},
		{name: "exclusion leaves others", debugEnv: "*,-console:*", namespace: "cli:validate", enabled: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withDebugEnv(t, tt.debugEnv)
			assert.Equal(t, tt.enabled, New(tt.namespace).Enabled(), "DEBUG=%q namespace=%q", tt.debugEnv, tt.namespace)
		})
	}
}

func TestLogger_Printf(t *testing.T) {
	withDebugEnv(t, "*")
	log := New("validation:test")

	out := captureOutput(t, func() {
		log.Printf("ran %d rules", 3)
	})

	assert.Contains(t, out, "validation:test", "Output should carry the namespace")
	assert.Contains(t, out, "ran 3 rules", "Output should carry the message")
	assert.Contains(t, out, "+", "Output should carry the elapsed time")
}

func TestLogger_DisabledPrintsNothing(t *testing.T) {
	withDebugEnv(t, "")
	log := New("validation:test")

	out := captureOutput(t, func() {
		log.Printf("hidden")
		log.Print("hidden")
	})

	assert.Empty(t, out, "Disabled logger should not print")
}

func TestSelectColor_Stable(t *testing.T) {
	assert.Equal(t, selectColor("rules:changelog"), selectColor("rules:changelog"), "Color should be stable per namespace")
}

func TestFirstNonEmpty(t *testing.T) {
	assert.Equal(t, "b", firstNonEmpty("", "b", "c"))
	assert.Empty(t, firstNonEmpty("", ""))
}

func TestSlogHandler(t *testing.T) {
	withDebugEnv(t, "*")
	log := slog.New(NewSlogHandler(New("cli:slog"))).With("package", "com.example.tool")

	out := captureOutput(t, func() {
		log.Warn("probe failed", "url", "https://example.com")
	})

	assert.Contains(t, out, "[WARN] probe failed", "Level prefix and message should be printed")
	assert.Contains(t, out, "package=com.example.tool", "WithAttrs attributes should be printed")
	assert.Contains(t, out, "url=https://example.com", "Record attributes should be printed")
}

func TestSlogHandler_Disabled(t *testing.T) {
	withDebugEnv(t, "")
	h := NewSlogHandler(New("cli:slog"))
	require.False(t, h.Enabled(context.Background(), slog.LevelError), "Handler should follow logger state")
}
