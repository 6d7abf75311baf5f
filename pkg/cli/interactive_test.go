//go:build !integration

package cli

import (
	"testing"

	"github.com/githubnext/pkgvet/pkg/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModeOptions(t *testing.T) {
	opts := modeOptions()
	require.Len(t, opts, len(validation.AllModes), "Every mode should be offered")
	for i, m := range validation.AllModes {
		assert.Equal(t, string(m), opts[i].Value, "Options should follow AllModes order")
		assert.Contains(t, opts[i].Key, string(m), "Labels should include the mode name")
	}
}

func TestModeDescriptions_CoverAllModes(t *testing.T) {
	for _, m := range validation.AllModes {
		assert.Contains(t, modeDescriptions, m, "Mode %s has no description", m)
	}
}
