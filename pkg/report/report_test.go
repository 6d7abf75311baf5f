//go:build !integration

package report

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/exp/golden"
	"github.com/githubnext/pkgvet/pkg/manifest"
	"github.com/githubnext/pkgvet/pkg/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testStart = time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

func testManifest() *manifest.Manifest {
	return &manifest.Manifest{
		Name:         "com.example.tool",
		Version:      "1.0.0",
		Path:         "Packages/com.example.tool",
		Dependencies: map[string]string{"com.unity.ugui": "1.0.0"},
	}
}

func outcome(kind validation.Kind, name string, state validation.State, outputs ...validation.Output) *validation.Outcome {
	if outputs == nil {
		outputs = []validation.Output{}
	}
	return &validation.Outcome{
		Kind:      kind,
		Name:      name,
		State:     state,
		Outputs:   outputs,
		StartTime: testStart,
		EndTime:   testStart,
	}
}

func testResult() *validation.Result {
	return &validation.Result{
		ID:          "00000000-0000-0000-0000-000000000001",
		PackageID:   "com.example.tool@1.0.0",
		Mode:        validation.ModeAssetStore,
		PackageKind: validation.PackageKindTooling,
		State:       validation.StateFailed,
		StartTime:   testStart,
		EndTime:     testStart.Add(250 * time.Millisecond),
		Outcomes: []*validation.Outcome{
			outcome("minimum-package-manifest", "Minimum Package Manifest", validation.StateSucceeded),
			outcome("changelog", "Changelog", validation.StateFailed,
				validation.Output{Kind: validation.OutputError, Message: "The changelog is broken."},
				validation.Output{Kind: validation.OutputWarning, Message: "Dates look odd."},
			),
			outcome("assemblies-definition", "Assemblies Definition Validation", validation.StateNotRun),
			outcome("package-version", "Package Version", validation.StateSucceeded,
				validation.Output{Kind: validation.OutputInformation, Message: "Version checked."},
			),
		},
	}
}

func TestGolden_TextReport(t *testing.T) {
	t.Run("failed_run", func(t *testing.T) {
		golden.RequireEqual(t, []byte(RenderText(testManifest(), testResult())))
	})

	t.Run("no_dependencies", func(t *testing.T) {
		m := testManifest()
		m.Dependencies = nil
		res := testResult()
		res.State = validation.StateSucceeded
		res.Outcomes = res.Outcomes[:1]
		golden.RequireEqual(t, []byte(RenderText(m, res)))
	})
}

func TestRenderText_GroupsByState(t *testing.T) {
	text := RenderText(testManifest(), testResult())

	failed := indexOf(t, text, `Failed - "Changelog"`)
	succeeded := indexOf(t, text, `Succeeded - "Minimum Package Manifest"`)
	notRun := indexOf(t, text, `NotRun - "Assemblies Definition Validation"`)

	assert.Less(t, failed, succeeded, "Failed results come first")
	assert.Less(t, succeeded, notRun, "NotRun results come after succeeded ones")
}

func indexOf(t *testing.T, s, sub string) int {
	t.Helper()
	i := strings.Index(s, sub)
	require.GreaterOrEqual(t, i, 0, "%q should appear in the report", sub)
	return i
}

func TestBuildData(t *testing.T) {
	data := BuildData(testResult())

	assert.Equal(t, validation.ModeAssetStore, data.Type)
	assert.Equal(t, validation.StateFailed, data.Result)
	assert.Equal(t, int64(250), data.Elapsed)
	require.Len(t, data.Tests, 4)
	assert.Equal(t, int64(1), data.Tests[0].Elapsed, "Instant rules report one millisecond")
	assert.Equal(t, "2024-01-15T10:00:00Z", data.Tests[0].StartTime)
	assert.Empty(t, data.Prerequisites)
}

func TestRenderJSON(t *testing.T) {
	res := testResult()
	res.Outcomes = nil

	raw, err := RenderJSON(res)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, []any{}, decoded["tests"], "Empty runs encode an empty tests array")
	assert.NotContains(t, decoded, "prerequisites")
	assert.Equal(t, "asset-store", decoded["type"])
}

func TestWriter(t *testing.T) {
	w := NewWriter(t.TempDir())
	res := testResult()

	require.NoError(t, w.Write(testManifest(), res))

	text, err := os.ReadFile(w.TextPath(res.PackageID))
	require.NoError(t, err)
	assert.Contains(t, string(text), "VALIDATION RESULTS:")

	raw, err := os.ReadFile(w.JSONPath(res.PackageID))
	require.NoError(t, err)
	var data Data
	require.NoError(t, json.Unmarshal(raw, &data))
	assert.Equal(t, res.ID, data.ID)

	require.NoError(t, w.Clear(res.PackageID))
	assert.NoFileExists(t, w.TextPath(res.PackageID))
	assert.NoFileExists(t, w.JSONPath(res.PackageID))
	require.NoError(t, w.Clear(res.PackageID), "Clearing twice is fine")
}

func TestWriter_WriteError(t *testing.T) {
	w := NewWriter(t.TempDir())

	require.NoError(t, w.WriteError("com.example.tool@1.0.0", nil, validation.ModeStructure, errors.New("package not found")))

	text, err := os.ReadFile(w.TextPath("com.example.tool@1.0.0"))
	require.NoError(t, err)
	assert.Equal(t, "ERROR: package not found\n", string(text))
}

func TestWriter_RejectsEscapingIDs(t *testing.T) {
	base := t.TempDir()
	w := NewWriter(filepath.Join(base, "results"))

	for _, id := range []string{"../escaped@1.0.0", "a/b@1.0.0", `..\escaped@1.0.0`, ""} {
		res := testResult()
		res.PackageID = id
		assert.Error(t, w.Write(testManifest(), res), "Write(%q)", id)
		assert.Error(t, w.WriteError(id, nil, validation.ModeStructure, errors.New("boom")), "WriteError(%q)", id)
		assert.Error(t, w.Clear(id), "Clear(%q)", id)
	}

	entries, err := os.ReadDir(base)
	require.NoError(t, err)
	assert.Empty(t, entries, "Nothing should be written for a rejected id")
}
