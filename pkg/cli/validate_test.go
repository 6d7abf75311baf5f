//go:build !integration

package cli

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/githubnext/pkgvet/pkg/config"
	"github.com/githubnext/pkgvet/pkg/metrics"
	"github.com/githubnext/pkgvet/pkg/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const toolManifest = `{
  "name": "com.example.tool",
  "displayName": "Example Tool",
  "version": "1.0.0",
  "unity": "2022.3",
  "description": "An example tool.",
  "changelogUrl": "https://example.com/changelog"
}`

type fixedProber struct {
	status validation.URLStatus
	calls  int
}

func (p *fixedProber) Probe(context.Context, string) validation.URLStatus {
	p.calls++
	return p.status
}

// writeTree creates files below root. Keys use forward slashes.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, body := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	}
}

func goodPackage() map[string]string {
	return map[string]string{
		"package.json":        toolManifest,
		"CHANGELOG.md":        "# Changelog\n\n## [1.0.0] - 2024-01-15\n### Added\n- First release\n",
		"Runtime/Tool.asmdef": `{"name": "Example.Tool"}`,
		"Runtime/Tool.cs":     "public class Tool {}",
	}
}

// newProject lays out <project>/Packages/com.example.tool and returns a
// config pointing at it.
func newProject(t *testing.T, files map[string]string) ValidateConfig {
	t.Helper()
	project := t.TempDir()
	writeTree(t, filepath.Join(project, "Packages", "com.example.tool"), files)

	settings := config.DefaultConfig()
	settings.ProjectDir = project
	settings.ResultsDir = filepath.Join(project, "Results")
	return ValidateConfig{
		Settings: settings,
		Prober:   &fixedProber{status: validation.URLReachable},
		Out:      &bytes.Buffer{},
	}
}

func TestValidatePackage_Passes(t *testing.T) {
	cfg := newProject(t, goodPackage())

	passed, err := ValidatePackage(context.Background(), cfg, "com.example.tool@1.0.0")
	require.NoError(t, err, "A well-formed package should validate")
	assert.True(t, passed, "A well-formed package should pass")

	assert.FileExists(t, filepath.Join(cfg.Settings.ResultsDir, "com.example.tool@1.0.0.txt"))
	assert.FileExists(t, filepath.Join(cfg.Settings.ResultsDir, "com.example.tool@1.0.0.json"))

	out := cfg.Out.(*bytes.Buffer).String()
	assert.Contains(t, out, "Example Tool (com.example.tool@1.0.0)", "Summary title should name the package")
	assert.Contains(t, out, "Assemblies Definition Validation", "Summary should list every rule")
	assert.Contains(t, out, "com.example.tool@1.0.0 Succeeded in structure mode", "Summary should end with the suite state")
}

func TestValidatePackage_Fails(t *testing.T) {
	files := goodPackage()
	files["Editor/Menu.cs"] = "class Menu {}"
	cfg := newProject(t, files)

	passed, err := ValidatePackage(context.Background(), cfg, "com.example.tool@1.0.0")
	require.NoError(t, err, "Rule failures are not setup errors")
	assert.False(t, passed, "A script outside any assembly should fail the suite")

	text, err := os.ReadFile(filepath.Join(cfg.Settings.ResultsDir, "com.example.tool@1.0.0.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(text), `Failed - "Assemblies Definition Validation"`)
	assert.Contains(t, cfg.Out.(*bytes.Buffer).String(), "Menu.cs", "Errors should be printed to the console")
}

func TestValidatePackage_JSONOutput(t *testing.T) {
	cfg := newProject(t, goodPackage())
	cfg.JSONOutput = true

	passed, err := ValidatePackage(context.Background(), cfg, "com.example.tool@1.0.0")
	require.NoError(t, err)
	assert.True(t, passed)

	var data map[string]any
	require.NoError(t, json.Unmarshal(cfg.Out.(*bytes.Buffer).Bytes(), &data), "--json should print a single JSON document")
	assert.Equal(t, "com.example.tool@1.0.0", data["package_id"])
}

func TestValidatePackage_SetupErrors(t *testing.T) {
	tests := []struct {
		name        string
		packageID   string
		files       map[string]string
		wantErr     error
		wantReport  bool
		errContains string
	}{
		{
			name:      "missing at sign",
			packageID: "com.example.tool",
			files:     goodPackage(),
			wantErr:   validation.ErrMalformedPackageID,
		},
		{
			name:      "two at signs",
			packageID: "com.example.tool@1@2",
			files:     goodPackage(),
			wantErr:   validation.ErrMalformedPackageID,
		},
		{
			name:       "package not in project",
			packageID:  "com.example.other@1.0.0",
			files:      goodPackage(),
			wantErr:    validation.ErrPackageNotFound,
			wantReport: true,
		},
		{
			name:        "version mismatch",
			packageID:   "com.example.tool@2.0.0",
			files:       map[string]string{"package.json": toolManifest},
			wantErr:     validation.ErrPackageNotFound,
			wantReport:  true,
			errContains: "is at version 1.0.0",
		},
		{
			name:        "manifest is not JSON",
			packageID:   "com.example.tool@1.0.0",
			files:       map[string]string{"package.json": "{"},
			wantReport:  true,
			errContains: "invalid JSON",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := newProject(t, tt.files)

			passed, err := ValidatePackage(context.Background(), cfg, tt.packageID)
			require.Error(t, err, "Setup problems must be returned as errors")
			assert.False(t, passed)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			}
			if tt.errContains != "" {
				assert.Contains(t, err.Error(), tt.errContains)
			}

			reportPath := filepath.Join(cfg.Settings.ResultsDir, tt.packageID+".txt")
			if !tt.wantReport {
				assert.NoFileExists(t, reportPath, "No report can be named after a malformed id")
				return
			}
			text, readErr := os.ReadFile(reportPath)
			require.NoError(t, readErr, "An error report should be written")
			assert.Contains(t, string(text), "ERROR: ")
		})
	}
}

func TestValidatePackage_ReportNamedAfterRequestedID(t *testing.T) {
	files := goodPackage()
	files["package.json"] = `{"version": "1.0.0", "unity": "2022.3", "description": "No name."}`
	cfg := newProject(t, files)

	passed, err := ValidatePackage(context.Background(), cfg, "com.example.tool@1.0.0")
	require.NoError(t, err, "A missing name is reported by the manifest rule")
	assert.False(t, passed)

	assert.FileExists(t, filepath.Join(cfg.Settings.ResultsDir, "com.example.tool@1.0.0.txt"))
	assert.FileExists(t, filepath.Join(cfg.Settings.ResultsDir, "com.example.tool@1.0.0.json"))
	assert.NoFileExists(t, filepath.Join(cfg.Settings.ResultsDir, "@1.0.0.txt"), "Reports must not be named after the manifest fields")

	out := cfg.Out.(*bytes.Buffer).String()
	assert.Contains(t, out, "Report: "+filepath.Join(cfg.Settings.ResultsDir, "com.example.tool@1.0.0.txt"))
}

func TestValidatePackage_RejectsEscapingID(t *testing.T) {
	cfg := newProject(t, map[string]string{})
	dir := t.TempDir()
	writeTree(t, dir, goodPackage())
	cfg.Path = dir
	cfg.Settings.ResultsDir = filepath.Join(t.TempDir(), "a", "b", "Results")

	passed, err := ValidatePackage(context.Background(), cfg, "../../escaped@1.0.0")
	require.ErrorIs(t, err, validation.ErrMalformedPackageID)
	assert.False(t, passed)
	assert.NoFileExists(t, filepath.Join(cfg.Settings.ResultsDir, "..", "..", "escaped@1.0.0.txt"))
	assert.NoDirExists(t, cfg.Settings.ResultsDir, "Nothing should be written for a rejected id")
}

func TestValidatePackage_Path(t *testing.T) {
	cfg := newProject(t, map[string]string{})
	dir := t.TempDir()
	writeTree(t, dir, goodPackage())
	cfg.Path = dir

	passed, err := ValidatePackage(context.Background(), cfg, "com.example.tool@1.0.0")
	require.NoError(t, err, "--path should bypass the Packages lookup")
	assert.True(t, passed)
}

func TestValidatePackage_Tarball(t *testing.T) {
	cfg := newProject(t, map[string]string{})

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	for name, body := range goodPackage() {
		require.NoError(t, tw.WriteHeader(&tar.Header{Name: "package/" + name, Mode: 0o644, Size: int64(len(body)), Typeflag: tar.TypeReg}))
		_, err := tw.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
	archive := filepath.Join(t.TempDir(), "tool.tgz")
	require.NoError(t, os.WriteFile(archive, buf.Bytes(), 0o644))
	cfg.Tarball = archive

	passed, err := ValidatePackage(context.Background(), cfg, "com.example.tool@1.0.0")
	require.NoError(t, err, "A packed package should validate")
	assert.True(t, passed)
}

func TestValidatePackage_Skip(t *testing.T) {
	files := goodPackage()
	files["Editor/Menu.cs"] = "class Menu {}"
	cfg := newProject(t, files)
	cfg.Settings.Skip = []string{"assemblies-definition"}

	passed, err := ValidatePackage(context.Background(), cfg, "com.example.tool@1.0.0")
	require.NoError(t, err)
	assert.True(t, passed, "A skipped rule cannot fail the suite")
}

func TestValidatePackage_UsesProber(t *testing.T) {
	cfg := newProject(t, goodPackage())
	cfg.Settings.Mode = string(validation.ModeAssetStore)
	prober := &fixedProber{status: validation.URLReachable}
	cfg.Prober = prober

	passed, err := ValidatePackage(context.Background(), cfg, "com.example.tool@1.0.0")
	require.NoError(t, err)
	assert.True(t, passed)
	assert.Equal(t, 1, prober.calls, "The changelog URL should be probed once")
}

func TestValidatePackages(t *testing.T) {
	cfg := newProject(t, goodPackage())
	broken := goodPackage()
	broken["package.json"] = strings.ReplaceAll(toolManifest, "com.example.tool", "com.example.broken")
	broken["Editor/Menu.cs"] = "class Menu {}"
	writeTree(t, filepath.Join(cfg.Settings.ProjectDir, "Packages", "com.example.broken"), broken)

	cfg.Settings.Jobs = 2
	cfg.Settings.MetricsFile = filepath.Join(t.TempDir(), "pkgvet.prom")
	cfg.Metrics = metrics.NewRecorder()

	passed, err := ValidatePackages(context.Background(), cfg, []string{"com.example.tool@1.0.0", "com.example.broken@1.0.0"})
	require.NoError(t, err)
	assert.False(t, passed, "One failing package fails the whole invocation")

	out := cfg.Out.(*bytes.Buffer).String()
	first := strings.Index(out, "com.example.tool@1.0.0 Succeeded")
	second := strings.Index(out, "com.example.broken@1.0.0 Failed")
	require.GreaterOrEqual(t, first, 0, "First package summary missing")
	require.GreaterOrEqual(t, second, 0, "Second package summary missing")
	assert.Less(t, first, second, "Summaries should follow argument order")

	prom, err := os.ReadFile(cfg.Settings.MetricsFile)
	require.NoError(t, err, "Metrics textfile should be written")
	assert.Contains(t, string(prom), "pkgvet_suite_runs_total")
}

func TestValidatePackages_CollectsErrors(t *testing.T) {
	cfg := newProject(t, goodPackage())

	passed, err := ValidatePackages(context.Background(), cfg, []string{"bad", "com.example.none@1.0.0"})
	require.Error(t, err)
	assert.False(t, passed)
	require.ErrorIs(t, err, validation.ErrMalformedPackageID)
	require.ErrorIs(t, err, validation.ErrPackageNotFound)
	assert.Contains(t, err.Error(), "Found 2 package errors:")
}

func TestValidatePackages_PathNeedsSinglePackage(t *testing.T) {
	cfg := newProject(t, goodPackage())
	cfg.Path = t.TempDir()

	_, err := ValidatePackages(context.Background(), cfg, []string{"a@1", "b@1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "single package")
}
