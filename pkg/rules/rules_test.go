//go:build !integration

package rules

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/githubnext/pkgvet/pkg/changelog"
	"github.com/githubnext/pkgvet/pkg/constants"
	"github.com/githubnext/pkgvet/pkg/manifest"
	"github.com/githubnext/pkgvet/pkg/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProber struct {
	status validation.URLStatus
	calls  int
}

func (s *stubProber) Probe(context.Context, string) validation.URLStatus {
	s.calls++
	return s.status
}

func packageDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	}
	return dir
}

func contextFor(dir string, m manifest.Manifest, mode validation.Mode) *validation.Context {
	m.Path = dir
	return validation.NewContext(&m, mode)
}

func runRule(t *testing.T, rule validation.Rule, vc *validation.Context) *validation.Outcome {
	t.Helper()
	out := validation.NewRun().Outcome(rule)
	validation.NewExecutor().Execute(context.Background(), rule, vc, out)
	return out
}

func TestRegistry_AllRulesRegister(t *testing.T) {
	reg, err := NewRegistry()
	require.NoError(t, err, "Compiled-in rules must form a valid registry")

	assert.Equal(t, []validation.Kind{
		KindMinimumPackageManifest,
		KindPackageVersion,
		KindAssembliesDefinition,
		KindChangelog,
	}, reg.Kinds())

	kinds := func(rules []validation.Rule) []validation.Kind {
		var ks []validation.Kind
		for _, r := range rules {
			ks = append(ks, r.Info().Kind)
		}
		return ks
	}
	assert.Equal(t, []validation.Kind{KindMinimumPackageManifest, KindPackageVersion, KindAssembliesDefinition},
		kinds(reg.SelectActive(validation.ModeStructure, validation.PackageKindTooling)))
	assert.Equal(t, []validation.Kind{KindPackageVersion, KindChangelog},
		kinds(reg.SelectActive(validation.ModeInternalTesting, validation.PackageKindTooling)))
	assert.Empty(t, reg.SelectActive(validation.ModeCI, validation.PackageKindTooling))
}

func TestMinimumPackageManifest(t *testing.T) {
	tests := []struct {
		name     string
		manifest manifest.Manifest
		want     []string
	}{
		{name: "complete", manifest: manifest.Manifest{Name: "a", Version: "1.0.0"}},
		{name: "missing both", manifest: manifest.Manifest{}, want: []string{MissingNameAndVersionError}},
		{name: "missing name", manifest: manifest.Manifest{Version: "1.0.0"}, want: []string{MissingNameError}},
		{name: "missing version", manifest: manifest.Manifest{Name: "a"}, want: []string{MissingVersionError}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := runRule(t, MinimumPackageManifest{}, contextFor(t.TempDir(), tt.manifest, validation.ModeStructure))
			assert.Equal(t, tt.want, out.Errors())
		})
	}
}

func TestPackageVersion(t *testing.T) {
	dir := t.TempDir()
	ok := runRule(t, PackageVersion{}, contextFor(dir, manifest.Manifest{Name: "a", Version: "1.2.3-preview.1"}, validation.ModeStructure))
	assert.Equal(t, validation.StateSucceeded, ok.State)

	bad := runRule(t, PackageVersion{}, contextFor(dir, manifest.Manifest{Name: "a", Version: "1.2"}, validation.ModeStructure))
	assert.Equal(t, []string{InvalidPackageVersionError(dir)}, bad.Errors())
}

func TestAssembliesDefinition(t *testing.T) {
	dir := packageDir(t, map[string]string{
		"Runtime/Runtime.asmdef": "{}",
		"Runtime/Core.cs":        "class Core {}",
		"Editor/Tool.cs":         "class Tool {}",
	})

	out := runRule(t, AssembliesDefinition{}, contextFor(dir, manifest.Manifest{Name: "a", Version: "1.0.0"}, validation.ModeStructure))

	assert.Equal(t, validation.StateFailed, out.State)
	require.Len(t, out.Errors(), 1)
	assert.Contains(t, out.Errors()[0], "Tool.cs")

	vc := contextFor(dir, manifest.Manifest{Name: "a", Version: "1.0.0"}, validation.ModeStructure)
	vc.Ignore = []string{"Editor/**"}
	assert.Equal(t, validation.StateSucceeded, runRule(t, AssembliesDefinition{}, vc).State)
}

const goodChangelog = "# Changelog\n\n## [1.0.0] - 2024-01-15\n### Added\n- First release\n"

func TestChangelog(t *testing.T) {
	m := manifest.Manifest{Name: "a", Version: "1.0.0"}

	t.Run("valid offline changelog", func(t *testing.T) {
		dir := packageDir(t, map[string]string{constants.ChangelogFilename: goodChangelog})
		vc := contextFor(dir, m, validation.ModeAssetStore)
		vc.Prober = &stubProber{status: validation.URLNone}

		out := runRule(t, Changelog{}, vc)
		assert.Equal(t, validation.StateSucceeded, out.State)
		assert.Empty(t, out.Outputs)
	})

	t.Run("capitalization", func(t *testing.T) {
		dir := packageDir(t, map[string]string{"changelog.md": goodChangelog})
		vc := contextFor(dir, m, validation.ModeAssetStore)
		vc.Prober = &stubProber{}

		out := runRule(t, Changelog{}, vc)
		assert.Equal(t, []string{changelog.CapitalizationError("changelog.md")}, out.Errors())
	})

	t.Run("no changelog anywhere", func(t *testing.T) {
		dir := packageDir(t, nil)
		vc := contextFor(dir, m, validation.ModeAssetStore)
		vc.Prober = &stubProber{}

		out := runRule(t, Changelog{}, vc)
		assert.Equal(t, []string{changelog.NoChangelogError(filepath.Join(dir, constants.ChangelogFilename))}, out.Errors())
	})

	t.Run("reachable url without file", func(t *testing.T) {
		withURL := m
		withURL.ChangelogURL = "https://example.com/changelog"
		prober := &stubProber{status: validation.URLReachable}
		vc := contextFor(packageDir(t, nil), withURL, validation.ModeAssetStore)
		vc.Prober = prober

		out := runRule(t, Changelog{}, vc)
		assert.Equal(t, validation.StateSucceeded, out.State)
		assert.Equal(t, 1, prober.calls)
	})

	t.Run("unreachable url", func(t *testing.T) {
		withURL := m
		withURL.ChangelogURL = "https://example.com/missing"
		vc := contextFor(packageDir(t, nil), withURL, validation.ModeAssetStore)
		vc.Prober = &stubProber{status: validation.URLUnreachable}

		out := runRule(t, Changelog{}, vc)
		assert.Equal(t, validation.StateSucceeded, out.State, "An unreachable URL only warns")
		assert.Equal(t, []string{changelog.UnreachableURLWarning("https://example.com/missing")}, out.Warnings())
	})

	t.Run("internal testing makes no network calls", func(t *testing.T) {
		withURL := m
		withURL.ChangelogURL = "https://example.com/changelog"
		prober := &stubProber{status: validation.URLReachable}
		vc := contextFor(packageDir(t, nil), withURL, validation.ModeInternalTesting)
		vc.Prober = prober

		out := runRule(t, Changelog{}, vc)
		assert.Equal(t, 0, prober.calls)
		assert.Equal(t, []string{changelog.URLNotTestedWarning("https://example.com/changelog")}, out.Warnings())
		assert.Empty(t, out.Errors())
	})
}

func TestChangelog_FailsWhenManifestIsIncomplete(t *testing.T) {
	reg, err := NewRegistry()
	require.NoError(t, err)

	dir := packageDir(t, map[string]string{constants.ChangelogFilename: goodChangelog})
	vc := contextFor(dir, manifest.Manifest{Name: "a"}, validation.ModeInternalTesting)

	res, err := validation.NewSuite(reg).Run(context.Background(), vc)
	require.NoError(t, err)

	var cl *validation.Outcome
	for _, o := range res.Outcomes {
		if o.Kind == KindChangelog {
			cl = o
		}
	}
	require.NotNil(t, cl)
	assert.Equal(t, validation.StateFailed, cl.State)
	require.Len(t, cl.Errors(), 1)
	assert.Contains(t, cl.Errors()[0], "(Minimum Package Manifest)")

	require.Len(t, res.Prerequisites, 1, "Minimum manifest ran as a prerequisite outside its modes")
	assert.True(t, res.Prerequisites[0].Coerced)
}

func TestHTTPProber(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/ok", func(w http.ResponseWriter, r *http.Request) {})
	mux.HandleFunc("/missing", http.NotFound)
	mux.HandleFunc("/get-only", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	p := NewHTTPProber(time.Second)
	ctx := context.Background()

	assert.Equal(t, validation.URLReachable, p.Probe(ctx, srv.URL+"/ok"))
	assert.Equal(t, validation.URLUnreachable, p.Probe(ctx, srv.URL+"/missing"))
	assert.Equal(t, validation.URLReachable, p.Probe(ctx, srv.URL+"/get-only"), "HEAD rejection falls back to GET")
	assert.Equal(t, validation.URLNone, p.Probe(ctx, "  "))
	assert.Equal(t, validation.URLUnreachable, p.Probe(ctx, "http://127.0.0.1:1/unreachable"))
}
