package rules

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/githubnext/pkgvet/pkg/changelog"
	"github.com/githubnext/pkgvet/pkg/constants"
	"github.com/githubnext/pkgvet/pkg/logger"
	"github.com/githubnext/pkgvet/pkg/validation"
)

var changelogLog = logger.New("rules:changelog")

const KindChangelog validation.Kind = "changelog"

// Changelog checks the offline CHANGELOG.md and the changelogUrl field.
type Changelog struct{}

func (Changelog) Info() validation.Info {
	return validation.Info{
		Kind:        KindChangelog,
		Name:        "Changelog",
		Description: "Validates that the package contains a valid CHANGELOG.md or links to a changelog online.",
		Category:    validation.CategoryDataValidation,
		Modes:       []validation.Mode{validation.ModeAssetStore, validation.ModeInternalTesting},
		DependsOn:   []validation.Kind{KindMinimumPackageManifest},
	}
}

func (Changelog) Run(ctx context.Context, vc *validation.Context, out *validation.Outcome) error {
	name, err := changelog.Locate(vc.Path)
	if err != nil {
		return err
	}
	hasOffline := name != ""
	if hasOffline {
		if problem := changelog.NameProblem(name); problem != "" {
			out.AddError(problem)
		}
		changelog.ScanFile(filepath.Join(vc.Path, name), vc.Manifest.Version, out)
	}

	url := strings.TrimSpace(vc.Manifest.ChangelogURL)

	// No network calls in internal testing.
	if vc.Mode == validation.ModeInternalTesting {
		if url != "" {
			out.AddWarning(changelog.URLNotTestedWarning(url))
		}
		return nil
	}

	status := validation.URLNone
	switch {
	case url == "":
	case vc.Prober == nil:
		out.AddWarning(changelog.URLNotTestedWarning(url))
		status = validation.URLUnknown
	default:
		status = vc.Prober.Probe(ctx, url)
	}
	changelogLog.Printf("changelogUrl %q status=%s offline=%v", url, status, hasOffline)

	switch {
	case status == validation.URLUnreachable:
		out.AddWarning(changelog.UnreachableURLWarning(url))
	case status == validation.URLNone && !hasOffline:
		out.AddError(changelog.NoChangelogError(filepath.Join(vc.Path, constants.ChangelogFilename)))
	}
	return nil
}
