// Package constants holds names, paths and links shared across pkgvet.
package constants

import "path/filepath"

// CLIName is the executable name used in help text and examples.
const CLIName = "pkgvet"

// Version is set at build time with -ldflags "-X ...constants.Version=...".
var Version = "dev"

const (
	// PackageManifestFilename is the manifest every package root carries.
	PackageManifestFilename = "package.json"

	// ChangelogFilename is the canonical changelog name.
	ChangelogFilename = "CHANGELOG.md"

	// PackagesDir is the project folder that holds embedded packages.
	PackagesDir = "Packages"

	// ProjectConfigFilename is searched from the working directory upwards.
	ProjectConfigFilename = "pkgvet.yaml"

	// DocsBaseURL is where every error message links to.
	DocsBaseURL = "https://docs.unity3d.com/Packages/com.unity.asset-store-validation@latest/index.html?preview=1&subfolder=/manual"
)

// DefaultResultsDir is where text and JSON reports are written.
var DefaultResultsDir = filepath.Join("Library", "ValidationSuiteResults")

// DocLink returns the trailing sentence appended to rule messages that
// points at the documentation section for an error.
func DocLink(file, section string) string {
	return "Read more about this error and potential solutions at " + DocsBaseURL + "/" + file + "#" + section
}
