package rules

import (
	"context"
	"fmt"

	"github.com/githubnext/pkgvet/pkg/constants"
	"github.com/githubnext/pkgvet/pkg/semverutil"
	"github.com/githubnext/pkgvet/pkg/validation"
)

const (
	KindMinimumPackageManifest validation.Kind = "minimum-package-manifest"
	KindPackageVersion         validation.Kind = "package-version"
)

const (
	minimumManifestDocs = "minimum_package_manifest_validation.html"
	packageVersionDocs  = "package_version_check.html"
)

var (
	MissingNameAndVersionError = "Package manifest is required to have both name and version fields. Open the package.json file and add \"name\" and \"version\" keys to the manifest. " +
		constants.DocLink(minimumManifestDocs, "missing-name-and-version-fields")
	MissingNameError = "Package manifest is required to have a name field. Open the package.json file and add \"name\" key to the manifest. " +
		constants.DocLink(minimumManifestDocs, "missing-name-field")
	MissingVersionError = "Package manifest is required to have a version field. Open the package.json file and add \"version\" key to the manifest. " +
		constants.DocLink(minimumManifestDocs, "missing-version-field")
)

// InvalidPackageVersionError is reported when the manifest version is not
// strict semver.
func InvalidPackageVersionError(path string) string {
	return fmt.Sprintf("In %s, \"version\" needs to be a valid \"Semver\". %s", path, constants.DocLink(packageVersionDocs, "package-version-check"))
}

// MinimumPackageManifest checks that the manifest has a name and a version.
type MinimumPackageManifest struct{}

func (MinimumPackageManifest) Info() validation.Info {
	return validation.Info{
		Kind:        KindMinimumPackageManifest,
		Name:        "Minimum Package Manifest",
		Description: "A package manifest must contain at least the following fields: name, version.",
		Category:    validation.CategoryDataValidation,
		Modes:       []validation.Mode{validation.ModeStructure, validation.ModeAssetStore},
	}
}

func (MinimumPackageManifest) Run(_ context.Context, vc *validation.Context, out *validation.Outcome) error {
	m := vc.Manifest
	switch {
	case m.Name == "" && m.Version == "":
		out.AddError(MissingNameAndVersionError)
	case m.Name == "":
		out.AddError(MissingNameError)
	case m.Version == "":
		out.AddError(MissingVersionError)
	}
	return nil
}

// PackageVersion checks that the manifest version is strict semver.
type PackageVersion struct{}

func (PackageVersion) Info() validation.Info {
	return validation.Info{
		Kind:        KindPackageVersion,
		Name:        "Package Version",
		Description: "A package version must be a valid Semver string.",
		Category:    validation.CategoryDataValidation,
		Modes:       []validation.Mode{validation.ModeStructure, validation.ModeAssetStore, validation.ModeInternalTesting},
	}
}

func (PackageVersion) Run(_ context.Context, vc *validation.Context, out *validation.Outcome) error {
	if !semverutil.IsStrict(vc.Manifest.Version) {
		out.AddError(InvalidPackageVersionError(vc.Path))
	}
	return nil
}
