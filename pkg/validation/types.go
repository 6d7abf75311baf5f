package validation

import (
	"fmt"
	"strings"
)

// Mode is the validation context a suite runs under.
type Mode string

const (
	ModeLocalDevelopment         Mode = "local-development"
	ModeLocalDevelopmentInternal Mode = "local-development-internal"
	ModeVerifiedSet              Mode = "verified-set"
	ModeCI                       Mode = "ci"
	ModePromotion                Mode = "promotion"
	ModeAssetStore               Mode = "asset-store"
	ModeAssetStorePublishAction  Mode = "asset-store-publish-action"
	ModePublishing               Mode = "publishing"
	ModeInternalTesting          Mode = "internal-testing"
	ModeStructure                Mode = "structure"
	ModeDefault                  Mode = "default"
)

// AllModes lists every mode in declaration order.
var AllModes = []Mode{
	ModeLocalDevelopment,
	ModeLocalDevelopmentInternal,
	ModeVerifiedSet,
	ModeCI,
	ModePromotion,
	ModeAssetStore,
	ModeAssetStorePublishAction,
	ModePublishing,
	ModeInternalTesting,
	ModeStructure,
	ModeDefault,
}

var defaultModes = []Mode{
	ModeAssetStore,
	ModeCI,
	ModeLocalDevelopment,
	ModeLocalDevelopmentInternal,
	ModePromotion,
	ModeVerifiedSet,
}

// ParseMode accepts the kebab-case mode names, case-insensitively.
func ParseMode(s string) (Mode, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for _, m := range AllModes {
		if string(m) == needle {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown validation mode %q (valid modes: %s)", s, joinModes(AllModes))
}

func joinModes(modes []Mode) string {
	parts := make([]string, len(modes))
	for i, m := range modes {
		parts[i] = string(m)
	}
	return strings.Join(parts, ", ")
}

// PackageKind is the kind of package being validated.
type PackageKind string

const (
	PackageKindTooling    PackageKind = "tooling"
	PackageKindTemplate   PackageKind = "template"
	PackageKindFeatureSet PackageKind = "feature-set"
)

// defaultPackageKinds apply to rules that declare none.
var defaultPackageKinds = []PackageKind{PackageKindTooling, PackageKindTemplate}

// PackageKindFromManifestType maps the manifest "type" field to a kind.
// Anything unrecognized is tooling.
func PackageKindFromManifestType(t string) PackageKind {
	switch strings.ToLower(strings.TrimSpace(t)) {
	case "template":
		return PackageKindTemplate
	case "feature":
		return PackageKindFeatureSet
	default:
		return PackageKindTooling
	}
}

// ParsePackageKind accepts the kind names used on the command line.
func ParsePackageKind(s string) (PackageKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "tooling":
		return PackageKindTooling, nil
	case "template":
		return PackageKindTemplate, nil
	case "feature-set", "feature":
		return PackageKindFeatureSet, nil
	}
	return "", fmt.Errorf("unknown package kind %q (valid kinds: tooling, template, feature-set)", s)
}

// Category groups rules for reporting.
type Category string

const (
	CategoryDataValidation Category = "DataValidation"
	CategoryAPIValidation  Category = "ApiValidation"
	CategoryContentScan    Category = "ContentScan"
	CategoryTestValidation Category = "TestValidation"
)

// State is the state of one rule outcome.
type State string

const (
	StateNotRun         State = "NotRun"
	StateRunning        State = "Running"
	StateSucceeded      State = "Succeeded"
	StateFailed         State = "Failed"
	StateWarning        State = "Warning"
	StateNotImplemented State = "NotImplemented"
)

// OutputKind classifies a single output entry.
type OutputKind string

const (
	OutputInformation          OutputKind = "Information"
	OutputWarning              OutputKind = "Warning"
	OutputError                OutputKind = "Error"
	OutputWarningWithException OutputKind = "WarningWithException"
	OutputErrorWithException   OutputKind = "ErrorWithException"
)

// IsError reports whether the entry counts as an error.
func (k OutputKind) IsError() bool {
	return k == OutputError || k == OutputErrorWithException
}

// IsWarning reports whether the entry counts as a warning.
func (k OutputKind) IsWarning() bool {
	return k == OutputWarning || k == OutputWarningWithException
}
