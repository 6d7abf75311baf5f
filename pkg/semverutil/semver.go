// Package semverutil validates package versions with golang.org/x/mod/semver.
package semverutil

import (
	"strings"

	"github.com/githubnext/pkgvet/pkg/logger"
	"golang.org/x/mod/semver"
)

var log = logger.New("semverutil:semver")

// IsStrict reports whether v is a full MAJOR.MINOR.PATCH semantic version with
// optional prerelease and build metadata. Package versions never carry the
// "v" prefix, so "v1.2.3" is rejected, as are shorthands like "1.2".
func IsStrict(v string) bool {
	if v == "" || strings.HasPrefix(v, "v") || strings.HasPrefix(v, "V") {
		return false
	}
	if !semver.IsValid("v" + v) {
		log.Printf("Invalid semantic version: %q", v)
		return false
	}
	core := v
	if i := strings.IndexAny(core, "-+"); i >= 0 {
		core = core[:i]
	}
	return strings.Count(core, ".") == 2
}

// Compare compares two strict versions the way semver.Compare does: -1, 0
// or +1. If either version is invalid it is treated as lower than any valid
// version.
func Compare(a, b string) int {
	return semver.Compare("v"+a, "v"+b)
}

// Prerelease returns the prerelease suffix of v without the leading hyphen.
func Prerelease(v string) string {
	return strings.TrimPrefix(semver.Prerelease("v"+v), "-")
}
