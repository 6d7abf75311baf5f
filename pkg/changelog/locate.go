package changelog

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/githubnext/pkgvet/pkg/constants"
)

var changelogName = regexp.MustCompile(`(?i)^changelog\..*$`)

// Locate returns the name of the changelog file directly inside dir, or ""
// when there is none. Names are matched case-insensitively.
func Locate(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("list %s: %w", dir, err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if changelogName.MatchString(name) || strings.EqualFold(name, "CHANGELOG") {
			return name, nil
		}
	}
	return "", nil
}

// NameProblem describes what is wrong with a located changelog name, or
// returns "" when it is exactly CHANGELOG.md.
func NameProblem(name string) string {
	switch {
	case filepath.Ext(name) != filepath.Ext(constants.ChangelogFilename):
		return InvalidExtensionError(name)
	case name != constants.ChangelogFilename:
		return CapitalizationError(name)
	}
	return ""
}
