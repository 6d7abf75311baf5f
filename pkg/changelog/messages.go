package changelog

import (
	"fmt"
	"strings"

	"github.com/githubnext/pkgvet/pkg/constants"
)

const (
	docsFile          = "changelog_validation.html"
	changelogURLField = "changelogUrl"
	validEntryExample = "## [x.y.z] - YYYY-MM-DD"
	dateFormatDisplay = "yyyy-MM-dd"
)

// Headers lists the accepted section headers in their required order.
var Headers = []string{"Added", "Changed", "Deprecated", "Removed", "Fixed", "Security"}

var validHeaders = "[" + strings.Join(Headers, ", ") + "]"

func link(section string) string {
	return constants.DocLink(docsFile, section)
}

var (
	ExcessWhitespaceWarning = "There is an excess amount of whitespace after the '###' header in the changelog of this package. " + link("empty-header-or-whitespace")
	NoValidEntriesError     = "No valid changelog entries were found. The changelog needs to follow the https://keepachangelog.org specifications (`" + validEntryExample + "`)"
	UnreleasedEntryError    = "Unreleased sections are not permitted in Asset Store package changelogs. Please remove this section or update it with a new version. " + link("changelog-contains-unreleased-entry")
)

func NoChangelogError(path string) string {
	return fmt.Sprintf("Cannot find changelogUrl property in package.json or a %s at '%s'. Please create a '%s' file and '%s.meta' or provide a link to an online changelog '%s' in package.json. %s",
		constants.ChangelogFilename, path, constants.ChangelogFilename, constants.ChangelogFilename, changelogURLField, link("no-changelog-found"))
}

func CapitalizationError(actual string) string {
	return fmt.Sprintf("The changelog file needs to be properly capitalized. Please rename %s to %s. %s",
		actual, constants.ChangelogFilename, link("changelog-invalid-capitalization"))
}

func InvalidExtensionError(actual string) string {
	return fmt.Sprintf("The changelog file %s must be named %s with the proper file extension. To resolve this error, ensure the changelog file is named %s, then run the validation again. %s",
		actual, constants.ChangelogFilename, constants.ChangelogFilename, link("invalid-or-missing-file-extension"))
}

func EmptyHeaderOrEntryError(line int) string {
	return fmt.Sprintf("Empty header or entry found in changelog on line %d. Please remove all empty sections or fill them out properly. %s",
		line, link("empty-header-or-whitespace"))
}

func UnexpectedHeaderWarning(entry, header string) string {
	return fmt.Sprintf("Changelog entry '%s' contains an unexpected header '%s'. It is recommended to use the headers listed on https://www.keepachangelog.com %s. %s",
		entry, header, validHeaders, link("unexpected-header-entry"))
}

func IncorrectHeaderOrderError(entry string) string {
	return fmt.Sprintf("The headers for changelog entry %s are not in the correct order. Please arrange the applicable headers in the following order: %s. %s",
		entry, validHeaders, link("changelog-header-order-is-incorrect"))
}

func RepeatedHeaderError(entry string) string {
	return fmt.Sprintf("Changelog entry '%s' contains a duplicated header. Please delete the duplicated header, then run the validation again. %s",
		entry, link("repeated-headers-in-changelog-entry"))
}

func InvalidVersionError(version, path string) string {
	return fmt.Sprintf("Version format '%s' is not valid in '%s'. Please correct the version format to follow the https://keepachangelog.org specifications (`%s`).",
		version, path, validEntryExample)
}

func MissingDateError(version, path string) string {
	return fmt.Sprintf("The date field is missing for entry version %s in %s. Please add a date in ISO 8601 format 'YYYY-MM-DD', then run the validation again. %s",
		version, path, link("changelog-entry-is-missing-date"))
}

func DeprecatedDateWarning(version, date string) string {
	return fmt.Sprintf("Changelog entry '%s' contains a deprecated date '%s'. Expecting format '%s'. Update the date to one of the supported values. %s",
		version, date, dateFormatDisplay, link("changelog-entry-date-format-is-deprecated"))
}

func InvalidDateError(version, date string) string {
	return fmt.Sprintf("Changelog entry '%s' contains an invalid date '%s'. Expecting format '%s'. Update the date to one of the supported values. %s",
		version, date, dateFormatDisplay, link("changelog-entry-date-format-is-invalid"))
}

func VersionNotFoundError(version, path string) string {
	return fmt.Sprintf("No changelog entry for version `%s` was found in '%s'. Please add or fix a section so you have a `## [%s] - '%s'` section. %s",
		version, path, version, dateFormatDisplay, link("package-version-is-not-in-changelog"))
}

func NotFirstEntryError(path string, index int) string {
	return fmt.Sprintf("Found changelog entry but it was not the first entry in '%s' (it was entry #%d). Please rearrange your changelog with the most recent section at the top. %s",
		path, index, link("package-version-is-not-first-entry-in-changelog"))
}

func UnreachableURLWarning(url string) string {
	return fmt.Sprintf("The URL \"%s\", provided in the \"%s\" field in the package.json, is not reachable. To avoid broken links, please validate that the URL is correct. %s",
		url, changelogURLField, link("changelog-url-not-reachable"))
}

func URLNotTestedWarning(url string) string {
	return fmt.Sprintf("The URL \"%s\", provided in the \"%s\" field in the package.json, has not been tested. Please validate manually that the URL is accurate and reachable. %s",
		url, changelogURLField, link("changelog-url-not-tested"))
}

func ReadError(path string, err error) string {
	return fmt.Sprintf("Error while parsing file at %s: %v", path, err)
}

func TooLargeError(path string, maxLine int) string {
	return fmt.Sprintf("The file located at %s could not be parsed because a line is longer than %d bytes.", path, maxLine)
}
