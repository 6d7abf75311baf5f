// Package changelog checks a CHANGELOG.md against the keepachangelog layout.
package changelog

import (
	"bufio"
	"errors"
	"io"
	"os"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/githubnext/pkgvet/pkg/logger"
	"github.com/githubnext/pkgvet/pkg/semverutil"
)

var parserLog = logger.New("changelog:parser")

// MaxLineSize bounds a single changelog line.
const MaxLineSize = 1024 * 1024

var (
	entryPattern  = regexp.MustCompile(`^## \[(?P<version>.*)\]( - (?P<date>.*))?`)
	headerPattern = regexp.MustCompile(`^### (?P<header>.*)`)

	versionGroup = entryPattern.SubexpIndex("version")
	dateGroup    = entryPattern.SubexpIndex("date")
	headerGroup  = headerPattern.SubexpIndex("header")
)

const dateLayout = "2006-01-02"

var deprecatedDateLayouts = []string{"2006-01-2", "2006-1-02", "2006-1-2"}

// Reporter receives the findings of a scan.
type Reporter interface {
	AddError(msg string)
	AddWarning(msg string)
}

// Entry is one "## [version] - date" section.
type Entry struct {
	Line    string
	Version string
	Date    string

	// Index is the 1-based position of the entry in the file.
	Index int

	// Headers holds positions in Headers, in file order.
	Headers []int
}

func (e *Entry) String() string { return e.Line }

// Scanner checks one changelog.
type Scanner struct {
	// Path is the changelog path used in messages.
	Path string

	// PackageVersion is the version that must appear as the first entry.
	PackageVersion string

	report  Reporter
	entries []*Entry
	current *Entry
	found   bool
}

// NewScanner returns a scanner reporting to r.
func NewScanner(path, packageVersion string, r Reporter) *Scanner {
	return &Scanner{Path: path, PackageVersion: packageVersion, report: r}
}

// ScanFile opens path and scans it.
func ScanFile(path, packageVersion string, r Reporter) []*Entry {
	f, err := os.Open(path)
	if err != nil {
		r.AddError(ReadError(path, err))
		return nil
	}
	defer f.Close()
	return NewScanner(path, packageVersion, r).Scan(f)
}

// Scan reads every line of src and returns the entries found.
func (s *Scanner) Scan(src io.Reader) []*Entry {
	sc := bufio.NewScanner(src)
	sc.Buffer(make([]byte, 0, 64*1024), MaxLineSize)

	lineNum := 0
	for sc.Scan() {
		lineNum++
		s.line(lineNum, strings.TrimSpace(sc.Text()))
	}
	if err := sc.Err(); err != nil {
		parserLog.Printf("Scan of %s stopped at line %d: %v", s.Path, lineNum, err)
		if errors.Is(err, bufio.ErrTooLong) {
			s.report.AddError(TooLargeError(s.Path, MaxLineSize))
		} else {
			s.report.AddError(ReadError(s.Path, err))
		}
		return s.entries
	}

	if !s.found {
		s.report.AddError(VersionNotFoundError(s.PackageVersion, s.Path))
	}
	if len(s.entries) == 0 {
		s.report.AddError(NoValidEntriesError)
	}
	parserLog.Printf("Scanned %s: %d lines, %d entries", s.Path, lineNum, len(s.entries))
	return s.entries
}

func (s *Scanner) line(num int, line string) {
	if !strings.HasPrefix(line, "##") {
		return
	}
	if line == "##" || line == "###" {
		s.report.AddError(EmptyHeaderOrEntryError(num))
		return
	}

	if m := entryPattern.FindStringSubmatch(line); m != nil {
		e := &Entry{
			Line:    m[0],
			Version: m[versionGroup],
			Date:    m[dateGroup],
			Index:   len(s.entries) + 1,
		}
		s.entries = append(s.entries, e)
		s.current = e
		s.checkEntry(e)
		return
	}

	if m := headerPattern.FindStringSubmatch(line); m != nil {
		s.checkHeader(m[0], m[headerGroup])
	}
}

func (s *Scanner) checkEntry(e *Entry) {
	if e.Version == "Unreleased" {
		s.report.AddError(UnreleasedEntryError)
		return
	}
	if !semverutil.IsStrict(e.Version) {
		s.report.AddError(InvalidVersionError(e.Version, s.Path))
		return
	}

	if !s.found && e.Version == s.PackageVersion {
		s.found = true
		if e.Index != 1 {
			s.report.AddError(NotFirstEntryError(s.Path, e.Index))
		}
	}

	switch {
	case parsesAs(e.Date, dateLayout):
		return
	case parsesAs(e.Date, deprecatedDateLayouts...):
		s.report.AddWarning(DeprecatedDateWarning(e.Version, e.Date))
	case strings.TrimSpace(e.Date) == "":
		s.report.AddError(MissingDateError(e.Version, s.Path))
	default:
		s.report.AddError(InvalidDateError(e.Version, e.Date))
	}
}

func parsesAs(value string, layouts ...string) bool {
	for _, layout := range layouts {
		if _, err := time.Parse(layout, value); err == nil {
			return true
		}
	}
	return false
}

func (s *Scanner) checkHeader(full, raw string) {
	header := strings.TrimRightFunc(raw, func(r rune) bool { return r == ' ' || r == '\t' })
	if len(header)-len(strings.TrimLeft(header, " \t")) > 1 {
		s.report.AddWarning(ExcessWhitespaceWarning)
		return
	}

	entryLine := ""
	if s.current != nil {
		entryLine = s.current.Line
	}
	idx := slices.Index(Headers, header)
	if idx < 0 {
		s.report.AddWarning(UnexpectedHeaderWarning(entryLine, full))
		return
	}
	if s.current == nil {
		parserLog.Printf("Header %q appears before any entry, ignoring", header)
		return
	}

	e := s.current
	e.Headers = append(e.Headers, idx)
	if !slices.IsSorted(e.Headers) {
		s.report.AddError(IncorrectHeaderOrderError(e.Line))
	}
	if len(slices.Compact(slices.Sorted(slices.Values(e.Headers)))) != len(e.Headers) {
		s.report.AddError(RepeatedHeaderError(e.Line))
	}
}
