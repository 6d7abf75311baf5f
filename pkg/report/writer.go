package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/githubnext/pkgvet/pkg/fileutil"
	"github.com/githubnext/pkgvet/pkg/logger"
	"github.com/githubnext/pkgvet/pkg/manifest"
	"github.com/githubnext/pkgvet/pkg/validation"
)

var writerLog = logger.New("report:writer")

// Writer stores reports under a results directory.
type Writer struct {
	Dir string
}

// NewWriter returns a writer for dir.
func NewWriter(dir string) *Writer {
	return &Writer{Dir: dir}
}

// TextPath is the text report path for a package id.
func (w *Writer) TextPath(packageID string) string {
	return filepath.Join(w.Dir, packageID+".txt")
}

// JSONPath is the JSON report path for a package id.
func (w *Writer) JSONPath(packageID string) string {
	return filepath.Join(w.Dir, packageID+".json")
}

// reportPath is the report file for packageID with ext, rejecting ids that
// would leave the results directory.
func (w *Writer) reportPath(packageID, ext string) (string, error) {
	if packageID == "" || strings.ContainsAny(packageID, `/\`) {
		return "", fmt.Errorf("invalid report name %q", packageID)
	}
	return fileutil.SafeJoin(w.Dir, packageID+ext)
}

// Clear removes earlier reports for the package.
func (w *Writer) Clear(packageID string) error {
	for _, ext := range []string{".txt", ".json"} {
		p, err := w.reportPath(packageID, ext)
		if err != nil {
			return err
		}
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove old report: %w", err)
		}
	}
	return nil
}

// Write stores the text and JSON reports of res.
func (w *Writer) Write(m *manifest.Manifest, res *validation.Result) error {
	textPath, err := w.reportPath(res.PackageID, ".txt")
	if err != nil {
		return err
	}
	jsonPath, err := w.reportPath(res.PackageID, ".json")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return fmt.Errorf("create results directory: %w", err)
	}

	text := RenderText(m, res)
	if err := os.WriteFile(textPath, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write text report: %w", err)
	}

	data, err := RenderJSON(res)
	if err != nil {
		return fmt.Errorf("encode JSON report: %w", err)
	}
	if err := os.WriteFile(jsonPath, data, 0o644); err != nil {
		return fmt.Errorf("write JSON report: %w", err)
	}
	writerLog.Printf("Wrote reports for %s to %s", res.PackageID, w.Dir)
	return nil
}

// WriteError stores a text report describing why a run could not start.
// m may be nil when the manifest could not be loaded.
func (w *Writer) WriteError(packageID string, m *manifest.Manifest, mode validation.Mode, runErr error) error {
	path, err := w.reportPath(packageID, ".txt")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return fmt.Errorf("create results directory: %w", err)
	}
	kind := validation.PackageKindTooling
	if m != nil {
		kind = validation.PackageKindFromManifestType(m.Type)
	}
	text := RenderError(m, mode, kind, time.Now(), runErr)
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write error report: %w", err)
	}
	writerLog.Printf("Wrote error report for %s", packageID)
	return nil
}

// Hook returns a suite-completed hook that writes the reports of each run.
// Write failures are passed to onErr.
func (w *Writer) Hook(m *manifest.Manifest, onErr func(error)) func(*validation.Result) {
	return func(res *validation.Result) {
		if err := w.Write(m, res); err != nil && onErr != nil {
			onErr(err)
		}
	}
}
