// Package report renders suite results as text and JSON report files.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/githubnext/pkgvet/pkg/constants"
	"github.com/githubnext/pkgvet/pkg/manifest"
	"github.com/githubnext/pkgvet/pkg/validation"
)

// TimeLayout formats times in reports.
const TimeLayout = time.RFC3339

// stateOrder is the order outcome groups appear in the text report.
var stateOrder = []validation.State{
	validation.StateFailed,
	validation.StateWarning,
	validation.StateSucceeded,
	validation.StateNotRun,
	validation.StateNotImplemented,
}

// RenderHeader renders the package summary that opens every text report.
func RenderHeader(m *manifest.Manifest, mode validation.Mode, kind validation.PackageKind, at time.Time) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Validation Suite Results for package %q\n", m.Name)
	fmt.Fprintf(&sb, " - Path: %s\n", m.Path)
	fmt.Fprintf(&sb, " - Version: %s\n", m.Version)
	fmt.Fprintf(&sb, " - Type: %s\n", kind)
	fmt.Fprintf(&sb, " - Context: %s\n", mode)
	fmt.Fprintf(&sb, " - Test Time: %s\n", at.Format(TimeLayout))
	fmt.Fprintf(&sb, " - Tested with %s version: %s\n", constants.CLIName, constants.Version)

	if deps := m.SortedDependencies(); len(deps) > 0 {
		sb.WriteString("\nPACKAGE DEPENDENCIES:\n")
		sb.WriteString("--------------------\n")
		for _, d := range deps {
			fmt.Fprintf(&sb, "    - %s\n", d)
		}
	}
	return sb.String()
}

// RenderText renders the full text report for a finished run.
func RenderText(m *manifest.Manifest, res *validation.Result) string {
	var sb strings.Builder
	sb.WriteString(RenderHeader(m, res.Mode, res.PackageKind, res.StartTime))
	sb.WriteString("\nVALIDATION RESULTS:\n")
	sb.WriteString("------------------\n")

	for _, state := range stateOrder {
		for _, o := range res.Outcomes {
			if o.State != state {
				continue
			}
			fmt.Fprintf(&sb, "\n%s - %q\n", o.State, o.Name)
			for _, out := range o.Outputs {
				fmt.Fprintf(&sb, "    %s: %s\n\n", out.Kind, out.Message)
			}
		}
	}
	return sb.String()
}

// RenderError renders the text report written when a run could not start.
func RenderError(m *manifest.Manifest, mode validation.Mode, kind validation.PackageKind, at time.Time, err error) string {
	var sb strings.Builder
	if m != nil {
		sb.WriteString(RenderHeader(m, mode, kind, at))
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "ERROR: %v\n", err)
	return sb.String()
}
