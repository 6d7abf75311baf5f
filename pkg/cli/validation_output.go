package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/githubnext/pkgvet/pkg/console"
	"github.com/githubnext/pkgvet/pkg/validation"
)

// FormatValidationError formats an error for console output. Multi-line
// errors keep their structure. A setup error gets a hint about the report
// that was written for it.
func FormatValidationError(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	var setupErr *validation.SetupError
	switch {
	case errors.Is(err, validation.ErrMalformedPackageID):
		msg += "\nPackages are given as name@version, e.g. com.example.tool@1.0.0."
	case errors.As(err, &setupErr), errors.Is(err, validation.ErrPackageNotFound):
		msg += "\nAn error report was written to the results directory."
	}
	return console.FormatErrorMessage(msg)
}

// PrintValidationError prints err to stderr with console formatting.
func PrintValidationError(err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(os.Stderr, FormatValidationError(err))
}
