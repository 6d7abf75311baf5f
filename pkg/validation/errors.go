package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/githubnext/pkgvet/pkg/logger"
)

var errorsLog = logger.New("validation:errors")

var (
	ErrMalformedPackageID = errors.New("malformed package id")
	ErrPackageNotFound    = errors.New("package not found")
	ErrInvalidRegistry    = errors.New("invalid rule registry")
	ErrDependencyCycle    = errors.New("dependency cycle detected")
)

// RegistryError describes one bad dependency declaration.
type RegistryError struct {
	Kind error
	Rule Kind
	Msg  string
}

func (e *RegistryError) Error() string {
	if e == nil {
		return ""
	}
	if e.Msg == "" {
		return fmt.Sprintf("%s: rule %q", e.Kind, e.Rule)
	}
	return fmt.Sprintf("%s: rule %q: %s", e.Kind, e.Rule, e.Msg)
}

func (e *RegistryError) Unwrap() error { return e.Kind }

func invalidRule(rule Kind, format string, args ...any) error {
	return &RegistryError{Kind: ErrInvalidRegistry, Rule: rule, Msg: fmt.Sprintf(format, args...)}
}

func cycleError(path []Kind) error {
	parts := make([]string, len(path))
	for i, k := range path {
		parts[i] = string(k)
	}
	rule := Kind("")
	if len(path) > 0 {
		rule = path[0]
	}
	return &RegistryError{Kind: ErrDependencyCycle, Rule: rule, Msg: strings.Join(parts, " -> ")}
}

// SetupError is returned when a run is aborted before any rule executes.
type SetupError struct {
	Rule Kind
	Err  error
}

func (e *SetupError) Error() string {
	if e.Rule == "" {
		return fmt.Sprintf("validation setup failed: %v", e.Err)
	}
	return fmt.Sprintf("validation setup failed in rule %q: %v", e.Rule, e.Err)
}

func (e *SetupError) Unwrap() error { return e.Err }

// ErrorCollector collects multiple errors
type ErrorCollector struct {
	errors   []error
	failFast bool
}

// NewErrorCollector creates a new error collector
// If failFast is true, Add returns the first error instead of collecting it
func NewErrorCollector(failFast bool) *ErrorCollector {
	return &ErrorCollector{failFast: failFast}
}

// Add adds an error to the collector
func (c *ErrorCollector) Add(err error) error {
	if err == nil {
		return nil
	}
	errorsLog.Printf("Adding error to collector: %v", err)
	if c.failFast {
		return err
	}
	c.errors = append(c.errors, err)
	return nil
}

// HasErrors returns true if any errors have been collected
func (c *ErrorCollector) HasErrors() bool {
	return len(c.errors) > 0
}

// Count returns the number of errors collected
func (c *ErrorCollector) Count() int {
	return len(c.errors)
}

// Error returns the aggregated error using errors.Join, or nil
func (c *ErrorCollector) Error() error {
	switch len(c.errors) {
	case 0:
		return nil
	case 1:
		return c.errors[0]
	}
	errorsLog.Printf("Aggregating %d errors", len(c.errors))
	return errors.Join(c.errors...)
}

// FormattedError returns the aggregated error with a count header
func (c *ErrorCollector) FormattedError(category string) error {
	if len(c.errors) <= 1 {
		return c.Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d %s errors:", len(c.errors), category)
	for _, err := range c.errors {
		sb.WriteString("\n  • ")
		sb.WriteString(err.Error())
	}
	// Keep the individual errors reachable for errors.Is.
	return &collectedError{msg: sb.String(), errs: c.errors}
}

type collectedError struct {
	msg  string
	errs []error
}

func (e *collectedError) Error() string   { return e.msg }
func (e *collectedError) Unwrap() []error { return e.errs }
