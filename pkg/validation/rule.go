package validation

import (
	"context"
	"slices"
)

// Kind is the stable identifier of a rule, e.g. "changelog".
type Kind string

// Info is the static description of a rule.
type Info struct {
	Kind        Kind
	Name        string
	Description string
	Category    Category

	// Modes the rule is active in. Empty means the general-purpose modes
	// (see defaultModes).
	Modes []Mode

	// PackageKinds the rule applies to. Empty means tooling and template.
	PackageKinds []PackageKind

	// DependsOn lists prerequisite rule kinds, run before this rule.
	DependsOn []Kind
}

// SupportsMode reports whether the rule is declared for m.
func (i Info) SupportsMode(m Mode) bool {
	if len(i.Modes) == 0 {
		return slices.Contains(defaultModes, m)
	}
	return slices.Contains(i.Modes, m)
}

// SupportsPackageKind reports whether the rule applies to k.
func (i Info) SupportsPackageKind(k PackageKind) bool {
	if len(i.PackageKinds) == 0 {
		return slices.Contains(defaultPackageKinds, k)
	}
	return slices.Contains(i.PackageKinds, k)
}

// Rule is a single validation check.
//
// Run reports findings through the outcome. Returning an error or panicking
// fails the rule with one error entry.
type Rule interface {
	Info() Info
	Run(ctx context.Context, vc *Context, out *Outcome) error
}

// SetupRule is implemented by rules that need to prepare before the suite
// schedules any rule. A Setup error aborts the whole run.
type SetupRule interface {
	Rule
	Setup(vc *Context) error
}

// SuiteCompletedHook is implemented by rules that want to see the finished
// result, e.g. to clean up temporary state.
type SuiteCompletedHook interface {
	OnSuiteCompleted(res *Result)
}
