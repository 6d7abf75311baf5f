package validation

import (
	"context"
	"slices"
	"time"

	"github.com/githubnext/pkgvet/pkg/logger"
	"github.com/google/uuid"
)

var suiteLog = logger.New("validation:suite")

// Result is the record of one suite run.
type Result struct {
	ID          string      `json:"id"`
	PackageID   string      `json:"package_id"`
	Mode        Mode        `json:"mode"`
	PackageKind PackageKind `json:"package_kind"`
	State       State       `json:"state"`
	StartTime   time.Time   `json:"start_time"`
	EndTime     time.Time   `json:"end_time"`

	// Outcomes of the active rules, in discovery order.
	Outcomes []*Outcome `json:"outcomes"`

	// Prerequisites holds outcomes of rules that ran only because an active
	// rule depends on them.
	Prerequisites []*Outcome `json:"prerequisites,omitempty"`
}

// Succeeded reports whether the run ended without a failed rule.
func (r *Result) Succeeded() bool {
	return r.State == StateSucceeded
}

// Elapsed is the wall time of the run.
func (r *Result) Elapsed() time.Duration {
	return r.EndTime.Sub(r.StartTime)
}

// Count returns how many active outcomes are in state s.
func (r *Result) Count(s State) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.State == s {
			n++
		}
	}
	return n
}

// Suite runs the registered rules against one package.
type Suite struct {
	Registry *Registry

	// Skip lists rule kinds that must not run.
	Skip []Kind

	// OnRuleCompleted is called after each rule reaches a final state.
	OnRuleCompleted func(*Outcome)

	// OnSuiteCompleted hooks are called, in order, once the run is over.
	OnSuiteCompleted []func(*Result)
}

// NewSuite returns a suite over reg.
func NewSuite(reg *Registry) *Suite {
	return &Suite{Registry: reg}
}

// Run validates the package described by vc. It returns a *SetupError if a
// rule's Setup hook fails, in which case no rule runs.
func (s *Suite) Run(ctx context.Context, vc *Context) (*Result, error) {
	start := time.Now()
	res := &Result{
		ID:          uuid.NewString(),
		Mode:        vc.Mode,
		PackageKind: vc.PackageKind,
		StartTime:   start,
	}
	switch {
	case vc.PackageID != "":
		res.PackageID = vc.PackageID
	case vc.Manifest != nil:
		res.PackageID = vc.Manifest.ID()
	}
	suiteLog.Printf("Starting run %s for %s (mode=%s kind=%s)", res.ID, res.PackageID, vc.Mode, vc.PackageKind)

	active := s.Registry.SelectActive(vc.Mode, vc.PackageKind)
	for _, rule := range active {
		sr, ok := rule.(SetupRule)
		if !ok || slices.Contains(s.Skip, rule.Info().Kind) {
			continue
		}
		if err := sr.Setup(vc); err != nil {
			suiteLog.Printf("Setup of %q failed: %v", rule.Info().Kind, err)
			return nil, &SetupError{Rule: rule.Info().Kind, Err: err}
		}
	}

	exec := NewExecutor()
	exec.OnRuleCompleted = s.OnRuleCompleted
	run := NewRun()
	res.State = NewScheduler(s.Registry, exec, s.Skip...).RunAll(ctx, vc, active, run)

	activeKinds := make(map[Kind]bool, len(active))
	for _, rule := range active {
		activeKinds[rule.Info().Kind] = true
		res.Outcomes = append(res.Outcomes, run.Outcome(rule))
	}
	for _, rule := range s.Registry.All() {
		kind := rule.Info().Kind
		if activeKinds[kind] {
			continue
		}
		if o, ok := run.Lookup(kind); ok && o.State != StateNotRun {
			res.Prerequisites = append(res.Prerequisites, o)
		}
	}
	res.EndTime = time.Now()
	suiteLog.Printf("Run %s finished: %s", res.ID, res.State)

	for _, hook := range s.OnSuiteCompleted {
		hook(res)
	}
	for _, rule := range active {
		if h, ok := rule.(SuiteCompletedHook); ok {
			h.OnSuiteCompleted(res)
		}
	}
	return res, nil
}
