package validation

import (
	"context"
	"fmt"
	"strings"

	"github.com/githubnext/pkgvet/pkg/logger"
)

var schedulerLog = logger.New("validation:scheduler")

// Scheduler orders rule execution so prerequisites run first.
type Scheduler struct {
	registry *Registry
	executor *Executor
	skip     map[Kind]bool
}

// NewScheduler returns a scheduler resolving prerequisites through reg.
// Rules whose kind is in skip never run.
func NewScheduler(reg *Registry, exec *Executor, skip ...Kind) *Scheduler {
	s := &Scheduler{registry: reg, executor: exec, skip: make(map[Kind]bool, len(skip))}
	for _, k := range skip {
		s.skip[k] = true
	}
	return s
}

// ShouldRun reports whether the rule is not skipped.
func (s *Scheduler) ShouldRun(rule Rule) bool {
	return !s.skip[rule.Info().Kind]
}

// RunAll runs the active rules and returns the terminal state of the run:
// Failed if any non-skipped active rule failed, Succeeded otherwise.
func (s *Scheduler) RunAll(ctx context.Context, vc *Context, active []Rule, run *Run) State {
	if hasPrerequisites(active) {
		schedulerLog.Printf("Running %d rules in dependency mode", len(active))
		s.runWithPrerequisites(ctx, vc, active, run)
	} else {
		schedulerLog.Printf("Running %d rules in discovery order", len(active))
		for _, rule := range active {
			if !s.ShouldRun(rule) {
				continue
			}
			s.executor.Execute(ctx, rule, vc, run.Outcome(rule))
		}
	}

	for _, rule := range active {
		if !s.ShouldRun(rule) {
			continue
		}
		if run.Outcome(rule).State == StateFailed {
			return StateFailed
		}
	}
	return StateSucceeded
}

func hasPrerequisites(rules []Rule) bool {
	for _, rule := range rules {
		if len(rule.Info().DependsOn) > 0 {
			return true
		}
	}
	return false
}

// runWithPrerequisites relies on the registry having rejected cycles and
// unknown kinds, so the recursion terminates.
func (s *Scheduler) runWithPrerequisites(ctx context.Context, vc *Context, rules []Rule, run *Run) {
	for _, rule := range rules {
		if !s.ShouldRun(rule) {
			continue
		}
		out := run.Outcome(rule)
		if out.State != StateNotRun {
			continue
		}

		info := rule.Info()
		if len(info.DependsOn) > 0 {
			prereqs := make([]Rule, 0, len(info.DependsOn))
			for _, kind := range info.DependsOn {
				if dep, ok := s.registry.Lookup(kind); ok {
					prereqs = append(prereqs, dep)
				}
			}
			s.runWithPrerequisites(ctx, vc.WithMode(vc.Mode), prereqs, run)

			var failed []string
			for _, dep := range prereqs {
				if o, ok := run.Lookup(dep.Info().Kind); ok && o.State == StateFailed {
					failed = append(failed, dep.Info().Name)
				}
			}
			if len(failed) > 0 {
				schedulerLog.Printf("Prerequisites of %q failed: %v", info.Name, failed)
				s.executor.Fail(out, prerequisiteFailureMessage(failed))
				continue
			}
		}

		s.executor.Execute(ctx, rule, vc, out)
	}
}

func prerequisiteFailureMessage(names []string) string {
	prereq, validations := "prerequisite", "validation"
	if len(names) > 1 {
		prereq, validations = "prerequisites", "validations"
	}
	list := strings.Join(names, ", ")
	return fmt.Sprintf(
		"This validation fails because it has failing validation %s (%s). Fix the failing prerequisite %s (%s) first, then run the validations again.",
		prereq, list, validations, list)
}
