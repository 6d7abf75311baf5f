package validation

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/githubnext/pkgvet/pkg/logger"
	"github.com/githubnext/pkgvet/pkg/timeutil"
)

var executorLog = logger.New("validation:executor")

// Executor runs a single rule and records its outcome.
type Executor struct {
	// OnRuleCompleted, if set, is called after every rule that reached a
	// final state, including rules failed by a prerequisite.
	OnRuleCompleted func(*Outcome)

	now func() time.Time
}

// NewExecutor returns an executor using the wall clock.
func NewExecutor() *Executor {
	return &Executor{now: time.Now}
}

func (e *Executor) clock() time.Time {
	if e.now == nil {
		return time.Now()
	}
	return e.now()
}

// Execute runs rule against vc. A panic or returned error fails the outcome
// with one error entry; for a panic the entry carries the stack trace. A rule
// that leaves the outcome Running succeeds.
func (e *Executor) Execute(ctx context.Context, rule Rule, vc *Context, out *Outcome) {
	info := rule.Info()
	out.Mode = vc.Mode
	out.Coerced = !info.SupportsMode(vc.Mode)
	out.SetState(StateRunning)
	out.StartTime = e.clock()
	executorLog.Printf("Starting validation %q (mode=%s coerced=%v)", info.Name, vc.Mode, out.Coerced)

	if p, err := invoke(ctx, rule, vc, out); p != nil {
		out.AddErrorWithException(fmt.Sprintf("Validation %q raised an unexpected exception: %v", info.Name, p.value), p.stack)
	} else if err != nil {
		out.AddError(err.Error())
	}
	if out.State == StateRunning {
		out.SetState(StateSucceeded)
	}

	out.EndTime = e.clock()
	executorLog.Printf("Finished validation %q: %s in %s", info.Name, out.State, timeutil.FormatDuration(out.Elapsed()))
	e.complete(out)
}

// Fail fails out without running its rule.
func (e *Executor) Fail(out *Outcome, msg string) {
	now := e.clock()
	out.StartTime = now
	out.EndTime = now
	out.AddError(msg)
	executorLog.Printf("Validation %q failed without running", out.Name)
	e.complete(out)
}

func (e *Executor) complete(out *Outcome) {
	if e.OnRuleCompleted != nil {
		e.OnRuleCompleted(out)
	}
}

type rulePanic struct {
	value any
	stack string
}

func invoke(ctx context.Context, rule Rule, vc *Context, out *Outcome) (p *rulePanic, err error) {
	defer func() {
		if r := recover(); r != nil {
			p = &rulePanic{value: r, stack: string(debug.Stack())}
			executorLog.Printf("Validation %q panicked: %v\n%s", rule.Info().Name, r, p.stack)
		}
	}()
	return nil, rule.Run(ctx, vc, out)
}
