package validation

import (
	"fmt"
	"sync"
	"time"
)

// Output is one message produced by a rule.
type Output struct {
	Kind    OutputKind `json:"type"`
	Message string     `json:"message"`
}

// Outcome is the run-scoped result of one rule.
type Outcome struct {
	Kind        Kind      `json:"kind"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    Category  `json:"category"`
	State       State     `json:"state"`
	Outputs     []Output  `json:"outputs"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`

	// Mode is the mode the rule actually ran under.
	Mode Mode `json:"mode,omitempty"`

	// Coerced is set when the rule ran as a prerequisite under a mode it
	// does not declare.
	Coerced bool `json:"coerced,omitempty"`
}

func newOutcome(info Info) *Outcome {
	return &Outcome{
		Kind:        info.Kind,
		Name:        info.Name,
		Description: info.Description,
		Category:    info.Category,
		State:       StateNotRun,
		Outputs:     []Output{},
	}
}

// SetState changes the state. Failed is terminal.
func (o *Outcome) SetState(s State) {
	if o.State == StateFailed {
		return
	}
	o.State = s
}

// AddError records an error and fails the rule.
func (o *Outcome) AddError(msg string) {
	o.Outputs = append(o.Outputs, Output{Kind: OutputError, Message: msg})
	o.SetState(StateFailed)
}

// AddErrorf is AddError with formatting.
func (o *Outcome) AddErrorf(format string, args ...any) {
	o.AddError(fmt.Sprintf(format, args...))
}

// AddErrorWithException records an error followed by its stack trace and
// fails the rule.
func (o *Outcome) AddErrorWithException(msg, stack string) {
	o.Outputs = append(o.Outputs, Output{Kind: OutputErrorWithException, Message: msg + "\n" + stack})
	o.SetState(StateFailed)
}

// AddWarning records a warning. The state is unchanged.
func (o *Outcome) AddWarning(msg string) {
	o.Outputs = append(o.Outputs, Output{Kind: OutputWarning, Message: msg})
}

// AddInformation records an informational message. The state is unchanged.
func (o *Outcome) AddInformation(msg string) {
	o.Outputs = append(o.Outputs, Output{Kind: OutputInformation, Message: msg})
}

// Errors returns the error messages in order.
func (o *Outcome) Errors() []string {
	return o.messages(OutputKind.IsError)
}

// Warnings returns the warning messages in order.
func (o *Outcome) Warnings() []string {
	return o.messages(OutputKind.IsWarning)
}

func (o *Outcome) messages(match func(OutputKind) bool) []string {
	var msgs []string
	for _, out := range o.Outputs {
		if match(out.Kind) {
			msgs = append(msgs, out.Message)
		}
	}
	return msgs
}

// Elapsed is the wall time between start and end, zero if the rule never ran.
func (o *Outcome) Elapsed() time.Duration {
	if o.StartTime.IsZero() || o.EndTime.IsZero() {
		return 0
	}
	return o.EndTime.Sub(o.StartTime)
}

// Run holds the outcome of every rule touched by one suite run.
type Run struct {
	mu       sync.Mutex
	outcomes map[Kind]*Outcome
}

// NewRun returns an empty run.
func NewRun() *Run {
	return &Run{outcomes: make(map[Kind]*Outcome)}
}

// Outcome returns the outcome for the rule, creating a NotRun one on first use.
func (r *Run) Outcome(rule Rule) *Outcome {
	info := rule.Info()
	r.mu.Lock()
	defer r.mu.Unlock()
	if o, ok := r.outcomes[info.Kind]; ok {
		return o
	}
	o := newOutcome(info)
	r.outcomes[info.Kind] = o
	return o
}

// Lookup returns the outcome for kind if the run has touched it.
func (r *Run) Lookup(kind Kind) (*Outcome, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.outcomes[kind]
	return o, ok
}
