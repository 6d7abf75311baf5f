// Package validation runs a compiled-in set of package validation rules.
//
// # Lifecycle
//
// A Registry holds every known rule, checked once for bad dependency
// declarations. A Suite selects the rules active for a mode and package kind,
// runs their optional Setup hooks, and hands them to the Scheduler. The
// Scheduler runs prerequisites before their dependents and executes each
// rule at most once per run through the Executor, which isolates panics.
//
// Outcomes are kept in a Run keyed by rule kind. Rule values carry no
// per-run state and can be shared between runs and goroutines.
package validation
