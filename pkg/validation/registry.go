package validation

import (
	"github.com/githubnext/pkgvet/pkg/logger"
)

var registryLog = logger.New("validation:registry")

// Registry is the ordered, validated set of known rules.
// Discovery order is registration order.
type Registry struct {
	rules []Rule
	index map[Kind]int
}

// NewRegistry checks the dependency declarations of rules and returns a
// registry. Empty kinds, duplicate kinds, self-references, unknown
// prerequisites and cycles are all reported together.
func NewRegistry(rules ...Rule) (*Registry, error) {
	registryLog.Printf("Registering %d rules", len(rules))

	collector := NewErrorCollector(false)
	r := &Registry{index: make(map[Kind]int, len(rules))}

	for _, rule := range rules {
		info := rule.Info()
		if info.Kind == "" {
			_ = collector.Add(invalidRule(info.Kind, "rule %q has an empty kind", info.Name))
			continue
		}
		if _, dup := r.index[info.Kind]; dup {
			_ = collector.Add(invalidRule(info.Kind, "registered more than once"))
			continue
		}
		r.index[info.Kind] = len(r.rules)
		r.rules = append(r.rules, rule)
	}

	edgesOK := true
	for _, rule := range r.rules {
		info := rule.Info()
		for _, dep := range info.DependsOn {
			switch {
			case dep == info.Kind:
				_ = collector.Add(invalidRule(info.Kind, "depends on itself"))
				edgesOK = false
			case !r.has(dep):
				_ = collector.Add(invalidRule(info.Kind, "depends on unknown rule %q", dep))
				edgesOK = false
			}
		}
	}

	// Cycle detection only makes sense over a graph with resolvable edges.
	if edgesOK {
		if cycle := r.findCycle(); cycle != nil {
			_ = collector.Add(cycleError(cycle))
		}
	}

	if err := collector.FormattedError("rule registry"); err != nil {
		registryLog.Printf("Registry rejected: %v", err)
		return nil, err
	}
	return r, nil
}

func (r *Registry) has(kind Kind) bool {
	_, ok := r.index[kind]
	return ok
}

// findCycle walks rules in discovery order and returns the first cycle found
// as a closed path (first kind repeated at the end), or nil.
func (r *Registry) findCycle() []Kind {
	const (
		white = iota
		gray
		black
	)
	color := make([]int, len(r.rules))
	var stack []Kind

	var visit func(i int) []Kind
	visit = func(i int) []Kind {
		color[i] = gray
		kind := r.rules[i].Info().Kind
		stack = append(stack, kind)
		for _, dep := range r.rules[i].Info().DependsOn {
			j := r.index[dep]
			switch color[j] {
			case gray:
				for start, k := range stack {
					if k == dep {
						cycle := append([]Kind{}, stack[start:]...)
						return append(cycle, dep)
					}
				}
			case white:
				if cycle := visit(j); cycle != nil {
					return cycle
				}
			}
		}
		stack = stack[:len(stack)-1]
		color[i] = black
		return nil
	}

	for i := range r.rules {
		if color[i] == white {
			if cycle := visit(i); cycle != nil {
				return cycle
			}
		}
	}
	return nil
}

// All returns every registered rule in discovery order.
func (r *Registry) All() []Rule {
	return append([]Rule(nil), r.rules...)
}

// Kinds returns every registered kind in discovery order.
func (r *Registry) Kinds() []Kind {
	kinds := make([]Kind, len(r.rules))
	for i, rule := range r.rules {
		kinds[i] = rule.Info().Kind
	}
	return kinds
}

// Lookup returns the rule registered under kind.
func (r *Registry) Lookup(kind Kind) (Rule, bool) {
	i, ok := r.index[kind]
	if !ok {
		return nil, false
	}
	return r.rules[i], true
}

// SelectActive returns, in discovery order, the rules that apply to both
// mode and kind. The result may be empty.
func (r *Registry) SelectActive(mode Mode, kind PackageKind) []Rule {
	var active []Rule
	for _, rule := range r.rules {
		info := rule.Info()
		if info.SupportsMode(mode) && info.SupportsPackageKind(kind) {
			active = append(active, rule)
		}
	}
	registryLog.Printf("Selected %d of %d rules for mode=%s kind=%s", len(active), len(r.rules), mode, kind)
	return active
}
