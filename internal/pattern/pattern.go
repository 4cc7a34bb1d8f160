package pattern

import "fmt"

// Pattern is one named, top-level pattern definition: a root IR node plus
// the formal argument list other patterns bind to when referencing it by
// name.
type Pattern struct {
	Name      string
	Arguments []ElementID
	Root      Node
}

// Build expands the pattern's root under the per-pattern recursion budget,
// returning a deduplicated Variants set of length at most maxSize.
func (p *Pattern) Build(ctx *BuildContext, maxSize int) (Variants, error) {
	effective := ctx.PushMaxSize(p.Name, maxSize)
	defer ctx.PopMaxSize(p.Name)
	if effective <= 0 {
		return nil, nil
	}
	variants, err := p.Root.Build(ctx, effective)
	if err != nil {
		return nil, err
	}
	return Dedup(variants), nil
}

// Patterns is a named set of patterns, supporting resolution of
// by-name references.
type Patterns struct {
	byName map[string]*Pattern
	order  []string
}

// NewPatterns returns an empty Patterns set.
func NewPatterns() *Patterns {
	return &Patterns{byName: make(map[string]*Pattern)}
}

// Add registers p under its own name. It is an error to register two
// patterns under the same name.
func (ps *Patterns) Add(p *Pattern) error {
	if _, exists := ps.byName[p.Name]; exists {
		return fmt.Errorf("pattern: redefinition of pattern %q", p.Name)
	}
	ps.byName[p.Name] = p
	ps.order = append(ps.order, p.Name)
	return nil
}

// Resolve looks up a pattern by name, failing if no pattern was registered
// under it.
func (ps *Patterns) Resolve(name string) (*Pattern, error) {
	p, ok := ps.byName[name]
	if !ok {
		return nil, fmt.Errorf("pattern: undefined pattern reference %q", name)
	}
	return p, nil
}

// Names returns every registered pattern name, in registration order.
func (ps *Patterns) Names() []string {
	out := make([]string, len(ps.order))
	copy(out, ps.order)
	return out
}
