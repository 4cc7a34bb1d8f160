package parser

import (
	"errors"
	"fmt"
	"math"

	"github.com/al-pacino/lspl/internal/attrs"
	"github.com/al-pacino/lspl/internal/diag"
	"github.com/al-pacino/lspl/internal/lexer"
	"github.com/al-pacino/lspl/internal/pattern"
)

var errUnknownNode = errors.New("parser: unknown pattern node")

// resolveState carries the per-definition element identity table used
// while resolving one definition's body: element ids are assigned to
// declared header arguments first, in order, then to any body-only word
// class names in order of first appearance.
type resolveState struct {
	def        rawDefinition
	pat        *pattern.Pattern
	elementIDs map[string]pattern.ElementID
	nextID     int
}

func (st *resolveState) elementID(key string) pattern.ElementID {
	if id, ok := st.elementIDs[key]; ok {
		return id
	}
	id := pattern.ElementID(st.nextID)
	st.elementIDs[key] = id
	st.nextID++
	return id
}

// Resolve registers every definition's name and header arguments, then
// resolves each body against the now-complete registry, so patterns may
// reference each other regardless of declaration order (including mutual
// recursion). Definitions that fail to register are skipped; resolution
// continues for the rest so a single file reports every error it has.
func Resolve(defs []rawDefinition, signs Signs, diags *diag.Processor) *pattern.Patterns {
	registry := pattern.NewPatterns()
	states := make([]*resolveState, 0, len(defs))

	for _, def := range defs {
		elementIDs := make(map[string]pattern.ElementID, len(def.Arguments))
		args := make([]pattern.ElementID, len(def.Arguments))
		for i, name := range def.Arguments {
			key := name.Normalize()
			if _, dup := elementIDs[key]; dup {
				addSemanticError(diags, def, name.Tok, "duplicate argument name")
			}
			elementIDs[key] = pattern.ElementID(i)
			args[i] = pattern.ElementID(i)
		}
		pat := &pattern.Pattern{Name: def.Name, Arguments: args}
		if err := registry.Add(pat); err != nil {
			addSemanticError(diags, def, def.NameTok, err.Error())
			continue
		}
		states = append(states, &resolveState{
			def:        def,
			pat:        pat,
			elementIDs: elementIDs,
			nextID:     len(def.Arguments),
		})
	}

	for _, st := range states {
		r := &resolver{registry: registry, signs: signs, diags: diags, st: st}
		root, err := r.resolveNode(st.def.Alternatives)
		if err != nil {
			addSemanticError(diags, st.def, st.def.NameTok, err.Error())
			continue
		}
		st.pat.Root = root
	}

	return registry
}

func addSemanticError(diags *diag.Processor, def rawDefinition, tok lexer.Token, message string) {
	diags.Add(&diag.Error{
		Severity: diag.Semantic,
		Location: diag.Location{File: def.File, Line: def.Line, Text: def.Text, Offset: tok.Offset, Length: tok.Length},
		Message:  message,
	})
}

type resolver struct {
	registry *pattern.Patterns
	signs    Signs
	diags    *diag.Processor
	st       *resolveState
}

func (r *resolver) errorTok(tok lexer.Token, format string, args ...interface{}) {
	addSemanticError(r.diags, r.st.def, tok, fmt.Sprintf(format, args...))
}

func (r *resolver) resolveNode(n rawNode) (pattern.Node, error) {
	switch v := n.(type) {
	case rawRegexp:
		return &pattern.RegexpNode{Expr: v.Expr}, nil

	case rawWord:
		return r.resolveWord(v)

	case rawElements:
		children, err := r.resolveAll(v.Children)
		if err != nil {
			return nil, err
		}
		return &pattern.SequenceNode{Children: children}, nil

	case rawTransposition:
		children, err := r.resolveAll(v.Children)
		if err != nil {
			return nil, err
		}
		return &pattern.SequenceNode{Children: children, Transposition: true}, nil

	case rawRepeating:
		child, err := r.resolveNode(v.Child)
		if err != nil {
			return nil, err
		}
		min, max := repeatBounds(v)
		return &pattern.RepeatingNode{Child: child, Min: min, Max: max}, nil

	case rawAlternatives:
		children, err := r.resolveAll(v.Children)
		if err != nil {
			return nil, err
		}
		return &pattern.AlternativesNode{Children: children}, nil

	case rawAlternative:
		child, err := r.resolveNode(v.Child)
		if err != nil {
			return nil, err
		}
		conditions, err := r.resolveAltConditions(v.Conditions)
		if err != nil {
			return nil, err
		}
		return &pattern.AlternativeNode{Child: child, Conditions: conditions}, nil

	default:
		return nil, errUnknownNode
	}
}

func repeatBounds(v rawRepeating) (int, int) {
	if v.Optional {
		return 0, 1
	}
	min := 0
	if v.HasMin {
		min = v.Min
	}
	max := math.MaxInt32
	if v.HasMax {
		max = v.Max
	}
	return min, max
}

func (r *resolver) resolveAll(nodes []rawNode) ([]pattern.Node, error) {
	out := make([]pattern.Node, len(nodes))
	for i, n := range nodes {
		resolved, err := r.resolveNode(n)
		if err != nil {
			return nil, err
		}
		out[i] = resolved
	}
	return out, nil
}

func (r *resolver) resolveWord(w rawWord) (pattern.Node, error) {
	restrictions, err := r.buildRestrictions(w.Conditions)
	if err != nil {
		return nil, err
	}

	if w.Name.Index == 0 && w.Name.SubName == "" {
		if referenced, err := r.registry.Resolve(w.Name.Name); err == nil {
			return &pattern.ReferenceNode{Pattern: referenced, Restrictions: restrictions}, nil
		}
	}

	id := r.st.elementID(w.Name.Normalize())
	return &pattern.ElementNode{Element: id, Restrictions: restrictions}, nil
}

func (r *resolver) buildRestrictions(conditions []rawWordCondition) (pattern.SignRestrictions, error) {
	var out pattern.SignRestrictions
	for _, c := range conditions {
		attribute := attrs.MainAttribute
		if c.HasAttribute {
			a, ok := r.signs.Attribute(c.Attribute)
			if !ok {
				r.errorTok(c.AttributeTok, "unknown attribute %q", c.Attribute)
				continue
			}
			attribute = a
		}
		for _, valTok := range c.Values {
			value, ok := r.signs.Value(attribute, valTok.Text)
			if !ok {
				r.errorTok(valTok, "unknown attribute value %q", valTok.Text)
				continue
			}
			var err error
			out, err = out.Add(attribute, c.Exclude, value)
			if err != nil {
				r.errorTok(valTok, "%s", err.Error())
			}
		}
	}
	return out, nil
}

func (r *resolver) resolveAltConditions(raws []rawAltCondition) ([]pattern.Condition, error) {
	out := make([]pattern.Condition, 0, len(raws))
	for _, raw := range raws {
		if raw.IsDictionary {
			out = append(out, r.resolveDictionaryCondition(raw))
			continue
		}
		out = append(out, r.resolveMatchingCondition(raw))
	}
	return out, nil
}

func (r *resolver) resolveDictionaryCondition(raw rawAltCondition) pattern.Condition {
	var args []pattern.Argument
	for gi, group := range raw.Groups {
		if gi > 0 {
			args = append(args, pattern.Argument{Type: pattern.ArgNone})
		}
		for _, name := range group {
			if name.SubName != "" {
				r.errorTok(name.Tok, "dictionary argument %q may not name an attribute", name.Name)
			}
			id := r.st.elementID(name.Normalize())
			args = append(args, pattern.Argument{Type: pattern.ArgElement, Element: id})
		}
	}
	return pattern.Condition{Kind: pattern.Dictionary, Name: raw.Dictionary.Name, Arguments: args}
}

func (r *resolver) resolveMatchingCondition(raw rawAltCondition) pattern.Condition {
	if raw.Inconsistent {
		tok := raw.Names[0].Tok
		r.errorTok(tok, "inconsistent equal sign `=` and double equal `==` sign")
	}

	var args []pattern.Argument
	attribute := attrs.MainAttribute
	attributeSet := false
	for _, name := range raw.Names {
		id := r.st.elementID(name.Normalize())
		arg := pattern.Argument{Type: pattern.ArgElement, Element: id}
		if name.SubName != "" {
			a, ok := r.signs.Attribute(name.SubName)
			if !ok {
				r.errorTok(name.Tok, "unknown attribute %q", name.SubName)
			} else {
				arg.Type = pattern.ArgElementSign
				arg.Attribute = a
				if attributeSet && a != attribute {
					r.errorTok(name.Tok, "inconsistent attribute in condition")
				}
				attribute = a
				attributeSet = true
			}
		}
		args = append(args, arg)
	}
	return pattern.Condition{Kind: pattern.Agreement, Strong: raw.Strong, Attribute: attribute, Arguments: args}
}
