package pattern

// ReferenceNode inlines another pattern by name, with its own sign
// restrictions applied to every word the callee produces.
type ReferenceNode struct {
	Pattern      *Pattern
	Restrictions SignRestrictions
}

// MinSize is always 1, regardless of the referenced pattern's own minimum
// size. Descending into the callee here would recurse without a base case
// for self- and mutually-recursive patterns (P = N | N P); the original
// (CPatternReference::MinSizePrediction) uses the same constant for the
// same reason.
func (n *ReferenceNode) MinSize() int {
	return 1
}

// Build delegates to the referenced Pattern's Build, then rewrites each
// produced word's argument id from the callee's element ids to the
// caller's reference-element ids, and intersects n's own restrictions into
// each inlined word so a restriction attached at the call site narrows
// every word the callee produces, not just the reference node itself.
func (n *ReferenceNode) Build(ctx *BuildContext, maxSize int) (Variants, error) {
	variants, err := n.Pattern.Build(ctx, maxSize)
	if err != nil {
		return nil, err
	}

	mainSize := len(n.Pattern.Arguments)
	out := make(Variants, 0, len(variants))
	for _, v := range variants {
		nv := make(Variant, len(v))
		for i, w := range v {
			nw := w
			nw.Argument = rewriteArgument(w.Argument, mainSize)
			merged, err := w.Restrictions.Merge(n.Restrictions)
			if err != nil {
				return nil, err
			}
			nw.Restrictions = merged
			nv[i] = nw
		}
		out = append(out, nv)
	}
	return out, nil
}

// rewriteArgument maps a callee-local element identity to a
// reference-relative one. mainSize is the number of the callee's own
// formal arguments; element ids beyond the declared element set (produced
// when the callee itself is built under a larger budget than its own
// element count) wrap around by mainSize, with the wrapped-around count
// giving the reference argument position.
func rewriteArgument(a Argument, mainSize int) Argument {
	if mainSize <= 0 {
		return Argument{Type: ArgNone}
	}
	switch a.Type {
	case ArgElement:
		return Argument{
			Type:      ArgReferenceElement,
			Element:   ElementID(int(a.Element) % mainSize),
			Reference: int(a.Element) / mainSize,
		}
	case ArgElementSign:
		return Argument{
			Type:      ArgReferenceElementSign,
			Element:   ElementID(int(a.Element) % mainSize),
			Reference: int(a.Element) / mainSize,
			Attribute: a.Attribute,
		}
	default:
		return Argument{Type: ArgNone}
	}
}
