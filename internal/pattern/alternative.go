package pattern

// AlternativeNode wraps a child node with a list of inline conditions
// (agreement or dictionary) that apply to the whole produced variant.
type AlternativeNode struct {
	Child      Node
	Conditions []Condition
}

// MinSize delegates to the child.
func (n *AlternativeNode) MinSize() int {
	return n.Child.MinSize()
}

// Build delegates to the child, attaches n's conditions to every produced
// variant, then deduplicates.
func (n *AlternativeNode) Build(ctx *BuildContext, maxSize int) (Variants, error) {
	variants, err := n.Child.Build(ctx, maxSize)
	if err != nil {
		return nil, err
	}
	if len(n.Conditions) == 0 {
		return Dedup(variants), nil
	}

	out := make(Variants, len(variants))
	for i, v := range variants {
		out[i] = attachConditions(v, n.Conditions)
	}
	return Dedup(out), nil
}

// attachConditions places each condition onto the PatternWord at the
// position of the condition's last-referenced argument, matching
// compilation's rule that a condition's action runs on the state reached
// after its last argument position is consumed.
func attachConditions(v Variant, conditions []Condition) Variant {
	out := make(Variant, len(v))
	copy(out, v)
	for _, c := range conditions {
		pos := lastArgumentPosition(out, c.Arguments)
		if pos < 0 {
			continue
		}
		out[pos].Conditions = append(append([]Condition{}, out[pos].Conditions...), c)
	}
	return out
}

func lastArgumentPosition(v Variant, arguments []Argument) int {
	last := -1
	for i, w := range v {
		for _, a := range arguments {
			if a.Defined() && w.Argument.RemoveSign() == a.RemoveSign() {
				last = i
			}
		}
	}
	return last
}
