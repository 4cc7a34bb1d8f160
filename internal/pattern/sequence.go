package pattern

import "github.com/al-pacino/lspl/internal/transposition"

// SequenceNode concatenates its children in order. If Transposition is
// set, children may additionally appear in any order reachable from the
// declared order by a sequence of adjacent swaps (the "A ~ B" operator).
type SequenceNode struct {
	Children      []Node
	Transposition bool
}

// MinSize is the sum of every child's MinSize.
func (n *SequenceNode) MinSize() int {
	total := 0
	for _, c := range n.Children {
		total += c.MinSize()
	}
	return total
}

// Build computes each child's Variants under a per-child maxSize budget
// that reserves just enough room for every other child's minimum, forms
// the Cartesian product, and — when Transposition is set — additionally
// re-forms the product under every permutation reachable by one swap of
// two children at a time, deduplicating at the end.
func (n *SequenceNode) Build(ctx *BuildContext, maxSize int) (Variants, error) {
	if len(n.Children) == 0 {
		return Variants{{}}, nil
	}

	minSize := n.MinSize()
	if minSize > maxSize {
		return nil, nil
	}

	childVariants := make([]Variants, len(n.Children))
	for i, c := range n.Children {
		otherMin := minSize - c.MinSize()
		childMax := maxSize - otherMin
		vs, err := c.Build(ctx, childMax)
		if err != nil {
			return nil, err
		}
		childVariants[i] = vs
	}

	result := Product(childVariants, maxSize)

	if n.Transposition && len(n.Children) > 1 {
		swaps, err := transposition.Swaps(len(n.Children))
		if err != nil {
			return nil, err
		}
		order := make([]int, len(n.Children))
		for i := range order {
			order[i] = i
		}
		current := childVariants
		for _, sw := range swaps {
			reordered := make([]Variants, len(current))
			copy(reordered, current)
			reordered[sw.P], reordered[sw.Q] = reordered[sw.Q], reordered[sw.P]
			current = reordered
			result = append(result, Product(current, maxSize)...)
		}
	}

	return Dedup(result), nil
}
