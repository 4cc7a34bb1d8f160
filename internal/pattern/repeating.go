package pattern

// RepeatingNode is counted repetition of child between Min and Max times
// inclusive (Min=0, Max=1 encodes "optional").
type RepeatingNode struct {
	Child    Node
	Min, Max int
}

// MinSize is Min copies of the child's MinSize (0 if Min is 0).
func (n *RepeatingNode) MinSize() int {
	return n.Min * n.Child.MinSize()
}

// Build enumerates repetition counts from start = max(Min, 1) up to
// min(Max, maxSize / child.MinSize), incrementally concatenating one more
// child variant onto every accumulated prefix at each count, pre-seeding
// the empty variant when Min is 0.
func (n *RepeatingNode) Build(ctx *BuildContext, maxSize int) (Variants, error) {
	childMin := n.Child.MinSize()
	if childMin < 1 {
		childMin = 1
	}

	start := n.Min
	if start < 1 {
		start = 1
	}
	finish := n.Max
	if limit := maxSize / childMin; limit < finish {
		finish = limit
	}

	var result Variants
	if n.Min == 0 {
		result = append(result, Variant{})
	}
	if finish < start {
		return Dedup(result), nil
	}

	elementMaxSize := maxSize - childMin*start + childMin
	childVariants, err := n.Child.Build(ctx, elementMaxSize)
	if err != nil {
		return nil, err
	}
	if len(childVariants) == 0 {
		return Dedup(result), nil
	}

	children := make([]Variants, start)
	for i := range children {
		children[i] = childVariants
	}
	acc := Product(children, maxSize)
	result = append(result, acc...)

	for count := start + 1; count <= finish; count++ {
		var next Variants
		for _, prefix := range acc {
			for _, cv := range childVariants {
				if prefix.Len()+cv.Len() > maxSize {
					continue
				}
				next = append(next, prefix.Concat(cv))
			}
		}
		acc = next
		result = append(result, acc...)
	}

	return Dedup(result), nil
}
