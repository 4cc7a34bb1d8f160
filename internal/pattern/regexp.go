package pattern

// RegexpNode matches any word whose surface text satisfies a regular
// expression. It carries the source text of the regex; internal/compile
// compiles it with internal/wordrx.
type RegexpNode struct {
	Expr string
}

// MinSize is always 1: a regexp leaf always consumes exactly one word.
func (n *RegexpNode) MinSize() int { return 1 }

// Build emits one one-word variant if maxSize allows it.
func (n *RegexpNode) Build(_ *BuildContext, maxSize int) (Variants, error) {
	if maxSize < 1 {
		return nil, nil
	}
	return Variants{{{Regexp: n.Expr}}}, nil
}
