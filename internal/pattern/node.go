// Package pattern implements the pattern IR and variant expansion: lowering
// a frozen tree of pattern nodes into a bounded, deduplicated set of linear
// Variant values.
package pattern

// Node is one pattern IR node. Every node knows the minimum word count any
// variant it produces will have, and can expand itself into a bounded
// Variants set.
type Node interface {
	// MinSize is the length of the shortest variant this node can produce.
	MinSize() int
	// Build expands the node into variants of total length at most
	// maxSize, using ctx for recursion budgeting across Reference nodes.
	Build(ctx *BuildContext, maxSize int) (Variants, error)
}
