package pattern

import (
	"fmt"

	"github.com/al-pacino/lspl/internal/attrs"
)

// ElementID names a pattern-local word class.
type ElementID int

// ArgumentType tags the kind of reference path a condition or PatternWord
// identity names.
type ArgumentType int

const (
	// ArgNone is the reserved separator used in dictionary argument lists
	// and the identity of a word produced from a bare Regexp node.
	ArgNone ArgumentType = iota
	// ArgElement names one element position directly.
	ArgElement
	// ArgElementSign names one attribute of one element position.
	ArgElementSign
	// ArgReferenceElement names one element position inside an inlined
	// reference, identified by the reference's argument position.
	ArgReferenceElement
	// ArgReferenceElementSign names one attribute of one element position
	// inside an inlined reference.
	ArgReferenceElementSign
)

func (t ArgumentType) String() string {
	switch t {
	case ArgNone:
		return "none"
	case ArgElement:
		return "element"
	case ArgElementSign:
		return "element-sign"
	case ArgReferenceElement:
		return "reference-element"
	case ArgReferenceElementSign:
		return "reference-element-sign"
	default:
		return "unknown"
	}
}

// Argument is a reference path used both as a PatternWord's identity and as
// one entry in a condition's argument list.
type Argument struct {
	Type      ArgumentType
	Element   ElementID
	Reference int // argument position within an inlined reference
	Attribute attrs.Attribute
}

// Defined reports whether this argument names a real position (not the
// None separator).
func (a Argument) Defined() bool {
	return a.Type != ArgNone
}

// HasSign reports whether this argument names a specific attribute rather
// than a whole element position.
func (a Argument) HasSign() bool {
	return a.Type == ArgElementSign || a.Type == ArgReferenceElementSign
}

// HasReference reports whether this argument is bound through an inlined
// reference rather than a direct element.
func (a Argument) HasReference() bool {
	return a.Type == ArgReferenceElement || a.Type == ArgReferenceElementSign
}

// RemoveSign returns a copy of a naming the same element position but
// without an attribute selector.
func (a Argument) RemoveSign() Argument {
	out := a
	switch a.Type {
	case ArgElementSign:
		out.Type = ArgElement
	case ArgReferenceElementSign:
		out.Type = ArgReferenceElement
	}
	out.Attribute = 0
	return out
}

// Inconsistent reports whether a and b name the same element position but
// carry different attribute selectors, which is a sign mismatch between a
// caller and a callee argument.
func (a Argument) Inconsistent(b Argument) bool {
	if a.RemoveSign() != b.RemoveSign() {
		return false
	}
	return a.HasSign() && b.HasSign() && a.Attribute != b.Attribute
}

// Print renders a stable, order-sensitive textual form used by variant
// deduplication.
func (a Argument) Print() string {
	switch a.Type {
	case ArgNone:
		return "_"
	case ArgElement:
		return fmt.Sprintf("e%d", a.Element)
	case ArgElementSign:
		return fmt.Sprintf("e%d.%d", a.Element, a.Attribute)
	case ArgReferenceElement:
		return fmt.Sprintf("r%d.e%d", a.Reference, a.Element)
	case ArgReferenceElementSign:
		return fmt.Sprintf("r%d.e%d.%d", a.Reference, a.Element, a.Attribute)
	default:
		return "?"
	}
}
