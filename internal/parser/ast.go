package parser

import "github.com/al-pacino/lspl/internal/lexer"

// rawNode is an unresolved pattern-tree node: a word class or pattern name
// has not yet been told apart, and conditions still refer to names rather
// than resolved pattern.Argument values. resolve.go turns a rawNode into a
// pattern.Node once every pattern in the enclosing file is registered.
type rawNode interface {
	rawNode()
}

// extendedName is an identifier, optionally followed by a positive index
// suffix folded into the identifier text (e.g. "N1") and optionally
// followed by ".attribute".
type extendedName struct {
	Name    string
	Index   int // 0 means no index suffix
	SubName string
	Tok     lexer.Token
}

// Normalize returns the name this extendedName's element identity is keyed
// by: the declared name with its index suffix reattached, ignoring any
// attribute selector.
func (n extendedName) Normalize() string {
	if n.Index == 0 {
		return n.Name
	}
	return n.Name + itoa(n.Index)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	digits := [20]byte{}
	i := len(digits)
	for n > 0 {
		i--
		digits[i] = byte('0' + n%10)
		n /= 10
	}
	return string(digits[i:])
}

type rawRegexp struct {
	Expr string
}

func (rawRegexp) rawNode() {}

// rawWordCondition is one clause of a word's `<...>` restriction list:
// an optional explicit attribute name with (in)equality, and one or more
// OR'd value names.
type rawWordCondition struct {
	HasAttribute bool
	Attribute    string
	AttributeTok lexer.Token
	Exclude      bool
	Values       []lexer.Token // identifier tokens naming attribute values
}

type rawWord struct {
	Name       extendedName
	Conditions []rawWordCondition
}

func (rawWord) rawNode() {}

// rawElements is a run of consecutive elements with no transposition
// operator between them.
type rawElements struct {
	Children []rawNode
}

func (rawElements) rawNode() {}

// rawTransposition is one or more rawElements groups joined by `~`: any
// permutation reachable by adjacent swaps of the groups is accepted.
type rawTransposition struct {
	Children []rawNode
}

func (rawTransposition) rawNode() {}

// rawRepeating is `{ ... }`, `{ ... }<min,max>` or `[ ... ]` repetition.
type rawRepeating struct {
	Child    rawNode
	Optional bool // `[ ... ]`: exactly Min=0, Max=1
	HasMin   bool
	Min      int
	HasMax   bool
	Max      int
}

func (rawRepeating) rawNode() {}

// rawAlternatives is one or more alternatives joined by `|`.
type rawAlternatives struct {
	Children []rawNode
}

func (rawAlternatives) rawNode() {}

// rawAlternative wraps a node with its `<< ... >>` conditions.
type rawAlternative struct {
	Child      rawNode
	Conditions []rawAltCondition
}

func (rawAlternative) rawNode() {}

// rawAltCondition is one inline condition inside `<< ... >>`: either a
// chain of names compared with `=`/`==`, or a dictionary lookup.
type rawAltCondition struct {
	IsDictionary bool

	// matching condition
	Names        []extendedName
	Strong       bool
	Inconsistent bool // both `=` and `==` used in the same chain

	// dictionary condition
	Dictionary extendedName
	Groups     [][]extendedName
}

// rawDefinition is one parsed but unresolved pattern definition.
type rawDefinition struct {
	File         string
	Line         int
	Text         string
	NameTok      lexer.Token
	Name         string
	Arguments    []extendedName
	Alternatives rawNode
}
