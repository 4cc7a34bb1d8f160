package pattern

import (
	"fmt"
	"strings"

	"github.com/al-pacino/lspl/internal/attrs"
)

// ConditionKind tags which inline condition form a Condition represents.
type ConditionKind int

const (
	// Agreement requires all listed argument positions to pairwise agree
	// under Attribute with at least the stated power.
	Agreement ConditionKind = iota
	// Dictionary groups arguments (None-separated) into candidate phrases
	// looked up by Name.
	Dictionary
)

// Condition is one inline pattern condition, attached to an Alternative
// node and, after variant expansion, to the PatternWord at the condition's
// last referenced position.
type Condition struct {
	Kind      ConditionKind
	Strong    bool            // Agreement only
	Attribute attrs.Attribute // Agreement only
	Name      string          // Dictionary only
	Arguments []Argument
}

// SelfAgreement reports whether this is a single-argument agreement
// condition, which compiles to a strong AgreementAction regardless of the
// condition's own Strong flag.
func (c Condition) SelfAgreement() bool {
	return c.Kind == Agreement && len(c.Arguments) == 1
}

// Print renders a stable textual form for variant deduplication.
func (c Condition) Print() string {
	var sb strings.Builder
	switch c.Kind {
	case Agreement:
		if c.Strong {
			sb.WriteString("agree==")
		} else {
			sb.WriteString("agree=")
		}
		fmt.Fprintf(&sb, "%d(", c.Attribute)
	case Dictionary:
		fmt.Fprintf(&sb, "dict:%s(", c.Name)
	}
	for i, a := range c.Arguments {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(a.Print())
	}
	sb.WriteByte(')')
	return sb.String()
}
