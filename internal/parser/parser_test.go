package parser

import (
	"testing"

	"github.com/al-pacino/lspl/internal/attrs"
	"github.com/al-pacino/lspl/internal/diag"
	"github.com/al-pacino/lspl/internal/pattern"
)

// fakeSigns is a minimal Signs implementation for tests: "gender" is
// attribute 1 with values "masc"=1, "fem"=2; "pos" is attribute 2 with
// value "noun"=1.
type fakeSigns struct{}

func (fakeSigns) Attribute(name string) (attrs.Attribute, bool) {
	switch name {
	case "gender":
		return 1, true
	case "pos":
		return 2, true
	default:
		return 0, false
	}
}

func (fakeSigns) Value(attribute attrs.Attribute, name string) (attrs.Value, bool) {
	switch {
	case attribute == 1 && name == "masc":
		return 1, true
	case attribute == 1 && name == "fem":
		return 2, true
	case attribute == 2 && name == "noun":
		return 1, true
	default:
		return 0, false
	}
}

func parse(t *testing.T, src string) (*pattern.Patterns, *diag.Processor) {
	t.Helper()
	return Parse("test.lspl", src, fakeSigns{})
}

func TestParseSimpleSequence(t *testing.T) {
	registry, diags := parse(t, "Phrase = N V")
	if diags.HasErrors() {
		t.Fatalf("unexpected errors: %v", diags.Errors())
	}
	p, err := registry.Resolve("Phrase")
	if err != nil {
		t.Fatal(err)
	}
	seq, ok := p.Root.(*pattern.SequenceNode)
	if !ok {
		t.Fatalf("root is %T, want *SequenceNode", p.Root)
	}
	if len(seq.Children) != 2 {
		t.Fatalf("got %d children, want 2", len(seq.Children))
	}
	for i, want := range []pattern.ElementID{0, 1} {
		el, ok := seq.Children[i].(*pattern.ElementNode)
		if !ok {
			t.Fatalf("child %d is %T, want *ElementNode", i, seq.Children[i])
		}
		if el.Element != want {
			t.Errorf("child %d element = %d, want %d", i, el.Element, want)
		}
	}
}

func TestParseRegexpElement(t *testing.T) {
	registry, diags := parse(t, `P = "cat.*"`)
	if diags.HasErrors() {
		t.Fatalf("unexpected errors: %v", diags.Errors())
	}
	p, _ := registry.Resolve("P")
	re, ok := p.Root.(*pattern.RegexpNode)
	if !ok || re.Expr != "cat.*" {
		t.Fatalf("got %+v, want RegexpNode(cat.*)", p.Root)
	}
}

func TestParseOptionalAndRepeating(t *testing.T) {
	registry, diags := parse(t, "P = [A] {B}<1,3>")
	if diags.HasErrors() {
		t.Fatalf("unexpected errors: %v", diags.Errors())
	}
	p, _ := registry.Resolve("P")
	seq, ok := p.Root.(*pattern.SequenceNode)
	if !ok || len(seq.Children) != 2 {
		t.Fatalf("got %+v", p.Root)
	}
	opt, ok := seq.Children[0].(*pattern.RepeatingNode)
	if !ok || opt.Min != 0 || opt.Max != 1 {
		t.Fatalf("optional = %+v, want Min=0 Max=1", seq.Children[0])
	}
	rep, ok := seq.Children[1].(*pattern.RepeatingNode)
	if !ok || rep.Min != 1 || rep.Max != 3 {
		t.Fatalf("repeating = %+v, want Min=1 Max=3", seq.Children[1])
	}
}

func TestParseAlternativesAndTransposition(t *testing.T) {
	registry, diags := parse(t, "P = A ~ B | C")
	if diags.HasErrors() {
		t.Fatalf("unexpected errors: %v", diags.Errors())
	}
	p, _ := registry.Resolve("P")
	alts, ok := p.Root.(*pattern.AlternativesNode)
	if !ok || len(alts.Children) != 2 {
		t.Fatalf("got %+v", p.Root)
	}
	seq, ok := alts.Children[0].(*pattern.SequenceNode)
	if !ok || !seq.Transposition || len(seq.Children) != 2 {
		t.Fatalf("first alternative = %+v, want a 2-child transposition", alts.Children[0])
	}
	if _, ok := alts.Children[1].(*pattern.ElementNode); !ok {
		t.Fatalf("second alternative = %+v, want *ElementNode", alts.Children[1])
	}
}

func TestParseWordConditionWithExplicitAttribute(t *testing.T) {
	registry, diags := parse(t, "P = N<gender=masc|fem>")
	if diags.HasErrors() {
		t.Fatalf("unexpected errors: %v", diags.Errors())
	}
	p, _ := registry.Resolve("P")
	el, ok := p.Root.(*pattern.ElementNode)
	if !ok {
		t.Fatalf("got %T", p.Root)
	}
	if len(el.Restrictions) != 1 || el.Restrictions[0].Attribute != 1 || len(el.Restrictions[0].Values) != 2 {
		t.Fatalf("restrictions = %+v", el.Restrictions)
	}
}

func TestParseUnknownAttributeReportsSemanticError(t *testing.T) {
	_, diags := parse(t, "P = N<color=red>")
	if !diags.HasErrors() {
		t.Fatal("expected a semantic error for unknown attribute")
	}
	if diags.Errors()[0].Severity != diag.Semantic {
		t.Fatalf("got severity %v, want Semantic", diags.Errors()[0].Severity)
	}
}

func TestParsePatternArgumentsAndReference(t *testing.T) {
	registry, diags := parse(t, "Noun(N) = N")
	if diags.HasErrors() {
		t.Fatalf("unexpected errors: %v", diags.Errors())
	}
	registry2, diags2 := Parse("test.lspl", "Noun(N) = N\nPhrase = Noun V", fakeSigns{})
	_ = registry
	if diags2.HasErrors() {
		t.Fatalf("unexpected errors: %v", diags2.Errors())
	}
	phrase, err := registry2.Resolve("Phrase")
	if err != nil {
		t.Fatal(err)
	}
	seq, ok := phrase.Root.(*pattern.SequenceNode)
	if !ok || len(seq.Children) != 2 {
		t.Fatalf("got %+v", phrase.Root)
	}
	if _, ok := seq.Children[0].(*pattern.ReferenceNode); !ok {
		t.Fatalf("first child = %T, want *ReferenceNode", seq.Children[0])
	}
}

func TestParseMutualForwardReference(t *testing.T) {
	_, diags := Parse("test.lspl", "A = B\nB = N", fakeSigns{})
	if diags.HasErrors() {
		t.Fatalf("unexpected errors for forward reference: %v", diags.Errors())
	}
}

func TestParseAgreementCondition(t *testing.T) {
	registry, diags := parse(t, "P = N1 V1 << N1.gender == V1.gender >>")
	if diags.HasErrors() {
		t.Fatalf("unexpected errors: %v", diags.Errors())
	}
	p, _ := registry.Resolve("P")
	alt, ok := p.Root.(*pattern.AlternativeNode)
	if !ok {
		t.Fatalf("root = %T, want *AlternativeNode carrying the condition", p.Root)
	}
	if _, ok := alt.Child.(*pattern.SequenceNode); !ok {
		t.Fatalf("alternative child = %T, want *SequenceNode", alt.Child)
	}
	if len(alt.Conditions) != 1 {
		t.Fatalf("got %d conditions, want 1", len(alt.Conditions))
	}
	cond := alt.Conditions[0]
	if cond.Kind != pattern.Agreement || !cond.Strong || cond.Attribute != 1 {
		t.Fatalf("condition = %+v", cond)
	}
}

func TestParseDictionaryCondition(t *testing.T) {
	registry, diags := parse(t, "P = N1 V1 << Sample(N1, V1) >>")
	if diags.HasErrors() {
		t.Fatalf("unexpected errors: %v", diags.Errors())
	}
	p, _ := registry.Resolve("P")
	alt, ok := p.Root.(*pattern.AlternativeNode)
	if !ok || len(alt.Conditions) != 1 {
		t.Fatalf("got %+v", p.Root)
	}
	cond := alt.Conditions[0]
	if cond.Kind != pattern.Dictionary || cond.Name != "Sample" {
		t.Fatalf("condition = %+v", cond)
	}
	// Two groups, N1 and V1, joined by one None separator.
	if len(cond.Arguments) != 3 || !cond.Arguments[0].Defined() || cond.Arguments[1].Defined() || !cond.Arguments[2].Defined() {
		t.Fatalf("arguments = %+v", cond.Arguments)
	}
}

func TestParseContinuationLine(t *testing.T) {
	registry, diags := parse(t, "P = N\n   V")
	if diags.HasErrors() {
		t.Fatalf("unexpected errors: %v", diags.Errors())
	}
	p, err := registry.Resolve("P")
	if err != nil {
		t.Fatal(err)
	}
	seq, ok := p.Root.(*pattern.SequenceNode)
	if !ok || len(seq.Children) != 2 {
		t.Fatalf("got %+v, want a 2-element sequence spanning both lines", p.Root)
	}
}

func TestParseMissingEqualSignIsSyntaxError(t *testing.T) {
	_, diags := parse(t, "P N")
	if !diags.HasErrors() {
		t.Fatal("expected a syntax error for missing `=`")
	}
	if diags.Errors()[0].Severity != diag.Syntactic {
		t.Fatalf("got severity %v, want Syntactic", diags.Errors()[0].Severity)
	}
}

func TestParseCommentOnlyLineIsSkipped(t *testing.T) {
	registry, diags := parse(t, "; just a comment\nP = N")
	if diags.HasErrors() {
		t.Fatalf("unexpected errors: %v", diags.Errors())
	}
	if _, err := registry.Resolve("P"); err != nil {
		t.Fatal(err)
	}
}
