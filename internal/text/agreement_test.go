package text

import (
	"testing"

	"github.com/al-pacino/lspl/internal/attrs"
)

// annotation builds a 2-attribute annotation: main and num, matching the
// config described by spec scenario 1 (one main attribute, one consistent
// "num" attribute at agreementBegin=1).
func annotation(main, num attrs.Value) attrs.Annotation {
	a := attrs.NewAnnotation(2)
	a.Set(0, main)
	a.Set(1, num)
	return a
}

func TestAgreeOnSpecificAttribute(t *testing.T) {
	tests := []struct {
		name string
		a, b attrs.Annotation
		want Power
	}{
		{"equal values", annotation(1, 5), annotation(2, 5), Strong},
		{"one wildcard", annotation(1, 5), annotation(2, 0), Weak},
		{"both wildcard", annotation(1, 0), annotation(2, 0), Strong},
		{"real mismatch", annotation(1, 5), annotation(2, 6), None},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Agree(tc.a, tc.b, attrs.Attribute(1), 1, 2); got != tc.want {
				t.Fatalf("Agree = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestAgreeOnMainAttributeScansAgreementRange(t *testing.T) {
	// agreementBegin=1, attributeCount=2: scanning main agreement means
	// scanning attribute 1 only (the consistent attribute), ignoring the
	// main value itself.
	a := annotation(1, 5)
	b := annotation(2, 5) // different main value, same num
	if got := Agree(a, b, attrs.MainAttribute, 1, 2); got != Strong {
		t.Fatalf("Agree(main) = %v, want Strong (agreement range excludes main slot)", got)
	}

	c := annotation(1, 5)
	d := annotation(2, 6)
	if got := Agree(c, d, attrs.MainAttribute, 1, 2); got != None {
		t.Fatalf("Agree(main) = %v, want None", got)
	}
}

func newTestText(words []Word) *Text {
	return NewText(words, 2, 1)
}

func TestAgreementCacheStrongAndWeak(t *testing.T) {
	w1, err := NewWord("cats", []attrs.Annotation{annotation(1, 5)})
	if err != nil {
		t.Fatal(err)
	}
	w2, err := NewWord("run", []attrs.Annotation{annotation(2, 5), annotation(2, 0)})
	if err != nil {
		t.Fatal(err)
	}
	txt := newTestText([]Word{w1, w2})

	strong, weak := txt.Agreement(0, 1, attrs.Attribute(1))
	if strong.First.Len() != 1 || strong.Second.Len() != 1 {
		t.Fatalf("expected exactly one strong match, got %v", strong)
	}
	if weak.First.Len() != 1 || weak.Second.Len() != 2 {
		t.Fatalf("expected weak pair to include both strong and wildcard matches, got %v", weak)
	}
}

func TestAgreementCacheIsIdempotent(t *testing.T) {
	w1, _ := NewWord("a", []attrs.Annotation{annotation(1, 5)})
	w2, _ := NewWord("b", []attrs.Annotation{annotation(2, 5)})
	txt := newTestText([]Word{w1, w2})

	s1, w1p := txt.Agreement(0, 1, attrs.Attribute(1))
	s2, w2p := txt.Agreement(0, 1, attrs.Attribute(1))
	if s1.First.Len() != s2.First.Len() || w1p.First.Len() != w2p.First.Len() {
		t.Fatal("repeated Agreement query returned different shaped results")
	}
}
