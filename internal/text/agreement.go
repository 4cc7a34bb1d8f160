package text

import "github.com/al-pacino/lspl/internal/attrs"

// Power is the strength with which two annotations agree on an attribute.
type Power int

const (
	// None means at least one non-wildcard mismatch was found.
	None Power = iota
	// Weak means every mismatch was resolved by a wildcard (null) value on
	// at least one side.
	Weak
	// Strong means every scanned value was literally equal.
	Strong
)

func (p Power) String() string {
	switch p {
	case None:
		return "none"
	case Weak:
		return "weak"
	case Strong:
		return "strong"
	default:
		return "unknown"
	}
}

// Agree computes the agreement power of a and b on attribute, scanning
// [attribute, attribute] unless attribute is the main attribute, in which
// case the scanned range is [agreementBegin, attributeCount).
//
// attrs.NullValue doubles as the wildcard here: an unset value and an
// explicit "agrees with anything" both read as NullValue, unlike the
// original's separate ConformAny marker. No sign type in this port ever
// produces a real value of 0 (every vocabulary reserves that slot), so the
// two meanings never collide in practice.
func Agree(a, b attrs.Annotation, attribute attrs.Attribute, agreementBegin attrs.Attribute, attributeCount int) Power {
	begin, end := int(attribute), int(attribute)+1
	if attribute == attrs.MainAttribute {
		begin, end = int(agreementBegin), attributeCount
	}

	allEqual := true
	for pos := begin; pos < end; pos++ {
		av := a.Get(attrs.Attribute(pos))
		bv := b.Get(attrs.Attribute(pos))
		if av == bv {
			continue
		}
		allEqual = false
		if av != attrs.NullValue && bv != attrs.NullValue {
			return None
		}
	}
	if allEqual {
		return Strong
	}
	return Weak
}

// cacheKey identifies one (word1, word2, attribute) agreement query.
type cacheKey struct {
	W1, W2    int
	Attribute attrs.Attribute
}

// Pair is a pair of annotation index sets, one for each word of a query:
// indices in w1 that participate, and the corresponding indices in w2.
type Pair struct {
	First, Second AnnotationIndices
}

// cacheEntry is what a cacheKey lazily resolves to: the strong-agreement
// pair and the weak-agreement pair. A Strong result is recorded into both
// the strong and the weak pair, since strong agreement implies weak
// agreement.
type cacheEntry struct {
	Strong Pair
	Weak   Pair
}

// Agreement returns the (strong, weak) index pairs for the query
// (w1, w2, attribute), computing and caching them on first lookup. Repeated
// queries with identical arguments return identical results.
func (t *Text) Agreement(w1, w2 int, attribute attrs.Attribute) (strong, weak Pair) {
	key := cacheKey{W1: w1, W2: w2, Attribute: attribute}
	if entry, ok := t.cache[key]; ok {
		return entry.Strong, entry.Weak
	}

	word1 := t.Words[w1]
	word2 := t.Words[w2]

	var entry cacheEntry
	for _, i1 := range word1.AnnotationIndices() {
		for _, i2 := range word2.AnnotationIndices() {
			power := Agree(word1.Annotations[i1], word2.Annotations[i2], attribute, t.AgreementBegin, t.AttributeCount)
			switch power {
			case Strong:
				entry.Strong.First = entry.Strong.First.Add(i1)
				entry.Strong.Second = entry.Strong.Second.Add(i2)
				fallthrough
			case Weak:
				entry.Weak.First = entry.Weak.First.Add(i1)
				entry.Weak.Second = entry.Weak.Second.Add(i2)
			}
		}
	}

	t.cache[key] = entry
	return entry.Strong, entry.Weak
}
