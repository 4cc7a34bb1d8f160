package match

import (
	"sort"

	"github.com/al-pacino/lspl/internal/attrs"
	"github.com/al-pacino/lspl/internal/compile"
	"github.com/al-pacino/lspl/internal/text"
)

// runAction executes a on the current frame stack, reporting whether the
// branch may continue.
func (c *Context) runAction(a compile.Action) bool {
	switch a.Kind {
	case compile.ActionEmit:
		c.emit()
		return true
	case compile.ActionAgreement:
		return c.runAgreement(a)
	case compile.ActionDictionary:
		return c.runDictionary(a)
	default:
		return true
	}
}

func (c *Context) emit() {
	shift := len(c.data) - 1
	c.Spans = append(c.Spans, Span{Start: c.initialWord, End: c.initialWord + shift})
}

// runAgreement enforces a.Attribute agreement between the current word and
// each position named by a.Offsets (each a positive distance back from the
// current word). An offset landing before the start of the match (only
// possible for a self-agreement condition lowered at the first word, which
// is always anchored to offset 1) has no second word to disagree with and
// is treated as vacuously satisfied; every other offset must hold or the
// whole action fails.
func (c *Context) runAgreement(a compile.Action) bool {
	shift := len(c.data) - 1
	for _, d := range a.Offsets {
		w1 := shift - d
		if w1 < 0 {
			continue
		}
		if !c.agree(w1, shift, a.Attribute, a.Strong) {
			return false
		}
	}
	return true
}

// agree tests agreement of positions w1 and w2 under attribute, classifying
// every pair of surviving annotation indices and recording the resulting
// edges in the agreement graph. Any index that ends up in no agreeing pair
// is removed from its word, which can cascade through previously recorded
// edges; the action fails if either word's index set would become empty.
func (c *Context) agree(w1, w2 int, attribute attrs.Attribute, strong bool) bool {
	f1 := c.getForEdit(w1)
	f2 := c.getForEdit(w2)
	indices1 := append(text.AnnotationIndices{}, f1.indices...)
	indices2 := append(text.AnnotationIndices{}, f2.indices...)

	word1 := c.Text.Words[c.initialWord+w1]
	word2 := c.Text.Words[c.initialWord+w2]

	unused1 := indices1
	unused2 := indices2
	found := false
	for _, i1 := range indices1 {
		for _, i2 := range indices2 {
			power := text.Agree(word1.Annotations[i1], word2.Annotations[i2], attribute, c.Text.AgreementBegin, c.Text.AttributeCount)
			if strong && power != text.Strong {
				continue
			}
			if !strong && power == text.None {
				continue
			}
			c.addEdge(w1, i1, w2, i2, attribute)
			unused1 = unused1.Remove(i1)
			unused2 = unused2.Remove(i2)
			found = true
		}
	}
	if !found {
		return false
	}
	for _, i := range unused1 {
		if !c.removeVertex(w1, i) {
			return false
		}
	}
	for _, i := range unused2 {
		if !c.removeVertex(w2, i) {
			return false
		}
	}
	return true
}

// runDictionary resolves the phrase spanning a.Offsets and records it as a
// DictionaryHit for diagnostics. A dictionary condition never gates a
// match: it always succeeds, with or without a configured dictionary.
func (c *Context) runDictionary(a compile.Action) bool {
	shift := len(c.data) - 1
	offsets := append([]int{}, a.Offsets...)
	sort.Sort(sort.Reverse(sort.IntSlice(offsets)))
	words := make([]string, 0, len(offsets))
	for _, d := range offsets {
		pos := shift - d
		if pos < 0 {
			return true
		}
		words = append(words, c.Text.Words[c.initialWord+pos].Surface)
	}
	if len(words) == 0 {
		return true
	}
	phrase := words[0]
	for _, w := range words[1:] {
		phrase += " " + w
	}
	c.recordDictionaryHit(phrase)
	return true
}

// recordDictionaryHit looks phrase up through the dictionary's Aho-Corasick
// automaton (FindPhrases), not a plain membership map, so the configured
// automaton is consulted on this reachable path rather than only in tests.
func (c *Context) recordDictionaryHit(phrase string) {
	hit := DictionaryHit{Phrase: phrase}
	if c.Dictionary != nil {
		for _, found := range c.Dictionary.FindPhrases(phrase) {
			if found == phrase {
				hit.Known = true
				break
			}
		}
	}
	c.DictionaryHits = append(c.DictionaryHits, hit)
}
