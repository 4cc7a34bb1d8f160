// Package text implements the annotated-text model: words carrying
// multiple morphological annotations, the text as an ordered sequence of
// words, and the lazily-filled cross-word agreement cache.
package text

import (
	"fmt"

	"github.com/al-pacino/lspl/internal/attrs"
)

// MaxAnnotations is the per-word annotation count limit (spec: capacity
// error if exceeded).
const MaxAnnotations = 255

// Word is a surface string plus its non-empty, ordered list of candidate
// morphological annotations.
type Word struct {
	Surface     string
	Annotations []attrs.Annotation
}

// NewWord validates and constructs a Word. Every annotation must set the
// main attribute (attrs.MainAttribute).
func NewWord(surface string, annotations []attrs.Annotation) (Word, error) {
	if len(annotations) == 0 {
		return Word{}, fmt.Errorf("text: word %q has no annotations", surface)
	}
	if len(annotations) > MaxAnnotations {
		return Word{}, fmt.Errorf("text: word %q has %d annotations, limit %d", surface, len(annotations), MaxAnnotations)
	}
	for i, a := range annotations {
		if a.Get(attrs.MainAttribute) == attrs.NullValue {
			return Word{}, fmt.Errorf("text: word %q annotation %d has no main attribute value", surface, i)
		}
	}
	return Word{Surface: surface, Annotations: annotations}, nil
}

// AnnotationIndices returns the full index set {0, …, len(Annotations)-1}.
func (w Word) AnnotationIndices() AnnotationIndices {
	return NewAnnotationIndices(len(w.Annotations))
}

// Text is an ordered sequence of words, together with the attribute schema
// parameters (attribute count and agreementBegin) needed to compute
// agreement power between annotations.
type Text struct {
	Words          []Word
	AttributeCount int
	AgreementBegin attrs.Attribute

	cache map[cacheKey]cacheEntry
}

// NewText constructs a Text over words, recording the schema parameters
// agreement computation needs.
func NewText(words []Word, attributeCount int, agreementBegin attrs.Attribute) *Text {
	return &Text{Words: words, AttributeCount: attributeCount, AgreementBegin: agreementBegin, cache: make(map[cacheKey]cacheEntry)}
}

// Len returns the number of words.
func (t *Text) Len() int {
	return len(t.Words)
}
