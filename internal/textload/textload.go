// Package textload decodes a JSON text document — an ordered list of
// words, each with one or more candidate morphological annotations — into
// an internal/text.Text, resolving every annotation's attribute and value
// names against a loaded configuration.
package textload

import (
	"encoding/json"

	"github.com/samber/oops"

	"github.com/al-pacino/lspl/internal/attrs"
	"github.com/al-pacino/lspl/internal/text"
)

// Signs resolves sign and value names against a loaded configuration; it
// is satisfied by *config.Config.
type Signs interface {
	Attribute(name string) (attrs.Attribute, bool)
	Value(attribute attrs.Attribute, name string) (attrs.Value, bool)
	AttributeCount() int
	AgreementBegin() attrs.Attribute
}

// Load decodes data as a text document and resolves it against signs. An
// annotation key that names an attribute signs does not know, or a value
// signs does not recognize for an enum attribute, is silently dropped
// rather than rejected, matching the permissive behavior of the loader
// this was ported from: stray annotation keys are common when a text was
// produced by a tagger with a richer sign set than the one configured
// here.
func Load(filename string, data []byte, signs Signs) (*text.Text, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, oops.In("textload").With("file", filename).Hint("invalid JSON").Wrap(err)
	}
	if err := validate(doc); err != nil {
		return nil, oops.In("textload").With("file", filename).Wrap(err)
	}

	var spec documentSpec
	if err := json.Unmarshal(data, &spec); err != nil {
		return nil, oops.In("textload").With("file", filename).Hint("failed to decode text document").Wrap(err)
	}

	words := make([]text.Word, 0, len(spec.Text))
	for wi, ws := range spec.Text {
		annotations := make([]attrs.Annotation, 0, len(ws.Annotations))
		for ai, raw := range ws.Annotations {
			annotation := attrs.NewAnnotation(signs.AttributeCount())
			for name, value := range raw {
				attribute, ok := signs.Attribute(name)
				if !ok {
					continue
				}
				resolved, ok := signs.Value(attribute, value)
				if !ok {
					continue
				}
				if annotation.Get(attribute) != attrs.NullValue {
					return nil, oops.In("textload").With("file", filename, "word", wi, "annotation", ai).
						Errorf("redefinition of attribute %q", name)
				}
				annotation.Set(attribute, resolved)
			}
			annotations = append(annotations, annotation)
		}

		word, err := text.NewWord(ws.Word, annotations)
		if err != nil {
			return nil, oops.In("textload").With("file", filename, "word", wi).Wrap(err)
		}
		words = append(words, word)
	}

	return text.NewText(words, signs.AttributeCount(), signs.AgreementBegin()), nil
}
