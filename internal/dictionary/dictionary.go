// Package dictionary resolves candidate phrases against a configured list
// of known dictionary entries, backed by an Aho-Corasick automaton so a
// single pass can check membership regardless of how many phrases are
// loaded.
package dictionary

import (
	"fmt"

	"github.com/coregx/ahocorasick"
)

// Index answers membership and substring queries for a fixed set of
// phrases.
type Index struct {
	automaton *ahocorasick.Automaton
}

// NewIndex builds an Index over phrases. An empty list is valid and matches
// nothing.
func NewIndex(phrases []string) (*Index, error) {
	seen := make(map[string]bool, len(phrases))
	builder := ahocorasick.NewBuilder()
	for _, p := range phrases {
		if seen[p] {
			continue
		}
		seen[p] = true
		builder.AddPattern([]byte(p))
	}
	auto, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("dictionary: building automaton: %w", err)
	}
	return &Index{automaton: auto}, nil
}

// FindPhrases reports every loaded phrase occurring anywhere within text,
// using the Aho-Corasick automaton for a single linear pass regardless of
// dictionary size.
func (idx *Index) FindPhrases(text string) []string {
	if idx == nil {
		return nil
	}
	matches := idx.automaton.MatchString(text)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.Pattern)
	}
	return out
}
