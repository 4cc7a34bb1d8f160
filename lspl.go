// Package lspl ties the pattern language's pieces together: load a word
// sign configuration, parse pattern definitions against it, compile a
// chosen pattern to a state machine, load a text document, and run the
// machine over every word of the text.
package lspl

import (
	"fmt"

	"github.com/al-pacino/lspl/internal/compile"
	"github.com/al-pacino/lspl/internal/config"
	"github.com/al-pacino/lspl/internal/dictionary"
	"github.com/al-pacino/lspl/internal/diag"
	"github.com/al-pacino/lspl/internal/match"
	"github.com/al-pacino/lspl/internal/parser"
	"github.com/al-pacino/lspl/internal/pattern"
	"github.com/al-pacino/lspl/internal/text"
	"github.com/al-pacino/lspl/internal/textload"
)

// MaxVariants is the maxSize passed to Pattern.Build: the largest length,
// in words, of any linear variant a pattern expands to. The number of
// variants is not bounded.
const MaxVariants = 4096

// LoadConfig loads and validates a word-sign configuration document.
func LoadConfig(data []byte) (*config.Config, error) {
	return config.Load(data)
}

// ParsePatterns parses every pattern definition in src, resolved against
// signs. The returned diag.Processor carries every lexical, syntactic and
// semantic error encountered; callers should check HasErrors before using
// the registry.
func ParsePatterns(filename, src string, signs *config.Config) (*pattern.Patterns, *diag.Processor) {
	return parser.Parse(filename, src, signs)
}

// LoadText decodes a text document against signs.
func LoadText(filename string, data []byte, signs *config.Config) (*text.Text, error) {
	return textload.Load(filename, data, signs)
}

// LoadDictionary builds a dictionary index over phrases. A nil or empty
// phrase list is valid and matches nothing.
func LoadDictionary(phrases []string) (*dictionary.Index, error) {
	return dictionary.NewIndex(phrases)
}

// Compile expands pat into its bounded variant set and lowers it into a
// runnable state program.
func Compile(pat *pattern.Pattern) (compile.States, error) {
	variants, err := pat.Build(pattern.NewBuildContext(), MaxVariants)
	if err != nil {
		return nil, fmt.Errorf("lspl: expanding pattern %q: %w", pat.Name, err)
	}
	if len(variants) == 0 {
		return nil, fmt.Errorf("lspl: pattern %q expands to no variants", pat.Name)
	}
	states, err := compile.Compile(variants)
	if err != nil {
		return nil, fmt.Errorf("lspl: compiling pattern %q: %w", pat.Name, err)
	}
	return states, nil
}

// Run matches states against every word of txt, returning every span
// found, in the order their starting word was tried.
func Run(txt *text.Text, states compile.States, dict *dictionary.Index) []match.Span {
	ctx := match.NewContext(txt, states, dict)
	for i := 0; i < txt.Len(); i++ {
		ctx.Match(i)
	}
	return ctx.Spans
}
