package config

import (
	"encoding/json"
	"sort"
	"sync"

	"github.com/samber/oops"

	"github.com/al-pacino/lspl/internal/attrs"
)

// SignType is the kind of vocabulary a word sign declares.
type SignType int

const (
	SignNone SignType = iota
	// SignMain is the distinguished part-of-speech-like sign every
	// annotation must set. There is exactly one per configuration, and it
	// is always assigned attrs.MainAttribute.
	SignMain
	// SignEnum is a closed, fixed vocabulary of value names.
	SignEnum
	// SignString is an open vocabulary: values are interned the first
	// time they are seen, by either a pattern condition or a loaded word.
	SignString
)

func (t SignType) String() string {
	switch t {
	case SignMain:
		return "main"
	case SignEnum:
		return "enum"
	case SignString:
		return "string"
	default:
		return "none"
	}
}

// WordSign is one declared attribute: its names (a sign may be referred to
// by more than one name in pattern text), its vocabulary, and whether it
// takes part in implicit agreement on the main attribute.
type WordSign struct {
	Consistent bool
	Type       SignType
	Names      []string
	Values     []string
}

// Config is a loaded, immutable-shape word-sign configuration. String-type
// signs still grow their Values/value-index at runtime as new values are
// interned, guarded by mu.
type Config struct {
	mu             sync.Mutex
	signs          []WordSign
	nameToAttr     map[string]attrs.Attribute
	valueIndex     []map[string]attrs.Value
	agreementBegin attrs.Attribute
}

type signSpec struct {
	Names      []string `json:"names"`
	Values     []string `json:"values,omitempty"`
	Type       string   `json:"type"`
	Consistent bool     `json:"consistent,omitempty"`
}

type documentSpec struct {
	WordSigns []signSpec `json:"word_signs"`
}

// Load validates data against the word_signs schema and builds a Config
// from it. Attribute ids are assigned in the order: the single main sign
// (always 0), then every non-consistent sign in document order, then every
// consistent sign in document order; AgreementBegin marks where the
// consistent run starts.
func Load(data []byte) (*Config, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, oops.In("config").Hint("invalid JSON").Wrap(err)
	}
	if err := validate(doc); err != nil {
		return nil, err
	}

	var spec documentSpec
	if err := json.Unmarshal(data, &spec); err != nil {
		return nil, oops.In("config").Hint("failed to decode word_signs document").Wrap(err)
	}

	var mains, notConsistent, consistent []signSpec
	for _, s := range spec.WordSigns {
		switch s.Type {
		case "main":
			mains = append(mains, s)
		case "enum", "string":
			if s.Consistent {
				consistent = append(consistent, s)
			} else {
				notConsistent = append(notConsistent, s)
			}
		}
	}
	if len(mains) != 1 {
		return nil, oops.In("config").Errorf("word_signs must declare exactly one main sign, found %d", len(mains))
	}

	ordered := append(append(mains, notConsistent...), consistent...)
	cfg := &Config{
		nameToAttr:     make(map[string]attrs.Attribute, len(ordered)),
		signs:          make([]WordSign, len(ordered)),
		valueIndex:     make([]map[string]attrs.Value, len(ordered)),
		agreementBegin: attrs.Attribute(1 + len(notConsistent)),
	}

	for i, s := range ordered {
		attribute := attrs.Attribute(i)
		sign := WordSign{Consistent: s.Consistent, Names: s.Names}
		switch s.Type {
		case "main":
			sign.Type = SignMain
		case "enum":
			sign.Type = SignEnum
		case "string":
			sign.Type = SignString
		}

		for _, name := range s.Names {
			if _, dup := cfg.nameToAttr[name]; dup {
				return nil, oops.In("config").Errorf("redefinition of word sign name %q", name)
			}
			cfg.nameToAttr[name] = attribute
		}

		switch sign.Type {
		case SignMain:
			sign.Values = sortedUnique(append([]string{""}, s.Values...))
			cfg.valueIndex[i] = indexOf(sign.Values)
		case SignEnum:
			sign.Values = sortedUnique(append([]string{""}, s.Values...))
			cfg.valueIndex[i] = indexOf(sign.Values)
		case SignString:
			sign.Values = []string{""}
			cfg.valueIndex[i] = map[string]attrs.Value{"": attrs.NullValue}
		}

		cfg.signs[i] = sign
	}

	return cfg, nil
}

func sortedUnique(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func indexOf(values []string) map[string]attrs.Value {
	idx := make(map[string]attrs.Value, len(values))
	for i, v := range values {
		idx[v] = attrs.Value(i)
	}
	return idx
}

// AttributeCount returns the number of declared signs.
func (c *Config) AttributeCount() int {
	return len(c.signs)
}

// AgreementBegin returns the attribute id where the consistent (fully
// agreement-eligible) run of signs begins.
func (c *Config) AgreementBegin() attrs.Attribute {
	return c.agreementBegin
}

// Sign returns the declared sign at attribute, or false if out of range.
func (c *Config) Sign(attribute attrs.Attribute) (WordSign, bool) {
	if int(attribute) >= len(c.signs) {
		return WordSign{}, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.signs[attribute], true
}

// Attribute resolves a sign name to its attribute id, satisfying
// internal/parser.Signs.
func (c *Config) Attribute(name string) (attrs.Attribute, bool) {
	a, ok := c.nameToAttr[name]
	return a, ok
}

// Value resolves name to a value under attribute, satisfying
// internal/parser.Signs. Enum and main signs look up a fixed vocabulary;
// string signs intern name on first use, so the value is shared between
// whatever pattern condition and whatever loaded word first mention it.
func (c *Config) Value(attribute attrs.Attribute, name string) (attrs.Value, bool) {
	if int(attribute) >= len(c.signs) {
		return 0, false
	}
	sign := c.signs[attribute]
	if sign.Type != SignString {
		c.mu.Lock()
		v, ok := c.valueIndex[attribute][name]
		c.mu.Unlock()
		return v, ok
	}
	return c.internString(attribute, name)
}

func (c *Config) internString(attribute attrs.Attribute, name string) (attrs.Value, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	idx := c.valueIndex[attribute]
	if v, ok := idx[name]; ok {
		return v, true
	}
	v := attrs.Value(len(idx))
	idx[name] = v
	c.signs[attribute].Values = append(c.signs[attribute].Values, name)
	return v, true
}
