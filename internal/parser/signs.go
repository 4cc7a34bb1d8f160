package parser

import "github.com/al-pacino/lspl/internal/attrs"

// Signs resolves the attribute and enum-value names a pattern source file
// can reference by identifier, as declared by a loaded word-signs
// configuration.
type Signs interface {
	// Attribute looks up an attribute by its configured name.
	Attribute(name string) (attrs.Attribute, bool)
	// Value looks up an enum value of attribute by its configured name.
	Value(attribute attrs.Attribute, name string) (attrs.Value, bool)
}
