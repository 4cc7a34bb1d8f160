package pattern

import (
	"fmt"
	"sort"
	"strings"

	"github.com/al-pacino/lspl/internal/attrs"
)

// SignRestriction is one not-yet-compiled clause of a PatternWord's
// restrictions: attribute, exclude flag, and a sorted, deduplicated set of
// acceptable (or excluded) values. It is the pattern-IR-level counterpart
// of attrs.Restriction, kept mutable and mergeable until compilation.
type SignRestriction struct {
	Attribute attrs.Attribute
	Exclude   bool
	Values    []attrs.Value
}

// SignRestrictions is a list of SignRestriction kept sorted by Attribute,
// with at most one clause per attribute.
type SignRestrictions []SignRestriction

// Add inserts one (attribute, exclude, value) constraint, merging into an
// existing clause for the same attribute if present. It is an error to add
// two clauses for the same attribute with different exclude flags.
func (s SignRestrictions) Add(attribute attrs.Attribute, exclude bool, value attrs.Value) (SignRestrictions, error) {
	for i := range s {
		if s[i].Attribute == attribute {
			if s[i].Exclude != exclude {
				return nil, fmt.Errorf("pattern: attribute %d restricted both with and without exclusion", attribute)
			}
			s[i].Values = addSortedValue(s[i].Values, value)
			return s, nil
		}
	}
	pos := sort.Search(len(s), func(i int) bool { return s[i].Attribute >= attribute })
	out := make(SignRestrictions, 0, len(s)+1)
	out = append(out, s[:pos]...)
	out = append(out, SignRestriction{Attribute: attribute, Exclude: exclude, Values: []attrs.Value{value}})
	out = append(out, s[pos:]...)
	return out, nil
}

func addSortedValue(values []attrs.Value, v attrs.Value) []attrs.Value {
	pos := sort.Search(len(values), func(i int) bool { return values[i] >= v })
	if pos < len(values) && values[pos] == v {
		return values
	}
	out := make([]attrs.Value, 0, len(values)+1)
	out = append(out, values[:pos]...)
	out = append(out, v)
	out = append(out, values[pos:]...)
	return out
}

// Merge combines s with other, used when inlining a Reference's own
// restrictions into the callee's produced words. Clauses for attributes
// that appear in only one side pass through
// unchanged; clauses present in both are intersected if their exclude flags
// agree, and rejected as inconsistent otherwise.
func (s SignRestrictions) Merge(other SignRestrictions) (SignRestrictions, error) {
	if len(other) == 0 {
		return s, nil
	}
	result := make(SignRestrictions, len(s))
	copy(result, s)
	for _, clause := range other {
		found := false
		for i := range result {
			if result[i].Attribute == clause.Attribute {
				found = true
				if result[i].Exclude != clause.Exclude {
					return nil, fmt.Errorf("pattern: reference restriction on attribute %d conflicts with inlined word's own restriction", clause.Attribute)
				}
				result[i].Values = intersectSortedValues(result[i].Values, clause.Values)
				break
			}
		}
		if !found {
			pos := sort.Search(len(result), func(i int) bool { return result[i].Attribute >= clause.Attribute })
			merged := make(SignRestrictions, 0, len(result)+1)
			merged = append(merged, result[:pos]...)
			merged = append(merged, clause)
			merged = append(merged, result[pos:]...)
			result = merged
		}
	}
	return result, nil
}

func intersectSortedValues(a, b []attrs.Value) []attrs.Value {
	var out []attrs.Value
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			i++
		case a[i] > b[j]:
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	return out
}

// Build finalizes s into a compiled attrs.Restriction.
func (s SignRestrictions) Build() (attrs.Restriction, error) {
	var b attrs.Builder
	for _, clause := range s {
		b.AddAttribute(clause.Attribute, clause.Exclude)
		for _, v := range clause.Values {
			b.AddValue(v)
		}
	}
	return b.Build()
}

// Print renders a stable textual form for variant deduplication.
func (s SignRestrictions) Print() string {
	var sb strings.Builder
	for _, clause := range s {
		if clause.Exclude {
			sb.WriteByte('!')
		}
		fmt.Fprintf(&sb, "%d:", clause.Attribute)
		for i, v := range clause.Values {
			if i > 0 {
				sb.WriteByte(',')
			}
			fmt.Fprintf(&sb, "%d", v)
		}
		sb.WriteByte(';')
	}
	return sb.String()
}
