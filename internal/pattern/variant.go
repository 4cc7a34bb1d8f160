package pattern

import (
	"fmt"
	"sort"
	"strings"
)

// PatternWord is one element of a Variant: either a bare surface regexp
// (Regexp != "", Argument is the ArgNone identity) or an argument position
// with restrictions and any conditions attached to it.
type PatternWord struct {
	Argument     Argument
	Regexp       string
	Restrictions SignRestrictions
	Conditions   []Condition
}

// IsRegexp reports whether this word is a bare regexp leaf.
func (w PatternWord) IsRegexp() bool {
	return w.Regexp != ""
}

// Print renders a stable, order-sensitive textual form used for
// deduplication.
func (w PatternWord) Print() string {
	var sb strings.Builder
	if w.IsRegexp() {
		fmt.Fprintf(&sb, "/%s/", w.Regexp)
		return sb.String()
	}
	sb.WriteString(w.Argument.Print())
	sb.WriteByte('[')
	sb.WriteString(w.Restrictions.Print())
	sb.WriteByte(']')
	for _, c := range w.Conditions {
		sb.WriteByte('{')
		sb.WriteString(c.Print())
		sb.WriteByte('}')
	}
	return sb.String()
}

// Variant is one fully-unrolled linear realization of a pattern.
type Variant []PatternWord

// Print concatenates the printed form of each word, position-separated, so
// that distinct variants never collide.
func (v Variant) Print() string {
	parts := make([]string, len(v))
	for i, w := range v {
		parts[i] = w.Print()
	}
	return strings.Join(parts, "|")
}

// Len returns the number of words in the variant.
func (v Variant) Len() int {
	return len(v)
}

// Concat returns a new variant formed by appending other after v.
func (v Variant) Concat(other Variant) Variant {
	out := make(Variant, 0, len(v)+len(other))
	out = append(out, v...)
	out = append(out, other...)
	return out
}

// Variants is an unordered (pre-dedup) or deduplicated (post-dedup) list of
// Variant.
type Variants []Variant

// Dedup sorts variants by their printed form and removes duplicates.
func Dedup(vs Variants) Variants {
	if len(vs) == 0 {
		return vs
	}
	type keyed struct {
		key string
		v   Variant
	}
	pairs := make([]keyed, len(vs))
	for i, v := range vs {
		pairs[i] = keyed{key: v.Print(), v: v}
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].key < pairs[j].key })

	out := make(Variants, 0, len(pairs))
	for i, p := range pairs {
		if i > 0 && p.key == pairs[i-1].key {
			continue
		}
		out = append(out, p.v)
	}
	return out
}

// Product computes the Cartesian product of a list of per-child Variants,
// discarding any combination whose total length exceeds maxSize. Each
// result is the concatenation of one variant from each child, in order.
func Product(children []Variants, maxSize int) Variants {
	if len(children) == 0 {
		return Variants{Variant{}}
	}
	var rec func(i int, acc Variant) Variants
	rec = func(i int, acc Variant) Variants {
		if i == len(children) {
			if acc.Len() > maxSize {
				return nil
			}
			return Variants{acc}
		}
		var out Variants
		for _, v := range children[i] {
			if acc.Len()+v.Len() > maxSize {
				continue
			}
			out = append(out, rec(i+1, acc.Concat(v))...)
		}
		return out
	}
	return rec(0, nil)
}
