package text

import "sort"

// AnnotationIndices is a sorted set of annotation indices. A Word has at
// most 255 annotations, so a plain sorted []uint8 slice is the whole
// representation, and set operations are linear merges.
type AnnotationIndices []uint8

// NewAnnotationIndices returns the set {0, 1, …, n-1}.
func NewAnnotationIndices(n int) AnnotationIndices {
	out := make(AnnotationIndices, n)
	for i := range out {
		out[i] = uint8(i)
	}
	return out
}

// Has reports whether i is a member.
func (s AnnotationIndices) Has(i uint8) bool {
	_, found := s.search(i)
	return found
}

// Len returns the number of members.
func (s AnnotationIndices) Len() int {
	return len(s)
}

func (s AnnotationIndices) search(i uint8) (int, bool) {
	pos := sort.Search(len(s), func(j int) bool { return s[j] >= i })
	return pos, pos < len(s) && s[pos] == i
}

// Add returns a new set with i inserted, preserving sorted order. Adding an
// already-present member is a no-op.
func (s AnnotationIndices) Add(i uint8) AnnotationIndices {
	pos, found := s.search(i)
	if found {
		return s
	}
	out := make(AnnotationIndices, 0, len(s)+1)
	out = append(out, s[:pos]...)
	out = append(out, i)
	out = append(out, s[pos:]...)
	return out
}

// Remove returns a new set with i removed, if present.
func (s AnnotationIndices) Remove(i uint8) AnnotationIndices {
	pos, found := s.search(i)
	if !found {
		return s
	}
	out := make(AnnotationIndices, 0, len(s)-1)
	out = append(out, s[:pos]...)
	out = append(out, s[pos+1:]...)
	return out
}

// Union returns the sorted union of a and b in linear time.
func Union(a, b AnnotationIndices) AnnotationIndices {
	out := make(AnnotationIndices, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			out = append(out, a[i])
			i++
		case a[i] > b[j]:
			out = append(out, b[j])
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	return out
}

// Intersection returns the sorted intersection of a and b in linear time.
func Intersection(a, b AnnotationIndices) AnnotationIndices {
	var out AnnotationIndices
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

// Difference returns the sorted set of members of a that are not in b.
func Difference(a, b AnnotationIndices) AnnotationIndices {
	var out AnnotationIndices
	i, j := 0, 0
	for i < len(a) {
		if j >= len(b) || a[i] < b[j] {
			out = append(out, a[i])
			i++
		} else if a[i] > b[j] {
			j++
		} else {
			i++
			j++
		}
	}
	return out
}
