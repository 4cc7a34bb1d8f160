package match

import (
	"sort"

	"github.com/al-pacino/lspl/internal/attrs"
)

// edgeRecord is one directed half of a bidirectional agreement-graph edge:
// this position's annotation index i1 agrees with word2's annotation index
// i2 under attribute. Records within one frame's edge list are kept sorted
// lexicographically by (index1, word2, attribute, index2), so testing
// whether index1 has another edge under the same (word2, attribute) is a
// constant-time check of the immediate neighbors.
type edgeRecord struct {
	index1    uint8
	word2     int
	attribute attrs.Attribute
	index2    uint8
}

func lessEdge(a, b edgeRecord) bool {
	if a.index1 != b.index1 {
		return a.index1 < b.index1
	}
	if a.word2 != b.word2 {
		return a.word2 < b.word2
	}
	if a.attribute != b.attribute {
		return a.attribute < b.attribute
	}
	return a.index2 < b.index2
}

func insertEdge(edges []edgeRecord, e edgeRecord) []edgeRecord {
	pos := sort.Search(len(edges), func(i int) bool { return !lessEdge(edges[i], e) })
	if pos < len(edges) && edges[pos] == e {
		return edges
	}
	out := make([]edgeRecord, 0, len(edges)+1)
	out = append(out, edges[:pos]...)
	out = append(out, e)
	out = append(out, edges[pos:]...)
	return out
}

func findEdge(edges []edgeRecord, e edgeRecord) int {
	pos := sort.Search(len(edges), func(i int) bool { return !lessEdge(edges[i], e) })
	if pos < len(edges) && edges[pos] == e {
		return pos
	}
	return -1
}

// sharesNeighbor reports whether the edge at idx has an adjacent record
// (immediately before or after in sort order) with the same
// (index1, word2, attribute) prefix — i.e. whether index1 has another edge
// to word2 under attribute besides the one at idx.
func sharesNeighbor(edges []edgeRecord, idx int) bool {
	e := edges[idx]
	samePrefix := func(o edgeRecord) bool {
		return o.index1 == e.index1 && o.word2 == e.word2 && o.attribute == e.attribute
	}
	if idx > 0 && samePrefix(edges[idx-1]) {
		return true
	}
	if idx+1 < len(edges) && samePrefix(edges[idx+1]) {
		return true
	}
	return false
}

// addEdge records a bidirectional agreement edge between (w1, i1) and
// (w2, i2) under attribute.
func (c *Context) addEdge(w1 int, i1 uint8, w2 int, i2 uint8, attr attrs.Attribute) {
	f1 := c.getForEdit(w1)
	f1.edges = insertEdge(f1.edges, edgeRecord{index1: i1, word2: w2, attribute: attr, index2: i2})
	f2 := c.getForEdit(w2)
	f2.edges = insertEdge(f2.edges, edgeRecord{index1: i2, word2: w1, attribute: attr, index2: i1})
}

// removeVertex erases index i from position w's annotation index set,
// reporting false if that empties the set. On success, every edge that
// originated at (w, i) is torn down via removeEdge, which may cascade into
// further vertex removals on the other side.
func (c *Context) removeVertex(w int, i uint8) bool {
	f := c.getForEdit(w)
	if !f.indices.Has(i) {
		return true
	}
	f.indices = f.indices.Remove(i)
	if f.indices.Len() == 0 {
		return false
	}

	var toProcess []edgeRecord
	remaining := make([]edgeRecord, 0, len(f.edges))
	for _, e := range f.edges {
		if e.index1 == i {
			toProcess = append(toProcess, e)
		} else {
			remaining = append(remaining, e)
		}
	}
	f.edges = remaining

	for _, e := range toProcess {
		if !c.removeEdge(e.word2, e.index2, w, i, e.attribute) {
			return false
		}
	}
	return true
}

// removeEdge tears down the (w1, i1) side of the bidirectional edge to
// (w2, i2) under attr. If i1 has no other edge to w2 under attr once this
// one is gone, the vertex (w1, i1) is removed entirely, cascading further
//.
func (c *Context) removeEdge(w1 int, i1 uint8, w2 int, i2 uint8, attr attrs.Attribute) bool {
	f := c.getForEdit(w1)
	target := edgeRecord{index1: i1, word2: w2, attribute: attr, index2: i2}
	idx := findEdge(f.edges, target)
	if idx < 0 {
		return true
	}
	hasOther := sharesNeighbor(f.edges, idx)
	f.edges = append(f.edges[:idx], f.edges[idx+1:]...)
	if !hasOther {
		return c.removeVertex(w1, i1)
	}
	return true
}
