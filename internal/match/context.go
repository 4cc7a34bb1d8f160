// Package match implements the nondeterministic matcher: a depth-first
// walk of a compile.States program against a loaded text, backtracking
// through attribute-agreement and dictionary conditions via a scoped editor
// that undoes exactly the mutations each failed branch made.
package match

import (
	"github.com/al-pacino/lspl/internal/compile"
	"github.com/al-pacino/lspl/internal/dictionary"
	"github.com/al-pacino/lspl/internal/text"
)

// Span is one matched range of words, [Start, End] inclusive, in the
// coordinates of the Text a Context was built over.
type Span struct {
	Start, End int
}

// DictionaryHit records one dictionary condition's resolved phrase, for
// diagnostics. A dictionary condition never gates a match: Known only says
// whether the phrase was found in the configured dictionary, recorded
// alongside the match that ran regardless.
type DictionaryHit struct {
	Phrase string
	Known  bool
}

// frame holds the per-position state of one word within the current match
// attempt: the surviving subset of the word's annotation indices, and the
// agreement-graph edges touching those indices.
type frame struct {
	indices text.AnnotationIndices
	edges   []edgeRecord
}

func (f frame) clone() frame {
	edges := make([]edgeRecord, len(f.edges))
	copy(edges, f.edges)
	return frame{indices: f.indices, edges: edges}
}

// touchedFrame records a frame's value as it was the first time an editor
// scope touched it, so the scope can restore it on unwind.
type touchedFrame struct {
	pos   int
	frame frame
}

// editorScope is one level of the DataEditor stack: the set of frames
// mutated since the scope was opened, in first-touch order. Restoring a
// scope writes those frames back in reverse order, so a frame touched more
// than once within the scope ends up at its value from before the scope
// opened, not some intermediate value.
type editorScope struct {
	touched []touchedFrame
	seen    map[int]bool
}

func newEditorScope() *editorScope {
	return &editorScope{seen: make(map[int]bool)}
}

// Context drives one matching attempt rooted at a fixed initial word: it
// owns the live per-position frames, the editor-scope stack guarding them,
// and the spans emitted so far.
type Context struct {
	Text       *text.Text
	States     compile.States
	Dictionary *dictionary.Index

	initialWord    int
	data           []frame
	editors        []*editorScope
	Spans          []Span
	DictionaryHits []DictionaryHit
}

// NewContext builds a Context over txt, ready to run states against it.
// dict may be nil if the program has no dictionary conditions.
func NewContext(txt *text.Text, states compile.States, dict *dictionary.Index) *Context {
	return &Context{Text: txt, States: states, Dictionary: dict}
}

// Match runs the matcher starting at initialWord, appending every matched
// span found to c.Spans. The Context can be reused across initial words;
// each call starts from an empty frame stack.
func (c *Context) Match(initialWord int) {
	c.initialWord = initialWord
	c.data = c.data[:0]
	c.editors = c.editors[:0]
	c.run(compile.InitialState)
}

// pushScope opens a new editor scope.
func (c *Context) pushScope() {
	c.editors = append(c.editors, newEditorScope())
}

// popScope closes the innermost editor scope, restoring every frame it
// touched to its pre-scope value, most-recently-touched first.
func (c *Context) popScope() {
	scope := c.editors[len(c.editors)-1]
	c.editors = c.editors[:len(c.editors)-1]
	for i := len(scope.touched) - 1; i >= 0; i-- {
		t := scope.touched[i]
		c.data[t.pos] = t.frame
	}
}

// getForEdit returns the live frame at pos for mutation, snapshotting its
// current value into the innermost editor scope the first time that scope
// touches it. The last position in data is never snapshotted: it belongs
// to the word the current call just consumed and is always discarded by
// the recursion that appended it, never restored in place.
func (c *Context) getForEdit(pos int) *frame {
	if pos != len(c.data)-1 && len(c.editors) > 0 {
		scope := c.editors[len(c.editors)-1]
		if !scope.seen[pos] {
			scope.seen[pos] = true
			scope.touched = append(scope.touched, touchedFrame{pos: pos, frame: c.data[pos].clone()})
		}
	}
	return &c.data[pos]
}
