package match

import (
	"github.com/al-pacino/lspl/internal/compile"
	"github.com/al-pacino/lspl/internal/text"
)

// run performs one depth-first step of the walk at stateIndex. It opens an
// editor scope for the duration of this call (and every call it recurses
// into), so any mutation this branch makes to the shared frame stack is
// undone on return, regardless of which path below led to that return.
func (c *Context) run(stateIndex compile.StateID) {
	c.pushScope()
	defer c.popScope()

	state := c.States[stateIndex]
	for _, a := range state.Actions {
		if !c.runAction(a) {
			return
		}
	}
	if state.IsTerminal() {
		return
	}

	nextWord := c.initialWord + len(c.data)
	if nextWord >= c.Text.Len() {
		return
	}
	word := c.Text.Words[nextWord]

	c.data = append(c.data, frame{})
	last := len(c.data) - 1
	for _, t := range state.Transitions {
		indices, ok := testTransition(t, word)
		if !ok {
			continue
		}
		c.data[last] = frame{indices: indices}
		c.run(t.Target)
	}
	c.data = c.data[:last]
}

// testTransition reports the subset of word's annotation indices that
// satisfy t, and whether that subset is non-empty. A WordRegex transition
// tests only the surface text and, if it matches, admits every annotation;
// an AttributeRestriction transition tests each annotation individually.
func testTransition(t compile.Transition, word text.Word) (text.AnnotationIndices, bool) {
	switch t.Kind {
	case compile.WordRegex:
		if !t.Regex.MatchString(word.Surface) {
			return nil, false
		}
		return word.AnnotationIndices(), true
	case compile.AttributeRestriction:
		var out text.AnnotationIndices
		for _, i := range word.AnnotationIndices() {
			if t.Restriction.Check(word.Annotations[i]) {
				out = out.Add(i)
			}
		}
		return out, out.Len() > 0
	default:
		return nil, false
	}
}
