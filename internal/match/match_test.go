package match

import (
	"testing"

	"github.com/al-pacino/lspl/internal/attrs"
	"github.com/al-pacino/lspl/internal/compile"
	"github.com/al-pacino/lspl/internal/dictionary"
	"github.com/al-pacino/lspl/internal/text"
	"github.com/al-pacino/lspl/internal/wordrx"
)

// posAttribute is the attribute slot used for part-of-speech in these
// tests; attribute 0 is always the main attribute.
const posAttribute attrs.Attribute = 0

// genderAttribute is a secondary attribute used to test agreement.
const genderAttribute attrs.Attribute = 1

func annotation(pos, gender attrs.Value) attrs.Annotation {
	a := attrs.NewAnnotation(2)
	a.Set(posAttribute, pos)
	a.Set(genderAttribute, gender)
	return a
}

func mustWord(t *testing.T, surface string, anns ...attrs.Annotation) text.Word {
	t.Helper()
	w, err := text.NewWord(surface, anns)
	if err != nil {
		t.Fatal(err)
	}
	return w
}

const (
	adjPOS  attrs.Value = 1
	nounPOS attrs.Value = 2
	femGender attrs.Value = 1
	mascGender attrs.Value = 2
)

func twoStateRegexProgram(t *testing.T, pattern string) compile.States {
	t.Helper()
	re := wordrx.MustCompile(pattern)
	b := compile.NewBuilder()
	final := b.AddState()
	if err := b.AddTransition(compile.InitialState, compile.Transition{Kind: compile.WordRegex, Regex: re, Target: final}); err != nil {
		t.Fatal(err)
	}
	if err := b.AddAction(final, compile.Action{Kind: compile.ActionEmit}); err != nil {
		t.Fatal(err)
	}
	return b.Build()
}

func TestMatchSingleWordRegex(t *testing.T) {
	txt := text.NewText([]text.Word{
		mustWord(t, "cat", annotation(nounPOS, mascGender)),
		mustWord(t, "dog", annotation(nounPOS, mascGender)),
	}, 2, 1)

	states := twoStateRegexProgram(t, "cat")
	ctx := NewContext(txt, states, nil)
	ctx.Match(0)
	if len(ctx.Spans) != 1 || ctx.Spans[0] != (Span{Start: 0, End: 0}) {
		t.Fatalf("spans = %v, want one span [0,0]", ctx.Spans)
	}

	ctx2 := NewContext(txt, states, nil)
	ctx2.Match(1)
	if len(ctx2.Spans) != 0 {
		t.Fatalf("spans = %v, want none at word 1", ctx2.Spans)
	}
}

func TestMatchPastEndOfTextFailsCleanly(t *testing.T) {
	txt := text.NewText([]text.Word{
		mustWord(t, "cat", annotation(nounPOS, mascGender)),
	}, 2, 1)

	b := compile.NewBuilder()
	mid := b.AddState()
	final := b.AddState()
	if err := b.AddTransition(compile.InitialState, compile.Transition{Kind: compile.WordRegex, Regex: wordrx.MustCompile("cat"), Target: mid}); err != nil {
		t.Fatal(err)
	}
	if err := b.AddTransition(mid, compile.Transition{Kind: compile.WordRegex, Regex: wordrx.MustCompile("dog"), Target: final}); err != nil {
		t.Fatal(err)
	}
	if err := b.AddAction(final, compile.Action{Kind: compile.ActionEmit}); err != nil {
		t.Fatal(err)
	}

	ctx := NewContext(txt, b.Build(), nil)
	ctx.Match(0)
	if len(ctx.Spans) != 0 {
		t.Fatalf("spans = %v, want none: text ends before second word can be tested", ctx.Spans)
	}
}

// agreementProgram compiles a two-word linear program ("adjective noun")
// whose final state carries an ActionAgreement on genderAttribute with a
// single offset back to the first word.
func agreementProgram(t *testing.T, strong bool) compile.States {
	t.Helper()
	b := compile.NewBuilder()
	mid := b.AddState()
	final := b.AddState()
	if err := b.AddTransition(compile.InitialState, compile.Transition{Kind: compile.WordRegex, Regex: wordrx.MustCompile(`\p{L}+`), Target: mid}); err != nil {
		t.Fatal(err)
	}
	if err := b.AddTransition(mid, compile.Transition{Kind: compile.WordRegex, Regex: wordrx.MustCompile(`\p{L}+`), Target: final}); err != nil {
		t.Fatal(err)
	}
	if err := b.AddAction(final, compile.Action{Kind: compile.ActionAgreement, Attribute: genderAttribute, Strong: strong, Offsets: []int{1}}); err != nil {
		t.Fatal(err)
	}
	if err := b.AddAction(final, compile.Action{Kind: compile.ActionEmit}); err != nil {
		t.Fatal(err)
	}
	return b.Build()
}

func TestMatchAgreementSucceedsOnSharedGender(t *testing.T) {
	txt := text.NewText([]text.Word{
		mustWord(t, "krasivaya", annotation(adjPOS, femGender)),
		mustWord(t, "devushka", annotation(nounPOS, femGender)),
	}, 2, 1)

	ctx := NewContext(txt, agreementProgram(t, true), nil)
	ctx.Match(0)
	if len(ctx.Spans) != 1 {
		t.Fatalf("spans = %v, want one match", ctx.Spans)
	}
}

// TestMatchAgreementFailsAndRestoresIndices is scenario 6: the adjective's
// only gender disagrees with the noun's only gender, so the agreement action must fail the whole branch and leave the
// underlying frame state exactly as a fresh match would start it (idempotent
// backtracking via the editor scope, not a graph left half-torn-down).
func TestMatchAgreementFailsAndRestoresIndices(t *testing.T) {
	txt := text.NewText([]text.Word{
		mustWord(t, "bolshoy", annotation(adjPOS, mascGender)),
		mustWord(t, "devushka", annotation(nounPOS, femGender)),
	}, 2, 1)

	ctx := NewContext(txt, agreementProgram(t, true), nil)
	ctx.Match(0)
	if len(ctx.Spans) != 0 {
		t.Fatalf("spans = %v, want no match on gender mismatch", ctx.Spans)
	}
	if len(ctx.data) != 0 {
		t.Fatalf("frame stack not unwound after failed match: %v", ctx.data)
	}

	// Run again from the same context to confirm the failed attempt left no
	// residue that would change the outcome of a second attempt.
	ctx.Match(0)
	if len(ctx.Spans) != 0 {
		t.Fatalf("second match = %v, want still no match", ctx.Spans)
	}
}

func TestMatchAgreementWeakAllowsWildcard(t *testing.T) {
	txt := text.NewText([]text.Word{
		mustWord(t, "bystro", annotation(adjPOS, attrs.NullValue)),
		mustWord(t, "devushka", annotation(nounPOS, femGender)),
	}, 2, 1)

	ctx := NewContext(txt, agreementProgram(t, false), nil)
	ctx.Match(0)
	if len(ctx.Spans) != 1 {
		t.Fatalf("spans = %v, want one weak-agreement match", ctx.Spans)
	}
}

// selfAgreementProgram compiles a one-word program whose single state
// carries an ActionAgreement with Offsets:[1], the shape a self-agreement
// condition on the first word of a variant lowers to.
func selfAgreementProgram(t *testing.T) compile.States {
	t.Helper()
	b := compile.NewBuilder()
	final := b.AddState()
	if err := b.AddTransition(compile.InitialState, compile.Transition{Kind: compile.WordRegex, Regex: wordrx.MustCompile(`\p{L}+`), Target: final}); err != nil {
		t.Fatal(err)
	}
	if err := b.AddAction(final, compile.Action{Kind: compile.ActionAgreement, Attribute: genderAttribute, Strong: true, Offsets: []int{1}}); err != nil {
		t.Fatal(err)
	}
	if err := b.AddAction(final, compile.Action{Kind: compile.ActionEmit}); err != nil {
		t.Fatal(err)
	}
	return b.Build()
}

// TestMatchSelfAgreementAtFirstWordIsVacuouslySatisfied is the first-word
// edge case for a self-agreement condition: there is no preceding word to
// offset against, so the action must not fail the match outright.
func TestMatchSelfAgreementAtFirstWordIsVacuouslySatisfied(t *testing.T) {
	txt := text.NewText([]text.Word{
		mustWord(t, "krasivaya", annotation(adjPOS, femGender)),
	}, 2, 1)

	ctx := NewContext(txt, selfAgreementProgram(t), nil)
	ctx.Match(0)
	if len(ctx.Spans) != 1 {
		t.Fatalf("spans = %v, want one match: self-agreement at the first word must not fail", ctx.Spans)
	}
}

// dictionaryProgram compiles a one-word program whose final state carries
// an ActionDictionary referencing only the word just consumed.
func dictionaryProgram(t *testing.T) compile.States {
	t.Helper()
	b := compile.NewBuilder()
	final := b.AddState()
	if err := b.AddTransition(compile.InitialState, compile.Transition{Kind: compile.WordRegex, Regex: wordrx.MustCompile(`\p{L}+`), Target: final}); err != nil {
		t.Fatal(err)
	}
	if err := b.AddAction(final, compile.Action{Kind: compile.ActionDictionary, Offsets: []int{0}}); err != nil {
		t.Fatal(err)
	}
	if err := b.AddAction(final, compile.Action{Kind: compile.ActionEmit}); err != nil {
		t.Fatal(err)
	}
	return b.Build()
}

// TestMatchDictionaryNeverGatesButRecordsKnownStatus exercises the
// dictionary automaton on its one reachable, non-test path: a resolved
// phrase absent from the dictionary still matches, and the phrase's known
// status is recorded via the Aho-Corasick automaton, not a plain map.
func TestMatchDictionaryNeverGatesButRecordsKnownStatus(t *testing.T) {
	txt := text.NewText([]text.Word{
		mustWord(t, "apple", annotation(nounPOS, mascGender)),
		mustWord(t, "kumquat", annotation(nounPOS, mascGender)),
	}, 2, 1)

	idx, err := dictionary.NewIndex([]string{"apple"})
	if err != nil {
		t.Fatal(err)
	}
	states := dictionaryProgram(t)

	ctx := NewContext(txt, states, idx)
	ctx.Match(0)
	if len(ctx.Spans) != 1 {
		t.Fatalf("spans = %v, want one match: dictionary must never gate", ctx.Spans)
	}
	if len(ctx.DictionaryHits) != 1 || ctx.DictionaryHits[0] != (DictionaryHit{Phrase: "apple", Known: true}) {
		t.Fatalf("hits = %v, want one known hit for %q", ctx.DictionaryHits, "apple")
	}

	ctx2 := NewContext(txt, states, idx)
	ctx2.Match(1)
	if len(ctx2.Spans) != 1 {
		t.Fatalf("spans = %v, want one match even for a word absent from the dictionary", ctx2.Spans)
	}
	if len(ctx2.DictionaryHits) != 1 || ctx2.DictionaryHits[0] != (DictionaryHit{Phrase: "kumquat", Known: false}) {
		t.Fatalf("hits = %v, want one unknown hit for %q", ctx2.DictionaryHits, "kumquat")
	}
}
