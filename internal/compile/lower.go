package compile

import (
	"fmt"

	"github.com/al-pacino/lspl/internal/pattern"
	"github.com/al-pacino/lspl/internal/wordrx"
)

// MaxVariantSize is the largest variant length an 8-bit size can hold.
// A dictionary action records its group boundaries in GroupSize; this
// value does not appear in its Offsets.
const MaxVariantSize = 255

// Compile lowers a deduplicated variant set into a States program: each
// variant becomes a linear chain from the shared initial state, sharing
// only that initial state with every other variant.
// Word-surface regexps are compiled with internal/wordrx.
func Compile(variants pattern.Variants) (States, error) {
	b := NewBuilder()
	for _, v := range variants {
		if err := compileVariant(b, v); err != nil {
			return nil, err
		}
	}
	return b.Build(), nil
}

func compileVariant(b *Builder, v pattern.Variant) error {
	current := InitialState
	for i, w := range v {
		next := b.AddState()
		t, err := wordTransition(w)
		if err != nil {
			return err
		}
		t.Target = next
		if err := b.AddTransition(current, t); err != nil {
			return err
		}
		for _, c := range w.Conditions {
			action, err := lowerCondition(c, v, i)
			if err != nil {
				return err
			}
			if err := b.AddAction(next, action); err != nil {
				return err
			}
		}
		current = next
	}
	return b.AddAction(current, Action{Kind: ActionEmit})
}

func wordTransition(w pattern.PatternWord) (Transition, error) {
	if w.IsRegexp() {
		re, err := wordrx.Compile(w.Regexp)
		if err != nil {
			return Transition{}, err
		}
		return Transition{Kind: WordRegex, Regex: re}, nil
	}
	restriction, err := w.Restrictions.Build()
	if err != nil {
		return Transition{}, err
	}
	return Transition{Kind: AttributeRestriction, Restriction: restriction}, nil
}

// argumentPositions returns every position in v whose word identity
// matches argument, ignoring any attribute selector on either side.
func argumentPositions(v pattern.Variant, argument pattern.Argument) []int {
	var out []int
	for i, w := range v {
		if argument.Defined() && w.Argument.RemoveSign() == argument.RemoveSign() {
			out = append(out, i)
		}
	}
	return out
}

// lowerCondition compiles one inline condition attached at variant
// position atPos into a compiled Action. A condition's last referenced
// argument is always atPos itself; every other referenced argument
// contributes one positive offset back from atPos.
//
// A single-argument ("self-agreement") condition has no second position to
// offset against; this anchors it one word back (offset 1) with
// strong=true (see DESIGN.md for the reasoning).
func lowerCondition(c pattern.Condition, v pattern.Variant, atPos int) (Action, error) {
	switch c.Kind {
	case pattern.Agreement:
		return lowerAgreement(c, v, atPos)
	case pattern.Dictionary:
		return lowerDictionary(c, v, atPos)
	default:
		return Action{}, fmt.Errorf("compile: unknown condition kind %d", c.Kind)
	}
}

func lowerAgreement(c pattern.Condition, v pattern.Variant, atPos int) (Action, error) {
	if c.SelfAgreement() {
		// Anchored one word back regardless of atPos; at atPos == 0 there is
		// no preceding word, and runAgreement treats that as vacuously
		// satisfied rather than failing the match.
		return Action{Kind: ActionAgreement, Attribute: c.Attribute, Strong: true, Offsets: []int{1}}, nil
	}

	var offsets []int
	seen := map[int]bool{}
	for _, arg := range c.Arguments {
		if !arg.Defined() {
			continue
		}
		positions := argumentPositions(v, arg)
		pos := latestAtOrBefore(positions, atPos)
		if pos < 0 || pos == atPos {
			continue
		}
		offset := atPos - pos
		if !seen[offset] {
			seen[offset] = true
			offsets = append(offsets, offset)
		}
	}
	return Action{Kind: ActionAgreement, Attribute: c.Attribute, Strong: c.Strong, Offsets: offsets}, nil
}

func lowerDictionary(c pattern.Condition, v pattern.Variant, atPos int) (Action, error) {
	var groupSizes []int
	var offsets []int
	groupSize := 0
	for _, arg := range c.Arguments {
		if !arg.Defined() {
			groupSizes = append(groupSizes, groupSize)
			groupSize = 0
			continue
		}
		positions := argumentPositions(v, arg)
		pos := latestAtOrBefore(positions, atPos)
		if pos < 0 {
			continue
		}
		offsets = append(offsets, atPos-pos)
		groupSize++
	}
	groupSizes = append(groupSizes, groupSize)
	return Action{Kind: ActionDictionary, Name: c.Name, Offsets: offsets, GroupSize: groupSizes}, nil
}

func latestAtOrBefore(positions []int, atPos int) int {
	best := -1
	for _, p := range positions {
		if p <= atPos && p > best {
			best = p
		}
	}
	return best
}
