// Package compile turns a deduplicated set of pattern variants into the
// nondeterministic word-level state machine the matcher executes: a list
// of States, each with an ordered action list and an ordered list of
// outgoing transitions. Its transitions test whole words, not bytes: a
// typed StateID, a Kind-tagged Transition, and an explicit Builder with Add*
// methods.
package compile

import (
	"fmt"

	"github.com/al-pacino/lspl/internal/attrs"
	"github.com/al-pacino/lspl/internal/wordrx"
)

// StateID identifies one State within a States program. State 0 is always
// the initial state of a compiled pattern.
type StateID int

// InitialState is the entry point of every compiled pattern.
const InitialState StateID = 0

// TransitionKind tags which test a Transition performs.
type TransitionKind int

const (
	// WordRegex matches any annotation index of the current word, gated
	// on the word's surface text satisfying a regular expression.
	WordRegex TransitionKind = iota
	// AttributeRestriction matches the subset of the current word's
	// annotation indices whose values satisfy a compiled restriction.
	AttributeRestriction
)

// Transition is one outgoing edge of a State.
type Transition struct {
	Kind        TransitionKind
	Regex       wordrx.Regexp
	Restriction attrs.Restriction
	Target      StateID
}

// Action is one state-resident side effect run before a state's
// transitions are attempted. Actions are supplied by package match, which
// knows how to run them against a match context; compile only records
// which kind of action and its static parameters.
type Action struct {
	Kind      ActionKind
	Attribute attrs.Attribute
	Strong    bool
	Offsets   []int // positive offsets back from the current shift
	Name      string
	GroupSize []int // dictionary argument groups, by size, in order
}

// ActionKind tags which action a compiled Action performs.
type ActionKind int

const (
	// ActionAgreement enforces cross-word attribute agreement.
	ActionAgreement ActionKind = iota
	// ActionDictionary records a resolved phrase for diagnostics.
	ActionDictionary
	// ActionEmit reports a successful match span; only ever placed on
	// terminal states.
	ActionEmit
)

// State is one node of the compiled program.
type State struct {
	Actions     []Action
	Transitions []Transition
}

// IsTerminal reports whether s has no outgoing transitions, meaning a walk
// that reaches s (and whose actions all succeed) has matched.
func (s State) IsTerminal() bool {
	return len(s.Transitions) == 0
}

// States is a compiled program: an ordered list of State, state 0 initial.
type States []State

// Builder assembles a States program one state at a time: an append-only
// state list with Add* helpers for transitions and actions.
type Builder struct {
	states States
}

// NewBuilder returns an empty Builder, already holding the reserved
// initial state at StateID 0.
func NewBuilder() *Builder {
	return &Builder{states: States{{}}}
}

// AddState appends a new, empty state and returns its id.
func (b *Builder) AddState() StateID {
	b.states = append(b.states, State{})
	return StateID(len(b.states) - 1)
}

// AddTransition appends a transition to the state named by from.
func (b *Builder) AddTransition(from StateID, t Transition) error {
	if int(from) >= len(b.states) {
		return fmt.Errorf("compile: invalid state id %d", from)
	}
	b.states[from].Transitions = append(b.states[from].Transitions, t)
	return nil
}

// AddAction appends an action to the state named by at.
func (b *Builder) AddAction(at StateID, a Action) error {
	if int(at) >= len(b.states) {
		return fmt.Errorf("compile: invalid state id %d", at)
	}
	b.states[at].Actions = append(b.states[at].Actions, a)
	return nil
}

// Build returns the assembled States program.
func (b *Builder) Build() States {
	return b.states
}
