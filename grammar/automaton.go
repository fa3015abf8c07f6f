package grammar

import (
	"github.com/pingcap/errors"
	"go.uber.org/zap"

	"github.com/gramtab/gramtab/trace"
)

// Class identifies the flavor of item an automaton carries.
type Class int

const (
	ClassLR0 Class = iota
	ClassLR1
)

func (c Class) String() string {
	switch c {
	case ClassLR0:
		return "LR(0)"
	case ClassLR1:
		return "LR(1)"
	}
	return "unknown"
}

// DefaultMaxStates is the state-count ceiling applied when no MaxStates
// option is given.
const DefaultMaxStates = 10000

// ErrStateLimit is returned when a canonical collection would exceed its
// state-count ceiling.
var ErrStateLimit = errors.New("state limit exceeded")

type buildConfig struct {
	maxStates int
}

// BuildOption configures automaton construction.
type BuildOption func(*buildConfig)

// MaxStates caps the number of states a collection may reach. Values less
// than 1 leave the default in place.
func MaxStates(n int) BuildOption {
	return func(c *buildConfig) {
		if n >= 1 {
			c.maxStates = n
		}
	}
}

// Automaton is a canonical collection of item sets over an augmented
// grammar. State 0 is the closure of the augmented start item; Transitions
// is indexed by state id.
type Automaton struct {
	Grammar     *Grammar
	Class       Class
	States      []*State
	Transitions []map[string]int
}

// Transition returns the target state of a transition, if one exists.
func (a *Automaton) Transition(state int, sym string) (int, bool) {
	if state < 0 || state >= len(a.Transitions) {
		return 0, false
	}
	next, ok := a.Transitions[state][sym]
	return next, ok
}

// BuildLR0 builds the canonical LR(0) collection of g. The input grammar
// is augmented first; the result carries the augmented grammar.
func BuildLR0(g *Grammar, opts ...BuildOption) (*Automaton, error) {
	aug := g.Augment()
	return buildCollection(aug, ClassLR0, nil, opts...)
}

// BuildLR1 builds the canonical LR(1) collection of g. The input grammar
// is augmented first; the start item carries the end marker as lookahead.
func BuildLR1(g *Grammar, opts ...BuildOption) (*Automaton, error) {
	aug := g.Augment()
	first := ComputeFirst(aug)
	return buildCollection(aug, ClassLR1, first, opts...)
}

// buildCollection discovers states breadth-first from state 0: for every
// state and every grammar symbol in pinned order (non-terminals by first
// appearance, then terminals, then the end marker) it computes the goto
// set, de-duplicates it by fingerprint, and appends unseen states to the
// queue. Each state is processed exactly once; goto is pure, so one pass
// per state reaches the fixed point.
func buildCollection(aug *Grammar, class Class, first *FirstSet, opts ...BuildOption) (*Automaton, error) {
	config := &buildConfig{
		maxStates: DefaultMaxStates,
	}
	for _, opt := range opts {
		opt(config)
	}

	seed := Item{Prod: 0}
	var initial []Item
	if class == ClassLR1 {
		seed.Lookahead = EndMarker
		initial = closure1(aug, first, []Item{seed})
	} else {
		initial = closure0(aug, []Item{seed})
	}

	states := []*State{newState(0, initial)}
	index := map[stateID]int{
		states[0].fp: 0,
	}
	var transitions []map[string]int

	for i := 0; i < len(states); i++ {
		trans := map[string]int{}
		for _, sym := range aug.Symbols() {
			var next []Item
			if class == ClassLR1 {
				next = goto1(aug, first, states[i].Items, sym)
			} else {
				next = goto0(aug, states[i].Items, sym)
			}
			if len(next) == 0 {
				continue
			}

			ns := newState(len(states), next)
			id, ok := index[ns.fp]
			if !ok {
				if len(states) >= config.maxStates {
					return nil, errors.Annotatef(ErrStateLimit, "%v collection exceeded %v states", class, config.maxStates)
				}
				id = ns.ID
				index[ns.fp] = id
				states = append(states, ns)
			}
			trans[sym] = id
		}
		transitions = append(transitions, trans)
	}

	trace.L().Debug("canonical collection built",
		zap.Stringer("class", class),
		zap.Int("states", len(states)))

	return &Automaton{
		Grammar:     aug,
		Class:       class,
		States:      states,
		Transitions: transitions,
	}, nil
}

// mergeByCore collapses an LR(1) collection into its LALR form: states
// sharing a core (items minus lookaheads) are grouped in first-encounter
// order, their items unioned, and transitions re-derived over the merged
// identities. Merging never changes cores, so the re-derived transitions
// are consistent across each group.
func mergeByCore(a *Automaton) *Automaton {
	groupOf := make([]int, len(a.States))
	byCore := map[stateID]int{}
	var groups [][]Item

	for i, state := range a.States {
		core := state.coreFingerprint()
		gi, ok := byCore[core]
		if !ok {
			gi = len(groups)
			byCore[core] = gi
			groups = append(groups, nil)
		}
		groupOf[i] = gi
		groups[gi] = append(groups[gi], state.Items...)
	}

	states := make([]*State, len(groups))
	for gi, items := range groups {
		states[gi] = newState(gi, items)
	}

	transitions := make([]map[string]int, len(groups))
	for i, trans := range a.Transitions {
		gi := groupOf[i]
		if transitions[gi] == nil {
			transitions[gi] = map[string]int{}
		}
		for sym, next := range trans {
			transitions[gi][sym] = groupOf[next]
		}
	}

	trace.L().Debug("merged collection by core",
		zap.Int("states", len(a.States)),
		zap.Int("merged", len(states)))

	return &Automaton{
		Grammar:     a.Grammar,
		Class:       a.Class,
		States:      states,
		Transitions: transitions,
	}
}
