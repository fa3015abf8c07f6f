package grammar

import "fmt"

// ActionType distinguishes the parse actions a table cell can hold.
type ActionType string

const (
	ActionShift  ActionType = "shift"
	ActionReduce ActionType = "reduce"
	ActionAccept ActionType = "accept"
)

// Action is one ACTION-table cell. The struct is comparable so a rewrite
// of an identical action is distinguishable from a genuine conflict.
type Action struct {
	Type ActionType `json:"type"`

	// State is the shift target. Meaningful only for shifts.
	State int `json:"state,omitempty"`

	// Prod is the production to reduce by, as an index into the
	// augmented grammar. Meaningful only for reduces.
	Prod int `json:"prod,omitempty"`
}

// String renders the cell in the compact classroom form: s5, r3, acc.
func (a Action) String() string {
	switch a.Type {
	case ActionShift:
		return fmt.Sprintf("s%v", a.State)
	case ActionReduce:
		return fmt.Sprintf("r%v", a.Prod)
	case ActionAccept:
		return "acc"
	}
	return "?"
}

// Describe renders the cell with the reduced production spelled out, like
// `r3 (T -> T * F)`.
func (a Action) Describe(g *Grammar) string {
	if a.Type == ActionReduce {
		return fmt.Sprintf("r%v (%v)", a.Prod, g.Productions[a.Prod])
	}
	return a.String()
}

// ConflictType classifies a conflict by the pair of actions involved.
type ConflictType string

const (
	ConflictShiftReduce  ConflictType = "shift/reduce"
	ConflictReduceReduce ConflictType = "reduce/reduce"
	ConflictOther        ConflictType = "other"
)

// Conflict records a discarded write to an occupied ACTION cell. Existing
// is what the table keeps, Attempted is what was thrown away; the order
// reflects construction order, so which action survives depends only on
// the deterministic build sequence.
type Conflict struct {
	State     int    `json:"state"`
	Symbol    string `json:"symbol"`
	Existing  Action `json:"existing"`
	Attempted Action `json:"attempted"`
}

// Type derives the classification from the two actions involved.
func (c *Conflict) Type() ConflictType {
	a, b := c.Existing.Type, c.Attempted.Type
	switch {
	case a == ActionShift && b == ActionReduce, a == ActionReduce && b == ActionShift:
		return ConflictShiftReduce
	case a == ActionReduce && b == ActionReduce:
		return ConflictReduceReduce
	}
	return ConflictOther
}

// Describe renders the conflict with both actions spelled out.
func (c *Conflict) Describe(g *Grammar) string {
	return fmt.Sprintf("%v conflict in state %v on %v: %v vs %v",
		c.Type(), c.State, c.Symbol, c.Existing.Describe(g), c.Attempted.Describe(g))
}

// ParseTable is an LR parsing table over the states of its automaton.
// Actions and Gotos are indexed by state id; conflicted cells keep their
// first write and the discarded ones are listed in Conflicts in the order
// they were encountered.
type ParseTable struct {
	Kind      Kind
	Automaton *Automaton
	Actions   []map[string]Action
	Gotos     []map[string]int
	Conflicts []*Conflict
}

// Action looks up the ACTION cell for a state and terminal.
func (t *ParseTable) Action(state int, sym string) (Action, bool) {
	if state < 0 || state >= len(t.Actions) {
		return Action{}, false
	}
	act, ok := t.Actions[state][sym]
	return act, ok
}

// Goto looks up the GOTO cell for a state and non-terminal.
func (t *ParseTable) Goto(state int, sym string) (int, bool) {
	if state < 0 || state >= len(t.Gotos) {
		return 0, false
	}
	next, ok := t.Gotos[state][sym]
	return next, ok
}

// ConflictFree reports whether no write was ever discarded.
func (t *ParseTable) ConflictFree() bool {
	return len(t.Conflicts) == 0
}

// tableWriter accumulates ACTION and GOTO cells under the first-writer-wins
// policy: the first action written to a cell stays; rewriting the identical
// action is a no-op; a differing write is recorded as a conflict and
// discarded. GOTO cells never conflict because a state has at most one
// transition per symbol.
type tableWriter struct {
	actions   []map[string]Action
	gotos     []map[string]int
	conflicts []*Conflict
}

func newTableWriter(states int) *tableWriter {
	w := &tableWriter{
		actions: make([]map[string]Action, states),
		gotos:   make([]map[string]int, states),
	}
	for i := 0; i < states; i++ {
		w.actions[i] = map[string]Action{}
		w.gotos[i] = map[string]int{}
	}
	return w
}

func (w *tableWriter) writeAction(state int, sym string, act Action) {
	existing, ok := w.actions[state][sym]
	if !ok {
		w.actions[state][sym] = act
		return
	}
	if existing == act {
		return
	}
	w.conflicts = append(w.conflicts, &Conflict{
		State:     state,
		Symbol:    sym,
		Existing:  existing,
		Attempted: act,
	})
}

func (w *tableWriter) writeGoto(state int, sym string, next int) {
	w.gotos[state][sym] = next
}
