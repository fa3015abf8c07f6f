// Package ll1 builds LL(1) predictive parsing tables and runs top-down
// parses over them. Tables are built for any grammar; conflicted cells keep
// their first write, and the conflicts decide whether the grammar is LL(1).
package ll1

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/gramtab/gramtab/grammar"
	"github.com/gramtab/gramtab/trace"
)

// Conflict records a discarded write to an occupied table cell: two
// productions of the same non-terminal claimed the same lookahead terminal.
// Existing and Attempted are production indexes into the grammar; the
// production with the lower index wins the cell.
type Conflict struct {
	Nonterminal string `json:"nonterminal"`
	Terminal    string `json:"terminal"`
	Existing    int    `json:"existing"`
	Attempted   int    `json:"attempted"`
}

// Describe renders the conflict with both productions spelled out.
func (c *Conflict) Describe(g *grammar.Grammar) string {
	return fmt.Sprintf("conflict at (%v, %v): %v vs %v",
		c.Nonterminal, c.Terminal, g.Productions[c.Existing], g.Productions[c.Attempted])
}

// Table is an LL(1) predictive parsing table. Cells maps a non-terminal and
// a lookahead terminal to the index of the production to expand; the end
// marker is a valid lookahead. Every non-terminal has a row, possibly
// empty.
type Table struct {
	Grammar   *grammar.Grammar
	Cells     map[string]map[string]int
	Conflicts []*Conflict

	First  *grammar.FirstSet
	Follow *grammar.FollowSet
}

// BuildTable computes FIRST and FOLLOW for g and fills the table: each
// production lands in the columns of its selection set, in production
// order. The first production written to a cell stays; later claims are
// recorded as conflicts and discarded.
func BuildTable(g *grammar.Grammar) (*Table, error) {
	if g == nil {
		return nil, fmt.Errorf("grammar is nil")
	}

	first := grammar.ComputeFirst(g)
	follow := grammar.ComputeFollow(g, first)

	t := &Table{
		Grammar: g,
		Cells:   map[string]map[string]int{},
		First:   first,
		Follow:  follow,
	}
	for _, nt := range g.Nonterminals() {
		t.Cells[nt] = map[string]int{}
	}

	for i, prod := range g.Productions {
		row := t.Cells[prod.Lhs]
		for _, term := range selectionSet(prod, first, follow) {
			existing, ok := row[term]
			if ok {
				t.Conflicts = append(t.Conflicts, &Conflict{
					Nonterminal: prod.Lhs,
					Terminal:    term,
					Existing:    existing,
					Attempted:   i,
				})
				continue
			}
			row[term] = i
		}
	}

	trace.L().Debug("predictive parsing table built",
		zap.Int("nonterminals", len(t.Cells)),
		zap.Int("conflicts", len(t.Conflicts)),
		zap.Bool("ll1", t.IsLL1()))

	return t, nil
}

// selectionSet lists the lookahead terminals that select a production:
// FIRST of its body, extended by FOLLOW of its head when the body can
// derive the empty sequence. Sorted, and may include the end marker.
func selectionSet(prod *grammar.Production, first *grammar.FirstSet, follow *grammar.FollowSet) []string {
	fst := first.OfSequence(prod.Rhs)
	if !fst.Empty() {
		return fst.Symbols()
	}

	set := map[string]struct{}{}
	for _, sym := range fst.Symbols() {
		set[sym] = struct{}{}
	}
	for _, sym := range follow.Of(prod.Lhs).Terminals() {
		set[sym] = struct{}{}
	}
	terms := make([]string, 0, len(set))
	for sym := range set {
		terms = append(terms, sym)
	}
	sort.Strings(terms)
	return terms
}

// IsLL1 reports whether no write was ever discarded.
func (t *Table) IsLL1() bool {
	return len(t.Conflicts) == 0
}

// Lookup returns the production index a non-terminal expands by on a
// lookahead terminal.
func (t *Table) Lookup(nonterminal, terminal string) (int, bool) {
	row, ok := t.Cells[nonterminal]
	if !ok {
		return 0, false
	}
	idx, ok := row[terminal]
	return idx, ok
}

// Columns lists the table columns: the grammar's terminals in
// first-appearance order, then the end marker.
func (t *Table) Columns() []string {
	cols := make([]string, 0, len(t.Grammar.Terminals())+1)
	cols = append(cols, t.Grammar.Terminals()...)
	cols = append(cols, grammar.EndMarker)
	return cols
}
