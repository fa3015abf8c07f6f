// Package report assembles structured summaries of grammars, parsing
// tables, transformations, and cross-parser comparisons. Everything here is
// plain serializable data; rendering is the caller's concern.
package report

import (
	"fmt"

	"github.com/cnf/structhash"
	"github.com/emirpasic/gods/sets/treeset"

	"github.com/gramtab/gramtab/grammar"
	"github.com/gramtab/gramtab/ll1"
	"github.com/gramtab/gramtab/transform"
)

// ProductionInfo is one production in display form. Index is the
// production's position in the grammar, which is also the number reduce
// actions and LL(1) cells refer to.
type ProductionInfo struct {
	Index   int    `json:"index"`
	Lhs     string `json:"lhs"`
	Rhs     string `json:"rhs"`
	Display string `json:"display"`
}

// GrammarSummary describes a grammar: sorted symbol inventories, the
// production listing in grammar order, FIRST and FOLLOW per non-terminal,
// and a content fingerprint.
type GrammarSummary struct {
	Start            string              `json:"start"`
	Fingerprint      string              `json:"fingerprint"`
	Nonterminals     []string            `json:"nonterminals"`
	Terminals        []string            `json:"terminals"`
	NonterminalCount int                 `json:"nonterminal_count"`
	TerminalCount    int                 `json:"terminal_count"`
	ProductionCount  int                 `json:"production_count"`
	Productions      []*ProductionInfo   `json:"productions"`
	First            map[string][]string `json:"first"`
	Follow           map[string][]string `json:"follow"`
}

// SummarizeGrammar computes the analysis sets and packages the grammar for
// reporting. FIRST entries render the empty-derivation flag as the empty
// marker; FOLLOW entries render the EOF flag as the end marker.
func SummarizeGrammar(g *grammar.Grammar) *GrammarSummary {
	first := grammar.ComputeFirst(g)
	follow := grammar.ComputeFollow(g, first)

	prods := make([]*ProductionInfo, len(g.Productions))
	for i, prod := range g.Productions {
		prods[i] = &ProductionInfo{
			Index:   i,
			Lhs:     prod.Lhs,
			Rhs:     renderBody(prod),
			Display: prod.String(),
		}
	}

	firsts := map[string][]string{}
	follows := map[string][]string{}
	for _, nt := range g.Nonterminals() {
		fst := first.Of(nt)
		syms := fst.Symbols()
		if fst.Empty() {
			syms = append(syms, grammar.Epsilon)
		}
		firsts[nt] = syms
		follows[nt] = follow.Of(nt).Terminals()
	}

	return &GrammarSummary{
		Start:            g.Start,
		Fingerprint:      Fingerprint(g),
		Nonterminals:     sortedSymbols(g.Nonterminals()),
		Terminals:        sortedSymbols(g.Terminals()),
		NonterminalCount: len(g.Nonterminals()),
		TerminalCount:    len(g.Terminals()),
		ProductionCount:  len(g.Productions),
		Productions:      prods,
		First:            firsts,
		Follow:           follows,
	}
}

// grammarDigest is the canonical content a fingerprint hashes: the start
// symbol and the display form of every production, in grammar order.
type grammarDigest struct {
	Start       string
	Productions []string
}

// Fingerprint returns a stable content hash of the grammar. Two grammars
// fingerprint equal exactly when they have the same start symbol and the
// same productions in the same order.
func Fingerprint(g *grammar.Grammar) string {
	d := grammarDigest{
		Start:       g.Start,
		Productions: make([]string, len(g.Productions)),
	}
	for i, prod := range g.Productions {
		d.Productions[i] = prod.String()
	}
	return fmt.Sprintf("%x", structhash.Sha1(d, 1))
}

// sortedSymbols copies the symbols into sorted order through an ordered
// set, dropping duplicates.
func sortedSymbols(syms []string) []string {
	set := treeset.NewWithStringComparator()
	for _, sym := range syms {
		set.Add(sym)
	}
	out := make([]string, 0, set.Size())
	for _, v := range set.Values() {
		out = append(out, v.(string))
	}
	return out
}

func renderBody(prod *grammar.Production) string {
	if prod.IsEmpty() {
		return grammar.Epsilon
	}
	out := ""
	for i, sym := range prod.Rhs {
		if i > 0 {
			out += " "
		}
		out += sym
	}
	return out
}

// ConflictInfo is one classified parsing-table conflict in display form.
type ConflictInfo struct {
	State       int    `json:"state"`
	Symbol      string `json:"symbol"`
	Type        string `json:"type"`
	Existing    string `json:"existing"`
	Attempted   string `json:"attempted"`
	Description string `json:"description"`
}

// TableSummary describes one LR parsing table: its construction, size,
// and every conflict with a shift-reduce/reduce-reduce classification.
type TableSummary struct {
	Kind         string          `json:"kind"`
	States       int             `json:"states"`
	ActionCells  int             `json:"action_cells"`
	GotoCells    int             `json:"goto_cells"`
	ConflictFree bool            `json:"conflict_free"`
	ShiftReduce  int             `json:"shift_reduce"`
	ReduceReduce int             `json:"reduce_reduce"`
	Conflicts    []*ConflictInfo `json:"conflicts,omitempty"`
}

// SummarizeTable packages a parsing table for reporting.
func SummarizeTable(t *grammar.ParseTable) *TableSummary {
	s := &TableSummary{
		Kind:         string(t.Kind),
		States:       len(t.Actions),
		ConflictFree: t.ConflictFree(),
	}
	for _, row := range t.Actions {
		s.ActionCells += len(row)
	}
	for _, row := range t.Gotos {
		s.GotoCells += len(row)
	}

	aug := t.Automaton.Grammar
	for _, c := range t.Conflicts {
		switch c.Type() {
		case grammar.ConflictShiftReduce:
			s.ShiftReduce++
		case grammar.ConflictReduceReduce:
			s.ReduceReduce++
		}
		s.Conflicts = append(s.Conflicts, &ConflictInfo{
			State:       c.State,
			Symbol:      c.Symbol,
			Type:        string(c.Type()),
			Existing:    c.Existing.Describe(aug),
			Attempted:   c.Attempted.Describe(aug),
			Description: c.Describe(aug),
		})
	}
	return s
}

// LL1Summary describes an LL(1) table: dimensions, fill, and conflicts.
// TotalCells counts one column per terminal plus the end marker.
type LL1Summary struct {
	IsLL1        bool     `json:"is_ll1"`
	Nonterminals int      `json:"nonterminals"`
	Terminals    int      `json:"terminals"`
	FilledCells  int      `json:"filled_cells"`
	TotalCells   int      `json:"total_cells"`
	Conflicts    []string `json:"conflicts,omitempty"`
}

// SummarizeLL1 packages an LL(1) table for reporting.
func SummarizeLL1(t *ll1.Table) *LL1Summary {
	s := &LL1Summary{
		IsLL1:        t.IsLL1(),
		Nonterminals: len(t.Grammar.Nonterminals()),
		Terminals:    len(t.Grammar.Terminals()),
		TotalCells:   len(t.Grammar.Nonterminals()) * len(t.Columns()),
	}
	for _, row := range t.Cells {
		s.FilledCells += len(row)
	}
	for _, c := range t.Conflicts {
		s.Conflicts = append(s.Conflicts, c.Describe(t.Grammar))
	}
	return s
}

// TransformationSummary describes a transformation run with both grammars
// summarized in full.
type TransformationSummary struct {
	RemovedLeftRecursion bool              `json:"removed_left_recursion"`
	AppliedLeftFactoring bool              `json:"applied_left_factoring"`
	NewNonterminals      []string          `json:"new_nonterminals"`
	Steps                []string          `json:"steps,omitempty"`
	Details              map[string]string `json:"details,omitempty"`
	Original             *GrammarSummary   `json:"original"`
	Transformed          *GrammarSummary   `json:"transformed"`
}

// SummarizeTransformation packages a transformation result for reporting.
func SummarizeTransformation(res *transform.Result) *TransformationSummary {
	return &TransformationSummary{
		RemovedLeftRecursion: res.RemovedLeftRecursion,
		AppliedLeftFactoring: res.AppliedLeftFactoring,
		NewNonterminals:      res.NewNonterminals,
		Steps:                res.Steps,
		Details:              res.Details,
		Original:             SummarizeGrammar(res.Original),
		Transformed:          SummarizeGrammar(res.Transformed),
	}
}

// TableReport is the self-contained document the build command writes and
// the show command renders: the source grammar, the table summary, and the
// table cells in display form, one row per state.
type TableReport struct {
	Grammar *GrammarSummary     `json:"grammar"`
	Table   *TableSummary       `json:"table"`
	Actions []map[string]string `json:"actions"`
	Gotos   []map[string]int    `json:"gotos"`
}

// NewTableReport builds the report document for a grammar and the table
// built from it.
func NewTableReport(g *grammar.Grammar, t *grammar.ParseTable) *TableReport {
	actions := make([]map[string]string, len(t.Actions))
	for state, row := range t.Actions {
		actions[state] = map[string]string{}
		for sym, act := range row {
			actions[state][sym] = act.String()
		}
	}
	gotos := make([]map[string]int, len(t.Gotos))
	for state, row := range t.Gotos {
		gotos[state] = map[string]int{}
		for sym, next := range row {
			gotos[state][sym] = next
		}
	}
	return &TableReport{
		Grammar: SummarizeGrammar(g),
		Table:   SummarizeTable(t),
		Actions: actions,
		Gotos:   gotos,
	}
}
