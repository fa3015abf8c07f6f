package grammar

import (
	"go.uber.org/zap"

	"github.com/gramtab/gramtab/trace"
)

// Kind identifies which construction produced a parsing table.
type Kind string

const (
	KindSLR  Kind = "SLR(1)"
	KindCLR  Kind = "CLR(1)"
	KindLALR Kind = "LALR(1)"
)

// Builder turns a grammar into a parsing table. Implementations differ
// only in which canonical collection they build and where reduce
// lookaheads come from.
type Builder interface {
	Build(g *Grammar) (*ParseTable, error)
	Kind() Kind
}

// fillTable writes the ACTION and GOTO cells for every state of a
// collection. Shifts come from terminal transitions; a completed augmented
// production writes accept on the end marker; any other completed item
// writes reduces, on the FOLLOW set of its left-hand side when follow is
// given (SLR), on its own lookahead otherwise (CLR/LALR). Items are
// visited in canonical state order and reduce columns in sorted order, so
// cell contents and the conflict list depend only on the collection.
func fillTable(a *Automaton, follow *FollowSet) *tableWriter {
	w := newTableWriter(len(a.States))
	for _, state := range a.States {
		for _, item := range state.Items {
			if item.IsComplete(a.Grammar) {
				prod := a.Grammar.Productions[item.Prod]
				if prod.Lhs == a.Grammar.Start {
					w.writeAction(state.ID, EndMarker, Action{Type: ActionAccept})
					continue
				}
				reduce := Action{Type: ActionReduce, Prod: item.Prod}
				if follow != nil {
					for _, sym := range follow.Of(prod.Lhs).Terminals() {
						w.writeAction(state.ID, sym, reduce)
					}
				} else {
					w.writeAction(state.ID, item.Lookahead, reduce)
				}
				continue
			}

			sym, _ := item.NextSymbol(a.Grammar)
			if !a.Grammar.IsTerminal(sym) {
				continue
			}
			if next, ok := a.Transition(state.ID, sym); ok {
				w.writeAction(state.ID, sym, Action{Type: ActionShift, State: next})
			}
		}

		for _, nt := range a.Grammar.Nonterminals() {
			if next, ok := a.Transition(state.ID, nt); ok {
				w.writeGoto(state.ID, nt, next)
			}
		}
	}
	return w
}

func newParseTable(kind Kind, a *Automaton, w *tableWriter) *ParseTable {
	trace.L().Debug("parsing table built",
		zap.String("kind", string(kind)),
		zap.Int("states", len(a.States)),
		zap.Int("conflicts", len(w.conflicts)))

	return &ParseTable{
		Kind:      kind,
		Automaton: a,
		Actions:   w.actions,
		Gotos:     w.gotos,
		Conflicts: w.conflicts,
	}
}
