package grammar

import (
	"fmt"
	"strings"
)

const (
	// Epsilon marks an empty production body in grammar text and in display
	// forms. It never appears inside a Production's RHS; an empty body is an
	// empty RHS.
	Epsilon = "ε"

	// EndMarker terminates token input and seeds FOLLOW of the start symbol.
	// It is reserved and cannot be used as a grammar symbol.
	EndMarker = "$"
)

// Production is a single rewrite rule. An empty Rhs means the production
// derives the empty sequence. Productions are treated as immutable values
// once a Grammar owns them.
type Production struct {
	Lhs string
	Rhs []string
}

func (p *Production) IsEmpty() bool {
	return len(p.Rhs) == 0
}

func (p *Production) Equal(q *Production) bool {
	if q == nil || p.Lhs != q.Lhs || len(p.Rhs) != len(q.Rhs) {
		return false
	}
	for i, sym := range p.Rhs {
		if q.Rhs[i] != sym {
			return false
		}
	}
	return true
}

func (p *Production) String() string {
	if p.IsEmpty() {
		return fmt.Sprintf("%v -> %v", p.Lhs, Epsilon)
	}
	return fmt.Sprintf("%v -> %v", p.Lhs, strings.Join(p.Rhs, " "))
}

// Grammar is an ordered sequence of productions plus a start symbol. The
// symbol inventories are derived at construction: every LHS is a
// non-terminal, every other RHS symbol is a terminal. A Grammar is immutable
// once constructed.
type Grammar struct {
	Start       string
	Productions []*Production

	nonterminals map[string]struct{}
	terminals    map[string]struct{}
	ntOrder      []string
	termOrder    []string
	lhsIndex     map[string][]int
}

// New builds a Grammar from a start symbol and productions. The start symbol
// must occur as a left-hand side, and neither the empty marker nor the end
// marker may occur as a grammar symbol.
func New(start string, prods []*Production) (*Grammar, error) {
	if len(prods) == 0 {
		return nil, ErrEmptyGrammar
	}
	lhss := map[string]struct{}{}
	for _, prod := range prods {
		if prod.Lhs == "" {
			return nil, fmt.Errorf("production has an empty left-hand side: %v", prod)
		}
		if prod.Lhs == Epsilon || prod.Lhs == EndMarker {
			return nil, fmt.Errorf("%v is reserved and cannot be a non-terminal", prod.Lhs)
		}
		lhss[prod.Lhs] = struct{}{}
	}
	for _, prod := range prods {
		for _, sym := range prod.Rhs {
			if sym == Epsilon {
				return nil, fmt.Errorf("the empty marker cannot appear inside a non-empty body: %v", prod)
			}
			if sym == EndMarker {
				return nil, fmt.Errorf("the end marker is reserved: %v", prod)
			}
		}
	}
	if _, ok := lhss[start]; !ok {
		return nil, fmt.Errorf("start symbol %v has no productions", start)
	}
	return newGrammar(start, prods), nil
}

// newGrammar derives the symbol inventories. Callers must have validated the
// productions already.
func newGrammar(start string, prods []*Production) *Grammar {
	g := &Grammar{
		Start:        start,
		Productions:  prods,
		nonterminals: map[string]struct{}{},
		terminals:    map[string]struct{}{},
		lhsIndex:     map[string][]int{},
	}
	for i, prod := range prods {
		if _, ok := g.nonterminals[prod.Lhs]; !ok {
			g.nonterminals[prod.Lhs] = struct{}{}
			g.ntOrder = append(g.ntOrder, prod.Lhs)
		}
		g.lhsIndex[prod.Lhs] = append(g.lhsIndex[prod.Lhs], i)
	}
	for _, prod := range prods {
		for _, sym := range prod.Rhs {
			if _, ok := g.nonterminals[sym]; ok {
				continue
			}
			if _, ok := g.terminals[sym]; ok {
				continue
			}
			g.terminals[sym] = struct{}{}
			g.termOrder = append(g.termOrder, sym)
		}
	}
	return g
}

// Augment returns a new grammar with a fresh start symbol and a single
// production rewriting to the old start symbol, prepended at position 0.
// Automaton construction and acceptance detection identify the augmented
// production positionally.
func (g *Grammar) Augment() *Grammar {
	start := g.Start + "'"
	for g.HasSymbol(start) {
		start += "'"
	}
	prods := make([]*Production, 0, len(g.Productions)+1)
	prods = append(prods, &Production{Lhs: start, Rhs: []string{g.Start}})
	prods = append(prods, g.Productions...)
	return newGrammar(start, prods)
}

// Nonterminals lists the non-terminal symbols in first-appearance order.
func (g *Grammar) Nonterminals() []string {
	return g.ntOrder
}

// Terminals lists the terminal symbols in first-appearance order.
func (g *Grammar) Terminals() []string {
	return g.termOrder
}

// Symbols lists all grammar symbols: non-terminals first, then terminals,
// each in first-appearance order. The end marker is not a grammar symbol.
func (g *Grammar) Symbols() []string {
	syms := make([]string, 0, len(g.ntOrder)+len(g.termOrder))
	syms = append(syms, g.ntOrder...)
	syms = append(syms, g.termOrder...)
	return syms
}

func (g *Grammar) IsNonterminal(sym string) bool {
	_, ok := g.nonterminals[sym]
	return ok
}

func (g *Grammar) IsTerminal(sym string) bool {
	_, ok := g.terminals[sym]
	return ok
}

func (g *Grammar) HasSymbol(sym string) bool {
	return g.IsNonterminal(sym) || g.IsTerminal(sym)
}

// PositionsOf returns the indexes of all productions whose left-hand side is
// lhs, in grammar order.
func (g *Grammar) PositionsOf(lhs string) []int {
	return g.lhsIndex[lhs]
}

// ProductionsOf returns all productions whose left-hand side is lhs, in
// grammar order.
func (g *Grammar) ProductionsOf(lhs string) []*Production {
	positions := g.lhsIndex[lhs]
	prods := make([]*Production, len(positions))
	for i, pos := range positions {
		prods[i] = g.Productions[pos]
	}
	return prods
}
