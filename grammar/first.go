package grammar

import "sort"

// FirstEntry is the FIRST set of a single symbol or sequence: the terminals
// that can begin a derivation, plus an Empty flag recording whether the
// whole thing can derive the empty sequence. The empty marker is never a
// member; it is the flag.
type FirstEntry struct {
	symbols map[string]struct{}
	empty   bool
}

func newFirstEntry() *FirstEntry {
	return &FirstEntry{
		symbols: map[string]struct{}{},
	}
}

// Symbols lists the member terminals in sorted order.
func (e *FirstEntry) Symbols() []string {
	syms := make([]string, 0, len(e.symbols))
	for sym := range e.symbols {
		syms = append(syms, sym)
	}
	sort.Strings(syms)
	return syms
}

// Empty reports whether the symbol (or sequence) can derive the empty
// sequence.
func (e *FirstEntry) Empty() bool {
	return e.empty
}

func (e *FirstEntry) Has(sym string) bool {
	_, ok := e.symbols[sym]
	return ok
}

func (e *FirstEntry) add(sym string) bool {
	if _, ok := e.symbols[sym]; ok {
		return false
	}
	e.symbols[sym] = struct{}{}
	return true
}

func (e *FirstEntry) addEmpty() bool {
	if !e.empty {
		e.empty = true
		return true
	}
	return false
}

func (e *FirstEntry) mergeExceptEmpty(target *FirstEntry) bool {
	if target == nil {
		return false
	}
	changed := false
	for sym := range target.symbols {
		if e.add(sym) {
			changed = true
		}
	}
	return changed
}

// FirstSet holds the FIRST entries of every symbol of a grammar. Terminals
// and the end marker map to themselves.
type FirstSet struct {
	g   *Grammar
	set map[string]*FirstEntry
}

// ComputeFirst computes FIRST for every symbol of g by fixed-point
// iteration over the productions: each production propagates the FIRST
// entries of its right-hand symbols into its left-hand side until a symbol
// that cannot derive the empty sequence stops the walk.
func ComputeFirst(g *Grammar) *FirstSet {
	fst := &FirstSet{
		g:   g,
		set: map[string]*FirstEntry{},
	}
	for _, nt := range g.Nonterminals() {
		fst.set[nt] = newFirstEntry()
	}

	for {
		more := false
		for _, prod := range g.Productions {
			acc := fst.set[prod.Lhs]
			if genProdFirstEntry(fst, acc, prod) {
				more = true
			}
		}
		if !more {
			break
		}
	}

	return fst
}

func genProdFirstEntry(fst *FirstSet, acc *FirstEntry, prod *Production) bool {
	if prod.IsEmpty() {
		return acc.addEmpty()
	}

	changed := false
	for _, sym := range prod.Rhs {
		if !fst.g.IsNonterminal(sym) {
			if acc.add(sym) {
				changed = true
			}
			return changed
		}

		e := fst.set[sym]
		if acc.mergeExceptEmpty(e) {
			changed = true
		}
		if !e.empty {
			return changed
		}
	}
	if acc.addEmpty() {
		changed = true
	}
	return changed
}

// Of returns the FIRST entry of a single symbol. Terminals and the end
// marker yield an entry containing only themselves. Unknown symbols yield
// nil.
func (fst *FirstSet) Of(sym string) *FirstEntry {
	if e, ok := fst.set[sym]; ok {
		return e
	}
	if fst.g.IsTerminal(sym) || sym == EndMarker {
		e := newFirstEntry()
		e.add(sym)
		return e
	}
	return nil
}

// OfSequence returns FIRST of a sequence of symbols: the union of each
// symbol's FIRST up to and including the first symbol that cannot derive
// the empty sequence. The empty sequence yields an entry with only the
// Empty flag set.
func (fst *FirstSet) OfSequence(syms []string) *FirstEntry {
	entry := newFirstEntry()
	for _, sym := range syms {
		if !fst.g.IsNonterminal(sym) {
			entry.add(sym)
			return entry
		}

		e := fst.set[sym]
		entry.mergeExceptEmpty(e)
		if !e.empty {
			return entry
		}
	}
	entry.addEmpty()
	return entry
}
