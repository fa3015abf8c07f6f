package grammar

import "sort"

// FollowEntry is the FOLLOW set of a non-terminal: the terminals that can
// appear immediately after it in a sentential form, plus an EOF flag
// recording whether the end of input can follow it. The end marker is never
// a member; it is the flag.
type FollowEntry struct {
	symbols map[string]struct{}
	eof     bool
}

func newFollowEntry() *FollowEntry {
	return &FollowEntry{
		symbols: map[string]struct{}{},
	}
}

// Symbols lists the member terminals in sorted order, without the end
// marker.
func (e *FollowEntry) Symbols() []string {
	syms := make([]string, 0, len(e.symbols))
	for sym := range e.symbols {
		syms = append(syms, sym)
	}
	sort.Strings(syms)
	return syms
}

// EOF reports whether the end of input can follow the non-terminal.
func (e *FollowEntry) EOF() bool {
	return e.eof
}

// Has reports membership. The end marker reports the EOF flag.
func (e *FollowEntry) Has(sym string) bool {
	if sym == EndMarker {
		return e.eof
	}
	_, ok := e.symbols[sym]
	return ok
}

// Terminals lists the member terminals plus the end marker when the EOF
// flag is set, in sorted order. This is the column set a table builder
// writes reduce actions on.
func (e *FollowEntry) Terminals() []string {
	syms := make([]string, 0, len(e.symbols)+1)
	for sym := range e.symbols {
		syms = append(syms, sym)
	}
	if e.eof {
		syms = append(syms, EndMarker)
	}
	sort.Strings(syms)
	return syms
}

func (e *FollowEntry) add(sym string) bool {
	if _, ok := e.symbols[sym]; ok {
		return false
	}
	e.symbols[sym] = struct{}{}
	return true
}

func (e *FollowEntry) addEOF() bool {
	if !e.eof {
		e.eof = true
		return true
	}
	return false
}

func (e *FollowEntry) merge(fst *FirstEntry, flw *FollowEntry) bool {
	changed := false
	if fst != nil {
		for sym := range fst.symbols {
			if e.add(sym) {
				changed = true
			}
		}
	}
	if flw != nil {
		for sym := range flw.symbols {
			if e.add(sym) {
				changed = true
			}
		}
		if flw.eof {
			if e.addEOF() {
				changed = true
			}
		}
	}
	return changed
}

// FollowSet holds the FOLLOW entries of every non-terminal of a grammar.
type FollowSet struct {
	g   *Grammar
	set map[string]*FollowEntry
}

// ComputeFollow computes FOLLOW for every non-terminal of g by fixed-point
// iteration: the start symbol is seeded with EOF, each occurrence of a
// non-terminal receives FIRST of the remainder of its production, and the
// left-hand side's FOLLOW when that remainder can derive the empty
// sequence.
func ComputeFollow(g *Grammar, first *FirstSet) *FollowSet {
	flw := &FollowSet{
		g:   g,
		set: map[string]*FollowEntry{},
	}
	for _, nt := range g.Nonterminals() {
		flw.set[nt] = newFollowEntry()
	}
	flw.set[g.Start].addEOF()

	for {
		more := false
		for _, prod := range g.Productions {
			for i, sym := range prod.Rhs {
				acc := flw.set[sym]
				if acc == nil {
					continue
				}

				rest := first.OfSequence(prod.Rhs[i+1:])
				if acc.merge(rest, nil) {
					more = true
				}
				if rest.empty {
					if acc.merge(nil, flw.set[prod.Lhs]) {
						more = true
					}
				}
			}
		}
		if !more {
			break
		}
	}

	return flw
}

// Of returns the FOLLOW entry of a non-terminal, or nil for any other
// symbol.
func (flw *FollowSet) Of(sym string) *FollowEntry {
	return flw.set[sym]
}
