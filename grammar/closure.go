package grammar

// closure0 expands a set of LR(0) items: whenever the dot stands before a
// non-terminal, every production of that non-terminal joins the set with
// the dot at the left edge. Runs a worklist until no item is added.
func closure0(g *Grammar, items []Item) []Item {
	closed := make([]Item, 0, len(items))
	seen := map[Item]struct{}{}
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		closed = append(closed, item)
	}

	for i := 0; i < len(closed); i++ {
		sym, ok := closed[i].NextSymbol(g)
		if !ok || !g.IsNonterminal(sym) {
			continue
		}
		for _, p := range g.PositionsOf(sym) {
			item := Item{Prod: p}
			if _, ok := seen[item]; ok {
				continue
			}
			seen[item] = struct{}{}
			closed = append(closed, item)
		}
	}

	return closed
}

// closure1 expands a set of LR(1) items. A kernel item A → α・Bβ with
// lookahead a spawns B-items carrying every terminal in FIRST(βa).
func closure1(g *Grammar, first *FirstSet, items []Item) []Item {
	closed := make([]Item, 0, len(items))
	seen := map[Item]struct{}{}
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		closed = append(closed, item)
	}

	for i := 0; i < len(closed); i++ {
		src := closed[i]
		sym, ok := src.NextSymbol(g)
		if !ok || !g.IsNonterminal(sym) {
			continue
		}

		rest := g.Productions[src.Prod].Rhs[src.Dot+1:]
		ahead := make([]string, 0, len(rest)+1)
		ahead = append(ahead, rest...)
		ahead = append(ahead, src.Lookahead)
		las := first.OfSequence(ahead).Symbols()

		for _, p := range g.PositionsOf(sym) {
			for _, la := range las {
				item := Item{Prod: p, Lookahead: la}
				if _, ok := seen[item]; ok {
					continue
				}
				seen[item] = struct{}{}
				closed = append(closed, item)
			}
		}
	}

	return closed
}

// advanceOn collects every item whose dot stands before sym, advanced one
// position. Returns nil when no item moves.
func advanceOn(g *Grammar, items []Item, sym string) []Item {
	var moved []Item
	for _, item := range items {
		next, ok := item.NextSymbol(g)
		if !ok || next != sym {
			continue
		}
		moved = append(moved, item.Advance())
	}
	return moved
}

// goto0 computes the LR(0) transition of a closed item set on sym.
func goto0(g *Grammar, items []Item, sym string) []Item {
	moved := advanceOn(g, items, sym)
	if len(moved) == 0 {
		return nil
	}
	return closure0(g, moved)
}

// goto1 computes the LR(1) transition of a closed item set on sym.
func goto1(g *Grammar, first *FirstSet, items []Item, sym string) []Item {
	moved := advanceOn(g, items, sym)
	if len(moved) == 0 {
		return nil
	}
	return closure1(g, first, moved)
}
