package grammar

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"sort"
	"strings"
)

// Item is a production with a dot position and an optional lookahead.
// An empty lookahead makes it an LR(0) item, otherwise an LR(1) item.
//
// The dot position counts consumed right-hand symbols:
//
//	E → ・E + T : Dot = 0
//	E → E ・+ T : Dot = 1
//	E → E +・T  : Dot = 2
//	E → E + T・ : Dot = 3
//
// An item on a production with an empty right-hand side is complete at
// Dot = 0.
type Item struct {
	// Prod is the index of the production in the automaton's grammar.
	Prod int

	// Dot is the number of right-hand symbols to the left of the dot.
	Dot int

	// Lookahead is the terminal (or end marker) expected after a
	// reduction by this item. Empty for LR(0) items.
	Lookahead string
}

// IsComplete reports whether the dot has passed the whole right-hand side.
func (i Item) IsComplete(g *Grammar) bool {
	return i.Dot >= len(g.Productions[i.Prod].Rhs)
}

// NextSymbol returns the symbol immediately after the dot.
func (i Item) NextSymbol(g *Grammar) (string, bool) {
	rhs := g.Productions[i.Prod].Rhs
	if i.Dot >= len(rhs) {
		return "", false
	}
	return rhs[i.Dot], true
}

// Advance returns the item with the dot moved one symbol to the right.
func (i Item) Advance() Item {
	return Item{
		Prod:      i.Prod,
		Dot:       i.Dot + 1,
		Lookahead: i.Lookahead,
	}
}

// Core returns the item without its lookahead.
func (i Item) Core() Item {
	return Item{
		Prod: i.Prod,
		Dot:  i.Dot,
	}
}

// Format renders the item with its dot, and lookahead when present, like
// `E -> E ・+ T, $`.
func (i Item) Format(g *Grammar) string {
	prod := g.Productions[i.Prod]
	var b strings.Builder
	fmt.Fprintf(&b, "%v ->", prod.Lhs)
	for n, sym := range prod.Rhs {
		if n == i.Dot {
			fmt.Fprintf(&b, " ・%v", sym)
			continue
		}
		fmt.Fprintf(&b, " %v", sym)
	}
	if i.Dot >= len(prod.Rhs) {
		fmt.Fprintf(&b, " ・")
	}
	if i.Lookahead != "" {
		fmt.Fprintf(&b, ", %v", i.Lookahead)
	}
	return b.String()
}

func sortItems(items []Item) {
	sort.Slice(items, func(a, b int) bool {
		if items[a].Prod != items[b].Prod {
			return items[a].Prod < items[b].Prod
		}
		if items[a].Dot != items[b].Dot {
			return items[a].Dot < items[b].Dot
		}
		return items[a].Lookahead < items[b].Lookahead
	})
}

type stateID [sha256.Size]byte

func (id stateID) String() string {
	return fmt.Sprintf("%x", id[:])
}

func fingerprintItems(items []Item) stateID {
	buf := make([]byte, 0, len(items)*16)
	var num [8]byte
	for _, item := range items {
		binary.LittleEndian.PutUint32(num[:4], uint32(item.Prod))
		binary.LittleEndian.PutUint32(num[4:], uint32(item.Dot))
		buf = append(buf, num[:]...)
		buf = append(buf, item.Lookahead...)
		buf = append(buf, 0)
	}
	return sha256.Sum256(buf)
}

// State is a set of items, canonically sorted and deduplicated, with its
// position in the automaton.
type State struct {
	ID    int
	Items []Item

	fp stateID
}

func newState(id int, items []Item) *State {
	seen := map[Item]struct{}{}
	distinct := make([]Item, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		distinct = append(distinct, item)
	}
	sortItems(distinct)
	return &State{
		ID:    id,
		Items: distinct,
		fp:    fingerprintItems(distinct),
	}
}

// coreFingerprint identifies the state by its items stripped of
// lookaheads. States sharing it collapse into one when an LR(1) collection
// is merged.
func (s *State) coreFingerprint() stateID {
	seen := map[Item]struct{}{}
	cores := make([]Item, 0, len(s.Items))
	for _, item := range s.Items {
		core := item.Core()
		if _, ok := seen[core]; ok {
			continue
		}
		seen[core] = struct{}{}
		cores = append(cores, core)
	}
	sortItems(cores)
	return fingerprintItems(cores)
}
