package grammar

import "testing"

func TestItem_dotWalk(t *testing.T) {
	g := mustGrammar(t, exprSrc).Augment()

	// Production 1 of the augmented grammar is E -> E + T.
	tests := []struct {
		dot      int
		complete bool
		next     string
		format   string
	}{
		{dot: 0, next: "E", format: "E -> ・E + T"},
		{dot: 1, next: "+", format: "E -> E ・+ T"},
		{dot: 2, next: "T", format: "E -> E + ・T"},
		{dot: 3, complete: true, format: "E -> E + T ・"},
	}
	item := Item{Prod: 1}
	for _, tt := range tests {
		if item.Dot != tt.dot {
			t.Fatalf("dot is mismatched; want: %v, got: %v", tt.dot, item.Dot)
		}
		if item.IsComplete(g) != tt.complete {
			t.Errorf("complete is mismatched at dot %v; want: %v, got: %v", tt.dot, tt.complete, item.IsComplete(g))
		}
		next, ok := item.NextSymbol(g)
		if tt.complete {
			if ok {
				t.Errorf("a complete item must have no next symbol; got: %v", next)
			}
		} else {
			if !ok || next != tt.next {
				t.Errorf("next symbol is mismatched at dot %v; want: %v, got: %v", tt.dot, tt.next, next)
			}
		}
		if got := item.Format(g); got != tt.format {
			t.Errorf("format is mismatched at dot %v; want: %v, got: %v", tt.dot, tt.format, got)
		}
		item = item.Advance()
	}
}

func TestItem_emptyProduction(t *testing.T) {
	g := mustGrammar(t, `
S -> A b
A ->
`).Augment()

	// Production 2 of the augmented grammar is A -> ε.
	item := Item{Prod: 2}
	if !item.IsComplete(g) {
		t.Errorf("an item on an empty production must be complete at dot 0")
	}
	if _, ok := item.NextSymbol(g); ok {
		t.Errorf("an item on an empty production must have no next symbol")
	}
	if got := item.Format(g); got != "A -> ・" {
		t.Errorf("format is mismatched; want: A -> ・, got: %v", got)
	}
}

func TestItem_formatWithLookahead(t *testing.T) {
	g := mustGrammar(t, pairSrc).Augment()

	item := Item{Prod: 0, Dot: 1, Lookahead: EndMarker}
	if got := item.Format(g); got != "S' -> S ・, $" {
		t.Errorf("format is mismatched; want: S' -> S ・, $, got: %v", got)
	}
}

func TestItem_core(t *testing.T) {
	item := Item{Prod: 3, Dot: 1, Lookahead: "c"}
	core := item.Core()
	if core != (Item{Prod: 3, Dot: 1}) {
		t.Errorf("core is mismatched; got: %+v", core)
	}
	if item.Lookahead != "c" {
		t.Errorf("the source item must be left untouched; got: %+v", item)
	}
}

func TestSortItems(t *testing.T) {
	items := []Item{
		{Prod: 2, Dot: 0, Lookahead: "d"},
		{Prod: 1, Dot: 1},
		{Prod: 2, Dot: 0, Lookahead: "c"},
		{Prod: 1, Dot: 0},
	}
	sortItems(items)

	want := []Item{
		{Prod: 1, Dot: 0},
		{Prod: 1, Dot: 1},
		{Prod: 2, Dot: 0, Lookahead: "c"},
		{Prod: 2, Dot: 0, Lookahead: "d"},
	}
	for i, w := range want {
		if items[i] != w {
			t.Fatalf("order is mismatched;\nwant: %+v\ngot: %+v", want, items)
		}
	}
}

func TestNewState(t *testing.T) {
	items := []Item{
		{Prod: 2, Dot: 1},
		{Prod: 1, Dot: 0},
		{Prod: 2, Dot: 1},
	}
	s := newState(4, items)

	if s.ID != 4 {
		t.Errorf("id is mismatched; want: 4, got: %v", s.ID)
	}
	if len(s.Items) != 2 {
		t.Fatalf("duplicate items must collapse; got: %+v", s.Items)
	}
	if s.Items[0] != (Item{Prod: 1, Dot: 0}) || s.Items[1] != (Item{Prod: 2, Dot: 1}) {
		t.Errorf("items must be sorted; got: %+v", s.Items)
	}
}

func TestStateFingerprint(t *testing.T) {
	a := newState(0, []Item{
		{Prod: 1, Dot: 0},
		{Prod: 2, Dot: 1, Lookahead: "c"},
	})
	b := newState(9, []Item{
		{Prod: 2, Dot: 1, Lookahead: "c"},
		{Prod: 1, Dot: 0},
		{Prod: 1, Dot: 0},
	})
	if a.fp != b.fp {
		t.Errorf("states with the same items must share a fingerprint")
	}

	c := newState(0, []Item{
		{Prod: 1, Dot: 0},
		{Prod: 2, Dot: 1, Lookahead: "d"},
	})
	if a.fp == c.fp {
		t.Errorf("states with different lookaheads must not share a fingerprint")
	}

	d := newState(0, []Item{
		{Prod: 1, Dot: 1},
		{Prod: 2, Dot: 1, Lookahead: "c"},
	})
	if a.fp == d.fp {
		t.Errorf("states with different dots must not share a fingerprint")
	}
}

func TestStateCoreFingerprint(t *testing.T) {
	a := newState(0, []Item{
		{Prod: 2, Dot: 1, Lookahead: "c"},
		{Prod: 2, Dot: 1, Lookahead: "d"},
	})
	b := newState(1, []Item{
		{Prod: 2, Dot: 1, Lookahead: EndMarker},
	})
	if a.fp == b.fp {
		t.Fatalf("the full fingerprints must differ")
	}
	if a.coreFingerprint() != b.coreFingerprint() {
		t.Errorf("states sharing a core must share a core fingerprint")
	}

	c := newState(2, []Item{
		{Prod: 2, Dot: 2, Lookahead: EndMarker},
	})
	if a.coreFingerprint() == c.coreFingerprint() {
		t.Errorf("states with different cores must not share a core fingerprint")
	}
}
