package grammar

import "testing"

type followEntryTest struct {
	nt      string
	symbols []string
	eof     bool
}

func TestComputeFollow(t *testing.T) {
	tests := []struct {
		caption string
		src     string
		entries []followEntryTest
	}{
		{
			caption: "left-recursive expression grammar",
			src:     exprSrc,
			entries: []followEntryTest{
				{nt: "E", symbols: []string{")", "+"}, eof: true},
				{nt: "T", symbols: []string{")", "*", "+"}, eof: true},
				{nt: "F", symbols: []string{")", "*", "+"}, eof: true},
			},
		},
		{
			caption: "a nullable suffix passes the left-hand side's FOLLOW through",
			src: `
S -> A B
A -> a
B -> b |
`,
			entries: []followEntryTest{
				{nt: "S", symbols: []string{}, eof: true},
				{nt: "A", symbols: []string{"b"}, eof: true},
				{nt: "B", symbols: []string{}, eof: true},
			},
		},
		{
			caption: "a non-terminal followed by itself",
			src: `
S -> ( S ) | a
`,
			entries: []followEntryTest{
				{nt: "S", symbols: []string{")"}, eof: true},
			},
		},
		{
			caption: "FOLLOW flows along a chain of tails",
			src: `
S -> A c
A -> B
B -> b
`,
			entries: []followEntryTest{
				{nt: "S", symbols: []string{}, eof: true},
				{nt: "A", symbols: []string{"c"}},
				{nt: "B", symbols: []string{"c"}},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			g := mustGrammar(t, tt.src)
			flw := ComputeFollow(g, ComputeFirst(g))

			for _, e := range tt.entries {
				entry := flw.Of(e.nt)
				if entry == nil {
					t.Fatalf("a FOLLOW entry was not found; non-terminal: %v", e.nt)
				}
				if entry.EOF() != e.eof {
					t.Errorf("EOF is mismatched; non-terminal: %v, want: %v, got: %v", e.nt, e.eof, entry.EOF())
				}
				testStrings(t, "FOLLOW("+e.nt+")", e.symbols, entry.Symbols())
			}
		})
	}
}

func TestFollowEntry_terminals(t *testing.T) {
	g := mustGrammar(t, exprSrc)
	flw := ComputeFollow(g, ComputeFirst(g))

	entry := flw.Of("E")
	testStrings(t, "FOLLOW(E) with the end marker", []string{"$", ")", "+"}, entry.Terminals())

	if !entry.Has(")") {
		t.Errorf("FOLLOW(E) must contain )")
	}
	if !entry.Has(EndMarker) {
		t.Errorf("FOLLOW(E) must report the end marker")
	}
	if entry.Has("*") {
		t.Errorf("FOLLOW(E) must not contain *")
	}
}

func TestFollowSet_ofNonNonterminal(t *testing.T) {
	g := mustGrammar(t, exprSrc)
	flw := ComputeFollow(g, ComputeFirst(g))

	if flw.Of("id") != nil {
		t.Errorf("a terminal must have no FOLLOW entry")
	}
	if flw.Of("unknown") != nil {
		t.Errorf("an unknown symbol must have no FOLLOW entry")
	}
}
