package grammar

import "testing"

const exprSrc = `
E -> E + T | T
T -> T * F | F
F -> ( E ) | id
`

const pairSrc = `
S -> C C
C -> c C | d
`

func mustGrammar(t *testing.T, src string) *Grammar {
	t.Helper()

	g, err := ParseText(src)
	if err != nil {
		t.Fatalf("failed to parse a grammar source: %v", err)
	}
	return g
}

func formatItems(g *Grammar, items []Item) []string {
	strs := make([]string, len(items))
	for i, item := range items {
		strs[i] = item.Format(g)
	}
	return strs
}

func testStrings(t *testing.T, caption string, want, got []string) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("%v is mismatched;\nwant: %v\ngot: %v", caption, want, got)
	}
	for i, w := range want {
		if got[i] != w {
			t.Fatalf("%v is mismatched;\nwant: %v\ngot: %v", caption, want, got)
		}
	}
}

func testItems(t *testing.T, g *Grammar, want []string, got []Item) {
	t.Helper()

	testStrings(t, "item set", want, formatItems(g, got))
}
