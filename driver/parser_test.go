package driver

import (
	"strings"
	"testing"

	"github.com/gramtab/gramtab/grammar"
)

const exprGrammar = `
E -> E + T | T
T -> T * F | F
F -> ( E ) | id
`

func buildTable(t *testing.T, src string, b grammar.Builder) *grammar.ParseTable {
	t.Helper()

	g, err := grammar.ParseText(src)
	if err != nil {
		t.Fatal(err)
	}
	table, err := b.Build(g)
	if err != nil {
		t.Fatal(err)
	}
	return table
}

func countActions(steps []*ParseStep, prefix string) int {
	n := 0
	for _, step := range steps {
		if strings.HasPrefix(step.Action, prefix) {
			n++
		}
	}
	return n
}

func TestParser_Parse(t *testing.T) {
	tests := []struct {
		caption  string
		src      string
		input    string
		accepted bool
	}{
		{
			caption:  "a classic expression is accepted",
			src:      exprGrammar,
			input:    "id + id * id",
			accepted: true,
		},
		{
			caption:  "parentheses are accepted",
			src:      exprGrammar,
			input:    "( id + id ) * id",
			accepted: true,
		},
		{
			caption:  "a truncated expression is rejected",
			src:      exprGrammar,
			input:    "id +",
			accepted: false,
		},
		{
			caption:  "adjacent operands are rejected",
			src:      exprGrammar,
			input:    "id id",
			accepted: false,
		},
		{
			caption:  "an unknown token is rejected",
			src:      exprGrammar,
			input:    "id - id",
			accepted: false,
		},
		{
			caption:  "the empty input is rejected when a terminal is required",
			src:      exprGrammar,
			input:    "",
			accepted: false,
		},
		{
			caption:  "an empty production body reduces to an empty-marker leaf",
			src:      `S -> a S b | ε`,
			input:    "a a b b",
			accepted: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			for _, b := range []grammar.Builder{
				grammar.NewSLRBuilder(),
				grammar.NewCLRBuilder(),
				grammar.NewLALRBuilder(),
			} {
				p, err := NewParser(buildTable(t, tt.src, b))
				if err != nil {
					t.Fatal(err)
				}

				res := p.Parse(tt.input)
				if res.Accepted != tt.accepted {
					t.Fatalf("%v: unexpected acceptance; want: %v, got: %v", b.Kind(), tt.accepted, res.Accepted)
				}
				if len(res.Steps) == 0 {
					t.Fatalf("%v: the trace must not be empty", b.Kind())
				}
				last := res.Steps[len(res.Steps)-1]
				if tt.accepted {
					if last.Action != "accept" {
						t.Fatalf("%v: the last step must be accept; got: %v", b.Kind(), last.Action)
					}
					if res.Tree == nil {
						t.Fatalf("%v: an accepted parse must return a tree", b.Kind())
					}
				} else {
					if !strings.HasPrefix(last.Action, "error") {
						t.Fatalf("%v: the last step must describe the error; got: %v", b.Kind(), last.Action)
					}
					if res.Tree != nil {
						t.Fatalf("%v: a rejected parse must not return a tree", b.Kind())
					}
				}
			}
		})
	}
}

func TestParser_Parse_classicTrace(t *testing.T) {
	p, err := NewParser(buildTable(t, exprGrammar, grammar.NewSLRBuilder()))
	if err != nil {
		t.Fatal(err)
	}

	res := p.Parse("id + id * id")
	if !res.Accepted {
		t.Fatalf("the input must be accepted")
	}
	if len(res.Steps) != 14 {
		t.Fatalf("unexpected step count; want: %v, got: %v", 14, len(res.Steps))
	}
	if n := countActions(res.Steps, "shift"); n != 5 {
		t.Fatalf("unexpected shift count; want: %v, got: %v", 5, n)
	}
	if n := countActions(res.Steps, "reduce"); n != 8 {
		t.Fatalf("unexpected reduce count; want: %v, got: %v", 8, n)
	}
	if n := countActions(res.Steps, "accept"); n != 1 {
		t.Fatalf("unexpected accept count; want: %v, got: %v", 1, n)
	}

	if res.Steps[0].Stack != "0" {
		t.Fatalf("the trace must start at the bottom state; got: %v", res.Steps[0].Stack)
	}
	if res.Steps[0].Input != "id + id * id $" {
		t.Fatalf("the trace must show the full input with the end marker; got: %v", res.Steps[0].Input)
	}
}

func TestParser_Parse_tree(t *testing.T) {
	tests := []struct {
		caption string
		src     string
		input   string
		tree    *Node
	}{
		{
			caption: "reductions nest bottom-up",
			src:     exprGrammar,
			input:   "id + id",
			tree: &Node{Symbol: "E", Children: []*Node{
				{Symbol: "E", Children: []*Node{
					{Symbol: "T", Children: []*Node{
						{Symbol: "F", Children: []*Node{
							{Symbol: "id"},
						}},
					}},
				}},
				{Symbol: "+"},
				{Symbol: "T", Children: []*Node{
					{Symbol: "F", Children: []*Node{
						{Symbol: "id"},
					}},
				}},
			}},
		},
		{
			caption: "an empty reduction synthesizes a single empty-marker child",
			src:     `S -> a S b | ε`,
			input:   "a b",
			tree: &Node{Symbol: "S", Children: []*Node{
				{Symbol: "a"},
				{Symbol: "S", Children: []*Node{
					{Symbol: grammar.Epsilon},
				}},
				{Symbol: "b"},
			}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			p, err := NewParser(buildTable(t, tt.src, grammar.NewSLRBuilder()))
			if err != nil {
				t.Fatal(err)
			}

			res := p.Parse(tt.input)
			if !res.Accepted {
				t.Fatalf("the input must be accepted")
			}
			testNode(t, res.Tree, tt.tree)
		})
	}
}

func testNode(t *testing.T, node, expected *Node) {
	t.Helper()

	if node == nil {
		t.Fatalf("a node must not be nil")
	}
	if node.Symbol != expected.Symbol {
		t.Fatalf("unexpected symbol; want: %v, got: %v", expected.Symbol, node.Symbol)
	}
	if len(node.Children) != len(expected.Children) {
		t.Fatalf("unexpected child count of %v; want: %v, got: %v", node.Symbol, len(expected.Children), len(node.Children))
	}
	for i, child := range node.Children {
		testNode(t, child, expected.Children[i])
	}
}

func TestParser_Parse_errorStep(t *testing.T) {
	p, err := NewParser(buildTable(t, exprGrammar, grammar.NewSLRBuilder()))
	if err != nil {
		t.Fatal(err)
	}

	res := p.Parse("")
	if res.Accepted {
		t.Fatalf("the empty input must be rejected")
	}
	if len(res.Steps) != 1 {
		t.Fatalf("unexpected step count; want: %v, got: %v", 1, len(res.Steps))
	}
	step := res.Steps[0]
	if step.Stack != "0" || step.Input != grammar.EndMarker {
		t.Fatalf("the error step must snapshot the initial configuration; got: %+v", step)
	}
	if !strings.Contains(step.Action, "no action") {
		t.Fatalf("the error step must describe the missing entry; got: %v", step.Action)
	}
}

func TestNewParser_validation(t *testing.T) {
	if _, err := NewParser(nil); err == nil {
		t.Fatalf("a nil table must be rejected")
	}
	if _, err := NewParser(&grammar.ParseTable{}); err == nil {
		t.Fatalf("a table without an automaton must be rejected")
	}
}

func TestPrintTree(t *testing.T) {
	p, err := NewParser(buildTable(t, exprGrammar, grammar.NewLALRBuilder()))
	if err != nil {
		t.Fatal(err)
	}

	res := p.Parse("id * id")
	if !res.Accepted {
		t.Fatalf("the input must be accepted")
	}

	var b strings.Builder
	PrintTree(&b, res.Tree)
	out := b.String()
	if !strings.HasPrefix(out, "E\n") {
		t.Fatalf("the rendering must start at the root; got: %v", out)
	}
	if !strings.Contains(out, "└─ ") {
		t.Fatalf("the rendering must contain ruled lines; got: %v", out)
	}
}
