package ll1

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/stacks/arraystack"
	"go.uber.org/zap"

	"github.com/gramtab/gramtab/grammar"
	"github.com/gramtab/gramtab/trace"
)

// Step is one numbered snapshot of the predictive parse loop. Match and
// error steps show the stack as the action saw it; an expansion step shows
// the stack after the non-terminal was rewritten.
type Step struct {
	Number int    `json:"number"`
	Stack  string `json:"stack"`
	Input  string `json:"input"`
	Action string `json:"action"`

	// Matched carries the consumed terminal on match steps.
	Matched string `json:"matched,omitempty"`

	// Production carries the expanded production on expansion steps.
	Production *grammar.Production `json:"production,omitempty"`
}

// Result is everything a single Parse invocation produced. The last step
// describes why the loop halted.
type Result struct {
	Steps    []*Step `json:"steps"`
	Accepted bool    `json:"accepted"`
}

// Parser drives predictive parsing over an LL(1) table. A Parser holds no
// per-parse state, so it is reusable.
type Parser struct {
	table *Table
}

// NewParser validates the table and returns a parser over it. A conflicted
// table still drives parsing: every cell holds the first production written
// to it, and whether the conflicts disqualify the parser is the caller's
// call.
func NewParser(table *Table) (*Parser, error) {
	if table == nil {
		return nil, fmt.Errorf("parsing table is nil")
	}
	if table.Grammar == nil {
		return nil, fmt.Errorf("parsing table carries no grammar")
	}
	return &Parser{
		table: table,
	}, nil
}

// Parse tokenizes the input on whitespace, appends the end marker, and runs
// the predictive loop: a terminal on top of the stack must match the
// current token, a non-terminal is expanded by the table, and the parse
// accepts when the stack and the input are both down to the end marker.
// Parse-time failures reject the input via a terminal error step; they are
// never returned as errors.
func (p *Parser) Parse(input string) *Result {
	tokens := strings.Fields(input)
	tokens = append(tokens, grammar.EndMarker)

	stack := arraystack.New()
	stack.Push(grammar.EndMarker)
	stack.Push(p.table.Grammar.Start)

	res := &Result{}
	pos := 0

	for {
		top, _ := stack.Peek()
		sym := top.(string)
		tok := tokens[pos]

		step := &Step{
			Number: len(res.Steps) + 1,
			Stack:  renderStack(stack),
			Input:  strings.Join(tokens[pos:], " "),
		}
		res.Steps = append(res.Steps, step)

		switch {
		case sym == grammar.EndMarker:
			if tok == grammar.EndMarker {
				step.Action = "accept"
				res.Accepted = true
				return p.finish(res)
			}
			step.Action = fmt.Sprintf("error: unexpected input %v", tok)
			return p.finish(res)

		case p.table.Grammar.IsTerminal(sym):
			if sym != tok {
				step.Action = fmt.Sprintf("error: expected %v, got %v", sym, tok)
				return p.finish(res)
			}
			step.Action = fmt.Sprintf("match %v", sym)
			step.Matched = sym
			stack.Pop()
			pos++

		default:
			idx, ok := p.table.Lookup(sym, tok)
			if !ok {
				step.Action = fmt.Sprintf("error: no table entry for (%v, %v)", sym, tok)
				return p.finish(res)
			}
			prod := p.table.Grammar.Productions[idx]
			stack.Pop()
			for i := len(prod.Rhs) - 1; i >= 0; i-- {
				stack.Push(prod.Rhs[i])
			}
			step.Stack = renderStack(stack)
			step.Action = fmt.Sprintf("expand %v", prod)
			step.Production = prod
		}
	}
}

func (p *Parser) finish(res *Result) *Result {
	trace.L().Debug("predictive parse finished",
		zap.Bool("accepted", res.Accepted),
		zap.Int("steps", len(res.Steps)))
	return res
}

// renderStack joins the stack values bottom to top with single spaces.
func renderStack(s *arraystack.Stack) string {
	vals := s.Values()
	var b strings.Builder
	for i := len(vals) - 1; i >= 0; i-- {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%v", vals[i])
	}
	return b.String()
}
