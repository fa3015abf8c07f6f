// Package driver runs table-driven parse simulations. The shift-reduce
// Parser executes an LR parsing table over whitespace-separated tokens,
// producing a step-by-step trace and a parse tree.
package driver

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/stacks/arraystack"
	"go.uber.org/zap"

	"github.com/gramtab/gramtab/grammar"
	"github.com/gramtab/gramtab/trace"
)

// ParseStep is one observational snapshot of the parse loop: the state
// stack rendered bottom to top, the remaining input, and the action taken.
// Every loop iteration appends exactly one step, so the trace and the
// outcome are always consistent.
type ParseStep struct {
	Stack  string `json:"stack"`
	Input  string `json:"input"`
	Action string `json:"action"`
}

// Result is everything a single Parse invocation produced. The last step
// describes why the loop halted: accept, a missing ACTION entry, or a
// missing GOTO entry. Tree is nil unless the input was accepted.
type Result struct {
	Steps    []*ParseStep `json:"steps"`
	Accepted bool         `json:"accepted"`
	Tree     *Node        `json:"tree,omitempty"`
}

// Parser drives shift-reduce parsing over an LR parsing table. The table
// may contain conflicts; the parser simply follows whichever action each
// cell kept. A Parser holds no per-parse state, so it is reusable.
type Parser struct {
	table *grammar.ParseTable
}

// NewParser validates the table and returns a parser over it.
func NewParser(table *grammar.ParseTable) (*Parser, error) {
	if table == nil {
		return nil, fmt.Errorf("parsing table is nil")
	}
	if table.Automaton == nil || table.Automaton.Grammar == nil {
		return nil, fmt.Errorf("parsing table carries no automaton")
	}
	if len(table.Actions) == 0 {
		return nil, fmt.Errorf("parsing table has no states")
	}
	return &Parser{
		table: table,
	}, nil
}

// Parse tokenizes the input on whitespace, appends the end marker, and runs
// the ACTION loop over three parallel stacks: parser states, grammar
// symbols, and parse-tree nodes. Parse-time failures reject the input via a
// terminal error step; they are never returned as errors.
func (p *Parser) Parse(input string) *Result {
	tokens := strings.Fields(input)
	tokens = append(tokens, grammar.EndMarker)

	states := arraystack.New()
	symbols := arraystack.New()
	nodes := arraystack.New()
	states.Push(0)

	aug := p.table.Automaton.Grammar
	res := &Result{}
	pos := 0

	for {
		top, _ := states.Peek()
		state := top.(int)
		tok := tokens[pos]

		step := &ParseStep{
			Stack: renderStack(states),
			Input: strings.Join(tokens[pos:], " "),
		}
		res.Steps = append(res.Steps, step)

		act, ok := p.table.Action(state, tok)
		if !ok {
			step.Action = fmt.Sprintf("error: no action for %v in state %v", tok, state)
			return p.finish(res)
		}

		switch act.Type {
		case grammar.ActionShift:
			step.Action = fmt.Sprintf("shift %v", act.State)
			symbols.Push(tok)
			nodes.Push(&Node{Symbol: tok})
			states.Push(act.State)
			pos++

		case grammar.ActionReduce:
			prod := aug.Productions[act.Prod]
			step.Action = fmt.Sprintf("reduce %v (%v)", act.Prod, prod)

			var children []*Node
			if prod.IsEmpty() {
				children = []*Node{{Symbol: grammar.Epsilon}}
			} else {
				children = make([]*Node, len(prod.Rhs))
				for i := len(prod.Rhs) - 1; i >= 0; i-- {
					states.Pop()
					symbols.Pop()
					v, _ := nodes.Pop()
					children[i] = v.(*Node)
				}
			}

			uncovered, _ := states.Peek()
			next, ok := p.table.Goto(uncovered.(int), prod.Lhs)
			if !ok {
				res.Steps = append(res.Steps, &ParseStep{
					Stack:  step.Stack,
					Input:  step.Input,
					Action: fmt.Sprintf("error: no goto for %v in state %v", prod.Lhs, uncovered),
				})
				return p.finish(res)
			}
			symbols.Push(prod.Lhs)
			nodes.Push(&Node{Symbol: prod.Lhs, Children: children})
			states.Push(next)

		case grammar.ActionAccept:
			step.Action = "accept"
			res.Accepted = true
			if v, ok := nodes.Peek(); ok {
				res.Tree = v.(*Node)
			}
			return p.finish(res)
		}
	}
}

func (p *Parser) finish(res *Result) *Result {
	trace.L().Debug("shift-reduce parse finished",
		zap.String("kind", string(p.table.Kind)),
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
