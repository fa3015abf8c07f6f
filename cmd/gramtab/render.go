package main

import (
	"fmt"
	"strconv"

	"github.com/pterm/pterm"

	"github.com/gramtab/gramtab/driver"
	"github.com/gramtab/gramtab/ll1"
	"github.com/gramtab/gramtab/report"
)

func renderGrammarSummary(s *report.GrammarSummary) {
	pterm.Println(pterm.Bold.Sprintf("Grammar (start: %v, fingerprint: %.12v)", s.Start, s.Fingerprint))

	data := pterm.TableData{{"#", "Production"}}
	for _, prod := range s.Productions {
		data = append(data, []string{strconv.Itoa(prod.Index), prod.Display})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	pterm.Println()

	sets := pterm.TableData{{"Non-terminal", "FIRST", "FOLLOW"}}
	for _, nt := range s.Nonterminals {
		sets = append(sets, []string{nt, join(s.First[nt]), join(s.Follow[nt])})
	}
	pterm.DefaultTable.WithHasHeader().WithData(sets).Render()
	pterm.Println()
}

// renderTableReport prints the full ACTION/GOTO grid plus the conflict
// listing. The same renderer backs `build` without an output path and
// `show` over a written report.
func renderTableReport(rep *report.TableReport) {
	renderGrammarSummary(rep.Grammar)

	pterm.Println(pterm.Bold.Sprintf("%v table: %v states", rep.Table.Kind, rep.Table.States))

	header := []string{"State"}
	header = append(header, rep.Grammar.Terminals...)
	header = append(header, "$")
	header = append(header, rep.Grammar.Nonterminals...)

	data := pterm.TableData{header}
	for state := range rep.Actions {
		row := []string{strconv.Itoa(state)}
		for _, sym := range rep.Grammar.Terminals {
			row = append(row, rep.Actions[state][sym])
		}
		row = append(row, rep.Actions[state]["$"])
		for _, sym := range rep.Grammar.Nonterminals {
			if next, ok := rep.Gotos[state][sym]; ok {
				row = append(row, strconv.Itoa(next))
			} else {
				row = append(row, "")
			}
		}
		data = append(data, row)
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	pterm.Println()

	renderConflicts(rep.Table)
}

func renderConflicts(s *report.TableSummary) {
	if s.ConflictFree {
		pterm.Success.Println("No conflicts")
		return
	}
	pterm.Warning.Printfln("%v conflicts (%v shift/reduce, %v reduce/reduce)",
		len(s.Conflicts), s.ShiftReduce, s.ReduceReduce)
	for _, c := range s.Conflicts {
		pterm.Println("  " + c.Description)
	}
}

func renderLRTrace(steps []*driver.ParseStep) {
	data := pterm.TableData{{"Step", "Stack", "Input", "Action"}}
	for i, step := range steps {
		data = append(data, []string{strconv.Itoa(i + 1), step.Stack, step.Input, step.Action})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	pterm.Println()
}

func renderLL1Trace(steps []*ll1.Step) {
	data := pterm.TableData{{"Step", "Stack", "Input", "Action"}}
	for _, step := range steps {
		data = append(data, []string{strconv.Itoa(step.Number), step.Stack, step.Input, step.Action})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	pterm.Println()
}

// renderTree prints the parse tree as an indented tree.
func renderTree(node *driver.Node) {
	ll := leveledNodes(node, pterm.LeveledList{}, 0)
	root := pterm.NewTreeFromLeveledList(ll)
	pterm.DefaultTree.WithRoot(root).Render()
}

func leveledNodes(node *driver.Node, ll pterm.LeveledList, level int) pterm.LeveledList {
	ll = append(ll, pterm.LeveledListItem{
		Level: level,
		Text:  node.Symbol,
	})
	for _, child := range node.Children {
		ll = leveledNodes(child, ll, level+1)
	}
	return ll
}

func renderComparison(cmp *report.Comparison) {
	renderGrammarSummary(cmp.Grammar)

	data := pterm.TableData{{"Parser", "Grammar", "Conflict-free", "Conflicts", "States", "Sample"}}
	for _, out := range cmp.Outcomes {
		verdict := "yes"
		if !out.ConflictFree {
			verdict = "no"
		}
		if out.Error != "" {
			verdict = "build failed"
		}

		states := ""
		if out.States > 0 {
			states = strconv.Itoa(out.States)
		}

		sample := ""
		if out.Sample != nil {
			sample = fmt.Sprintf("rejected in %v steps", out.Sample.Steps)
			if out.Sample.Accepted {
				sample = fmt.Sprintf("accepted in %v steps", out.Sample.Steps)
			}
		}

		data = append(data, []string{
			out.Parser, out.GrammarUsed, verdict, strconv.Itoa(out.Conflicts), states, sample,
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	pterm.Println()

	if cmp.Ambiguous {
		pterm.Warning.Println(cmp.AmbiguityHint)
	}
	if cmp.Best != "" {
		pterm.Success.Println(cmp.Recommendation)
	} else {
		pterm.Error.Println(cmp.Recommendation)
	}
}

func renderTransformation(s *report.TransformationSummary) {
	pterm.Println(pterm.Bold.Sprint("Original grammar"))
	renderProductions(s.Original)
	pterm.Println(pterm.Bold.Sprint("Transformed grammar"))
	renderProductions(s.Transformed)

	if len(s.Steps) == 0 {
		pterm.Info.Println("The grammar needed no rewriting")
		return
	}
	pterm.Println(pterm.Bold.Sprint("Rewrites"))
	for _, step := range s.Steps {
		pterm.Println("  " + step)
	}
	if len(s.NewNonterminals) > 0 {
		pterm.Info.Printfln("Introduced non-terminals: %v", join(s.NewNonterminals))
	}
}

func renderProductions(s *report.GrammarSummary) {
	data := pterm.TableData{{"#", "Production"}}
	for _, prod := range s.Productions {
		data = append(data, []string{strconv.Itoa(prod.Index), prod.Display})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	pterm.Println()
}

func join(syms []string) string {
	out := ""
	for i, sym := range syms {
		if i > 0 {
			out += ", "
		}
		out += sym
	}
	return out
}
