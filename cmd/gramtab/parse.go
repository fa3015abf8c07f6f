package main

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/gramtab/gramtab/driver"
	"github.com/gramtab/gramtab/grammar"
	"github.com/gramtab/gramtab/ll1"
	"github.com/gramtab/gramtab/transform"
)

var parseFlags = struct {
	grammar *string
	table   *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "parse <input tokens>",
		Short:   "Parse a token sequence and print the trace",
		Example: `  gramtab parse -g expr.grammar -t lalr "id + id * id"`,
		Args:    cobra.ExactArgs(1),
		RunE:    runParse,
	}
	parseFlags.grammar = cmd.Flags().StringP("grammar", "g", "", "grammar file path (default stdin)")
	parseFlags.table = cmd.Flags().StringP("table", "t", "", "parser: slr, clr, lalr, or ll1 (default slr)")
	rootCmd.AddCommand(cmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	g, err := readGrammar(*parseFlags.grammar)
	if err != nil {
		return err
	}

	kind := resolveTable(*parseFlags.table)
	if kind == "ll1" {
		return runLL1Parse(g, args[0])
	}

	builder, err := newBuilder(kind)
	if err != nil {
		return err
	}
	table, err := builder.Build(g)
	if err != nil {
		return err
	}
	if !table.ConflictFree() {
		pterm.Warning.Printfln("the %v table has %v conflicts; the kept actions drive this parse",
			table.Kind, len(table.Conflicts))
	}

	p, err := driver.NewParser(table)
	if err != nil {
		return err
	}
	res := p.Parse(args[0])

	renderLRTrace(res.Steps)
	if !res.Accepted {
		pterm.Error.Println("input rejected")
		return nil
	}
	pterm.Success.Println("input accepted")
	renderTree(res.Tree)
	return nil
}

// runLL1Parse transforms the grammar for predictive parsing first; the LL(1)
// table is built from the transformed grammar.
func runLL1Parse(g *grammar.Grammar, input string) error {
	res, err := transform.ForLL1(g)
	if err != nil {
		return err
	}
	tab, err := ll1.BuildTable(res.Transformed)
	if err != nil {
		return err
	}
	if len(res.Steps) > 0 {
		pterm.Info.Printfln("grammar transformed for predictive parsing (%v rewrites)", len(res.Steps))
	}
	if !tab.IsLL1() {
		pterm.Warning.Printfln("the LL(1) table has %v conflicts; the first-written entries drive this parse",
			len(tab.Conflicts))
	}

	p, err := ll1.NewParser(tab)
	if err != nil {
		return err
	}
	out := p.Parse(input)

	renderLL1Trace(out.Steps)
	if !out.Accepted {
		pterm.Error.Println("input rejected")
		return nil
	}
	pterm.Success.Println("input accepted")
	return nil
}
