package main

import (
	"github.com/spf13/cobra"

	"github.com/gramtab/gramtab/grammar"
	"github.com/gramtab/gramtab/report"
)

var compareFlags = struct {
	grammar *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "compare [input tokens]",
		Short:   "Compare all parser constructions for a grammar",
		Long:    "compare builds the LL(1), SLR(1), CLR(1), and LALR(1) parsers, reports which of them are conflict-free, and recommends one. An optional token sequence is run through every conflict-free parser.",
		Example: `  gramtab compare -g expr.grammar "id + id"`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runCompare,
	}
	compareFlags.grammar = cmd.Flags().StringP("grammar", "g", "", "grammar file path (default stdin)")
	rootCmd.AddCommand(cmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	g, err := readGrammar(*compareFlags.grammar)
	if err != nil {
		return err
	}

	opts := report.Options{
		BuildOptions: []grammar.BuildOption{grammar.MaxStates(*rootFlags.maxStates)},
	}
	if len(args) > 0 {
		opts.Sample = args[0]
	}

	cmp, err := report.Compare(g, opts)
	if err != nil {
		return err
	}

	renderComparison(cmp)
	return nil
}
