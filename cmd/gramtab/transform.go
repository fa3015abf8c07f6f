package main

import (
	"github.com/spf13/cobra"

	"github.com/gramtab/gramtab/report"
	"github.com/gramtab/gramtab/transform"
)

var transformFlags = struct {
	grammar *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "transform",
		Short:   "Rewrite a grammar for predictive parsing",
		Long:    "transform eliminates left recursion and left-factors the grammar, printing every rewrite it applies.",
		Example: `  gramtab transform -g expr.grammar`,
		Args:    cobra.NoArgs,
		RunE:    runTransform,
	}
	transformFlags.grammar = cmd.Flags().StringP("grammar", "g", "", "grammar file path (default stdin)")
	rootCmd.AddCommand(cmd)
}

func runTransform(cmd *cobra.Command, args []string) error {
	g, err := readGrammar(*transformFlags.grammar)
	if err != nil {
		return err
	}

	res, err := transform.ForLL1(g)
	if err != nil {
		return err
	}

	renderTransformation(report.SummarizeTransformation(res))
	return nil
}
