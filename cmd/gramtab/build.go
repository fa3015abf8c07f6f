package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gramtab/gramtab/report"
)

var buildFlags = struct {
	grammar *string
	table   *string
	output  *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "build",
		Short:   "Build a parsing table from a grammar",
		Example: `  gramtab build -g expr.grammar -t lalr -o expr-report.json`,
		Args:    cobra.NoArgs,
		RunE:    runBuild,
	}
	buildFlags.grammar = cmd.Flags().StringP("grammar", "g", "", "grammar file path (default stdin)")
	buildFlags.table = cmd.Flags().StringP("table", "t", "", "table construction: slr, clr, or lalr (default slr)")
	buildFlags.output = cmd.Flags().StringP("output", "o", "", "report file path (default: render to stdout)")
	rootCmd.AddCommand(cmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	g, err := readGrammar(*buildFlags.grammar)
	if err != nil {
		return err
	}

	builder, err := newBuilder(resolveTable(*buildFlags.table))
	if err != nil {
		return err
	}
	table, err := builder.Build(g)
	if err != nil {
		return err
	}

	rep := report.NewTableReport(g, table)

	if *buildFlags.output == "" {
		renderTableReport(rep)
		return nil
	}

	err = writeReport(*buildFlags.output, rep)
	if err != nil {
		return fmt.Errorf("Cannot write the report file: %w", err)
	}
	if len(rep.Table.Conflicts) > 0 {
		fmt.Fprintf(os.Stdout, "%v conflicts\n", len(rep.Table.Conflicts))
	}
	return nil
}

func writeReport(path string, rep *report.TableReport) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	b, err := json.Marshal(rep)
	if err != nil {
		return err
	}
	fmt.Fprintf(f, "%v\n", string(b))
	return nil
}
