package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/gramtab/gramtab/report"
)

func init() {
	cmd := &cobra.Command{
		Use:     "show <report file>",
		Short:   "Print a report written by build in a readable format",
		Example: `  gramtab show expr-report.json`,
		Args:    cobra.ExactArgs(1),
		RunE:    runShow,
	}
	rootCmd.AddCommand(cmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	rep, err := readReport(args[0])
	if err != nil {
		return err
	}

	renderTableReport(rep)
	return nil
}

func readReport(path string) (*report.TableReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("Cannot open the report %s: %w", path, err)
	}
	defer f.Close()

	d, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	rep := &report.TableReport{}
	err = json.Unmarshal(d, rep)
	if err != nil {
		return nil, err
	}
	return rep, nil
}
