package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gramtab/gramtab/grammar"
	"github.com/gramtab/gramtab/trace"
)

var rootCmd = &cobra.Command{
	Use:   "gramtab",
	Short: "Build deterministic parsing tables from a grammar and simulate parsing",
	Long: `gramtab analyzes a context-free grammar:
- Builds SLR(1), CLR(1), and LALR(1) parsing tables and reports their conflicts.
- Transforms a grammar for predictive parsing and builds its LL(1) table.
- Simulates shift-reduce and predictive parsing step by step.
- Compares all four constructions and recommends one.`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

var rootFlags = struct {
	debug     *bool
	config    *string
	maxStates *int
}{}

// fileConfig is the TOML config file shape. Explicit flags override file
// values.
type fileConfig struct {
	MaxStates int    `toml:"max_states"`
	Table     string `toml:"table"`
	Debug     bool   `toml:"debug"`
}

var cfg fileConfig

func init() {
	rootFlags.debug = rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootFlags.config = rootCmd.PersistentFlags().String("config", "", "config file path (TOML)")
	rootFlags.maxStates = rootCmd.PersistentFlags().Int("max-states", grammar.DefaultMaxStates, "state-count ceiling for LR collections")
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}
	return nil
}

// setup loads the config file and wires up debug logging before any
// subcommand runs.
func setup(cmd *cobra.Command, args []string) error {
	if *rootFlags.config != "" {
		_, err := toml.DecodeFile(*rootFlags.config, &cfg)
		if err != nil {
			return fmt.Errorf("Cannot load the config file %s: %w", *rootFlags.config, err)
		}
	}
	if !rootCmd.PersistentFlags().Changed("max-states") && cfg.MaxStates > 0 {
		*rootFlags.maxStates = cfg.MaxStates
	}

	if *rootFlags.debug || cfg.Debug {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return err
		}
		trace.SetLogger(logger)
		pterm.EnableDebugMessages()
	}
	return nil
}

// readGrammar parses the grammar file, or stdin when no path is given.
func readGrammar(path string) (*grammar.Grammar, error) {
	if path == "" {
		return grammar.Parse(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("Cannot open the grammar file %s: %w", path, err)
	}
	defer f.Close()
	return grammar.Parse(f)
}

// resolveTable picks the table construction: the flag wins, then the config
// file, then SLR.
func resolveTable(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if cfg.Table != "" {
		return cfg.Table
	}
	return "slr"
}

// newBuilder maps a construction name to its builder, with the state
// ceiling applied.
func newBuilder(name string) (grammar.Builder, error) {
	opts := []grammar.BuildOption{grammar.MaxStates(*rootFlags.maxStates)}
	switch strings.ToLower(name) {
	case "slr":
		return grammar.NewSLRBuilder(opts...), nil
	case "clr":
		return grammar.NewCLRBuilder(opts...), nil
	case "lalr":
		return grammar.NewLALRBuilder(opts...), nil
	}
	return nil, fmt.Errorf("unknown table construction %q; use slr, clr, or lalr", name)
}
