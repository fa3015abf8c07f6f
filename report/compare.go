package report

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/gramtab/gramtab/driver"
	"github.com/gramtab/gramtab/grammar"
	"github.com/gramtab/gramtab/ll1"
	"github.com/gramtab/gramtab/trace"
	"github.com/gramtab/gramtab/transform"
)

// ParserLL1 names the predictive parser in comparison reports; the LR
// parsers are named by their table kinds.
const ParserLL1 = "LL(1)"

// preference orders the parsers best-first for the recommendation: the
// simplest conflict-free parser wins.
var preference = []string{ParserLL1, string(grammar.KindSLR), string(grammar.KindLALR), string(grammar.KindCLR)}

var advice = map[string]string{
	ParserLL1:                "the grammar is LL(1); use predictive top-down parsing",
	string(grammar.KindSLR):  "the grammar is SLR(1); use SLR parsing for the smallest tables",
	string(grammar.KindLALR): "the grammar is LALR(1); use LALR parsing for canonical power at merged-table size",
	string(grammar.KindCLR):  "the grammar is CLR(1); canonical LR parsing is required",
}

// Options configure a comparison run.
type Options struct {
	// Sample is a token sequence to run through every conflict-free
	// parser. Empty skips parse simulation.
	Sample string

	// BuildOptions apply to every LR collection build.
	BuildOptions []grammar.BuildOption
}

// SampleOutcome is the result of running the sample input through one
// parser.
type SampleOutcome struct {
	Input    string `json:"input"`
	Accepted bool   `json:"accepted"`
	Steps    int    `json:"steps"`
}

// Outcome is one parser's result in a comparison. States is zero for the
// predictive parser, which has no automaton. A non-empty Error means the
// parser could not be built at all.
type Outcome struct {
	Parser       string         `json:"parser"`
	GrammarUsed  string         `json:"grammar_used"`
	ConflictFree bool           `json:"conflict_free"`
	Conflicts    int            `json:"conflicts"`
	States       int            `json:"states,omitempty"`
	TableCells   int            `json:"table_cells,omitempty"`
	Error        string         `json:"error,omitempty"`
	Sample       *SampleOutcome `json:"sample,omitempty"`
}

// Comparison is the cross-parser report: one outcome per parser, the
// transformation the predictive parser ran on, and the verdict.
type Comparison struct {
	Grammar        *GrammarSummary        `json:"grammar"`
	Transformation *TransformationSummary `json:"transformation,omitempty"`
	Outcomes       []*Outcome             `json:"outcomes"`
	Working        []string               `json:"working"`
	Failing        []string               `json:"failing"`
	Best           string                 `json:"best,omitempty"`
	Recommendation string                 `json:"recommendation"`
	Ambiguous      bool                   `json:"ambiguous"`
	AmbiguityHint  string                 `json:"ambiguity_hint,omitempty"`
}

// Compare builds all four parsers for a grammar and reports which of them
// accept it conflict-free. The predictive parser runs on the grammar
// transformed by transform.ForLL1; the LR parsers run on the grammar as
// given. A reduce-reduce conflict surviving in the canonical LR(1) table
// sets the ambiguity hint.
func Compare(g *grammar.Grammar, opts Options) (*Comparison, error) {
	if g == nil {
		return nil, fmt.Errorf("grammar is nil")
	}

	cmp := &Comparison{
		Grammar: SummarizeGrammar(g),
	}

	cmp.Outcomes = append(cmp.Outcomes, compareLL1(g, opts, cmp))
	for _, builder := range []grammar.Builder{
		grammar.NewSLRBuilder(opts.BuildOptions...),
		grammar.NewCLRBuilder(opts.BuildOptions...),
		grammar.NewLALRBuilder(opts.BuildOptions...),
	} {
		cmp.Outcomes = append(cmp.Outcomes, compareLR(g, builder, opts, cmp))
	}

	for _, out := range cmp.Outcomes {
		if out.ConflictFree {
			cmp.Working = append(cmp.Working, out.Parser)
		} else {
			cmp.Failing = append(cmp.Failing, out.Parser)
		}
	}
	for _, parser := range preference {
		if contains(cmp.Working, parser) {
			cmp.Best = parser
			break
		}
	}
	cmp.Recommendation = recommend(cmp.Best, cmp.Working)

	trace.L().Debug("parser comparison finished",
		zap.Strings("working", cmp.Working),
		zap.String("best", cmp.Best),
		zap.Bool("ambiguous", cmp.Ambiguous))

	return cmp, nil
}

// compareLL1 transforms the grammar, builds the predictive table, and runs
// the sample when the table is clean.
func compareLL1(g *grammar.Grammar, opts Options, cmp *Comparison) *Outcome {
	out := &Outcome{
		Parser:      ParserLL1,
		GrammarUsed: "transformed",
	}

	res, err := transform.ForLL1(g)
	if err != nil {
		out.Error = err.Error()
		return out
	}
	cmp.Transformation = SummarizeTransformation(res)

	tab, err := ll1.BuildTable(res.Transformed)
	if err != nil {
		out.Error = err.Error()
		return out
	}
	out.ConflictFree = tab.IsLL1()
	out.Conflicts = len(tab.Conflicts)
	for _, row := range tab.Cells {
		out.TableCells += len(row)
	}

	if opts.Sample != "" && tab.IsLL1() {
		p, err := ll1.NewParser(tab)
		if err != nil {
			out.Error = err.Error()
			return out
		}
		res := p.Parse(opts.Sample)
		out.Sample = &SampleOutcome{
			Input:    opts.Sample,
			Accepted: res.Accepted,
			Steps:    len(res.Steps),
		}
	}
	return out
}

// compareLR builds one LR table, folds its conflicts into the outcome, and
// runs the sample when the table is clean. The canonical builder also
// decides the ambiguity hint.
func compareLR(g *grammar.Grammar, builder grammar.Builder, opts Options, cmp *Comparison) *Outcome {
	out := &Outcome{
		Parser:      string(builder.Kind()),
		GrammarUsed: "original",
	}

	table, err := builder.Build(g)
	if err != nil {
		out.Error = err.Error()
		return out
	}
	out.ConflictFree = table.ConflictFree()
	out.Conflicts = len(table.Conflicts)
	out.States = len(table.Actions)
	for _, row := range table.Actions {
		out.TableCells += len(row)
	}
	for _, row := range table.Gotos {
		out.TableCells += len(row)
	}

	if builder.Kind() == grammar.KindCLR {
		rr := 0
		for _, c := range table.Conflicts {
			if c.Type() == grammar.ConflictReduceReduce {
				rr++
			}
		}
		if rr > 0 {
			cmp.Ambiguous = true
			cmp.AmbiguityHint = fmt.Sprintf("the canonical LR(1) table has %v reduce-reduce conflict(s), which typically indicates an ambiguous grammar", rr)
		}
	}

	if opts.Sample != "" && table.ConflictFree() {
		p, err := driver.NewParser(table)
		if err != nil {
			out.Error = err.Error()
			return out
		}
		res := p.Parse(opts.Sample)
		out.Sample = &SampleOutcome{
			Input:    opts.Sample,
			Accepted: res.Accepted,
			Steps:    len(res.Steps),
		}
	}
	return out
}

// recommend renders the verdict, naming the alternatives when more than
// one parser works.
func recommend(best string, working []string) string {
	if best == "" {
		return "the grammar suits none of the tested parsers; rewrite it to remove the conflicts"
	}
	text := advice[best]
	if len(working) > 1 {
		others := make([]string, 0, len(working)-1)
		for _, parser := range working {
			if parser != best {
				others = append(others, parser)
			}
		}
		text += fmt.Sprintf(" (also works: %v)", strings.Join(others, ", "))
	}
	return text
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
