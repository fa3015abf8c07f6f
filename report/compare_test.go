package report

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gramtab/gramtab/grammar"
)

func TestCompare_expressionGrammar(t *testing.T) {
	g := mustGrammar(t, exprSrc)

	cmp, err := Compare(g, Options{Sample: "id + id"})
	require.NoError(t, err)

	require.Equal(t, []string{"LL(1)", "SLR(1)", "CLR(1)", "LALR(1)"}, cmp.Working)
	require.Empty(t, cmp.Failing)
	require.Equal(t, "LL(1)", cmp.Best)
	require.Contains(t, cmp.Recommendation, "LL(1)")
	require.Contains(t, cmp.Recommendation, "also works")
	require.False(t, cmp.Ambiguous)
	require.Empty(t, cmp.AmbiguityHint)

	require.NotNil(t, cmp.Transformation)
	require.True(t, cmp.Transformation.RemovedLeftRecursion)
	require.Equal(t, []string{"E'", "T'"}, cmp.Transformation.NewNonterminals)

	require.Len(t, cmp.Outcomes, 4)
	for _, out := range cmp.Outcomes {
		require.True(t, out.ConflictFree, out.Parser)
		require.Zero(t, out.Conflicts, out.Parser)
		require.Empty(t, out.Error, out.Parser)
		require.NotNil(t, out.Sample, out.Parser)
		require.True(t, out.Sample.Accepted, out.Parser)
		require.Greater(t, out.Sample.Steps, 0, out.Parser)
	}

	ll1Out := cmp.Outcomes[0]
	require.Equal(t, "LL(1)", ll1Out.Parser)
	require.Equal(t, "transformed", ll1Out.GrammarUsed)
	require.Zero(t, ll1Out.States)
	require.Equal(t, 11, ll1Out.Sample.Steps)

	clrOut := cmp.Outcomes[2]
	require.Equal(t, "CLR(1)", clrOut.Parser)
	require.Equal(t, "original", clrOut.GrammarUsed)
	require.Greater(t, clrOut.States, 0)

	// LALR merging never exceeds the canonical state count.
	lalrOut := cmp.Outcomes[3]
	require.Equal(t, "LALR(1)", lalrOut.Parser)
	require.LessOrEqual(t, lalrOut.States, clrOut.States)
}

func TestCompare_ambiguousGrammar(t *testing.T) {
	g := mustGrammar(t, `
S -> A | B
A -> a
B -> a
`)

	cmp, err := Compare(g, Options{})
	require.NoError(t, err)

	require.Empty(t, cmp.Working)
	require.Len(t, cmp.Failing, 4)
	require.Empty(t, cmp.Best)
	require.Contains(t, cmp.Recommendation, "none of the tested parsers")
	require.True(t, cmp.Ambiguous)
	require.Contains(t, cmp.AmbiguityHint, "reduce-reduce")

	for _, out := range cmp.Outcomes {
		require.False(t, out.ConflictFree, out.Parser)
		require.Greater(t, out.Conflicts, 0, out.Parser)
		require.Nil(t, out.Sample, out.Parser)
	}
}

// TestCompare_lalrSensitiveGrammar uses the classic grammar whose canonical
// table is clean but whose merged table has a reduce-reduce conflict, so
// only CLR(1) survives.
func TestCompare_lalrSensitiveGrammar(t *testing.T) {
	g := mustGrammar(t, `
S -> a A d | b B d | a B e | b A e
A -> c
B -> c
`)

	cmp, err := Compare(g, Options{})
	require.NoError(t, err)

	require.Equal(t, []string{"CLR(1)"}, cmp.Working)
	require.Equal(t, "CLR(1)", cmp.Best)
	require.Contains(t, cmp.Recommendation, "canonical")
	require.NotContains(t, cmp.Recommendation, "also works")
	require.False(t, cmp.Ambiguous)

	var lalrOut *Outcome
	for _, out := range cmp.Outcomes {
		if out.Parser == "LALR(1)" {
			lalrOut = out
		}
	}
	require.NotNil(t, lalrOut)
	require.False(t, lalrOut.ConflictFree)
	require.Greater(t, lalrOut.Conflicts, 0)
}

func TestCompare_stateLimit(t *testing.T) {
	g := mustGrammar(t, exprSrc)

	cmp, err := Compare(g, Options{
		BuildOptions: []grammar.BuildOption{grammar.MaxStates(2)},
	})
	require.NoError(t, err)

	// The predictive parser has no automaton, so the ceiling only fails
	// the LR builders.
	require.Equal(t, []string{"LL(1)"}, cmp.Working)
	require.Equal(t, "LL(1)", cmp.Best)
	for _, out := range cmp.Outcomes[1:] {
		require.False(t, out.ConflictFree, out.Parser)
		require.NotEmpty(t, out.Error, out.Parser)
	}
}

func TestCompare_nilGrammar(t *testing.T) {
	_, err := Compare(nil, Options{})
	require.Error(t, err)
}
