// Package transform rewrites grammars into forms suitable for predictive
// parsing: left-recursion elimination (direct and indirect) and left
// factoring. Every function leaves its input grammar untouched and returns
// a Result carrying the rewritten grammar and a description of each rewrite.
package transform

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/gramtab/gramtab/grammar"
	"github.com/gramtab/gramtab/trace"
)

// Result describes a transformation run: the grammar before and after, the
// rewrites applied in order, and the non-terminals the rewrites introduced.
// Details maps each rewritten non-terminal to the description of what
// happened to it.
type Result struct {
	Original    *grammar.Grammar
	Transformed *grammar.Grammar

	Steps                []string
	RemovedLeftRecursion bool
	AppliedLeftFactoring bool
	NewNonterminals      []string
	Details              map[string]string
}

// ForLL1 prepares a grammar for predictive parsing: it eliminates left
// recursion (indirect, then direct per non-terminal) and then left-factors
// every non-terminal, including freshly introduced ones, until no two
// productions of any non-terminal share a first symbol.
func ForLL1(g *grammar.Grammar) (*Result, error) {
	t := newTransformer(g)
	removed := t.eliminateIndirect()
	factored := t.factorAll()

	res, err := t.result(removed, factored)
	if err != nil {
		return nil, err
	}

	trace.L().Debug("grammar transformed for predictive parsing",
		zap.Int("steps", len(res.Steps)),
		zap.Bool("removedLeftRecursion", res.RemovedLeftRecursion),
		zap.Bool("appliedLeftFactoring", res.AppliedLeftFactoring))

	return res, nil
}

// EliminateDirectLeftRecursion rewrites the productions of a single
// non-terminal A so that none of them begins with A itself: base
// productions `A -> β` become `A -> β A'`, recursive productions
// `A -> A α` become `A' -> α A'`, and `A' -> ε` closes the new
// non-terminal. When every production is recursive, an empty base is
// synthesized first.
func EliminateDirectLeftRecursion(g *grammar.Grammar, nonterminal string) (*Result, error) {
	if !g.IsNonterminal(nonterminal) {
		return nil, fmt.Errorf("%v is not a non-terminal of this grammar", nonterminal)
	}
	t := newTransformer(g)
	removed := t.eliminateDirect(nonterminal)
	return t.result(removed, false)
}

// EliminateIndirectLeftRecursion removes all left recursion from the
// grammar. Non-terminals are processed in alphabetical order: for each
// non-terminal, every production beginning with an earlier non-terminal is
// replaced by inlining that non-terminal's alternatives, then direct left
// recursion is eliminated. Earlier non-terminals are already recursion-free
// when a later one is processed, which is what makes the substitution
// terminate; the alphabetical order itself is otherwise arbitrary and a
// pathological grammar may be sensitive to it.
func EliminateIndirectLeftRecursion(g *grammar.Grammar) (*Result, error) {
	t := newTransformer(g)
	removed := t.eliminateIndirect()
	return t.result(removed, false)
}

// LeftFactor groups the productions of every non-terminal by their first
// symbol and rewrites each group sharing a prefix into a fresh
// non-terminal: `A -> x β | x γ` becomes `A -> x A'`, `A' -> β | γ`.
// Factoring runs to a fixed point, so suffixes that again share a first
// symbol are factored in turn.
func LeftFactor(g *grammar.Grammar) (*Result, error) {
	t := newTransformer(g)
	factored := t.factorAll()
	return t.result(false, factored)
}

// transformer tracks an in-progress rewrite: productions bucketed per
// left-hand side, bucket keys in output order, the rewrite log, and the
// names introduced so far. Buckets always hold productions whose Lhs is
// exactly the bucket key.
type transformer struct {
	g          *grammar.Grammar
	order      []string
	buckets    map[string][]*grammar.Production
	steps      []string
	details    map[string]string
	introduced map[string]struct{}
}

func newTransformer(g *grammar.Grammar) *transformer {
	t := &transformer{
		g:          g,
		buckets:    map[string][]*grammar.Production{},
		details:    map[string]string{},
		introduced: map[string]struct{}{},
	}
	for _, prod := range g.Productions {
		if _, ok := t.buckets[prod.Lhs]; !ok {
			t.order = append(t.order, prod.Lhs)
		}
		t.buckets[prod.Lhs] = append(t.buckets[prod.Lhs], prod)
	}
	return t
}

// freshName derives an unused non-terminal name by appending primes to the
// base name.
func (t *transformer) freshName(base string) string {
	name := base + "'"
	for t.taken(name) {
		name += "'"
	}
	t.introduced[name] = struct{}{}
	return name
}

func (t *transformer) taken(name string) bool {
	if t.g.HasSymbol(name) {
		return true
	}
	_, ok := t.introduced[name]
	return ok
}

// insertAfter places a fresh bucket key immediately after its base
// non-terminal so the flattened grammar keeps related productions adjacent.
func (t *transformer) insertAfter(anchor, key string) {
	for i, existing := range t.order {
		if existing == anchor {
			t.order = append(t.order, "")
			copy(t.order[i+2:], t.order[i+1:])
			t.order[i+1] = key
			return
		}
	}
	t.order = append(t.order, key)
}

func (t *transformer) describe(nonterminal, text string) {
	t.steps = append(t.steps, text)
	if existing, ok := t.details[nonterminal]; ok {
		t.details[nonterminal] = existing + "; " + text
		return
	}
	t.details[nonterminal] = text
}

// eliminateDirect rewrites the bucket of one non-terminal as described on
// EliminateDirectLeftRecursion. Reports whether anything changed.
func (t *transformer) eliminateDirect(nt string) bool {
	var recursive, base []*grammar.Production
	for _, prod := range t.buckets[nt] {
		if len(prod.Rhs) > 0 && prod.Rhs[0] == nt {
			recursive = append(recursive, prod)
		} else {
			base = append(base, prod)
		}
	}
	if len(recursive) == 0 {
		return false
	}
	if len(base) == 0 {
		base = []*grammar.Production{{Lhs: nt}}
	}

	fresh := t.freshName(nt)

	rewritten := make([]*grammar.Production, 0, len(base))
	for _, prod := range base {
		rhs := make([]string, 0, len(prod.Rhs)+1)
		rhs = append(rhs, prod.Rhs...)
		rhs = append(rhs, fresh)
		rewritten = append(rewritten, &grammar.Production{Lhs: nt, Rhs: rhs})
	}

	tail := make([]*grammar.Production, 0, len(recursive)+1)
	for _, prod := range recursive {
		rhs := make([]string, 0, len(prod.Rhs))
		rhs = append(rhs, prod.Rhs[1:]...)
		rhs = append(rhs, fresh)
		tail = append(tail, &grammar.Production{Lhs: fresh, Rhs: rhs})
	}
	tail = append(tail, &grammar.Production{Lhs: fresh})

	t.buckets[nt] = rewritten
	t.buckets[fresh] = tail
	t.insertAfter(nt, fresh)
	t.describe(nt, fmt.Sprintf("eliminated direct left recursion in %v, introducing %v", nt, fresh))
	return true
}

// substitute inlines every alternative of an earlier non-terminal into the
// productions of target that begin with it. Substituted productions move to
// the end of the bucket; the rest keep their order.
func (t *transformer) substitute(target, earlier string) bool {
	var remaining, substituted []*grammar.Production
	for _, prod := range t.buckets[target] {
		if len(prod.Rhs) == 0 || prod.Rhs[0] != earlier {
			remaining = append(remaining, prod)
			continue
		}
		for _, alt := range t.buckets[earlier] {
			rhs := make([]string, 0, len(alt.Rhs)+len(prod.Rhs)-1)
			rhs = append(rhs, alt.Rhs...)
			rhs = append(rhs, prod.Rhs[1:]...)
			substituted = append(substituted, &grammar.Production{Lhs: target, Rhs: rhs})
		}
	}
	if len(substituted) == 0 {
		return false
	}
	t.buckets[target] = append(remaining, substituted...)
	t.steps = append(t.steps, fmt.Sprintf("substituted the alternatives of %v into %v", earlier, target))
	return true
}

// eliminateIndirect runs the substitution/elimination sweep over the
// original non-terminals in alphabetical order. Fresh non-terminals are
// never recursive by construction and are not revisited.
func (t *transformer) eliminateIndirect() bool {
	ordered := make([]string, len(t.order))
	copy(ordered, t.order)
	sort.Strings(ordered)

	changed := false
	for i, nt := range ordered {
		for j := 0; j < i; j++ {
			if t.substitute(nt, ordered[j]) {
				changed = true
			}
		}
		if t.eliminateDirect(nt) {
			changed = true
		}
	}
	return changed
}

// factorOnce factors the bucket of one non-terminal a single level deep.
// Reports whether any group was rewritten.
func (t *transformer) factorOnce(nt string) bool {
	prods := t.buckets[nt]

	var heads []string
	groups := map[string][]*grammar.Production{}
	for _, prod := range prods {
		if prod.IsEmpty() {
			continue
		}
		head := prod.Rhs[0]
		if _, ok := groups[head]; !ok {
			heads = append(heads, head)
		}
		groups[head] = append(groups[head], prod)
	}

	factored := false
	anchor := nt
	var rewritten []*grammar.Production
	taken := map[*grammar.Production]struct{}{}
	for _, head := range heads {
		group := groups[head]
		if len(group) < 2 {
			continue
		}

		fresh := t.freshName(nt)
		rewritten = append(rewritten, &grammar.Production{Lhs: nt, Rhs: []string{head, fresh}})

		suffixes := make([]*grammar.Production, 0, len(group))
		for _, prod := range group {
			rhs := make([]string, 0, len(prod.Rhs)-1)
			rhs = append(rhs, prod.Rhs[1:]...)
			suffixes = append(suffixes, &grammar.Production{Lhs: fresh, Rhs: rhs})
			taken[prod] = struct{}{}
		}

		t.buckets[fresh] = suffixes
		t.insertAfter(anchor, fresh)
		anchor = fresh
		t.describe(nt, fmt.Sprintf("left-factored %v on prefix %v, introducing %v", nt, head, fresh))
		factored = true
	}
	if !factored {
		return false
	}

	for _, prod := range prods {
		if _, ok := taken[prod]; !ok {
			rewritten = append(rewritten, prod)
		}
	}
	t.buckets[nt] = rewritten
	return true
}

// factorAll sweeps every bucket, including ones created mid-sweep, until a
// full pass factors nothing. Suffix buckets shrink with every level, so
// the sweep terminates.
func (t *transformer) factorAll() bool {
	any := false
	for {
		changed := false
		keys := make([]string, len(t.order))
		copy(keys, t.order)
		for _, nt := range keys {
			if t.factorOnce(nt) {
				changed = true
			}
		}
		if !changed {
			break
		}
		any = true
	}
	return any
}

// result flattens the buckets back into a grammar and packages the log.
func (t *transformer) result(removed, factored bool) (*Result, error) {
	var prods []*grammar.Production
	for _, nt := range t.order {
		prods = append(prods, t.buckets[nt]...)
	}

	transformed, err := grammar.New(t.g.Start, prods)
	if err != nil {
		return nil, fmt.Errorf("transformation produced an invalid grammar: %w", err)
	}

	fresh := make([]string, 0, len(t.introduced))
	for name := range t.introduced {
		fresh = append(fresh, name)
	}
	sort.Strings(fresh)

	return &Result{
		Original:             t.g,
		Transformed:          transformed,
		Steps:                t.steps,
		RemovedLeftRecursion: removed,
		AppliedLeftFactoring: factored,
		NewNonterminals:      fresh,
		Details:              t.details,
	}, nil
}
