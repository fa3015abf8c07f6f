package grammar

// LALRBuilder builds LALR(1) parsing tables: the LR(1) collection merged
// by core, then filled like a canonical table. Lookaheads of merged states
// are unioned, which can surface reduce-reduce conflicts that the
// canonical table does not have; shift-reduce behavior is unchanged by
// merging.
type LALRBuilder struct {
	opts []BuildOption
}

func NewLALRBuilder(opts ...BuildOption) *LALRBuilder {
	return &LALRBuilder{
		opts: opts,
	}
}

func (b *LALRBuilder) Kind() Kind {
	return KindLALR
}

func (b *LALRBuilder) Build(g *Grammar) (*ParseTable, error) {
	a, err := BuildLR1(g, b.opts...)
	if err != nil {
		return nil, err
	}
	merged := mergeByCore(a)
	return newParseTable(KindLALR, merged, fillTable(merged, nil)), nil
}
