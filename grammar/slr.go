package grammar

// SLRBuilder builds SLR(1) parsing tables: the LR(0) collection with
// reduces written on the FOLLOW set of each completed production's
// left-hand side.
type SLRBuilder struct {
	opts []BuildOption
}

func NewSLRBuilder(opts ...BuildOption) *SLRBuilder {
	return &SLRBuilder{
		opts: opts,
	}
}

func (b *SLRBuilder) Kind() Kind {
	return KindSLR
}

func (b *SLRBuilder) Build(g *Grammar) (*ParseTable, error) {
	a, err := BuildLR0(g, b.opts...)
	if err != nil {
		return nil, err
	}
	first := ComputeFirst(a.Grammar)
	follow := ComputeFollow(a.Grammar, first)
	return newParseTable(KindSLR, a, fillTable(a, follow)), nil
}
