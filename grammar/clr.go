package grammar

// CLRBuilder builds canonical LR(1) parsing tables: the LR(1) collection
// with reduces written only on each completed item's own lookahead.
type CLRBuilder struct {
	opts []BuildOption
}

func NewCLRBuilder(opts ...BuildOption) *CLRBuilder {
	return &CLRBuilder{
		opts: opts,
	}
}

func (b *CLRBuilder) Kind() Kind {
	return KindCLR
}

func (b *CLRBuilder) Build(g *Grammar) (*ParseTable, error) {
	a, err := BuildLR1(g, b.opts...)
	if err != nil {
		return nil, err
	}
	return newParseTable(KindCLR, a, fillTable(a, nil)), nil
}
