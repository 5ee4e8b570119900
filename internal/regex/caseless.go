package regex

// Caseless returns a copy of n that ignores case: literals become their
// caseless forms and primitive classes are closed under case folding.
// It runs after macro expansion and before class normalization, so that a
// complement is taken of the closed items. Predefined and property classes
// are left for ClassExpander.Expand, which closes property classes itself.
func Caseless(n Node) Node {
	switch n := n.(type) {
	case *Alternation:
		return &Alternation{Left: Caseless(n.Left), Right: Caseless(n.Right)}
	case *Concatenation:
		return &Concatenation{Left: Caseless(n.Left), Right: Caseless(n.Right)}
	case *Star:
		return &Star{Child: Caseless(n.Child)}
	case *Plus:
		return &Plus{Child: Caseless(n.Child)}
	case *Optional:
		return &Optional{Child: Caseless(n.Child)}
	case *Negation:
		return &Negation{Child: Caseless(n.Child)}
	case *Upto:
		return &Upto{Child: Caseless(n.Child)}

	case *Literal:
		return &LiteralCaseless{Char: n.Char}
	case *LiteralString:
		return &LiteralStringCaseless{Text: n.Text}
	case *PrimitiveClass:
		return &PrimitiveClass{Set: n.Set.Caseless()}

	case *ClassUnion:
		return &ClassUnion{Items: caselessItems(n.Items)}
	case *ClassComplement:
		return &ClassComplement{Items: caselessItems(n.Items)}
	case *ClassOperation:
		return &ClassOperation{Op: n.Op, Left: Caseless(n.Left), Right: Caseless(n.Right)}
	}
	return n
}

func caselessItems(items []Node) []Node {
	res := make([]Node, len(items))
	for i, it := range items {
		res[i] = Caseless(it)
	}
	return res
}
