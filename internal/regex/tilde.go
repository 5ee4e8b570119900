package regex

// ResolveTilde rewrites every Upto node into negation, star and
// concatenation:
//
//	~a  =  !([^]* a [^]*) a
//
// where [^] is the class of all code points up to max. The rewritten
// content is referenced twice, inside the negation and as the trailing
// term; the two references share one subtree, which is never modified.
func ResolveTilde(n Node, max rune) Node {
	switch n := n.(type) {
	case *Alternation:
		return &Alternation{Left: ResolveTilde(n.Left, max), Right: ResolveTilde(n.Right, max)}
	case *Concatenation:
		return &Concatenation{Left: ResolveTilde(n.Left, max), Right: ResolveTilde(n.Right, max)}
	case *Star:
		return &Star{Child: ResolveTilde(n.Child, max)}
	case *Plus:
		return &Plus{Child: ResolveTilde(n.Child, max)}
	case *Optional:
		return &Optional{Child: ResolveTilde(n.Child, max)}
	case *Negation:
		return &Negation{Child: ResolveTilde(n.Child, max)}

	case *Upto:
		content := ResolveTilde(n.Child, max)
		anyStar := &Star{Child: AnyChar(max)}
		neg := &Negation{Child: &Concatenation{
			Left:  anyStar,
			Right: &Concatenation{Left: content, Right: anyStar},
		}}
		return &Concatenation{Left: neg, Right: content}

	case *ClassUnion:
		return &ClassUnion{Items: resolveItems(n.Items, max)}
	case *ClassComplement:
		return &ClassComplement{Items: resolveItems(n.Items, max)}
	case *ClassOperation:
		return &ClassOperation{Op: n.Op, Left: ResolveTilde(n.Left, max), Right: ResolveTilde(n.Right, max)}
	}
	// leaves
	return n
}

func resolveItems(items []Node, max rune) []Node {
	res := make([]Node, len(items))
	for i, it := range items {
		res[i] = ResolveTilde(it, max)
	}
	return res
}
