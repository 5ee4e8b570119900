package regex

// Reverse returns an expression matching the reverse of every string n
// matches. Upto nodes are resolved first, over [0, max]. Class nodes match
// single characters and are their own reverse. Macro references cannot be
// reversed and fail with UnexpectedNode.
func Reverse(n Node, max rune) (Node, error) {
	rev := func(c Node) (Node, error) { return Reverse(c, max) }

	switch n := n.(type) {
	case *Alternation:
		l, r, err := both(n.Left, n.Right, rev)
		if err != nil {
			return nil, err
		}
		return &Alternation{Left: l, Right: r}, nil

	case *Concatenation:
		l, r, err := both(n.Left, n.Right, rev)
		if err != nil {
			return nil, err
		}
		return &Concatenation{Left: r, Right: l}, nil

	case *Star, *Plus, *Optional, *Negation:
		return rebuildUnary(n, rev)

	case *Upto:
		return Reverse(ResolveTilde(n, max), max)

	case *LiteralString:
		return &LiteralString{Text: reverseString(n.Text)}, nil
	case *LiteralStringCaseless:
		return &LiteralStringCaseless{Text: reverseString(n.Text)}, nil

	case *Literal, *LiteralCaseless, *PrimitiveClass, *PredefinedClass, *PropertyClass,
		*ClassUnion, *ClassComplement, *ClassOperation:
		return n, nil
	}
	return nil, newError(UnexpectedNode, n)
}

func reverseString(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}
