package regex

// ExpandMacros returns a copy of n with every macro reference replaced by
// the expansion of its definition. A reference to an undefined macro
// fails with UndefinedMacro, and a macro whose expansion reaches itself
// fails with DefinitionCycle.
//
// Each reference is expanded independently, without memoization, so
// heavily reused nested macros cost time proportional to the fully
// expanded tree.
func ExpandMacros(n Node, macros *Macros) (Node, error) {
	e := &macroExpander{macros: macros, active: make(map[string]bool)}
	return e.expand(n)
}

type macroExpander struct {
	macros *Macros
	active map[string]bool
	stack  []string
}

func (e *macroExpander) expand(n Node) (Node, error) {
	switch n := n.(type) {
	case *Alternation:
		l, r, err := both(n.Left, n.Right, e.expand)
		if err != nil {
			return nil, err
		}
		return &Alternation{Left: l, Right: r}, nil

	case *Concatenation:
		l, r, err := both(n.Left, n.Right, e.expand)
		if err != nil {
			return nil, err
		}
		return &Concatenation{Left: l, Right: r}, nil

	case *Star, *Plus, *Optional, *Negation, *Upto:
		return rebuildUnary(n, e.expand)

	case *ClassUnion:
		items, err := each(n.Items, e.expand)
		if err != nil {
			return nil, err
		}
		return &ClassUnion{Items: items}, nil

	case *ClassComplement:
		items, err := each(n.Items, e.expand)
		if err != nil {
			return nil, err
		}
		return &ClassComplement{Items: items}, nil

	case *ClassOperation:
		l, r, err := both(n.Left, n.Right, e.expand)
		if err != nil {
			return nil, err
		}
		return &ClassOperation{Op: n.Op, Left: l, Right: r}, nil

	case *MacroRef:
		if e.active[n.Name] {
			path := append(append([]string(nil), e.stack...), n.Name)
			return nil, &Error{Kind: DefinitionCycle, Node: n, Name: n.Name, Path: cyclePath(path)}
		}
		def, ok := e.macros.Lookup(n.Name)
		if !ok {
			return nil, &Error{Kind: UndefinedMacro, Node: n, Name: n.Name}
		}
		e.active[n.Name] = true
		e.stack = append(e.stack, n.Name)
		res, err := e.expand(def)
		e.stack = e.stack[:len(e.stack)-1]
		delete(e.active, n.Name)
		return res, err

	case *Literal, *LiteralCaseless, *LiteralString, *LiteralStringCaseless,
		*PrimitiveClass, *PredefinedClass, *PropertyClass:
		return n, nil
	}
	return nil, newError(UnexpectedNode, n)
}

// cyclePath trims the expansion stack to the part that forms the cycle.
func cyclePath(path []string) []string {
	last := path[len(path)-1]
	for i, name := range path[:len(path)-1] {
		if name == last {
			return path[i:]
		}
	}
	return path
}

// rebuildUnary applies f to the child of a unary node and wraps the result
// in a node of the same kind.
func rebuildUnary(n Node, f func(Node) (Node, error)) (Node, error) {
	switch n := n.(type) {
	case *Star:
		c, err := f(n.Child)
		if err != nil {
			return nil, err
		}
		return &Star{Child: c}, nil
	case *Plus:
		c, err := f(n.Child)
		if err != nil {
			return nil, err
		}
		return &Plus{Child: c}, nil
	case *Optional:
		c, err := f(n.Child)
		if err != nil {
			return nil, err
		}
		return &Optional{Child: c}, nil
	case *Negation:
		c, err := f(n.Child)
		if err != nil {
			return nil, err
		}
		return &Negation{Child: c}, nil
	case *Upto:
		c, err := f(n.Child)
		if err != nil {
			return nil, err
		}
		return &Upto{Child: c}, nil
	}
	return nil, newError(UnexpectedNode, n)
}
