package regex

import (
	"math"
	"unicode/utf8"
)

// Size estimates the number of NFA states n needs. It is only used to
// pre-size tables and is never relied on for correctness. Negation and
// upto are charged quadratically, a cheap stand-in for their exponential
// worst case. Macro references are sized through their definition without
// being expanded; undefined or cyclic macros fail as in ExpandMacros.
// The estimate saturates at math.MaxInt.
func Size(n Node, macros *Macros) (int, error) {
	s := &sizer{macros: macros, active: make(map[string]bool)}
	return s.size(n)
}

type sizer struct {
	macros *Macros
	active map[string]bool
	stack  []string
}

func (s *sizer) size(n Node) (int, error) {
	switch n := n.(type) {
	case *Alternation:
		l, r, err := s.pair(n.Left, n.Right)
		if err != nil {
			return 0, err
		}
		return add(add(l, r), 2), nil
	case *Concatenation:
		l, r, err := s.pair(n.Left, n.Right)
		if err != nil {
			return 0, err
		}
		return add(l, r), nil
	case *Star, *Plus:
		c, err := s.size(Children(n)[0])
		if err != nil {
			return 0, err
		}
		return add(c, 2), nil
	case *Optional:
		return s.size(n.Child)
	case *Negation:
		c, err := s.size(n.Child)
		if err != nil {
			return 0, err
		}
		return mul(c, c), nil
	case *Upto:
		c, err := s.size(n.Child)
		if err != nil {
			return 0, err
		}
		return mul(mul(c, c), 3), nil

	case *LiteralString:
		return utf8.RuneCountInString(n.Text) + 1, nil
	case *LiteralStringCaseless:
		return utf8.RuneCountInString(n.Text) + 1, nil

	case *Literal, *LiteralCaseless, *PrimitiveClass, *PredefinedClass, *PropertyClass,
		*ClassUnion, *ClassComplement, *ClassOperation:
		return 2, nil

	case *MacroRef:
		if s.active[n.Name] {
			path := append(append([]string(nil), s.stack...), n.Name)
			return 0, &Error{Kind: DefinitionCycle, Node: n, Name: n.Name, Path: cyclePath(path)}
		}
		def, ok := s.macros.Lookup(n.Name)
		if !ok {
			return 0, &Error{Kind: UndefinedMacro, Node: n, Name: n.Name}
		}
		s.active[n.Name] = true
		s.stack = append(s.stack, n.Name)
		res, err := s.size(def)
		s.stack = s.stack[:len(s.stack)-1]
		delete(s.active, n.Name)
		return res, err
	}
	return 0, newError(UnexpectedNode, n)
}

func (s *sizer) pair(l, r Node) (int, int, error) {
	ls, err := s.size(l)
	if err != nil {
		return 0, 0, err
	}
	rs, err := s.size(r)
	if err != nil {
		return 0, 0, err
	}
	return ls, rs, nil
}

func add(a, b int) int {
	if a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}

func mul(a, b int) int {
	if a != 0 && b > math.MaxInt/a {
		return math.MaxInt
	}
	return a * b
}
