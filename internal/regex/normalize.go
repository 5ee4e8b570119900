package regex

import (
	"github.com/KromDaniel/lexgen/internal/charset"
)

// NormalizeClasses computes every compound class of n (ClassUnion,
// ClassComplement, ClassOperation) into a PrimitiveClass. Complements are
// taken over [0, max] and every class is clipped to it, so caseless
// variants above the alphabet are dropped. n must already be free of
// macros, predefined and property classes; any of those left over, and a
// class item that does not reduce to a primitive class, fail with
// NotCharacterClass.
func NormalizeClasses(n Node, max rune) (Node, error) {
	normalize := func(c Node) (Node, error) { return NormalizeClasses(c, max) }

	switch n := n.(type) {
	case *Alternation:
		l, r, err := both(n.Left, n.Right, normalize)
		if err != nil {
			return nil, err
		}
		return &Alternation{Left: l, Right: r}, nil

	case *Concatenation:
		l, r, err := both(n.Left, n.Right, normalize)
		if err != nil {
			return nil, err
		}
		return &Concatenation{Left: l, Right: r}, nil

	case *Star, *Plus, *Optional, *Negation, *Upto:
		return rebuildUnary(n, normalize)

	case *Literal, *LiteralCaseless, *LiteralString, *LiteralStringCaseless:
		return n, nil

	case *PrimitiveClass:
		if set := bound(n.Set, max); set != n.Set {
			return &PrimitiveClass{Set: set}, nil
		}
		return n, nil

	case *ClassUnion, *ClassComplement, *ClassOperation:
		set, err := classSet(n, max)
		if err != nil {
			return nil, err
		}
		return &PrimitiveClass{Set: bound(set, max)}, nil

	case *PredefinedClass, *PropertyClass, *MacroRef:
		return nil, newError(NotCharacterClass, n)
	}
	return nil, newError(UnexpectedNode, n)
}

// bound returns s clipped to [0, max], or s itself when it already fits.
func bound(s *charset.Set, max rune) *charset.Set {
	ivs := s.Intervals()
	if len(ivs) == 0 || ivs[len(ivs)-1].Hi <= max {
		return s
	}
	return s.And(charset.All(max))
}

// classSet evaluates a class item to its set of code points.
func classSet(n Node, max rune) (*charset.Set, error) {
	switch n := n.(type) {
	case *PrimitiveClass:
		return n.Set, nil

	case *Literal:
		return charset.FromRune(n.Char), nil

	case *LiteralCaseless:
		return charset.CaseVariants(n.Char), nil

	case *ClassUnion:
		return unionItems(n.Items, max)

	case *ClassComplement:
		set, err := unionItems(n.Items, max)
		if err != nil {
			return nil, err
		}
		return set.Complement(max), nil

	case *ClassOperation:
		l, err := classSet(n.Left, max)
		if err != nil {
			return nil, err
		}
		r, err := classSet(n.Right, max)
		if err != nil {
			return nil, err
		}
		set, err := PerformClassOp(n.Op, l, r)
		if err != nil {
			if e, ok := err.(*Error); ok {
				e.Node = n
			}
			return nil, err
		}
		return set, nil
	}
	return nil, newError(NotCharacterClass, n)
}

func unionItems(items []Node, max rune) (*charset.Set, error) {
	set := &charset.Set{}
	for _, it := range items {
		s, err := classSet(it, max)
		if err != nil {
			return nil, err
		}
		set.Add(s)
	}
	return set, nil
}

// PerformClassOp applies op to l and r without modifying either.
// The intersection is computed once and reused: a difference removes only
// the overlap, a symmetric difference removes it from the union.
func PerformClassOp(op ClassOp, l, r *charset.Set) (*charset.Set, error) {
	inter := l.And(r)

	switch op {
	case OpIntersection:
		return inter, nil
	case OpDifference:
		return l.Minus(inter), nil
	case OpSymmetricDifference:
		return l.Or(r).Minus(inter), nil
	}
	return nil, &Error{Kind: UnsupportedOperator, Name: op.String()}
}
