package regex

import (
	"sync"

	"github.com/KromDaniel/lexgen/internal/charset"
	"github.com/KromDaniel/lexgen/internal/uniprops"
)

// ClassExpander replaces predefined and Unicode property classes with
// primitive classes. Predefined classes are computed once per tag and
// cached; an expander may be shared by goroutines normalizing different
// rules.
type ClassExpander struct {
	props uniprops.Provider

	mu    sync.Mutex
	cache map[PredefinedTag]*charset.Set
}

// NewClassExpander returns an expander backed by props.
func NewClassExpander(props uniprops.Provider) *ClassExpander {
	return &ClassExpander{
		props: props,
		cache: make(map[PredefinedTag]*charset.Set),
	}
}

// MaxCodePoint returns the top of the alphabet the expander works over.
func (x *ClassExpander) MaxCodePoint() rune {
	return x.props.MaxCodePoint()
}

// Expand returns a copy of n without PredefinedClass and PropertyClass
// nodes. With caseless, property classes are closed under case folding.
// n must be macro-free.
func (x *ClassExpander) Expand(n Node, caseless bool) (Node, error) {
	expand := func(c Node) (Node, error) { return x.Expand(c, caseless) }

	switch n := n.(type) {
	case *Alternation:
		l, r, err := both(n.Left, n.Right, expand)
		if err != nil {
			return nil, err
		}
		return &Alternation{Left: l, Right: r}, nil

	case *Concatenation:
		l, r, err := both(n.Left, n.Right, expand)
		if err != nil {
			return nil, err
		}
		return &Concatenation{Left: l, Right: r}, nil

	case *Star, *Plus, *Optional, *Negation, *Upto:
		return rebuildUnary(n, expand)

	case *ClassUnion:
		items, err := each(n.Items, expand)
		if err != nil {
			return nil, err
		}
		return &ClassUnion{Items: items}, nil

	case *ClassComplement:
		items, err := each(n.Items, expand)
		if err != nil {
			return nil, err
		}
		return &ClassComplement{Items: items}, nil

	case *ClassOperation:
		l, r, err := both(n.Left, n.Right, expand)
		if err != nil {
			return nil, err
		}
		return &ClassOperation{Op: n.Op, Left: l, Right: r}, nil

	case *PredefinedClass:
		set, err := x.Predefined(n.Tag)
		if err != nil {
			if e, ok := err.(*Error); ok && e.Node == nil {
				e.Node = n
			}
			return nil, err
		}
		return &PrimitiveClass{Set: set}, nil

	case *PropertyClass:
		set, ok := x.props.Lookup(n.Name)
		if !ok {
			return nil, &Error{Kind: UnknownProperty, Node: n, Name: n.Name}
		}
		if caseless {
			set = set.Caseless().And(charset.All(x.props.MaxCodePoint()))
		}
		return &PrimitiveClass{Set: set}, nil

	case *Literal, *LiteralCaseless, *LiteralString, *LiteralStringCaseless, *PrimitiveClass:
		return n, nil
	}
	return nil, newError(UnexpectedNode, n)
}

// Predefined returns the code points of a predefined class. The result is
// shared with the cache and must not be modified.
func (x *ClassExpander) Predefined(tag PredefinedTag) (*charset.Set, error) {
	x.mu.Lock()
	defer x.mu.Unlock()

	if set, ok := x.cache[tag]; ok {
		return set, nil
	}
	set, err := x.computePredefined(tag)
	if err != nil {
		return nil, err
	}
	x.cache[tag] = set
	return set, nil
}

func (x *ClassExpander) computePredefined(tag PredefinedTag) (*charset.Set, error) {
	max := x.props.MaxCodePoint()

	switch tag {
	case ClassLetter:
		return x.lookup("L")
	case ClassDigit:
		return x.lookup("Nd")
	case ClassDigitNot:
		digits, err := x.lookup("Nd")
		if err != nil {
			return nil, err
		}
		return digits.Complement(max), nil

	// Uppercase, Lowercase and Whitespace are derived properties that
	// old Unicode data lacks; fall back to the matching general category.
	case ClassUppercase:
		return x.lookup("Uppercase", "Lu")
	case ClassLowercase:
		return x.lookup("Lowercase", "Ll")
	case ClassWhitespace:
		return x.lookup("Whitespace", "Zs")
	case ClassWhitespaceNot:
		ws, err := x.lookup("Whitespace", "Zs")
		if err != nil {
			return nil, err
		}
		return ws.Complement(max), nil

	case ClassWord:
		return x.word()
	case ClassWordNot:
		word, err := x.word()
		if err != nil {
			return nil, err
		}
		return word.Complement(max), nil

	case ClassJavaLetter:
		return scanRuns(max, uniprops.JavaIdentifierStart), nil
	case ClassJavaLetterDigit:
		return scanRuns(max, uniprops.JavaIdentifierPart), nil
	}
	return nil, &Error{Kind: UnknownPredefinedClass, Name: tag.String()}
}

// word is \w as defined by UTR#18: Alphabetic, marks, decimal digits and
// connector punctuation. Without Alphabetic, L stands in; without Pc, '_'.
func (x *ClassExpander) word() (*charset.Set, error) {
	alpha, err := x.lookup("Alphabetic", "L")
	if err != nil {
		return nil, err
	}
	marks, err := x.lookup("M")
	if err != nil {
		return nil, err
	}
	digits, err := x.lookup("Nd")
	if err != nil {
		return nil, err
	}
	connectors, ok := x.props.Lookup("Pc")
	if !ok {
		connectors = charset.FromRune('_')
	}

	res := alpha.Copy()
	res.Add(marks)
	res.Add(digits)
	res.Add(connectors)
	return res, nil
}

// lookup returns the first property of the chain the provider knows.
func (x *ClassExpander) lookup(chain ...string) (*charset.Set, error) {
	for _, name := range chain {
		if set, ok := x.props.Lookup(name); ok {
			return set, nil
		}
	}
	return nil, &Error{Kind: UnknownProperty, Name: chain[0], Path: chain}
}

// scanRuns collects the maximal runs of [0, max] where pred holds. The last
// code point is handled after the loop so that max+1 is never computed.
func scanRuns(max rune, pred func(rune) bool) *charset.Set {
	var ivs []charset.Interval
	var start rune
	prev := pred(0)

	c := rune(1)
	for ; c < max; c++ {
		cur := pred(c)
		if !prev && cur {
			start = c
		}
		if prev && !cur {
			ivs = append(ivs, charset.Interval{Lo: start, Hi: c - 1})
		}
		prev = cur
	}

	if max == 0 {
		if prev {
			ivs = append(ivs, charset.Interval{Lo: 0, Hi: 0})
		}
		return charset.New(ivs...)
	}

	cur := pred(c)
	switch {
	case !prev && cur:
		ivs = append(ivs, charset.Interval{Lo: c, Hi: c})
	case prev && cur:
		ivs = append(ivs, charset.Interval{Lo: start, Hi: c})
	case prev && !cur:
		ivs = append(ivs, charset.Interval{Lo: start, Hi: c - 1})
	}
	return charset.New(ivs...)
}

func both(l, r Node, f func(Node) (Node, error)) (Node, Node, error) {
	nl, err := f(l)
	if err != nil {
		return nil, nil, err
	}
	nr, err := f(r)
	if err != nil {
		return nil, nil, err
	}
	return nl, nr, nil
}

func each(items []Node, f func(Node) (Node, error)) ([]Node, error) {
	res := make([]Node, 0, len(items))
	for _, it := range items {
		n, err := f(it)
		if err != nil {
			return nil, err
		}
		res = append(res, n)
	}
	return res, nil
}
