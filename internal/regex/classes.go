package regex

import (
	"sort"

	"github.com/KromDaniel/lexgen/internal/charclass"
	"github.com/KromDaniel/lexgen/internal/charset"
)

// MakeClasses refines p with every character set n uses: primitive
// classes and the characters of literals. n must be normalized (macro
// free, classes primitive). Caseless literals add their case variants;
// with caseless, every set is added both as is and closed under case
// folding, so sets of either form stay unions of classes.
func MakeClasses(n Node, p *charclass.Partition, caseless bool) error {
	switch n := n.(type) {
	case *Alternation:
		if err := MakeClasses(n.Left, p, caseless); err != nil {
			return err
		}
		return MakeClasses(n.Right, p, caseless)

	case *Concatenation:
		if err := MakeClasses(n.Left, p, caseless); err != nil {
			return err
		}
		return MakeClasses(n.Right, p, caseless)

	case *Star, *Plus, *Optional, *Negation, *Upto:
		return MakeClasses(Children(n)[0], p, caseless)

	case *Literal:
		p.AddChar(n.Char, false)
		if caseless {
			p.AddChar(n.Char, true)
		}
		return nil

	case *LiteralCaseless:
		p.AddChar(n.Char, true)
		return nil

	case *LiteralString:
		p.AddString(n.Text, false)
		if caseless {
			p.AddString(n.Text, true)
		}
		return nil

	case *LiteralStringCaseless:
		p.AddString(n.Text, true)
		return nil

	case *PrimitiveClass:
		p.AddSet(n.Set, false)
		if caseless {
			p.AddSet(n.Set, true)
		}
		return nil

	case *ClassUnion, *ClassComplement, *ClassOperation, *PredefinedClass, *PropertyClass:
		return newError(NotCharacterClass, n)
	}
	return newError(UnexpectedNode, n)
}

// Classes returns the sorted indices of the classes n refers to once p
// has been refined with it. Nodes that are not normalized are skipped.
func Classes(n Node, p *charclass.Partition) []int {
	used := make(map[int]bool)
	mark := func(set *charset.Set) {
		for _, c := range p.ClassesOf(set) {
			used[c] = true
		}
	}
	Walk(n, func(x Node) bool {
		switch x := x.(type) {
		case *Literal:
			mark(charset.FromRune(x.Char))
		case *LiteralCaseless:
			mark(charset.CaseVariants(x.Char))
		case *LiteralString:
			for _, r := range x.Text {
				mark(charset.FromRune(r))
			}
		case *LiteralStringCaseless:
			for _, r := range x.Text {
				mark(charset.CaseVariants(r))
			}
		case *PrimitiveClass:
			mark(x.Set)
		}
		return true
	})

	res := make([]int, 0, len(used))
	for c := range used {
		res = append(res, c)
	}
	sort.Ints(res)
	return res
}
