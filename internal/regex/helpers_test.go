package regex

import (
	"strings"

	"github.com/google/go-cmp/cmp"

	"github.com/KromDaniel/lexgen/internal/charset"
)

// setComparer lets cmp compare trees holding primitive classes.
var setComparer = cmp.Comparer(func(a, b *charset.Set) bool {
	return a.Equal(b)
})

func lit(c rune) Node { return &Literal{Char: c} }

func str(s string) Node { return &LiteralString{Text: s} }

func ref(name string) Node { return &MacroRef{Name: name} }

func class(lo, hi rune) Node { return &PrimitiveClass{Set: charset.FromRange(lo, hi)} }

func cat(nodes ...Node) Node {
	res := nodes[len(nodes)-1]
	for i := len(nodes) - 2; i >= 0; i-- {
		res = &Concatenation{Left: nodes[i], Right: res}
	}
	return res
}

func alt(nodes ...Node) Node {
	res := nodes[len(nodes)-1]
	for i := len(nodes) - 2; i >= 0; i-- {
		res = &Alternation{Left: nodes[i], Right: res}
	}
	return res
}

// mapProvider is a property provider over a fixed table.
type mapProvider struct {
	max  rune
	sets map[string]*charset.Set
}

func (p *mapProvider) Lookup(name string) (*charset.Set, bool) {
	s, ok := p.sets[name]
	if !ok {
		return nil, false
	}
	return s.Copy(), true
}

func (p *mapProvider) MaxCodePoint() rune { return p.max }

// matches decides by brute force whether n matches all of s. Upto is
// interpreted directly: a prefix containing no match of the content,
// followed by a match of the content.
func matches(n Node, s []rune) bool {
	switch n := n.(type) {
	case *Alternation:
		return matches(n.Left, s) || matches(n.Right, s)
	case *Concatenation:
		for i := 0; i <= len(s); i++ {
			if matches(n.Left, s[:i]) && matches(n.Right, s[i:]) {
				return true
			}
		}
		return false
	case *Star:
		if len(s) == 0 {
			return true
		}
		for i := 1; i <= len(s); i++ {
			if matches(n.Child, s[:i]) && matches(n, s[i:]) {
				return true
			}
		}
		return false
	case *Plus:
		if len(s) == 0 {
			return matches(n.Child, s)
		}
		return matches(&Star{Child: n.Child}, s)
	case *Optional:
		return len(s) == 0 || matches(n.Child, s)
	case *Negation:
		return !matches(n.Child, s)
	case *Upto:
		for i := 0; i <= len(s); i++ {
			if matches(n.Child, s[i:]) && !containsMatch(n.Child, s[:i]) {
				return true
			}
		}
		return false
	case *Literal:
		return len(s) == 1 && s[0] == n.Char
	case *LiteralCaseless:
		return len(s) == 1 && charset.CaseVariants(n.Char).Contains(s[0])
	case *LiteralString:
		return string(s) == n.Text
	case *LiteralStringCaseless:
		return strings.EqualFold(string(s), n.Text)
	case *PrimitiveClass:
		return len(s) == 1 && n.Set.Contains(s[0])
	}
	panic("matches: unsupported node " + n.String())
}

// containsMatch reports whether some substring of s matches n.
func containsMatch(n Node, s []rune) bool {
	for i := 0; i <= len(s); i++ {
		for j := i; j <= len(s); j++ {
			if matches(n, s[i:j]) {
				return true
			}
		}
	}
	return false
}

// allStrings enumerates every string over alphabet up to length max.
func allStrings(alphabet string, max int) [][]rune {
	res := [][]rune{{}}
	level := [][]rune{{}}
	for l := 1; l <= max; l++ {
		var next [][]rune
		for _, prefix := range level {
			for _, c := range alphabet {
				s := append(append([]rune(nil), prefix...), c)
				next = append(next, s)
			}
		}
		res = append(res, next...)
		level = next
	}
	return res
}

func reversed(s []rune) []rune {
	res := make([]rune, len(s))
	for i, c := range s {
		res[len(s)-1-i] = c
	}
	return res
}
