package regex

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KromDaniel/lexgen/internal/charclass"
	"github.com/KromDaniel/lexgen/internal/charset"
	"github.com/KromDaniel/lexgen/internal/uniprops"
)

func TestMakeClasses(t *testing.T) {
	p := charclass.New(0x7F)
	in := alt(
		cat(str("if"), &Star{Child: class('a', 'z')}),
		&Plus{Child: class('0', '9')},
	)
	require.NoError(t, MakeClasses(in, p, false))

	// i, f, the rest of a-z, 0-9 and everything else
	require.Equal(t, 5, p.NumClasses())
	require.NotEqual(t, p.ClassOf('i'), p.ClassOf('f'))
	require.NotEqual(t, p.ClassOf('i'), p.ClassOf('a'))
	require.Equal(t, p.ClassOf('a'), p.ClassOf('z'))
	require.Equal(t, p.ClassOf('0'), p.ClassOf('9'))
	require.Equal(t, p.ClassOf('A'), p.ClassOf(' '))
}

func TestMakeClassesCaseless(t *testing.T) {
	p := charclass.New(0x7F)
	require.NoError(t, MakeClasses(&LiteralCaseless{Char: 'x'}, p, false))
	require.Equal(t, p.ClassOf('x'), p.ClassOf('X'))
	require.Equal(t, 2, p.NumClasses())

	p = charclass.New(0x7F)
	require.NoError(t, MakeClasses(cat(lit('x'), class('a', 'c')), p, true))
	for _, set := range []*charset.Set{
		charset.FromRune('x'),
		charset.FromRunes('x', 'X'),
		charset.FromRange('a', 'c'),
		charset.New(charset.Interval{Lo: 'A', Hi: 'C'}, charset.Interval{Lo: 'a', Hi: 'c'}),
	} {
		requireUnionOfClasses(t, p, set)
	}
	require.NotEqual(t, p.ClassOf('x'), p.ClassOf('X'))
}

func TestClasses(t *testing.T) {
	p := charclass.New(0x7F)
	in := cat(str("if"), &Star{Child: class('a', 'z')})
	require.NoError(t, MakeClasses(in, p, false))

	// i, f and the rest of a-z; the complement class is never used
	require.Len(t, Classes(in, p), 3)
	require.Equal(t, []int{p.ClassOf('i')}, Classes(lit('i'), p))
	require.Empty(t, Classes(&Star{Child: ref("M")}, p))
}

func TestMakeClassesRejectsUnnormalized(t *testing.T) {
	p := charclass.New(0x7F)
	err := MakeClasses(&Star{Child: &ClassUnion{Items: []Node{lit('a')}}}, p, false)
	require.ErrorIs(t, err, ErrNotCharacterClass)

	err = MakeClasses(cat(lit('a'), ref("M")), p, false)
	require.ErrorIs(t, err, ErrUnexpectedNode)
}

// requireUnionOfClasses checks that set is exactly a union of classes of p.
func requireUnionOfClasses(t *testing.T, p *charclass.Partition, set *charset.Set) {
	t.Helper()
	union := &charset.Set{}
	classes := p.Classes()
	for _, i := range p.ClassesOf(set) {
		union.Add(classes[i])
	}
	require.True(t, set.Equal(union), "%s is not a union of classes", set)
}

// TestPipeline runs every pass in order on a small rule set.
func TestPipeline(t *testing.T) {
	props := uniprops.New(uniprops.Options{MaxCodePoint: 0xFFFF})
	x := NewClassExpander(props)
	max := x.MaxCodePoint()

	macros := NewMacros()
	macros.Define("DIGIT", &ClassUnion{Items: []Node{class('0', '9')}})

	normalize := func(t *testing.T, n Node) Node {
		t.Helper()
		n, err := ExpandMacros(n, macros)
		require.NoError(t, err)
		n, err = x.Expand(n, false)
		require.NoError(t, err)
		n, err = NormalizeClasses(n, max)
		require.NoError(t, err)
		return ResolveTilde(n, max)
	}

	t.Run("digits", func(t *testing.T) {
		raw := &Plus{Child: ref("DIGIT")}
		size, err := Size(raw, macros)
		require.NoError(t, err)
		require.GreaterOrEqual(t, size, 3)

		got := normalize(t, raw)
		plus, ok := got.(*Plus)
		require.True(t, ok)
		pc, ok := plus.Child.(*PrimitiveClass)
		require.True(t, ok)
		require.True(t, pc.Set.Equal(charset.FromRange(48, 57)))
	})

	t.Run("vowels", func(t *testing.T) {
		raw := &ClassOperation{
			Op:    OpIntersection,
			Left:  class('a', 'z'),
			Right: &ClassUnion{Items: []Node{lit('a'), lit('e'), lit('i'), lit('o'), lit('u')}},
		}
		got := normalize(t, raw)
		require.True(t, got.(*PrimitiveClass).Set.Equal(charset.FromRunes('a', 'e', 'i', 'o', 'u')))
	})

	t.Run("partition", func(t *testing.T) {
		rules := []Node{
			&Plus{Child: ref("DIGIT")},
			cat(&PredefinedClass{Tag: ClassJavaLetter}, &Star{Child: &PredefinedClass{Tag: ClassJavaLetterDigit}}),
			&Upto{Child: str("*/")},
		}
		p := charclass.New(max)
		for _, r := range rules {
			n := normalize(t, r)
			require.False(t, Contains(n, KindMacroRef, KindPredefinedClass, KindPropertyClass,
				KindClassUnion, KindClassComplement, KindClassOperation, KindUpto))
			require.NoError(t, MakeClasses(n, p, false))
		}

		require.NotEqual(t, p.ClassOf('*'), p.ClassOf('/'))
		require.NotEqual(t, p.ClassOf('a'), p.ClassOf('0'))
		require.Equal(t, p.ClassOf('0'), p.ClassOf('9'))
		require.Equal(t, p.ClassOf('a'), p.ClassOf('Z'))
		require.Equal(t, p.ClassOf(' '), p.ClassOf('-'))
	})
}
