package regex

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNodeString(t *testing.T) {
	tests := []struct {
		in   Node
		want string
	}{
		{lit('a'), `'a'`},
		{&LiteralCaseless{Char: 'a'}, `%i'a'`},
		{str("if"), `"if"`},
		{&Star{Child: cat(lit('a'), lit('b'))}, `('a''b')*`},
		{&Plus{Child: alt(lit('a'), lit('b'))}, `('a'|'b')+`},
		{&Upto{Child: str("*/")}, `~"*/"`},
		{&Negation{Child: &PredefinedClass{Tag: ClassDigit}}, `!\d`},
		{&ClassComplement{Items: []Node{lit('a'), &PropertyClass{Name: "Lu"}}}, `[^'a'\p{Lu}]`},
		{&ClassOperation{Op: OpDifference, Left: ref("L"), Right: lit('x')}, `[{L}--'x']`},
		{class('a', 'c'), `[a-c]`},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, tt.in.String())
	}
}

func TestIsCharClass(t *testing.T) {
	require.True(t, IsCharClass(lit('a')))
	require.True(t, IsCharClass(AnyChar(0xFF)))
	require.True(t, IsCharClass(alt(lit('a'), alt(class('0', '9'), &LiteralCaseless{Char: 'q'}))))
	require.False(t, IsCharClass(str("a")))
	require.False(t, IsCharClass(alt(lit('a'), str("bc"))))
	require.False(t, IsCharClass(&PredefinedClass{Tag: ClassDigit}))
}

func TestWalk(t *testing.T) {
	in := cat(&Star{Child: lit('a')}, &ClassUnion{Items: []Node{lit('b'), lit('c')}})

	var kinds []Kind
	Walk(in, func(n Node) bool {
		kinds = append(kinds, n.Kind())
		return n.Kind() != KindClassUnion
	})
	require.Equal(t, []Kind{KindConcatenation, KindStar, KindLiteral, KindClassUnion}, kinds)

	require.Equal(t, 3, CountKinds(in)[KindLiteral])
	require.True(t, Contains(in, KindStar))
	require.False(t, Contains(in, KindPlus, KindUpto))
}

func TestPrint(t *testing.T) {
	in := alt(&Star{Child: lit('a')}, &ClassOperation{Op: OpIntersection, Left: ref("A"), Right: lit('b')})
	want := "> Alternation\n" +
		">   Star\n" +
		">     Literal 'a'\n" +
		">   ClassOperation &&\n" +
		">     MacroRef {A}\n" +
		">     Literal 'b'\n"
	require.Equal(t, want, Print(in, "> "))
}

func TestErrorMessages(t *testing.T) {
	err := &Error{Kind: DefinitionCycle, Node: ref("A"), Name: "A", Path: []string{"A", "B", "A"}}
	require.Contains(t, err.Error(), "A -> B -> A")
	require.ErrorIs(t, err, ErrDefinitionCycle)
	require.NotErrorIs(t, err, ErrUndefinedMacro)
}
