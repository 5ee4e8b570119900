package regex

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestExpandMacros(t *testing.T) {
	macros := NewMacros()
	macros.Define("DIGIT", class('0', '9'))
	macros.Define("NUM", &Plus{Child: ref("DIGIT")})
	macros.Define("SIGN", &ClassUnion{Items: []Node{lit('+'), lit('-')}})

	tests := []struct {
		name string
		in   Node
		want Node
	}{
		{
			name: "leaf",
			in:   lit('a'),
			want: lit('a'),
		},
		{
			name: "single reference",
			in:   &Plus{Child: ref("DIGIT")},
			want: &Plus{Child: class('0', '9')},
		},
		{
			name: "nested reference",
			in:   cat(&Optional{Child: ref("SIGN")}, ref("NUM")),
			want: cat(
				&Optional{Child: &ClassUnion{Items: []Node{lit('+'), lit('-')}}},
				&Plus{Child: class('0', '9')},
			),
		},
		{
			name: "inside class operation",
			in:   &ClassOperation{Op: OpDifference, Left: ref("DIGIT"), Right: lit('0')},
			want: &ClassOperation{Op: OpDifference, Left: class('0', '9'), Right: lit('0')},
		},
		{
			name: "inside negation and upto",
			in:   alt(&Negation{Child: ref("DIGIT")}, &Upto{Child: ref("SIGN")}),
			want: alt(
				&Negation{Child: class('0', '9')},
				&Upto{Child: &ClassUnion{Items: []Node{lit('+'), lit('-')}}},
			),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandMacros(tt.in, macros)
			require.NoError(t, err)
			require.Empty(t, cmp.Diff(tt.want, got, setComparer))
			require.False(t, Contains(got, KindMacroRef))
		})
	}
}

func TestExpandMacrosLeavesInputIntact(t *testing.T) {
	macros := NewMacros()
	macros.Define("A", lit('a'))

	in := &Star{Child: ref("A")}
	_, err := ExpandMacros(in, macros)
	require.NoError(t, err)
	require.Equal(t, &MacroRef{Name: "A"}, in.Child)
}

func TestExpandMacrosRepeatedUseIsNotACycle(t *testing.T) {
	macros := NewMacros()
	macros.Define("A", lit('a'))
	macros.Define("B", cat(ref("A"), ref("A")))
	macros.Define("C", alt(ref("B"), ref("A")))

	got, err := ExpandMacros(cat(ref("C"), ref("B")), macros)
	require.NoError(t, err)
	require.Equal(t, 5, CountKinds(got)[KindLiteral])
}

func TestExpandMacrosErrors(t *testing.T) {
	macros := NewMacros()
	macros.Define("SELF", &Star{Child: ref("SELF")})
	macros.Define("A", cat(lit('a'), ref("B")))
	macros.Define("B", alt(lit('b'), ref("C")))
	macros.Define("C", ref("A"))
	macros.Define("USES_CYCLE", ref("B"))

	tests := []struct {
		name     string
		in       Node
		sentinel error
		path     []string
	}{
		{"undefined", ref("NOPE"), ErrUndefinedMacro, nil},
		{"self reference", ref("SELF"), ErrDefinitionCycle, []string{"SELF", "SELF"}},
		{"mutual recursion", ref("A"), ErrDefinitionCycle, []string{"A", "B", "C", "A"}},
		{"cycle reached indirectly", ref("USES_CYCLE"), ErrDefinitionCycle, []string{"B", "C", "A", "B"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandMacros(tt.in, macros)
			require.Nil(t, got)
			require.ErrorIs(t, err, tt.sentinel)

			var rerr *Error
			require.True(t, errors.As(err, &rerr))
			require.Equal(t, tt.path, rerr.Path)
			require.NotNil(t, rerr.Node)
		})
	}
}

func TestMacrosTable(t *testing.T) {
	macros := NewMacros()
	require.False(t, macros.Define("X", lit('x')))
	require.False(t, macros.Define("Y", lit('y')))
	require.True(t, macros.Define("X", lit('z')))

	require.Equal(t, 2, macros.Len())
	require.Equal(t, []string{"X", "Y"}, macros.Names())

	def, ok := macros.Lookup("X")
	require.True(t, ok)
	require.Equal(t, lit('z'), def)

	_, ok = macros.Lookup("Z")
	require.False(t, ok)
}

func TestMacrosUnused(t *testing.T) {
	macros := NewMacros()
	macros.Define("DIGIT", class('0', '9'))
	macros.Define("NUM", &Plus{Child: ref("DIGIT")})
	macros.Define("WS", lit(' '))
	macros.Define("LOOP", ref("LOOP"))

	require.Equal(t, []string{"WS", "LOOP"}, macros.Unused([]Node{ref("NUM")}))
	require.Equal(t, []string{"DIGIT", "NUM", "WS"}, macros.Unused([]Node{ref("LOOP")}))
}
