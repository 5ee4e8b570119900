package uniprops

import (
	"testing"
	"unicode"

	"github.com/stretchr/testify/require"

	"github.com/KromDaniel/lexgen/internal/charset"
)

func TestLookupCategories(t *testing.T) {
	table := New(Options{})

	tests := []struct {
		name    string
		in      []rune
		notIn   []rune
		present bool
	}{
		{"Nd", []rune("0959"), []rune("a/"), true},
		{"Decimal_Number", []rune("0٠"), []rune("x"), true},
		{"gc=Lu", []rune("AZÀ"), []rune("az"), true},
		{"L", []rune("aZé"), []rune("1_"), true},
		{"Greek", []rune("αΩ"), []rune("a"), true},
		{"script=Latin", []rune("a"), []rune("α"), true},
		{"white space", []rune(" \t\n"), []rune("a"), true},
		{"Uppercase", []rune("AⅠ"), []rune("a"), true},
		{"Alphabetic", []rune("aⅠ"), []rune("1"), true},
		{"ASCII", []rune("\x00\x7F"), []rune("\u0080"), true},
		{"No_Such_Property", nil, nil, false},
		{"foo=Lu", nil, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, ok := table.Lookup(tt.name)
			require.Equal(t, tt.present, ok)
			if !ok {
				require.Nil(t, set)
				return
			}
			for _, r := range tt.in {
				require.True(t, set.Contains(r), "%U should be in %s", r, tt.name)
			}
			for _, r := range tt.notIn {
				require.False(t, set.Contains(r), "%U should not be in %s", r, tt.name)
			}
		})
	}
}

func TestLookupReturnsCallerOwnedSets(t *testing.T) {
	table := New(Options{})
	first, ok := table.Lookup("Nd")
	require.True(t, ok)
	first.Sub(charset.FromRange('0', '9'))

	second, ok := table.Lookup("Nd")
	require.True(t, ok)
	require.True(t, second.Contains('5'))
}

func TestBasicTableLacksDerivedProperties(t *testing.T) {
	table := New(Options{Basic: true})
	for _, name := range []string{"Uppercase", "Lowercase", "Whitespace", "Alphabetic"} {
		_, ok := table.Lookup(name)
		require.False(t, ok, name)
	}
	for _, name := range []string{"Lu", "Ll", "Zs", "L", "Pc", "Nd"} {
		_, ok := table.Lookup(name)
		require.True(t, ok, name)
	}
}

func TestMaxCodePointClampsSets(t *testing.T) {
	table := New(Options{MaxCodePoint: 0xFF})
	require.Equal(t, rune(0xFF), table.MaxCodePoint())

	set, ok := table.Lookup("L")
	require.True(t, ok)
	require.True(t, set.Contains('a'))
	require.True(t, set.Contains(0xE9))
	require.False(t, set.Contains(0x100))

	require.Equal(t, rune(unicode.MaxRune), New(Options{}).MaxCodePoint())
}

func TestFromRangeTableHonorsStride(t *testing.T) {
	rt := &unicode.RangeTable{R16: []unicode.Range16{{Lo: 'a', Hi: 'g', Stride: 2}}}
	require.Equal(t, charset.FromRunes('a', 'c', 'e', 'g').Intervals(), FromRangeTable(rt).Intervals())
}

func TestJavaIdentifierPredicates(t *testing.T) {
	for _, r := range "aZ$_é" {
		require.True(t, JavaIdentifierStart(r), "%U", r)
		require.True(t, JavaIdentifierPart(r), "%U", r)
	}
	for _, r := range "09\u0000\u007F\u200B" {
		require.False(t, JavaIdentifierStart(r), "%U", r)
		require.True(t, JavaIdentifierPart(r), "%U", r)
	}
	for _, r := range " -+\n" {
		require.False(t, JavaIdentifierStart(r), "%U", r)
		require.False(t, JavaIdentifierPart(r), "%U", r)
	}
}
