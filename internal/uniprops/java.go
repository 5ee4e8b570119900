package uniprops

import "unicode"

// JavaIdentifierStart reports whether r may start a Java identifier:
// letters, letter numbers, currency symbols and connector punctuation.
func JavaIdentifierStart(r rune) bool {
	return unicode.IsLetter(r) ||
		unicode.Is(unicode.Nl, r) ||
		unicode.Is(unicode.Sc, r) ||
		unicode.Is(unicode.Pc, r)
}

// JavaIdentifierPart reports whether r may appear after the first
// character of a Java identifier.
func JavaIdentifierPart(r rune) bool {
	return JavaIdentifierStart(r) ||
		unicode.Is(unicode.Nd, r) ||
		unicode.Is(unicode.Mn, r) ||
		unicode.Is(unicode.Mc, r) ||
		identifierIgnorable(r)
}

// identifierIgnorable covers the ISO control characters that are not
// whitespace plus the format characters.
func identifierIgnorable(r rune) bool {
	switch {
	case r <= 0x08, 0x0E <= r && r <= 0x1B, 0x7F <= r && r <= 0x9F:
		return r >= 0
	}
	return unicode.Is(unicode.Cf, r)
}
