// Package regex holds the abstract syntax of rule patterns and the passes
// that reduce it to a macro-free tree whose only character sets are
// primitive classes.
//
// Nodes are immutable once built. Every pass returns a new tree and leaves
// its input usable; leaves and, after tilde resolution, whole subtrees may
// be shared between trees.
package regex

import (
	"strconv"
	"strings"

	"github.com/KromDaniel/lexgen/internal/charset"
)

// Kind identifies the variant of a Node.
type Kind int

const (
	KindAlternation Kind = iota
	KindConcatenation
	KindStar
	KindPlus
	KindOptional
	KindNegation
	KindUpto
	KindLiteral
	KindLiteralCaseless
	KindLiteralString
	KindLiteralStringCaseless
	KindPrimitiveClass
	KindPredefinedClass
	KindPropertyClass
	KindMacroRef
	KindClassUnion
	KindClassComplement
	KindClassOperation
)

var kindNames = [...]string{
	KindAlternation:           "Alternation",
	KindConcatenation:         "Concatenation",
	KindStar:                  "Star",
	KindPlus:                  "Plus",
	KindOptional:              "Optional",
	KindNegation:              "Negation",
	KindUpto:                  "Upto",
	KindLiteral:               "Literal",
	KindLiteralCaseless:       "LiteralCaseless",
	KindLiteralString:         "LiteralString",
	KindLiteralStringCaseless: "LiteralStringCaseless",
	KindPrimitiveClass:        "PrimitiveClass",
	KindPredefinedClass:       "PredefinedClass",
	KindPropertyClass:         "PropertyClass",
	KindMacroRef:              "MacroRef",
	KindClassUnion:            "ClassUnion",
	KindClassComplement:       "ClassComplement",
	KindClassOperation:        "ClassOperation",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Node is a regular expression. The set of implementations is closed.
type Node interface {
	Kind() Kind
	String() string
	node()
}

// Alternation matches Left or Right.
type Alternation struct{ Left, Right Node }

// Concatenation matches Left followed by Right.
type Concatenation struct{ Left, Right Node }

// Star matches zero or more repetitions of Child.
type Star struct{ Child Node }

// Plus matches one or more repetitions of Child.
type Plus struct{ Child Node }

// Optional matches Child or the empty string.
type Optional struct{ Child Node }

// Negation matches every string Child does not match.
type Negation struct{ Child Node }

// Upto matches everything up to and including the first match of Child.
type Upto struct{ Child Node }

// Literal matches a single code point.
type Literal struct{ Char rune }

// LiteralCaseless matches a code point or any of its case variants.
type LiteralCaseless struct{ Char rune }

// LiteralString matches Text exactly.
type LiteralString struct{ Text string }

// LiteralStringCaseless matches Text ignoring case.
type LiteralStringCaseless struct{ Text string }

// PrimitiveClass is a resolved set of code points. Set must not be
// modified after the node is built.
type PrimitiveClass struct{ Set *charset.Set }

// PredefinedClass is a named class such as \d or [:jletter:].
type PredefinedClass struct{ Tag PredefinedTag }

// PropertyClass is a Unicode property reference such as \p{Lu}.
type PropertyClass struct{ Name string }

// MacroRef is a use of a macro, written {NAME}.
type MacroRef struct{ Name string }

// ClassUnion is a bracketed class [...] over its items.
type ClassUnion struct{ Items []Node }

// ClassComplement is a negated bracketed class [^...] over its items.
type ClassComplement struct{ Items []Node }

// ClassOperation combines two class items with a set operator.
type ClassOperation struct {
	Op          ClassOp
	Left, Right Node
}

// ClassOp is a set operator between class items.
type ClassOp int

const (
	OpIntersection ClassOp = iota + 1
	OpDifference
	OpSymmetricDifference
)

func (op ClassOp) String() string {
	switch op {
	case OpIntersection:
		return "&&"
	case OpDifference:
		return "--"
	case OpSymmetricDifference:
		return "~~"
	}
	return "op(" + strconv.Itoa(int(op)) + ")"
}

// PredefinedTag names a predefined character class.
type PredefinedTag int

const (
	ClassLetter PredefinedTag = iota + 1
	ClassDigit
	ClassDigitNot
	ClassUppercase
	ClassLowercase
	ClassWhitespace
	ClassWhitespaceNot
	ClassWord
	ClassWordNot
	ClassJavaLetter
	ClassJavaLetterDigit
)

var tagNames = map[PredefinedTag]string{
	ClassLetter:          "[:letter:]",
	ClassDigit:           `\d`,
	ClassDigitNot:        `\D`,
	ClassUppercase:       "[:uppercase:]",
	ClassLowercase:       "[:lowercase:]",
	ClassWhitespace:      `\s`,
	ClassWhitespaceNot:   `\S`,
	ClassWord:            `\w`,
	ClassWordNot:         `\W`,
	ClassJavaLetter:      "[:jletter:]",
	ClassJavaLetterDigit: "[:jletterdigit:]",
}

func (t PredefinedTag) String() string {
	if s, ok := tagNames[t]; ok {
		return s
	}
	return "[:class" + strconv.Itoa(int(t)) + ":]"
}

func (*Alternation) Kind() Kind           { return KindAlternation }
func (*Concatenation) Kind() Kind         { return KindConcatenation }
func (*Star) Kind() Kind                  { return KindStar }
func (*Plus) Kind() Kind                  { return KindPlus }
func (*Optional) Kind() Kind              { return KindOptional }
func (*Negation) Kind() Kind              { return KindNegation }
func (*Upto) Kind() Kind                  { return KindUpto }
func (*Literal) Kind() Kind               { return KindLiteral }
func (*LiteralCaseless) Kind() Kind       { return KindLiteralCaseless }
func (*LiteralString) Kind() Kind         { return KindLiteralString }
func (*LiteralStringCaseless) Kind() Kind { return KindLiteralStringCaseless }
func (*PrimitiveClass) Kind() Kind        { return KindPrimitiveClass }
func (*PredefinedClass) Kind() Kind       { return KindPredefinedClass }
func (*PropertyClass) Kind() Kind         { return KindPropertyClass }
func (*MacroRef) Kind() Kind              { return KindMacroRef }
func (*ClassUnion) Kind() Kind            { return KindClassUnion }
func (*ClassComplement) Kind() Kind       { return KindClassComplement }
func (*ClassOperation) Kind() Kind        { return KindClassOperation }

func (*Alternation) node()           {}
func (*Concatenation) node()         {}
func (*Star) node()                  {}
func (*Plus) node()                  {}
func (*Optional) node()              {}
func (*Negation) node()              {}
func (*Upto) node()                  {}
func (*Literal) node()               {}
func (*LiteralCaseless) node()       {}
func (*LiteralString) node()         {}
func (*LiteralStringCaseless) node() {}
func (*PrimitiveClass) node()        {}
func (*PredefinedClass) node()       {}
func (*PropertyClass) node()         {}
func (*MacroRef) node()              {}
func (*ClassUnion) node()            {}
func (*ClassComplement) node()       {}
func (*ClassOperation) node()        {}

func (n *Alternation) String() string   { return "(" + n.Left.String() + "|" + n.Right.String() + ")" }
func (n *Concatenation) String() string { return n.Left.String() + n.Right.String() }
func (n *Star) String() string          { return group(n.Child) + "*" }
func (n *Plus) String() string          { return group(n.Child) + "+" }
func (n *Optional) String() string      { return group(n.Child) + "?" }
func (n *Negation) String() string      { return "!" + group(n.Child) }
func (n *Upto) String() string          { return "~" + group(n.Child) }
func (n *Literal) String() string       { return quoteRune(n.Char) }
func (n *LiteralCaseless) String() string {
	return "%i" + quoteRune(n.Char)
}
func (n *LiteralString) String() string { return strconv.Quote(n.Text) }
func (n *LiteralStringCaseless) String() string {
	return "%i" + strconv.Quote(n.Text)
}
func (n *PrimitiveClass) String() string  { return n.Set.String() }
func (n *PredefinedClass) String() string { return n.Tag.String() }
func (n *PropertyClass) String() string   { return `\p{` + n.Name + `}` }
func (n *MacroRef) String() string        { return "{" + n.Name + "}" }
func (n *ClassUnion) String() string      { return "[" + joinItems(n.Items) + "]" }
func (n *ClassComplement) String() string { return "[^" + joinItems(n.Items) + "]" }
func (n *ClassOperation) String() string {
	return "[" + n.Left.String() + n.Op.String() + n.Right.String() + "]"
}

func group(n Node) string {
	switch n.(type) {
	case *Literal, *LiteralCaseless, *LiteralString, *LiteralStringCaseless,
		*PrimitiveClass, *PredefinedClass, *PropertyClass, *MacroRef,
		*ClassUnion, *ClassComplement, *ClassOperation, *Alternation:
		return n.String()
	}
	return "(" + n.String() + ")"
}

func joinItems(items []Node) string {
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = it.String()
	}
	return strings.Join(parts, "")
}

func quoteRune(r rune) string {
	return strconv.QuoteRune(r)
}

// AnyChar returns the class of every code point up to max.
func AnyChar(max rune) *PrimitiveClass {
	return &PrimitiveClass{Set: charset.All(max)}
}

// IsCharClass reports whether n matches exactly the strings of length one
// drawn from some set, without needing further expansion.
func IsCharClass(n Node) bool {
	switch n := n.(type) {
	case *Literal, *LiteralCaseless, *PrimitiveClass:
		return true
	case *Alternation:
		return IsCharClass(n.Left) && IsCharClass(n.Right)
	}
	return false
}
