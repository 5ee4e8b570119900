// Package codegen provides code generation helpers and constants.
package codegen

import (
	"unicode"
	"unicode/utf8"
)

// Names used in generated code. Exported names are prefixed with the
// configured lexer name, unexported ones with its lower-cased form. Rule
// constants are the only names starting with RulePrefix.
const (
	InputName          = "r"
	IndexName          = "i"
	NumClassesName     = "NumClasses"
	ClassRangeTypeName = "ClassRange"
	ClassRangesName    = "ClassRanges"
	ClassOfName        = "ClassOf"
	ASCIIClassesName   = "ASCIIClasses"
	RuleNamesName      = "Names"
	RuleSizesName      = "Sizes"
	RulePrefix         = "Rule"
)

// Exported returns the exported identifier prefix+name.
func Exported(prefix, name string) string {
	return UpperFirst(prefix) + name
}

// Unexported returns the unexported identifier prefix+name.
func Unexported(prefix, name string) string {
	return LowerFirst(prefix) + name
}

// RuleName returns the name of the index constant of a rule.
func RuleName(prefix, rule string) string {
	return Exported(prefix, RulePrefix+UpperFirst(rule))
}

// LowerFirst converts the first character of a string to lowercase.
func LowerFirst(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToLower(r)) + s[size:]
}

// UpperFirst converts the first character of a string to uppercase.
func UpperFirst(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
