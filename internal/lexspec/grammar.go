// Package lexspec reads rule files: lists of macro and rule declarations
// whose right-hand sides are regular expressions.
//
//	// comment
//	macro DIGIT = [0-9] ;
//	rule NUMBER = {DIGIT}+ ("." {DIGIT}+)? ;
//	rule %caseless SELECT = "select" ;
//
// Whitespace inside an expression is ignored; quote it or escape it to
// match it. A literal ';' must be escaped as well.
package lexspec

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

type file struct {
	Decls []*decl `parser:"@@*"`
}

type decl struct {
	Macro *macroDecl `parser:"  @@"`
	Rule  *ruleDecl  `parser:"| @@"`
}

type macroDecl struct {
	Pos  lexer.Position
	Name string `parser:"'macro' @Ident '='"`
	Expr *alt   `parser:"@@ ';'"`
}

type ruleDecl struct {
	Pos      lexer.Position
	Caseless bool   `parser:"'rule' @'%caseless'?"`
	Name     string `parser:"@Ident '='"`
	Expr     *alt   `parser:"@@ ';'"`
}

type alt struct {
	Head *concat   `parser:"@@"`
	Tail []*concat `parser:"( '|' @@ )*"`
}

type concat struct {
	Items []*postfix `parser:"@@+"`
}

// postfix binds tighter than the prefix operators: !a* is !(a*).
type postfix struct {
	Prefix []string `parser:"@( '!' | '~' )*"`
	Atom   *atom    `parser:"@@"`
	Ops    []string `parser:"@( '*' | '+' | '?' )*"`
}

type atom struct {
	Pos        lexer.Position
	Group      *alt    `parser:"  '(' @@ ')'"`
	String     *string `parser:"| @String"`
	Macro      *string `parser:"| @MacroRef"`
	Property   *string `parser:"| @Property"`
	Predefined *string `parser:"| @Predefined"`
	Any        bool    `parser:"| @'.'"`
	Class      *class  `parser:"| @@"`
	Char       *string `parser:"| @( Char | Escape )"`
}

type class struct {
	Pos  lexer.Position
	Open string         `parser:"@ClassOpen"`
	Head *classTerm     `parser:"@@?"`
	Ops  []*classOpTerm `parser:"@@* ']'"`
}

type classOpTerm struct {
	Pos  lexer.Position
	Op   string     `parser:"@ClassOp"`
	Term *classTerm `parser:"@@"`
}

type classTerm struct {
	Items []*classItem `parser:"@@+"`
}

type classItem struct {
	Pos        lexer.Position
	Class      *class  `parser:"  @@"`
	Property   *string `parser:"| @Property"`
	Predefined *string `parser:"| @Predefined"`
	Lo         *string `parser:"| @( ClassChar | Escape | Dash )"`
	Hi         *string `parser:"  ( Dash @( ClassChar | Escape ) )?"`
}

const (
	predefinedPattern = `\\[dDsSwW]|\[:[a-z]+:\]`
	propertyPattern   = `\\[pP]\{[^}]*\}`
	escapePattern     = `\\(x[0-9a-fA-F]{2}|u[0-9a-fA-F]{4}|U\{[0-9a-fA-F]+\}|[\s\S])`
)

// specRules are shared by all states by name: a token name must keep the
// same pattern in every state it appears in.
var specRules = lexer.Rules{
	"Root": {
		{Name: "Whitespace", Pattern: `\s+`},
		{Name: "Comment", Pattern: `//[^\n]*|/\*([^*]|\*+[^*/])*\*+/`},
		{Name: "Caseless", Pattern: `%caseless`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
		{Name: "Assign", Pattern: `=`, Action: lexer.Push("Regex")},
	},
	"Regex": {
		{Name: "Whitespace", Pattern: `\s+`},
		{Name: "End", Pattern: `;`, Action: lexer.Pop()},
		{Name: "String", Pattern: `"(\\[\s\S]|[^"\\])*"`},
		{Name: "MacroRef", Pattern: `\{[A-Za-z_][A-Za-z0-9_]*\}`},
		{Name: "Predefined", Pattern: predefinedPattern},
		{Name: "Property", Pattern: propertyPattern},
		{Name: "Escape", Pattern: escapePattern},
		{Name: "ClassOpen", Pattern: `\[\^?`, Action: lexer.Push("Class")},
		{Name: "Punct", Pattern: `[|*+?!~().]`},
		{Name: "Char", Pattern: `[^\s]`},
	},
	"Class": {
		{Name: "Predefined", Pattern: predefinedPattern},
		{Name: "Property", Pattern: propertyPattern},
		{Name: "Escape", Pattern: escapePattern},
		{Name: "ClassOpen", Pattern: `\[\^?`, Action: lexer.Push("Class")},
		{Name: "ClassClose", Pattern: `\]`, Action: lexer.Pop()},
		{Name: "ClassOp", Pattern: `&&|--|~~`},
		{Name: "Dash", Pattern: `-`},
		{Name: "ClassChar", Pattern: `[\s\S]`},
	},
}

var specLexer = lexer.MustStateful(specRules)

var specParser = participle.MustBuild[file](
	participle.Lexer(specLexer),
	participle.Elide("Whitespace", "Comment"),
	participle.UseLookahead(2),
)
