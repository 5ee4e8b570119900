package lexspec

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"golang.org/x/xerrors"

	"github.com/KromDaniel/lexgen/internal/charset"
	"github.com/KromDaniel/lexgen/internal/regex"
)

// Spec is a parsed rule file.
type Spec struct {
	Filename string
	Macros   *regex.Macros
	Rules    []*Rule

	macroPos map[string]lexer.Position
}

// Rule is a named pattern. Rules keep their declaration order.
type Rule struct {
	Name     string
	Caseless bool
	Expr     regex.Node
	Pos      lexer.Position
}

// MacroPos returns where macro name was declared.
func (s *Spec) MacroPos(name string) (lexer.Position, bool) {
	pos, ok := s.macroPos[name]
	return pos, ok
}

// Exprs returns the rule expressions in declaration order.
func (s *Spec) Exprs() []regex.Node {
	res := make([]regex.Node, len(s.Rules))
	for i, r := range s.Rules {
		res[i] = r.Expr
	}
	return res
}

// SyntaxError is a malformed declaration or expression.
type SyntaxError struct {
	Message string
	Pos     lexer.Position
}

func (e *SyntaxError) Error() string {
	return e.Pos.String() + ": " + e.Message
}

func newSyntaxError(pos lexer.Position, format string, args ...interface{}) *SyntaxError {
	return &SyntaxError{Pos: pos, Message: fmt.Sprintf(format, args...)}
}

// ParseFile reads and parses the rule file at path.
func ParseFile(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, xerrors.Errorf("unable to read rule file: %w", err)
	}
	return Parse(path, data)
}

// Parse parses a rule file. filename is only used in positions.
func Parse(filename string, data []byte) (*Spec, error) {
	f, err := specParser.ParseBytes(filename, data)
	if err != nil {
		var perr participle.Error
		if xerrors.As(err, &perr) {
			return nil, &SyntaxError{Message: perr.Message(), Pos: perr.Position()}
		}
		return nil, err
	}

	s := &Spec{
		Filename: filename,
		Macros:   regex.NewMacros(),
		macroPos: make(map[string]lexer.Position),
	}
	rulePos := make(map[string]lexer.Position)

	for _, d := range f.Decls {
		switch {
		case d.Macro != nil:
			m := d.Macro
			if prev, ok := s.macroPos[m.Name]; ok {
				return nil, newSyntaxError(m.Pos, "macro %s already declared at %s", m.Name, prev)
			}
			expr, err := convertAlt(m.Expr)
			if err != nil {
				return nil, err
			}
			s.Macros.Define(m.Name, expr)
			s.macroPos[m.Name] = m.Pos

		case d.Rule != nil:
			r := d.Rule
			if prev, ok := rulePos[r.Name]; ok {
				return nil, newSyntaxError(r.Pos, "rule %s already declared at %s", r.Name, prev)
			}
			expr, err := convertAlt(r.Expr)
			if err != nil {
				return nil, err
			}
			rulePos[r.Name] = r.Pos
			s.Rules = append(s.Rules, &Rule{Name: r.Name, Caseless: r.Caseless, Expr: expr, Pos: r.Pos})
		}
	}
	return s, nil
}

func convertAlt(a *alt) (regex.Node, error) {
	res, err := convertConcat(a.Head)
	if err != nil {
		return nil, err
	}
	for _, c := range a.Tail {
		right, err := convertConcat(c)
		if err != nil {
			return nil, err
		}
		res = &regex.Alternation{Left: res, Right: right}
	}
	return res, nil
}

func convertConcat(c *concat) (regex.Node, error) {
	var res regex.Node
	for _, p := range c.Items {
		n, err := convertPostfix(p)
		if err != nil {
			return nil, err
		}
		if res == nil {
			res = n
			continue
		}
		res = &regex.Concatenation{Left: res, Right: n}
	}
	return res, nil
}

func convertPostfix(p *postfix) (regex.Node, error) {
	n, err := convertAtom(p.Atom)
	if err != nil {
		return nil, err
	}
	for _, op := range p.Ops {
		switch op {
		case "*":
			n = &regex.Star{Child: n}
		case "+":
			n = &regex.Plus{Child: n}
		case "?":
			n = &regex.Optional{Child: n}
		}
	}
	for i := len(p.Prefix) - 1; i >= 0; i-- {
		switch p.Prefix[i] {
		case "!":
			n = &regex.Negation{Child: n}
		case "~":
			n = &regex.Upto{Child: n}
		}
	}
	return n, nil
}

// anyChar is '.': everything but line terminators.
var anyChar = []rune{'\n', '\r', '\u000B', '\u000C', '\u0085', '\u2028', '\u2029'}

func convertAtom(a *atom) (regex.Node, error) {
	switch {
	case a.Group != nil:
		return convertAlt(a.Group)

	case a.String != nil:
		text, err := unquote(*a.String)
		if err != nil {
			return nil, newSyntaxError(a.Pos, "%v", err)
		}
		if text == "" {
			return nil, newSyntaxError(a.Pos, "empty string")
		}
		return &regex.LiteralString{Text: text}, nil

	case a.Macro != nil:
		return &regex.MacroRef{Name: strings.Trim(*a.Macro, "{}")}, nil

	case a.Property != nil:
		return convertProperty(*a.Property), nil

	case a.Predefined != nil:
		return convertPredefined(a.Pos, *a.Predefined)

	case a.Any:
		items := make([]regex.Node, len(anyChar))
		for i, c := range anyChar {
			items[i] = &regex.Literal{Char: c}
		}
		return &regex.ClassComplement{Items: items}, nil

	case a.Class != nil:
		return convertClass(a.Class)

	case a.Char != nil:
		c, err := decodeChar(*a.Char)
		if err != nil {
			return nil, newSyntaxError(a.Pos, "%v", err)
		}
		return &regex.Literal{Char: c}, nil
	}
	return nil, newSyntaxError(a.Pos, "empty expression")
}

// convertProperty handles \p{Name} and its negation \P{Name}.
func convertProperty(tok string) regex.Node {
	name := tok[3 : len(tok)-1]
	prop := &regex.PropertyClass{Name: name}
	if tok[1] == 'P' {
		return &regex.ClassComplement{Items: []regex.Node{prop}}
	}
	return prop
}

var predefinedTags = map[string]regex.PredefinedTag{
	`\d`:               regex.ClassDigit,
	`\D`:               regex.ClassDigitNot,
	`\s`:               regex.ClassWhitespace,
	`\S`:               regex.ClassWhitespaceNot,
	`\w`:               regex.ClassWord,
	`\W`:               regex.ClassWordNot,
	"[:letter:]":       regex.ClassLetter,
	"[:digit:]":        regex.ClassDigit,
	"[:uppercase:]":    regex.ClassUppercase,
	"[:lowercase:]":    regex.ClassLowercase,
	"[:jletter:]":      regex.ClassJavaLetter,
	"[:jletterdigit:]": regex.ClassJavaLetterDigit,
}

func convertPredefined(pos lexer.Position, tok string) (regex.Node, error) {
	tag, ok := predefinedTags[tok]
	if !ok {
		return nil, newSyntaxError(pos, "unknown predefined class %s", tok)
	}
	return &regex.PredefinedClass{Tag: tag}, nil
}

var classOps = map[string]regex.ClassOp{
	"&&": regex.OpIntersection,
	"--": regex.OpDifference,
	"~~": regex.OpSymmetricDifference,
}

// convertClass builds a bracketed class. Operators are left associative
// and bind looser than juxtaposition: [a-z--aeiou] is [[a-z]--[aeiou]].
func convertClass(c *class) (regex.Node, error) {
	var items []regex.Node
	if c.Head != nil {
		var err error
		items, err = convertTerm(c.Head)
		if err != nil {
			return nil, err
		}
	}

	if len(c.Ops) > 0 {
		var left regex.Node = &regex.ClassUnion{Items: items}
		for _, op := range c.Ops {
			right, err := convertTerm(op.Term)
			if err != nil {
				return nil, err
			}
			left = &regex.ClassOperation{
				Op:    classOps[op.Op],
				Left:  left,
				Right: &regex.ClassUnion{Items: right},
			}
		}
		items = []regex.Node{left}
	}

	if c.Open == "[^" {
		return &regex.ClassComplement{Items: items}, nil
	}
	return &regex.ClassUnion{Items: items}, nil
}

func convertTerm(t *classTerm) ([]regex.Node, error) {
	res := make([]regex.Node, 0, len(t.Items))
	for _, it := range t.Items {
		n, err := convertItem(it)
		if err != nil {
			return nil, err
		}
		res = append(res, n)
	}
	return res, nil
}

func convertItem(it *classItem) (regex.Node, error) {
	switch {
	case it.Class != nil:
		return convertClass(it.Class)
	case it.Property != nil:
		return convertProperty(*it.Property), nil
	case it.Predefined != nil:
		return convertPredefined(it.Pos, *it.Predefined)
	}

	lo, err := decodeChar(*it.Lo)
	if err != nil {
		return nil, newSyntaxError(it.Pos, "%v", err)
	}
	if it.Hi == nil {
		return &regex.Literal{Char: lo}, nil
	}
	hi, err := decodeChar(*it.Hi)
	if err != nil {
		return nil, newSyntaxError(it.Pos, "%v", err)
	}
	if lo > hi {
		return nil, newSyntaxError(it.Pos, "illegal range %s-%s", strconv.QuoteRune(lo), strconv.QuoteRune(hi))
	}
	return &regex.PrimitiveClass{Set: charset.FromRange(lo, hi)}, nil
}

// decodeChar decodes a Char or Escape token to its code point.
func decodeChar(tok string) (rune, error) {
	c, rest, err := nextChar(tok)
	if err != nil {
		return 0, err
	}
	if rest != "" {
		return 0, xerrors.Errorf("malformed character %q", tok)
	}
	return c, nil
}

// unquote decodes the body of a string token.
func unquote(tok string) (string, error) {
	s := tok[1 : len(tok)-1]
	var b strings.Builder
	for s != "" {
		c, rest, err := nextChar(s)
		if err != nil {
			return "", err
		}
		b.WriteRune(c)
		s = rest
	}
	return b.String(), nil
}

var simpleEscapes = map[byte]rune{
	'n': '\n',
	't': '\t',
	'r': '\r',
	'f': '\f',
	'b': '\b',
}

// nextChar decodes one possibly escaped character from the front of s.
func nextChar(s string) (rune, string, error) {
	if s[0] != '\\' {
		c, size := utf8.DecodeRuneInString(s)
		return c, s[size:], nil
	}
	if len(s) < 2 {
		return 0, "", xerrors.New("dangling backslash")
	}

	switch s[1] {
	case 'x':
		return hexChar(s, 2, 4)
	case 'u':
		return hexChar(s, 2, 6)
	case 'U':
		end := strings.IndexByte(s, '}')
		if len(s) < 4 || s[2] != '{' || end < 0 {
			return 0, "", xerrors.Errorf("malformed escape %q", s)
		}
		c, _, err := hexChar(s, 3, end)
		return c, s[end+1:], err
	}
	if c, ok := simpleEscapes[s[1]]; ok {
		return c, s[2:], nil
	}
	c, size := utf8.DecodeRuneInString(s[1:])
	return c, s[1+size:], nil
}

// hexChar decodes s[from:to] as a hexadecimal code point.
func hexChar(s string, from, to int) (rune, string, error) {
	if to > len(s) {
		return 0, "", xerrors.Errorf("malformed escape %q", s)
	}
	v, err := strconv.ParseUint(s[from:to], 16, 32)
	if err != nil {
		return 0, "", xerrors.Errorf("malformed escape %q: %w", s[:to], err)
	}
	if v > charset.MaxCodePoint {
		return 0, "", xerrors.Errorf("code point %X out of range", v)
	}
	return rune(v), s[to:], nil
}
