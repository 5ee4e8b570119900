package regex

import (
	"fmt"
	"strings"
)

// ErrorKind classifies normalization failures.
type ErrorKind int

const (
	// UndefinedMacro: a macro reference names no definition.
	UndefinedMacro ErrorKind = iota + 1
	// DefinitionCycle: a macro refers to itself, directly or indirectly.
	DefinitionCycle
	// NotCharacterClass: a class item did not reduce to a primitive class.
	NotCharacterClass
	// UnsupportedOperator: a class operation carries an unknown operator.
	UnsupportedOperator
	// UnknownPredefinedClass: a predefined class tag has no definition.
	UnknownPredefinedClass
	// UnknownProperty: a Unicode property (or its whole fallback chain)
	// is missing from the provider.
	UnknownProperty
	// UnexpectedNode: a pass met a node kind that an earlier pass should
	// have removed.
	UnexpectedNode
)

func (k ErrorKind) String() string {
	switch k {
	case UndefinedMacro:
		return "undefined macro"
	case DefinitionCycle:
		return "macro definition cycle"
	case NotCharacterClass:
		return "not a character class"
	case UnsupportedOperator:
		return "unsupported class operator"
	case UnknownPredefinedClass:
		return "unknown predefined class"
	case UnknownProperty:
		return "unknown Unicode property"
	case UnexpectedNode:
		return "unexpected node"
	}
	return fmt.Sprintf("error kind %d", int(k))
}

// Error is returned by the passes of this package. Node is the offending
// node. Name holds the macro or property name when there is one, and Path
// the chain of macros for a definition cycle.
type Error struct {
	Kind ErrorKind
	Node Node
	Name string
	Path []string
}

// Sentinels for errors.Is. They match any *Error of the same kind.
var (
	ErrUndefinedMacro         = &Error{Kind: UndefinedMacro}
	ErrDefinitionCycle        = &Error{Kind: DefinitionCycle}
	ErrNotCharacterClass      = &Error{Kind: NotCharacterClass}
	ErrUnsupportedOperator    = &Error{Kind: UnsupportedOperator}
	ErrUnknownPredefinedClass = &Error{Kind: UnknownPredefinedClass}
	ErrUnknownProperty        = &Error{Kind: UnknownProperty}
	ErrUnexpectedNode         = &Error{Kind: UnexpectedNode}
)

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	switch {
	case len(e.Path) > 0:
		b.WriteString(": ")
		b.WriteString(strings.Join(e.Path, " -> "))
	case e.Name != "":
		fmt.Fprintf(&b, " %q", e.Name)
	}
	if e.Node != nil {
		fmt.Fprintf(&b, " in %s", e.Node)
	}
	return b.String()
}

// Is matches sentinel errors by kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func newError(kind ErrorKind, n Node) *Error {
	return &Error{Kind: kind, Node: n}
}
