package regex

import (
	"strings"
)

// Print renders n as an indented tree, one node per line, each line
// prefixed with tab and two more spaces per level.
func Print(n Node, tab string) string {
	var b strings.Builder
	printNode(&b, n, tab)
	return b.String()
}

func printNode(b *strings.Builder, n Node, tab string) {
	b.WriteString(tab)
	if n == nil {
		b.WriteString("<nil>\n")
		return
	}
	b.WriteString(n.Kind().String())

	switch n := n.(type) {
	case *Literal, *LiteralCaseless, *LiteralString, *LiteralStringCaseless,
		*PrimitiveClass, *PredefinedClass, *PropertyClass, *MacroRef:
		b.WriteByte(' ')
		b.WriteString(n.String())
	case *ClassOperation:
		b.WriteByte(' ')
		b.WriteString(n.Op.String())
	}
	b.WriteByte('\n')

	for _, c := range Children(n) {
		printNode(b, c, tab+"  ")
	}
}
