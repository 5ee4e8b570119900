package regex

// Macros maps macro names to their definitions. It is filled once while
// reading the rule file and only read afterwards, so concurrent lookups
// are safe once definition is over.
type Macros struct {
	defs  map[string]Node
	order []string
}

// NewMacros returns an empty macro table.
func NewMacros() *Macros {
	return &Macros{defs: make(map[string]Node)}
}

// Define binds name to def. It reports whether an earlier definition was
// replaced.
func (m *Macros) Define(name string, def Node) bool {
	_, replaced := m.defs[name]
	if !replaced {
		m.order = append(m.order, name)
	}
	m.defs[name] = def
	return replaced
}

// Lookup returns the definition of name.
func (m *Macros) Lookup(name string) (Node, bool) {
	def, ok := m.defs[name]
	return def, ok
}

// Names returns the macro names in definition order.
func (m *Macros) Names() []string {
	return append([]string(nil), m.order...)
}

// Len returns the number of defined macros.
func (m *Macros) Len() int {
	return len(m.order)
}

// Unused returns, in definition order, the macros not reachable from any
// of the given rule expressions.
func (m *Macros) Unused(rules []Node) []string {
	used := make(map[string]bool)
	var visit func(Node)
	visit = func(root Node) {
		Walk(root, func(n Node) bool {
			ref, ok := n.(*MacroRef)
			if !ok || used[ref.Name] {
				return true
			}
			used[ref.Name] = true
			if def, ok := m.defs[ref.Name]; ok {
				visit(def)
			}
			return true
		})
	}
	for _, r := range rules {
		visit(r)
	}

	var res []string
	for _, name := range m.order {
		if !used[name] {
			res = append(res, name)
		}
	}
	return res
}
