package regex

// Walk visits n and its descendants in depth-first pre-order. When fn
// returns false the children of that node are skipped. Macro references
// are not followed.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range Children(n) {
		Walk(c, fn)
	}
}

// Children returns the direct sub-expressions of n.
func Children(n Node) []Node {
	switch n := n.(type) {
	case *Alternation:
		return []Node{n.Left, n.Right}
	case *Concatenation:
		return []Node{n.Left, n.Right}
	case *Star:
		return []Node{n.Child}
	case *Plus:
		return []Node{n.Child}
	case *Optional:
		return []Node{n.Child}
	case *Negation:
		return []Node{n.Child}
	case *Upto:
		return []Node{n.Child}
	case *ClassUnion:
		return n.Items
	case *ClassComplement:
		return n.Items
	case *ClassOperation:
		return []Node{n.Left, n.Right}
	}
	return nil
}

// Contains reports whether any node of the tree rooted at n has one of the
// given kinds.
func Contains(n Node, kinds ...Kind) bool {
	found := false
	Walk(n, func(x Node) bool {
		if found {
			return false
		}
		for _, k := range kinds {
			if x.Kind() == k {
				found = true
				return false
			}
		}
		return true
	})
	return found
}

// CountKinds returns how many nodes of each kind the tree holds.
func CountKinds(n Node) map[Kind]int {
	counts := make(map[Kind]int)
	Walk(n, func(x Node) bool {
		counts[x.Kind()]++
		return true
	})
	return counts
}
