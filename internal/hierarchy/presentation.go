package hierarchy

// Predicate decides whether an ancestor is the account a node is presented
// under.
type Predicate func(t *Tree, id string) bool

// DefaultPredicate accepts a non-root ancestor that is a header or has
// children.
func DefaultPredicate(t *Tree, id string) bool {
	if t.IsRoot(id) {
		return false
	}
	if a, ok := t.accounts[id]; ok && a.IsHeader {
		return true
	}
	return len(t.children[id]) > 0
}

// Presentation returns the first ancestor of id, starting at the immediate
// parent, that satisfies pred. The account itself is returned when no
// ancestor qualifies. The walk never considers id itself.
func Presentation(t *Tree, id string, pred Predicate) string {
	if pred == nil {
		pred = DefaultPredicate
	}
	for _, a := range t.Ancestors(id) {
		if pred(t, a) {
			return a
		}
	}
	return id
}

// PresentationMap resolves the presentation account of every leaf.
func PresentationMap(t *Tree, pred Predicate) map[string]string {
	out := make(map[string]string)
	for id := range t.accounts {
		if len(t.children[id]) > 0 {
			continue
		}
		out[id] = Presentation(t, id, pred)
	}
	return out
}
