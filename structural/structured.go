package structural

// IsStructured reports whether t contains no Proper, Improper, or SelfLoop
// region (spec.md §4.9's closing sentence and §8's universal property).
func IsStructured(t *ControlTree) bool {
	structured := true
	t.Walk(func(n *ControlTree) {
		switch n.Kind {
		case KindProper, KindImproper, KindSelfLoop:
			structured = false
		}
	})
	return structured
}
