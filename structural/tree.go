// Package structural reduces a control-flow graph to a hierarchical control
// tree by iterated region contraction (spec.md §4.9). No teacher precedent
// exists for this package; it is built from first principles around the
// cfg package's Graph/Dominators/DFS types.
package structural

import "github.com/gogpu/spv/ssa"

// Kind names a control-tree region.
type Kind uint8

const (
	KindBlock Kind = iota
	KindIfThen
	KindIfThenElse
	KindCase
	KindTermination
	KindSelfLoop
	KindWhileLoop
	KindNaturalLoop
	KindImproper
	KindProper
)

func (k Kind) String() string {
	switch k {
	case KindBlock:
		return "Block"
	case KindIfThen:
		return "IfThen"
	case KindIfThenElse:
		return "IfThenElse"
	case KindCase:
		return "Case"
	case KindTermination:
		return "Termination"
	case KindSelfLoop:
		return "SelfLoop"
	case KindWhileLoop:
		return "WhileLoop"
	case KindNaturalLoop:
		return "NaturalLoop"
	case KindImproper:
		return "Improper"
	case KindProper:
		return "Proper"
	default:
		return "Unknown"
	}
}

// ControlTree is a node in the control tree. A leaf has Kind == KindBlock, no
// Children, and names exactly one original vertex; every other node is a
// Region over Children (a Block region also has Kind == KindBlock).
type ControlTree struct {
	Kind     Kind
	Vertex   ssa.ID
	Children []*ControlTree
}

// Block constructs a leaf naming the single original vertex v.
func Block(v ssa.ID) *ControlTree {
	return &ControlTree{Kind: KindBlock, Vertex: v}
}

// Region constructs an interior node rooted at v (the vertex the contracted
// region collapses onto), with children in the reverse-post-order spec.md
// §4.9 mandates.
func Region(v ssa.ID, kind Kind, children []*ControlTree) *ControlTree {
	return &ControlTree{Kind: kind, Vertex: v, Children: children}
}

// Leaves returns every KindBlock leaf in the tree, in left-to-right order.
func (t *ControlTree) Leaves() []ssa.ID {
	if t == nil {
		return nil
	}
	if t.Kind == KindBlock && len(t.Children) == 0 {
		return []ssa.ID{t.Vertex}
	}
	var out []ssa.ID
	for _, c := range t.Children {
		out = append(out, c.Leaves()...)
	}
	return out
}

// Walk visits t and every descendant, pre-order.
func (t *ControlTree) Walk(visit func(*ControlTree)) {
	if t == nil {
		return
	}
	visit(t)
	for _, c := range t.Children {
		c.Walk(visit)
	}
}
