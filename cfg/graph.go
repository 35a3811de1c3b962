// Package cfg builds control-flow graphs from function bodies and computes
// the classical graph analyses the structural reducer depends on:
// dominators, spanning DFS with edge classification, back-edges,
// reducibility, and strongly connected components (spec.md §4.6–§4.8).
//
// No naga equivalent exists for this package — naga's own IR is a
// structured statement tree, never a graph — so it is written from first
// principles in the teacher's idiom: small structs, plain slices, and
// `map[ssa.ID][]ssa.ID` adjacency rather than a generics-heavy graph
// library.
package cfg

import (
	"fmt"

	"github.com/gogpu/spv/ir"
	"github.com/gogpu/spv/spirv"
	"github.com/gogpu/spv/ssa"
)

// Graph is a directed control-flow graph: one vertex per basic block,
// edges derived from each block's terminator (spec.md §4.6).
type Graph struct {
	// Order lists vertices in the function's declaration order; Order[0]
	// is the function's entry block when the graph was built by Build.
	Order []ssa.ID
	Succ  map[ssa.ID][]ssa.ID
	Pred  map[ssa.ID][]ssa.ID
}

// NewGraph creates an empty graph over the given vertex order, with no
// edges. Exported so tests (and the structural package) can construct
// graphs directly from an edge list, matching spec.md §8's scenario
// fixtures, without needing an ir.Function.
func NewGraph(order []ssa.ID) *Graph {
	g := &Graph{Order: append([]ssa.ID(nil), order...), Succ: make(map[ssa.ID][]ssa.ID), Pred: make(map[ssa.ID][]ssa.ID)}
	for _, v := range order {
		g.Succ[v] = nil
		g.Pred[v] = nil
	}
	return g
}

// AddEdge adds a directed edge u → v. Both endpoints must already be
// vertices of g (added via NewGraph's order).
func (g *Graph) AddEdge(u, v ssa.ID) {
	g.Succ[u] = append(g.Succ[u], v)
	g.Pred[v] = append(g.Pred[v], u)
}

// Vertices returns every vertex, in Order.
func (g *Graph) Vertices() []ssa.ID {
	return g.Order
}

// UnreachableRegionError is spec.md §7's `UnreducibleRegion(detail)`,
// reused here for CFG-construction failures that leave the graph
// malformed for downstream analysis (a terminator referencing a block id
// absent from the function).
type UnreachableRegionError struct {
	Detail string
}

func (e *UnreachableRegionError) Error() string {
	return fmt.Sprintf("cfg: %s", e.Detail)
}

// Build constructs the CFG for a function definition by inspecting each
// block's terminator (spec.md §4.6):
//   - unconditional branch: one edge to the target block.
//   - conditional branch: two edges (true-target, false-target).
//   - switch: an edge to the default target and one edge per case target.
//   - return / return-value / unreachable / kill: no outgoing edges.
func Build(fn *ir.Function) (*Graph, error) {
	order := fn.BlockOrder()
	g := NewGraph(order)

	for _, id := range order {
		blk, ok := fn.Blocks.Get(id)
		if !ok || len(blk.Instructions) == 0 {
			return nil, &UnreachableRegionError{Detail: fmt.Sprintf("block %%%d has no terminator", id)}
		}
		term := blk.Instructions[len(blk.Instructions)-1]
		switch term.Op {
		case spirv.OpBranch:
			target := ssa.ID(term.Operands[0])
			if err := g.addCheckedEdge(id, target); err != nil {
				return nil, err
			}
		case spirv.OpBranchConditional:
			if len(term.Operands) < 3 {
				return nil, &UnreachableRegionError{Detail: fmt.Sprintf("block %%%d has malformed OpBranchConditional", id)}
			}
			trueTarget := ssa.ID(term.Operands[1])
			falseTarget := ssa.ID(term.Operands[2])
			if err := g.addCheckedEdge(id, trueTarget); err != nil {
				return nil, err
			}
			if err := g.addCheckedEdge(id, falseTarget); err != nil {
				return nil, err
			}
		case spirv.OpSwitch:
			if len(term.Operands) < 2 {
				return nil, &UnreachableRegionError{Detail: fmt.Sprintf("block %%%d has malformed OpSwitch", id)}
			}
			def := ssa.ID(term.Operands[1])
			if err := g.addCheckedEdge(id, def); err != nil {
				return nil, err
			}
			// Case pairs are (literal, target); this build assumes a
			// single-word literal per case (a 32-bit selector), which
			// covers the overwhelmingly common case without tracking the
			// selector's declared integer width through the type table.
			for i := 2; i+1 < len(term.Operands); i += 2 {
				target := ssa.ID(term.Operands[i+1])
				if err := g.addCheckedEdge(id, target); err != nil {
					return nil, err
				}
			}
		case spirv.OpReturn, spirv.OpReturnValue, spirv.OpUnreachable, spirv.OpKill:
			// no outgoing edges
		default:
			return nil, &UnreachableRegionError{Detail: fmt.Sprintf("block %%%d does not end with a terminator", id)}
		}
	}
	return g, nil
}

func (g *Graph) addCheckedEdge(u, v ssa.ID) error {
	if _, ok := g.Succ[v]; !ok {
		return &UnreachableRegionError{Detail: fmt.Sprintf("edge %%%d -> %%%d targets a block outside the function", u, v)}
	}
	g.AddEdge(u, v)
	return nil
}
