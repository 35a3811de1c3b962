package structural

import (
	"fmt"

	"github.com/gogpu/spv/cfg"
	"github.com/gogpu/spv/ssa"
)

// Options tunes optional region-matching behavior.
type Options struct {
	// EnableTermination matches the Termination region kind. Disabled by
	// default per spec.md §9: the pattern is attested in only one source
	// variant, so a CFG that would have matched it instead falls through
	// to Proper/Improper.
	EnableTermination bool
}

// UnreducibleRegionError reports that the reducer's worklist emptied before
// the residual graph collapsed to a single vertex (spec.md §7's
// UnreducibleRegion).
type UnreducibleRegionError struct {
	Remaining []ssa.ID
}

func (e *UnreducibleRegionError) Error() string {
	return fmt.Sprintf("structural: could not reduce residual graph with vertices %v", e.Remaining)
}

// workGraph is the mutable graph G' the reducer contracts in place
// (spec.md §4.9).
type workGraph struct {
	order []ssa.ID
	succ  map[ssa.ID][]ssa.ID
	pred  map[ssa.ID][]ssa.ID
}

func newWorkGraph(g *cfg.Graph) *workGraph {
	w := &workGraph{
		order: append([]ssa.ID(nil), g.Order...),
		succ:  make(map[ssa.ID][]ssa.ID, len(g.Order)),
		pred:  make(map[ssa.ID][]ssa.ID, len(g.Order)),
	}
	for _, v := range g.Order {
		w.succ[v] = append([]ssa.ID(nil), g.Succ[v]...)
		w.pred[v] = append([]ssa.ID(nil), g.Pred[v]...)
	}
	return w
}

func (w *workGraph) has(v ssa.ID) bool {
	_, ok := w.succ[v]
	return ok
}

func (w *workGraph) removeVertex(v ssa.ID) {
	delete(w.succ, v)
	delete(w.pred, v)
	for i, u := range w.order {
		if u == v {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
}

// asGraph snapshots w's current adjacency as a *cfg.Graph, letting the
// reducer reuse cfg's dominator/DFS/SCC algorithms on each contraction step.
func (w *workGraph) asGraph(entry ssa.ID) *cfg.Graph {
	_ = entry
	g := cfg.NewGraph(append([]ssa.ID(nil), w.order...))
	for _, u := range w.order {
		for _, s := range w.succ[u] {
			g.AddEdge(u, s)
		}
	}
	return g
}

// contract merges members into target: external edges are re-homed onto
// target, internal edges among members are dropped (except a target
// self-edge when keepSelfLoop is set, for the SelfLoop region), and every
// other vertex's adjacency is rewritten to replace member references with
// target (spec.md §4.9: "re-home any back-edges and retreating edges from
// contracted vertices onto v").
func (w *workGraph) contract(members []ssa.ID, target ssa.ID, keepSelfLoop bool) {
	memberSet := make(map[ssa.ID]bool, len(members))
	for _, m := range members {
		memberSet[m] = true
	}

	var succList, predList []ssa.ID
	for _, m := range members {
		for _, s := range w.succ[m] {
			if memberSet[s] {
				if s == target && keepSelfLoop {
					succList = appendUnique(succList, s)
				}
				continue
			}
			succList = appendUnique(succList, s)
		}
		for _, p := range w.pred[m] {
			if memberSet[p] {
				if p == target && keepSelfLoop {
					predList = appendUnique(predList, p)
				}
				continue
			}
			predList = appendUnique(predList, p)
		}
	}

	for _, m := range members {
		if m != target {
			w.removeVertex(m)
		}
	}

	for _, u := range w.order {
		if u == target {
			continue
		}
		w.succ[u] = rehome(w.succ[u], memberSet, target)
		w.pred[u] = rehome(w.pred[u], memberSet, target)
	}

	w.succ[target] = succList
	w.pred[target] = predList
}

func appendUnique(s []ssa.ID, v ssa.ID) []ssa.ID {
	if containsID(s, v) {
		return s
	}
	return append(s, v)
}

func rehome(ids []ssa.ID, memberSet map[ssa.ID]bool, target ssa.ID) []ssa.ID {
	out := make([]ssa.ID, 0, len(ids))
	for _, id := range ids {
		r := id
		if memberSet[id] {
			r = target
		}
		if !containsID(out, r) {
			out = append(out, r)
		}
	}
	return out
}

// Reduce contracts g's CFG into a single control tree by iterated region
// matching (spec.md §4.9). The worklist is seeded with g's reverse
// post-order; each matched region's children are ordered the way its
// pattern constructs them (the header first, then branches/body in
// out-edge order, folding in a shared merge block where the pattern has
// one) — this already reproduces reverse post-order for every region shape
// except Improper, which gets an explicit fresh traversal (see
// matchImproper).
func Reduce(g *cfg.Graph, opts Options) (*ControlTree, error) {
	if len(g.Order) == 0 {
		return nil, fmt.Errorf("structural: cannot reduce an empty graph")
	}

	dom, err := cfg.ComputeDominators(g)
	if err != nil {
		return nil, err
	}
	entry := dom.Entry
	rpo := cfg.SpanningDFS(g, entry).ReversePostOrder()

	w := newWorkGraph(g)
	trees := make(map[ssa.ID]*ControlTree, len(g.Order))
	for _, v := range g.Order {
		trees[v] = Block(v)
	}

	worklist := append([]ssa.ID(nil), rpo...)

	for len(worklist) > 0 {
		v := worklist[0]
		worklist = worklist[1:]
		if !w.has(v) {
			continue
		}

		members, kind, matched := tryPatterns(w, v, entry, opts)
		if !matched {
			continue
		}

		children := make([]*ControlTree, 0, len(members))
		for _, m := range members {
			children = append(children, trees[m])
		}

		w.contract(members, v, kind == KindSelfLoop)
		for _, m := range members {
			if m != v {
				delete(trees, m)
			}
		}
		trees[v] = Region(v, kind, children)

		if len(w.order) == 1 {
			return trees[v], nil
		}
		worklist = append([]ssa.ID{v}, worklist...)
	}

	if len(w.order) == 1 {
		return trees[w.order[0]], nil
	}
	return nil, &UnreducibleRegionError{Remaining: append([]ssa.ID(nil), w.order...)}
}

func tryPatterns(w *workGraph, v, entry ssa.ID, opts Options) ([]ssa.ID, Kind, bool) {
	if members, ok := matchBlock(w, v); ok {
		return members, KindBlock, true
	}
	if members, ok := matchIfThen(w, v); ok {
		return members, KindIfThen, true
	}
	if members, ok := matchIfThenElse(w, v); ok {
		return members, KindIfThenElse, true
	}
	if members, ok := matchCase(w, v); ok {
		return members, KindCase, true
	}
	if opts.EnableTermination {
		if members, ok := matchTermination(w, v); ok {
			return members, KindTermination, true
		}
	}
	if members, ok := matchSelfLoop(w, v); ok {
		return members, KindSelfLoop, true
	}
	if members, ok := matchWhileLoop(w, v); ok {
		return members, KindWhileLoop, true
	}
	if members, ok := matchNaturalLoop(w, v, entry); ok {
		return members, KindNaturalLoop, true
	}
	if members, ok := matchImproper(w, v, entry); ok {
		return members, KindImproper, true
	}
	if members, ok := matchProper(w, v); ok {
		return members, KindProper, true
	}
	return nil, 0, false
}
