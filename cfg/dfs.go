package cfg

import "github.com/gogpu/spv/ssa"

// EdgeKind classifies one edge relative to a DFS spanning tree
// (spec.md §4.8).
type EdgeKind uint8

const (
	TreeEdge EdgeKind = iota
	RetreatingEdge
	ForwardEdge
	CrossEdge
)

func (k EdgeKind) String() string {
	switch k {
	case TreeEdge:
		return "tree"
	case RetreatingEdge:
		return "retreating"
	case ForwardEdge:
		return "forward"
	case CrossEdge:
		return "cross"
	default:
		return "unknown"
	}
}

// Edge identifies a directed edge by its endpoints.
type Edge struct {
	From, To ssa.ID
}

// DFSResult holds the discovery/finish times from a spanning DFS and the
// classification of every edge relative to that spanning tree
// (spec.md §4.8).
type DFSResult struct {
	Entry      ssa.ID
	Discovery  map[ssa.ID]int
	Finish     map[ssa.ID]int
	EdgeKinds  map[Edge]EdgeKind
	PostOrder  []ssa.ID // vertices in ascending finish-time order
}

// ReversePostOrder returns vertices sorted by descending finish time — the
// traversal order the structural reducer's worklist is seeded with
// (spec.md §4.9).
func (r *DFSResult) ReversePostOrder() []ssa.ID {
	out := make([]ssa.ID, len(r.PostOrder))
	for i, v := range r.PostOrder {
		out[len(r.PostOrder)-1-i] = v
	}
	return out
}

// SpanningDFS performs a recursive DFS from entry, recording discovery and
// finish times and classifying every edge as tree/retreating/forward/cross
// (spec.md §4.8). Vertices unreachable from entry are not visited and
// carry no discovery/finish time.
func SpanningDFS(g *Graph, entry ssa.ID) *DFSResult {
	r := &DFSResult{
		Entry:     entry,
		Discovery: make(map[ssa.ID]int),
		Finish:    make(map[ssa.ID]int),
		EdgeKinds: make(map[Edge]EdgeKind),
	}
	clock := 0
	var visit func(u ssa.ID)
	visiting := ssa.NewSet()
	visit = func(u ssa.ID) {
		clock++
		r.Discovery[u] = clock
		visiting.Add(u)
		for _, v := range g.Succ[u] {
			edge := Edge{From: u, To: v}
			if _, seen := r.Discovery[v]; !seen {
				r.EdgeKinds[edge] = TreeEdge
				visit(v)
				continue
			}
			switch {
			case visiting.Contains(v):
				r.EdgeKinds[edge] = RetreatingEdge
			case r.Discovery[v] > r.Discovery[u]:
				r.EdgeKinds[edge] = ForwardEdge
			default:
				r.EdgeKinds[edge] = CrossEdge
			}
		}
		clock++
		r.Finish[u] = clock
		visiting.Remove(u)
		r.PostOrder = append(r.PostOrder, u)
	}
	visit(entry)
	return r
}

// BackEdges returns the subset of retreating edges whose target dominates
// their source (spec.md §4.8: "A back-edge is a retreating edge whose
// target dominates its source").
func BackEdges(dfs *DFSResult, dom *Dominators) []Edge {
	var out []Edge
	for edge, kind := range dfs.EdgeKinds {
		if kind != RetreatingEdge {
			continue
		}
		if dom.Dominates(edge.To, edge.From) {
			out = append(out, edge)
		}
	}
	return out
}

// IsReducible reports whether g is reducible: true iff removing its
// back-edges leaves an acyclic graph, which (per spec.md §4.8) holds
// exactly when the set of back-edges equals the set of retreating edges.
func IsReducible(dfs *DFSResult, dom *Dominators) bool {
	backEdges := make(map[Edge]bool)
	for _, e := range BackEdges(dfs, dom) {
		backEdges[e] = true
	}
	for edge, kind := range dfs.EdgeKinds {
		if kind == RetreatingEdge && !backEdges[edge] {
			return false
		}
	}
	return true
}
