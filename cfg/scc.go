package cfg

import "github.com/gogpu/spv/ssa"

// sccState is Tarjan's bookkeeping for one run of StronglyConnectedComponents.
type sccState struct {
	graph    *Graph
	index    map[ssa.ID]int
	lowlink  map[ssa.ID]int
	onStack  map[ssa.ID]bool
	stack    []ssa.ID
	next     int
	result   [][]ssa.ID
}

// StronglyConnectedComponents computes the graph's SCCs via Tarjan's
// algorithm, returned in reverse topological order of the condensation
// (each component as a slice of vertices). This is a supplemented
// feature: spec.md §2 item 9 names SCCs as part of "Control-Flow
// Analysis" but only narrates dominators and DFS edge classification in
// prose; the structural reducer's NaturalLoop/Improper patterns need SCC
// membership to decide "every entry into the cycle's SCC is via v", so it
// is exposed here as a first-class API.
func StronglyConnectedComponents(g *Graph) [][]ssa.ID {
	s := &sccState{
		graph:   g,
		index:   make(map[ssa.ID]int),
		lowlink: make(map[ssa.ID]int),
		onStack: make(map[ssa.ID]bool),
	}
	for _, v := range g.Order {
		if _, seen := s.index[v]; !seen {
			s.strongConnect(v)
		}
	}
	return s.result
}

func (s *sccState) strongConnect(v ssa.ID) {
	s.index[v] = s.next
	s.lowlink[v] = s.next
	s.next++
	s.stack = append(s.stack, v)
	s.onStack[v] = true

	for _, w := range s.graph.Succ[v] {
		if _, seen := s.index[w]; !seen {
			s.strongConnect(w)
			if s.lowlink[w] < s.lowlink[v] {
				s.lowlink[v] = s.lowlink[w]
			}
		} else if s.onStack[w] {
			if s.index[w] < s.lowlink[v] {
				s.lowlink[v] = s.index[w]
			}
		}
	}

	if s.lowlink[v] == s.index[v] {
		var component []ssa.ID
		for {
			n := len(s.stack) - 1
			w := s.stack[n]
			s.stack = s.stack[:n]
			s.onStack[w] = false
			component = append(component, w)
			if w == v {
				break
			}
		}
		s.result = append(s.result, component)
	}
}

// ComponentOf returns the SCC (as computed by StronglyConnectedComponents)
// containing v, or nil if v is absent from components (shouldn't happen
// for any vertex of g).
func ComponentOf(components [][]ssa.ID, v ssa.ID) []ssa.ID {
	for _, c := range components {
		for _, id := range c {
			if id == v {
				return c
			}
		}
	}
	return nil
}
