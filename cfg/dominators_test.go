package cfg

import (
	"testing"

	"github.com/gogpu/spv/ssa"
)

// graphFromEdges builds a Graph directly from an edge list, the way the
// spec.md §8 scenarios specify fixtures (vertex ids, not ir.Functions).
func graphFromEdges(vertices []ssa.ID, edges [][2]ssa.ID) *Graph {
	g := NewGraph(vertices)
	for _, e := range edges {
		g.AddEdge(e[0], e[1])
	}
	return g
}

// TestDominatorCorrectnessScenario reproduces spec.md §8.5:
// {1->2, 1->3, 2->4, 3->4, 4->5}.
func TestDominatorCorrectnessScenario(t *testing.T) {
	g := graphFromEdges([]ssa.ID{1, 2, 3, 4, 5}, [][2]ssa.ID{
		{1, 2}, {1, 3}, {2, 4}, {3, 4}, {4, 5},
	})
	dom, err := ComputeDominators(g)
	if err != nil {
		t.Fatalf("ComputeDominators: %v", err)
	}
	want := map[ssa.ID][]ssa.ID{
		1: {1},
		2: {1, 2},
		3: {1, 3},
		4: {1, 4},
		5: {1, 4, 5},
	}
	for v, members := range want {
		for _, m := range members {
			if !dom.Set[v].Contains(m) {
				t.Errorf("expected %%%d ∈ dom(%%%d)", m, v)
			}
		}
		if dom.Set[v].Len() != len(members) {
			t.Errorf("dom(%%%d) has %d members, want %d (%v)", v, dom.Set[v].Len(), len(members), dom.Set[v].Items())
		}
	}

	wantIDom := map[ssa.ID]ssa.ID{2: 1, 3: 1, 4: 1, 5: 4}
	for v, want := range wantIDom {
		if got := dom.IDom[v]; got != want {
			t.Errorf("idom(%%%d) = %%%d, want %%%d", v, got, want)
		}
	}
}

// TestDominatorUniversalProperty checks v ∈ dom(v) and
// dom(v) ⊆ dom(u) ∪ {v} for any u ∈ preds(v), over several small graphs
// (spec.md §8 "Universal properties").
func TestDominatorUniversalProperty(t *testing.T) {
	graphs := []*Graph{
		graphFromEdges([]ssa.ID{1, 2, 3, 4, 5}, [][2]ssa.ID{{1, 2}, {1, 3}, {2, 4}, {3, 4}, {4, 5}}),
		graphFromEdges([]ssa.ID{1, 2, 3, 4}, [][2]ssa.ID{{1, 2}, {2, 3}, {3, 2}, {2, 4}}),
	}
	for gi, g := range graphs {
		dom, err := ComputeDominators(g)
		if err != nil {
			t.Fatalf("graph %d: ComputeDominators: %v", gi, err)
		}
		for _, v := range g.Order {
			if !dom.Set[v].Contains(v) {
				t.Errorf("graph %d: expected %%%d ∈ dom(%%%d)", gi, v, v)
			}
			for _, u := range g.Pred[v] {
				for _, m := range dom.Set[v].Items() {
					if m == v {
						continue
					}
					if !dom.Set[u].Contains(m) {
						t.Errorf("graph %d: dom(%%%d) not ⊆ dom(%%%d) ∪ {%%%d}: %%%d missing", gi, v, u, v, m)
					}
				}
			}
		}
	}
}

func TestComputeDominatorsNoEntry(t *testing.T) {
	g := graphFromEdges([]ssa.ID{1, 2}, [][2]ssa.ID{{1, 2}, {2, 1}})
	if _, err := ComputeDominators(g); err == nil {
		t.Fatal("expected NoEntryError for a cycle with no root")
	} else if _, ok := err.(*NoEntryError); !ok {
		t.Fatalf("expected *NoEntryError, got %T", err)
	}
}

func TestComputeDominatorsMultipleEntries(t *testing.T) {
	g := graphFromEdges([]ssa.ID{1, 2, 3}, [][2]ssa.ID{{1, 3}, {2, 3}})
	if _, err := ComputeDominators(g); err == nil {
		t.Fatal("expected MultipleEntriesError")
	} else if _, ok := err.(*MultipleEntriesError); !ok {
		t.Fatalf("expected *MultipleEntriesError, got %T", err)
	}
}
