package structural

import (
	"testing"

	"github.com/gogpu/spv/cfg"
	"github.com/gogpu/spv/ssa"
)

func graphFromEdges(vertices []ssa.ID, edges [][2]ssa.ID) *cfg.Graph {
	g := cfg.NewGraph(vertices)
	for _, e := range edges {
		g.AddEdge(e[0], e[1])
	}
	return g
}

// TestIfThenElseScenario reproduces spec.md §8.2: {1->2, 1->3, 2->4, 3->4}.
// Expected root: IfThenElse with children blocks 1,2,3,4 in that order.
func TestIfThenElseScenario(t *testing.T) {
	g := graphFromEdges([]ssa.ID{1, 2, 3, 4}, [][2]ssa.ID{{1, 2}, {1, 3}, {2, 4}, {3, 4}})
	tree, err := Reduce(g, Options{})
	if err != nil {
		t.Fatalf("Reduce: %v", err)
	}
	if tree.Kind != KindIfThenElse {
		t.Fatalf("expected root kind IfThenElse, got %v", tree.Kind)
	}
	want := []ssa.ID{1, 2, 3, 4}
	if len(tree.Children) != len(want) {
		t.Fatalf("expected %d children, got %d (%v)", len(want), len(tree.Children), tree.Children)
	}
	for i, c := range tree.Children {
		if c.Vertex != want[i] {
			t.Errorf("child %d: expected vertex %%%d, got %%%d", i, want[i], c.Vertex)
		}
		if c.Kind != KindBlock {
			t.Errorf("child %d: expected Block, got %v", i, c.Kind)
		}
	}
	if IsStructured(tree) != true {
		t.Error("expected an if-then-else tree to be structured")
	}
}

// TestWhileLoopScenario reproduces spec.md §8.3: {1->2, 2->3, 3->2, 2->4}.
// Expected: root Block[1, WhileLoop(cond=2, body=3), 4].
func TestWhileLoopScenario(t *testing.T) {
	g := graphFromEdges([]ssa.ID{1, 2, 3, 4}, [][2]ssa.ID{{1, 2}, {2, 3}, {3, 2}, {2, 4}})
	tree, err := Reduce(g, Options{})
	if err != nil {
		t.Fatalf("Reduce: %v", err)
	}
	if tree.Kind != KindBlock {
		t.Fatalf("expected root kind Block, got %v", tree.Kind)
	}
	if len(tree.Children) != 3 {
		t.Fatalf("expected 3 children, got %d (%v)", len(tree.Children), tree.Children)
	}
	if tree.Children[0].Vertex != 1 || tree.Children[0].Kind != KindBlock {
		t.Errorf("expected first child Block(1), got %v", tree.Children[0])
	}
	loop := tree.Children[1]
	if loop.Kind != KindWhileLoop {
		t.Fatalf("expected second child WhileLoop, got %v", loop.Kind)
	}
	if loop.Vertex != 2 || len(loop.Children) != 2 || loop.Children[0].Vertex != 2 || loop.Children[1].Vertex != 3 {
		t.Errorf("expected WhileLoop(cond=2, body=3), got vertex %%%d children %v", loop.Vertex, loop.Children)
	}
	if tree.Children[2].Vertex != 4 || tree.Children[2].Kind != KindBlock {
		t.Errorf("expected third child Block(4), got %v", tree.Children[2])
	}
	if !IsStructured(tree) {
		t.Error("expected a while-loop tree (no Proper/Improper/SelfLoop) to be structured")
	}
}

// TestIrreducibleScenario reproduces spec.md §8.4: {1->2, 1->3, 2->3, 3->2}.
// is_reducible is false, and structural analysis yields an Improper region
// containing {2,3}.
func TestIrreducibleScenario(t *testing.T) {
	g := graphFromEdges([]ssa.ID{1, 2, 3}, [][2]ssa.ID{{1, 2}, {1, 3}, {2, 3}, {3, 2}})

	dom, err := cfg.ComputeDominators(g)
	if err != nil {
		t.Fatalf("ComputeDominators: %v", err)
	}
	dfs := cfg.SpanningDFS(g, dom.Entry)
	if cfg.IsReducible(dfs, dom) {
		t.Fatal("expected this CFG to be irreducible")
	}

	tree, err := Reduce(g, Options{})
	if err != nil {
		t.Fatalf("Reduce: %v", err)
	}

	var improper *ControlTree
	tree.Walk(func(n *ControlTree) {
		if n.Kind == KindImproper {
			improper = n
		}
	})
	if improper == nil {
		t.Fatal("expected an Improper region in the control tree")
	}
	leaves := improper.Leaves()
	if len(leaves) != 2 {
		t.Fatalf("expected the Improper region to contain exactly 2 leaves, got %v", leaves)
	}
	has2, has3 := false, false
	for _, l := range leaves {
		if l == 2 {
			has2 = true
		}
		if l == 3 {
			has3 = true
		}
	}
	if !has2 || !has3 {
		t.Errorf("expected Improper region to contain {2,3}, got %v", leaves)
	}
	if IsStructured(tree) {
		t.Error("expected an irreducible tree containing an Improper region to be unstructured")
	}
}

func TestReduceLeavesCoverEveryVertex(t *testing.T) {
	g := graphFromEdges([]ssa.ID{1, 2, 3, 4, 5}, [][2]ssa.ID{
		{1, 2}, {1, 3}, {2, 4}, {3, 4}, {4, 5},
	})
	tree, err := Reduce(g, Options{})
	if err != nil {
		t.Fatalf("Reduce: %v", err)
	}
	leaves := tree.Leaves()
	if len(leaves) != len(g.Order) {
		t.Fatalf("expected %d leaves (one per vertex), got %d: %v", len(g.Order), len(leaves), leaves)
	}
	seen := map[ssa.ID]bool{}
	for _, l := range leaves {
		seen[l] = true
	}
	for _, v := range g.Order {
		if !seen[v] {
			t.Errorf("vertex %%%d missing from control tree leaves", v)
		}
	}
}

// TestProperRegionScenario exercises the acyclic Proper fallback pattern
// (spec.md §4.9's table, last row), which none of the other scenarios reach:
// {1->2, 1->3, 2->4, 3->5, 4->6, 5->6}. Vertex 1 diverges into two chains of
// different lengths (2->4 and 3->5) that only reconverge at the immediate
// post-dominator 6, so IfThenElse/Case (which require both arms sharing a
// common immediate successor) never match; the region strictly between 1
// and 6 — {1,2,3,4,5} — only matches Proper. This also exercises
// matchProper's dependency on ComputeDominators' immediate-dominator
// selection (via postDominators), which spec.md §8.5 and
// cfg/dominators_test.go cover directly at the cfg layer.
func TestProperRegionScenario(t *testing.T) {
	g := graphFromEdges([]ssa.ID{1, 2, 3, 4, 5, 6}, [][2]ssa.ID{
		{1, 2}, {1, 3}, {2, 4}, {3, 5}, {4, 6}, {5, 6},
	})
	tree, err := Reduce(g, Options{})
	if err != nil {
		t.Fatalf("Reduce: %v", err)
	}
	if tree.Kind != KindBlock {
		t.Fatalf("expected root kind Block, got %v", tree.Kind)
	}
	if len(tree.Children) != 2 {
		t.Fatalf("expected 2 children, got %d (%v)", len(tree.Children), tree.Children)
	}
	proper := tree.Children[0]
	if proper.Kind != KindProper {
		t.Fatalf("expected first child Proper, got %v", proper.Kind)
	}
	if proper.Vertex != 1 {
		t.Errorf("expected Proper region rooted at %%1, got %%%d", proper.Vertex)
	}
	leaves := proper.Leaves()
	wantLeaves := map[ssa.ID]bool{1: true, 2: true, 3: true, 4: true, 5: true}
	if len(leaves) != len(wantLeaves) {
		t.Fatalf("expected Proper region to contain {1,2,3,4,5}, got %v", leaves)
	}
	for _, l := range leaves {
		if !wantLeaves[l] {
			t.Errorf("unexpected leaf %%%d in Proper region", l)
		}
	}
	if tree.Children[1].Vertex != 6 || tree.Children[1].Kind != KindBlock {
		t.Errorf("expected second child Block(6), got %v", tree.Children[1])
	}
	if IsStructured(tree) {
		t.Error("expected a tree containing a Proper region to be unstructured")
	}
}

// TestTerminationDisabledByDefault checks spec.md §9's feature-flag
// resolution directly: a vertex with two single-predecessor sinks matches
// Termination only when Options.EnableTermination is set; otherwise it
// falls through to a later pattern in priority order.
func TestTerminationDisabledByDefault(t *testing.T) {
	g := graphFromEdges([]ssa.ID{1, 2, 3}, [][2]ssa.ID{{1, 2}, {1, 3}})
	w := newWorkGraph(g)
	dom, err := cfg.ComputeDominators(g)
	if err != nil {
		t.Fatalf("ComputeDominators: %v", err)
	}

	_, kind, matched := tryPatterns(w, 1, dom.Entry, Options{})
	if !matched {
		t.Fatal("expected some pattern to match with Termination disabled")
	}
	if kind == KindTermination {
		t.Fatal("Termination must not match when Options.EnableTermination is false")
	}

	_, kind, matched = tryPatterns(w, 1, dom.Entry, Options{EnableTermination: true})
	if !matched || kind != KindTermination {
		t.Fatalf("expected Termination to match when enabled, got kind=%v matched=%v", kind, matched)
	}
}
