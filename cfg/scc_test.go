package cfg

import (
	"testing"

	"github.com/gogpu/spv/ssa"
)

func TestStronglyConnectedComponentsGroupsCycle(t *testing.T) {
	g := graphFromEdges([]ssa.ID{1, 2, 3, 4}, [][2]ssa.ID{{1, 2}, {2, 3}, {3, 2}, {2, 4}})
	components := StronglyConnectedComponents(g)

	cycle := ComponentOf(components, 2)
	if cycle == nil {
		t.Fatal("expected vertex 2 to be in some component")
	}
	if len(cycle) != 2 {
		t.Fatalf("expected {2,3} to form one 2-vertex SCC, got %v", cycle)
	}
	has2, has3 := false, false
	for _, v := range cycle {
		if v == 2 {
			has2 = true
		}
		if v == 3 {
			has3 = true
		}
	}
	if !has2 || !has3 {
		t.Fatalf("expected {2,3} in one component, got %v", cycle)
	}

	singleton := ComponentOf(components, 1)
	if len(singleton) != 1 {
		t.Fatalf("expected vertex 1 to form a singleton SCC, got %v", singleton)
	}
}

func TestStronglyConnectedComponentsAcyclicGraphAllSingletons(t *testing.T) {
	g := graphFromEdges([]ssa.ID{1, 2, 3}, [][2]ssa.ID{{1, 2}, {2, 3}})
	for _, c := range StronglyConnectedComponents(g) {
		if len(c) != 1 {
			t.Fatalf("expected all singleton components in an acyclic graph, got %v", c)
		}
	}
}
