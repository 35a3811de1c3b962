package cfg

import (
	"testing"

	"github.com/gogpu/spv/ir"
	"github.com/gogpu/spv/spirv"
	"github.com/gogpu/spv/ssa"
)

// branchingFunctionStream builds a minimal function whose body is an
// if-then-else shape: block 10 branches conditionally to 11 and 12, both
// of which branch unconditionally to 13, which returns.
func branchingFunctionStream() spirv.Stream {
	return spirv.Stream{
		Header: spirv.Header{Version: spirv.Version{1, 6}, Bound: 14},
		Instructions: []spirv.Instruction{
			{Op: spirv.OpTypeVoid, Result: 1},
			{Op: spirv.OpTypeBool, Result: 2},
			{Op: spirv.OpTypeFunction, Result: 3, Operands: []uint32{1}},
			{Op: spirv.OpConstantTrue, ResultType: 2, Result: 4},
			{Op: spirv.OpFunction, ResultType: 1, Result: 5, Operands: []uint32{uint32(spirv.FunctionControlNone), 3}},
			{Op: spirv.OpLabel, Result: 10},
			{Op: spirv.OpBranchConditional, Operands: []uint32{4, 11, 12}},
			{Op: spirv.OpLabel, Result: 11},
			{Op: spirv.OpBranch, Operands: []uint32{13}},
			{Op: spirv.OpLabel, Result: 12},
			{Op: spirv.OpBranch, Operands: []uint32{13}},
			{Op: spirv.OpLabel, Result: 13},
			{Op: spirv.OpReturn},
			{Op: spirv.OpFunctionEnd},
		},
	}
}

func TestBuildFromFunctionMatchesTerminators(t *testing.T) {
	m, err := ir.Build(branchingFunctionStream())
	if err != nil {
		t.Fatalf("ir.Build: %v", err)
	}
	fn, ok := m.Functions.Get(5)
	if !ok {
		t.Fatal("expected function id 5")
	}
	g, err := Build(fn)
	if err != nil {
		t.Fatalf("cfg.Build: %v", err)
	}

	expectSucc := map[ssa.ID][]ssa.ID{
		10: {11, 12},
		11: {13},
		12: {13},
		13: nil,
	}
	for v, want := range expectSucc {
		got := g.Succ[v]
		if len(got) != len(want) {
			t.Fatalf("vertex %%%d: expected %d successors, got %v", v, len(want), got)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("vertex %%%d: successor %d mismatch: got %%%d want %%%d", v, i, got[i], want[i])
			}
		}
	}
	if g.Order[0] != 10 {
		t.Fatalf("expected entry block 10 first, got %v", g.Order)
	}
}
