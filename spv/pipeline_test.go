package spv

import (
	"testing"

	"github.com/gogpu/spv/ir"
	"github.com/gogpu/spv/spirv"
	"github.com/gogpu/spv/structural"
)

// branchingModuleStream is an if-then-else shaped function: block 10
// branches conditionally to 11 and 12, both of which branch to the merge
// block 13, which returns.
func branchingModuleStream() spirv.Stream {
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

func TestDecodeEncodeRoundTrip(t *testing.T) {
	original := branchingModuleStream()
	data := Encode(original)

	decoded, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(decoded.Instructions) != len(original.Instructions) {
		t.Fatalf("expected %d instructions, got %d", len(original.Instructions), len(decoded.Instructions))
	}
}

func TestAssembleDisassembleRoundTrip(t *testing.T) {
	s := branchingModuleStream()
	text := Disassemble(s)
	if text == "" {
		t.Fatal("expected non-empty disassembly")
	}

	reassembled, err := Assemble(text)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if len(reassembled.Instructions) != len(s.Instructions) {
		t.Fatalf("expected %d instructions after reassembly, got %d", len(s.Instructions), len(reassembled.Instructions))
	}
}

func TestBuildIREmitRoundTrip(t *testing.T) {
	s := branchingModuleStream()
	m, err := BuildIR(s)
	if err != nil {
		t.Fatalf("BuildIR: %v", err)
	}
	if errs := ValidateIR(m); len(errs) != 0 {
		t.Fatalf("expected a well-formed module, got violations: %v", errs)
	}

	re := EmitIR(m)
	if len(re.Instructions) == 0 {
		t.Fatal("expected EmitIR to produce instructions")
	}

	m2, err := ir.Build(re)
	if err != nil {
		t.Fatalf("re-Build of emitted stream: %v", err)
	}
	if m2.Functions.Len() != m.Functions.Len() {
		t.Fatalf("expected %d functions after round trip, got %d", m.Functions.Len(), m2.Functions.Len())
	}
}

func TestAnalyzeIfThenElse(t *testing.T) {
	m, err := BuildIR(branchingModuleStream())
	if err != nil {
		t.Fatalf("BuildIR: %v", err)
	}

	results, err := Analyze(m, structural.Options{})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 function analyzed, got %d", len(results))
	}

	fa := results[0]
	if fa.ControlTree.Kind != structural.KindIfThenElse {
		t.Fatalf("expected root region IfThenElse, got %v", fa.ControlTree.Kind)
	}
	if !structural.IsStructured(fa.ControlTree) {
		t.Error("expected this if-then-else function to be structured")
	}

	structuredOK, err := IsStructuredGraph(fa.Graph)
	if err != nil {
		t.Fatalf("IsStructuredGraph: %v", err)
	}
	if !structuredOK {
		t.Error("expected IsStructuredGraph to agree the graph is structured")
	}
}
