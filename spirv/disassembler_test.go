package spirv

import (
	"strings"
	"testing"

	"github.com/gogpu/spv/ssa"
)

func TestDisassembleRendersResultAndOperands(t *testing.T) {
	s := Stream{
		Header: Header{Version: Version{1, 6}, GeneratorID: 0, Bound: 3},
		Instructions: []Instruction{
			{Op: OpCapability, Operands: []uint32{uint32(CapabilityShader)}},
			{Op: OpTypeVoid, Result: ssa.ID(1)},
			{Op: OpTypeFunction, Result: ssa.ID(2), Operands: []uint32{1}},
		},
	}
	text := Disassemble(s)
	if !strings.Contains(text, "OpCapability Shader") {
		t.Fatalf("expected symbolic capability name, got:\n%s", text)
	}
	if !strings.Contains(text, "%1 = OpTypeVoid") {
		t.Fatalf("expected result-id prefixed OpTypeVoid, got:\n%s", text)
	}
	if !strings.Contains(text, "%2 = OpTypeFunction %1") {
		t.Fatalf("expected OpTypeFunction with id operand, got:\n%s", text)
	}
}

func TestAssembleDisassembleRoundTrip(t *testing.T) {
	original := Stream{
		Header: Header{Version: Version{1, 6}, GeneratorID: 0, Bound: 6},
		Schema: 0,
		Instructions: []Instruction{
			{Op: OpCapability, Operands: []uint32{uint32(CapabilityShader)}},
			{Op: OpMemoryModel, Operands: []uint32{uint32(AddressingModelLogical), uint32(MemoryModelGLSL450)}},
			{Op: OpTypeVoid, Result: ssa.ID(1)},
			{Op: OpTypeFunction, Result: ssa.ID(2), Operands: []uint32{1}},
			{Op: OpName, Operands: append([]uint32{2}, encodeLiteralString("main")...)},
			{Op: OpFunction, ResultType: ssa.ID(1), Result: ssa.ID(3), Operands: []uint32{uint32(FunctionControlNone), 2}},
			{Op: OpLabel, Result: ssa.ID(4)},
			{Op: OpReturn},
			{Op: OpFunctionEnd},
		},
	}

	text := Disassemble(original)
	reassembled, err := Assemble(text)
	if err != nil {
		t.Fatalf("assemble: %v\ntext:\n%s", err, text)
	}

	if reassembled.Header.Version != original.Header.Version {
		t.Fatalf("version mismatch after round trip: %+v", reassembled.Header.Version)
	}
	if reassembled.Header.Bound != original.Header.Bound {
		t.Fatalf("bound mismatch after round trip: %d vs %d", reassembled.Header.Bound, original.Header.Bound)
	}
	if len(reassembled.Instructions) != len(original.Instructions) {
		t.Fatalf("instruction count mismatch: %d vs %d", len(reassembled.Instructions), len(original.Instructions))
	}
	for i := range original.Instructions {
		want := original.Instructions[i]
		got := reassembled.Instructions[i]
		if got.Op != want.Op || got.Result != want.Result || got.ResultType != want.ResultType {
			t.Fatalf("instruction %d mismatch: got %+v want %+v", i, got, want)
		}
		if len(got.Operands) != len(want.Operands) {
			t.Fatalf("instruction %d operand count mismatch: got %v want %v", i, got.Operands, want.Operands)
		}
		for j := range want.Operands {
			if got.Operands[j] != want.Operands[j] {
				t.Fatalf("instruction %d operand %d mismatch: got %d want %d", i, j, got.Operands[j], want.Operands[j])
			}
		}
	}
}

func TestAssembleUnknownMnemonicErrors(t *testing.T) {
	if _, err := Assemble("OpTotallyMadeUp %1"); err == nil {
		t.Fatal("expected error for unknown mnemonic")
	}
}

func TestEnumNameFallsBackToNumeric(t *testing.T) {
	if got := enumName("Capability", 99999); got != "99999" {
		t.Fatalf("expected numeric fallback, got %q", got)
	}
}
