package spirv

import (
	"testing"

	"github.com/gogpu/spv/ssa"
)

func TestInstructionClass(t *testing.T) {
	ins := Instruction{Op: OpBranch, Operands: []uint32{5}}
	if ins.Class() != ClassControlFlow {
		t.Fatalf("expected ClassControlFlow, got %v", ins.Class())
	}
}

func TestInstructionWordCountMatchesEncodedLength(t *testing.T) {
	ins := Instruction{Op: OpLoad, ResultType: ssa.ID(1), Result: ssa.ID(2), Operands: []uint32{9}}
	if got, want := ins.WordCount(), len(ins.Words()); got != want {
		t.Fatalf("WordCount() = %d, len(Words()) = %d", got, want)
	}
}

func TestDecodeInstructionRoundTripsOperands(t *testing.T) {
	original := Instruction{Op: OpIAdd, ResultType: ssa.ID(1), Result: ssa.ID(4), Operands: []uint32{2, 3}}
	words := original.Words()
	decoded, consumed, err := decodeInstruction(words, 0)
	if err != nil {
		t.Fatalf("decodeInstruction: %v", err)
	}
	if consumed != len(words) {
		t.Fatalf("consumed %d, want %d", consumed, len(words))
	}
	if decoded.Op != original.Op || decoded.Result != original.Result || decoded.ResultType != original.ResultType {
		t.Fatalf("decoded mismatch: %+v vs %+v", decoded, original)
	}
}
