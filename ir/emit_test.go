package ir

import (
	"testing"

	"github.com/gogpu/spv/spirv"
)

// TestEmitDecorationsDeterministicOrder guards against emitDecorations
// ranging a decoration-kind map directly: an id decorated with more than one
// kind (e.g. a resource variable carrying both DescriptorSet and Binding)
// must always emit its OpDecorate instructions in the same, numerically
// sorted order, regardless of Go's randomized map iteration.
func TestEmitDecorationsDeterministicOrder(t *testing.T) {
	m, err := Build(minimalShaderStream())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	m.Decorations[1] = DecorationArgs{
		spirv.DecorationDescriptorSet: {0},
		spirv.DecorationBinding:       {1},
	}

	for i := 0; i < 20; i++ {
		stream := Emit(m)
		var kinds []spirv.Decoration
		for _, ins := range stream.Instructions {
			if ins.Op != spirv.OpDecorate || ins.Operands[0] != 1 {
				continue
			}
			kinds = append(kinds, spirv.Decoration(ins.Operands[1]))
		}
		if len(kinds) != 2 {
			t.Fatalf("run %d: expected 2 OpDecorate instructions for id 1, got %v", i, kinds)
		}
		if kinds[0] != spirv.DecorationBinding || kinds[1] != spirv.DecorationDescriptorSet {
			t.Fatalf("run %d: expected [Binding, DescriptorSet] order, got %v", i, kinds)
		}
	}
}

// TestEmitMemberDecorationsDeterministicOrder is the struct-member analogue:
// a single member carrying more than one decoration kind, and a struct with
// more than one decorated member, must both emit in a stable sorted order.
func TestEmitMemberDecorationsDeterministicOrder(t *testing.T) {
	m, err := Build(minimalShaderStream())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	m.MemberDecorations[1] = map[uint32]DecorationArgs{
		1: {spirv.DecorationOffset: {16}, spirv.DecorationColMajor: nil},
		0: {spirv.DecorationOffset: {0}},
	}

	for i := 0; i < 20; i++ {
		stream := Emit(m)
		var members []uint32
		var kindsForMember1 []spirv.Decoration
		for _, ins := range stream.Instructions {
			if ins.Op != spirv.OpMemberDecorate || ins.Operands[0] != 1 {
				continue
			}
			member := ins.Operands[1]
			members = append(members, member)
			if member == 1 {
				kindsForMember1 = append(kindsForMember1, spirv.Decoration(ins.Operands[2]))
			}
		}
		if len(members) != 3 {
			t.Fatalf("run %d: expected 3 OpMemberDecorate instructions, got %v", i, members)
		}
		if members[0] != 0 || members[1] != 1 || members[2] != 1 {
			t.Fatalf("run %d: expected member order [0, 1, 1], got %v", i, members)
		}
		if len(kindsForMember1) != 2 || kindsForMember1[0] != spirv.DecorationColMajor || kindsForMember1[1] != spirv.DecorationOffset {
			t.Fatalf("run %d: expected member 1 kind order [ColMajor, Offset], got %v", i, kindsForMember1)
		}
	}
}
