package spirv

import "testing"

func TestLookupKnownOpcode(t *testing.T) {
	info := Lookup(OpTypeVoid)
	if !info.HasResult || info.HasResultType {
		t.Fatalf("OpTypeVoid grammar wrong: %+v", info)
	}
	if !Known(OpTypeVoid) {
		t.Fatal("OpTypeVoid should be a known opcode")
	}
}

func TestLookupFallsBackForUnknownOpcode(t *testing.T) {
	const madeUp Op = 0xfffe
	info := Lookup(madeUp)
	if Known(madeUp) {
		t.Fatal("made-up opcode should not be known")
	}
	if info.HasResult || info.HasResultType {
		t.Fatalf("fallback grammar should carry no result slots: %+v", info)
	}
	if len(info.Operands) != 1 || info.Operands[0].Quantifier != Variadic {
		t.Fatalf("fallback grammar should be a single variadic literal operand: %+v", info.Operands)
	}
}

func TestLookupExtInstGLSL(t *testing.T) {
	info, ok := LookupExtInst("GLSL.std.450", GLSLstd450Sqrt)
	if !ok {
		t.Fatal("expected GLSL.std.450 Sqrt to be known")
	}
	if info.Name != "Sqrt" {
		t.Fatalf("expected name Sqrt, got %q", info.Name)
	}
	if _, ok := LookupExtInst("Unknown.Set", 1); ok {
		t.Fatal("unknown ext inst set should not resolve")
	}
}

func TestOperandKindString(t *testing.T) {
	cases := map[OperandKind]string{
		KindID:             "id",
		KindLiteralInteger: "literal-integer",
		KindLiteralString:  "literal-string",
		KindEnum:           "enum",
	}
	for kind, want := range cases {
		if got := kind.String(); got != want {
			t.Errorf("OperandKind(%d).String() = %q, want %q", kind, got, want)
		}
	}
}
