package ir

import (
	"testing"

	"github.com/gogpu/spv/spirv"
)

func TestValidateMinimalShaderIsClean(t *testing.T) {
	m, err := Build(minimalShaderStream())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if errs := Validate(m); len(errs) != 0 {
		t.Fatalf("expected no validation errors, got %v", errs)
	}
}

func TestValidateCatchesMismatchedMaxID(t *testing.T) {
	m, err := Build(minimalShaderStream())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	m.MaxID = 99
	errs := Validate(m)
	if len(errs) == 0 {
		t.Fatal("expected a validation error for mismatched MaxID")
	}
}

func TestValidateCatchesMemberDecorationOnNonStruct(t *testing.T) {
	m, err := Build(minimalShaderStream())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	// id 1 is a Float type in the minimal shader fixture, not a Struct.
	m.MemberDecorations[1] = map[uint32]DecorationArgs{
		0: {spirv.DecorationOffset: nil},
	}
	errs := Validate(m)
	if len(errs) == 0 {
		t.Fatal("expected a validation error for member decoration on non-struct type")
	}
}
