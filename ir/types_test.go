package ir

import (
	"testing"

	"github.com/gogpu/spv/ssa"
)

func TestTypeTableInternDeduplicates(t *testing.T) {
	table := NewTypeTable()
	alloc := ssa.NewAllocator(0)

	a := table.Intern(IntType{Width: 32, Signed: true}, alloc)
	b := table.Intern(IntType{Width: 32, Signed: true}, alloc)
	if a != b {
		t.Fatalf("expected identical structural types to dedupe to the same id, got %d and %d", a, b)
	}
	c := table.Intern(IntType{Width: 32, Signed: false}, alloc)
	if c == a {
		t.Fatal("expected differently-signed int types to get distinct ids")
	}
	if table.Len() != 2 {
		t.Fatalf("expected 2 distinct types registered, got %d", table.Len())
	}
}

func TestTypeTableInternResolvesNestedIDs(t *testing.T) {
	table := NewTypeTable()
	alloc := ssa.NewAllocator(0)

	elem := table.Intern(FloatType{Width: 32}, alloc)
	v1 := table.Intern(VectorType{Element: elem, Count: 4}, alloc)
	v2 := table.Intern(VectorType{Element: elem, Count: 4}, alloc)
	if v1 != v2 {
		t.Fatalf("expected structurally-equal vector types to dedupe, got %d and %d", v1, v2)
	}
	v3 := table.Intern(VectorType{Element: elem, Count: 3}, alloc)
	if v3 == v1 {
		t.Fatal("expected vectors of different count to get distinct ids")
	}
}

func TestTypeTableObservePreservesLoadedID(t *testing.T) {
	table := NewTypeTable()
	table.Observe(7, BoolType{})
	inner, ok := table.Get(7)
	if !ok {
		t.Fatal("expected id 7 to resolve")
	}
	if _, ok := inner.(BoolType); !ok {
		t.Fatalf("expected BoolType, got %T", inner)
	}
}
