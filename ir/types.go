// Package ir implements the structured, deduplicated intermediate
// representation built from (and emitted back to) a flat spirv.Stream
// (spec.md §3 "IR (structured)", §4.3–§4.5).
package ir

import (
	"github.com/gogpu/spv/spirv"
	"github.com/gogpu/spv/ssa"
)

// TypeInner is the sum of SPIR-V type shapes (spec.md §3 "Type term").
// Every variant is a marker type implementing typeInner(); this mirrors the
// teacher's TypeInner/typeInner() convention, generalized from a shader
// value-type algebra to SPIR-V's own.
type TypeInner interface {
	typeInner()
}

// VoidType is OpTypeVoid.
type VoidType struct{}

func (VoidType) typeInner() {}

// BoolType is OpTypeBool.
type BoolType struct{}

func (BoolType) typeInner() {}

// IntType is OpTypeInt.
type IntType struct {
	Width  uint32
	Signed bool
}

func (IntType) typeInner() {}

// FloatType is OpTypeFloat.
type FloatType struct {
	Width uint32
}

func (FloatType) typeInner() {}

// VectorType is OpTypeVector. Element is the component type's id.
type VectorType struct {
	Element ssa.ID
	Count   uint32
}

func (VectorType) typeInner() {}

// MatrixType is OpTypeMatrix. Column is the column vector type's id.
type MatrixType struct {
	Column      ssa.ID
	ColumnCount uint32
}

func (MatrixType) typeInner() {}

// ArrayType is OpTypeArray (Length > 0) or OpTypeRuntimeArray (Length == 0,
// since a runtime array has no length-defining constant id).
type ArrayType struct {
	Element ssa.ID
	Length  ssa.ID
}

func (ArrayType) typeInner() {}

// StructType is OpTypeStruct. Members holds member type ids in declared
// order; per-member decorations live in Module.MemberDecorations, not here,
// since a decoration attaches to (struct id, member index), not to the
// member's type.
type StructType struct {
	Members []ssa.ID
}

func (StructType) typeInner() {}

// PointerType is OpTypePointer.
type PointerType struct {
	StorageClass spirv.StorageClass
	Pointee      ssa.ID
}

func (PointerType) typeInner() {}

// ImageType is OpTypeImage.
type ImageType struct {
	SampledType ssa.ID
	Dim         uint32
	Depth       uint32
	Arrayed     uint32
	MS          uint32
	Sampled     uint32
	Format      spirv.ImageFormat
}

func (ImageType) typeInner() {}

// SamplerType is OpTypeSampler.
type SamplerType struct{}

func (SamplerType) typeInner() {}

// SampledImageType is OpTypeSampledImage.
type SampledImageType struct {
	Image ssa.ID
}

func (SampledImageType) typeInner() {}

// OpaqueType is OpTypeOpaque.
type OpaqueType struct {
	Name string
}

func (OpaqueType) typeInner() {}

// FunctionType is OpTypeFunction.
type FunctionType struct {
	Return ssa.ID
	Params []ssa.ID
}

func (FunctionType) typeInner() {}

// typesEqual reports whether two type terms are structurally equal,
// resolving any nested id references through resolve (spec.md §3: "Two
// types are structurally equal iff all fields, including transitively, are
// equal"). resolve is typically Module.Types.Get.
func typesEqual(a, b TypeInner, resolve func(ssa.ID) (TypeInner, bool)) bool {
	switch av := a.(type) {
	case VoidType:
		_, ok := b.(VoidType)
		return ok
	case BoolType:
		_, ok := b.(BoolType)
		return ok
	case IntType:
		bv, ok := b.(IntType)
		return ok && av == bv
	case FloatType:
		bv, ok := b.(FloatType)
		return ok && av == bv
	case VectorType:
		bv, ok := b.(VectorType)
		return ok && av.Count == bv.Count && idTypesEqual(av.Element, bv.Element, resolve)
	case MatrixType:
		bv, ok := b.(MatrixType)
		return ok && av.ColumnCount == bv.ColumnCount && idTypesEqual(av.Column, bv.Column, resolve)
	case ArrayType:
		bv, ok := b.(ArrayType)
		return ok && av.Length == bv.Length && idTypesEqual(av.Element, bv.Element, resolve)
	case StructType:
		bv, ok := b.(StructType)
		if !ok || len(av.Members) != len(bv.Members) {
			return false
		}
		for i := range av.Members {
			if !idTypesEqual(av.Members[i], bv.Members[i], resolve) {
				return false
			}
		}
		return true
	case PointerType:
		bv, ok := b.(PointerType)
		return ok && av.StorageClass == bv.StorageClass && idTypesEqual(av.Pointee, bv.Pointee, resolve)
	case ImageType:
		bv, ok := b.(ImageType)
		return ok && av.Dim == bv.Dim && av.Depth == bv.Depth && av.Arrayed == bv.Arrayed &&
			av.MS == bv.MS && av.Sampled == bv.Sampled && av.Format == bv.Format &&
			idTypesEqual(av.SampledType, bv.SampledType, resolve)
	case SamplerType:
		_, ok := b.(SamplerType)
		return ok
	case SampledImageType:
		bv, ok := b.(SampledImageType)
		return ok && idTypesEqual(av.Image, bv.Image, resolve)
	case OpaqueType:
		bv, ok := b.(OpaqueType)
		return ok && av.Name == bv.Name
	case FunctionType:
		bv, ok := b.(FunctionType)
		if !ok || len(av.Params) != len(bv.Params) {
			return false
		}
		if !idTypesEqual(av.Return, bv.Return, resolve) {
			return false
		}
		for i := range av.Params {
			if !idTypesEqual(av.Params[i], bv.Params[i], resolve) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func idTypesEqual(a, b ssa.ID, resolve func(ssa.ID) (TypeInner, bool)) bool {
	if a == b {
		return true
	}
	ta, ok1 := resolve(a)
	tb, ok2 := resolve(b)
	if !ok1 || !ok2 {
		return false
	}
	return typesEqual(ta, tb, resolve)
}

// TypeTable deduplicates type terms by structural identity as they are
// registered (spec.md §4.3, §3: "The IR deduplicates types by structural
// identity when materializing; when loading, the existing id assignment is
// preserved"). Grounded on the teacher's ir/registry.go TypeRegistry
// (scalar/vector deduplication by value equality), generalized to the full
// recursive type algebra here.
type TypeTable struct {
	byID *ssa.OrderedMap[TypeInner]
}

// NewTypeTable creates an empty table.
func NewTypeTable() *TypeTable {
	return &TypeTable{byID: ssa.NewOrderedMap[TypeInner]()}
}

// Get resolves id to its type term.
func (t *TypeTable) Get(id ssa.ID) (TypeInner, bool) {
	return t.byID.Get(id)
}

// Observe registers id → inner as loaded from a flat module, without
// deduplication: the existing id assignment from the binary is always
// preserved on load (spec.md §3).
func (t *TypeTable) Observe(id ssa.ID, inner TypeInner) {
	t.byID.Set(id, inner)
}

// Intern returns the id of an existing structurally-equal type if one is
// already registered, otherwise registers inner under a freshly allocated
// id and returns that. Used when a front end or pass materializes a new
// type programmatically (spec.md §6 "IR ingestion for the front end").
func (t *TypeTable) Intern(inner TypeInner, alloc *ssa.Allocator) ssa.ID {
	resolve := t.Get
	for _, id := range t.byID.Keys() {
		existing, _ := t.byID.Get(id)
		if typesEqual(existing, inner, resolve) {
			return id
		}
	}
	id := alloc.Fresh()
	t.byID.Set(id, inner)
	return id
}

// Keys returns registered type ids in insertion order.
func (t *TypeTable) Keys() []ssa.ID {
	return t.byID.Keys()
}

// Len returns the number of registered types.
func (t *TypeTable) Len() int {
	return t.byID.Len()
}
