package ir

import (
	"github.com/gogpu/spv/spirv"
	"github.com/gogpu/spv/ssa"
)

// DecorationArgs maps a decoration kind to its argument words (spec.md §3
// "decorations": id → (decoration-kind → argument tuple)).
type DecorationArgs map[spirv.Decoration][]uint32

// EntryPoint is spec.md's `entry_points` value shape.
type EntryPoint struct {
	ID             ssa.ID
	Name           string
	FunctionID     ssa.ID
	ExecutionModel spirv.ExecutionModel
	Modes          []ExecutionMode
	Interface      []ssa.ID
}

// ExecutionMode pairs a mode enum with its literal operands.
type ExecutionMode struct {
	Mode     spirv.ExecutionMode
	Operands []uint32
}

// GlobalVariable is a module-scope OpVariable (storage class other than
// Function; spec.md §4.4 "Memory OpVariable with non-Function storage
// class becomes a global variable").
type GlobalVariable struct {
	ID           ssa.ID
	PointeeType  ssa.ID
	StorageClass spirv.StorageClass
	Initializer  ssa.ID // 0 if absent
	Decorations  DecorationArgs
}

// Block is one basic block: a label id plus the instructions between it
// and the next label (exclusive of the label itself).
type Block struct {
	ID           ssa.ID
	Instructions []spirv.Instruction
}

// Function is a function definition: header fields plus its blocks in
// insertion (declaration) order (spec.md §3 `function_defs`).
type Function struct {
	ID         ssa.ID
	TypeID     ssa.ID
	Control    spirv.FunctionControl
	ReturnType ssa.ID
	Parameters []ssa.ID
	Blocks     *ssa.OrderedMap[*Block]
	// order mirrors Blocks.Keys() but is kept directly so emission
	// doesn't need to re-derive it; populated identically by Build.
	order []ssa.ID
}

// BlockOrder returns block ids in declaration order.
func (f *Function) BlockOrder() []ssa.ID {
	if f.order != nil {
		return f.order
	}
	return f.Blocks.Keys()
}

// LineInfo is one OpLine record (debug source position).
type LineInfo struct {
	File   ssa.ID
	Line   uint32
	Column uint32
}

// DebugInfo collects the optional debug record (spec.md §3 `debug`).
type DebugInfo struct {
	SourceLanguage uint32
	SourceVersion  uint32
	// Source is the concatenation of OpSource's inline source text (if any)
	// with every OpSourceContinued fragment that followed it, in order
	// (SUPPLEMENTED FEATURES: spec.md names OpSource but not its
	// continuation opcode).
	Source       string
	FileIDs      *ssa.OrderedMap[string]
	Names        *ssa.OrderedMap[string]
	MemberNames  map[ssa.ID]map[uint32]string
	Lines        map[ssa.ID]LineInfo
	SourceExtensions []string
}

// Meta carries the codec header fields a Module was built from, so Emit can
// reproduce them (spec.md §3 `meta`).
type Meta struct {
	Version     spirv.Version
	GeneratorID uint32
	Schema      uint32
}

// Module is the structured IR: deduplicated projections of a flat
// instruction stream (spec.md §3 "IR (structured)").
type Module struct {
	Meta Meta

	Capabilities    *ssa.Set
	Extensions      []string
	ExtInstImports  *ssa.OrderedMap[string]
	AddressingModel spirv.AddressingModel
	MemoryModel     spirv.MemoryModel

	EntryPoints *ssa.OrderedMap[*EntryPoint]

	Decorations       map[ssa.ID]DecorationArgs
	MemberDecorations map[ssa.ID]map[uint32]DecorationArgs

	Types     *TypeTable
	Constants *ssa.OrderedMap[spirv.Instruction]

	// Globals holds every top-level id-defining instruction (types,
	// constants, global variables) in the order required for emission
	// (spec.md §3 `globals`).
	Globals *ssa.OrderedMap[spirv.Instruction]

	GlobalVars *ssa.OrderedMap[*GlobalVariable]
	Functions  *ssa.OrderedMap[*Function]

	// Results shortcuts lookup of the defining instruction for any
	// result-bearing id (spec.md §3 `results`).
	Results *ssa.OrderedMap[spirv.Instruction]

	Debug *DebugInfo

	MaxID ssa.ID
}

// NewModule creates an empty Module with every container initialized.
func NewModule() *Module {
	return &Module{
		Capabilities:      ssa.NewSet(),
		ExtInstImports:    ssa.NewOrderedMap[string](),
		EntryPoints:       ssa.NewOrderedMap[*EntryPoint](),
		Decorations:       make(map[ssa.ID]DecorationArgs),
		MemberDecorations: make(map[ssa.ID]map[uint32]DecorationArgs),
		Types:             NewTypeTable(),
		Constants:         ssa.NewOrderedMap[spirv.Instruction](),
		Globals:           ssa.NewOrderedMap[spirv.Instruction](),
		GlobalVars:        ssa.NewOrderedMap[*GlobalVariable](),
		Functions:         ssa.NewOrderedMap[*Function](),
		Results:           ssa.NewOrderedMap[spirv.Instruction](),
	}
}

// Bound returns the module bound (MaxID + 1), the header convention for
// "every id in this module is strictly less than this value."
func (m *Module) Bound() ssa.ID {
	return m.MaxID + 1
}
