package ir

import (
	"fmt"

	"github.com/gogpu/spv/spirv"
	"github.com/gogpu/spv/ssa"
)

// InvariantViolationError is spec.md §7's `InvariantViolation(detail)`.
type InvariantViolationError struct {
	Detail string
}

func (e *InvariantViolationError) Error() string {
	return fmt.Sprintf("ir: invariant violation: %s", e.Detail)
}

// builder holds the mutable cursor state for a single Build pass
// (spec.md §4.4).
type builder struct {
	module  *Module
	current *Function
	block   *Block

	pendingSource strSourceState
}

// strSourceState accumulates OpSource + OpSourceContinued fragments
// (SUPPLEMENTED FEATURES in SPEC_FULL.md).
type strSourceState struct {
	active bool
}

// Build constructs a Module from a decoded flat word stream, in a single
// pass dispatched by grammar class (spec.md §4.4).
func Build(s spirv.Stream) (*Module, error) {
	m := NewModule()
	m.Meta = Meta{Version: s.Header.Version, GeneratorID: s.Header.GeneratorID, Schema: s.Schema}

	b := &builder{module: m}
	for _, ins := range s.Instructions {
		if err := b.dispatch(ins); err != nil {
			return nil, err
		}
		if ins.Result.Valid() {
			if _, exists := m.Results.Get(ins.Result); !exists {
				m.Results.Set(ins.Result, ins)
			}
			if ins.Result > m.MaxID {
				m.MaxID = ins.Result
			}
		}
		if ins.ResultType.Valid() && ins.ResultType > m.MaxID {
			m.MaxID = ins.ResultType
		}
	}
	if b.current != nil {
		return nil, &InvariantViolationError{Detail: "function body missing OpFunctionEnd"}
	}
	return m, nil
}

func (b *builder) dispatch(ins spirv.Instruction) error {
	// Inside an open function, every instruction other than the ones that
	// manage the cursor itself is appended to the current block
	// (spec.md §4.4: "Every subsequent non-label instruction appends to
	// the currently open block").
	if b.current != nil {
		switch ins.Op {
		case spirv.OpFunctionEnd:
			b.module.Functions.Set(b.current.ID, b.current)
			b.current = nil
			b.block = nil
			return nil
		case spirv.OpLabel:
			blk := &Block{ID: ins.Result}
			b.current.Blocks.Set(ins.Result, blk)
			b.current.order = append(b.current.order, ins.Result)
			b.block = blk
			return nil
		case spirv.OpFunctionParameter:
			b.current.Parameters = append(b.current.Parameters, ins.Result)
			return nil
		default:
			if b.block == nil {
				return &InvariantViolationError{Detail: "instruction before function's first label"}
			}
			b.block.Instructions = append(b.block.Instructions, ins)
			return nil
		}
	}

	info := spirv.Lookup(ins.Op)
	switch info.Class {
	case spirv.ClassModeSetting:
		return b.dispatchModeSetting(ins)
	case spirv.ClassExtension:
		return b.dispatchExtension(ins)
	case spirv.ClassDebug:
		return b.dispatchDebug(ins)
	case spirv.ClassAnnotation:
		return b.dispatchAnnotation(ins)
	case spirv.ClassTypeDeclaration:
		return b.dispatchType(ins)
	case spirv.ClassConstantCreation:
		b.module.Constants.Set(ins.Result, ins)
		b.module.Globals.Set(ins.Result, ins)
		return nil
	case spirv.ClassMemory:
		return b.dispatchMemory(ins)
	case spirv.ClassFunction:
		if ins.Op == spirv.OpFunction {
			return b.beginFunction(ins)
		}
		// OpFunctionCall, OpFunctionParameter, OpFunctionEnd outside a
		// function body are not well-formed SPIR-V; tolerated as unknown
		// per spec.md §7 rather than treated as fatal.
		return nil
	default:
		// Unmodeled opcodes (including any extension-instruction opcode
		// not covered above) are tolerated and simply not indexed further,
		// per spec.md §7 ("tolerates and records extension-instruction ...
		// instructions it doesn't fully model").
		return nil
	}
}

func (b *builder) dispatchModeSetting(ins spirv.Instruction) error {
	m := b.module
	switch ins.Op {
	case spirv.OpCapability:
		m.Capabilities.Add(ssa.ID(ins.Operands[0]))
	case spirv.OpMemoryModel:
		m.AddressingModel = spirv.AddressingModel(ins.Operands[0])
		m.MemoryModel = spirv.MemoryModel(ins.Operands[1])
	case spirv.OpEntryPoint:
		model := spirv.ExecutionModel(ins.Operands[0])
		fn := ssa.ID(ins.Operands[1])
		name, consumed := decodeLiteralStringOperand(ins.Operands, 2)
		var iface []ssa.ID
		for _, w := range ins.Operands[2+consumed:] {
			iface = append(iface, ssa.ID(w))
		}
		ep := &EntryPoint{ID: fn, Name: name, FunctionID: fn, ExecutionModel: model, Interface: iface}
		m.EntryPoints.Set(fn, ep)
	case spirv.OpExecutionMode:
		target := ssa.ID(ins.Operands[0])
		mode := spirv.ExecutionMode(ins.Operands[1])
		var rest []uint32
		if len(ins.Operands) > 2 {
			rest = append([]uint32(nil), ins.Operands[2:]...)
		}
		ep, ok := m.EntryPoints.Get(target)
		if ok {
			ep.Modes = append(ep.Modes, ExecutionMode{Mode: mode, Operands: rest})
		}
	}
	return nil
}

func (b *builder) dispatchExtension(ins spirv.Instruction) error {
	m := b.module
	switch ins.Op {
	case spirv.OpExtension:
		name, _ := decodeLiteralStringOperand(ins.Operands, 0)
		m.Extensions = append(m.Extensions, name)
	case spirv.OpExtInstImport:
		name, _ := decodeLiteralStringOperand(ins.Operands, 0)
		m.ExtInstImports.Set(ins.Result, name)
	}
	return nil
}

func (b *builder) dispatchDebug(ins spirv.Instruction) error {
	m := b.module
	if m.Debug == nil {
		m.Debug = &DebugInfo{
			FileIDs:     ssa.NewOrderedMap[string](),
			Names:       ssa.NewOrderedMap[string](),
			MemberNames: make(map[ssa.ID]map[uint32]string),
			Lines:       make(map[ssa.ID]LineInfo),
		}
	}
	switch ins.Op {
	case spirv.OpSource:
		m.Debug.SourceLanguage = ins.Operands[0]
		m.Debug.SourceVersion = ins.Operands[1]
		if len(ins.Operands) > 2 {
			m.Debug.FileIDs.Set(ssa.ID(ins.Operands[2]), "")
			if len(ins.Operands) > 3 {
				text, _ := decodeLiteralStringOperand(ins.Operands, 3)
				m.Debug.Source = text
			}
		}
		b.pendingSource.active = true
	case spirv.OpSourceContinued:
		if b.pendingSource.active {
			text, _ := decodeLiteralStringOperand(ins.Operands, 0)
			m.Debug.Source += text
		}
	case spirv.OpSourceExtension:
		text, _ := decodeLiteralStringOperand(ins.Operands, 0)
		m.Debug.SourceExtensions = append(m.Debug.SourceExtensions, text)
	case spirv.OpString:
		text, _ := decodeLiteralStringOperand(ins.Operands, 0)
		m.Debug.FileIDs.Set(ins.Result, text)
	case spirv.OpName:
		target := ssa.ID(ins.Operands[0])
		name, _ := decodeLiteralStringOperand(ins.Operands, 1)
		m.Debug.Names.Set(target, name)
	case spirv.OpMemberName:
		target := ssa.ID(ins.Operands[0])
		index := ins.Operands[1]
		name, _ := decodeLiteralStringOperand(ins.Operands, 2)
		if m.Debug.MemberNames[target] == nil {
			m.Debug.MemberNames[target] = make(map[uint32]string)
		}
		m.Debug.MemberNames[target][index] = name
	}
	return nil
}

func (b *builder) dispatchAnnotation(ins spirv.Instruction) error {
	m := b.module
	switch ins.Op {
	case spirv.OpDecorate:
		target := ssa.ID(ins.Operands[0])
		kind := spirv.Decoration(ins.Operands[1])
		args := append([]uint32(nil), ins.Operands[2:]...)
		if m.Decorations[target] == nil {
			m.Decorations[target] = make(DecorationArgs)
		}
		m.Decorations[target][kind] = args
	case spirv.OpMemberDecorate:
		target := ssa.ID(ins.Operands[0])
		member := ins.Operands[1]
		kind := spirv.Decoration(ins.Operands[2])
		args := append([]uint32(nil), ins.Operands[3:]...)
		if m.MemberDecorations[target] == nil {
			m.MemberDecorations[target] = make(map[uint32]DecorationArgs)
		}
		if m.MemberDecorations[target][member] == nil {
			m.MemberDecorations[target][member] = make(DecorationArgs)
		}
		m.MemberDecorations[target][member][kind] = args
	}
	return nil
}

func (b *builder) dispatchType(ins spirv.Instruction) error {
	inner, err := buildTypeInner(ins)
	if err != nil {
		return err
	}
	b.module.Types.Observe(ins.Result, inner)
	b.module.Globals.Set(ins.Result, ins)
	return nil
}

// buildTypeInner interprets one type-declaration instruction into a
// TypeInner term (spec.md §4.3).
func buildTypeInner(ins spirv.Instruction) (TypeInner, error) {
	switch ins.Op {
	case spirv.OpTypeVoid:
		return VoidType{}, nil
	case spirv.OpTypeBool:
		return BoolType{}, nil
	case spirv.OpTypeInt:
		return IntType{Width: ins.Operands[0], Signed: ins.Operands[1] != 0}, nil
	case spirv.OpTypeFloat:
		return FloatType{Width: ins.Operands[0]}, nil
	case spirv.OpTypeVector:
		return VectorType{Element: ssa.ID(ins.Operands[0]), Count: ins.Operands[1]}, nil
	case spirv.OpTypeMatrix:
		return MatrixType{Column: ssa.ID(ins.Operands[0]), ColumnCount: ins.Operands[1]}, nil
	case spirv.OpTypeArray:
		return ArrayType{Element: ssa.ID(ins.Operands[0]), Length: ssa.ID(ins.Operands[1])}, nil
	case spirv.OpTypeRuntimeArray:
		return ArrayType{Element: ssa.ID(ins.Operands[0]), Length: 0}, nil
	case spirv.OpTypeStruct:
		members := make([]ssa.ID, len(ins.Operands))
		for i, w := range ins.Operands {
			members[i] = ssa.ID(w)
		}
		return StructType{Members: members}, nil
	case spirv.OpTypePointer:
		return PointerType{StorageClass: spirv.StorageClass(ins.Operands[0]), Pointee: ssa.ID(ins.Operands[1])}, nil
	case spirv.OpTypeImage:
		img := ImageType{
			SampledType: ssa.ID(ins.Operands[0]),
			Dim:         ins.Operands[1],
			Depth:       ins.Operands[2],
			Arrayed:     ins.Operands[3],
			MS:          ins.Operands[4],
		}
		if len(ins.Operands) > 5 {
			img.Sampled = ins.Operands[5]
		}
		if len(ins.Operands) > 6 {
			img.Format = spirv.ImageFormat(ins.Operands[6])
		}
		return img, nil
	case spirv.OpTypeSampler:
		return SamplerType{}, nil
	case spirv.OpTypeSampledImage:
		return SampledImageType{Image: ssa.ID(ins.Operands[0])}, nil
	case spirv.OpTypeOpaque:
		name, _ := decodeLiteralStringOperand(ins.Operands, 0)
		return OpaqueType{Name: name}, nil
	case spirv.OpTypeFunction:
		params := make([]ssa.ID, 0, len(ins.Operands)-1)
		for _, w := range ins.Operands[1:] {
			params = append(params, ssa.ID(w))
		}
		return FunctionType{Return: ssa.ID(ins.Operands[0]), Params: params}, nil
	default:
		return nil, &InvariantViolationError{Detail: fmt.Sprintf("unrecognized type-declaration opcode %d", ins.Op)}
	}
}

func (b *builder) dispatchMemory(ins spirv.Instruction) error {
	if ins.Op != spirv.OpVariable {
		return nil
	}
	storageClass := spirv.StorageClass(ins.Operands[0])
	if storageClass == spirv.StorageClassFunction {
		// Function-local variables are left embedded in the function body
		// (spec.md §4.4); this path is only reached for a Function-class
		// OpVariable seen at module scope, which is not well-formed SPIR-V,
		// so it is tolerated as a no-op rather than rejected.
		return nil
	}
	var pointee ssa.ID
	if inner, ok := b.module.Types.Get(ins.ResultType); ok {
		if ptr, ok := inner.(PointerType); ok {
			pointee = ptr.Pointee
		}
	}
	gv := &GlobalVariable{
		ID:           ins.Result,
		PointeeType:  pointee,
		StorageClass: storageClass,
		// Decorations are built from the annotation section, which the
		// canonical ordering (spec.md §4.5) always places before the
		// globals section this OpVariable belongs to.
		Decorations: b.module.Decorations[ins.Result],
	}
	if len(ins.Operands) > 1 {
		gv.Initializer = ssa.ID(ins.Operands[1])
	}
	b.module.GlobalVars.Set(ins.Result, gv)
	b.module.Globals.Set(ins.Result, ins)
	return nil
}

func (b *builder) beginFunction(ins spirv.Instruction) error {
	fn := &Function{
		ID:         ins.Result,
		ReturnType: ins.ResultType,
		Control:    spirv.FunctionControl(ins.Operands[0]),
		TypeID:     ssa.ID(ins.Operands[1]),
		Blocks:     ssa.NewOrderedMap[*Block](),
	}
	b.current = fn
	b.block = nil
	return nil
}

// decodeLiteralStringOperand decodes a literal string starting at
// operands[start], returning the string and the number of words consumed
// (mirrors spirv.decodeLiteralString, duplicated here since that helper is
// unexported from the spirv package and ir only needs the read side).
func decodeLiteralStringOperand(operands []uint32, start int) (string, int) {
	var b []byte
	for i := start; i < len(operands); i++ {
		w := operands[i]
		for shift := 0; shift < 32; shift += 8 {
			c := byte(w >> shift)
			if c == 0 {
				return string(b), i - start + 1
			}
			b = append(b, c)
		}
	}
	return string(b), len(operands) - start
}
