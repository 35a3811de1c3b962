package spirv

// OperandKind classifies one operand slot in an instruction's grammar entry
// (spec.md §4.2).
type OperandKind uint8

const (
	// KindID is a reference to another instruction's result id.
	KindID OperandKind = iota
	// KindLiteralInteger is a raw 32-bit literal word.
	KindLiteralInteger
	// KindLiteralString is a null-terminated, word-packed UTF-8 string.
	KindLiteralString
	// KindEnum is a 32-bit value drawn from one of the named enum tables
	// below (Capability, Decoration, StorageClass, ...).
	KindEnum
)

func (k OperandKind) String() string {
	switch k {
	case KindID:
		return "id"
	case KindLiteralInteger:
		return "literal-integer"
	case KindLiteralString:
		return "literal-string"
	case KindEnum:
		return "enum"
	default:
		return "unknown"
	}
}

// Quantifier is how many times an operand slot may appear (spec.md §4.2).
type Quantifier uint8

const (
	// Required consumes exactly one operand slot.
	Required Quantifier = iota
	// Optional consumes one slot if a word remains, otherwise none.
	Optional
	// Variadic consumes every remaining word as instances of Kind.
	Variadic
)

// OperandSpec describes one grammar slot.
type OperandSpec struct {
	Kind       OperandKind
	Quantifier Quantifier
	// EnumName names the symbolic table to use when Kind == KindEnum,
	// e.g. "Capability", "Decoration", "StorageClass".
	EnumName string
}

// OpClass is the grammar's classification tag for an opcode (spec.md §4.2).
type OpClass uint8

const (
	ClassOther OpClass = iota
	ClassModeSetting
	ClassExtension
	ClassDebug
	ClassAnnotation
	ClassTypeDeclaration
	ClassConstantCreation
	ClassMemory
	ClassFunction
	ClassControlFlow
	ClassExtInst
)

// OpInfo is one grammar table entry: whether the instruction carries a
// result-type id, a result id, and the shape of its remaining operands.
type OpInfo struct {
	HasResultType bool
	HasResult     bool
	Operands      []OperandSpec
	Class         OpClass
}

// grammar maps opcodes to their operand shape. Only opcodes meaningful to
// this module's test scenarios and disassembly are populated explicitly;
// anything absent falls back to rawOpInfo, which treats the instruction as
// an opaque bag of literal words (still round-trippable, never
// interpreted) — see Lookup.
var grammar = map[Op]OpInfo{
	OpNop: {Class: ClassOther},
	OpSource: {Class: ClassDebug, Operands: []OperandSpec{
		{Kind: KindEnum, EnumName: "SourceLanguage"},
		{Kind: KindLiteralInteger},
		{Kind: KindID, Quantifier: Optional},
		{Kind: KindLiteralString, Quantifier: Optional},
	}},
	OpSourceContinued: {Class: ClassDebug, Operands: []OperandSpec{
		{Kind: KindLiteralString},
	}},
	OpSourceExtension: {Class: ClassDebug, Operands: []OperandSpec{{Kind: KindLiteralString}}},
	OpName:            {Class: ClassDebug, Operands: []OperandSpec{{Kind: KindID}, {Kind: KindLiteralString}}},
	OpMemberName: {Class: ClassDebug, Operands: []OperandSpec{
		{Kind: KindID}, {Kind: KindLiteralInteger}, {Kind: KindLiteralString},
	}},
	OpString: {HasResult: true, Class: ClassDebug, Operands: []OperandSpec{{Kind: KindLiteralString}}},
	OpExtension: {Class: ClassExtension, Operands: []OperandSpec{{Kind: KindLiteralString}}},
	OpExtInstImport: {HasResult: true, Class: ClassExtension, Operands: []OperandSpec{{Kind: KindLiteralString}}},
	OpExtInst: {HasResultType: true, HasResult: true, Class: ClassExtInst, Operands: []OperandSpec{
		{Kind: KindID}, {Kind: KindLiteralInteger}, {Kind: KindID, Quantifier: Variadic},
	}},
	OpMemoryModel: {Class: ClassModeSetting, Operands: []OperandSpec{
		{Kind: KindEnum, EnumName: "AddressingModel"}, {Kind: KindEnum, EnumName: "MemoryModel"},
	}},
	OpEntryPoint: {Class: ClassModeSetting, Operands: []OperandSpec{
		{Kind: KindEnum, EnumName: "ExecutionModel"}, {Kind: KindID}, {Kind: KindLiteralString},
		{Kind: KindID, Quantifier: Variadic},
	}},
	OpExecutionMode: {Class: ClassModeSetting, Operands: []OperandSpec{
		{Kind: KindID}, {Kind: KindEnum, EnumName: "ExecutionMode"}, {Kind: KindLiteralInteger, Quantifier: Variadic},
	}},
	OpCapability: {Class: ClassModeSetting, Operands: []OperandSpec{{Kind: KindEnum, EnumName: "Capability"}}},
	OpTypeVoid:   {HasResult: true, Class: ClassTypeDeclaration},
	OpTypeBool:   {HasResult: true, Class: ClassTypeDeclaration},
	OpTypeInt: {HasResult: true, Class: ClassTypeDeclaration, Operands: []OperandSpec{
		{Kind: KindLiteralInteger}, {Kind: KindLiteralInteger},
	}},
	OpTypeFloat: {HasResult: true, Class: ClassTypeDeclaration, Operands: []OperandSpec{{Kind: KindLiteralInteger}}},
	OpTypeVector: {HasResult: true, Class: ClassTypeDeclaration, Operands: []OperandSpec{
		{Kind: KindID}, {Kind: KindLiteralInteger},
	}},
	OpTypeMatrix: {HasResult: true, Class: ClassTypeDeclaration, Operands: []OperandSpec{
		{Kind: KindID}, {Kind: KindLiteralInteger},
	}},
	OpTypeImage: {HasResult: true, Class: ClassTypeDeclaration, Operands: []OperandSpec{
		{Kind: KindID}, {Kind: KindLiteralInteger}, {Kind: KindLiteralInteger}, {Kind: KindLiteralInteger},
		{Kind: KindLiteralInteger}, {Kind: KindLiteralInteger}, {Kind: KindEnum, EnumName: "ImageFormat"},
		{Kind: KindLiteralInteger, Quantifier: Optional},
	}},
	OpTypeSampler:      {HasResult: true, Class: ClassTypeDeclaration},
	OpTypeSampledImage: {HasResult: true, Class: ClassTypeDeclaration, Operands: []OperandSpec{{Kind: KindID}}},
	OpTypeArray: {HasResult: true, Class: ClassTypeDeclaration, Operands: []OperandSpec{
		{Kind: KindID}, {Kind: KindID},
	}},
	OpTypeRuntimeArray: {HasResult: true, Class: ClassTypeDeclaration, Operands: []OperandSpec{{Kind: KindID}}},
	OpTypeStruct:       {HasResult: true, Class: ClassTypeDeclaration, Operands: []OperandSpec{{Kind: KindID, Quantifier: Variadic}}},
	OpTypeOpaque:       {HasResult: true, Class: ClassTypeDeclaration, Operands: []OperandSpec{{Kind: KindLiteralString}}},
	OpTypePointer: {HasResult: true, Class: ClassTypeDeclaration, Operands: []OperandSpec{
		{Kind: KindEnum, EnumName: "StorageClass"}, {Kind: KindID},
	}},
	OpTypeFunction: {HasResult: true, Class: ClassTypeDeclaration, Operands: []OperandSpec{
		{Kind: KindID}, {Kind: KindID, Quantifier: Variadic},
	}},
	OpConstantTrue:  {HasResultType: true, HasResult: true, Class: ClassConstantCreation},
	OpConstantFalse: {HasResultType: true, HasResult: true, Class: ClassConstantCreation},
	OpConstant: {HasResultType: true, HasResult: true, Class: ClassConstantCreation,
		Operands: []OperandSpec{{Kind: KindLiteralInteger, Quantifier: Variadic}}},
	OpConstantComposite: {HasResultType: true, HasResult: true, Class: ClassConstantCreation,
		Operands: []OperandSpec{{Kind: KindID, Quantifier: Variadic}}},
	OpConstantNull: {HasResultType: true, HasResult: true, Class: ClassConstantCreation},
	OpFunction: {HasResultType: true, HasResult: true, Class: ClassFunction, Operands: []OperandSpec{
		{Kind: KindLiteralInteger}, {Kind: KindID},
	}},
	OpFunctionParameter: {HasResultType: true, HasResult: true, Class: ClassFunction},
	OpFunctionEnd:       {Class: ClassFunction},
	OpFunctionCall: {HasResultType: true, HasResult: true, Class: ClassFunction, Operands: []OperandSpec{
		{Kind: KindID}, {Kind: KindID, Quantifier: Variadic},
	}},
	OpVariable: {HasResultType: true, HasResult: true, Class: ClassMemory, Operands: []OperandSpec{
		{Kind: KindEnum, EnumName: "StorageClass"}, {Kind: KindID, Quantifier: Optional},
	}},
	OpLoad: {HasResultType: true, HasResult: true, Class: ClassMemory, Operands: []OperandSpec{
		{Kind: KindID}, {Kind: KindLiteralInteger, Quantifier: Optional},
	}},
	OpStore: {Class: ClassMemory, Operands: []OperandSpec{
		{Kind: KindID}, {Kind: KindID}, {Kind: KindLiteralInteger, Quantifier: Optional},
	}},
	OpAccessChain: {HasResultType: true, HasResult: true, Class: ClassMemory, Operands: []OperandSpec{
		{Kind: KindID}, {Kind: KindID, Quantifier: Variadic},
	}},
	OpInBoundsAccessChain: {HasResultType: true, HasResult: true, Class: ClassMemory, Operands: []OperandSpec{
		{Kind: KindID}, {Kind: KindID, Quantifier: Variadic},
	}},
	OpDecorate: {Class: ClassAnnotation, Operands: []OperandSpec{
		{Kind: KindID}, {Kind: KindEnum, EnumName: "Decoration"}, {Kind: KindLiteralInteger, Quantifier: Variadic},
	}},
	OpMemberDecorate: {Class: ClassAnnotation, Operands: []OperandSpec{
		{Kind: KindID}, {Kind: KindLiteralInteger}, {Kind: KindEnum, EnumName: "Decoration"},
		{Kind: KindLiteralInteger, Quantifier: Variadic},
	}},
	OpVectorShuffle: {HasResultType: true, HasResult: true, Class: ClassOther, Operands: []OperandSpec{
		{Kind: KindID}, {Kind: KindID}, {Kind: KindLiteralInteger, Quantifier: Variadic},
	}},
	OpCompositeConstruct: {HasResultType: true, HasResult: true, Class: ClassOther,
		Operands: []OperandSpec{{Kind: KindID, Quantifier: Variadic}}},
	OpCompositeExtract: {HasResultType: true, HasResult: true, Class: ClassOther, Operands: []OperandSpec{
		{Kind: KindID}, {Kind: KindLiteralInteger, Quantifier: Variadic},
	}},
	OpCompositeInsert: {HasResultType: true, HasResult: true, Class: ClassOther, Operands: []OperandSpec{
		{Kind: KindID}, {Kind: KindID}, {Kind: KindLiteralInteger, Quantifier: Variadic},
	}},
	OpPhi: {HasResultType: true, HasResult: true, Class: ClassControlFlow,
		Operands: []OperandSpec{{Kind: KindID, Quantifier: Variadic}}},
	OpLoopMerge: {Class: ClassControlFlow, Operands: []OperandSpec{
		{Kind: KindID}, {Kind: KindID}, {Kind: KindLiteralInteger},
	}},
	OpSelectionMerge: {Class: ClassControlFlow, Operands: []OperandSpec{
		{Kind: KindID}, {Kind: KindLiteralInteger},
	}},
	OpLabel: {HasResult: true, Class: ClassControlFlow},
	OpBranch: {Class: ClassControlFlow, Operands: []OperandSpec{{Kind: KindID}}},
	OpBranchConditional: {Class: ClassControlFlow, Operands: []OperandSpec{
		{Kind: KindID}, {Kind: KindID}, {Kind: KindID}, {Kind: KindLiteralInteger, Quantifier: Variadic},
	}},
	OpSwitch: {Class: ClassControlFlow, Operands: []OperandSpec{
		{Kind: KindID}, {Kind: KindID}, {Kind: KindLiteralInteger, Quantifier: Variadic},
	}},
	OpKill:        {Class: ClassControlFlow},
	OpReturn:      {Class: ClassControlFlow},
	OpReturnValue: {Class: ClassControlFlow, Operands: []OperandSpec{{Kind: KindID}}},
	OpUnreachable: {Class: ClassControlFlow},
	OpControlBarrier: {Class: ClassOther, Operands: []OperandSpec{
		{Kind: KindID}, {Kind: KindID}, {Kind: KindID},
	}},
	OpMemoryBarrier: {Class: ClassOther, Operands: []OperandSpec{{Kind: KindID}, {Kind: KindID}}},
}

// binaryOpInfo is shared by every arithmetic/logical/comparison opcode:
// result-type, result, two id operands.
var binaryOpInfo = OpInfo{HasResultType: true, HasResult: true, Class: ClassOther,
	Operands: []OperandSpec{{Kind: KindID}, {Kind: KindID}}}

// unaryOpInfo is shared by conversions and unary arithmetic/logical ops.
var unaryOpInfo = OpInfo{HasResultType: true, HasResult: true, Class: ClassOther,
	Operands: []OperandSpec{{Kind: KindID}}}

func init() {
	for _, op := range []Op{
		OpIAdd, OpFAdd, OpISub, OpFSub, OpIMul, OpFMul, OpUDiv, OpSDiv, OpFDiv,
		OpUMod, OpSRem, OpSMod, OpFRem, OpFMod,
		OpLogicalEqual, OpLogicalNotEqual, OpLogicalOr, OpLogicalAnd,
		OpIEqual, OpINotEqual, OpUGreaterThan, OpSGreaterThan, OpUGreaterThanEqual,
		OpSGreaterThanEqual, OpULessThan, OpSLessThan, OpULessThanEqual, OpSLessThanEqual,
		OpFOrdEqual, OpFOrdNotEqual, OpFOrdLessThan, OpFOrdGreaterThan,
		OpFOrdLessThanEqual, OpFOrdGreaterThanEqual,
		OpShiftRightLogical, OpShiftRightArithmetic, OpShiftLeftLogical,
		OpBitwiseOr, OpBitwiseXor, OpBitwiseAnd,
	} {
		grammar[op] = binaryOpInfo
	}
	for _, op := range []Op{
		OpSNegate, OpFNegate, OpLogicalNot, OpNot,
		OpConvertFToU, OpConvertFToS, OpConvertSToF, OpConvertUToF, OpBitcast,
	} {
		grammar[op] = unaryOpInfo
	}
	grammar[OpSelect] = OpInfo{HasResultType: true, HasResult: true, Class: ClassOther,
		Operands: []OperandSpec{{Kind: KindID}, {Kind: KindID}, {Kind: KindID}}}
	grammar[OpAtomicLoad] = OpInfo{HasResultType: true, HasResult: true, Class: ClassOther,
		Operands: []OperandSpec{{Kind: KindID}, {Kind: KindID}, {Kind: KindID}}}
	grammar[OpAtomicStore] = OpInfo{Class: ClassOther,
		Operands: []OperandSpec{{Kind: KindID}, {Kind: KindID}, {Kind: KindID}, {Kind: KindID}}}
	grammar[OpAtomicIAdd] = OpInfo{HasResultType: true, HasResult: true, Class: ClassOther,
		Operands: []OperandSpec{{Kind: KindID}, {Kind: KindID}, {Kind: KindID}, {Kind: KindID}}}
	grammar[OpUndef] = OpInfo{HasResultType: true, HasResult: true, Class: ClassOther}
}

// rawOpInfo is used for any opcode absent from grammar: no result type, no
// result, every remaining word treated as an opaque literal. It still
// round-trips (encode(decode(x)) == x) because the codec never interprets
// operand contents it didn't assign a kind to.
var rawOpInfo = OpInfo{Class: ClassOther, Operands: []OperandSpec{{Kind: KindLiteralInteger, Quantifier: Variadic}}}

// Lookup returns the grammar entry for op, falling back to rawOpInfo (never
// an error) so that any valid SPIR-V word stream can still be decoded
// opaquely even if this module's grammar doesn't model that particular
// opcode's operands by name.
func Lookup(op Op) OpInfo {
	if info, ok := grammar[op]; ok {
		return info
	}
	return rawOpInfo
}

// Known reports whether op has an explicit grammar entry (as opposed to the
// opaque fallback).
func Known(op Op) bool {
	_, ok := grammar[op]
	return ok
}

// ExtInstInfo describes one extended-instruction-set opcode (spec.md §4.2
// "Extended-instruction-set opcodes have their own per-set tables").
type ExtInstInfo struct {
	Name     string
	Operands []OperandSpec
}

// extInstSets maps an imported set name (as it appears in an
// OpExtInstImport's literal string) to its opcode table.
var extInstSets = map[string]map[uint32]ExtInstInfo{
	"GLSL.std.450": {
		GLSLstd450Round:       {Name: "Round", Operands: []OperandSpec{{Kind: KindID}}},
		GLSLstd450FAbs:        {Name: "FAbs", Operands: []OperandSpec{{Kind: KindID}}},
		GLSLstd450Floor:       {Name: "Floor", Operands: []OperandSpec{{Kind: KindID}}},
		GLSLstd450Ceil:        {Name: "Ceil", Operands: []OperandSpec{{Kind: KindID}}},
		GLSLstd450Sin:         {Name: "Sin", Operands: []OperandSpec{{Kind: KindID}}},
		GLSLstd450Cos:         {Name: "Cos", Operands: []OperandSpec{{Kind: KindID}}},
		GLSLstd450Pow:         {Name: "Pow", Operands: []OperandSpec{{Kind: KindID}, {Kind: KindID}}},
		GLSLstd450Exp:         {Name: "Exp", Operands: []OperandSpec{{Kind: KindID}}},
		GLSLstd450Log:         {Name: "Log", Operands: []OperandSpec{{Kind: KindID}}},
		GLSLstd450Sqrt:        {Name: "Sqrt", Operands: []OperandSpec{{Kind: KindID}}},
		GLSLstd450InverseSqrt: {Name: "InverseSqrt", Operands: []OperandSpec{{Kind: KindID}}},
		GLSLstd450FMin:        {Name: "FMin", Operands: []OperandSpec{{Kind: KindID}, {Kind: KindID}}},
		GLSLstd450FMax:        {Name: "FMax", Operands: []OperandSpec{{Kind: KindID}, {Kind: KindID}}},
		GLSLstd450FClamp: {Name: "FClamp", Operands: []OperandSpec{
			{Kind: KindID}, {Kind: KindID}, {Kind: KindID},
		}},
		GLSLstd450FMix: {Name: "FMix", Operands: []OperandSpec{
			{Kind: KindID}, {Kind: KindID}, {Kind: KindID},
		}},
		GLSLstd450Cross:     {Name: "Cross", Operands: []OperandSpec{{Kind: KindID}, {Kind: KindID}}},
		GLSLstd450Normalize: {Name: "Normalize", Operands: []OperandSpec{{Kind: KindID}}},
	},
}

// LookupExtInst returns the instruction info for instruction number within
// the named imported extended-instruction-set, if known.
func LookupExtInst(setName string, instruction uint32) (ExtInstInfo, bool) {
	set, ok := extInstSets[setName]
	if !ok {
		return ExtInstInfo{}, false
	}
	info, ok := set[instruction]
	return info, ok
}
