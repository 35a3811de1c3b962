// Package spirv implements the binary word codec, the instruction model,
// the static grammar tables, and the textual disassembler/assembler for the
// SPIR-V word-stream format (spec.md §4.1, §4.2, §6).
//
// It is the lowest layer of the toolchain: it knows nothing about the
// structured ir.Module above it, only about words, opcodes, and the shapes
// the grammar assigns to each opcode's operands.
package spirv

// Op is a SPIR-V opcode.
type Op uint16

// Opcodes used by this module's grammar tables (spec.md §4.2). This is not
// the full SPIR-V opcode enumeration — only the subset the grammar and
// disassembler recognize by name; any other opcode still round-trips
// through the codec as an opaque operand-word list (see grammar.go's
// fallback entry).
const (
	OpNop                Op = 0
	OpUndef              Op = 1
	OpSourceContinued    Op = 2
	OpSource             Op = 3
	OpSourceExtension    Op = 4
	OpName               Op = 5
	OpMemberName         Op = 6
	OpString             Op = 7
	OpExtension          Op = 10
	OpExtInstImport      Op = 11
	OpExtInst            Op = 12
	OpMemoryModel        Op = 14
	OpEntryPoint         Op = 15
	OpExecutionMode      Op = 16
	OpCapability         Op = 17
	OpTypeVoid           Op = 19
	OpTypeBool           Op = 20
	OpTypeInt            Op = 21
	OpTypeFloat          Op = 22
	OpTypeVector         Op = 23
	OpTypeMatrix         Op = 24
	OpTypeImage          Op = 25
	OpTypeSampler        Op = 26
	OpTypeSampledImage   Op = 27
	OpTypeArray          Op = 28
	OpTypeRuntimeArray   Op = 29
	OpTypeStruct         Op = 30
	OpTypeOpaque         Op = 31
	OpTypePointer        Op = 32
	OpTypeFunction       Op = 33
	OpConstantTrue       Op = 41
	OpConstantFalse      Op = 42
	OpConstant           Op = 43
	OpConstantComposite  Op = 44
	OpConstantNull       Op = 46
	OpFunction           Op = 54
	OpFunctionParameter  Op = 55
	OpFunctionEnd        Op = 56
	OpFunctionCall       Op = 57
	OpVariable           Op = 59
	OpLoad               Op = 61
	OpStore              Op = 62
	OpAccessChain        Op = 65
	OpInBoundsAccessChain Op = 66
	OpDecorate           Op = 71
	OpMemberDecorate     Op = 72
	OpVectorShuffle      Op = 79
	OpCompositeConstruct Op = 80
	OpCompositeExtract   Op = 81
	OpCompositeInsert    Op = 82
	OpConvertFToU        Op = 109
	OpConvertFToS        Op = 110
	OpConvertSToF        Op = 111
	OpConvertUToF        Op = 112
	OpBitcast            Op = 124
	OpSNegate            Op = 126
	OpFNegate            Op = 127
	OpIAdd               Op = 128
	OpFAdd               Op = 129
	OpISub               Op = 130
	OpFSub               Op = 131
	OpIMul               Op = 132
	OpFMul               Op = 133
	OpUDiv               Op = 134
	OpSDiv               Op = 135
	OpFDiv               Op = 136
	OpUMod               Op = 137
	OpSRem               Op = 138
	OpSMod               Op = 139
	OpFRem               Op = 140
	OpFMod               Op = 141
	OpLogicalEqual       Op = 164
	OpLogicalNotEqual    Op = 165
	OpLogicalOr          Op = 166
	OpLogicalAnd         Op = 167
	OpLogicalNot         Op = 168
	OpSelect             Op = 169
	OpIEqual             Op = 170
	OpINotEqual          Op = 171
	OpUGreaterThan       Op = 172
	OpSGreaterThan       Op = 173
	OpUGreaterThanEqual  Op = 174
	OpSGreaterThanEqual  Op = 175
	OpULessThan          Op = 176
	OpSLessThan          Op = 177
	OpULessThanEqual     Op = 178
	OpSLessThanEqual     Op = 179
	OpFOrdEqual          Op = 180
	OpFOrdNotEqual       Op = 182
	OpFOrdLessThan       Op = 184
	OpFOrdGreaterThan    Op = 186
	OpFOrdLessThanEqual  Op = 188
	OpFOrdGreaterThanEqual Op = 190
	OpShiftRightLogical    Op = 194
	OpShiftRightArithmetic Op = 195
	OpShiftLeftLogical     Op = 196
	OpBitwiseOr            Op = 197
	OpBitwiseXor           Op = 198
	OpBitwiseAnd           Op = 199
	OpNot                  Op = 200
	OpControlBarrier Op = 224
	OpMemoryBarrier  Op = 225
	OpAtomicLoad     Op = 227
	OpAtomicStore    Op = 228
	OpAtomicIAdd     Op = 234
	OpPhi            Op = 245
	OpLoopMerge      Op = 246
	OpSelectionMerge Op = 247
	OpLabel          Op = 248
	OpBranch         Op = 249
	OpBranchConditional Op = 250
	OpSwitch            Op = 251
	OpKill              Op = 252
	OpReturn            Op = 253
	OpReturnValue       Op = 254
	OpUnreachable       Op = 255
)

// Capability is a SPIR-V capability value.
type Capability uint32

// Commonly used capabilities.
const (
	CapabilityMatrix   Capability = 0
	CapabilityShader   Capability = 1
	CapabilityGeometry Capability = 2
	CapabilityFloat16  Capability = 9
	CapabilityFloat64  Capability = 10
	CapabilityInt64    Capability = 11
	CapabilityInt16    Capability = 22
	CapabilityInt8     Capability = 39
	CapabilityVulkanMemoryModel Capability = 5345
)

// Decoration is a SPIR-V decoration kind (spec.md glossary "Decoration").
type Decoration uint32

const (
	DecorationRelaxedPrecision Decoration = 0
	DecorationBlock            Decoration = 2
	DecorationBufferBlock      Decoration = 3
	DecorationRowMajor         Decoration = 4
	DecorationColMajor         Decoration = 5
	DecorationArrayStride      Decoration = 6
	DecorationMatrixStride     Decoration = 7
	DecorationBuiltIn          Decoration = 11
	DecorationFlat             Decoration = 14
	DecorationNonWritable      Decoration = 24
	DecorationLocation         Decoration = 30
	DecorationComponent        Decoration = 31
	DecorationIndex            Decoration = 32
	DecorationBinding          Decoration = 33
	DecorationDescriptorSet    Decoration = 34
	DecorationOffset           Decoration = 35
)

// BuiltIn is a SPIR-V BuiltIn decoration value.
type BuiltIn uint32

const (
	BuiltInPosition     BuiltIn = 0
	BuiltInVertexID     BuiltIn = 5
	BuiltInInstanceID   BuiltIn = 6
	BuiltInFragCoord    BuiltIn = 15
	BuiltInFrontFacing  BuiltIn = 17
	BuiltInFragDepth    BuiltIn = 22
	BuiltInVertexIndex  BuiltIn = 42
	BuiltInInstanceIndex BuiltIn = 43
)

// ExecutionModel is a SPIR-V execution model (spec.md glossary "Entry point").
type ExecutionModel uint32

const (
	ExecutionModelVertex   ExecutionModel = 0
	ExecutionModelGeometry ExecutionModel = 3
	ExecutionModelFragment ExecutionModel = 4
	ExecutionModelGLCompute ExecutionModel = 5
	ExecutionModelKernel    ExecutionModel = 6
)

// ExecutionMode is a SPIR-V execution mode, attached to an entry point.
type ExecutionMode uint32

const (
	ExecutionModeOriginUpperLeft   ExecutionMode = 7
	ExecutionModeOriginLowerLeft   ExecutionMode = 8
	ExecutionModeEarlyFragmentTests ExecutionMode = 9
	ExecutionModeDepthReplacing    ExecutionMode = 12
	ExecutionModeLocalSize         ExecutionMode = 17
)

// StorageClass is a SPIR-V storage class (spec.md glossary "Storage class").
type StorageClass uint32

const (
	StorageClassUniformConstant StorageClass = 0
	StorageClassInput           StorageClass = 1
	StorageClassUniform         StorageClass = 2
	StorageClassOutput          StorageClass = 3
	StorageClassWorkgroup       StorageClass = 4
	StorageClassCrossWorkgroup  StorageClass = 5
	StorageClassPrivate         StorageClass = 6
	StorageClassFunction        StorageClass = 7
	StorageClassGeneric         StorageClass = 8
	StorageClassPushConstant    StorageClass = 9
	StorageClassImage           StorageClass = 11
	StorageClassStorageBuffer   StorageClass = 12
)

// AddressingModel is a SPIR-V addressing model.
type AddressingModel uint32

const (
	AddressingModelLogical    AddressingModel = 0
	AddressingModelPhysical32 AddressingModel = 1
	AddressingModelPhysical64 AddressingModel = 2
)

// MemoryModel is a SPIR-V memory model.
type MemoryModel uint32

const (
	MemoryModelSimple  MemoryModel = 0
	MemoryModelGLSL450 MemoryModel = 1
	MemoryModelOpenCL  MemoryModel = 2
	MemoryModelVulkan  MemoryModel = 3
)

// FunctionControl is the bitmask operand of OpFunction.
type FunctionControl uint32

const (
	FunctionControlNone       FunctionControl = 0x0
	FunctionControlInline     FunctionControl = 0x1
	FunctionControlDontInline FunctionControl = 0x2
	FunctionControlPure       FunctionControl = 0x4
	FunctionControlConst      FunctionControl = 0x8
)

// SelectionControl is the bitmask operand of OpSelectionMerge.
type SelectionControl uint32

// LoopControl is the bitmask operand of OpLoopMerge.
type LoopControl uint32

// ImageFormat is a SPIR-V image format (for OpTypeImage).
type ImageFormat uint32

const (
	ImageFormatUnknown ImageFormat = 0
	ImageFormatRgba32f ImageFormat = 1
	ImageFormatR32f    ImageFormat = 3
	ImageFormatRgba8   ImageFormat = 4
)

// GLSL.std.450 extended instruction set opcode values, used when an
// OpExtInst's set was imported under the name "GLSL.std.450".
const (
	GLSLstd450Round   uint32 = 1
	GLSLstd450FAbs    uint32 = 4
	GLSLstd450Floor   uint32 = 8
	GLSLstd450Ceil    uint32 = 9
	GLSLstd450Sin     uint32 = 13
	GLSLstd450Cos     uint32 = 14
	GLSLstd450Pow     uint32 = 26
	GLSLstd450Exp     uint32 = 27
	GLSLstd450Log     uint32 = 28
	GLSLstd450Sqrt    uint32 = 31
	GLSLstd450InverseSqrt uint32 = 32
	GLSLstd450FMin    uint32 = 37
	GLSLstd450FMax    uint32 = 40
	GLSLstd450FClamp  uint32 = 43
	GLSLstd450FMix    uint32 = 46
	GLSLstd450Cross   uint32 = 68
	GLSLstd450Normalize uint32 = 69
)

// MagicNumber is the canonical little-endian-host SPIR-V magic word.
const MagicNumber uint32 = 0x07230203

// byteSwappedMagic is MagicNumber with its bytes reversed — the header word
// this codec observes when reading a stream produced on the opposite byte
// order (spec.md §4.1).
const byteSwappedMagic uint32 = 0x03022307

// GeneratorID is the unregistered-generator magic used by this toolchain
// when it is the one producing a module (not reading one).
const GeneratorID uint32 = 0
