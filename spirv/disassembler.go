package spirv

import (
	"fmt"
	"strconv"
	"strings"
)

// enumNames maps an EnumName (as used in grammar.go's OperandSpec) to the
// symbolic name table for that enum's values. Populated in init() below
// from the same constant groups enums.go defines; any value absent from a
// table renders as its bare decimal form rather than erroring, since the
// grammar's coverage of the full SPIR-V enumeration is intentionally
// partial (spec.md §6 "unknown opcodes/operands render numerically").
var enumNames = map[string]map[uint32]string{}

func registerEnum(name string, values map[uint32]string) {
	enumNames[name] = values
}

func init() {
	registerEnum("Capability", map[uint32]string{
		uint32(CapabilityMatrix): "Matrix", uint32(CapabilityShader): "Shader",
		uint32(CapabilityGeometry): "Geometry", uint32(CapabilityFloat16): "Float16",
		uint32(CapabilityFloat64): "Float64", uint32(CapabilityInt64): "Int64",
		uint32(CapabilityInt16): "Int16", uint32(CapabilityInt8): "Int8",
		uint32(CapabilityVulkanMemoryModel): "VulkanMemoryModel",
	})
	registerEnum("Decoration", map[uint32]string{
		uint32(DecorationRelaxedPrecision): "RelaxedPrecision", uint32(DecorationBlock): "Block",
		uint32(DecorationBufferBlock): "BufferBlock", uint32(DecorationRowMajor): "RowMajor",
		uint32(DecorationColMajor): "ColMajor", uint32(DecorationArrayStride): "ArrayStride",
		uint32(DecorationMatrixStride): "MatrixStride", uint32(DecorationBuiltIn): "BuiltIn",
		uint32(DecorationFlat): "Flat", uint32(DecorationNonWritable): "NonWritable",
		uint32(DecorationLocation): "Location", uint32(DecorationComponent): "Component",
		uint32(DecorationIndex): "Index", uint32(DecorationBinding): "Binding",
		uint32(DecorationDescriptorSet): "DescriptorSet", uint32(DecorationOffset): "Offset",
	})
	registerEnum("BuiltIn", map[uint32]string{
		uint32(BuiltInPosition): "Position", uint32(BuiltInVertexID): "VertexId",
		uint32(BuiltInInstanceID): "InstanceId", uint32(BuiltInFragCoord): "FragCoord",
		uint32(BuiltInFrontFacing): "FrontFacing", uint32(BuiltInFragDepth): "FragDepth",
		uint32(BuiltInVertexIndex): "VertexIndex", uint32(BuiltInInstanceIndex): "InstanceIndex",
	})
	registerEnum("ExecutionModel", map[uint32]string{
		uint32(ExecutionModelVertex): "Vertex", uint32(ExecutionModelGeometry): "Geometry",
		uint32(ExecutionModelFragment): "Fragment", uint32(ExecutionModelGLCompute): "GLCompute",
		uint32(ExecutionModelKernel): "Kernel",
	})
	registerEnum("ExecutionMode", map[uint32]string{
		uint32(ExecutionModeOriginUpperLeft): "OriginUpperLeft", uint32(ExecutionModeOriginLowerLeft): "OriginLowerLeft",
		uint32(ExecutionModeEarlyFragmentTests): "EarlyFragmentTests", uint32(ExecutionModeDepthReplacing): "DepthReplacing",
		uint32(ExecutionModeLocalSize): "LocalSize",
	})
	registerEnum("StorageClass", map[uint32]string{
		uint32(StorageClassUniformConstant): "UniformConstant", uint32(StorageClassInput): "Input",
		uint32(StorageClassUniform): "Uniform", uint32(StorageClassOutput): "Output",
		uint32(StorageClassWorkgroup): "Workgroup", uint32(StorageClassCrossWorkgroup): "CrossWorkgroup",
		uint32(StorageClassPrivate): "Private", uint32(StorageClassFunction): "Function",
		uint32(StorageClassGeneric): "Generic", uint32(StorageClassPushConstant): "PushConstant",
		uint32(StorageClassImage): "Image", uint32(StorageClassStorageBuffer): "StorageBuffer",
	})
	registerEnum("AddressingModel", map[uint32]string{
		uint32(AddressingModelLogical): "Logical", uint32(AddressingModelPhysical32): "Physical32",
		uint32(AddressingModelPhysical64): "Physical64",
	})
	registerEnum("MemoryModel", map[uint32]string{
		uint32(MemoryModelSimple): "Simple", uint32(MemoryModelGLSL450): "GLSL450",
		uint32(MemoryModelOpenCL): "OpenCL", uint32(MemoryModelVulkan): "Vulkan",
	})
	registerEnum("ImageFormat", map[uint32]string{
		uint32(ImageFormatUnknown): "Unknown", uint32(ImageFormatRgba32f): "Rgba32f",
		uint32(ImageFormatR32f): "R32f", uint32(ImageFormatRgba8): "Rgba8",
	})
	registerEnum("SourceLanguage", map[uint32]string{
		0: "Unknown", 1: "ESSL", 2: "GLSL", 3: "OpenCL_C", 4: "OpenCL_CPP", 5: "HLSL",
	})
}

// enumName renders value using the named table, falling back to its bare
// decimal form when the table (or the value within it) is absent.
func enumName(tableName string, value uint32) string {
	if table, ok := enumNames[tableName]; ok {
		if name, ok := table[value]; ok {
			return name
		}
	}
	return strconv.FormatUint(uint64(value), 10)
}

// opcodeNames gives each known opcode its textual mnemonic, used both for
// rendering and for parsing the assembler's input.
var opcodeNames = map[Op]string{}

func init() {
	names := map[Op]string{
		OpNop: "OpNop", OpUndef: "OpUndef", OpSourceContinued: "OpSourceContinued",
		OpSource: "OpSource", OpSourceExtension: "OpSourceExtension", OpName: "OpName",
		OpMemberName: "OpMemberName", OpString: "OpString", OpExtension: "OpExtension",
		OpExtInstImport: "OpExtInstImport", OpExtInst: "OpExtInst", OpMemoryModel: "OpMemoryModel",
		OpEntryPoint: "OpEntryPoint", OpExecutionMode: "OpExecutionMode", OpCapability: "OpCapability",
		OpTypeVoid: "OpTypeVoid", OpTypeBool: "OpTypeBool", OpTypeInt: "OpTypeInt",
		OpTypeFloat: "OpTypeFloat", OpTypeVector: "OpTypeVector", OpTypeMatrix: "OpTypeMatrix",
		OpTypeImage: "OpTypeImage", OpTypeSampler: "OpTypeSampler", OpTypeSampledImage: "OpTypeSampledImage",
		OpTypeArray: "OpTypeArray", OpTypeRuntimeArray: "OpTypeRuntimeArray", OpTypeStruct: "OpTypeStruct",
		OpTypeOpaque: "OpTypeOpaque", OpTypePointer: "OpTypePointer", OpTypeFunction: "OpTypeFunction",
		OpConstantTrue: "OpConstantTrue", OpConstantFalse: "OpConstantFalse", OpConstant: "OpConstant",
		OpConstantComposite: "OpConstantComposite", OpConstantNull: "OpConstantNull",
		OpFunction: "OpFunction", OpFunctionParameter: "OpFunctionParameter", OpFunctionEnd: "OpFunctionEnd",
		OpFunctionCall: "OpFunctionCall", OpVariable: "OpVariable", OpLoad: "OpLoad", OpStore: "OpStore",
		OpAccessChain: "OpAccessChain", OpInBoundsAccessChain: "OpInBoundsAccessChain",
		OpDecorate: "OpDecorate", OpMemberDecorate: "OpMemberDecorate", OpVectorShuffle: "OpVectorShuffle",
		OpCompositeConstruct: "OpCompositeConstruct", OpCompositeExtract: "OpCompositeExtract",
		OpCompositeInsert: "OpCompositeInsert", OpConvertFToU: "OpConvertFToU", OpConvertFToS: "OpConvertFToS",
		OpConvertSToF: "OpConvertSToF", OpConvertUToF: "OpConvertUToF", OpBitcast: "OpBitcast",
		OpSNegate: "OpSNegate", OpFNegate: "OpFNegate", OpIAdd: "OpIAdd", OpFAdd: "OpFAdd",
		OpISub: "OpISub", OpFSub: "OpFSub", OpIMul: "OpIMul", OpFMul: "OpFMul", OpUDiv: "OpUDiv",
		OpSDiv: "OpSDiv", OpFDiv: "OpFDiv", OpUMod: "OpUMod", OpSRem: "OpSRem", OpSMod: "OpSMod",
		OpFRem: "OpFRem", OpFMod: "OpFMod", OpLogicalEqual: "OpLogicalEqual",
		OpLogicalNotEqual: "OpLogicalNotEqual", OpLogicalOr: "OpLogicalOr", OpLogicalAnd: "OpLogicalAnd",
		OpLogicalNot: "OpLogicalNot", OpSelect: "OpSelect", OpIEqual: "OpIEqual", OpINotEqual: "OpINotEqual",
		OpUGreaterThan: "OpUGreaterThan", OpSGreaterThan: "OpSGreaterThan",
		OpUGreaterThanEqual: "OpUGreaterThanEqual", OpSGreaterThanEqual: "OpSGreaterThanEqual",
		OpULessThan: "OpULessThan", OpSLessThan: "OpSLessThan", OpULessThanEqual: "OpULessThanEqual",
		OpSLessThanEqual: "OpSLessThanEqual", OpFOrdEqual: "OpFOrdEqual", OpFOrdNotEqual: "OpFOrdNotEqual",
		OpFOrdLessThan: "OpFOrdLessThan", OpFOrdGreaterThan: "OpFOrdGreaterThan",
		OpFOrdLessThanEqual: "OpFOrdLessThanEqual", OpFOrdGreaterThanEqual: "OpFOrdGreaterThanEqual",
		OpShiftRightLogical: "OpShiftRightLogical", OpShiftRightArithmetic: "OpShiftRightArithmetic",
		OpShiftLeftLogical: "OpShiftLeftLogical", OpBitwiseOr: "OpBitwiseOr", OpBitwiseXor: "OpBitwiseXor",
		OpBitwiseAnd: "OpBitwiseAnd", OpNot: "OpNot", OpControlBarrier: "OpControlBarrier",
		OpMemoryBarrier: "OpMemoryBarrier", OpAtomicLoad: "OpAtomicLoad", OpAtomicStore: "OpAtomicStore",
		OpAtomicIAdd: "OpAtomicIAdd", OpPhi: "OpPhi", OpLoopMerge: "OpLoopMerge",
		OpSelectionMerge: "OpSelectionMerge", OpLabel: "OpLabel", OpBranch: "OpBranch",
		OpBranchConditional: "OpBranchConditional", OpSwitch: "OpSwitch", OpKill: "OpKill",
		OpReturn: "OpReturn", OpReturnValue: "OpReturnValue", OpUnreachable: "OpUnreachable",
	}
	for op, name := range names {
		opcodeNames[op] = name
	}
}

func opcodeName(op Op) string {
	if name, ok := opcodeNames[op]; ok {
		return name
	}
	return "Op" + strconv.FormatUint(uint64(op), 10)
}

// Disassemble renders a Stream in the textual form described in spec.md §6:
// one line per instruction, `%<result> = OpName %<resultType> operand...`
// for instructions with a result, `OpName operand...` otherwise. Operands
// are rendered by grammar kind: ids as `%n`, enums symbolically (falling
// back to numeric), literal integers numerically, literal strings quoted.
func Disassemble(s Stream) string {
	var b strings.Builder
	fmt.Fprintf(&b, "; SPIR-V\n; Version: %d.%d\n; Generator: %d\n; Bound: %d\n; Schema: %d\n",
		s.Header.Version.Major, s.Header.Version.Minor, s.Header.GeneratorID, s.Header.Bound, s.Schema)
	for _, ins := range s.Instructions {
		b.WriteString(disassembleInstruction(ins))
		b.WriteByte('\n')
	}
	return b.String()
}

func disassembleInstruction(ins Instruction) string {
	info := Lookup(ins.Op)
	var b strings.Builder
	if info.HasResult {
		fmt.Fprintf(&b, "%%%d = ", ins.Result)
	}
	b.WriteString(opcodeName(ins.Op))
	if info.HasResultType {
		fmt.Fprintf(&b, " %%%d", ins.ResultType)
	}

	operands := ins.Operands
	specs := info.Operands
	si := 0
	oi := 0
	for oi < len(operands) {
		var spec OperandSpec
		if si < len(specs) {
			spec = specs[si]
			if spec.Quantifier != Variadic {
				si++
			}
		} else {
			spec = OperandSpec{Kind: KindLiteralInteger}
		}
		switch spec.Kind {
		case KindID:
			fmt.Fprintf(&b, " %%%d", operands[oi])
			oi++
		case KindEnum:
			fmt.Fprintf(&b, " %s", enumName(spec.EnumName, operands[oi]))
			oi++
		case KindLiteralString:
			str, consumed := decodeLiteralString(operands, oi)
			fmt.Fprintf(&b, " %q", str)
			oi += consumed
		default:
			fmt.Fprintf(&b, " %d", operands[oi])
			oi++
		}
	}
	return b.String()
}
