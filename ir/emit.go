package ir

import (
	"github.com/gogpu/spv/spirv"
	"github.com/gogpu/spv/ssa"
)

// Emit serializes a Module back to a flat spirv.Stream in the canonical
// section ordering the format requires (spec.md §4.5): capabilities,
// extensions, extended-instruction imports, memory model, entry points,
// execution modes, debug source, debug strings, debug names, decorations
// and member decorations, globals, functions. Globals are emitted in the
// order they were added to m.Globals; they are not re-sorted by id.
func Emit(m *Module) spirv.Stream {
	var instructions []spirv.Instruction

	for _, cap := range m.Capabilities.Items() {
		instructions = append(instructions, spirv.Instruction{
			Op: spirv.OpCapability, Operands: []uint32{uint32(cap)},
		})
	}
	for _, ext := range m.Extensions {
		instructions = append(instructions, spirv.Instruction{
			Op: spirv.OpExtension, Operands: encodeStringOperand(ext),
		})
	}
	for _, id := range m.ExtInstImports.Keys() {
		name, _ := m.ExtInstImports.Get(id)
		instructions = append(instructions, spirv.Instruction{
			Op: spirv.OpExtInstImport, Result: id, Operands: encodeStringOperand(name),
		})
	}
	instructions = append(instructions, spirv.Instruction{
		Op:       spirv.OpMemoryModel,
		Operands: []uint32{uint32(m.AddressingModel), uint32(m.MemoryModel)},
	})
	for _, id := range m.EntryPoints.Keys() {
		ep, _ := m.EntryPoints.Get(id)
		operands := []uint32{uint32(ep.ExecutionModel), uint32(ep.FunctionID)}
		operands = append(operands, encodeStringOperand(ep.Name)...)
		for _, v := range ep.Interface {
			operands = append(operands, uint32(v))
		}
		instructions = append(instructions, spirv.Instruction{Op: spirv.OpEntryPoint, Operands: operands})
	}
	for _, id := range m.EntryPoints.Keys() {
		ep, _ := m.EntryPoints.Get(id)
		for _, mode := range ep.Modes {
			operands := append([]uint32{uint32(ep.FunctionID), uint32(mode.Mode)}, mode.Operands...)
			instructions = append(instructions, spirv.Instruction{Op: spirv.OpExecutionMode, Operands: operands})
		}
	}
	instructions = append(instructions, emitDebug(m)...)
	instructions = append(instructions, emitDecorations(m)...)

	for _, id := range m.Globals.Keys() {
		ins, _ := m.Globals.Get(id)
		instructions = append(instructions, ins)
	}

	for _, id := range m.Functions.Keys() {
		fn, _ := m.Functions.Get(id)
		instructions = append(instructions, emitFunction(m, fn)...)
	}

	return spirv.Stream{
		Header: spirv.Header{
			Version:     m.Meta.Version,
			GeneratorID: m.Meta.GeneratorID,
			Bound:       m.Bound(),
		},
		Schema:       m.Meta.Schema,
		Instructions: instructions,
	}
}

func emitDebug(m *Module) []spirv.Instruction {
	if m.Debug == nil {
		return nil
	}
	var out []spirv.Instruction
	d := m.Debug
	if d.SourceLanguage != 0 || d.Source != "" || d.FileIDs.Len() > 0 {
		operands := []uint32{d.SourceLanguage, d.SourceVersion}
		var fileID ssa.ID
		for _, id := range d.FileIDs.Keys() {
			fileID = id
			break
		}
		if fileID.Valid() {
			operands = append(operands, uint32(fileID))
			chunk, rest := splitSourceChunk(d.Source)
			operands = append(operands, encodeStringOperand(chunk)...)
			out = append(out, spirv.Instruction{Op: spirv.OpSource, Operands: operands})
			for rest != "" {
				var next string
				next, rest = splitSourceChunk(rest)
				out = append(out, spirv.Instruction{Op: spirv.OpSourceContinued, Operands: encodeStringOperand(next)})
			}
		} else {
			out = append(out, spirv.Instruction{Op: spirv.OpSource, Operands: operands})
		}
	}
	for _, ext := range d.SourceExtensions {
		out = append(out, spirv.Instruction{Op: spirv.OpSourceExtension, Operands: encodeStringOperand(ext)})
	}
	for _, id := range d.FileIDs.Keys() {
		name, _ := d.FileIDs.Get(id)
		if name != "" {
			out = append(out, spirv.Instruction{Op: spirv.OpString, Result: id, Operands: encodeStringOperand(name)})
		}
	}
	for _, id := range d.Names.Keys() {
		name, _ := d.Names.Get(id)
		operands := append([]uint32{uint32(id)}, encodeStringOperand(name)...)
		out = append(out, spirv.Instruction{Op: spirv.OpName, Operands: operands})
	}
	return out
}

// sourceChunkWords bounds how many words of packed source text one
// OpSource/OpSourceContinued instruction carries before the remainder
// spills into another OpSourceContinued (SUPPLEMENTED FEATURES).
const sourceChunkWords = 2000

func splitSourceChunk(s string) (chunk, rest string) {
	maxBytes := sourceChunkWords * 4
	if len(s) <= maxBytes {
		return s, ""
	}
	return s[:maxBytes], s[maxBytes:]
}

func emitDecorations(m *Module) []spirv.Instruction {
	var out []spirv.Instruction
	for _, id := range sortedIDs(m.Decorations) {
		for _, kind := range sortedDecorationKinds(m.Decorations[id]) {
			args := m.Decorations[id][kind]
			operands := append([]uint32{uint32(id), uint32(kind)}, args...)
			out = append(out, spirv.Instruction{Op: spirv.OpDecorate, Operands: operands})
		}
	}
	for _, id := range sortedIDs(m.MemberDecorations) {
		members := m.MemberDecorations[id]
		for _, member := range sortedMemberIndices(members) {
			decos := members[member]
			for _, kind := range sortedDecorationKinds(decos) {
				args := decos[kind]
				operands := append([]uint32{uint32(id), member, uint32(kind)}, args...)
				out = append(out, spirv.Instruction{Op: spirv.OpMemberDecorate, Operands: operands})
			}
		}
	}
	return out
}

func sortedIDs[V any](m map[ssa.ID]V) []ssa.ID {
	ids := make([]ssa.ID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j-1] > ids[j]; j-- {
			ids[j-1], ids[j] = ids[j], ids[j-1]
		}
	}
	return ids
}

// sortedDecorationKinds orders a decoration-kind map by numeric enum value
// so OpDecorate/OpMemberDecorate emission is deterministic regardless of Go's
// randomized map iteration order (an id with more than one decoration kind
// would otherwise emit them in a different order across runs).
func sortedDecorationKinds(m DecorationArgs) []spirv.Decoration {
	kinds := make([]spirv.Decoration, 0, len(m))
	for kind := range m {
		kinds = append(kinds, kind)
	}
	for i := 1; i < len(kinds); i++ {
		for j := i; j > 0 && kinds[j-1] > kinds[j]; j-- {
			kinds[j-1], kinds[j] = kinds[j], kinds[j-1]
		}
	}
	return kinds
}

func sortedMemberIndices(m map[uint32]DecorationArgs) []uint32 {
	members := make([]uint32, 0, len(m))
	for member := range m {
		members = append(members, member)
	}
	for i := 1; i < len(members); i++ {
		for j := i; j > 0 && members[j-1] > members[j]; j-- {
			members[j-1], members[j] = members[j], members[j-1]
		}
	}
	return members
}

func emitFunction(m *Module, fn *Function) []spirv.Instruction {
	out := []spirv.Instruction{{
		Op:         spirv.OpFunction,
		ResultType: fn.ReturnType,
		Result:     fn.ID,
		Operands:   []uint32{uint32(fn.Control), uint32(fn.TypeID)},
	}}
	var paramTypes []ssa.ID
	if inner, ok := m.Types.Get(fn.TypeID); ok {
		if ft, ok := inner.(FunctionType); ok {
			paramTypes = ft.Params
		}
	}
	for i, p := range fn.Parameters {
		var paramType ssa.ID
		if i < len(paramTypes) {
			paramType = paramTypes[i]
		}
		out = append(out, spirv.Instruction{Op: spirv.OpFunctionParameter, ResultType: paramType, Result: p})
	}
	for _, blockID := range fn.BlockOrder() {
		blk, _ := fn.Blocks.Get(blockID)
		out = append(out, spirv.Instruction{Op: spirv.OpLabel, Result: blk.ID})
		out = append(out, blk.Instructions...)
	}
	out = append(out, spirv.Instruction{Op: spirv.OpFunctionEnd})
	return out
}

func encodeStringOperand(s string) []uint32 {
	bytes := append([]byte(s), 0)
	words := make([]uint32, 0, (len(bytes)+3)/4)
	for i := 0; i < len(bytes); i += 4 {
		var w uint32
		for shift := 0; shift < 32 && i+shift/8 < len(bytes); shift += 8 {
			w |= uint32(bytes[i+shift/8]) << shift
		}
		words = append(words, w)
	}
	return words
}
