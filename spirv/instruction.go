package spirv

import "github.com/gogpu/spv/ssa"

// Instruction is one decoded SPIR-V instruction: an opcode plus its operand
// words, with the result-type/result id slots split out when the grammar
// says the opcode carries them (spec.md §3 "Instruction").
type Instruction struct {
	Op Op
	// ResultType is the operand naming this instruction's type, present iff
	// Lookup(Op).HasResultType.
	ResultType ssa.ID
	// Result is the id this instruction defines, present iff
	// Lookup(Op).HasResult.
	Result ssa.ID
	// Operands holds every word after the opcode word, minus whichever of
	// ResultType/Result were split out, in original order. Literal-string
	// operands stay in their packed word form here; Words() writes them back
	// unchanged.
	Operands []uint32
}

// WordCount returns the instruction's length in words, including the
// opcode word itself, as would be packed into the high 16 bits of the first
// word (spec.md §4.1).
func (ins Instruction) WordCount() int {
	n := 1 + len(ins.Operands)
	if Lookup(ins.Op).HasResultType {
		n++
	}
	// Result is counted even when 0 would be invalid, because HasResult
	// tells us whether the slot exists in the encoded form, not whether the
	// value decoded into it is itself valid.
	if Lookup(ins.Op).HasResult {
		n++
	}
	return n
}

// firstWord packs the opcode and word count into the leading header word of
// an instruction, matching SPIR-V's (word_count<<16)|opcode layout
// (spec.md §4.1).
func firstWord(op Op, wordCount int) uint32 {
	return uint32(wordCount)<<16 | uint32(op)
}

// Words serializes the instruction back to its flat word-stream form,
// including the leading (word_count<<16)|opcode header word.
func (ins Instruction) Words() []uint32 {
	info := Lookup(ins.Op)
	out := make([]uint32, 0, ins.WordCount())
	out = append(out, 0) // placeholder for header, fixed up below
	if info.HasResultType {
		out = append(out, uint32(ins.ResultType))
	}
	if info.HasResult {
		out = append(out, uint32(ins.Result))
	}
	out = append(out, ins.Operands...)
	out[0] = firstWord(ins.Op, len(out))
	return out
}

// decodeInstruction reads one instruction starting at words[offset], which
// must be the header word. It returns the instruction and the number of words
// consumed.
func decodeInstruction(words []uint32, offset int) (Instruction, int, error) {
	header := words[offset]
	wordCount := int(header >> 16)
	op := Op(header & 0xffff)
	if wordCount < 1 {
		return Instruction{}, 0, &TruncatedStreamError{Offset: offset, WordCount: wordCount, Remaining: len(words) - offset}
	}
	if offset+wordCount > len(words) {
		return Instruction{}, 0, &TruncatedStreamError{Offset: offset, WordCount: wordCount, Remaining: len(words) - offset}
	}
	body := words[offset+1 : offset+wordCount]
	info := Lookup(op)
	ins := Instruction{Op: op}
	i := 0
	if info.HasResultType {
		if i >= len(body) {
			return Instruction{}, 0, &TruncatedStreamError{Offset: offset, WordCount: wordCount, Remaining: len(words) - offset}
		}
		ins.ResultType = ssa.ID(body[i])
		i++
	}
	if info.HasResult {
		if i >= len(body) {
			return Instruction{}, 0, &TruncatedStreamError{Offset: offset, WordCount: wordCount, Remaining: len(words) - offset}
		}
		ins.Result = ssa.ID(body[i])
		i++
	}
	ins.Operands = append([]uint32(nil), body[i:]...)
	return ins, wordCount, nil
}

// Class reports the instruction's grammar classification tag.
func (ins Instruction) Class() OpClass {
	return Lookup(ins.Op).Class
}

// decodeLiteralString reads a null-terminated, little-endian word-packed
// UTF-8 string starting at operands[start], returning the string and the
// number of words it occupied (spec.md §4.1: strings are packed 4 bytes per
// word, null-terminated, and the instruction is padded to a whole word).
func decodeLiteralString(operands []uint32, start int) (string, int) {
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

// encodeLiteralString packs s into little-endian words, null-terminated and
// padded to a whole word, matching decodeLiteralString's layout.
func encodeLiteralString(s string) []uint32 {
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
