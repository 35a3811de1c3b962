package spirv

import "fmt"

// MalformedHeaderError is returned when a word stream's header does not
// begin with the canonical or byte-swapped magic number (spec.md §4.1, §7).
type MalformedHeaderError struct {
	Got uint32
}

func (e *MalformedHeaderError) Error() string {
	return fmt.Sprintf("spirv: malformed header: magic word 0x%08x is neither %#08x nor its byte-swap", e.Got, MagicNumber)
}

// TruncatedStreamError is returned when an instruction's declared word
// count exceeds the words remaining in the stream (spec.md §4.1, §7).
type TruncatedStreamError struct {
	Offset    int
	WordCount int
	Remaining int
}

func (e *TruncatedStreamError) Error() string {
	return fmt.Sprintf("spirv: truncated stream at word offset %d: instruction declares %d words, only %d remain",
		e.Offset, e.WordCount, e.Remaining)
}

// UnknownOpcodeError describes an opcode with no grammar entry (spec.md §7).
// Nothing in this package returns it: Lookup falls back to a raw-operand
// shape for unknown opcodes instead of failing.
type UnknownOpcodeError struct {
	Op Op
}

func (e *UnknownOpcodeError) Error() string {
	return fmt.Sprintf("spirv: unknown opcode %d", e.Op)
}

// UnknownOperandKindError describes an enum operand value with no entry in
// its symbolic rendering table (spec.md §7). Nothing in this package returns
// it: the disassembler renders such values as plain decimal numbers.
type UnknownOperandKindError struct {
	Kind  OperandKind
	Value uint32
}

func (e *UnknownOperandKindError) Error() string {
	return fmt.Sprintf("spirv: unknown value %d for operand kind %s", e.Value, e.Kind)
}
