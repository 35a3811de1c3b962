package spirv

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/gogpu/spv/ssa"
)

// mnemonicToOp is opcodeNames inverted, built once from the same table so
// the assembler always recognizes exactly what the disassembler emits.
// Built lazily rather than in an init() of its own: package init order
// across files isn't specified relative to opcodeNames's own init, so the
// inversion must happen after all package-level init has completed.
var (
	mnemonicToOp     map[string]Op
	mnemonicToOpOnce sync.Once
)

func lookupMnemonic(name string) (Op, bool) {
	mnemonicToOpOnce.Do(func() {
		mnemonicToOp = make(map[string]Op, len(opcodeNames))
		for op, n := range opcodeNames {
			mnemonicToOp[n] = op
		}
	})
	op, ok := mnemonicToOp[name]
	return op, ok
}

// enumValue is enumName's inverse: look up a symbolic name within a table,
// falling back to parsing it as a bare integer (spec.md §6, so that a
// disassembly containing an unrecognized numeric enum value re-assembles
// without loss).
func enumValue(tableName, text string) (uint32, error) {
	if table, ok := enumNames[tableName]; ok {
		for value, name := range table {
			if name == text {
				return value, nil
			}
		}
	}
	n, err := strconv.ParseUint(text, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("spirv: assemble: %q is not a known %s name or an integer", text, tableName)
	}
	return uint32(n), nil
}

// Assemble parses the textual form produced by Disassemble back into a
// Stream. It is not a full independent grammar for hand-written assembly:
// it accepts exactly the syntax Disassemble emits (spec.md §6 "textual
// form ... need not support arbitrary hand-written syntax, only round-trip
// its own output"). IDs are preserved as written, so
// Assemble(Disassemble(s)) reproduces s up to instruction order within a
// line, never up to a renumbering of ids.
func Assemble(text string) (Stream, error) {
	lines := strings.Split(text, "\n")
	var s Stream
	headerSeen := map[string]bool{}

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ";") {
			if err := parseHeaderComment(line, &s, headerSeen); err != nil {
				return Stream{}, err
			}
			continue
		}
		ins, err := parseInstructionLine(line)
		if err != nil {
			return Stream{}, err
		}
		s.Instructions = append(s.Instructions, ins)
	}
	return s, nil
}

func parseHeaderComment(line string, s *Stream, seen map[string]bool) error {
	line = strings.TrimSpace(strings.TrimPrefix(line, ";"))
	key, value, ok := strings.Cut(line, ":")
	if !ok {
		return nil
	}
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)
	switch key {
	case "Version":
		major, minor, ok := strings.Cut(value, ".")
		if !ok {
			return fmt.Errorf("spirv: assemble: malformed version %q", value)
		}
		maj, err := strconv.ParseUint(major, 10, 8)
		if err != nil {
			return fmt.Errorf("spirv: assemble: malformed version %q: %w", value, err)
		}
		min, err := strconv.ParseUint(minor, 10, 8)
		if err != nil {
			return fmt.Errorf("spirv: assemble: malformed version %q: %w", value, err)
		}
		s.Header.Version = Version{Major: uint8(maj), Minor: uint8(min)}
	case "Generator":
		n, err := strconv.ParseUint(value, 10, 32)
		if err != nil {
			return fmt.Errorf("spirv: assemble: malformed generator %q: %w", value, err)
		}
		s.Header.GeneratorID = uint32(n)
	case "Bound":
		n, err := strconv.ParseUint(value, 10, 32)
		if err != nil {
			return fmt.Errorf("spirv: assemble: malformed bound %q: %w", value, err)
		}
		s.Header.Bound = ssa.ID(n)
	case "Schema":
		n, err := strconv.ParseUint(value, 10, 32)
		if err != nil {
			return fmt.Errorf("spirv: assemble: malformed schema %q: %w", value, err)
		}
		s.Schema = uint32(n)
	}
	seen[key] = true
	return nil
}

// parseInstructionLine parses one `[%<result> = ]OpName operand...` line.
func parseInstructionLine(line string) (Instruction, error) {
	var result ssa.ID
	hasResult := false
	if strings.HasPrefix(line, "%") {
		lhs, rhs, ok := strings.Cut(line, "=")
		if !ok {
			return Instruction{}, fmt.Errorf("spirv: assemble: malformed result assignment: %q", line)
		}
		id, err := parseIDToken(strings.TrimSpace(lhs))
		if err != nil {
			return Instruction{}, err
		}
		result = id
		hasResult = true
		line = strings.TrimSpace(rhs)
	}

	tokens := tokenizeInstruction(line)
	if len(tokens) == 0 {
		return Instruction{}, fmt.Errorf("spirv: assemble: empty instruction line")
	}
	op, ok := lookupMnemonic(tokens[0])
	if !ok {
		return Instruction{}, fmt.Errorf("spirv: assemble: unknown mnemonic %q", tokens[0])
	}
	info := Lookup(op)
	ins := Instruction{Op: op}
	if hasResult {
		ins.Result = result
	}
	idx := 1
	if info.HasResultType {
		if idx >= len(tokens) {
			return Instruction{}, fmt.Errorf("spirv: assemble: %s missing result type operand", tokens[0])
		}
		id, err := parseIDToken(tokens[idx])
		if err != nil {
			return Instruction{}, err
		}
		ins.ResultType = id
		idx++
	}

	specs := info.Operands
	si := 0
	for idx < len(tokens) {
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
			id, err := parseIDToken(tokens[idx])
			if err != nil {
				return Instruction{}, err
			}
			ins.Operands = append(ins.Operands, uint32(id))
			idx++
		case KindEnum:
			v, err := enumValue(spec.EnumName, tokens[idx])
			if err != nil {
				return Instruction{}, err
			}
			ins.Operands = append(ins.Operands, v)
			idx++
		case KindLiteralString:
			str, err := strconv.Unquote(tokens[idx])
			if err != nil {
				str = tokens[idx]
			}
			ins.Operands = append(ins.Operands, encodeLiteralString(str)...)
			idx++
		default:
			n, err := strconv.ParseUint(tokens[idx], 10, 32)
			if err != nil {
				return Instruction{}, fmt.Errorf("spirv: assemble: %q is not a literal integer", tokens[idx])
			}
			ins.Operands = append(ins.Operands, uint32(n))
			idx++
		}
	}
	return ins, nil
}

func parseIDToken(tok string) (ssa.ID, error) {
	if !strings.HasPrefix(tok, "%") {
		return 0, fmt.Errorf("spirv: assemble: expected id token, got %q", tok)
	}
	n, err := strconv.ParseUint(tok[1:], 10, 32)
	if err != nil {
		return 0, fmt.Errorf("spirv: assemble: malformed id %q: %w", tok, err)
	}
	return ssa.ID(n), nil
}

// tokenizeInstruction splits on whitespace but keeps double-quoted literal
// strings (which may contain spaces) as single tokens.
func tokenizeInstruction(line string) []string {
	var tokens []string
	var cur strings.Builder
	inQuote := false
	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"':
			cur.WriteByte(c)
			inQuote = !inQuote
		case c == ' ' && !inQuote:
			flush()
		default:
			cur.WriteByte(c)
		}
	}
	flush()
	return tokens
}
