package ir

import (
	"fmt"

	"github.com/gogpu/spv/spirv"
	"github.com/gogpu/spv/ssa"
)

// ValidationError is one invariant failure. Grounded on the teacher's
// ir/validate.go ValidationError/Validator accumulation pattern: a
// validation pass collects every failure it finds rather than stopping at
// the first one.
type ValidationError struct {
	Detail string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("ir: %s", e.Detail)
}

// Validator accumulates ValidationErrors across a Module.
type Validator struct {
	errors []ValidationError
}

// Errors returns every invariant failure found so far.
func (v *Validator) Errors() []ValidationError {
	return v.errors
}

func (v *Validator) fail(format string, args ...any) {
	v.errors = append(v.errors, ValidationError{Detail: fmt.Sprintf(format, args...)})
}

// Validate checks the invariants in spec.md §3 "Invariants" and returns
// every violation found (nil if the module is well-formed).
func Validate(m *Module) []ValidationError {
	v := &Validator{}
	v.checkMaxIDAndBound(m)
	v.checkIDsDefined(m)
	v.checkVariablePointerTypes(m)
	v.checkFunctionBlockShape(m)
	v.checkMemberDecorationsOnStructs(m)
	return v.errors
}

// checkMaxIDAndBound checks `max_id == max(id ∈ results)`.
func (v *Validator) checkMaxIDAndBound(m *Module) {
	var max ssa.ID
	for _, id := range m.Results.Keys() {
		if id > max {
			max = id
		}
	}
	if max != m.MaxID {
		v.fail("max_id %d does not match the highest result id %d", m.MaxID, max)
	}
}

// checkIDsDefined checks that the ids referenced in three places are defined
// somewhere: each global variable's pointee type, each function's type id,
// and the result type of every instruction in a function body. Other operand
// ids are not examined. This is a best-effort structural check, not a full
// control/data-flow analysis: it only flags ids that never appear as a
// result or a type anywhere in the module.
func (v *Validator) checkIDsDefined(m *Module) {
	defined := ssa.NewSet()
	for _, id := range m.Results.Keys() {
		defined.Add(id)
	}
	for _, id := range m.Types.Keys() {
		defined.Add(id)
	}

	check := func(context string, id ssa.ID) {
		if id.Valid() && !defined.Contains(id) {
			v.fail("%s references undefined id %%%d", context, id)
		}
	}

	for _, id := range m.GlobalVars.Keys() {
		gv, _ := m.GlobalVars.Get(id)
		check(fmt.Sprintf("global variable %%%d", id), gv.PointeeType)
	}
	for _, id := range m.Functions.Keys() {
		fn, _ := m.Functions.Get(id)
		check(fmt.Sprintf("function %%%d", id), fn.TypeID)
		for _, blockID := range fn.BlockOrder() {
			blk, _ := fn.Blocks.Get(blockID)
			for _, ins := range blk.Instructions {
				check(fmt.Sprintf("function %%%d block %%%d", id, blockID), ins.ResultType)
			}
		}
	}
}

// checkVariablePointerTypes checks `types[v.type_id]` is always a Pointer
// whose pointee matches `v.pointee_type`.
func (v *Validator) checkVariablePointerTypes(m *Module) {
	for _, id := range m.GlobalVars.Keys() {
		gv, _ := m.GlobalVars.Get(id)
		resultType, ok := m.Results.Get(id)
		if !ok {
			continue
		}
		inner, ok := m.Types.Get(resultType.ResultType)
		if !ok {
			v.fail("variable %%%d's result type %%%d is not a registered type", id, resultType.ResultType)
			continue
		}
		ptr, ok := inner.(PointerType)
		if !ok {
			v.fail("variable %%%d's type %%%d is not a Pointer", id, resultType.ResultType)
			continue
		}
		if ptr.Pointee != gv.PointeeType {
			v.fail("variable %%%d's pointer pointee %%%d does not match its declared pointee type %%%d",
				id, ptr.Pointee, gv.PointeeType)
		}
	}
}

// checkFunctionBlockShape checks that every function's block list is
// non-empty, the first instruction is the entry label (implied by Build's
// block construction), and every block ends with a terminator.
func (v *Validator) checkFunctionBlockShape(m *Module) {
	for _, id := range m.Functions.Keys() {
		fn, _ := m.Functions.Get(id)
		order := fn.BlockOrder()
		if len(order) == 0 {
			v.fail("function %%%d has no blocks", id)
			continue
		}
		for _, blockID := range order {
			blk, _ := fn.Blocks.Get(blockID)
			if len(blk.Instructions) == 0 {
				v.fail("function %%%d block %%%d has no terminator", id, blockID)
				continue
			}
			last := blk.Instructions[len(blk.Instructions)-1]
			if !isTerminator(last.Op) {
				v.fail("function %%%d block %%%d does not end with a terminator (ends with %s)",
					id, blockID, opcodeDisplayName(last.Op))
			}
		}
	}
}

func isTerminator(op spirv.Op) bool {
	switch op {
	case spirv.OpBranch, spirv.OpBranchConditional, spirv.OpSwitch,
		spirv.OpReturn, spirv.OpReturnValue, spirv.OpUnreachable, spirv.OpKill:
		return true
	default:
		return false
	}
}

// opcodeDisplayName is a small local fallback so validate.go doesn't need
// to reach into spirv's unexported mnemonic table for error messages.
func opcodeDisplayName(op spirv.Op) string {
	return fmt.Sprintf("opcode %d", op)
}

// checkMemberDecorationsOnStructs checks that member decorations only
// attach to struct-typed ids.
func (v *Validator) checkMemberDecorationsOnStructs(m *Module) {
	for _, id := range sortedIDs(m.MemberDecorations) {
		inner, ok := m.Types.Get(id)
		if !ok {
			v.fail("member decoration on %%%d, which is not a registered type", id)
			continue
		}
		if _, ok := inner.(StructType); !ok {
			v.fail("member decoration on %%%d, which is not a Struct type", id)
		}
	}
}
