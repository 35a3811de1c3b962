// Package spv is the convenience front door over the library's pipeline
// stages: binary codec, IR construction/emission, control-flow graphs, and
// structural analysis. Each method chains the lower-level packages the same
// way a single call would; callers needing finer control should use
// spirv/ir/cfg/structural/validator directly.
package spv

import (
	"fmt"

	"github.com/gogpu/spv/cfg"
	"github.com/gogpu/spv/ir"
	"github.com/gogpu/spv/spirv"
	"github.com/gogpu/spv/structural"
	"github.com/gogpu/spv/validator"
)

// Decode parses a SPIR-V binary module into an instruction stream.
func Decode(data []byte) (spirv.Stream, error) {
	return spirv.Decode(data)
}

// Encode serializes a stream back into its binary form.
func Encode(s spirv.Stream) []byte {
	return spirv.Encode(s)
}

// Disassemble renders a stream as SPIR-V assembly text.
func Disassemble(s spirv.Stream) string {
	return spirv.Disassemble(s)
}

// Assemble parses SPIR-V assembly text into a stream.
func Assemble(text string) (spirv.Stream, error) {
	return spirv.Assemble(text)
}

// BuildIR lifts a flat instruction stream into the structured module IR.
func BuildIR(s spirv.Stream) (*ir.Module, error) {
	return ir.Build(s)
}

// EmitIR lowers a structured module back into a flat instruction stream.
func EmitIR(m *ir.Module) spirv.Stream {
	return ir.Emit(m)
}

// ValidateIR runs the IR's structural invariant checks, returning every
// violation found (nil means the module is well-formed).
func ValidateIR(m *ir.Module) []ir.ValidationError {
	return ir.Validate(m)
}

// Validate runs an assembled binary through an external validator bridge
// (spec.md §4.10). A nil error means the validator accepted the module.
func Validate(binary []byte, b *validator.Bridge) error {
	return b.Validate(binary)
}

// FunctionAnalysis is one function's derived control-flow artifacts.
type FunctionAnalysis struct {
	Function    *ir.Function
	Graph       *cfg.Graph
	Dominators  *cfg.Dominators
	ControlTree *structural.ControlTree
}

// Analyze builds the CFG, dominator tree, and control tree for every
// function in m, in declaration order. A function whose control tree cannot
// be fully reduced still contributes its Graph/Dominators; ControlTree is
// nil and the error is returned alongside the partial results gathered so
// far.
func Analyze(m *ir.Module, opts structural.Options) ([]FunctionAnalysis, error) {
	fnIDs := m.Functions.Keys()
	results := make([]FunctionAnalysis, 0, len(fnIDs))
	for _, id := range fnIDs {
		fn, _ := m.Functions.Get(id)
		fa, err := AnalyzeFunction(fn, opts)
		if err != nil {
			return results, err
		}
		results = append(results, fa)
	}
	return results, nil
}

// AnalyzeFunction runs the full CFG -> dominators -> control tree pipeline
// for a single function.
func AnalyzeFunction(fn *ir.Function, opts structural.Options) (FunctionAnalysis, error) {
	g, err := cfg.Build(fn)
	if err != nil {
		return FunctionAnalysis{Function: fn}, fmt.Errorf("spv: building CFG for function %%%d: %w", fn.ID, err)
	}
	dom, err := cfg.ComputeDominators(g)
	if err != nil {
		return FunctionAnalysis{Function: fn, Graph: g}, fmt.Errorf("spv: computing dominators for function %%%d: %w", fn.ID, err)
	}
	tree, err := structural.Reduce(g, opts)
	if err != nil {
		return FunctionAnalysis{Function: fn, Graph: g, Dominators: dom}, fmt.Errorf("spv: reducing control tree for function %%%d: %w", fn.ID, err)
	}
	return FunctionAnalysis{Function: fn, Graph: g, Dominators: dom, ControlTree: tree}, nil
}

// IsStructuredGraph reports whether g's control tree contains no
// Proper/Improper/SelfLoop regions. It reduces g with default Options and
// inspects the resulting tree; a graph that cannot be fully reduced reports
// false.
// This lives here rather than on *cfg.Graph or in package ir because cfg
// cannot import structural (structural already imports cfg) and ir cannot
// import cfg (cfg already imports ir) without a cycle; spv sits above both
// and can freely combine them.
func IsStructuredGraph(g *cfg.Graph) (bool, error) {
	tree, err := structural.Reduce(g, structural.Options{})
	if err != nil {
		var unreducible *structural.UnreducibleRegionError
		if asUnreducible(err, &unreducible) {
			return false, nil
		}
		return false, err
	}
	return structural.IsStructured(tree), nil
}

func asUnreducible(err error, target **structural.UnreducibleRegionError) bool {
	if u, ok := err.(*structural.UnreducibleRegionError); ok {
		*target = u
		return true
	}
	return false
}
