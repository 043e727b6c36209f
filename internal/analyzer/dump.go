// Package analyzer walks an LLVM IR module (as modeled by
// github.com/llir/llvm) the way spec.md 4.3 describes: discover root
// functions, build one function-level CFG per root and one block-level CFG
// per defined function reached from it, compute the standalone-function
// set, and emit the module's typed dump. It's grounded directly on
// original_source/src/llvm/analysis/analysis.cc.
package analyzer

import (
	"j5.nz/fuzzgen/internal/cfg"
	"j5.nz/fuzzgen/internal/typedump"

	"github.com/llir/llvm/ir"
)

// ModuleDump is the spec.md 3 ModuleDump: it owns its descriptors, and
// StandaloneFunctions is a subset of Functions (shared pointers, not
// copies).
type ModuleDump struct {
	Success             bool
	Name                string
	SourceFile          string
	Structs             []typedump.Descriptor
	Functions           []*typedump.Function
	StandaloneFunctions []*typedump.Function
	FunctionCountTotal  uint64
	StandaloneCount     uint64
}

// Result bundles a ModuleDump with the CFG artifacts the traversal built
// along the way. The graphs aren't part of the spec's ModuleDump (which is
// deliberately flat — see spec.md 3); they are returned alongside it for
// callers that want to inspect them. The orchestrator reads only Dump.
type Result struct {
	Dump           *ModuleDump
	FunctionGraphs []*cfg.FunctionGraph
	BlockGraphs    map[*ir.Func]*cfg.BlockGraph
}
