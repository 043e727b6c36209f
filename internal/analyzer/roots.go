package analyzer

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/enum"

	"j5.nz/fuzzgen/internal/irutil"
)

// candidateRoots implements spec.md 4.3's two-pass root discovery.
//
// Pass 1 walks every function's instructions, marking (a) every function
// that is the direct callee of a call instruction somewhere in the module
// ("cross-referenced by another function") and (b) every function whose
// address escapes through a store ("pointer-escaped").
//
// Pass 2 asks, for every function, whether it is referenced exactly once in
// the module-level call graph. The original analyzer (analysis.cc,
// GetRootFunctions) answers this with LLVM's llvm::CallGraph, whose
// CallGraphNode implicitly adds one reference from a synthetic "external
// calling node" to every externally-linked function (since such a function
// could always be invoked from outside the module) — so "exactly one
// reference" reduces, for a function with zero internal call sites, to
// "has external linkage." github.com/llir/llvm keeps no such call-graph
// object, so fuzzgen computes the same answer directly: a root candidate is
// a defined, externally-linked function that pass 1 recorded zero direct
// internal calls to, was not cross-referenced, and did not escape as a
// function pointer.
func candidateRoots(mod *ir.Module) []*ir.Func {
	crossReferenced := make(map[*ir.Func]bool)
	pointerEscaped := make(map[*ir.Func]bool)
	internalCallCount := make(map[*ir.Func]int)

	for _, fn := range mod.Funcs {
		for _, callee := range irutil.DirectCallees(fn) {
			crossReferenced[callee] = true
			internalCallCount[callee]++
		}
		for _, f := range irutil.StoredFunctions(fn) {
			pointerEscaped[f] = true
		}
	}

	var roots []*ir.Func
	for _, fn := range mod.Funcs {
		if internalCallCount[fn] != 0 {
			continue
		}
		if len(fn.Blocks) == 0 {
			continue // no definition
		}
		// A definition with no linkage keyword (LinkageNone) has LLVM's
		// default external linkage.
		if fn.Linkage != enum.LinkageExternal && fn.Linkage != enum.LinkageNone {
			continue
		}
		if crossReferenced[fn] {
			continue
		}
		if pointerEscaped[fn] {
			continue
		}
		roots = append(roots, fn)
	}
	return roots
}
