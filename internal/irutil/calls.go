package irutil

import (
	"github.com/llir/llvm/ir"
)

// DirectCallees returns, in call-site order (blocks in layout order, then
// instructions within a block, the terminator last), every function fn's
// body directly calls. Indirect calls (the callee operand isn't a *ir.Func)
// are skipped entirely — they never contribute a function-graph edge or a
// cross-reference mark (spec.md 4.3 pass 1, 4.2's "extern calls don't
// create edges" note).
func DirectCallees(fn *ir.Func) []*ir.Func {
	var callees []*ir.Func
	for _, b := range fn.Blocks {
		for _, inst := range b.Insts {
			if call, ok := inst.(*ir.InstCall); ok {
				if callee, ok := call.Callee.(*ir.Func); ok {
					callees = append(callees, callee)
				}
			}
		}
		if b.Term == nil {
			continue
		}
		switch t := b.Term.(type) {
		case *ir.TermInvoke:
			if callee, ok := t.Callee.(*ir.Func); ok {
				callees = append(callees, callee)
			}
		case *ir.TermCallBr:
			if callee, ok := t.Callee.(*ir.Func); ok {
				callees = append(callees, callee)
			}
		}
	}
	return callees
}

// StoredFunctions returns every function whose address is stored into
// memory somewhere inside fn's body — spec.md 4.3 pass 1's
// "pointer-escaped" detection. A store counts when its stored value is a
// function constant, possibly behind a constant-expression chain; the
// destination operand's type is not examined, so a function stored into
// any pointer is recorded.
func StoredFunctions(fn *ir.Func) []*ir.Func {
	var fns []*ir.Func
	for _, b := range fn.Blocks {
		for _, inst := range b.Insts {
			store, ok := inst.(*ir.InstStore)
			if !ok {
				continue
			}
			if f, ok := UnwrapFunc(store.Src); ok {
				fns = append(fns, f)
			}
		}
	}
	return fns
}
