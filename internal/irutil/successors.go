// Package irutil adds the two things github.com/llir/llvm's pure IR data
// structures don't provide out of the box: terminator-successor discovery
// and use queries (whether a function's instructions call a function or
// reference a global), answered by walking operands forward on each call
// rather than from a stored index; both are needed by the CFG builder, the
// module analyzer, and the sanitizer.
package irutil

import (
	"github.com/llir/llvm/ir"
)

// Successors returns the blocks a terminator can transfer control to, in
// the terminator's own operand order. This is the block-graph edge source
// (spec.md 4.2): "inspect its terminator's successors and add edges."
func Successors(term ir.Terminator) []*ir.Block {
	switch t := term.(type) {
	case *ir.TermRet:
		return nil
	case *ir.TermBr:
		return []*ir.Block{t.Target}
	case *ir.TermCondBr:
		return []*ir.Block{t.TargetTrue, t.TargetFalse}
	case *ir.TermSwitch:
		succs := make([]*ir.Block, 0, len(t.Cases)+1)
		succs = append(succs, t.TargetDefault)
		for _, c := range t.Cases {
			succs = append(succs, c.Target)
		}
		return succs
	case *ir.TermIndirectBr:
		return append([]*ir.Block{}, t.ValidTargets...)
	case *ir.TermInvoke:
		return []*ir.Block{t.Normal, t.Exception}
	case *ir.TermCallBr:
		succs := make([]*ir.Block, 0, len(t.OtherTargets)+1)
		succs = append(succs, t.NormalTarget)
		succs = append(succs, t.OtherTargets...)
		return succs
	case *ir.TermCatchSwitch:
		succs := append([]*ir.Block{}, t.Handlers...)
		if t.DefaultUnwindTarget != nil {
			succs = append(succs, t.DefaultUnwindTarget)
		}
		return succs
	case *ir.TermCatchRet:
		return []*ir.Block{t.Target}
	case *ir.TermCleanupRet:
		if t.UnwindTarget != nil {
			return []*ir.Block{t.UnwindTarget}
		}
		return nil
	case *ir.TermUnreachable:
		return nil
	case *ir.TermResume:
		return nil
	default:
		return nil
	}
}
