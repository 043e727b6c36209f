package irutil

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/value"
)

// InstructionOperands returns the operands of inst that can carry a global
// or function reference through to a use. It does not enumerate every LLVM
// instruction kind exhaustively — only the ones relevant to the
// global/function reference detection the sanitizer and analyzer need
// (spec.md 4.3's global-filter, 4.4's native-global check).
func InstructionOperands(inst ir.Instruction) []value.Value {
	switch t := inst.(type) {
	case *ir.InstLoad:
		return []value.Value{t.Src}
	case *ir.InstStore:
		return []value.Value{t.Src, t.Dst}
	case *ir.InstGetElementPtr:
		ops := make([]value.Value, 0, 1+len(t.Indices))
		ops = append(ops, t.Src)
		ops = append(ops, t.Indices...)
		return ops
	case *ir.InstCall:
		ops := make([]value.Value, 0, 1+len(t.Args))
		ops = append(ops, t.Callee)
		ops = append(ops, t.Args...)
		return ops
	case *ir.InstBitCast:
		return []value.Value{t.From}
	case *ir.InstPtrToInt:
		return []value.Value{t.From}
	case *ir.InstIntToPtr:
		return []value.Value{t.From}
	case *ir.InstICmp:
		return []value.Value{t.X, t.Y}
	case *ir.InstFCmp:
		return []value.Value{t.X, t.Y}
	case *ir.InstPhi:
		ops := make([]value.Value, 0, len(t.Incs))
		for _, inc := range t.Incs {
			ops = append(ops, inc.X)
		}
		return ops
	case *ir.InstSelect:
		return []value.Value{t.Cond, t.X, t.Y}
	default:
		return nil
	}
}

// TerminatorOperands is InstructionOperands' counterpart for terminators.
func TerminatorOperands(term ir.Terminator) []value.Value {
	switch t := term.(type) {
	case *ir.TermRet:
		if t.X == nil {
			return nil
		}
		return []value.Value{t.X}
	case *ir.TermCondBr:
		return []value.Value{t.Cond}
	case *ir.TermSwitch:
		return []value.Value{t.X}
	case *ir.TermInvoke:
		ops := make([]value.Value, 0, 1+len(t.Args))
		ops = append(ops, t.Callee)
		ops = append(ops, t.Args...)
		return ops
	case *ir.TermCallBr:
		ops := make([]value.Value, 0, 1+len(t.Args))
		ops = append(ops, t.Callee)
		ops = append(ops, t.Args...)
		return ops
	default:
		return nil
	}
}

// FunctionReferencesGlobal reports whether any instruction (or terminator)
// in fn's body references global, directly or through a constant-expression
// chain (bitcast/GEP/ptrtoint/inttoptr over the global).
func FunctionReferencesGlobal(fn *ir.Func, global *ir.Global) bool {
	for _, b := range fn.Blocks {
		for _, inst := range b.Insts {
			for _, op := range InstructionOperands(inst) {
				if UnwrapGlobal(op, global) {
					return true
				}
			}
		}
		if b.Term != nil {
			for _, op := range TerminatorOperands(b.Term) {
				if UnwrapGlobal(op, global) {
					return true
				}
			}
		}
	}
	return false
}
