package irutil

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/value"
)

// Unwrap follows a chain of constant expressions (bitcast, GEP, ptrtoint,
// inttoptr) down to the value they ultimately operate on. It's the operand-
// side mirror of the original implementation's user-side DigIntoConstant:
// that walks a global's users looking for an instruction at the far end of
// a constant-expression chain; fuzzgen instead walks an instruction's
// operand down to its root value, since github.com/llir/llvm keeps operand
// (def-use forward) links but not use-lists (def-use backward links). Both
// answer the same question — "does this instruction reference that value,
// possibly through a bitcast/GEP wrapper" — from opposite directions.
func Unwrap(v value.Value) value.Value {
	for {
		switch x := v.(type) {
		case *constant.ExprBitCast:
			v = x.From
		case *constant.ExprGetElementPtr:
			v = x.Src
		case *constant.ExprPtrToInt:
			v = x.From
		case *constant.ExprIntToPtr:
			v = x.From
		case *constant.ExprAddrSpaceCast:
			v = x.From
		default:
			return v
		}
	}
}

// UnwrapGlobal reports whether v, after unwrapping any constant-expression
// chain, is global.
func UnwrapGlobal(v value.Value, global *ir.Global) bool {
	g, ok := Unwrap(v).(*ir.Global)
	return ok && g == global
}

// UnwrapFunc reports whether v, after unwrapping any constant-expression
// chain, is a function constant, and returns it.
func UnwrapFunc(v value.Value) (*ir.Func, bool) {
	f, ok := Unwrap(v).(*ir.Func)
	return f, ok
}
