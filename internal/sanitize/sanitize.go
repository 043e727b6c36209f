// Package sanitize implements spec.md 4.4's sanitizer pass: strip every
// function and (on a deep pass) every global the target function doesn't
// need, promote the target to external linkage if needed, and verify the
// result. It's grounded on
// original_source/src/llvm/generator/sanitizer.cc.
package sanitize

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/enum"

	"j5.nz/fuzzgen/internal/irutil"
	"j5.nz/fuzzgen/internal/logging"
	"j5.nz/fuzzgen/internal/typedump"
	"j5.nz/fuzzgen/internal/verify"
)

// Result mirrors sanitizer.cc's runOnModule return shape: a success bit
// plus the sanitized module, since a failed verification still leaves a
// (discarded) module around for debugging.
type Result struct {
	Success bool
	Module  *ir.Module
}

// Run sanitizes mod in place for the function named fn.Name, the
// function spec.md 4.3 singled out as this target's Function descriptor. deep additionally
// strips globals the target doesn't reference (spec.md 4.4's "deep"
// parameter) — a shallow retry after a failed deep pass re-parses from the
// caller's master copy rather than reusing this mutated module, since
// sanitization mutates mod destructively.
func Run(mod *ir.Module, fn *typedump.Function, deep bool, log *logging.Logger) Result {
	target := findFunction(mod, fn.Name)
	if target == nil {
		if log != nil {
			log.Error("sanitize: target function %q not found in module", fn.Name)
		}
		return Result{Success: false, Module: mod}
	}

	if deep {
		removeGlobals(mod, findGlobalsToDelete(mod, target))
	}
	removeFunctions(mod, findFunctionsToDelete(mod, target))
	resolveLinkage(target, fn)

	if err := verify.ModuleWithSingleDefinition(mod); err != nil {
		if log != nil {
			log.Error("sanitize: %v", err)
		}
		return Result{Success: false, Module: mod}
	}
	return Result{Success: true, Module: mod}
}

func findFunction(mod *ir.Module, name string) *ir.Func {
	for _, fn := range mod.Funcs {
		if fn.Name() == name {
			return fn
		}
	}
	return nil
}

// findFunctionsToDelete is sanitizer.cc's FindFunctionsToDelete: every
// function other than target is deleted by default, unless it's a
// declaration referenced from inside target's own body (a "native"
// declaration the target still calls — keeping it lets the target link).
func findFunctionsToDelete(mod *ir.Module, target *ir.Func) []*ir.Func {
	var dumpster []*ir.Func
	for _, fn := range mod.Funcs {
		if fn == target {
			continue
		}
		if isDeclarationNativeToTarget(fn, target) {
			continue
		}
		dumpster = append(dumpster, fn)
	}
	return dumpster
}

func isDeclarationNativeToTarget(fn, target *ir.Func) bool {
	if len(fn.Blocks) > 0 {
		return false // not a declaration
	}
	for _, callee := range irutil.DirectCallees(target) {
		if callee == fn {
			return true
		}
	}
	return false
}

// findGlobalsToDelete is sanitizer.cc's FindGlobalsToDelete/IsNative: a
// global survives a deep sanitize only if target's body references it,
// directly or through a constant-expression chain. Where the original
// walks the global's use-list backward (IsNative/DigIntoConstant),
// fuzzgen walks target's operands forward — see irutil.FunctionReferencesGlobal.
func findGlobalsToDelete(mod *ir.Module, target *ir.Func) []*ir.Global {
	var dumpster []*ir.Global
	for _, g := range mod.Globals {
		if !irutil.FunctionReferencesGlobal(target, g) {
			dumpster = append(dumpster, g)
		}
	}
	return dumpster
}

func removeFunctions(mod *ir.Module, dumpster []*ir.Func) {
	if len(dumpster) == 0 {
		return
	}
	dead := make(map[*ir.Func]bool, len(dumpster))
	for _, fn := range dumpster {
		dead[fn] = true
	}
	kept := mod.Funcs[:0]
	for _, fn := range mod.Funcs {
		if !dead[fn] {
			kept = append(kept, fn)
		}
	}
	mod.Funcs = kept
}

func removeGlobals(mod *ir.Module, dumpster []*ir.Global) {
	if len(dumpster) == 0 {
		return
	}
	dead := make(map[*ir.Global]bool, len(dumpster))
	for _, g := range dumpster {
		dead[g] = true
	}
	kept := mod.Globals[:0]
	for _, g := range mod.Globals {
		if !dead[g] {
			kept = append(kept, g)
		}
	}
	mod.Globals = kept
}

// resolveLinkage is sanitizer.cc's ResolveLinkage: a target recorded with
// internal linkage is promoted to external, since a fuzz driver in another
// translation unit needs to call it.
func resolveLinkage(target *ir.Func, fn *typedump.Function) {
	if fn.Linkage != typedump.LinkageInternal {
		return
	}
	target.Linkage = enum.LinkageExternal
}
