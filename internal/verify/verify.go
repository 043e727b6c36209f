// Package verify implements the structural module check that spec.md 4.4
// and 4.5 call "verify the resulting module" after a sanitizer or name
// corrector pass runs. LLVM's own llvm::verifyModule has no Go equivalent
// in github.com/llir/llvm (a pure IR data-structure/parser library, not a
// verifier), so fuzzgen checks only the invariants the two passes actually
// depend on downstream: every call instruction's target resolves to a
// function present in the module, every block is non-empty and properly
// terminated, and (when requested) the module carries exactly one defined
// function.
package verify

import (
	"fmt"

	"github.com/llir/llvm/ir"
)

// Module runs the structural checks against mod and returns the first
// violation found, or nil if mod is structurally sound.
func Module(mod *ir.Module) error {
	funcs := make(map[string]*ir.Func, len(mod.Funcs))
	for _, fn := range mod.Funcs {
		funcs[fn.Name()] = fn
	}

	for _, fn := range mod.Funcs {
		if len(fn.Blocks) == 0 {
			continue // declaration, nothing to verify structurally
		}
		if err := verifyBlocks(fn, funcs); err != nil {
			return err
		}
	}
	return nil
}

// ModuleWithSingleDefinition is Module plus spec.md 4.4's post-sanitize
// invariant: exactly one function in the module still has a body.
func ModuleWithSingleDefinition(mod *ir.Module) error {
	if err := Module(mod); err != nil {
		return err
	}
	defined := 0
	for _, fn := range mod.Funcs {
		if len(fn.Blocks) > 0 {
			defined++
		}
	}
	if defined != 1 {
		return fmt.Errorf("verify: expected exactly one defined function after sanitization, found %d", defined)
	}
	return nil
}

func verifyBlocks(fn *ir.Func, funcs map[string]*ir.Func) error {
	for _, b := range fn.Blocks {
		if b.Term == nil {
			return fmt.Errorf("verify: function %q has an unterminated block %q", fn.Name(), b.LocalIdent.Name())
		}
		for _, inst := range b.Insts {
			call, ok := inst.(*ir.InstCall)
			if !ok {
				continue
			}
			callee, ok := call.Callee.(*ir.Func)
			if !ok {
				continue // indirect call, nothing to resolve
			}
			if _, ok := funcs[callee.Name()]; !ok {
				return fmt.Errorf("verify: function %q calls %q, which is not present in the module", fn.Name(), callee.Name())
			}
		}
	}
	return nil
}
