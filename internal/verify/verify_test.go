package verify

import (
	"testing"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/types"
)

func TestModuleAcceptsWellFormedFunction(t *testing.T) {
	mod := ir.NewModule()
	fn := mod.NewFunc("f", types.Void)
	block := fn.NewBlock("")
	block.NewRet(nil)

	if err := Module(mod); err != nil {
		t.Fatalf("expected well-formed module to verify, got %v", err)
	}
}

func TestModuleRejectsUnterminatedBlock(t *testing.T) {
	mod := ir.NewModule()
	fn := mod.NewFunc("f", types.Void)
	fn.NewBlock("")

	if err := Module(mod); err == nil {
		t.Fatalf("expected unterminated block to fail verification")
	}
}

func TestModuleRejectsDanglingCallTarget(t *testing.T) {
	mod := ir.NewModule()
	callee := mod.NewFunc("callee", types.Void)
	fn := mod.NewFunc("f", types.Void)
	block := fn.NewBlock("")
	block.NewCall(callee)
	block.NewRet(nil)

	if err := Module(mod); err != nil {
		t.Fatalf("expected call to function still in module to verify, got %v", err)
	}

	// Remove callee from the module without updating fn's body, mirroring
	// a sanitizer bug that deletes a function still referenced elsewhere.
	mod.Funcs = []*ir.Func{fn}
	if err := Module(mod); err == nil {
		t.Fatalf("expected dangling call target to fail verification")
	}
}

func TestModuleWithSingleDefinitionCountsDefinedFunctions(t *testing.T) {
	mod := ir.NewModule()
	fn := mod.NewFunc("f", types.Void)
	block := fn.NewBlock("")
	block.NewRet(nil)
	mod.NewFunc("declared_only", types.Void) // declaration, no blocks

	if err := ModuleWithSingleDefinition(mod); err != nil {
		t.Fatalf("expected exactly one defined function to pass, got %v", err)
	}

	other := mod.NewFunc("g", types.Void)
	otherBlock := other.NewBlock("")
	otherBlock.NewRet(nil)

	if err := ModuleWithSingleDefinition(mod); err == nil {
		t.Fatalf("expected two defined functions to fail")
	}
}
