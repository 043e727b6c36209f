package namecorrect

import (
	"testing"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/types"
)

func TestRunRenamesMangledDeclarationAndCallers(t *testing.T) {
	mod := ir.NewModule()
	mangled := mod.NewFunc("_Z6targetv", types.Void) // declaration

	caller := mod.NewFunc("caller", types.Void)
	block := caller.NewBlock("")
	call := block.NewCall(mangled)
	block.NewRet(nil)

	result := Run(mod, "target", nil)
	if !result.Success {
		t.Fatalf("expected namecorrect to succeed")
	}
	if mangled.Name() != "target" {
		t.Fatalf("expected mangled declaration renamed to %q, got %q", "target", mangled.Name())
	}
	if callee, ok := call.Callee.(*ir.Func); !ok || callee.Name() != "target" {
		t.Fatalf("expected the caller's call to reference %q, got %v", "target", call.Callee)
	}
}

func TestRunIsIdempotent(t *testing.T) {
	mod := ir.NewModule()
	mod.NewFunc("target", types.Void) // already corrected

	result := Run(mod, "target", nil)
	if !result.Success {
		t.Fatalf("expected a module already carrying the unmangled name to succeed")
	}
}

func TestRunFailsWhenNoMangledDeclarationFound(t *testing.T) {
	mod := ir.NewModule()
	mod.NewFunc("unrelated", types.Void)

	result := Run(mod, "target", nil)
	if result.Success {
		t.Fatalf("expected namecorrect to fail when no matching declaration exists")
	}
}
