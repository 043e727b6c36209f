package analyzer

import (
	"testing"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"

	"j5.nz/fuzzgen/internal/typedump"
)

// newDefinedFunc builds a zero-argument i32-returning function with a
// single block that just returns a constant, wiring up fn.Parent so
// fn.Name() and linkage lookups behave like a parsed module's functions.
func newDefinedFunc(mod *ir.Module, name string, linkage enum.Linkage) *ir.Func {
	fn := mod.NewFunc(name, types.I32)
	fn.Linkage = linkage
	block := fn.NewBlock("")
	block.NewRet(constant.NewInt(types.I32, 0))
	return fn
}

func TestAnalyzeNoSourceFileFails(t *testing.T) {
	mod := ir.NewModule()
	newDefinedFunc(mod, "root", enum.LinkageExternal)
	result := Analyze("m", mod, nil)
	if result.Dump.Success {
		t.Fatalf("expected failure for module with no source_filename")
	}
}

func TestAnalyzeNoRootsFails(t *testing.T) {
	mod := ir.NewModule()
	mod.SourceFilename = "test.c"
	// b is called by a, and a (never called) has internal linkage, so
	// neither qualifies as a root
	a := newDefinedFunc(mod, "a", enum.LinkageInternal)
	b := newDefinedFunc(mod, "b", enum.LinkageInternal)
	a.Blocks[0].Insts = append(a.Blocks[0].Insts, ir.NewCall(b))

	result := Analyze("m", mod, nil)
	if result.Dump.Success {
		t.Fatalf("expected failure when no candidate root exists")
	}
}

func TestAnalyzeStandaloneFunction(t *testing.T) {
	mod := ir.NewModule()
	mod.SourceFilename = "test.c"
	newDefinedFunc(mod, "root", enum.LinkageExternal)

	result := Analyze("m", mod, nil)
	if !result.Dump.Success {
		t.Fatalf("expected success, got failure")
	}
	if result.Dump.StandaloneCount != 1 {
		t.Fatalf("expected 1 standalone function, got %d", result.Dump.StandaloneCount)
	}
	if result.Dump.StandaloneFunctions[0].Name != "root" {
		t.Fatalf("expected standalone function named root, got %q", result.Dump.StandaloneFunctions[0].Name)
	}
	if len(result.FunctionGraphs) != 1 {
		t.Fatalf("expected one function graph, got %d", len(result.FunctionGraphs))
	}
}

func TestAnalyzeNonStandaloneCaller(t *testing.T) {
	mod := ir.NewModule()
	mod.SourceFilename = "test.c"
	root := newDefinedFunc(mod, "root", enum.LinkageExternal)
	callee := newDefinedFunc(mod, "callee", enum.LinkageInternal)
	root.Blocks[0].Insts = append(root.Blocks[0].Insts, ir.NewCall(callee))

	result := Analyze("m", mod, nil)
	if !result.Dump.Success {
		t.Fatalf("expected success, got failure")
	}
	// root calls callee, so root itself isn't standalone, but callee is.
	if result.Dump.StandaloneCount != 1 {
		t.Fatalf("expected 1 standalone function, got %d", result.Dump.StandaloneCount)
	}
	if result.Dump.StandaloneFunctions[0].Name != "callee" {
		t.Fatalf("expected standalone function named callee, got %q", result.Dump.StandaloneFunctions[0].Name)
	}
	if len(result.Dump.Functions) != 2 {
		t.Fatalf("expected 2 functions dumped total, got %d", len(result.Dump.Functions))
	}
}

func TestDumpStructsDeduplicatesByName(t *testing.T) {
	mod := ir.NewModule()
	st := types.NewStruct(types.I32, types.I8)
	st.TypeName = "point"
	mod.TypeDefs = append(mod.TypeDefs, st, st)

	resolver := typedump.NewResolver(typedump.DefaultDataLayout())
	structs := dumpStructs(resolver, mod)
	if len(structs) != 1 {
		t.Fatalf("expected struct definitions deduplicated to 1, got %d", len(structs))
	}
}
