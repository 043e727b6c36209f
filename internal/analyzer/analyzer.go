package analyzer

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"

	"j5.nz/fuzzgen/internal/logging"
	"j5.nz/fuzzgen/internal/typedump"
)

// Analyze runs the dump sequence from spec.md 4.3: (1) legitimacy check,
// (2) build graphs, (3) compute the standalone set, (4) emit
// FunctionDescriptors for every function discovered in any graph
// (deduplicated), (5) extract the standalone subset, (6) emit
// StructDescriptors. Failure at any step sets Success=false and returns
// immediately — analysis failure is reported via the bit, never a panic or
// error (spec.md 4.3, 7).
//
// name is the module's identifying name (spec.md's ModuleDump.name) — the
// path or label the caller knows the module by; github.com/llir/llvm's
// *ir.Module only carries the source_filename directive, which is a
// separate field (ModuleDump.source_file).
func Analyze(name string, mod *ir.Module, log *logging.Logger) *Result {
	dump := &ModuleDump{
		Name:               name,
		SourceFile:         mod.SourceFilename,
		FunctionCountTotal: uint64(len(mod.Funcs)),
	}
	result := &Result{Dump: dump}

	if log != nil {
		log.Info("analyzing module %q (source %q, %d functions)", name, mod.SourceFilename, dump.FunctionCountTotal)
	}

	if !isLegitModule(dump.SourceFile, dump.FunctionCountTotal) {
		if log != nil {
			log.Error("module %q failed the legitimacy precondition", name)
		}
		return result
	}

	roots := candidateRoots(mod)
	if len(roots) == 0 {
		if log != nil {
			log.Error("no root function found in %q", name)
		}
		return result
	}
	if log != nil {
		log.Info("%d root function(s) found in %q", len(roots), name)
	}

	graphs, blockGraphs := buildGraphs(mod, roots)
	result.FunctionGraphs = graphs
	result.BlockGraphs = blockGraphs

	standalone := standaloneSet(mod, graphs)
	if len(standalone) == 0 {
		if log != nil {
			log.Warn("no standalone functions found in %q", name)
		}
		return result
	}

	layout := typedump.DefaultDataLayout()
	if mod.DataLayout != "" {
		layout = typedump.ParseDataLayout(mod.DataLayout)
	}
	resolver := typedump.NewResolver(layout)

	seen := make(map[*ir.Func]bool)
	var functions []*typedump.Function
	for _, fg := range graphs {
		for i := 0; i < fg.Len(); i++ {
			fn := fg.Vertex(i)
			if seen[fn] {
				continue
			}
			seen[fn] = true
			desc := dumpFunction(resolver, fn)
			desc.IsStandalone = standalone[fn]
			functions = append(functions, desc)
		}
	}

	var standaloneDescs []*typedump.Function
	for _, desc := range functions {
		if desc.IsStandalone {
			standaloneDescs = append(standaloneDescs, desc)
		}
	}

	dump.Functions = functions
	dump.StandaloneFunctions = standaloneDescs
	dump.StandaloneCount = uint64(len(standaloneDescs))
	dump.Structs = dumpStructs(resolver, mod)
	dump.Success = true

	if log != nil {
		log.Info("module %q: %d standalone function(s) of %d total", name, dump.StandaloneCount, dump.FunctionCountTotal)
	}
	return result
}

// isLegitModule is spec.md 4.3's module legitimacy precondition.
func isLegitModule(sourceFile string, functionCount uint64) bool {
	return sourceFile != "" && functionCount > 0
}

func dumpFunction(r *typedump.Resolver, fn *ir.Func) *typedump.Function {
	desc := &typedump.Function{
		Name:           fn.Name(),
		ArgumentsFixed: !fn.Sig.Variadic,
		IsLocal:        len(fn.Blocks) > 0,
		Linkage:        linkageOf(fn.Linkage),
	}
	desc.ReturnType = r.Resolve(fn.Sig.RetType)
	for i, p := range fn.Params {
		desc.Arguments = append(desc.Arguments, typedump.Argument{
			Index: uint16(i),
			Type:  r.Resolve(p.Typ),
		})
	}
	return desc
}

func linkageOf(l enum.Linkage) typedump.Linkage {
	switch l {
	case enum.LinkageExternal:
		return typedump.LinkageExternal
	case enum.LinkageInternal:
		return typedump.LinkageInternal
	default:
		return typedump.LinkageUnknown
	}
}

// dumpStructs emits one StructDescriptor per named struct type definition,
// in module declaration order, deduplicated by name — spec.md 4.1's
// "module-level sweep dumps struct definitions once in declaration order."
// github.com/llir/llvm records exactly this list as *ir.Module.TypeDefs.
func dumpStructs(r *typedump.Resolver, mod *ir.Module) []typedump.Descriptor {
	seen := make(map[string]bool)
	var out []typedump.Descriptor
	for _, t := range mod.TypeDefs {
		st, ok := t.(*types.StructType)
		if !ok {
			continue
		}
		if st.TypeName != "" {
			if seen[st.TypeName] {
				continue
			}
			seen[st.TypeName] = true
		}
		out = append(out, r.ResolveStructDefinition(st))
	}
	return out
}
