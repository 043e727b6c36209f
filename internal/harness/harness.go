// Package harness implements spec.md 4.6's harness synthesizer: turn a
// function's textual declaration and its typed descriptor into a
// compilable libFuzzer driver. It's grounded on
// original_source/src/llvm/generator/fuzzer_generator.cc for the template
// shape and on the wuffs C code generator's bytes.Buffer-based emission
// style.
package harness

import (
	"bytes"
	"fmt"
	"strings"

	"j5.nz/fuzzgen/internal/typedump"
)

const headers = "#include <cstdio>\n#include <cstdint>\n"

// Synthesize emits the full text of a compilable driver file for fn, whose
// textual declaration is declaration. It returns ok == false when fn has
// zero arguments or any argument isn't fuzzable (spec.md 4.6) — the spec's
// Option<String>, expressed as Go's (value, ok) idiom.
func Synthesize(declaration string, fn *typedump.Function) (string, bool) {
	if len(fn.Arguments) == 0 {
		return "", false
	}

	args, ok := lowerArguments(fn.Arguments)
	if !ok {
		return "", false
	}

	var body bytes.Buffer
	fmt.Fprintf(&body, "(void) %s(%s);", fn.Name, strings.Join(args, ","))

	var out bytes.Buffer
	out.WriteString(headers)
	out.WriteString(declaration)
	out.WriteString("\n\n")
	out.WriteString("extern \"C\" int LLVMFuzzerTestOneInput(const uint8_t* data, size_t size) {\n")
	out.WriteString("    ")
	out.Write(body.Bytes())
	out.WriteString("\n    return 0;\n}\n")

	return out.String(), true
}

// isFuzzable is spec.md 4.6's fuzzability predicate: at most one level of
// indirection, and only void* or char* is lowered to code. Every other
// shape in the descriptor's richer type set is recognized but rejected
// explicitly, rather than silently dropped.
func isFuzzable(arg typedump.Argument) bool {
	if arg.Type.PointerDepth != 1 {
		return false
	}
	switch arg.Type.BaseKind {
	case typedump.Void, typedump.Int8:
		return true
	default:
		return false
	}
}

func lowerArgument(arg typedump.Argument) (string, bool) {
	if !isFuzzable(arg) {
		return "", false
	}
	switch arg.Type.BaseKind {
	case typedump.Void:
		return "(void*) data", true
	case typedump.Int8:
		return "(char*) data", true
	default:
		return "", false
	}
}

func lowerArguments(args []typedump.Argument) ([]string, bool) {
	ordered := make([]typedump.Argument, len(args))
	copy(ordered, args)
	sortByIndex(ordered)

	out := make([]string, 0, len(ordered))
	for _, arg := range ordered {
		expr, ok := lowerArgument(arg)
		if !ok {
			return nil, false
		}
		out = append(out, expr)
	}
	return out, true
}

func sortByIndex(args []typedump.Argument) {
	for i := 1; i < len(args); i++ {
		for j := i; j > 0 && args[j].Index < args[j-1].Index; j-- {
			args[j], args[j-1] = args[j-1], args[j]
		}
	}
}
