// Package toolchain wraps invocation of the external C/C++ front-end and
// linker that spec.md 1 places deliberately out of core scope. It's
// grounded on perkeep.org/dev/devcam's exec.Command(bin, args...) style:
// argv slices only, never a shell string, per spec.md 9's "structured
// process-spawn primitive" mandate.
package toolchain

import (
	"context"
	"os/exec"

	"github.com/pkg/errors"
)

// Toolchain compiles a source file to LLVM IR and links a fuzz target's IR
// against a synthesized driver's IR into a runnable fuzzer binary.
type Toolchain interface {
	CompileToIR(ctx context.Context, source, outIR string) error
	LinkFuzzer(ctx context.Context, targetIR, driverIR, outBinary string) error
}

// Exec is the default Toolchain: it shells out to a configurable compiler
// binary (typically clang) with argv slices built per call.
type Exec struct {
	// CompilerPath is the compiler binary invoked for both steps, e.g.
	// "clang++". Defaults to "clang++" when empty.
	CompilerPath string
	// ExtraCompileArgs are appended after the fixed -S -emit-llvm flags,
	// e.g. include paths or -std flags the caller's build needs.
	ExtraCompileArgs []string
	// ExtraLinkArgs are appended after the fixed -fsanitize=fuzzer flag.
	ExtraLinkArgs []string
}

func (e Exec) compiler() string {
	if e.CompilerPath != "" {
		return e.CompilerPath
	}
	return "clang++"
}

// CompileToIR runs `<compiler> -O0 -emit-llvm <src> -S -o <ir>` (spec.md
// 6), producing a textual .ll file at outIR. Stdout/stderr are discarded.
func (e Exec) CompileToIR(ctx context.Context, source, outIR string) error {
	args := append([]string{"-O0", "-emit-llvm", source, "-S", "-o", outIR}, e.ExtraCompileArgs...)
	cmd := exec.CommandContext(ctx, e.compiler(), args...)
	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "compiling %s to IR", source)
	}
	return nil
}

// LinkFuzzer runs the spec.md 6 linker invocation: coverage, address
// sanitizer, and libFuzzer instrumentation baked into the final binary.
func (e Exec) LinkFuzzer(ctx context.Context, targetIR, driverIR, outBinary string) error {
	args := append([]string{
		"-O0", "-g", "-fno-omit-frame-pointer",
		"-fsanitize=address,fuzzer",
		"-fsanitize-coverage=trace-cmp,trace-gep,trace-div",
		targetIR, driverIR, "-o", outBinary,
	}, e.ExtraLinkArgs...)
	cmd := exec.CommandContext(ctx, e.compiler(), args...)
	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "linking fuzzer binary %s", outBinary)
	}
	return nil
}
