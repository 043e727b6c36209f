// Package orchestrator wires the core passes (analyzer, sanitize,
// namecorrect, harness) to the external collaborators (toolchain,
// declextract, oracle) into the end-to-end pipeline spec.md 4.7 describes:
// compile, analyze, and then sanitize/synthesize/link one fuzzer per
// standalone function. It's grounded on
// original_source/src/wrapper/project_wrapper.cc (absolute-path
// validation, per-line source-list ingestion) and src/main.cc
// (single-source vs. project-mode dispatch, result bit to exit code).
package orchestrator

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/llir/llvm/asm"

	"j5.nz/fuzzgen/internal/analyzer"
	"j5.nz/fuzzgen/internal/declextract"
	"j5.nz/fuzzgen/internal/harness"
	"j5.nz/fuzzgen/internal/logging"
	"j5.nz/fuzzgen/internal/namecorrect"
	"j5.nz/fuzzgen/internal/oracle"
	"j5.nz/fuzzgen/internal/sanitize"
	"j5.nz/fuzzgen/internal/toolchain"
	"j5.nz/fuzzgen/internal/typedump"
	"j5.nz/fuzzgen/internal/workdir"
)

// compilableExtensions is spec.md 6's input file-format surface.
var compilableExtensions = map[string]bool{
	".C": true, ".c": true, ".cc": true, ".cxx": true,
	".cpp": true, ".CPP": true, ".c++": true, ".cp": true,
}

// Orchestrator ties every collaborator together. Toolchain, Extractor, and
// Oracle are narrow interfaces (spec.md 1's deliberately-out-of-scope
// list); a nil Oracle means "always proceed."
type Orchestrator struct {
	Toolchain toolchain.Toolchain
	Extractor declextract.Extractor
	Oracle    oracle.Oracle
	Log       *logging.Logger
}

// New returns an Orchestrator wired to the default collaborators.
func New(log *logging.Logger) *Orchestrator {
	return &Orchestrator{
		Toolchain: toolchain.Exec{},
		Extractor: declextract.NewScanner(),
		Log:       log,
	}
}

// IsCompilableSource reports whether path's extension is in spec.md 6's
// recognized set of C/C++ source extensions. An already-produced .ll IR
// file is not compilable source and reports false (see isIRFile).
func IsCompilableSource(path string) bool {
	return compilableExtensions[filepath.Ext(path)]
}

func isIRFile(path string) bool {
	return filepath.Ext(path) == ".ll"
}

// RunSingleSource runs the spec.md 4.7 six-step pipeline against one
// source file. It returns false if any module-level step (IR, analysis,
// source read, result directory) fails; otherwise a failing target is
// skipped, and the result is true if at least one fuzzer was produced.
func (o *Orchestrator) RunSingleSource(ctx context.Context, sourcePath string) bool {
	run := workdir.NewRun()
	defer run.Close()

	irPath, ok := o.obtainIR(ctx, sourcePath, run)
	if !ok {
		return false
	}

	mod, err := asm.ParseFile(irPath)
	if err != nil {
		if o.Log != nil {
			o.Log.Error("orchestrator: parsing %s: %v", irPath, err)
		}
		return false
	}

	result := analyzer.Analyze(sourcePath, mod, o.Log)
	if !result.Dump.Success {
		if o.Log != nil {
			o.Log.Error("orchestrator: analysis of %s did not succeed", sourcePath)
		}
		return false
	}

	source, err := os.ReadFile(sourcePath)
	if err != nil && !isIRFile(sourcePath) {
		if o.Log != nil {
			o.Log.Error("orchestrator: reading %s: %v", sourcePath, err)
		}
		return false
	}

	stem := strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath))
	resultDir, err := workdir.ResultDirName(filepath.Dir(sourcePath), stem)
	if err != nil {
		if o.Log != nil {
			o.Log.Error("orchestrator: %v", err)
		}
		return false
	}
	if err := os.MkdirAll(resultDir, 0o755); err != nil {
		if o.Log != nil {
			o.Log.Error("orchestrator: creating result directory: %v", err)
		}
		return false
	}

	any := false
	for _, fn := range result.Dump.StandaloneFunctions {
		if len(fn.Arguments) == 0 {
			continue
		}
		if o.synthesizeTarget(ctx, irPath, fn, source, resultDir, run) {
			any = true
		}
	}
	return any
}

// obtainIR returns the module's master IR path, compiling sourcePath
// first when it isn't already IR.
func (o *Orchestrator) obtainIR(ctx context.Context, sourcePath string, run *workdir.Run) (string, bool) {
	if isIRFile(sourcePath) {
		return sourcePath, true
	}
	if !IsCompilableSource(sourcePath) {
		if o.Log != nil {
			o.Log.Error("orchestrator: %s has an unrecognized extension", sourcePath)
		}
		return "", false
	}
	irPath := sourcePath + ".ll"
	run.Register(irPath)
	if err := o.Toolchain.CompileToIR(ctx, sourcePath, irPath); err != nil {
		if o.Log != nil {
			o.Log.Error("orchestrator: %v", err)
		}
		return "", false
	}
	return irPath, true
}

// synthesizeTarget runs spec.md 4.7 step 5 for a single standalone
// function: sanitize, synthesize, compile the driver, name-correct, link.
func (o *Orchestrator) synthesizeTarget(ctx context.Context, masterIR string, fn *typedump.Function, source []byte, resultDir string, run *workdir.Run) bool {
	decl, ok := o.Extractor.Declaration(fn.Name, source)
	if !ok {
		if o.Log != nil {
			o.Log.Warn("orchestrator: no declaration extracted for %q, skipping", fn.Name)
		}
		return false
	}

	if o.Oracle != nil {
		proceed, err := o.Oracle.Classify(ctx, fn.Name)
		if err != nil || !proceed {
			if o.Log != nil {
				o.Log.Warn("orchestrator: oracle rejected %q", fn.Name)
			}
			return false
		}
	}

	targetDir, err := workdir.TargetDirName(resultDir, fn.Name)
	if err != nil {
		if o.Log != nil {
			o.Log.Error("orchestrator: %v", err)
		}
		return false
	}
	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		if o.Log != nil {
			o.Log.Error("orchestrator: %v", err)
		}
		return false
	}

	targetIR := filepath.Join(targetDir, fn.Name+".ll")
	sanitized, ok := o.sanitizeTarget(masterIR, fn, targetIR, run)
	if !ok {
		os.RemoveAll(targetDir)
		return false
	}

	driverSource, ok := harness.Synthesize(decl, fn)
	if !ok {
		if o.Log != nil {
			o.Log.Warn("orchestrator: %q is not fuzzable, skipping", fn.Name)
		}
		os.RemoveAll(targetDir)
		return false
	}

	driverPath := filepath.Join(targetDir, "fuzz_"+fn.Name+".cc")
	run.Register(driverPath)
	if err := os.WriteFile(driverPath, []byte(driverSource), 0o644); err != nil {
		if o.Log != nil {
			o.Log.Error("orchestrator: writing driver source: %v", err)
		}
		os.RemoveAll(targetDir)
		return false
	}

	driverIR := filepath.Join(targetDir, "fuzz_"+fn.Name+".ll")
	run.Register(driverIR)
	if err := o.Toolchain.CompileToIR(ctx, driverPath, driverIR); err != nil {
		if o.Log != nil {
			o.Log.Error("orchestrator: %v", err)
		}
		os.RemoveAll(targetDir)
		return false
	}

	driverMod, err := asm.ParseFile(driverIR)
	if err != nil {
		if o.Log != nil {
			o.Log.Error("orchestrator: parsing driver IR: %v", err)
		}
		os.RemoveAll(targetDir)
		return false
	}
	ncResult := namecorrect.Run(driverMod, fn.Name, o.Log)
	if !ncResult.Success {
		os.RemoveAll(targetDir)
		return false
	}
	if err := writeModule(ncResult.Module, driverIR); err != nil {
		if o.Log != nil {
			o.Log.Error("orchestrator: %v", err)
		}
		os.RemoveAll(targetDir)
		return false
	}

	fuzzerPath := filepath.Join(targetDir, "fuzzer")
	if err := o.Toolchain.LinkFuzzer(ctx, sanitized, driverIR, fuzzerPath); err != nil {
		if o.Log != nil {
			o.Log.Error("orchestrator: %v", err)
		}
		os.RemoveAll(targetDir)
		return false
	}

	if o.Log != nil {
		o.Log.Info("orchestrator: synthesized fuzzer for %q at %s", fn.Name, fuzzerPath)
	}
	return true
}

// sanitizeTarget is spec.md 4.7 step 5b: copy the master IR, run the
// sanitizer deep, retry shallow on verification failure, write the
// surviving module to targetIR. Each attempt re-parses masterIR fresh
// (spec.md 9's open question), since sanitization mutates its module
// destructively.
func (o *Orchestrator) sanitizeTarget(masterIR string, fn *typedump.Function, targetIR string, run *workdir.Run) (string, bool) {
	run.Register(targetIR)

	mod, err := asm.ParseFile(masterIR)
	if err != nil {
		if o.Log != nil {
			o.Log.Error("orchestrator: re-parsing master IR: %v", err)
		}
		return "", false
	}
	result := sanitize.Run(mod, fn, true, o.Log)
	if !result.Success {
		mod, err = asm.ParseFile(masterIR)
		if err != nil {
			if o.Log != nil {
				o.Log.Error("orchestrator: re-parsing master IR: %v", err)
			}
			return "", false
		}
		result = sanitize.Run(mod, fn, false, o.Log)
		if !result.Success {
			return "", false
		}
	}

	if err := writeModule(result.Module, targetIR); err != nil {
		if o.Log != nil {
			o.Log.Error("orchestrator: %v", err)
		}
		return "", false
	}
	return targetIR, true
}

func writeModule(mod interface{ String() string }, path string) error {
	return os.WriteFile(path, []byte(mod.String()), 0o644)
}
