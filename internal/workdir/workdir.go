// Package workdir manages the orchestrator's per-run output directories
// and the garbage list of temporary files that spec.md 5 requires to be
// "released on orchestrator exit" regardless of which step failed.
package workdir

import (
	"fmt"
	"os"
	"path/filepath"
)

// Run tracks every temporary file registered during a single orchestrator
// invocation and deletes them all on Close, mirroring
// std/compiler/main.go's runTmpSrc/runTmpBin cleanup-on-exit variables.
type Run struct {
	paths []string
}

// NewRun returns an empty garbage list.
func NewRun() *Run {
	return &Run{}
}

// Register adds path to the garbage list. It does not create path; callers
// register a path as soon as they decide to create it, so a failure
// partway through still cleans up whatever was written.
func (r *Run) Register(path string) {
	r.paths = append(r.paths, path)
}

// Close removes every registered path, continuing past individual
// failures (a path that was never created is not an error) and returning
// the last one seen, if any.
func (r *Run) Close() error {
	var lastErr error
	for _, p := range r.paths {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			lastErr = err
		}
	}
	r.paths = nil
	return lastErr
}

// ResultDirName is spec.md 6's output directory naming rule:
// "<stem>_fuzz_results[_<8-char hash>]". It returns the bare name the
// first time it's called for a given stem in dir; if that name already
// exists on disk, it appends a deterministic collision suffix derived
// from attempt instead of renaming needlessly.
func ResultDirName(dir, stem string) (string, error) {
	base := stem + "_fuzz_results"
	return uniqueDir(dir, base)
}

// TargetDirName is spec.md 6's per-function subdirectory naming rule:
// "<fn>[_<8-char hash>]".
func TargetDirName(dir, fn string) (string, error) {
	return uniqueDir(dir, fn)
}

func uniqueDir(dir, base string) (string, error) {
	candidate := filepath.Join(dir, base)
	if _, err := os.Stat(candidate); os.IsNotExist(err) {
		return candidate, nil
	}
	for attempt := 1; attempt <= 0xffffffff; attempt++ {
		suffixed := filepath.Join(dir, fmt.Sprintf("%s_%08x", base, attempt))
		if _, err := os.Stat(suffixed); os.IsNotExist(err) {
			return suffixed, nil
		}
	}
	return "", fmt.Errorf("workdir: could not find a free name for %q under %q", base, dir)
}
