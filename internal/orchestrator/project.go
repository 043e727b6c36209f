package orchestrator

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
)

// RunProject runs RunSingleSource for every line of sourcesListPath that
// names an absolute, existing, recognizably-compilable source file or .ll
// IR file. It's
// grounded on project_wrapper.cc's InitializeState: a bad or unrecognized
// line is logged and skipped, never a hard error, but an empty recognized
// set fails the whole run.
func (o *Orchestrator) RunProject(ctx context.Context, sourcesListPath string) bool {
	f, err := os.Open(sourcesListPath)
	if err != nil {
		if o.Log != nil {
			o.Log.Error("orchestrator: opening source list %s: %v", sourcesListPath, err)
		}
		return false
	}
	defer f.Close()

	var recognized []string
	var lines int
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines++
		path := scanner.Text()
		if isRecognizedSource(path) {
			recognized = append(recognized, path)
			if o.Log != nil {
				o.Log.Info("orchestrator: %s found", path)
			}
		} else if o.Log != nil {
			o.Log.Warn("orchestrator: can not recognize %s", path)
		}
	}
	if err := scanner.Err(); err != nil {
		if o.Log != nil {
			o.Log.Error("orchestrator: reading source list: %v", err)
		}
		return false
	}

	if len(recognized) == 0 {
		if o.Log != nil {
			o.Log.Error("orchestrator: no source paths were found in %s", sourcesListPath)
		}
		return false
	}
	if o.Log != nil {
		o.Log.Info("orchestrator: [recognized/total] = [%d/%d]", len(recognized), lines)
	}

	any := false
	for _, src := range recognized {
		if o.RunSingleSource(ctx, src) {
			any = true
		}
	}
	return any
}

func isRecognizedSource(path string) bool {
	if !filepath.IsAbs(path) {
		return false
	}
	if _, err := os.Stat(path); err != nil {
		return false
	}
	return IsCompilableSource(path) || isIRFile(path)
}
