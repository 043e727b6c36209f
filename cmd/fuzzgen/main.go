// Command fuzzgen turns a C/C++ source file (or a project's worth of
// them) into compiled libFuzzer drivers for every standalone function it
// can find.
package main

import (
	"context"
	"fmt"
	"os"

	"j5.nz/fuzzgen/internal/logging"
	"j5.nz/fuzzgen/internal/orchestrator"
)

func usage(argv0 string) string {
	return fmt.Sprintf("usage: %s [-s|--sources <path>] <input>\n", argv0)
}

func run(args []string) int {
	if len(args) < 2 {
		fmt.Fprint(os.Stderr, usage(args[0]))
		return 1
	}

	var sourcesList string
	var input string
	i := 1
	for i < len(args) {
		switch {
		case (args[i] == "-s" || args[i] == "--sources") && i+1 < len(args):
			sourcesList = args[i+1]
			i = i + 2
		default:
			input = args[i]
			i = i + 1
		}
	}

	if input == "" {
		fmt.Fprint(os.Stderr, usage(args[0]))
		return 1
	}

	log := logging.NewStderr()
	defer log.Close()

	log.Info("begin working with %s", input)

	o := orchestrator.New(log)

	var ok bool
	if sourcesList != "" {
		ok = o.RunProject(context.Background(), sourcesList)
	} else {
		ok = o.RunSingleSource(context.Background(), input)
	}

	if !ok {
		fmt.Fprintln(os.Stdout, "Failure.")
		return 1
	}

	fmt.Fprintln(os.Stdout, "Success.")
	return 0
}

func main() {
	os.Exit(run(os.Args))
}
