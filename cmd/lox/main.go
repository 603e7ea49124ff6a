// Command lox is the interpreter's command-line entry point: run a script
// file, or with no arguments drop into an interactive REPL.
package main

import (
	"fmt"
	"os"

	"github.com/sentientmonkey/crafting-interpreters/interner"
	"github.com/sentientmonkey/crafting-interpreters/vm"
)

const (
	exitUsage   = 64
	exitCompile = 65
	exitRuntime = 70
)

func main() {
	switch len(os.Args) {
	case 1:
		repl()
	case 2:
		runFile(os.Args[1])
	default:
		fmt.Fprintln(os.Stderr, "Usage: lox [path]")
		os.Exit(exitUsage)
	}
}

func runFile(path string) {
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not open file %q.\n", path)
		os.Exit(exitUsage)
	}

	machine := vm.New(interner.New())
	if err := machine.Interpret(string(source)); err != nil {
		fmt.Fprint(os.Stderr, err.Error())
		os.Exit(exitStatusFor(err))
	}
}

func exitStatusFor(err error) int {
	if _, ok := err.(vm.RuntimeError); ok {
		return exitRuntime
	}
	return exitCompile
}
