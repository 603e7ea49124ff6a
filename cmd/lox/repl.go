package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"

	"github.com/sentientmonkey/crafting-interpreters/compiler"
	"github.com/sentientmonkey/crafting-interpreters/interner"
	"github.com/sentientmonkey/crafting-interpreters/vm"
)

func repl() {
	rl, err := readline.New("> ")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitUsage)
	}
	defer rl.Close()

	machine := vm.New(interner.New())

	for {
		line, err := rl.Readline()
		if errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt) {
			return
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return
		}

		if err := machine.Interpret(line); err != nil {
			switch err.(type) {
			case compiler.SyntaxError:
				fmt.Fprintf(os.Stderr, "Compile Error: %s", err.Error())
			case vm.RuntimeError:
				fmt.Fprintf(os.Stderr, "Runtime Error: %s", err.Error())
			default:
				fmt.Fprint(os.Stderr, err.Error())
			}
		}
	}
}
