package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/sentientmonkey/crafting-interpreters/compiler"
	"github.com/sentientmonkey/crafting-interpreters/interner"
)

type disasmCmd struct{}

func (*disasmCmd) Name() string     { return "disasm" }
func (*disasmCmd) Synopsis() string { return "Compile a source file and print its disassembled bytecode" }
func (*disasmCmd) Usage() string    { return "loxtool disasm <file>\n" }
func (*disasmCmd) SetFlags(*flag.FlagSet) {}

func (*disasmCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "loxtool disasm: file not provided")
		return subcommands.ExitUsageError
	}

	source, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "loxtool disasm: %v\n", err)
		return subcommands.ExitFailure
	}

	in := interner.New()
	c, compileErr := compiler.Compile(string(source), in)
	if compileErr != nil {
		fmt.Fprint(os.Stderr, compileErr.Error())
		return subcommands.ExitFailure
	}

	fmt.Print(c.Disassemble(args[0], in))
	return subcommands.ExitSuccess
}
