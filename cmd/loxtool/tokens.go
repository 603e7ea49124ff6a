package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/sentientmonkey/crafting-interpreters/lexer"
)

type tokensCmd struct{}

func (*tokensCmd) Name() string     { return "tokens" }
func (*tokensCmd) Synopsis() string { return "Scan a source file and print its token stream" }
func (*tokensCmd) Usage() string    { return "loxtool tokens <file>\n" }
func (*tokensCmd) SetFlags(*flag.FlagSet) {}

func (*tokensCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "loxtool tokens: file not provided")
		return subcommands.ExitUsageError
	}

	source, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "loxtool tokens: %v\n", err)
		return subcommands.ExitFailure
	}

	tokens, scanErr := lexer.New(string(source)).Scan()
	for _, tok := range tokens {
		fmt.Printf("[line %d] %s '%s'\n", tok.Line, tok.Type, tok.Lexeme)
	}
	if scanErr != nil {
		line := 0
		if lineErr, ok := scanErr.(lexer.LineError); ok {
			line = lineErr.Line()
		}
		fmt.Fprintf(os.Stderr, "[line %d] Error: %s\n", line, scanErr)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
