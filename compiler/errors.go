package compiler

import (
	"fmt"

	"github.com/sentientmonkey/crafting-interpreters/token"
)

// SyntaxError is a compile-time error tied to the token where it was
// detected. Scanner errors (Bare) render as just their message; parser
// errors render with the "[line N] Error at '<lexeme>': <message>" (or
// "at end") shape the spec's diagnostic format requires.
type SyntaxError struct {
	Bare    bool
	Token   token.Token
	Message string
}

func (e SyntaxError) Error() string {
	if e.Bare {
		return e.Message
	}
	if e.Token.Type == token.EOF {
		return fmt.Sprintf("[line %d] Error at end: %s\n", e.Token.Line, e.Message)
	}
	return fmt.Sprintf("[line %d] Error at '%s': %s\n", e.Token.Line, e.Token.Lexeme, e.Message)
}
