// Package compiler implements the single-pass Pratt expression compiler:
// it drives parsing directly off a precedence table of prefix/infix
// handlers and emits bytecode into a chunk.Chunk as it goes, with no
// intermediate AST.
package compiler

import (
	"github.com/sentientmonkey/crafting-interpreters/chunk"
	"github.com/sentientmonkey/crafting-interpreters/interner"
	"github.com/sentientmonkey/crafting-interpreters/lexer"
	"github.com/sentientmonkey/crafting-interpreters/token"
	"github.com/sentientmonkey/crafting-interpreters/value"
)

// Precedence levels, lowest to highest. Parsing at precedence P consumes
// infix operators whose own precedence is >= P.
type precedence int

const (
	precNone       precedence = iota
	precAssignment            // =
	precOr                    // or
	precAnd                   // and
	precEquality              // !=
	precComparison            // == < > <= >=
	precTerm                  // + -
	precFactor                // * /
	precUnary                 // ! -
	precCall                  // . ()
	precPrimary
)

type parseFn func(p *parser, canAssign bool)

type parseRule struct {
	prefix     parseFn
	infix      parseFn
	precedence precedence
}

// parser drives a single compile: it owns the lexer, the token lookahead
// pair, the chunk being built, and the shared interner.
type parser struct {
	lx       *lexer.Lexer
	previous token.Token
	current  token.Token
	chunk    *chunk.Chunk
	interner *interner.Interner

	err       error
	panicMode bool
}

var rules map[token.Type]parseRule

func init() {
	rules = map[token.Type]parseRule{
		token.LeftParen:    {prefix: (*parser).grouping, precedence: precNone},
		token.Minus:        {prefix: (*parser).unary, infix: (*parser).binary, precedence: precTerm},
		token.Plus:         {infix: (*parser).binary, precedence: precTerm},
		token.Slash:        {infix: (*parser).binary, precedence: precFactor},
		token.Star:         {infix: (*parser).binary, precedence: precFactor},
		token.Bang:         {prefix: (*parser).unary, precedence: precNone},
		token.BangEqual:    {infix: (*parser).binary, precedence: precEquality},
		token.EqualEqual:   {infix: (*parser).binary, precedence: precComparison},
		token.Greater:      {infix: (*parser).binary, precedence: precComparison},
		token.GreaterEqual: {infix: (*parser).binary, precedence: precComparison},
		token.Less:         {infix: (*parser).binary, precedence: precComparison},
		token.LessEqual:    {infix: (*parser).binary, precedence: precComparison},
		token.Number:       {prefix: (*parser).number, precedence: precNone},
		token.String:       {prefix: (*parser).string, precedence: precNone},
		token.Identifier:   {prefix: (*parser).variable, precedence: precNone},
		token.Equal:        {infix: (*parser).assignment, precedence: precAssignment},
		token.Nil:          {prefix: (*parser).literal, precedence: precNone},
		token.True:         {prefix: (*parser).literal, precedence: precNone},
		token.False:        {prefix: (*parser).literal, precedence: precNone},
	}
}

func (p *parser) ruleFor(t token.Type) parseRule {
	return rules[t]
}

// Compile compiles source into a Chunk, interning string/identifier
// literals through in. On any compile error the first one encountered is
// returned; the chunk returned alongside it is partial and must not be run.
func Compile(source string, in *interner.Interner) (*chunk.Chunk, error) {
	p := &parser{
		lx:       lexer.New(source),
		chunk:    chunk.New(),
		interner: in,
	}

	p.advance()
	for !p.check(token.EOF) {
		p.declaration()
	}
	p.emit(chunk.OpReturn)

	if p.err != nil {
		return p.chunk, p.err
	}
	return p.chunk, nil
}

func (p *parser) advance() {
	p.previous = p.current
	for {
		p.current = p.lx.Next()
		if p.current.Type != token.Error {
			break
		}
		p.errorScan(p.current.Lexeme)
	}
}

func (p *parser) check(t token.Type) bool {
	return p.current.Type == t
}

func (p *parser) match(t token.Type) bool {
	if !p.check(t) {
		return false
	}
	p.advance()
	return true
}

func (p *parser) consume(t token.Type, message string) {
	if p.current.Type == t {
		p.advance()
		return
	}
	p.errorAtCurrent(message)
}

func (p *parser) errorAtCurrent(message string) {
	p.errorAt(p.current, message)
}

func (p *parser) error(message string) {
	p.errorAt(p.previous, message)
}

func (p *parser) errorAt(tok token.Token, message string) {
	if p.panicMode {
		return
	}
	p.panicMode = true
	if p.err == nil {
		p.err = SyntaxError{Token: tok, Message: message}
	}
}

// errorScan records a scanner-produced error (already-bare message) with
// the same first-error-wins, panic-mode suppression as parser errors.
func (p *parser) errorScan(message string) {
	if p.panicMode {
		return
	}
	p.panicMode = true
	if p.err == nil {
		p.err = SyntaxError{Bare: true, Message: message}
	}
}

func (p *parser) emit(op chunk.OpCode) {
	p.chunk.Write(op, p.previous.Line)
}

func (p *parser) emitOperand(op chunk.OpCode, operand int) {
	p.chunk.WriteOperand(op, operand, p.previous.Line)
}

func (p *parser) makeConstant(v value.Value) int {
	return p.chunk.AddConstant(v)
}

func (p *parser) emitConstant(v value.Value) {
	p.emitOperand(chunk.OpConstant, p.makeConstant(v))
}

// parsePrecedence is the Pratt driver: it consumes one prefix expression,
// then greedily consumes infix operators whose precedence is at least prec.
func (p *parser) parsePrecedence(prec precedence) {
	p.advance()
	prefix := p.ruleFor(p.previous.Type).prefix
	if prefix == nil {
		p.error("Expect expression.")
		return
	}

	canAssign := prec <= precAssignment
	prefix(p, canAssign)

	for prec <= p.ruleFor(p.current.Type).precedence {
		p.advance()
		infix := p.ruleFor(p.previous.Type).infix
		infix(p, canAssign)
	}

	if canAssign && p.match(token.Equal) {
		p.error("Invalid assignment target.")
	}
}

func (p *parser) expression() {
	p.parsePrecedence(precAssignment)
}

func (p *parser) grouping(_ bool) {
	p.expression()
	p.consume(token.RightParen, "Expect ')' after expression.")
}

func (p *parser) number(_ bool) {
	n := p.previous.Literal.(float64)
	p.emitConstant(value.NewNumber(n))
}

func (p *parser) string(_ bool) {
	s := p.previous.Literal.(string)
	sym := p.interner.Intern(s)
	p.emitConstant(value.NewString(sym))
}

func (p *parser) literal(_ bool) {
	switch p.previous.Type {
	case token.Nil:
		p.emit(chunk.OpNil)
	case token.True:
		p.emit(chunk.OpTrue)
	case token.False:
		p.emit(chunk.OpFalse)
	}
}

func (p *parser) unary(_ bool) {
	operator := p.previous.Type
	p.parsePrecedence(precUnary)

	switch operator {
	case token.Minus:
		p.emit(chunk.OpNegate)
	case token.Bang:
		p.emit(chunk.OpNot)
	}
}

// binary parses the right operand at one precedence level higher than the
// operator's own (left-associative), then emits the operator, desugaring
// !=, >=, <= into two-opcode sequences per the spec's contract.
func (p *parser) binary(_ bool) {
	operator := p.previous.Type
	rule := p.ruleFor(operator)
	p.parsePrecedence(rule.precedence + 1)

	switch operator {
	case token.BangEqual:
		p.emit(chunk.OpEqual)
		p.emit(chunk.OpNot)
	case token.EqualEqual:
		p.emit(chunk.OpEqual)
	case token.Greater:
		p.emit(chunk.OpGreater)
	case token.GreaterEqual:
		p.emit(chunk.OpLess)
		p.emit(chunk.OpNot)
	case token.Less:
		p.emit(chunk.OpLess)
	case token.LessEqual:
		p.emit(chunk.OpGreater)
		p.emit(chunk.OpNot)
	case token.Plus:
		p.emit(chunk.OpAdd)
	case token.Minus:
		p.emit(chunk.OpSubtract)
	case token.Star:
		p.emit(chunk.OpMultiply)
	case token.Slash:
		p.emit(chunk.OpDivide)
	}
}

// variable is the prefix rule for a bare identifier: it emits a GetGlobal
// by default, or, when assignment is allowed here and `=` follows the
// identifier, compiles the right-hand expression and emits a SetGlobal.
func (p *parser) variable(canAssign bool) {
	name := p.previous
	global := p.identifierConstant(name)

	if canAssign && p.match(token.Equal) {
		p.expression()
		p.emitOperand(chunk.OpSetGlobal, global)
		return
	}
	p.emitOperand(chunk.OpGetGlobal, global)
}

// assignment is the infix rule for `=`. It only ever fires inside
// parsePrecedence at precAssignment or lower, and variable() already
// handles `=` directly after an identifier; reaching here means the left
// side was some other expression, which is not a valid assignment target.
func (p *parser) assignment(_ bool) {
	p.error("Invalid assignment target.")
}

func (p *parser) identifierConstant(name token.Token) int {
	sym := p.interner.Intern(name.Lexeme)
	return p.makeConstant(value.NewString(sym))
}

func (p *parser) parseVariable(errorMessage string) int {
	p.consume(token.Identifier, errorMessage)
	return p.identifierConstant(p.previous)
}

func (p *parser) defineVariable(global int) {
	p.emitOperand(chunk.OpDefineGlobal, global)
}

func (p *parser) varDeclaration() {
	global := p.parseVariable("Expect variable name.")

	if p.match(token.Equal) {
		p.expression()
	} else {
		p.emit(chunk.OpNil)
	}
	p.consume(token.Semicolon, "Expect ';' after variable declaration.")

	p.defineVariable(global)
}

func (p *parser) expressionStatement() {
	p.expression()
	p.consume(token.Semicolon, "Expect ';' after expression.")
	p.emit(chunk.OpPop)
}

func (p *parser) printStatement() {
	p.expression()
	p.consume(token.Semicolon, "Expect ';' after value.")
	p.emit(chunk.OpPrint)
}

func (p *parser) statement() {
	if p.match(token.Print) {
		p.printStatement()
		return
	}
	p.expressionStatement()
}

// synchronize discards tokens until it reaches a likely declaration
// boundary, so one bad token doesn't cascade into a flood of spurious
// errors for the rest of the program.
func (p *parser) synchronize() {
	p.panicMode = false

	for p.current.Type != token.EOF {
		if p.previous.Type == token.Semicolon {
			return
		}
		switch p.current.Type {
		case token.Class, token.Fun, token.Var, token.For,
			token.If, token.While, token.Print, token.Return:
			return
		}
		p.advance()
	}
}

func (p *parser) declaration() {
	if p.match(token.Var) {
		p.varDeclaration()
	} else {
		p.statement()
	}

	if p.panicMode {
		p.synchronize()
	}
}
