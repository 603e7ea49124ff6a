// Package chunk holds the bytecode representation the compiler emits into
// and the VM executes: a flat instruction sequence, a constant pool, and
// per-instruction source lines for diagnostics.
package chunk

import (
	"fmt"
	"strings"

	"github.com/sentientmonkey/crafting-interpreters/interner"
	"github.com/sentientmonkey/crafting-interpreters/value"
)

// OpCode identifies a single VM instruction.
type OpCode int

const (
	OpConstant OpCode = iota
	OpNil
	OpTrue
	OpFalse
	OpPop
	OpEqual
	OpGreater
	OpLess
	OpAdd
	OpSubtract
	OpMultiply
	OpDivide
	OpNegate
	OpNot
	OpPrint
	OpDefineGlobal
	OpGetGlobal
	OpSetGlobal
	OpReturn
)

var opNames = map[OpCode]string{
	OpConstant:     "OP_CONSTANT",
	OpNil:          "OP_NIL",
	OpTrue:         "OP_TRUE",
	OpFalse:        "OP_FALSE",
	OpPop:          "OP_POP",
	OpEqual:        "OP_EQUAL",
	OpGreater:      "OP_GREATER",
	OpLess:         "OP_LESS",
	OpAdd:          "OP_ADD",
	OpSubtract:     "OP_SUBTRACT",
	OpMultiply:     "OP_MULTIPLY",
	OpDivide:       "OP_DIVIDE",
	OpNegate:       "OP_NEGATE",
	OpNot:          "OP_NOT",
	OpPrint:        "OP_PRINT",
	OpDefineGlobal: "OP_DEFINE_GLOBAL",
	OpGetGlobal:    "OP_GET_GLOBAL",
	OpSetGlobal:    "OP_SET_GLOBAL",
	OpReturn:       "OP_RETURN",
}

func (op OpCode) String() string {
	if n, ok := opNames[op]; ok {
		return n
	}
	return fmt.Sprintf("OP_UNKNOWN(%d)", int(op))
}

// hasOperand reports whether op carries an inline constant-table index.
func (op OpCode) hasOperand() bool {
	switch op {
	case OpConstant, OpDefineGlobal, OpGetGlobal, OpSetGlobal:
		return true
	default:
		return false
	}
}

// Instruction is one opcode plus the source line it was compiled from.
// Operand is only meaningful when Op.hasOperand() is true.
type Instruction struct {
	Op      OpCode
	Operand int
	Line    int
}

// Chunk is an append-only sequence of instructions plus a parallel constant
// pool, produced by the compiler and then executed read-only by the VM.
type Chunk struct {
	Instructions []Instruction
	Constants    []value.Value
}

// New returns an empty Chunk.
func New() *Chunk {
	return &Chunk{}
}

// Write appends an instruction with no operand.
func (c *Chunk) Write(op OpCode, line int) {
	c.Instructions = append(c.Instructions, Instruction{Op: op, Line: line})
}

// WriteOperand appends an instruction carrying an inline operand (a
// constant-table index).
func (c *Chunk) WriteOperand(op OpCode, operand int, line int) {
	c.Instructions = append(c.Instructions, Instruction{Op: op, Operand: operand, Line: line})
}

// AddConstant appends value to the constant pool and returns its index.
func (c *Chunk) AddConstant(v value.Value) int {
	c.Constants = append(c.Constants, v)
	return len(c.Constants) - 1
}

// Disassemble renders the whole chunk in human-readable form under a
// "== name ==" header. in is used to render String constants by their
// interned text; it may be nil if the chunk contains no String constants.
func (c *Chunk) Disassemble(name string, in *interner.Interner) string {
	var b strings.Builder
	fmt.Fprintf(&b, "== %s ==\n", name)
	for offset := range c.Instructions {
		b.WriteString(c.DisassembleInstruction(offset, in))
		b.WriteByte('\n')
	}
	return b.String()
}

// DisassembleInstruction renders the instruction at offset as
// "NNNN LLLL OPNAME [operand] ['value]", substituting "   |" for the line
// column when it repeats the previous instruction's line.
func (c *Chunk) DisassembleInstruction(offset int, in *interner.Interner) string {
	inst := c.Instructions[offset]

	var b strings.Builder
	fmt.Fprintf(&b, "%04d ", offset)

	if offset > 0 && inst.Line == c.Instructions[offset-1].Line {
		b.WriteString("   | ")
	} else {
		fmt.Fprintf(&b, "%4d ", inst.Line)
	}

	if inst.Op.hasOperand() {
		fmt.Fprintf(&b, "%-16s %4d", inst.Op, inst.Operand)
		if inst.Operand >= 0 && inst.Operand < len(c.Constants) {
			fmt.Fprintf(&b, " '%s'", c.Constants[inst.Operand].Render(in))
		}
	} else {
		fmt.Fprintf(&b, "%s", inst.Op)
	}

	return b.String()
}
