// Package vm executes compiled chunk.Chunks on a fixed-size stack
// machine.
package vm

import (
	"fmt"
	"io"
	"os"

	"github.com/sentientmonkey/crafting-interpreters/chunk"
	"github.com/sentientmonkey/crafting-interpreters/compiler"
	"github.com/sentientmonkey/crafting-interpreters/interner"
	"github.com/sentientmonkey/crafting-interpreters/value"
)

// Debug enables per-instruction execution tracing (stack contents plus the
// disassembled instruction) to Trace before each step, matching the DEBUG
// environment variable's effect on the reference CLI: any value other than
// "" or "0" turns it on.
var Debug = func() bool {
	v := os.Getenv("DEBUG")
	return v != "" && v != "0"
}()

// VM interprets chunks produced by the compiler package. Callers typically
// only need Interpret; Run is exposed for tests that want to feed a chunk
// directly.
type VM struct {
	chunk    *chunk.Chunk
	ip       int
	stack    stack
	interner *interner.Interner
	globals  map[interner.Symbol]value.Value

	Out   io.Writer
	Trace io.Writer
}

// New returns a VM sharing in for string interning with whatever compiled
// the chunks it will run.
func New(in *interner.Interner) *VM {
	return &VM{
		interner: in,
		globals:  make(map[interner.Symbol]value.Value),
		Out:      os.Stdout,
		Trace:    os.Stderr,
	}
}

// Interpret compiles source and, on success, runs it to completion.
func (vm *VM) Interpret(source string) error {
	c, err := compiler.Compile(source, vm.interner)
	if err != nil {
		return err
	}
	return vm.Run(c)
}

// Run executes c from its first instruction. The stack is reset but
// globals persist across calls, so a REPL can Run successive chunks that
// share variables.
func (vm *VM) Run(c *chunk.Chunk) error {
	vm.chunk = c
	vm.ip = 0
	vm.stack.reset()

	for {
		if vm.ip >= len(vm.chunk.Instructions) {
			return nil
		}

		if Debug {
			vm.traceStep()
		}

		inst := vm.chunk.Instructions[vm.ip]
		vm.ip++

		switch inst.Op {
		case chunk.OpConstant:
			if err := vm.push(vm.chunk.Constants[inst.Operand]); err != nil {
				return vm.runtimeError(inst.Line, err.Error())
			}

		case chunk.OpNil:
			if err := vm.push(value.NilValue); err != nil {
				return vm.runtimeError(inst.Line, err.Error())
			}
		case chunk.OpTrue:
			if err := vm.push(value.NewBool(true)); err != nil {
				return vm.runtimeError(inst.Line, err.Error())
			}
		case chunk.OpFalse:
			if err := vm.push(value.NewBool(false)); err != nil {
				return vm.runtimeError(inst.Line, err.Error())
			}

		case chunk.OpPop:
			vm.stack.pop()

		case chunk.OpEqual:
			b := vm.stack.pop()
			a := vm.stack.pop()
			if err := vm.push(value.NewBool(a.Equal(b))); err != nil {
				return vm.runtimeError(inst.Line, err.Error())
			}

		case chunk.OpGreater:
			if err := vm.binaryNumberOp(inst.Line, func(a, b float64) value.Value {
				return value.NewBool(a > b)
			}); err != nil {
				return err
			}
		case chunk.OpLess:
			if err := vm.binaryNumberOp(inst.Line, func(a, b float64) value.Value {
				return value.NewBool(a < b)
			}); err != nil {
				return err
			}

		case chunk.OpAdd:
			if err := vm.add(inst.Line); err != nil {
				return err
			}
		case chunk.OpSubtract:
			if err := vm.binaryNumberOp(inst.Line, func(a, b float64) value.Value {
				return value.NewNumber(a - b)
			}); err != nil {
				return err
			}
		case chunk.OpMultiply:
			if err := vm.binaryNumberOp(inst.Line, func(a, b float64) value.Value {
				return value.NewNumber(a * b)
			}); err != nil {
				return err
			}
		case chunk.OpDivide:
			if err := vm.binaryNumberOp(inst.Line, func(a, b float64) value.Value {
				return value.NewNumber(a / b)
			}); err != nil {
				return err
			}

		case chunk.OpNegate:
			if vm.stack.peek(0).Kind != value.Number {
				return vm.runtimeError(inst.Line, "Operand must be number.")
			}
			n := vm.stack.pop()
			if err := vm.push(value.NewNumber(-n.Num)); err != nil {
				return vm.runtimeError(inst.Line, err.Error())
			}
		case chunk.OpNot:
			n := vm.stack.pop()
			if err := vm.push(value.NewBool(n.IsFalsey())); err != nil {
				return vm.runtimeError(inst.Line, err.Error())
			}

		case chunk.OpPrint:
			v := vm.stack.pop()
			fmt.Fprintln(vm.Out, v.Render(vm.interner))

		case chunk.OpDefineGlobal:
			name := vm.chunk.Constants[inst.Operand].Sym
			vm.globals[name] = vm.stack.pop()

		case chunk.OpGetGlobal:
			name := vm.chunk.Constants[inst.Operand].Sym
			v, ok := vm.globals[name]
			if !ok {
				return vm.runtimeError(inst.Line, fmt.Sprintf("Undefined variable '%s'.", vm.interner.Lookup(name)))
			}
			if err := vm.push(v); err != nil {
				return vm.runtimeError(inst.Line, err.Error())
			}

		case chunk.OpSetGlobal:
			name := vm.chunk.Constants[inst.Operand].Sym
			if _, ok := vm.globals[name]; !ok {
				return vm.runtimeError(inst.Line, fmt.Sprintf("Undefined variable '%s'.", vm.interner.Lookup(name)))
			}
			vm.globals[name] = vm.stack.peek(0)

		case chunk.OpReturn:
			return nil

		default:
			return vm.runtimeError(inst.Line, fmt.Sprintf("Unknown opcode %v.", inst.Op))
		}
	}
}

func (vm *VM) push(v value.Value) error {
	return vm.stack.push(v)
}

func (vm *VM) runtimeError(line int, message string) error {
	return RuntimeError{Line: line, Message: message}
}

func (vm *VM) binaryNumberOp(line int, op func(a, b float64) value.Value) error {
	if vm.stack.peek(0).Kind != value.Number || vm.stack.peek(1).Kind != value.Number {
		return vm.runtimeError(line, "Operands must be numbers.")
	}
	b := vm.stack.pop()
	a := vm.stack.pop()
	if err := vm.push(op(a.Num, b.Num)); err != nil {
		return vm.runtimeError(line, err.Error())
	}
	return nil
}

// add implements `+`, which overloads number addition and string
// concatenation: concatenation interns the combined text as a new symbol.
func (vm *VM) add(line int) error {
	b := vm.stack.peek(0)
	a := vm.stack.peek(1)

	switch {
	case a.Kind == value.Number && b.Kind == value.Number:
		vm.stack.pop()
		vm.stack.pop()
		return vm.push(value.NewNumber(a.Num + b.Num))
	case a.Kind == value.String && b.Kind == value.String:
		vm.stack.pop()
		vm.stack.pop()
		combined := vm.interner.Lookup(a.Sym) + vm.interner.Lookup(b.Sym)
		sym := vm.interner.Intern(combined)
		return vm.push(value.NewString(sym))
	default:
		return vm.runtimeError(line, "Operands must be numbers or strings.")
	}
}

func (vm *VM) traceStep() {
	fmt.Fprint(vm.Trace, "          ")
	for i := 0; i < vm.stack.sp; i++ {
		fmt.Fprintf(vm.Trace, "[ %s ]", vm.stack.values[i].Render(vm.interner))
	}
	fmt.Fprintln(vm.Trace)
	fmt.Fprint(vm.Trace, vm.chunk.DisassembleInstruction(vm.ip, vm.interner))
}
