package chunk

import (
	"strings"
	"testing"

	"github.com/sentientmonkey/crafting-interpreters/value"
)

func TestAddConstantReturnsIndex(t *testing.T) {
	c := New()

	i0 := c.AddConstant(value.NewNumber(1.2))
	i1 := c.AddConstant(value.NewNumber(3.4))

	if i0 != 0 || i1 != 1 {
		t.Errorf("AddConstant indices = %d, %d; want 0, 1", i0, i1)
	}
}

func TestDisassembleRepeatsLineMarker(t *testing.T) {
	c := New()
	constant := c.AddConstant(value.NewNumber(1.2))
	c.WriteOperand(OpConstant, constant, 123)
	c.Write(OpReturn, 123)

	out := c.Disassemble("test chunk", nil)

	if !strings.Contains(out, "== test chunk ==") {
		t.Errorf("missing header in:\n%s", out)
	}
	if !strings.Contains(out, "OP_CONSTANT") {
		t.Errorf("missing OP_CONSTANT in:\n%s", out)
	}
	if !strings.Contains(out, "0001    | OP_RETURN") {
		t.Errorf("expected repeated-line marker before OP_RETURN, got:\n%s", out)
	}
}

func TestWriteAppendsInOrder(t *testing.T) {
	c := New()
	c.Write(OpNil, 1)
	c.Write(OpPop, 1)
	c.Write(OpReturn, 2)

	want := []OpCode{OpNil, OpPop, OpReturn}
	if len(c.Instructions) != len(want) {
		t.Fatalf("len(Instructions) = %d, want %d", len(c.Instructions), len(want))
	}
	for i, op := range want {
		if c.Instructions[i].Op != op {
			t.Errorf("Instructions[%d].Op = %v, want %v", i, c.Instructions[i].Op, op)
		}
	}
	if c.Instructions[2].Line != 2 {
		t.Errorf("Instructions[2].Line = %d, want 2", c.Instructions[2].Line)
	}
}
