package compiler

import (
	"testing"

	"github.com/sentientmonkey/crafting-interpreters/chunk"
	"github.com/sentientmonkey/crafting-interpreters/interner"
)

func assertOps(t *testing.T, source string, want []chunk.OpCode) {
	t.Helper()
	c, err := Compile(source, interner.New())
	if err != nil {
		t.Fatalf("Compile(%q) error: %v", source, err)
	}
	if len(c.Instructions) != len(want) {
		t.Fatalf("Compile(%q) = %d instructions, want %d: %v", source, len(c.Instructions), len(want), c.Instructions)
	}
	for i, op := range want {
		if c.Instructions[i].Op != op {
			t.Errorf("instruction[%d].Op = %v, want %v", i, c.Instructions[i].Op, op)
		}
	}
}

func TestCompileNumberLiteral(t *testing.T) {
	assertOps(t, "1;", []chunk.OpCode{chunk.OpConstant, chunk.OpPop, chunk.OpReturn})
}

func TestCompileArithmeticPrecedence(t *testing.T) {
	// 1 + 2 * 3 should parse as 1 + (2 * 3): both constants for 2 and 3 are
	// pushed and multiplied before the add.
	c, err := Compile("1 + 2 * 3;", interner.New())
	if err != nil {
		t.Fatalf("Compile error: %v", err)
	}
	want := []chunk.OpCode{
		chunk.OpConstant, chunk.OpConstant, chunk.OpConstant,
		chunk.OpMultiply, chunk.OpAdd, chunk.OpPop, chunk.OpReturn,
	}
	if len(c.Instructions) != len(want) {
		t.Fatalf("got %d instructions, want %d: %v", len(c.Instructions), len(want), c.Instructions)
	}
	for i, op := range want {
		if c.Instructions[i].Op != op {
			t.Errorf("instruction[%d] = %v, want %v", i, c.Instructions[i].Op, op)
		}
	}
}

func TestCompileGrouping(t *testing.T) {
	assertOps(t, "(1 + 2) * 3;", []chunk.OpCode{
		chunk.OpConstant, chunk.OpConstant, chunk.OpAdd,
		chunk.OpConstant, chunk.OpMultiply, chunk.OpPop, chunk.OpReturn,
	})
}

func TestCompileUnaryMinus(t *testing.T) {
	assertOps(t, "-1;", []chunk.OpCode{chunk.OpConstant, chunk.OpNegate, chunk.OpPop, chunk.OpReturn})
}

func TestCompileNotEqualDesugarsToEqualNot(t *testing.T) {
	assertOps(t, "1 != 2;", []chunk.OpCode{
		chunk.OpConstant, chunk.OpConstant, chunk.OpEqual, chunk.OpNot, chunk.OpPop, chunk.OpReturn,
	})
}

func TestCompileGreaterEqualDesugarsToLessNot(t *testing.T) {
	assertOps(t, "1 >= 2;", []chunk.OpCode{
		chunk.OpConstant, chunk.OpConstant, chunk.OpLess, chunk.OpNot, chunk.OpPop, chunk.OpReturn,
	})
}

func TestCompileLessEqualDesugarsToGreaterNot(t *testing.T) {
	assertOps(t, "1 <= 2;", []chunk.OpCode{
		chunk.OpConstant, chunk.OpConstant, chunk.OpGreater, chunk.OpNot, chunk.OpPop, chunk.OpReturn,
	})
}

func TestCompileLiterals(t *testing.T) {
	assertOps(t, "true;", []chunk.OpCode{chunk.OpTrue, chunk.OpPop, chunk.OpReturn})
	assertOps(t, "false;", []chunk.OpCode{chunk.OpFalse, chunk.OpPop, chunk.OpReturn})
	assertOps(t, "nil;", []chunk.OpCode{chunk.OpNil, chunk.OpPop, chunk.OpReturn})
}

func TestCompilePrintStatement(t *testing.T) {
	assertOps(t, `print "hi";`, []chunk.OpCode{chunk.OpConstant, chunk.OpPrint, chunk.OpReturn})
}

func TestCompileVarDeclarationWithInitializer(t *testing.T) {
	assertOps(t, "var x = 1;", []chunk.OpCode{chunk.OpConstant, chunk.OpDefineGlobal, chunk.OpReturn})
}

func TestCompileVarDeclarationWithoutInitializerDefaultsNil(t *testing.T) {
	assertOps(t, "var x;", []chunk.OpCode{chunk.OpNil, chunk.OpDefineGlobal, chunk.OpReturn})
}

func TestCompileVariableRead(t *testing.T) {
	assertOps(t, "var x = 1; print x;", []chunk.OpCode{
		chunk.OpConstant, chunk.OpDefineGlobal,
		chunk.OpGetGlobal, chunk.OpPrint, chunk.OpReturn,
	})
}

func TestCompileVariableAssignment(t *testing.T) {
	assertOps(t, "var x = 1; x = 2;", []chunk.OpCode{
		chunk.OpConstant, chunk.OpDefineGlobal,
		chunk.OpConstant, chunk.OpSetGlobal, chunk.OpPop, chunk.OpReturn,
	})
}

func TestCompileInvalidAssignmentTarget(t *testing.T) {
	_, err := Compile("1 + 2 = 3;", interner.New())
	if err == nil {
		t.Fatal("expected error for invalid assignment target")
	}
	if got := err.Error(); got == "" {
		t.Fatal("expected non-empty error message")
	}
}

func TestCompileMissingSemicolonReportsError(t *testing.T) {
	_, err := Compile("1 + 2", interner.New())
	if err == nil {
		t.Fatal("expected error for missing semicolon")
	}
}

func TestCompileReportsOnlyFirstError(t *testing.T) {
	// A broken statement followed by a valid one: the first error wins, and
	// synchronize() lets the second statement compile cleanly afterward
	// rather than cascading failures.
	_, err := Compile("1 + ; var x = 2;", interner.New())
	if err == nil {
		t.Fatal("expected an error")
	}
	if got, want := err.Error(), "[line 1] Error at ';': Expect expression.\n"; got != want {
		t.Errorf("error = %q, want %q", got, want)
	}
}

func TestCompileUnterminatedStringSurfacesAsBareError(t *testing.T) {
	_, err := Compile(`"oops`, interner.New())
	if err == nil || err.Error() != "Unterminated string." {
		t.Errorf("error = %v, want 'Unterminated string.'", err)
	}
}
