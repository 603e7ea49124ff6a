// Package value defines the runtime value representation shared by the
// compiler's constant pool and the VM's operand stack.
package value

import (
	"strconv"

	"github.com/sentientmonkey/crafting-interpreters/interner"
)

// Kind discriminates the variant a Value holds.
type Kind int

const (
	Bool Kind = iota
	Nil
	Number
	String
)

// Value is a tagged union: exactly one of Num/Sym/boolean is meaningful,
// selected by Kind. The zero Value is Kind Bool with value false; use NilValue
// to get a nil value instead of relying on the zero value.
type Value struct {
	Kind Kind
	Num  float64
	Sym  interner.Symbol
	B    bool
}

// NilValue is the singleton nil value.
var NilValue = Value{Kind: Nil}

// NewBool returns a Bool value.
func NewBool(b bool) Value { return Value{Kind: Bool, B: b} }

// NewNumber returns a Number value.
func NewNumber(n float64) Value { return Value{Kind: Number, Num: n} }

// NewString returns a String value referencing sym.
func NewString(sym interner.Symbol) Value { return Value{Kind: String, Sym: sym} }

// IsFalsey reports whether v is Nil or Bool(false); every other value is
// truthy.
func (v Value) IsFalsey() bool {
	switch v.Kind {
	case Nil:
		return true
	case Bool:
		return !v.B
	default:
		return false
	}
}

// Equal implements the language's `==`: same variant and same payload.
// Number comparison uses IEEE-754 equality, so NaN == NaN is false. String
// comparison is Symbol equality, which is O(1) and correct because symbols
// from the same Interner are equal iff their content is equal.
func (v Value) Equal(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case Bool:
		return v.B == other.B
	case Nil:
		return true
	case Number:
		return v.Num == other.Num
	case String:
		return v.Sym == other.Sym
	default:
		return false
	}
}

// Render formats v for output: Bool as "true"/"false", Nil as "nil", Number
// as the shortest round-tripping decimal, String as its interned bytes.
func (v Value) Render(in *interner.Interner) string {
	switch v.Kind {
	case Bool:
		return strconv.FormatBool(v.B)
	case Nil:
		return "nil"
	case Number:
		return strconv.FormatFloat(v.Num, 'g', -1, 64)
	case String:
		return in.Lookup(v.Sym)
	default:
		return ""
	}
}
