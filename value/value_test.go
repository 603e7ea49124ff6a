package value

import (
	"testing"

	"github.com/sentientmonkey/crafting-interpreters/interner"
)

func TestIsFalsey(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want bool
	}{
		{"nil", NilValue, true},
		{"false", NewBool(false), true},
		{"true", NewBool(true), false},
		{"zero", NewNumber(0), false},
		{"empty string", NewString(0), false},
	}

	for _, tt := range tests {
		if got := tt.v.IsFalsey(); got != tt.want {
			t.Errorf("%s: IsFalsey() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestEqual(t *testing.T) {
	if !NewNumber(5).Equal(NewNumber(5)) {
		t.Error("5 == 5 should be true")
	}
	if NewNumber(5).Equal(NewNumber(4)) {
		t.Error("5 == 4 should be false")
	}
	if NewNumber(5).Equal(NilValue) {
		t.Error("5 == nil should be false")
	}
	if !NilValue.Equal(NilValue) {
		t.Error("nil == nil should be true")
	}
	nan := NewNumber(nanValue())
	if nan.Equal(nan) {
		t.Error("NaN == NaN should be false")
	}
}

func nanValue() float64 {
	var zero float64
	return zero / zero
}

func TestRender(t *testing.T) {
	in := interner.New()
	sym := in.Intern("hi")

	tests := []struct {
		v    Value
		want string
	}{
		{NewBool(true), "true"},
		{NewBool(false), "false"},
		{NilValue, "nil"},
		{NewNumber(3), "3"},
		{NewNumber(0.8214285714285714), "0.8214285714285714"},
		{NewString(sym), "hi"},
	}

	for _, tt := range tests {
		if got := tt.v.Render(in); got != tt.want {
			t.Errorf("Render(%+v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}
