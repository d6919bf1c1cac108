package types

import "testing"

func TestAssignableTo(t *testing.T) {
	tests := []struct {
		from, to Type
		want     bool
	}{
		{Integer, Integer, true},
		{Integer, Real, true},
		{Real, Integer, true},
		{Real, Real, true},
		{String, String, true},
		{String, Integer, false},
		{Boolean, Integer, false},
		{Unknown, Integer, true},
		{Integer, Unknown, true},
	}
	for _, tt := range tests {
		if got := AssignableTo(tt.from, tt.to); got != tt.want {
			t.Errorf("AssignableTo(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestResultOfArithmetic(t *testing.T) {
	tests := []struct {
		left, right Type
		want        Type
		ok          bool
	}{
		{Integer, Integer, Integer, true},
		{Integer, Real, Real, true},
		{Real, Integer, Real, true},
		{Real, Real, Real, true},
		{String, Integer, Unknown, false},
		{Boolean, Boolean, Unknown, false},
		{Unknown, Integer, Unknown, true},
	}
	for _, tt := range tests {
		got, ok := ResultOfArithmetic(tt.left, tt.right)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ResultOfArithmetic(%s, %s) = (%s, %v), want (%s, %v)", tt.left, tt.right, got, ok, tt.want, tt.ok)
		}
	}
}

func TestResultOfRelational(t *testing.T) {
	if !ResultOfRelational(Integer, Real) {
		t.Error("numeric types should be comparable")
	}
	if !ResultOfRelational(String, String) {
		t.Error("identical types should be comparable")
	}
	if ResultOfRelational(String, Integer) {
		t.Error("String and Integer should not be comparable")
	}
	if !ResultOfRelational(Unknown, String) {
		t.Error("Unknown should compare with anything")
	}
}

func TestResultOfLogical(t *testing.T) {
	if !ResultOfLogical(Boolean, Boolean) {
		t.Error("two Booleans should be valid")
	}
	if !ResultOfLogical(Boolean) {
		t.Error("a single Boolean operand should be valid")
	}
	if ResultOfLogical(Boolean, Integer) {
		t.Error("Integer is not a logical operand")
	}
	if !ResultOfLogical(Unknown, Boolean) {
		t.Error("Unknown should not cascade")
	}
}

func TestEqualsNeverMatchesUnknown(t *testing.T) {
	if Unknown.Equals(Unknown) {
		t.Error("Unknown must not equal itself")
	}
	if !Integer.Equals(Integer) {
		t.Error("Integer should equal Integer")
	}
}
