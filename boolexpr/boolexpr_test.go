package boolexpr

import "testing"

func TestEmptyExprEvaluatesTrue(t *testing.T) {
	e := New()
	if !e.Evaluate(nil) {
		t.Fatal("empty expression should evaluate true")
	}
}

func TestAddANDRequiresAllTrue(t *testing.T) {
	e := New()
	e.AddAND(0)
	e.AddAND(2)

	if !e.Evaluate([]bool{true, false, true}) {
		t.Fatal("expected true when indices 0 and 2 are both true")
	}
	if e.Evaluate([]bool{true, false, false}) {
		t.Fatal("expected false when index 2 is false")
	}
}

func TestEvaluateOutOfRangeIsFalse(t *testing.T) {
	e := New()
	e.AddAND(5)
	if e.Evaluate([]bool{true}) {
		t.Fatal("out-of-range index should evaluate false")
	}
}

func TestSetQualifyModeFoldsNewFilters(t *testing.T) {
	e := New()
	e.AddAND(0)
	// action now has 2 filters total, the last 1 is new
	e.SetQualifyMode(2, 1)
	if e.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", e.Len())
	}
	if !e.Evaluate([]bool{true, true}) {
		t.Fatal("expected true with both filters true")
	}
	if e.Evaluate([]bool{true, false}) {
		t.Fatal("expected false when new filter is false")
	}
}
