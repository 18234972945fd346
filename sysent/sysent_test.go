package sysent

import "testing"

func TestNativeNumbering(t *testing.T) {
	tbl := New()
	if got := tbl.Name(0, 257); got != "openat" {
		t.Fatalf("Name(0, 257) = %q, want openat", got)
	}
	if got := tbl.Name(0, 3); got != "close" {
		t.Fatalf("Name(0, 3) = %q, want close", got)
	}
}

func TestCompatPersonalityDiffers(t *testing.T) {
	tbl := New()
	if got := tbl.Name(1, 3); got != "write" {
		t.Fatalf("Name(1, 3) = %q, want write", got)
	}
	if got := tbl.Name(1, 257); got != "" {
		t.Fatalf("Name(1, 257) = %q, want empty", got)
	}
}

func TestFlagsClassification(t *testing.T) {
	tbl := New()
	if tbl.Flags(0, 5)&TraceFstat == 0 {
		t.Fatalf("fstat missing TraceFstat flag")
	}
	if tbl.Flags(0, 5)&TraceStatLike == 0 {
		t.Fatalf("fstat missing TraceStatLike flag")
	}
	if tbl.Flags(0, 332)&TraceStatLike == 0 {
		t.Fatalf("statx missing TraceStatLike flag")
	}
	if tbl.Flags(0, 332)&TraceStat != 0 {
		t.Fatalf("statx should not carry the narrower TraceStat flag")
	}
}

func TestSupportedPersonalities(t *testing.T) {
	tbl := New()
	if tbl.SupportedPersonalities() != 2 {
		t.Fatalf("SupportedPersonalities() = %d, want 2", tbl.SupportedPersonalities())
	}
}
