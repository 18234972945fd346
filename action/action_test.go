package action

import (
	"testing"

	"tracefilter/event"
	"tracefilter/filter"
	"tracefilter/pathset"
	"tracefilter/sysent"
)

func TestFindOrAddArgumentlessIsIdempotent(t *testing.T) {
	tbl := NewTable(sysent.New())
	a1, err := tbl.FindOrAdd("trace")
	if err != nil {
		t.Fatalf("FindOrAdd: %v", err)
	}
	a2, err := tbl.FindOrAdd("trace")
	if err != nil {
		t.Fatalf("FindOrAdd: %v", err)
	}
	if a1 != a2 {
		t.Fatal("expected FindOrAdd(trace) to return the same action twice")
	}
	if len(tbl.Actions()) != 1 {
		t.Fatalf("len(Actions()) = %d, want 1", len(tbl.Actions()))
	}
}

func TestFindOrAddArgumentedAlwaysAppends(t *testing.T) {
	tbl := NewTable(sysent.New())
	a1, err := tbl.FindOrAdd("inject")
	if err != nil {
		t.Fatalf("FindOrAdd: %v", err)
	}
	a2, err := tbl.FindOrAdd("inject")
	if err != nil {
		t.Fatalf("FindOrAdd: %v", err)
	}
	if a1 == a2 {
		t.Fatal("expected FindOrAdd(inject) to append a new action each time")
	}
	if len(tbl.Actions()) != 2 {
		t.Fatalf("len(Actions()) = %d, want 2", len(tbl.Actions()))
	}
}

func TestDefaultFlagsDropOnFirstRegistration(t *testing.T) {
	tbl := NewTable(sysent.New())
	if tbl.DefaultFlags&event.QualTrace == 0 {
		t.Fatal("expected QualTrace set before any trace action registered")
	}
	if _, err := tbl.FindOrAdd("trace"); err != nil {
		t.Fatalf("FindOrAdd: %v", err)
	}
	if tbl.DefaultFlags&event.QualTrace != 0 {
		t.Fatal("expected QualTrace cleared after first trace action registered")
	}
	if _, err := tbl.FindOrAdd("trace"); err != nil {
		t.Fatalf("FindOrAdd: %v", err)
	}
	if tbl.DefaultFlags&event.QualTrace != 0 {
		t.Fatal("QualTrace must stay cleared")
	}
}

func TestFindOrAddUnknownAction(t *testing.T) {
	tbl := NewTable(sysent.New())
	if _, err := tbl.FindOrAdd("bogus"); err == nil {
		t.Fatal("expected error for unknown action keyword")
	}
}

func TestFinalizeSortsByPriority(t *testing.T) {
	tbl := NewTable(sysent.New())
	openAction, err := tbl.FindOrAdd("trace")
	if err != nil {
		t.Fatalf("FindOrAdd: %v", err)
	}
	readAction, err := tbl.FindOrAdd("abbrev")
	if err != nil {
		t.Fatalf("FindOrAdd: %v", err)
	}
	_ = openAction
	_ = readAction

	if err := tbl.Finalize(false, "", nil); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	actions := tbl.Actions()
	if len(actions) != 2 {
		t.Fatalf("len(actions) = %d, want 2", len(actions))
	}
	if actions[0].Type.Name != "trace" || actions[1].Type.Name != "abbrev" {
		t.Fatalf("expected trace (prio 0) before abbrev (prio 2), got %s then %s",
			actions[0].Type.Name, actions[1].Type.Name)
	}
}

func TestFinalizeTieBreaksLIFO(t *testing.T) {
	tbl := NewTable(sysent.New())
	first, err := tbl.FindOrAdd("inject")
	if err != nil {
		t.Fatalf("FindOrAdd: %v", err)
	}
	second, err := tbl.FindOrAdd("inject")
	if err != nil {
		t.Fatalf("FindOrAdd: %v", err)
	}

	if err := tbl.Finalize(false, "", nil); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	actions := tbl.Actions()
	if actions[0] != second || actions[1] != first {
		t.Fatal("expected the later-declared action of equal priority to sort first")
	}
}

func TestFinalizeSyntheticTraceAllForPathTracing(t *testing.T) {
	tbl := NewTable(sysent.New())
	ps := pathset.New()
	if err := tbl.Finalize(true, "/etc", ps); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	actions := tbl.Actions()
	if len(actions) != 1 || actions[0].Type.Name != "trace" {
		t.Fatalf("expected a single synthetic trace action, got %d actions", len(actions))
	}
	if len(actions[0].Filters) != 2 {
		t.Fatalf("expected trace=all conjoined with a path filter, got %d filters", len(actions[0].Filters))
	}
}

func TestFinalizeConjoinsPathIntoExistingTrace(t *testing.T) {
	table := sysent.New()
	tbl := NewTable(table)
	traceAction, err := tbl.FindOrAdd("trace")
	if err != nil {
		t.Fatalf("FindOrAdd: %v", err)
	}
	sc, err := filter.ParseSyscall("open", false, table)
	if err != nil {
		t.Fatalf("ParseSyscall: %v", err)
	}
	traceAction.AddFilter(sc)

	ps := pathset.New()
	if err := tbl.Finalize(true, "/etc", ps); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if len(traceAction.Filters) != 2 {
		t.Fatalf("expected the existing trace action to gain a path filter, got %d filters", len(traceAction.Filters))
	}
}
