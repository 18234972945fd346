// Package filter implements the named leaf filter primitives — syscall,
// fd, path — each with a parse/run pair, mirroring basic_filters.c's
// DECL_FILTER(syscall)/DECL_FILTER(fd)/DECL_FILTER(path) triples.
package filter

import (
	"tracefilter/event"
	"tracefilter/numberset"
	"tracefilter/sysent"
	"tracefilter/sysfilter"
)

// Filter is one attached leaf predicate of a FilterAction.
type Filter interface {
	Name() string
	Run(e *event.Event) bool
}

// Syscall matches the event's syscall number against a per-personality
// NumberSet.
type Syscall struct {
	Sets []numberset.Set
}

// ParseSyscall builds a Syscall filter from a SyscallSet spec.
func ParseSyscall(spec string, qualifyMode bool, table *sysent.Table) (*Syscall, error) {
	sets, err := sysfilter.ParseSyscallSet(spec, qualifyMode, table)
	if err != nil {
		return nil, err
	}
	return &Syscall{Sets: sets}, nil
}

func (s *Syscall) Name() string { return "syscall" }

func (s *Syscall) Run(e *event.Event) bool {
	if e.Personality < 0 || e.Personality >= len(s.Sets) {
		return false
	}
	return s.Sets[e.Personality].Contains(uint(e.Syscall))
}

// FD matches the event's descriptor argument against a NumberSet,
// special-casing the message-queue syscalls that carry their fd in
// argument 0 without being tagged descriptor-class.
type FD struct {
	Set   numberset.Set
	table *sysent.Table
}

// ParseFD builds a FD filter from a GenericSet spec resolved against
// plain unsigned integers.
func ParseFD(spec string, qualifyMode bool, table *sysent.Table) (*FD, error) {
	set, err := sysfilter.ParseGenericSet(spec, qualifyMode, "descriptor", sysfilter.ParseUnsigned)
	if err != nil {
		return nil, err
	}
	return &FD{Set: set, table: table}, nil
}

func (f *FD) Name() string { return "fd" }

func (f *FD) Run(e *event.Event) bool {
	fd, ok := f.descriptorArg(e)
	if !ok || fd < 0 {
		return f.Set.Invert()
	}
	return f.Set.Contains(uint(fd))
}

func (f *FD) descriptorArg(e *event.Event) (int64, bool) {
	switch e.Semantic {
	case event.SemMqTimedSend, event.SemMqTimedReceive:
		return e.Args[0], true
	}
	if f.table.Flags(e.Personality, e.Syscall)&sysent.TraceDesc == 0 {
		return 0, false
	}
	return e.Args[0], true
}

// PathSelector is the opaque collaborator a Path filter defers to: it
// owns the shared path set that Select appends patterns into and that
// Match tests an event's path against.
type PathSelector interface {
	Select(pattern string) error
	Match(path string) bool
}

// Path defers both parsing and matching to an external PathSelector.
type Path struct {
	selector PathSelector
}

// ParsePath registers pattern with selector and returns a Path filter
// bound to it.
func ParsePath(pattern string, selector PathSelector) (*Path, error) {
	if err := selector.Select(pattern); err != nil {
		return nil, err
	}
	return &Path{selector: selector}, nil
}

func (p *Path) Name() string { return "path" }

func (p *Path) Run(e *event.Event) bool {
	return p.selector.Match(e.Path)
}
