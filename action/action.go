// Package action implements FilterAction and its static type table,
// mirroring filter_action.c's action_types[]/find_or_add_action/
// filtering_parsing_finish.
package action

import (
	"sort"

	"tracefilter/boolexpr"
	"tracefilter/errors"
	"tracefilter/event"
	"tracefilter/filter"
	"tracefilter/inject"
	"tracefilter/sysent"
)

func errUnknownAction(name string) error {
	return errors.WrapWithToken(errors.ErrUnknownAction, errors.ErrSyntax, "qualify", name)
}

// Descriptor is one row of the static action-type table: a name, a
// static priority (0 is highest), the qualifier-flag bit it owns, and
// the behaviour hooks the pipeline driver invokes.
type Descriptor struct {
	Name       string
	Priority   int
	QualFlag   uint32
	Argumented bool // inject/fault: carries a private InjectOpts, always appends
	Fault      bool // fault syntax: only when=/error=, defaults rval to -ENOSYS
	Prefilter  func(e *event.Event, a *Action) bool
	Apply      func(e *event.Event, a *Action)
}

func notInjected(e *event.Event, a *Action) bool { return !e.Injected }
func isTraced(e *event.Event, a *Action) bool    { return e.IsTraced() }

func applyQualBit(bit uint32) func(e *event.Event, a *Action) {
	return func(e *event.Event, a *Action) {
		e.QualFlags |= bit
	}
}

func applyInject(e *event.Event, a *Action) {
	if a.Inject == nil {
		return
	}
	count := a.matchCounts[e.TaskID] + 1
	a.matchCounts[e.TaskID] = count
	if !a.Inject.Fires(count) {
		return
	}
	e.Injected = true
	e.InjectedRval = a.Inject.Rval
	e.InjectedSig = a.Inject.Signo
	e.QualFlags |= event.QualInject
}

// Types is the static action-type table, indexed by name.
var Types = map[string]*Descriptor{
	"trace":  {Name: "trace", Priority: 0, QualFlag: event.QualTrace, Apply: applyQualBit(event.QualTrace)},
	"inject": {Name: "inject", Priority: 1, QualFlag: event.QualInject, Argumented: true, Prefilter: notInjected, Apply: applyInject},
	"fault":  {Name: "fault", Priority: 1, QualFlag: event.QualInject, Argumented: true, Fault: true, Prefilter: notInjected, Apply: applyInject},
	"read":   {Name: "read", Priority: 2, QualFlag: event.QualRead, Prefilter: isTraced, Apply: applyQualBit(event.QualRead)},
	"write":  {Name: "write", Priority: 2, QualFlag: event.QualWrite, Prefilter: isTraced, Apply: applyQualBit(event.QualWrite)},
	"raw":    {Name: "raw", Priority: 2, QualFlag: event.QualRaw, Prefilter: isTraced, Apply: applyQualBit(event.QualRaw)},
	"abbrev": {Name: "abbrev", Priority: 2, QualFlag: event.QualAbbrev, Prefilter: isTraced, Apply: applyQualBit(event.QualAbbrev)},
	"verbose": {Name: "verbose", Priority: 2, QualFlag: event.QualVerbose, Prefilter: isTraced, Apply: applyQualBit(event.QualVerbose)},
}

// Action is a (type, expression, filters, private data) tuple, with a
// monotonically assigned insertion id used as the priority tie-breaker.
type Action struct {
	ID      int
	Type    *Descriptor
	Filters []filter.Filter
	Expr    *boolexpr.Expr
	Inject  *inject.Opts

	matchCounts map[uint64]uint32
}

// AddFilter appends f to the action's filter list and folds it into the
// expression as a new AND conjunct.
func (a *Action) AddFilter(f filter.Filter) {
	a.Filters = append(a.Filters, f)
	a.Expr.SetQualifyMode(len(a.Filters), 1)
}

// Table is the process-wide collection of registered actions plus the
// state the pipeline driver needs: the default qualifier mask, the
// scratch evaluation vector, and the syscall table view actions parse
// filters against.
type Table struct {
	actions      []*Action
	nextID       int
	DefaultFlags uint32
	Scratch      []bool
	SyscallTable *sysent.Table
}

// NewTable returns an empty action table with every qualifier bit set
// in DefaultFlags, mirroring DEFAULT_QUAL_FLAGS at startup.
func NewTable(syscallTable *sysent.Table) *Table {
	return &Table{
		DefaultFlags: event.DefaultQualFlags,
		SyscallTable: syscallTable,
	}
}

// Actions returns the registered actions in their current order. Call
// Finalize first to obtain the sorted, pipeline-ready order.
func (t *Table) Actions() []*Action {
	return t.actions
}

// FindOrAdd returns the existing action of typeName if that type takes
// no arguments (merging further filters into it via AND), or always
// appends a fresh one for an argumented type (inject/fault).
func (t *Table) FindOrAdd(typeName string) (*Action, error) {
	desc, ok := Types[typeName]
	if !ok {
		return nil, errUnknownAction(typeName)
	}
	if !desc.Argumented {
		for _, a := range t.actions {
			if a.Type == desc {
				return a, nil
			}
		}
	}
	a := &Action{
		ID:          t.nextID,
		Type:        desc,
		Expr:        boolexpr.New(),
		matchCounts: make(map[uint64]uint32),
	}
	t.nextID++
	t.actions = append(t.actions, a)
	t.DefaultFlags &^= desc.QualFlag
	return a, nil
}

// Finalize injects a synthetic trace=all action if path tracing was
// requested without an explicit trace=, conjoins a path filter into
// every trace action's expression, sorts actions by (priority asc, id
// desc), and sizes the scratch vector to the widest action.
func (t *Table) Finalize(pathTracingRequested bool, pathPattern string, selector filter.PathSelector) error {
	if pathTracingRequested {
		hasTrace := false
		for _, a := range t.actions {
			if a.Type.Name == "trace" {
				hasTrace = true
				break
			}
		}
		if !hasTrace {
			traceAction, err := t.FindOrAdd("trace")
			if err != nil {
				return err
			}
			sc, err := filter.ParseSyscall("all", true, t.SyscallTable)
			if err != nil {
				return err
			}
			traceAction.AddFilter(sc)
		}
		for _, a := range t.actions {
			if a.Type.Name != "trace" {
				continue
			}
			pf, err := filter.ParsePath(pathPattern, selector)
			if err != nil {
				return err
			}
			a.AddFilter(pf)
		}
	}

	sort.SliceStable(t.actions, func(i, j int) bool {
		if t.actions[i].Type.Priority != t.actions[j].Type.Priority {
			return t.actions[i].Type.Priority < t.actions[j].Type.Priority
		}
		return t.actions[i].ID > t.actions[j].ID
	})

	maxFilters := 0
	for _, a := range t.actions {
		if len(a.Filters) > maxFilters {
			maxFilters = len(a.Filters)
		}
	}
	t.Scratch = make([]bool, maxFilters)
	return nil
}
