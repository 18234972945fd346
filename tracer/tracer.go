// Package tracer owns the process-wide filter-core state and drives
// the per-event evaluation pipeline, mirroring filter_action.c's
// filtering_parsing_finish/filter_syscall as methods of one struct
// rather than a handful of file-scope globals.
package tracer

import (
	"tracefilter/action"
	"tracefilter/event"
	"tracefilter/logging"
	"tracefilter/pathset"
	"tracefilter/qualify"
	"tracefilter/sysent"
)

// Context is the owned, testable replacement for the process-wide
// globals the design notes call out: the actions vector, default_flags,
// signal_set, scratch buffer, and global_path_set all live here.
type Context struct {
	Actions      *action.Table
	Qualify      *qualify.Frontend
	PathSet      *pathset.Set
	SyscallTable *sysent.Table

	pathTracingRequested bool
	pathPattern          string
	finalized            bool
}

// NewContext builds an empty context bound to table, ready to accept
// qualify-spec registrations.
func NewContext(table *sysent.Table) *Context {
	actions := action.NewTable(table)
	paths := pathset.New()
	return &Context{
		Actions:      actions,
		Qualify:      qualify.New(actions, table, paths),
		PathSet:      paths,
		SyscallTable: table,
	}
}

// ParseQualify registers one ACTION=MAIN[:ARGS] qualify-spec. Warnings
// (extraneous ARGS on an argumentless action) are logged, not returned.
func (c *Context) ParseQualify(name, main, args string) error {
	warning, err := c.Qualify.ParseAction(name, main, args)
	if err != nil {
		return err
	}
	if warning != "" {
		logging.Warn(warning)
	}
	return nil
}

// RequestPathTracing marks that path tracing was requested for pattern,
// so Finalize knows to synthesize trace=all if no explicit trace=
// action exists and to conjoin a path filter into every trace action.
func (c *Context) RequestPathTracing(pattern string) {
	c.pathTracingRequested = true
	c.pathPattern = pattern
}

// Finalize freezes registration: it performs path injection, sorts
// actions by (priority asc, id desc), and sizes the scratch vector.
// It must be called after all qualify-specs are parsed and before
// FilterSyscall is ever called; calls after the first are no-ops.
func (c *Context) Finalize() error {
	if c.finalized {
		return nil
	}
	if err := c.Actions.Finalize(c.pathTracingRequested, c.pathPattern, c.PathSet); err != nil {
		return err
	}
	c.finalized = true
	return nil
}

// FilterSyscall is the pipeline driver: per event, OR the default
// qualifier flags into the event's mask, then evaluate every
// registered action in sorted order, applying those whose prefilter
// and expression both pass.
func (c *Context) FilterSyscall(e *event.Event) {
	e.QualFlags |= c.Actions.DefaultFlags

	for _, a := range c.Actions.Actions() {
		if a.Type.Prefilter != nil && !a.Type.Prefilter(e, a) {
			continue
		}

		scratch := c.Actions.Scratch[:len(a.Filters)]
		for i, f := range a.Filters {
			scratch[i] = f.Run(e)
		}

		if !a.Expr.Evaluate(scratch) {
			continue
		}
		a.Type.Apply(e, a)
	}
}
