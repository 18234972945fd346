// Package qualify is the DSL front-end that dispatches top-level
// qualify-spec keywords (trace=, abbrev=, raw=, verbose=, read=,
// write=, signal=, inject=, fault=) to the filter/action/inject
// components, mirroring filter_qualify.c's qual_options[] table and
// parse_qualify_action.
package qualify

import (
	"tracefilter/action"
	"tracefilter/errors"
	"tracefilter/filter"
	"tracefilter/inject"
	"tracefilter/numberset"
	"tracefilter/sigtab"
	"tracefilter/sysent"
	"tracefilter/sysfilter"
)

// aliases maps every recognised keyword and short alias to its canonical
// action name.
var aliases = map[string]string{
	"trace": "trace", "t": "trace",
	"abbrev": "abbrev", "a": "abbrev",
	"verbose": "verbose", "v": "verbose",
	"raw": "raw", "x": "raw",
	"signal": "signal", "signals": "signal", "s": "signal",
	"read": "read", "r": "read",
	"write": "write", "writes": "write", "w": "write",
	"fault":  "fault",
	"inject": "inject",
}

// Frontend holds the state one qualify-spec parse pass needs beyond a
// single action: the action table every filter-bearing keyword
// registers into, the syscall table filters are parsed against, the
// path selector path tracing defers to, and the process-wide signal
// set that signal= repopulates.
type Frontend struct {
	Actions      *action.Table
	SyscallTable *sysent.Table
	PathSelector filter.PathSelector
	SignalSet    numberset.Set
}

// New returns a Frontend bound to the given action table and
// collaborators.
func New(actions *action.Table, syscallTable *sysent.Table, selector filter.PathSelector) *Frontend {
	return &Frontend{Actions: actions, SyscallTable: syscallTable, PathSelector: selector}
}

// ParseAction parses one ACTION=MAIN[:ARGS] qualify-spec. It returns a
// non-empty warning when ARGS was supplied on an action that takes none;
// that case is a warning, not a fatal error.
func (f *Frontend) ParseAction(name, main, args string) (warning string, err error) {
	canon, ok := aliases[name]
	if !ok {
		return "", errors.WrapWithToken(errors.ErrUnknownAction, errors.ErrSyntax, "qualify", name)
	}

	if canon == "signal" {
		if args != "" {
			warning = "signal= takes no arguments; ignoring '" + args + "'"
		}
		set, err := sysfilter.ParseGenericSet(main, true, "signal", sigtab.ResolveSignal)
		if err != nil {
			return "", err
		}
		// signal= clears and repopulates the global signal set rather than
		// accumulating across repeated invocations.
		f.SignalSet = set
		return warning, nil
	}

	desc, ok := action.Types[canon]
	if !ok {
		return "", errors.WrapWithToken(errors.ErrUnknownAction, errors.ErrSyntax, "qualify", name)
	}

	act, err := f.Actions.FindOrAdd(canon)
	if err != nil {
		return "", err
	}

	var leaf filter.Filter
	switch canon {
	case "read", "write":
		leaf, err = filter.ParseFD(main, true, f.SyscallTable)
	default:
		leaf, err = filter.ParseSyscall(main, true, f.SyscallTable)
	}
	if err != nil {
		return "", err
	}
	act.AddFilter(leaf)

	if desc.Argumented {
		opts, err := inject.Parse(args, ':', desc.Fault)
		if err != nil {
			return "", err
		}
		act.Inject = opts
	} else if args != "" {
		warning = canon + "= takes no arguments; ignoring '" + args + "'"
	}

	return warning, nil
}
