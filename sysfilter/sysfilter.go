// Package sysfilter parses the comma-separated syscall/generic filter
// lists of the qualify DSL into numberset.Set values, playing the role
// of basic_filters.c's parse_syscall_set/parse_set.
package sysfilter

import (
	"regexp"
	"strconv"
	"strings"

	"tracefilter/errors"
	"tracefilter/numberset"
	"tracefilter/sysent"
)

// basicClasses are accepted bare (qualify mode only) or %-prefixed.
var basicClasses = map[string]uint32{
	"desc":    sysent.TraceDesc,
	"file":    sysent.TraceFile,
	"memory":  sysent.TraceMemory,
	"process": sysent.TraceProcess,
	"signal":  sysent.TraceSignal,
	"ipc":     sysent.TraceIPC,
	"network": sysent.TraceNetwork,
}

// statClasses require a single "%" prefix always.
var statClasses = map[string]uint32{
	"stat":    sysent.TraceStat,
	"lstat":   sysent.TraceLstat,
	"fstat":   sysent.TraceFstat,
	"statfs":  sysent.TraceStatfs,
	"fstatfs": sysent.TraceFstatfs,
}

// doubledStatClasses are the "%%stat"/"%%statfs" wide forms.
var doubledStatClasses = map[string]uint32{
	"stat":   sysent.TraceStatLike,
	"statfs": sysent.TraceStatfsLike,
}

// lookupClass resolves a class token to its flag word. Bare names
// (no leading '%') are only accepted in qualify mode.
func lookupClass(token string, qualifyMode bool) (uint32, bool) {
	switch {
	case strings.HasPrefix(token, "%%"):
		flag, ok := doubledStatClasses[token[2:]]
		return flag, ok
	case strings.HasPrefix(token, "%"):
		name := token[1:]
		if flag, ok := statClasses[name]; ok {
			return flag, true
		}
		flag, ok := basicClasses[name]
		return flag, ok
	default:
		if !qualifyMode {
			return 0, false
		}
		flag, ok := basicClasses[token]
		return flag, ok
	}
}

// ParseSyscallSet parses one comma-separated syscall filter list into a
// per-personality array of NumberSet, one slot per table personality.
func ParseSyscallSet(spec string, qualifyMode bool, table *sysent.Table) ([]numberset.Set, error) {
	n := table.SupportedPersonalities()
	sets := make([]numberset.Set, n)

	s := spec
	invertCount := 0
	if qualifyMode {
		for strings.HasPrefix(s, "!") {
			s = s[1:]
			invertCount++
		}
	}
	if invertCount%2 == 1 {
		for i := range sets {
			sets[i].InvertFlip()
		}
	}

	switch s {
	case "none":
		return sets, nil
	case "all":
		for i := range sets {
			sets[i].InvertFlip()
		}
		return sets, nil
	}

	satisfied := false
	for _, raw := range strings.Split(s, ",") {
		tok := raw
		ignoreFail := 0
		for strings.HasPrefix(tok, "?") {
			tok = tok[1:]
			ignoreFail++
		}
		if ignoreFail > 0 {
			satisfied = true
		}
		if err := parseSyscallToken(tok, qualifyMode, table, sets); err != nil {
			if ignoreFail > 0 {
				continue
			}
			kind := errors.ErrSyntax
			if k, ok := errors.GetKind(err); ok {
				kind = k
			}
			return nil, errors.WrapWithToken(err, kind, "syscall", tok)
		}
		satisfied = true
	}
	if !satisfied {
		return nil, errors.Invalid("syscall", "system call", spec)
	}
	return sets, nil
}

func parseSyscallToken(token string, qualifyMode bool, table *sysent.Table, sets []numberset.Set) error {
	if token == "" {
		return errors.ErrInvalidToken
	}
	switch {
	case token[0] >= '0' && token[0] <= '9':
		return parseSyscallNumber(token, table, sets)
	case token[0] == '/':
		return parseSyscallRegex(token[1:], table, sets)
	default:
		if flag, ok := lookupClass(token, qualifyMode); ok {
			addSyscallClass(flag, table, sets)
			return nil
		}
		return parseSyscallName(token, table, sets)
	}
}

func parseSyscallNumber(token string, table *sysent.Table, sets []numberset.Set) error {
	n, err := strconv.ParseUint(token, 10, 32)
	if err != nil {
		return errors.ErrInvalidToken
	}
	accepted := false
	for p := 0; p < table.SupportedPersonalities(); p++ {
		if int(n) < table.NumSyscalls(p) {
			sets[p].Add(uint(n))
			accepted = true
		}
	}
	if !accepted {
		return errors.ErrInvalidToken
	}
	return nil
}

func parseSyscallRegex(pattern string, table *sysent.Table, sets []numberset.Set) error {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return errors.Wrap(err, errors.ErrRegex, "syscall")
	}
	matched := false
	for p := 0; p < table.SupportedPersonalities(); p++ {
		for nr := 0; nr < table.NumSyscalls(p); nr++ {
			name := table.Name(p, nr)
			if name == "" {
				continue
			}
			if re.MatchString(name) {
				sets[p].Add(uint(nr))
				matched = true
			}
		}
	}
	if !matched {
		return errors.ErrInvalidToken
	}
	return nil
}

func parseSyscallName(name string, table *sysent.Table, sets []numberset.Set) error {
	found := false
	for p := 0; p < table.SupportedPersonalities(); p++ {
		for nr := 0; nr < table.NumSyscalls(p); nr++ {
			if table.Name(p, nr) == name {
				sets[p].Add(uint(nr))
				found = true
			}
		}
	}
	if !found {
		return errors.ErrInvalidToken
	}
	return nil
}

func addSyscallClass(flag uint32, table *sysent.Table, sets []numberset.Set) {
	for p := 0; p < table.SupportedPersonalities(); p++ {
		for nr := 0; nr < table.NumSyscalls(p); nr++ {
			if table.Flags(p, nr)&flag == flag {
				sets[p].Add(uint(nr))
			}
		}
	}
}

// Resolver maps a token to a non-negative integer, or returns a negative
// number to abort parsing with a human-readable diagnostic naming the
// offending kind (e.g. "descriptor", "signal").
type Resolver func(token string) int

// ParseGenericSet parses one comma-separated list via a caller-supplied
// resolver into a single NumberSet, playing the role of parse_set.
func ParseGenericSet(spec string, qualifyMode bool, kind string, resolve Resolver) (numberset.Set, error) {
	var set numberset.Set

	s := spec
	invertCount := 0
	if qualifyMode {
		for strings.HasPrefix(s, "!") {
			s = s[1:]
			invertCount++
		}
	}
	if invertCount%2 == 1 {
		set.InvertFlip()
	}

	switch s {
	case "none":
		return set, nil
	case "all":
		set.InvertFlip()
		return set, nil
	}

	satisfied := false
	for _, raw := range strings.Split(s, ",") {
		tok := raw
		ignoreFail := 0
		for strings.HasPrefix(tok, "?") {
			tok = tok[1:]
			ignoreFail++
		}
		if ignoreFail > 0 {
			satisfied = true
		}
		n := resolve(tok)
		if n < 0 {
			if ignoreFail > 0 {
				continue
			}
			return numberset.Set{}, errors.Invalid("generic", kind, tok)
		}
		set.Add(uint(n))
		satisfied = true
	}
	if !satisfied {
		return numberset.Set{}, errors.Invalid("generic", kind, spec)
	}
	return set, nil
}

// ParseUnsigned is the resolver used by the fd filter primitive: plain
// unsigned decimal, nothing else.
func ParseUnsigned(token string) int {
	n, err := strconv.ParseUint(token, 10, 32)
	if err != nil {
		return -1
	}
	return int(n)
}
