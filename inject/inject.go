// Package inject parses the when=/error=/retval=/signal= tokens of the
// qualify DSL's inject= and fault= syntax into an injection
// specification, mirroring filter_qualify.c's parse_inject_common_args.
package inject

import (
	"math"
	"strconv"
	"strings"

	"tracefilter/errors"
	"tracefilter/sigtab"
)

// DefaultSentinel marks Rval as not-yet-set. It lies outside both the
// valid negated-errno range and the valid non-negative retval range, so
// it can never be produced by a legitimate error=/retval= token.
const DefaultSentinel int32 = math.MinInt32

// Opts is the parsed injection specification.
type Opts struct {
	First       uint16
	Step        uint16
	Rval        int32
	Signo       uint8
	Initialised bool
}

// Fires reports whether an action carrying these options should inject
// on the matchCount-th match of its filter expression (1-based).
func (o *Opts) Fires(matchCount uint32) bool {
	first := uint32(o.First)
	if matchCount < first {
		return false
	}
	if matchCount == first {
		return true
	}
	if o.Step == 0 {
		return false
	}
	return (matchCount-first)%uint32(o.Step) == 0
}

// Parse parses spec, a sep-separated run of when=/error=/retval=/signal=
// tokens. faultTokensOnly restricts the accepted tokens to when= and
// error=, matching fault= syntax; inject= syntax passes false.
func Parse(spec string, sep byte, faultTokensOnly bool) (*Opts, error) {
	o := &Opts{First: 1, Step: 1, Rval: DefaultSentinel, Signo: 0}

	errorOrRetvalSet := false
	for _, tok := range strings.Split(spec, string(sep)) {
		if tok == "" {
			continue
		}
		key, val, ok := strings.Cut(tok, "=")
		if !ok || val == "" {
			return nil, errors.WrapWithToken(errors.ErrInvalidInjectArg, errors.ErrSemantic, "inject", tok)
		}
		switch key {
		case "when":
			if err := parseWhen(val, o); err != nil {
				return nil, err
			}
		case "error":
			if errorOrRetvalSet {
				return nil, errors.ErrInvalidInjectArg
			}
			errno := sigtab.ResolveErrno(val)
			if errno < 0 {
				return nil, errors.WrapWithToken(errors.ErrInvalidErrno, errors.ErrSyntax, "inject", val)
			}
			o.Rval = -int32(errno)
			errorOrRetvalSet = true
		case "retval":
			if faultTokensOnly {
				return nil, errors.ErrFaultTokenForbidden
			}
			if errorOrRetvalSet {
				return nil, errors.ErrInvalidInjectArg
			}
			n, err := strconv.ParseUint(val, 10, 31)
			if err != nil {
				return nil, errors.WrapWithToken(errors.ErrInvalidInjectArg, errors.ErrSyntax, "inject", val)
			}
			o.Rval = int32(n)
			errorOrRetvalSet = true
		case "signal":
			if faultTokensOnly {
				return nil, errors.ErrFaultTokenForbidden
			}
			sig := sigtab.ResolveSignal(val)
			if sig <= 0 {
				return nil, errors.WrapWithToken(errors.ErrInvalidSignal, errors.ErrSyntax, "inject", val)
			}
			o.Signo = uint8(sig)
		default:
			return nil, errors.WrapWithToken(errors.ErrInvalidInjectArg, errors.ErrSemantic, "inject", tok)
		}
	}

	if o.Rval == DefaultSentinel && o.Signo == 0 {
		if faultTokensOnly {
			o.Rval = -int32(sigtab.ResolveErrno("ENOSYS"))
		} else {
			return nil, errors.ErrInvalidInjectArg
		}
	}

	o.Initialised = true
	return o, nil
}

func parseWhen(val string, o *Opts) error {
	parts := strings.SplitN(val, "+", 2)
	first, err := strconv.ParseUint(parts[0], 10, 32)
	if err != nil || first < 1 || first > 65535 {
		return errors.WrapWithToken(errors.ErrInvalidInjectArg, errors.ErrSemantic, "inject", "when="+val)
	}
	o.First = uint16(first)

	if len(parts) == 1 {
		o.Step = 0
		return nil
	}
	if parts[1] == "" {
		o.Step = 1
		return nil
	}
	step, err := strconv.ParseUint(parts[1], 10, 32)
	if err != nil || step < 1 || step > 65535 {
		return errors.WrapWithToken(errors.ErrInvalidInjectArg, errors.ErrSemantic, "inject", "when="+val)
	}
	o.Step = uint16(step)
	return nil
}
