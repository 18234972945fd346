// Package sigtab resolves signal and errno names the way strace's
// signame()/find_errno_by_name() environment collaborators do, backed
// by the real Linux constants in golang.org/x/sys/unix rather than a
// hand-maintained table.
package sigtab

import (
	"strconv"
	"strings"

	"golang.org/x/sys/unix"
)

// signalNames maps the bare (no "SIG" prefix) upper-case signal name to
// its number. Only the fixed, non-realtime signals are listed; realtime
// signals are addressed numerically.
var signalNames = map[string]uint8{
	"HUP":    uint8(unix.SIGHUP),
	"INT":    uint8(unix.SIGINT),
	"QUIT":   uint8(unix.SIGQUIT),
	"ILL":    uint8(unix.SIGILL),
	"TRAP":   uint8(unix.SIGTRAP),
	"ABRT":   uint8(unix.SIGABRT),
	"IOT":    uint8(unix.SIGIOT),
	"BUS":    uint8(unix.SIGBUS),
	"FPE":    uint8(unix.SIGFPE),
	"KILL":   uint8(unix.SIGKILL),
	"USR1":   uint8(unix.SIGUSR1),
	"SEGV":   uint8(unix.SIGSEGV),
	"USR2":   uint8(unix.SIGUSR2),
	"PIPE":   uint8(unix.SIGPIPE),
	"ALRM":   uint8(unix.SIGALRM),
	"TERM":   uint8(unix.SIGTERM),
	"STKFLT": uint8(unix.SIGSTKFLT),
	"CHLD":   uint8(unix.SIGCHLD),
	"CLD":    uint8(unix.SIGCLD),
	"CONT":   uint8(unix.SIGCONT),
	"STOP":   uint8(unix.SIGSTOP),
	"TSTP":   uint8(unix.SIGTSTP),
	"TTIN":   uint8(unix.SIGTTIN),
	"TTOU":   uint8(unix.SIGTTOU),
	"URG":    uint8(unix.SIGURG),
	"XCPU":   uint8(unix.SIGXCPU),
	"XFSZ":   uint8(unix.SIGXFSZ),
	"VTALRM": uint8(unix.SIGVTALRM),
	"PROF":   uint8(unix.SIGPROF),
	"WINCH":  uint8(unix.SIGWINCH),
	"IO":     uint8(unix.SIGIO),
	"POLL":   uint8(unix.SIGPOLL),
	"PWR":    uint8(unix.SIGPWR),
	"SYS":    uint8(unix.SIGSYS),
}

// NSIG bounds the valid signal number range, mirroring NSIG.
const NSIG = 64

// ResolveSignal accepts a decimal 0..NSIG-1, or a case-insensitive name
// with an optional "SIG" prefix, and returns its number, or -1 if it
// does not resolve to anything, mirroring sigstr_to_uint's contract as
// a GenericSet resolver.
func ResolveSignal(token string) int {
	if token == "" {
		return -1
	}
	if n, err := strconv.ParseUint(token, 10, 8); err == nil {
		if n < NSIG {
			return int(n)
		}
		return -1
	}
	name := strings.ToUpper(token)
	name = strings.TrimPrefix(name, "SIG")
	if n, ok := signalNames[name]; ok {
		return int(n)
	}
	return -1
}

// errnoNames maps the upper-case errno name to its value.
var errnoNames = map[string]int{
	"EPERM": int(unix.EPERM), "ENOENT": int(unix.ENOENT), "ESRCH": int(unix.ESRCH),
	"EINTR": int(unix.EINTR), "EIO": int(unix.EIO), "ENXIO": int(unix.ENXIO),
	"E2BIG": int(unix.E2BIG), "ENOEXEC": int(unix.ENOEXEC), "EBADF": int(unix.EBADF),
	"ECHILD": int(unix.ECHILD), "EAGAIN": int(unix.EAGAIN), "ENOMEM": int(unix.ENOMEM),
	"EACCES": int(unix.EACCES), "EFAULT": int(unix.EFAULT), "ENOTBLK": int(unix.ENOTBLK),
	"EBUSY": int(unix.EBUSY), "EEXIST": int(unix.EEXIST), "EXDEV": int(unix.EXDEV),
	"ENODEV": int(unix.ENODEV), "ENOTDIR": int(unix.ENOTDIR), "EISDIR": int(unix.EISDIR),
	"EINVAL": int(unix.EINVAL), "ENFILE": int(unix.ENFILE), "EMFILE": int(unix.EMFILE),
	"ENOTTY": int(unix.ENOTTY), "ETXTBSY": int(unix.ETXTBSY), "EFBIG": int(unix.EFBIG),
	"ENOSPC": int(unix.ENOSPC), "ESPIPE": int(unix.ESPIPE), "EROFS": int(unix.EROFS),
	"EMLINK": int(unix.EMLINK), "EPIPE": int(unix.EPIPE), "EDOM": int(unix.EDOM),
	"ERANGE": int(unix.ERANGE), "ENOSYS": int(unix.ENOSYS), "ENOTEMPTY": int(unix.ENOTEMPTY),
	"ELOOP": int(unix.ELOOP), "ENAMETOOLONG": int(unix.ENAMETOOLONG), "ETIMEDOUT": int(unix.ETIMEDOUT),
	"ECONNREFUSED": int(unix.ECONNREFUSED), "ECONNRESET": int(unix.ECONNRESET),
	"EADDRINUSE": int(unix.EADDRINUSE), "EADDRNOTAVAIL": int(unix.EADDRNOTAVAIL),
}

// MaxErrnoValue is the maximum errno value this table resolves, mirroring
// MAX_ERRNO_VALUE.
const MaxErrnoValue = 133

// ResolveErrno accepts a decimal 1..MaxErrnoValue, or a case-insensitive
// errno name including its "E" prefix (e.g. "EIO") looked up in
// errnoNames, and returns its value, or -1 if it does not resolve.
func ResolveErrno(token string) int {
	if token == "" {
		return -1
	}
	if n, err := strconv.ParseUint(token, 10, 32); err == nil {
		if n >= 1 && n <= MaxErrnoValue {
			return int(n)
		}
		return -1
	}
	name := strings.ToUpper(token)
	if n, ok := errnoNames[name]; ok {
		return n
	}
	return -1
}
