// Package sysent provides the per-personality syscall name/flags table
// that the filter core reads but does not build: it is the Go analogue
// of strace's sysent_vec/nsyscall_vec arrays.
//
// Personality 0 is built from the real x86_64 syscall numbers in
// golang.org/x/sys/unix. Personality 1 is a small synthetic compat table
// used to exercise the multi-personality code paths in tests; it is not
// a faithful i386/x32 ABI and must not be treated as one.
package sysent

import "golang.org/x/sys/unix"

// Class flag bits, combined in a syscall's Flags word. A syscall can
// carry several at once (e.g. openat is both TRACE_DESC and TRACE_FILE).
const (
	TraceDesc uint32 = 1 << iota
	TraceFile
	TraceMemory
	TraceProcess
	TraceSignal
	TraceIPC
	TraceNetwork
	TraceStat
	TraceLstat
	TraceFstat
	TraceStatLike
	TraceStatfs
	TraceFstatfs
	TraceStatfsLike
)

// Entry describes one syscall slot within a personality.
type Entry struct {
	Name  string
	Flags uint32
}

// Table is a read-only, multi-personality syscall name/flags table.
type Table struct {
	personalities [][]Entry
}

// SupportedPersonalities is the number of personalities this table hosts.
func (t *Table) SupportedPersonalities() int {
	return len(t.personalities)
}

// NumSyscalls returns the number of syscall slots for personality p.
func (t *Table) NumSyscalls(p int) int {
	if p < 0 || p >= len(t.personalities) {
		return 0
	}
	return len(t.personalities[p])
}

// Name returns the syscall name at (p, nr), or "" if unnamed/out of range.
func (t *Table) Name(p, nr int) string {
	if p < 0 || p >= len(t.personalities) || nr < 0 || nr >= len(t.personalities[p]) {
		return ""
	}
	return t.personalities[p][nr].Name
}

// Flags returns the class flag word at (p, nr), or 0 if out of range.
func (t *Table) Flags(p, nr int) uint32 {
	if p < 0 || p >= len(t.personalities) || nr < 0 || nr >= len(t.personalities[p]) {
		return 0
	}
	return t.personalities[p][nr].Flags
}

// entryAt places e at index nr in slots, growing slots as needed.
func entryAt(slots []Entry, nr int, e Entry) []Entry {
	if nr >= len(slots) {
		grown := make([]Entry, nr+1)
		copy(grown, slots)
		slots = grown
	}
	slots[nr] = e
	return slots
}

// native builds the personality-0 table from real x86_64 syscall numbers.
func native() []Entry {
	var slots []Entry
	add := func(nr int, name string, flags uint32) {
		slots = entryAt(slots, nr, Entry{Name: name, Flags: flags})
	}

	add(unix.SYS_READ, "read", TraceDesc)
	add(unix.SYS_WRITE, "write", TraceDesc)
	add(unix.SYS_OPEN, "open", TraceFile|TraceDesc)
	add(unix.SYS_CLOSE, "close", TraceDesc)
	add(unix.SYS_STAT, "stat", TraceFile|TraceStat|TraceStatLike)
	add(unix.SYS_FSTAT, "fstat", TraceDesc|TraceFstat|TraceStatLike)
	add(unix.SYS_LSTAT, "lstat", TraceFile|TraceLstat|TraceStatLike)
	add(unix.SYS_POLL, "poll", TraceDesc)
	add(unix.SYS_LSEEK, "lseek", TraceDesc)
	add(unix.SYS_MMAP, "mmap", TraceMemory|TraceDesc)
	add(unix.SYS_MPROTECT, "mprotect", TraceMemory)
	add(unix.SYS_MUNMAP, "munmap", TraceMemory)
	add(unix.SYS_BRK, "brk", TraceMemory)
	add(unix.SYS_RT_SIGACTION, "rt_sigaction", TraceSignal)
	add(unix.SYS_RT_SIGPROCMASK, "rt_sigprocmask", TraceSignal)
	add(unix.SYS_RT_SIGRETURN, "rt_sigreturn", TraceSignal)
	add(unix.SYS_IOCTL, "ioctl", TraceDesc)
	add(unix.SYS_ACCESS, "access", TraceFile)
	add(unix.SYS_PIPE, "pipe", TraceDesc)
	add(unix.SYS_SELECT, "select", TraceDesc)
	add(unix.SYS_DUP, "dup", TraceDesc)
	add(unix.SYS_DUP2, "dup2", TraceDesc)
	add(unix.SYS_SOCKET, "socket", TraceNetwork|TraceDesc)
	add(unix.SYS_CONNECT, "connect", TraceNetwork|TraceDesc)
	add(unix.SYS_ACCEPT, "accept", TraceNetwork|TraceDesc)
	add(unix.SYS_SENDTO, "sendto", TraceNetwork|TraceDesc)
	add(unix.SYS_RECVFROM, "recvfrom", TraceNetwork|TraceDesc)
	add(unix.SYS_SENDMSG, "sendmsg", TraceNetwork|TraceDesc)
	add(unix.SYS_RECVMSG, "recvmsg", TraceNetwork|TraceDesc)
	add(unix.SYS_BIND, "bind", TraceNetwork|TraceDesc)
	add(unix.SYS_LISTEN, "listen", TraceNetwork|TraceDesc)
	add(unix.SYS_CLONE, "clone", TraceProcess)
	add(unix.SYS_FORK, "fork", TraceProcess)
	add(unix.SYS_VFORK, "vfork", TraceProcess)
	add(unix.SYS_EXECVE, "execve", TraceProcess|TraceFile)
	add(unix.SYS_EXIT, "exit", TraceProcess)
	add(unix.SYS_WAIT4, "wait4", TraceProcess)
	add(unix.SYS_KILL, "kill", TraceProcess|TraceSignal)
	add(unix.SYS_SEMGET, "semget", TraceIPC)
	add(unix.SYS_SEMOP, "semop", TraceIPC)
	add(unix.SYS_SHMGET, "shmget", TraceIPC)
	add(unix.SYS_SHMAT, "shmat", TraceIPC)
	add(unix.SYS_MSGGET, "msgget", TraceIPC)
	add(unix.SYS_MSGSND, "msgsnd", TraceIPC)
	add(unix.SYS_MSGRCV, "msgrcv", TraceIPC)
	add(unix.SYS_FCNTL, "fcntl", TraceDesc)
	add(unix.SYS_FLOCK, "flock", TraceDesc)
	add(unix.SYS_FSYNC, "fsync", TraceDesc)
	add(unix.SYS_TRUNCATE, "truncate", TraceFile)
	add(unix.SYS_FTRUNCATE, "ftruncate", TraceDesc)
	add(unix.SYS_GETDENTS, "getdents", TraceDesc)
	add(unix.SYS_GETCWD, "getcwd", TraceFile)
	add(unix.SYS_CHDIR, "chdir", TraceFile)
	add(unix.SYS_FCHDIR, "fchdir", TraceDesc)
	add(unix.SYS_RENAME, "rename", TraceFile)
	add(unix.SYS_MKDIR, "mkdir", TraceFile)
	add(unix.SYS_RMDIR, "rmdir", TraceFile)
	add(unix.SYS_CREAT, "creat", TraceFile|TraceDesc)
	add(unix.SYS_LINK, "link", TraceFile)
	add(unix.SYS_UNLINK, "unlink", TraceFile)
	add(unix.SYS_SYMLINK, "symlink", TraceFile)
	add(unix.SYS_READLINK, "readlink", TraceFile)
	add(unix.SYS_CHMOD, "chmod", TraceFile)
	add(unix.SYS_FCHMOD, "fchmod", TraceDesc)
	add(unix.SYS_CHOWN, "chown", TraceFile)
	add(unix.SYS_FCHOWN, "fchown", TraceDesc)
	add(unix.SYS_LCHOWN, "lchown", TraceFile)
	add(unix.SYS_PTRACE, "ptrace", TraceProcess)
	add(unix.SYS_GETPID, "getpid", TraceProcess)
	add(unix.SYS_SETUID, "setuid", TraceProcess)
	add(unix.SYS_SETGID, "setgid", TraceProcess)
	add(unix.SYS_GETPPID, "getppid", TraceProcess)
	add(unix.SYS_STATFS, "statfs", TraceFile|TraceStatfs|TraceStatfsLike)
	add(unix.SYS_FSTATFS, "fstatfs", TraceDesc|TraceFstatfs|TraceStatfsLike)
	add(unix.SYS_PRCTL, "prctl", TraceProcess)
	add(unix.SYS_ARCH_PRCTL, "arch_prctl", TraceProcess)
	add(unix.SYS_MOUNT, "mount", TraceFile)
	add(unix.SYS_UMOUNT2, "umount2", TraceFile)
	add(unix.SYS_GETTID, "gettid", TraceProcess)
	add(unix.SYS_FUTEX, "futex", TraceMemory)
	add(unix.SYS_GETDENTS64, "getdents64", TraceDesc)
	add(unix.SYS_SET_TID_ADDRESS, "set_tid_address", TraceProcess)
	add(unix.SYS_CLOCK_GETTIME, "clock_gettime", 0)
	add(unix.SYS_EXIT_GROUP, "exit_group", TraceProcess)
	add(unix.SYS_EPOLL_WAIT, "epoll_wait", TraceDesc)
	add(unix.SYS_EPOLL_CTL, "epoll_ctl", TraceDesc)
	add(unix.SYS_TGKILL, "tgkill", TraceProcess|TraceSignal)
	add(unix.SYS_MQ_OPEN, "mq_open", TraceIPC|TraceDesc)
	add(unix.SYS_MQ_UNLINK, "mq_unlink", TraceIPC|TraceFile)
	add(unix.SYS_MQ_TIMEDSEND, "mq_timedsend", TraceIPC)
	add(unix.SYS_MQ_TIMEDRECEIVE, "mq_timedreceive", TraceIPC)
	add(unix.SYS_OPENAT, "openat", TraceFile|TraceDesc)
	add(unix.SYS_MKDIRAT, "mkdirat", TraceFile)
	add(unix.SYS_FCHOWNAT, "fchownat", TraceFile)
	add(unix.SYS_NEWFSTATAT, "newfstatat", TraceFile|TraceStatLike)
	add(unix.SYS_UNLINKAT, "unlinkat", TraceFile)
	add(unix.SYS_RENAMEAT, "renameat", TraceFile)
	add(unix.SYS_LINKAT, "linkat", TraceFile)
	add(unix.SYS_SYMLINKAT, "symlinkat", TraceFile)
	add(unix.SYS_READLINKAT, "readlinkat", TraceFile)
	add(unix.SYS_FCHMODAT, "fchmodat", TraceFile)
	add(unix.SYS_FACCESSAT, "faccessat", TraceFile)
	add(unix.SYS_UNSHARE, "unshare", TraceProcess)
	add(unix.SYS_EVENTFD, "eventfd", TraceDesc)
	add(unix.SYS_FALLOCATE, "fallocate", TraceDesc)
	add(unix.SYS_ACCEPT4, "accept4", TraceNetwork|TraceDesc)
	add(unix.SYS_EVENTFD2, "eventfd2", TraceDesc)
	add(unix.SYS_DUP3, "dup3", TraceDesc)
	add(unix.SYS_PIPE2, "pipe2", TraceDesc)
	add(unix.SYS_PRLIMIT64, "prlimit64", TraceProcess)
	add(unix.SYS_SENDMMSG, "sendmmsg", TraceNetwork|TraceDesc)
	add(unix.SYS_SETNS, "setns", TraceProcess)
	add(unix.SYS_GETRANDOM, "getrandom", 0)
	add(unix.SYS_MEMFD_CREATE, "memfd_create", TraceMemory|TraceDesc)
	add(unix.SYS_EXECVEAT, "execveat", TraceProcess|TraceFile)
	add(unix.SYS_COPY_FILE_RANGE, "copy_file_range", TraceDesc)
	add(unix.SYS_STATX, "statx", TraceFile|TraceStatLike)

	return slots
}

// compat is a small synthetic second personality used only to exercise
// multi-personality behaviour in tests. It intentionally renumbers a
// handful of syscalls differently from personality 0 and is not a real
// ABI.
func compat() []Entry {
	var slots []Entry
	add := func(nr int, name string, flags uint32) {
		slots = entryAt(slots, nr, Entry{Name: name, Flags: flags})
	}
	add(1, "read", TraceDesc)
	add(3, "write", TraceDesc)
	add(4, "open", TraceFile|TraceDesc)
	add(5, "close", TraceDesc)
	add(13, "stat", TraceFile|TraceStat|TraceStatLike)
	add(62, "fstat", TraceDesc|TraceFstat|TraceStatLike)
	add(84, "lstat", TraceFile|TraceLstat|TraceStatLike)
	add(85, "mq_timedsend", TraceIPC)
	add(86, "mq_timedreceive", TraceIPC)
	return slots
}

// New builds the default table hosting personality 0 (real x86_64
// numbers) and personality 1 (synthetic compat, tests only).
func New() *Table {
	return &Table{personalities: [][]Entry{native(), compat()}}
}
