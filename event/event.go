// Package event defines the per-event view the filter core evaluates.
// It plays the role of strace's struct tcb, trimmed to the fields the
// filter core actually reads or mutates.
package event

// Semantic tags a syscall with a meaning the filter core must special
// case, mirroring struct tcb's s_ent->sen.
type Semantic int

const (
	SemNone Semantic = iota
	SemMqTimedSend
	SemMqTimedReceive
)

// Qualification mask bits, mirroring strace's QUAL_* flags.
const (
	QualTrace uint32 = 1 << iota
	QualAbbrev
	QualVerbose
	QualRaw
	QualRead
	QualWrite
	QualInject
)

// DefaultQualFlags is the mask every event starts with before any
// registered action narrows it, mirroring DEFAULT_QUAL_FLAGS.
const DefaultQualFlags = QualTrace | QualAbbrev | QualVerbose | QualRaw | QualRead | QualWrite | QualInject

// Event is one traced syscall entry/exit the filter core decides on.
type Event struct {
	// TaskID identifies the traced task this event belongs to. Injection
	// match counters are scoped per (TaskID, action), since the same
	// action must count matches across many events of one task
	// independently of any other traced task.
	TaskID uint64

	Syscall     int
	Personality int
	Args        [6]int64
	Semantic    Semantic
	Path        string

	// QualFlags is mutated by action apply hooks; it starts OR'd with
	// the process-wide default flags on every event.
	QualFlags uint32

	// Injected is set once an inject/fault action has applied an
	// injection to this event, so a second inject-priority action
	// does not clobber the first.
	Injected     bool
	InjectedRval int32
	InjectedSig  uint8
}

// IsTraced reports whether the trace qualifier is set.
func (e *Event) IsTraced() bool {
	return e.QualFlags&QualTrace != 0
}
