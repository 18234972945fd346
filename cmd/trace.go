package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"tracefilter/event"
	"tracefilter/sysent"
	"tracefilter/tracer"
)

var (
	traceExprs      []string
	tracePathTraced string
)

var traceCmd = &cobra.Command{
	Use:   "trace",
	Short: "Compile filter expressions and apply them to JSON-encoded events read from stdin",
	Long: `trace reads one JSON object per line from stdin, each describing a
traced event ({"task_id":1,"syscall":"openat","personality":0,"args":[...],
"path":"..."}), runs it through the compiled filter pipeline, and prints
which qualifiers fired.`,
	RunE: runTrace,
}

func init() {
	traceCmd.Flags().StringArrayVarP(&traceExprs, "expr", "e", nil, "a qualify-spec filter expression (repeatable)")
	traceCmd.Flags().StringVar(&tracePathTraced, "path", "", "restrict trace= actions to this path")
	rootCmd.AddCommand(traceCmd)
}

type eventLine struct {
	TaskID      uint64   `json:"task_id"`
	Syscall     string   `json:"syscall"`
	Personality int      `json:"personality"`
	Args        [6]int64 `json:"args"`
	Path        string   `json:"path"`
}

func runTrace(cmd *cobra.Command, args []string) error {
	table := sysent.New()
	ctx := tracer.NewContext(table)
	for _, e := range traceExprs {
		name, main, iargs, err := splitQualifySpec(e)
		if err != nil {
			return err
		}
		if err := ctx.ParseQualify(name, main, iargs); err != nil {
			return err
		}
	}
	if tracePathTraced != "" {
		ctx.RequestPathTracing(tracePathTraced)
	}
	if err := ctx.Finalize(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	sc := bufio.NewScanner(cmd.InOrStdin())
	for sc.Scan() {
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		var el eventLine
		if err := json.Unmarshal(line, &el); err != nil {
			return fmt.Errorf("decode event: %w", err)
		}

		ev := &event.Event{
			TaskID:      el.TaskID,
			Syscall:     syscallNumber(table, el.Personality, el.Syscall),
			Personality: el.Personality,
			Args:        el.Args,
			Path:        el.Path,
			Semantic:    semanticFor(el.Syscall),
		}
		ctx.FilterSyscall(ev)
		printOutcome(out, el.Syscall, ev)
	}
	return sc.Err()
}

func syscallNumber(table *sysent.Table, personality int, name string) int {
	for nr := 0; nr < table.NumSyscalls(personality); nr++ {
		if table.Name(personality, nr) == name {
			return nr
		}
	}
	return -1
}

func semanticFor(name string) event.Semantic {
	switch name {
	case "mq_timedsend":
		return event.SemMqTimedSend
	case "mq_timedreceive":
		return event.SemMqTimedReceive
	default:
		return event.SemNone
	}
}

func printOutcome(out io.Writer, name string, e *event.Event) {
	line := fmt.Sprintf("%s: traced=%v abbrev=%v verbose=%v raw=%v read=%v write=%v injected=%v",
		name, e.IsTraced(),
		e.QualFlags&event.QualAbbrev != 0,
		e.QualFlags&event.QualVerbose != 0,
		e.QualFlags&event.QualRaw != 0,
		e.QualFlags&event.QualRead != 0,
		e.QualFlags&event.QualWrite != 0,
		e.Injected)
	if e.Injected {
		line += fmt.Sprintf(" rval=%d sig=%d", e.InjectedRval, e.InjectedSig)
	}
	fmt.Fprintln(out, line)
}
