package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"tracefilter/sysent"
	"tracefilter/tracer"
)

var (
	checkExprs      []string
	checkPathTraced string
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate qualify-spec filter expressions and print the resulting action table",
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().StringArrayVarP(&checkExprs, "expr", "e", nil, "a qualify-spec filter expression (repeatable)")
	checkCmd.Flags().StringVar(&checkPathTraced, "path", "", "restrict trace= actions to this path")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx := tracer.NewContext(sysent.New())
	for _, e := range checkExprs {
		name, main, iargs, err := splitQualifySpec(e)
		if err != nil {
			return err
		}
		if err := ctx.ParseQualify(name, main, iargs); err != nil {
			return err
		}
	}
	if checkPathTraced != "" {
		ctx.RequestPathTracing(checkPathTraced)
	}
	if err := ctx.Finalize(); err != nil {
		return err
	}

	width := 80
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		width = w
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "PRIORITY\tID\tACTION\tFILTERS\tINJECT")
	for _, a := range ctx.Actions.Actions() {
		inject := "-"
		if a.Inject != nil {
			inject = fmt.Sprintf("first=%d step=%d rval=%d sig=%d", a.Inject.First, a.Inject.Step, a.Inject.Rval, a.Inject.Signo)
		}
		fmt.Fprintf(w, "%d\t%d\t%s\t%d\t%s\n", a.Type.Priority, a.ID, a.Type.Name, len(a.Filters), inject)
	}
	w.Flush()

	if width < 40 {
		fmt.Fprintln(cmd.ErrOrStderr(), "(narrow terminal; some columns may wrap)")
	}
	return nil
}
