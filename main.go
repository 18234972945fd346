// tracefilter compiles syscall tracer filter expressions (the qualify
// DSL: trace=, abbrev=, raw=, verbose=, read=, write=, signal=,
// inject=, fault=) and drives them against a stream of traced events.
//
// Commands:
//
//	check  - validate filter expressions and print the compiled action table
//	trace  - apply compiled filter expressions to JSON-encoded events on stdin
package main

import (
	"fmt"
	"os"

	"tracefilter/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
