package main

import (
	"fmt"
	"io"
)

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  lox                                start the interactive prompt")
	fmt.Fprintln(w, "  lox <file.lox>                     run a script")
	fmt.Fprintln(w, "  lox run [-c mode] [-t target] [file|target]")
	fmt.Fprintln(w, "  lox run -e <source>")
	fmt.Fprintln(w, "  lox check [file|target]            report lex and parse errors only")
	fmt.Fprintln(w, "  lox tokenize [file|target]         print the token stream")
	fmt.Fprintln(w, "  lox parse [file|target]            print the syntax tree")
	fmt.Fprintln(w, "  lox repl [-c mode]")
	fmt.Fprintln(w, "  lox version")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fmt.Fprintln(w, "  -c auto|always|never   colorize diagnostics")
	fmt.Fprintln(w, "  -e source              evaluate source text instead of a file")
	fmt.Fprintln(w, "  -t target              run a target from the nearest lox.yml")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Without a file or target, the default target of the nearest lox.yml is used.")
}
