package main

import (
	"errors"
	"fmt"
	"os"
)

const cliToolVersion = "lox-cli 0.0.0-dev"

var errManifestNotFound = errors.New("lox.yml not found")

// Process exit statuses, following the sysexits convention.
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 64
	exitData    = 65
	exitRuntime = 70
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		return runREPL(nil)
	}

	switch args[0] {
	case "--help", "-h", "help":
		printUsage(os.Stdout)
		return exitOK
	case "--version", "-V", "version":
		fmt.Fprintln(os.Stdout, cliToolVersion)
		return exitOK
	case "run":
		return runSourceCommand(commandRun, args[1:])
	case "check":
		return runSourceCommand(commandCheck, args[1:])
	case "tokenize":
		return runSourceCommand(commandTokenize, args[1:])
	case "parse":
		return runSourceCommand(commandParse, args[1:])
	case "repl":
		return runREPL(args[1:])
	default:
		if looksLikePathCandidate(args[0]) {
			return runSourceCommand(commandRun, args)
		}
		fmt.Fprintf(os.Stderr, "unknown command %q\n", args[0])
		printUsage(os.Stderr)
		return exitUsage
	}
}
