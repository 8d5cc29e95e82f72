package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/driver"
	"lox/interpreter-go/pkg/interpreter"
)

func runSourceCommand(command commandKind, args []string) int {
	opts, err := parseOptions(command.label(), args, "c:e:t:")
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", command.label(), err)
		printUsage(os.Stderr)
		return exitUsage
	}

	manifest, err := loadManifestFrom("")
	if err != nil && !errors.Is(err, errManifestNotFound) {
		fmt.Fprintf(os.Stderr, "failed to load %s: %v\n", driver.ManifestFileName, err)
		return exitFailure
	}
	rep := newReporter(opts.colorMode(manifest))

	src, err := resolveSource(context.Background(), command, opts, manifest)
	if err == nil {
		err = runCommandOn(command, src)
	}
	return reportResult(err, rep)
}

func runCommandOn(command commandKind, src driver.Source) error {
	switch command {
	case commandCheck:
		return checkSource(src)
	case commandTokenize:
		return tokenizeSource(src)
	case commandParse:
		return parseSource(src)
	default:
		return executeSource(src)
	}
}

// reportResult prints a command failure and maps it to an exit status.
func reportResult(err error, rep *reporter) int {
	if err == nil {
		return exitOK
	}
	var usageErr *usageError
	if errors.As(err, &usageErr) {
		fmt.Fprintln(os.Stderr, usageErr.Error())
		return exitUsage
	}
	if diags, ok := driver.AsDiagnostics(err); ok {
		rep.diagnostics(diags)
		return exitData
	}
	var rtErr *interpreter.RuntimeError
	if errors.As(err, &rtErr) {
		rep.runtimeError(rtErr)
		return exitRuntime
	}
	rep.failure(err)
	return exitFailure
}

func diagnosticsErr(diags []driver.Diagnostic) error {
	if len(diags) == 0 {
		return nil
	}
	return &driver.DiagnosticsError{Diagnostics: diags}
}

func executeSource(src driver.Source) error {
	interp := interpreter.New()
	interp.SetOutput(os.Stdout)
	diags, err := interp.RunSource(src)
	if len(diags) > 0 {
		return diagnosticsErr(diags)
	}
	return err
}

func checkSource(src driver.Source) error {
	if _, diags := driver.Parse(src); len(diags) > 0 {
		return diagnosticsErr(diags)
	}
	fmt.Fprintf(os.Stdout, "%s: ok\n", src.Name)
	return nil
}

func tokenizeSource(src driver.Source) error {
	tokens, diags := driver.Tokenize(src)
	for _, tok := range tokens {
		fmt.Fprintln(os.Stdout, tok.String())
	}
	return diagnosticsErr(diags)
}

func parseSource(src driver.Source) error {
	tree, diags := driver.ParseTree(src)
	if rendered := ast.Render(tree); strings.TrimSpace(rendered) != "" {
		fmt.Fprintln(os.Stdout, rendered)
	}
	return diagnosticsErr(diags)
}
