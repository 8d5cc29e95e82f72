package driver

import (
	"errors"
	"fmt"
	"strings"

	"lox/interpreter-go/pkg/lexer"
	"lox/interpreter-go/pkg/parser"
)

// DiagnosticStage names the static stage that produced a diagnostic.
type DiagnosticStage string

const (
	StageLex   DiagnosticStage = "lex"
	StageParse DiagnosticStage = "parse"
)

// Diagnostic is a static (lex or parse) error. Message is the stage error's
// full text, line prefix included. Incomplete marks errors that more input
// could still resolve: an open string literal or a syntax error at end.
type Diagnostic struct {
	Stage      DiagnosticStage
	Line       int
	Message    string
	Path       string
	Incomplete bool
}

// DiagnosticsError wraps a non-empty diagnostic batch for error handling.
type DiagnosticsError struct {
	Diagnostics []Diagnostic
}

func (e *DiagnosticsError) Error() string {
	if len(e.Diagnostics) == 1 {
		return Describe(e.Diagnostics[0])
	}
	return fmt.Sprintf("%s (and %d more)", Describe(e.Diagnostics[0]), len(e.Diagnostics)-1)
}

// AsDiagnostics extracts the diagnostics carried by err, if any.
func AsDiagnostics(err error) ([]Diagnostic, bool) {
	var diagErr *DiagnosticsError
	if errors.As(err, &diagErr) {
		return diagErr.Diagnostics, true
	}
	return nil, false
}

// Describe formats a diagnostic for CLI output.
func Describe(diag Diagnostic) string {
	message := strings.TrimSpace(diag.Message)
	if path := strings.TrimSpace(diag.Path); path != "" {
		return fmt.Sprintf("%s: %s", path, message)
	}
	return message
}

// AllIncomplete reports whether diags is non-empty and every entry could be
// cured by appending more source.
func AllIncomplete(diags []Diagnostic) bool {
	if len(diags) == 0 {
		return false
	}
	for _, diag := range diags {
		if !diag.Incomplete {
			return false
		}
	}
	return true
}

func lexDiagnostic(path string, err *lexer.LexError) Diagnostic {
	return Diagnostic{
		Stage:      StageLex,
		Line:       err.Line,
		Message:    err.Error(),
		Path:       path,
		Incomplete: err.Kind == lexer.ErrUnterminatedString,
	}
}

func parseDiagnostic(path string, err *parser.ParseError) Diagnostic {
	return Diagnostic{Stage: StageParse, Line: err.Line, Message: err.Error(), Path: path, Incomplete: err.AtEnd}
}
