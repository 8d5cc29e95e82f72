package interpreter

import (
	"fmt"

	"lox/interpreter-go/pkg/driver"
)

// EvaluateProgram executes a parsed program against the global environment.
// A runtime error halts the program; bindings made before it persist.
func (i *Interpreter) EvaluateProgram(program *driver.Program) error {
	if program == nil || program.AST == nil {
		return fmt.Errorf("interpreter: program is nil")
	}
	return i.Execute(program.AST, i.global)
}

// RunSource parses src and, when it has no static diagnostics, evaluates it.
// Diagnostics suppress evaluation entirely. Each call reuses the same global
// environment, which is what lets REPL chunks share bindings.
func (i *Interpreter) RunSource(src driver.Source) ([]driver.Diagnostic, error) {
	program, diags := driver.Parse(src)
	if len(diags) > 0 {
		return diags, nil
	}
	return nil, i.EvaluateProgram(program)
}
