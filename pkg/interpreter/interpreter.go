package interpreter

import (
	"fmt"
	"io"
	"os"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/runtime"
)

// Interpreter walks a program AST. It owns a single long-lived global
// environment, so successive programs (REPL chunks) observe earlier bindings.
type Interpreter struct {
	global *runtime.Environment
	out    io.Writer
}

// New returns an interpreter whose global environment holds the native
// functions and whose print output goes to os.Stdout.
func New() *Interpreter {
	i := &Interpreter{
		global: runtime.NewEnvironment(nil),
		out:    os.Stdout,
	}
	i.initNatives()
	return i
}

// SetOutput selects the writer print statements write to.
func (i *Interpreter) SetOutput(w io.Writer) {
	if w == nil {
		w = io.Discard
	}
	i.out = w
}

// GlobalEnvironment returns the interpreter's global environment.
func (i *Interpreter) GlobalEnvironment() *runtime.Environment {
	return i.global
}

// Execute runs program against env (the global environment when env is nil).
// Execution stops at the first runtime error, which is returned as a
// *RuntimeError; output and bindings produced before it remain.
func (i *Interpreter) Execute(program *ast.Program, env *runtime.Environment) error {
	if program == nil {
		return fmt.Errorf("interpreter: program is nil")
	}
	if env == nil {
		env = i.global
	}
	for _, stmt := range program.Statements {
		if err := i.executeStatement(stmt, env); err != nil {
			switch sig := err.(type) {
			case breakSignal, continueSignal:
				return fmt.Errorf("interpreter: %s escaped its enclosing loop at line %d", sig.Error(), stmt.Line())
			default:
				return err
			}
		}
	}
	return nil
}
