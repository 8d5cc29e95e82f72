package interpreter

import (
	"fmt"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/runtime"
)

func (i *Interpreter) executeStatement(node ast.Statement, env *runtime.Environment) error {
	switch n := node.(type) {
	case *ast.ExpressionStatement:
		_, err := i.evaluateExpression(n.Expression, env)
		return err
	case *ast.PrintStatement:
		return i.executePrint(n, env)
	case *ast.VarDeclaration:
		return i.executeVarDeclaration(n, env)
	case *ast.BlockStatement:
		return i.executeBlock(n, env)
	case *ast.IfStatement:
		return i.executeIf(n, env)
	case *ast.WhileLoop:
		return i.executeWhileLoop(n, env)
	case *ast.BreakStatement:
		return breakSignal{}
	case *ast.ContinueStatement:
		return continueSignal{}
	default:
		return fmt.Errorf("unsupported statement type: %s", n.NodeType())
	}
}

func (i *Interpreter) executePrint(stmt *ast.PrintStatement, env *runtime.Environment) error {
	val, err := i.evaluateExpression(stmt.Expression, env)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(i.out, runtime.Stringify(val)); err != nil {
		return fmt.Errorf("print: %w", err)
	}
	return nil
}

func (i *Interpreter) executeVarDeclaration(decl *ast.VarDeclaration, env *runtime.Environment) error {
	var val runtime.Value = runtime.NilValue{}
	if decl.Initializer != nil {
		v, err := i.evaluateExpression(decl.Initializer, env)
		if err != nil {
			return err
		}
		val = v
	}
	env.Define(decl.Name, val)
	return nil
}

// executeBlock runs the body in a child scope that is dropped on every exit
// path. A step block turns a continue escaping an earlier statement into a jump
// to its last statement.
func (i *Interpreter) executeBlock(block *ast.BlockStatement, env *runtime.Environment) error {
	scope := env.Extend()
	last := len(block.Body) - 1
	for idx := 0; idx <= last; idx++ {
		err := i.executeStatement(block.Body[idx], scope)
		if err == nil {
			continue
		}
		if _, ok := err.(continueSignal); ok && block.StepsOnContinue && idx < last {
			idx = last - 1
			continue
		}
		return err
	}
	return nil
}

func (i *Interpreter) executeIf(stmt *ast.IfStatement, env *runtime.Environment) error {
	cond, err := i.evaluateExpression(stmt.Condition, env)
	if err != nil {
		return err
	}
	if runtime.IsTruthy(cond) {
		return i.executeStatement(stmt.ThenBranch, env)
	}
	if stmt.ElseBranch != nil {
		return i.executeStatement(stmt.ElseBranch, env)
	}
	return nil
}

func (i *Interpreter) executeWhileLoop(loop *ast.WhileLoop, env *runtime.Environment) error {
	for {
		cond, err := i.evaluateExpression(loop.Condition, env)
		if err != nil {
			return err
		}
		if !runtime.IsTruthy(cond) {
			return nil
		}
		if err := i.executeStatement(loop.Body, env); err != nil {
			switch err.(type) {
			case breakSignal:
				return nil
			case continueSignal:
				continue
			default:
				return err
			}
		}
	}
}
