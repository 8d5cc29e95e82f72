package interpreter

import (
	"errors"
	"fmt"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateExpression(node ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	switch n := node.(type) {
	case *ast.NumberLiteral:
		return runtime.NumberValue{Val: n.Value}, nil
	case *ast.StringLiteral:
		return runtime.StringValue{Val: n.Value}, nil
	case *ast.BooleanLiteral:
		return runtime.BoolValue{Val: n.Value}, nil
	case *ast.NilLiteral:
		return runtime.NilValue{}, nil
	case *ast.GroupingExpression:
		return i.evaluateExpression(n.Expression, env)
	case *ast.UnaryExpression:
		return i.evaluateUnaryExpression(n, env)
	case *ast.BinaryExpression:
		return i.evaluateBinaryExpression(n, env)
	case *ast.LogicalExpression:
		return i.evaluateLogicalExpression(n, env)
	case *ast.Identifier:
		return i.evaluateIdentifier(n, env)
	case *ast.AssignmentExpression:
		return i.evaluateAssignment(n, env)
	case *ast.FunctionCall:
		return i.evaluateFunctionCall(n, env)
	default:
		return nil, fmt.Errorf("unsupported expression type: %s", n.NodeType())
	}
}

func (i *Interpreter) evaluateUnaryExpression(expr *ast.UnaryExpression, env *runtime.Environment) (runtime.Value, error) {
	operand, err := i.evaluateExpression(expr.Operand, env)
	if err != nil {
		return nil, err
	}
	switch expr.Operator {
	case "!":
		return runtime.BoolValue{Val: !runtime.IsTruthy(operand)}, nil
	case "-":
		num, ok := operand.(runtime.NumberValue)
		if !ok {
			return nil, runtimeError(expr.Line(), TypeMismatch, "Operand must be a number.")
		}
		return runtime.NumberValue{Val: -num.Val}, nil
	default:
		return nil, fmt.Errorf("unsupported unary operator %s", expr.Operator)
	}
}

func (i *Interpreter) evaluateBinaryExpression(expr *ast.BinaryExpression, env *runtime.Environment) (runtime.Value, error) {
	left, err := i.evaluateExpression(expr.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluateExpression(expr.Right, env)
	if err != nil {
		return nil, err
	}
	return applyBinaryOperator(expr.Line(), expr.Operator, left, right)
}

// evaluateLogicalExpression short-circuits and yields the deciding operand
// itself rather than a coerced boolean.
func (i *Interpreter) evaluateLogicalExpression(expr *ast.LogicalExpression, env *runtime.Environment) (runtime.Value, error) {
	left, err := i.evaluateExpression(expr.Left, env)
	if err != nil {
		return nil, err
	}
	switch expr.Operator {
	case "or":
		if runtime.IsTruthy(left) {
			return left, nil
		}
	case "and":
		if !runtime.IsTruthy(left) {
			return left, nil
		}
	default:
		return nil, fmt.Errorf("unsupported logical operator %s", expr.Operator)
	}
	return i.evaluateExpression(expr.Right, env)
}

func (i *Interpreter) evaluateIdentifier(id *ast.Identifier, env *runtime.Environment) (runtime.Value, error) {
	val, err := env.Get(id.Name)
	if err != nil {
		return nil, undefinedVariable(id.Line(), id.Name, err)
	}
	return val, nil
}

func (i *Interpreter) evaluateAssignment(assign *ast.AssignmentExpression, env *runtime.Environment) (runtime.Value, error) {
	val, err := i.evaluateExpression(assign.Value, env)
	if err != nil {
		return nil, err
	}
	if err := env.Assign(assign.Name, val); err != nil {
		return nil, undefinedVariable(assign.Line(), assign.Name, err)
	}
	return val, nil
}

func undefinedVariable(line int, name string, err error) error {
	if errors.Is(err, runtime.ErrUndefinedVariable) {
		return runtimeError(line, UndefinedVariable, "Undefined variable '%s'.", name)
	}
	return err
}

func (i *Interpreter) evaluateFunctionCall(call *ast.FunctionCall, env *runtime.Environment) (runtime.Value, error) {
	callee, err := i.evaluateExpression(call.Callee, env)
	if err != nil {
		return nil, err
	}
	args := make([]runtime.Value, 0, len(call.Arguments))
	for _, argExpr := range call.Arguments {
		arg, err := i.evaluateExpression(argExpr, env)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return i.callValue(call.Line(), callee, args)
}
