package interpreter

import (
	"fmt"
	"math"

	"lox/interpreter-go/pkg/runtime"
)

func applyBinaryOperator(line int, op string, left, right runtime.Value) (runtime.Value, error) {
	switch op {
	case "==":
		return runtime.BoolValue{Val: runtime.ValuesEqual(left, right)}, nil
	case "!=":
		return runtime.BoolValue{Val: !runtime.ValuesEqual(left, right)}, nil
	case "+":
		return evaluatePlus(line, left, right)
	case "-", "*", "/", "%":
		return evaluateArithmetic(line, op, left, right)
	case "<", "<=", ">", ">=":
		return evaluateComparison(line, op, left, right)
	default:
		return nil, fmt.Errorf("unsupported binary operator %s", op)
	}
}

func evaluatePlus(line int, left, right runtime.Value) (runtime.Value, error) {
	switch l := left.(type) {
	case runtime.NumberValue:
		if r, ok := right.(runtime.NumberValue); ok {
			return runtime.NumberValue{Val: l.Val + r.Val}, nil
		}
	case runtime.StringValue:
		if r, ok := right.(runtime.StringValue); ok {
			return runtime.StringValue{Val: l.Val + r.Val}, nil
		}
	}
	return nil, runtimeError(line, TypeMismatch, "Operands must be two numbers or two strings.")
}

func evaluateArithmetic(line int, op string, left, right runtime.Value) (runtime.Value, error) {
	l, r, err := numberOperands(line, left, right)
	if err != nil {
		return nil, err
	}
	switch op {
	case "-":
		return runtime.NumberValue{Val: l - r}, nil
	case "*":
		return runtime.NumberValue{Val: l * r}, nil
	case "/":
		if r == 0 {
			return nil, runtimeError(line, DivisionByZero, "Division by zero.")
		}
		return runtime.NumberValue{Val: l / r}, nil
	case "%":
		if r == 0 {
			return nil, runtimeError(line, DivisionByZero, "Modulo by zero.")
		}
		return runtime.NumberValue{Val: math.Mod(l, r)}, nil
	default:
		return nil, fmt.Errorf("unsupported arithmetic operator %s", op)
	}
}

func evaluateComparison(line int, op string, left, right runtime.Value) (runtime.Value, error) {
	l, r, err := numberOperands(line, left, right)
	if err != nil {
		return nil, err
	}
	var result bool
	switch op {
	case "<":
		result = l < r
	case "<=":
		result = l <= r
	case ">":
		result = l > r
	case ">=":
		result = l >= r
	default:
		return nil, fmt.Errorf("unsupported comparison operator %s", op)
	}
	return runtime.BoolValue{Val: result}, nil
}

func numberOperands(line int, left, right runtime.Value) (float64, float64, error) {
	l, lok := left.(runtime.NumberValue)
	r, rok := right.(runtime.NumberValue)
	if !lok || !rok {
		return 0, 0, runtimeError(line, TypeMismatch, "Operands must be numbers.")
	}
	return l.Val, r.Val, nil
}
