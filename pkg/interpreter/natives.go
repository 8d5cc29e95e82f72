package interpreter

import (
	"errors"
	"time"

	"lox/interpreter-go/pkg/runtime"
)

func (i *Interpreter) initNatives() {
	i.global.Define("clock", runtime.NativeFunctionValue{
		Name:  "clock",
		Arity: 0,
		Impl: func(_ []runtime.Value) (runtime.Value, error) {
			return runtime.NumberValue{Val: float64(time.Now().UnixNano()) / float64(time.Second)}, nil
		},
	})
}

func (i *Interpreter) callValue(line int, callee runtime.Value, args []runtime.Value) (runtime.Value, error) {
	fn, ok := callee.(runtime.NativeFunctionValue)
	if !ok {
		return nil, runtimeError(line, NotCallable, "Can only call functions.")
	}
	if fn.Arity >= 0 && len(args) != fn.Arity {
		return nil, runtimeError(line, ArityMismatch, "Expected %d arguments but got %d.", fn.Arity, len(args))
	}
	result, err := fn.Impl(args)
	if err != nil {
		var rtErr *RuntimeError
		if errors.As(err, &rtErr) {
			return nil, rtErr
		}
		return nil, runtimeError(line, NativeFailure, "%s: %v", fn.Name, err)
	}
	if result == nil {
		return runtime.NilValue{}, nil
	}
	return result, nil
}
