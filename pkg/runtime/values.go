package runtime

import (
	"fmt"

	"lox/interpreter-go/pkg/ast"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindNumber Kind = iota
	KindString
	KindBool
	KindNil
	KindNativeFunction
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindNil:
		return "nil"
	case KindNativeFunction:
		return "native_function"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values.
type Value interface {
	Kind() Kind
}

//-----------------------------------------------------------------------------
// Scalars
//-----------------------------------------------------------------------------

type NumberValue struct {
	Val float64
}

func (v NumberValue) Kind() Kind { return KindNumber }

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind { return KindString }

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBool }

type NilValue struct{}

func (NilValue) Kind() Kind { return KindNil }

//-----------------------------------------------------------------------------
// Callables
//-----------------------------------------------------------------------------

type NativeFunc func(args []Value) (Value, error)

type NativeFunctionValue struct {
	Name  string
	Arity int
	Impl  NativeFunc
}

func (v NativeFunctionValue) Kind() Kind { return KindNativeFunction }

//-----------------------------------------------------------------------------
// Semantics shared by the evaluator and hosts
//-----------------------------------------------------------------------------

// IsTruthy reports the truthiness of v: nil and false are falsy, everything
// else (including 0 and "") is truthy.
func IsTruthy(v Value) bool {
	switch val := v.(type) {
	case nil:
		return false
	case NilValue:
		return false
	case BoolValue:
		return val.Val
	default:
		return true
	}
}

// ValuesEqual compares values without coercion. Values of different kinds are
// never equal.
func ValuesEqual(a, b Value) bool {
	switch av := a.(type) {
	case NumberValue:
		bv, ok := b.(NumberValue)
		return ok && av.Val == bv.Val
	case StringValue:
		bv, ok := b.(StringValue)
		return ok && av.Val == bv.Val
	case BoolValue:
		bv, ok := b.(BoolValue)
		return ok && av.Val == bv.Val
	case NilValue:
		_, ok := b.(NilValue)
		return ok
	case NativeFunctionValue:
		bv, ok := b.(NativeFunctionValue)
		return ok && av.Name == bv.Name
	default:
		return false
	}
}

// Stringify renders v the way print displays it.
func Stringify(v Value) string {
	switch val := v.(type) {
	case nil:
		return "nil"
	case NumberValue:
		return ast.FormatNumber(val.Val)
	case StringValue:
		return val.Val
	case BoolValue:
		if val.Val {
			return "true"
		}
		return "false"
	case NilValue:
		return "nil"
	case NativeFunctionValue:
		return fmt.Sprintf("<native fn %s>", val.Name)
	default:
		return fmt.Sprintf("<%s>", v.Kind())
	}
}
