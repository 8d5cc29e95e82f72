package interpreter

import "fmt"

// ErrorKind classifies runtime failures.
type ErrorKind int

const (
	TypeMismatch ErrorKind = iota
	DivisionByZero
	UndefinedVariable
	NotCallable
	ArityMismatch
	NativeFailure
)

func (k ErrorKind) String() string {
	switch k {
	case TypeMismatch:
		return "TypeMismatch"
	case DivisionByZero:
		return "DivisionByZero"
	case UndefinedVariable:
		return "UndefinedVariable"
	case NotCallable:
		return "NotCallable"
	case ArityMismatch:
		return "ArityMismatch"
	case NativeFailure:
		return "NativeFailure"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// RuntimeError halts evaluation of the current program.
type RuntimeError struct {
	Line    int
	Kind    ErrorKind
	Message string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("[line %d] Runtime error: %s", e.Line, e.Message)
}

func runtimeError(line int, kind ErrorKind, format string, args ...any) *RuntimeError {
	return &RuntimeError{Line: line, Kind: kind, Message: fmt.Sprintf(format, args...)}
}
