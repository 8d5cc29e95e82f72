package interpreter

// Control signals travel through the error channel but are never runtime
// errors: only the while executor intercepts them.

type breakSignal struct{}

func (breakSignal) Error() string {
	return "break"
}

type continueSignal struct{}

func (continueSignal) Error() string {
	return "continue"
}
