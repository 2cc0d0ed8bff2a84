package value

import (
	"github.com/smarthome-go/lox/lox/errors"
	"github.com/smarthome-go/lox/lox/parser/ast"
)

// Implemented by the host application embedding the interpreter
type Executor interface {
	// Writes the given string (produced by a print statement for instance) to any arbitrary sink
	WriteStringTo(input string) error
}

// The part of the interpreter which callables need in order to run
type Runtime interface {
	Executor() Executor
	// Executes the statements using `frame` as the active frame.
	// The previously active frame is restored afterwards.
	ExecuteBody(body []ast.Statement, frame *Frame) Interrupt
	// Calls `callable` while enforcing the call stack limit
	Invoke(callable Callable, arguments []Value, span errors.Span) (Value, *RuntimeError)
}

// Capability of values which can be invoked with `()`
type Callable interface {
	Value
	Name() string
	Arity() int
	Call(runtime Runtime, arguments []Value, span errors.Span) (Value, *RuntimeError)
}

// Capability of values which support `value[index]` and `value[index] = other`
type Scriptable interface {
	Value
	SubscriptGet(index Value, span errors.Span) (Value, *RuntimeError)
	SubscriptSet(index Value, newValue Value, span errors.Span) (Value, *RuntimeError)
}

func AsCallable(value Value) (Callable, bool) {
	callable, ok := value.(Callable)
	return callable, ok
}

func AsScriptable(value Value) (Scriptable, bool) {
	scriptable, ok := value.(Scriptable)
	return scriptable, ok
}
