package value

import (
	"fmt"

	"github.com/smarthome-go/lox/lox/errors"
)

type NativeCallback func(executor Executor, span errors.Span, args ...Value) (Value, *RuntimeError)

// A function implemented by the host
type ValueNativeFunction struct {
	NameInternal string
	ParamCount   int
	Callback     NativeCallback
}

func (_ *ValueNativeFunction) Kind() ValueKind { return NativeFunctionValueKind }

func (self *ValueNativeFunction) Display() string {
	return fmt.Sprintf("<native fn %s>", self.NameInternal)
}

func (self *ValueNativeFunction) IsEqual(other Value) bool {
	otherFn, ok := other.(*ValueNativeFunction)
	return ok && otherFn == self
}

func (self *ValueNativeFunction) Name() string { return self.NameInternal }
func (self *ValueNativeFunction) Arity() int   { return self.ParamCount }

func (self *ValueNativeFunction) Call(runtime Runtime, arguments []Value, span errors.Span) (Value, *RuntimeError) {
	return self.Callback(runtime.Executor(), span, arguments...)
}

func NewValueNativeFunction(name string, paramCount int, callback NativeCallback) *ValueNativeFunction {
	return &ValueNativeFunction{
		NameInternal: name,
		ParamCount:   paramCount,
		Callback:     callback,
	}
}
