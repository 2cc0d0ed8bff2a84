package value

import (
	"fmt"

	"github.com/smarthome-go/lox/lox/errors"
	"github.com/smarthome-go/lox/lox/parser/ast"
)

// A user-defined function, method or anonymous function together with the frame it closes over
type ValueFunction struct {
	NameInternal  string
	Params        []ast.SpannedIdent
	Body          []ast.Statement
	Closure       *Frame
	IsInitializer bool
}

func (_ *ValueFunction) Kind() ValueKind { return FunctionValueKind }

func (self *ValueFunction) Display() string {
	if self.NameInternal == "" {
		return "<anonymous fn>"
	}
	return fmt.Sprintf("<fn %s>", self.NameInternal)
}

func (self *ValueFunction) IsEqual(other Value) bool {
	otherFn, ok := other.(*ValueFunction)
	return ok && otherFn == self
}

func (self *ValueFunction) Name() string { return self.NameInternal }
func (self *ValueFunction) Arity() int   { return len(self.Params) }

func (self *ValueFunction) Call(runtime Runtime, arguments []Value, span errors.Span) (Value, *RuntimeError) {
	frame := NewFrame(self.Closure)
	for _, arg := range arguments {
		frame.Define(arg)
	}

	interrupt := runtime.ExecuteBody(self.Body, frame)

	if interrupt != nil {
		switch interrupt.Kind() {
		case RuntimeErrorInterruptKind:
			return nil, interrupt.(*RuntimeError)
		case ReturnInterruptKind:
			if !self.IsInitializer {
				return interrupt.(ReturnInterrupt).ReturnValue, nil
			}
		default:
			panic(fmt.Sprintf("Unreachable: a %s interrupt escaped function '%s'", interrupt.Kind(), self.NameInternal))
		}
	}

	// Initializers always yield the instance they were bound to
	if self.IsInitializer {
		return self.Closure.GetAt(0, 0), nil
	}

	return NewValueNil(), nil
}

// Creates a copy of this method whose `this` refers to `instance`
func (self *ValueFunction) Bind(instance *ValueInstance) *ValueFunction {
	frame := NewFrame(self.Closure)
	frame.Define(instance)

	return &ValueFunction{
		NameInternal:  self.NameInternal,
		Params:        self.Params,
		Body:          self.Body,
		Closure:       frame,
		IsInitializer: self.IsInitializer,
	}
}

func NewValueFunction(name string, params []ast.SpannedIdent, body []ast.Statement, closure *Frame, isInitializer bool) *ValueFunction {
	return &ValueFunction{
		NameInternal:  name,
		Params:        params,
		Body:          body,
		Closure:       closure,
		IsInitializer: isInitializer,
	}
}
