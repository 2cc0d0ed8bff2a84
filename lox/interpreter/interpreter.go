package interpreter

import (
	"fmt"

	"github.com/smarthome-go/lox/lox/errors"
	"github.com/smarthome-go/lox/lox/interpreter/value"
	"github.com/smarthome-go/lox/lox/parser/ast"
	"github.com/smarthome-go/lox/lox/resolver"
)

type Interpreter struct {
	globals Globals
	// Filled by the resolver before a program is interpreted
	locals resolver.Table
	// Is nil while top-level code is executed
	frame    *value.Frame
	executor value.Executor
	// 0 means unlimited
	callStackLimitSize uint
	callStackSize      uint
}

func NewInterpreter(executor value.Executor) Interpreter {
	interpreter := Interpreter{
		globals:            NewGlobals(),
		locals:             resolver.NewTable(),
		frame:              nil,
		executor:           executor,
		callStackLimitSize: 0,
		callStackSize:      0,
	}

	for name, native := range natives() {
		interpreter.globals.Define(name, native)
	}

	return interpreter
}

// The table which the resolver must fill before `Interpret` is invoked
func (self *Interpreter) Locals() resolver.Table { return self.locals }

func (self *Interpreter) Globals() *Globals { return &self.globals }

func (self *Interpreter) SetCallStackLimit(limit uint) {
	self.callStackLimitSize = limit
}

func (self *Interpreter) Executor() value.Executor { return self.executor }

// Executes a resolved program, stopping at the first runtime error.
// Globals are kept, so subsequent programs can refer to them.
func (self *Interpreter) Interpret(program ast.Program) *value.RuntimeError {
	self.frame = nil
	self.callStackSize = 0

	for _, statement := range program {
		if interrupt := self.statement(statement); interrupt != nil {
			return self.unwrapError(interrupt)
		}
	}

	return nil
}

// Evaluates a single resolved expression in the global context
func (self *Interpreter) Evaluate(expression ast.Expression) (value.Value, *value.RuntimeError) {
	self.frame = nil
	self.callStackSize = 0
	return self.expression(expression)
}

func (self *Interpreter) Invoke(callable value.Callable, arguments []value.Value, span errors.Span) (value.Value, *value.RuntimeError) {
	if self.callStackLimitSize > 0 && self.callStackSize >= self.callStackLimitSize {
		return nil, value.NewGenericError(
			span,
			fmt.Sprintf("Maximum call stack size of %d was exceeded", self.callStackLimitSize),
		)
	}

	self.callStackSize++
	defer func() { self.callStackSize-- }()

	return callable.Call(self, arguments, span)
}

func (self *Interpreter) ExecuteBody(body []ast.Statement, frame *value.Frame) value.Interrupt {
	previous := self.frame
	self.frame = frame
	defer func() { self.frame = previous }()

	for _, statement := range body {
		if interrupt := self.statement(statement); interrupt != nil {
			return interrupt
		}
	}

	return nil
}

// Only errors may escape to the top level, everything else is rejected by the resolver
func (self *Interpreter) unwrapError(interrupt value.Interrupt) *value.RuntimeError {
	if interrupt.Kind() != value.RuntimeErrorInterruptKind {
		panic(fmt.Sprintf("Unreachable: a %s interrupt escaped to the top level", interrupt.Kind()))
	}
	return interrupt.(*value.RuntimeError)
}

//
// Variables
//

// Local declarations go into the active frame, top-level declarations become globals
func (self *Interpreter) define(name string, val value.Value) {
	if self.frame == nil {
		self.globals.Define(name, val)
		return
	}
	self.frame.Define(val)
}

func (self *Interpreter) local(name string, span errors.Span) (resolver.Local, bool) {
	local, found := self.locals.Lookup(name, span)
	if found && self.frame == nil {
		panic(fmt.Sprintf("Resolved local '%s' at %s is referenced without an active frame", name, span))
	}
	return local, found
}

func (self *Interpreter) lookupVariable(name string, span errors.Span) (value.Value, *value.RuntimeError) {
	if local, found := self.local(name, span); found {
		return self.frame.GetAt(local.Depth, local.Index), nil
	}

	if val, found := self.globals.Get(name); found {
		return val, nil
	}

	return nil, value.NewUndefinedVariableError(span, name)
}

func (self *Interpreter) assignVariable(name string, span errors.Span, val value.Value) *value.RuntimeError {
	if local, found := self.local(name, span); found {
		self.frame.AssignAt(local.Depth, local.Index, val)
		return nil
	}

	if !self.globals.Assign(name, val) {
		return value.NewUndefinedVariableError(span, name)
	}

	return nil
}
