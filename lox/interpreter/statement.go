package interpreter

import (
	"fmt"

	"github.com/smarthome-go/lox/lox/interpreter/value"
	"github.com/smarthome-go/lox/lox/parser/ast"
)

// Returns nil if the statement completed normally
func (self *Interpreter) statement(node ast.Statement) value.Interrupt {
	switch node.Kind() {
	case ast.ExpressionStatementKind:
		if _, err := self.expression(node.(ast.ExpressionStatement).Expression); err != nil {
			return err
		}
		return nil
	case ast.PrintStatementKind:
		return self.printStatement(node.(ast.PrintStatement))
	case ast.VarStatementKind:
		return self.varStatement(node.(ast.VarStatement))
	case ast.BlockStatementKind:
		return self.ExecuteBody(node.(ast.BlockStatement).Statements, value.NewFrame(self.frame))
	case ast.IfStatementKind:
		return self.ifStatement(node.(ast.IfStatement))
	case ast.LoopStatementKind:
		return self.loopStatement(node.(ast.LoopStatement))
	case ast.FunctionStatementKind:
		function := node.(ast.FunctionStatement)
		self.define(
			function.Ident.Ident(),
			value.NewValueFunction(function.Ident.Ident(), function.Params, function.Body, self.frame, false),
		)
		return nil
	case ast.ClassStatementKind:
		return self.classStatement(node.(ast.ClassStatement))
	case ast.ReturnStatementKind:
		return self.returnStatement(node.(ast.ReturnStatement))
	case ast.BreakStatementKind:
		return value.NewBreakInterrupt(node.Span())
	case ast.ContinueStatementKind:
		return value.NewContinueInterrupt(node.Span())
	default:
		panic("A new statement kind was added without updating this code")
	}
}

func (self *Interpreter) printStatement(node ast.PrintStatement) value.Interrupt {
	val, err := self.expression(node.Expression)
	if err != nil {
		return err
	}

	if err := self.executor.WriteStringTo(val.Display() + "\n"); err != nil {
		return value.NewGenericError(node.Range, fmt.Sprintf("Could not write output: %s", err.Error()))
	}

	return nil
}

func (self *Interpreter) varStatement(node ast.VarStatement) value.Interrupt {
	initial := value.NewValueNil()

	if node.Initializer != nil {
		val, err := self.expression(node.Initializer)
		if err != nil {
			return err
		}
		initial = val
	}

	self.define(node.Ident.Ident(), initial)
	return nil
}

func (self *Interpreter) ifStatement(node ast.IfStatement) value.Interrupt {
	condition, err := self.expression(node.Condition)
	if err != nil {
		return err
	}

	if value.IsTruthy(condition) {
		return self.statement(node.Then)
	}

	if node.Else != nil {
		return self.statement(node.Else)
	}

	return nil
}

func (self *Interpreter) loopStatement(node ast.LoopStatement) value.Interrupt {
	for {
		condition, err := self.expression(node.Condition)
		if err != nil {
			return err
		}

		if !value.IsTruthy(condition) {
			return nil
		}

		if interrupt := self.statement(node.Body); interrupt != nil {
			switch interrupt.Kind() {
			case value.BreakInterruptKind:
				return nil
			case value.ContinueInterruptKind:
				// the increment still runs
			case value.ReturnInterruptKind, value.RuntimeErrorInterruptKind:
				return interrupt
			default:
				panic("A new interrupt kind was added without updating this code")
			}
		}

		if node.Increment != nil {
			if _, err := self.expression(node.Increment); err != nil {
				return err
			}
		}
	}
}

func (self *Interpreter) returnStatement(node ast.ReturnStatement) value.Interrupt {
	returnValue := value.NewValueNil()

	if node.Value != nil {
		val, err := self.expression(node.Value)
		if err != nil {
			return err
		}
		returnValue = val
	}

	return value.NewReturnInterrupt(returnValue, node.Range)
}

func (self *Interpreter) classStatement(node ast.ClassStatement) value.Interrupt {
	var superclass *value.ValueClass

	if node.Superclass != nil {
		superValue, err := self.expression(*node.Superclass)
		if err != nil {
			return err
		}

		class, isClass := superValue.(*value.ValueClass)
		if !isClass {
			return value.NewSuperclassIsNotClassError(node.Superclass.Span(), superValue)
		}
		superclass = class
	}

	self.define(node.Ident.Ident(), value.NewValueNil())

	// methods of a subclass close over a frame which holds `super`
	enclosing := self.frame
	if superclass != nil {
		self.frame = value.NewFrame(self.frame)
		self.frame.Define(superclass)
	}

	methods := make(map[string]*value.ValueFunction)
	getters := make(map[string]*value.ValueFunction)
	staticMethods := make(map[string]*value.ValueFunction)

	for _, method := range node.Methods {
		function := value.NewValueFunction(
			method.Ident.Ident(),
			method.Params,
			method.Body,
			self.frame,
			method.FunctionKind == ast.FunctionKindInitializer,
		)

		switch method.FunctionKind {
		case ast.FunctionKindMethod, ast.FunctionKindInitializer:
			methods[method.Ident.Ident()] = function
		case ast.FunctionKindGetter:
			getters[method.Ident.Ident()] = function
		case ast.FunctionKindStaticMethod:
			staticMethods[method.Ident.Ident()] = function
		case ast.FunctionKindFunction:
			panic("Unreachable: a plain function cannot be a class member")
		default:
			panic("A new function kind was added without updating this code")
		}
	}

	self.frame = enclosing

	class := value.NewValueClass(node.Ident.Ident(), superclass, methods, getters, staticMethods)

	if local, found := self.local(node.Ident.Ident(), node.Ident.Span()); found {
		self.frame.AssignAt(local.Depth, local.Index, class)
		return nil
	}

	self.globals.Define(node.Ident.Ident(), class)
	return nil
}
