package interpreter

import (
	"fmt"

	"github.com/smarthome-go/lox/lox/interpreter/value"
	"github.com/smarthome-go/lox/lox/parser/ast"
)

func (self *Interpreter) expression(node ast.Expression) (value.Value, *value.RuntimeError) {
	switch node.Kind() {
	case ast.IntLiteralExpressionKind:
		return value.NewValueInt(node.(ast.IntLiteralExpression).Value), nil
	case ast.FloatLiteralExpressionKind:
		return value.NewValueFloat(node.(ast.FloatLiteralExpression).Value), nil
	case ast.BoolLiteralExpressionKind:
		return value.NewValueBool(node.(ast.BoolLiteralExpression).Value), nil
	case ast.StringLiteralExpressionKind:
		return value.NewValueString(node.(ast.StringLiteralExpression).Value), nil
	case ast.NilLiteralExpressionKind:
		return value.NewValueNil(), nil
	case ast.FunctionExpressionKind:
		function := node.(ast.FunctionExpression)
		return value.NewValueFunction("", function.Params, function.Body, self.frame, false), nil
	case ast.UnaryExpressionKind:
		return self.unaryExpression(node.(ast.UnaryExpression))
	case ast.BinaryExpressionKind:
		return self.binaryExpression(node.(ast.BinaryExpression))
	case ast.LogicalExpressionKind:
		return self.logicalExpression(node.(ast.LogicalExpression))
	case ast.GroupedExpressionKind:
		return self.expression(node.(ast.GroupedExpression).Inner)
	case ast.CommaExpressionKind:
		comma := node.(ast.CommaExpression)
		if _, err := self.expression(comma.Lhs); err != nil {
			return nil, err
		}
		return self.expression(comma.Rhs)
	case ast.ConditionalExpressionKind:
		return self.conditionalExpression(node.(ast.ConditionalExpression))
	case ast.VariableExpressionKind:
		variable := node.(ast.VariableExpression)
		return self.lookupVariable(variable.Ident.Ident(), variable.Ident.Span())
	case ast.AssignExpressionKind:
		return self.assignExpression(node.(ast.AssignExpression))
	case ast.CallExpressionKind:
		return self.callExpression(node.(ast.CallExpression))
	case ast.GetExpressionKind:
		return self.getExpression(node.(ast.GetExpression))
	case ast.SetExpressionKind:
		return self.setExpression(node.(ast.SetExpression))
	case ast.ArrayExpressionKind:
		return self.arrayExpression(node.(ast.ArrayExpression))
	case ast.SubscriptGetExpressionKind:
		return self.subscriptGetExpression(node.(ast.SubscriptGetExpression))
	case ast.SubscriptSetExpressionKind:
		return self.subscriptSetExpression(node.(ast.SubscriptSetExpression))
	case ast.ThisExpressionKind:
		return self.lookupVariable("this", node.Span())
	case ast.SuperExpressionKind:
		return self.superExpression(node.(ast.SuperExpression))
	default:
		panic("A new expression kind was added without updating this code")
	}
}

func (self *Interpreter) unaryExpression(node ast.UnaryExpression) (value.Value, *value.RuntimeError) {
	operand, err := self.expression(node.Operand)
	if err != nil {
		return nil, err
	}

	switch node.Operator {
	case ast.MinusUnaryOperator:
		return value.Negate(operand, node.Range)
	case ast.NotUnaryOperator:
		return value.Not(operand), nil
	default:
		panic("A new unary operator was added without updating this code")
	}
}

func (self *Interpreter) binaryExpression(node ast.BinaryExpression) (value.Value, *value.RuntimeError) {
	lhs, err := self.expression(node.Lhs)
	if err != nil {
		return nil, err
	}

	rhs, err := self.expression(node.Rhs)
	if err != nil {
		return nil, err
	}

	return value.BinaryOperation(node.Operator, lhs, rhs, node.Range)
}

// Both operators short-circuit and yield one of the operands, not a boolean
func (self *Interpreter) logicalExpression(node ast.LogicalExpression) (value.Value, *value.RuntimeError) {
	lhs, err := self.expression(node.Lhs)
	if err != nil {
		return nil, err
	}

	switch node.Operator {
	case ast.OrLogicalOperator:
		if value.IsTruthy(lhs) {
			return lhs, nil
		}
	case ast.AndLogicalOperator:
		if !value.IsTruthy(lhs) {
			return lhs, nil
		}
	default:
		panic("A new logical operator was added without updating this code")
	}

	return self.expression(node.Rhs)
}

func (self *Interpreter) conditionalExpression(node ast.ConditionalExpression) (value.Value, *value.RuntimeError) {
	condition, err := self.expression(node.Condition)
	if err != nil {
		return nil, err
	}

	if value.IsTruthy(condition) {
		return self.expression(node.Then)
	}
	return self.expression(node.Else)
}

func (self *Interpreter) assignExpression(node ast.AssignExpression) (value.Value, *value.RuntimeError) {
	val, err := self.expression(node.Value)
	if err != nil {
		return nil, err
	}

	if err := self.assignVariable(node.Ident.Ident(), node.Ident.Span(), val); err != nil {
		return nil, err
	}

	return val, nil
}

//
// Calls
//

func (self *Interpreter) callExpression(node ast.CallExpression) (value.Value, *value.RuntimeError) {
	callee, err := self.expression(node.Callee)
	if err != nil {
		return nil, err
	}

	arguments := make([]value.Value, 0, len(node.Arguments))
	for _, arg := range node.Arguments {
		val, err := self.expression(arg)
		if err != nil {
			return nil, err
		}
		arguments = append(arguments, val)
	}

	callable, isCallable := value.AsCallable(callee)
	if !isCallable {
		return nil, value.NewNotACallableError(node.Callee.Span(), callee)
	}

	if callable.Arity() != len(arguments) {
		return nil, value.NewMismatchingArityError(node.Range, callable.Arity(), len(arguments))
	}

	return self.Invoke(callable, arguments, node.Range)
}

//
// Properties
//

func (self *Interpreter) getExpression(node ast.GetExpression) (value.Value, *value.RuntimeError) {
	object, err := self.expression(node.Object)
	if err != nil {
		return nil, err
	}

	name := node.Property.Ident()

	switch receiver := object.(type) {
	case *value.ValueInstance:
		return receiver.Get(self, name, node.Property.Span())
	case *value.ValueClass:
		return receiver.GetStatic(name, node.Property.Span())
	case *value.ValueArray:
		return receiver.Get(name, node.Property.Span())
	default:
		return nil, value.NewNoPropertiesError(node.Object.Span(), object)
	}
}

func (self *Interpreter) setExpression(node ast.SetExpression) (value.Value, *value.RuntimeError) {
	object, err := self.expression(node.Object)
	if err != nil {
		return nil, err
	}

	instance, isInstance := object.(*value.ValueInstance)
	if !isInstance {
		return nil, value.NewNoFieldsError(node.Object.Span(), object)
	}

	val, err := self.expression(node.Value)
	if err != nil {
		return nil, err
	}

	instance.Set(node.Property.Ident(), val)
	return val, nil
}

func (self *Interpreter) superExpression(node ast.SuperExpression) (value.Value, *value.RuntimeError) {
	superLocal, found := self.local("super", node.Range)
	if !found {
		panic(fmt.Sprintf("Unresolved 'super' at %s", node.Range))
	}
	thisLocal, found := self.local("this", node.Range)
	if !found {
		panic(fmt.Sprintf("Unresolved 'this' for 'super' at %s", node.Range))
	}

	superclass := self.frame.GetAt(superLocal.Depth, superLocal.Index).(*value.ValueClass)
	instance := self.frame.GetAt(thisLocal.Depth, thisLocal.Index).(*value.ValueInstance)

	name := node.Method.Ident()
	member, found, err := superclass.BindMember(self, instance, name, node.Method.Span())
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, value.NewUndefinedPropertyError(node.Method.Span(), name)
	}

	return member, nil
}

//
// Arrays
//

func (self *Interpreter) arrayExpression(node ast.ArrayExpression) (value.Value, *value.RuntimeError) {
	elements := make([]value.Value, 0, len(node.Elements))
	for _, element := range node.Elements {
		val, err := self.expression(element)
		if err != nil {
			return nil, err
		}
		elements = append(elements, val)
	}
	return value.NewValueArray(elements), nil
}

func (self *Interpreter) subscriptGetExpression(node ast.SubscriptGetExpression) (value.Value, *value.RuntimeError) {
	object, err := self.expression(node.Object)
	if err != nil {
		return nil, err
	}

	scriptable, isScriptable := value.AsScriptable(object)
	if !isScriptable {
		return nil, value.NewNotAScriptableError(node.Object.Span(), object)
	}

	index, err := self.expression(node.Index)
	if err != nil {
		return nil, err
	}

	return scriptable.SubscriptGet(index, node.Index.Span())
}

func (self *Interpreter) subscriptSetExpression(node ast.SubscriptSetExpression) (value.Value, *value.RuntimeError) {
	object, err := self.expression(node.Object)
	if err != nil {
		return nil, err
	}

	scriptable, isScriptable := value.AsScriptable(object)
	if !isScriptable {
		return nil, value.NewNotAScriptableError(node.Object.Span(), object)
	}

	index, err := self.expression(node.Index)
	if err != nil {
		return nil, err
	}

	val, err := self.expression(node.Value)
	if err != nil {
		return nil, err
	}

	return scriptable.SubscriptSet(index, val, node.Index.Span())
}
