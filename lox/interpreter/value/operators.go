package value

import (
	"math"

	"github.com/smarthome-go/lox/lox/errors"
	"github.com/smarthome-go/lox/lox/parser/ast"
)

func Negate(operand Value, span errors.Span) (Value, *RuntimeError) {
	switch operand.Kind() {
	case IntValueKind:
		return NewValueInt(-operand.(ValueInt).Inner), nil
	case FloatValueKind:
		return NewValueFloat(-operand.(ValueFloat).Inner), nil
	default:
		return nil, NewUnsupportedOperandError(span, ast.MinusUnaryOperator.String(), operand)
	}
}

func Not(operand Value) Value {
	return NewValueBool(!IsTruthy(operand))
}

// Reports whether the value is an int or float which equals zero
func isZero(value Value) bool {
	number, isNumber := AsFloat(value)
	return isNumber && number == 0
}

// Applies one of `+ - * / %`.
// Two ints produce an int, any other combination of numbers produces a float.
func Arithmetic(operator ast.BinaryOperator, lhs Value, rhs Value, span errors.Span) (Value, *RuntimeError) {
	if (operator == ast.DivideBinaryOperator || operator == ast.ModuloBinaryOperator) && isZero(rhs) {
		return nil, NewDivisionByZeroError(span)
	}

	if lhs.Kind() == IntValueKind && rhs.Kind() == IntValueKind {
		return NewValueInt(intArithmetic(operator, lhs.(ValueInt).Inner, rhs.(ValueInt).Inner)), nil
	}

	lhsFloat, lhsIsNumber := AsFloat(lhs)
	rhsFloat, rhsIsNumber := AsFloat(rhs)
	if lhsIsNumber && rhsIsNumber {
		return NewValueFloat(floatArithmetic(operator, lhsFloat, rhsFloat)), nil
	}

	if operator == ast.PlusBinaryOperator && lhs.Kind() == StringValueKind && rhs.Kind() == StringValueKind {
		return NewValueString(lhs.(ValueString).Inner + rhs.(ValueString).Inner), nil
	}

	return nil, NewUnsupportedOperandsError(span, operator.String(), lhs, rhs)
}

func intArithmetic(operator ast.BinaryOperator, lhs int64, rhs int64) int64 {
	switch operator {
	case ast.PlusBinaryOperator:
		return lhs + rhs
	case ast.MinusBinaryOperator:
		return lhs - rhs
	case ast.MultiplyBinaryOperator:
		return lhs * rhs
	case ast.DivideBinaryOperator:
		return lhs / rhs
	case ast.ModuloBinaryOperator:
		return lhs % rhs
	default:
		panic("Unreachable: not an arithmetic operator")
	}
}

func floatArithmetic(operator ast.BinaryOperator, lhs float64, rhs float64) float64 {
	switch operator {
	case ast.PlusBinaryOperator:
		return lhs + rhs
	case ast.MinusBinaryOperator:
		return lhs - rhs
	case ast.MultiplyBinaryOperator:
		return lhs * rhs
	case ast.DivideBinaryOperator:
		return lhs / rhs
	case ast.ModuloBinaryOperator:
		return math.Mod(lhs, rhs)
	default:
		panic("Unreachable: not an arithmetic operator")
	}
}

// Applies one of `> >= < <=`, only numbers can be compared
func Compare(operator ast.BinaryOperator, lhs Value, rhs Value, span errors.Span) (Value, *RuntimeError) {
	if lhs.Kind() == IntValueKind && rhs.Kind() == IntValueKind {
		left, right := lhs.(ValueInt).Inner, rhs.(ValueInt).Inner
		switch operator {
		case ast.GreaterBinaryOperator:
			return NewValueBool(left > right), nil
		case ast.GreaterEqualBinaryOperator:
			return NewValueBool(left >= right), nil
		case ast.LessBinaryOperator:
			return NewValueBool(left < right), nil
		case ast.LessEqualBinaryOperator:
			return NewValueBool(left <= right), nil
		}
	}

	left, lhsIsNumber := AsFloat(lhs)
	right, rhsIsNumber := AsFloat(rhs)
	if !lhsIsNumber || !rhsIsNumber {
		return nil, NewUnsupportedOperandsError(span, operator.String(), lhs, rhs)
	}

	switch operator {
	case ast.GreaterBinaryOperator:
		return NewValueBool(left > right), nil
	case ast.GreaterEqualBinaryOperator:
		return NewValueBool(left >= right), nil
	case ast.LessBinaryOperator:
		return NewValueBool(left < right), nil
	case ast.LessEqualBinaryOperator:
		return NewValueBool(left <= right), nil
	default:
		panic("Unreachable: not a comparison operator")
	}
}

// Evaluates any binary operator
func BinaryOperation(operator ast.BinaryOperator, lhs Value, rhs Value, span errors.Span) (Value, *RuntimeError) {
	switch operator {
	case ast.PlusBinaryOperator,
		ast.MinusBinaryOperator,
		ast.MultiplyBinaryOperator,
		ast.DivideBinaryOperator,
		ast.ModuloBinaryOperator:
		return Arithmetic(operator, lhs, rhs, span)
	case ast.EqualBinaryOperator:
		return NewValueBool(lhs.IsEqual(rhs)), nil
	case ast.NotEqualBinaryOperator:
		return NewValueBool(!lhs.IsEqual(rhs)), nil
	case ast.GreaterBinaryOperator,
		ast.GreaterEqualBinaryOperator,
		ast.LessBinaryOperator,
		ast.LessEqualBinaryOperator:
		return Compare(operator, lhs, rhs, span)
	default:
		panic("A new binary operator was added without updating this code")
	}
}
