package ast

import (
	"fmt"

	"github.com/smarthome-go/lox/lox/lexer"
)

type UnaryOperator uint8

const (
	MinusUnaryOperator UnaryOperator = iota
	NotUnaryOperator
)

func (self UnaryOperator) String() string {
	switch self {
	case MinusUnaryOperator:
		return "-"
	case NotUnaryOperator:
		return "!"
	default:
		panic("A new unary operator was added without updating this code")
	}
}

type BinaryOperator uint8

const (
	PlusBinaryOperator BinaryOperator = iota
	MinusBinaryOperator
	MultiplyBinaryOperator
	DivideBinaryOperator
	ModuloBinaryOperator
	EqualBinaryOperator
	NotEqualBinaryOperator
	GreaterBinaryOperator
	GreaterEqualBinaryOperator
	LessBinaryOperator
	LessEqualBinaryOperator
)

func (self BinaryOperator) String() string {
	switch self {
	case PlusBinaryOperator:
		return "+"
	case MinusBinaryOperator:
		return "-"
	case MultiplyBinaryOperator:
		return "*"
	case DivideBinaryOperator:
		return "/"
	case ModuloBinaryOperator:
		return "%"
	case EqualBinaryOperator:
		return "=="
	case NotEqualBinaryOperator:
		return "!="
	case GreaterBinaryOperator:
		return ">"
	case GreaterEqualBinaryOperator:
		return ">="
	case LessBinaryOperator:
		return "<"
	case LessEqualBinaryOperator:
		return "<="
	default:
		panic("A new binary operator was added without updating this code")
	}
}

type LogicalOperator uint8

const (
	AndLogicalOperator LogicalOperator = iota
	OrLogicalOperator
)

func (self LogicalOperator) String() string {
	switch self {
	case AndLogicalOperator:
		return "and"
	case OrLogicalOperator:
		return "or"
	default:
		panic("A new logical operator was added without updating this code")
	}
}

func TokenAsUnaryOperator(from lexer.TokenKind) UnaryOperator {
	switch from {
	case lexer.Minus:
		return MinusUnaryOperator
	case lexer.Not:
		return NotUnaryOperator
	default:
		panic(fmt.Sprintf("Unreachable: this method was called on an unsupported token `%s`", from))
	}
}

// Also maps compound assignment and increment / decrement tokens onto the operator they apply
func TokenAsBinaryOperator(from lexer.TokenKind) BinaryOperator {
	switch from {
	case lexer.Plus, lexer.PlusAssign, lexer.PlusPlus:
		return PlusBinaryOperator
	case lexer.Minus, lexer.MinusAssign, lexer.MinusMinus:
		return MinusBinaryOperator
	case lexer.Multiply, lexer.MultiplyAssign:
		return MultiplyBinaryOperator
	case lexer.Divide, lexer.DivideAssign:
		return DivideBinaryOperator
	case lexer.Modulo, lexer.ModuloAssign:
		return ModuloBinaryOperator
	case lexer.Equal:
		return EqualBinaryOperator
	case lexer.NotEqual:
		return NotEqualBinaryOperator
	case lexer.Greater:
		return GreaterBinaryOperator
	case lexer.GreaterEqual:
		return GreaterEqualBinaryOperator
	case lexer.Less:
		return LessBinaryOperator
	case lexer.LessEqual:
		return LessEqualBinaryOperator
	default:
		panic(fmt.Sprintf("Unreachable: this method was called on an unsupported token `%s`", from))
	}
}

func TokenAsLogicalOperator(from lexer.TokenKind) LogicalOperator {
	switch from {
	case lexer.And:
		return AndLogicalOperator
	case lexer.Or:
		return OrLogicalOperator
	default:
		panic(fmt.Sprintf("Unreachable: this method was called on an unsupported token `%s`", from))
	}
}
