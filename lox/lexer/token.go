package lexer

import (
	"fmt"

	"github.com/smarthome-go/lox/lox/errors"
)

type Token struct {
	Kind  TokenKind
	Value string
	Span  errors.Span
}

func (self Token) String() string {
	return fmt.Sprintf("(%d:%d--%d:%d) ==> %v | %q", self.Span.Start.Line, self.Span.Start.Column, self.Span.End.Line, self.Span.End.Column, self.Kind, self.Value)
}

func newToken(kind TokenKind, value string, span errors.Span) Token {
	return Token{
		Kind:  kind,
		Value: value,
		Span:  span,
	}
}

func UnknownToken(location errors.Location) Token {
	return newToken(Unknown, "Unknown", errors.Span{Start: location, End: location})
}

type TokenKind uint8

const (
	Unknown TokenKind = iota
	EOF

	LParen    // (
	RParen    // )
	LCurly    // {
	RCurly    // }
	LBracket  // [
	RBracket  // ]
	Comma     // ,
	Dot       // .
	Question  // ?
	Colon     // :
	Semicolon // ;

	Minus          // -
	MinusAssign    // -=
	MinusMinus     // --
	Plus           // +
	PlusAssign     // +=
	PlusPlus       // ++
	Divide         // /
	DivideAssign   // /=
	Multiply       // *
	MultiplyAssign // *=
	Modulo         // %
	ModuloAssign   // %=
	Not            // !
	NotEqual       // !=
	Assign         // =
	Equal          // ==
	Greater        // >
	GreaterEqual   // >=
	Less           // <
	LessEqual      // <=

	Identifier
	String
	Integer
	Float

	And      // and
	Break    // break
	Class    // class
	Continue // continue
	Else     // else
	False    // false
	Fun      // fun
	For      // for
	If       // if
	Nil      // nil
	Or       // or
	Print    // print
	Return   // return
	Super    // super
	This     // this
	True     // true
	Var      // var
	While    // while
)

func (self TokenKind) String() string {
	switch self {
	case Unknown:
		return "UNKNOWN"
	case EOF:
		return "EOF"
	case LParen:
		return "("
	case RParen:
		return ")"
	case LCurly:
		return "{"
	case RCurly:
		return "}"
	case LBracket:
		return "["
	case RBracket:
		return "]"
	case Comma:
		return ","
	case Dot:
		return "."
	case Question:
		return "?"
	case Colon:
		return ":"
	case Semicolon:
		return ";"
	case Minus:
		return "-"
	case MinusAssign:
		return "-="
	case MinusMinus:
		return "--"
	case Plus:
		return "+"
	case PlusAssign:
		return "+="
	case PlusPlus:
		return "++"
	case Divide:
		return "/"
	case DivideAssign:
		return "/="
	case Multiply:
		return "*"
	case MultiplyAssign:
		return "*="
	case Modulo:
		return "%"
	case ModuloAssign:
		return "%="
	case Not:
		return "!"
	case NotEqual:
		return "!="
	case Assign:
		return "="
	case Equal:
		return "=="
	case Greater:
		return ">"
	case GreaterEqual:
		return ">="
	case Less:
		return "<"
	case LessEqual:
		return "<="
	case Identifier:
		return "identifier"
	case String:
		return "string"
	case Integer:
		return "integer"
	case Float:
		return "float"
	case And:
		return "and"
	case Break:
		return "break"
	case Class:
		return "class"
	case Continue:
		return "continue"
	case Else:
		return "else"
	case False:
		return "false"
	case Fun:
		return "fun"
	case For:
		return "for"
	case If:
		return "if"
	case Nil:
		return "nil"
	case Or:
		return "or"
	case Print:
		return "print"
	case Return:
		return "return"
	case Super:
		return "super"
	case This:
		return "this"
	case True:
		return "true"
	case Var:
		return "var"
	case While:
		return "while"
	default:
		panic("A new token kind was introduced without updating this code")
	}
}

var keywords = map[string]TokenKind{
	"and":      And,
	"break":    Break,
	"class":    Class,
	"continue": Continue,
	"else":     Else,
	"false":    False,
	"fun":      Fun,
	"for":      For,
	"if":       If,
	"nil":      Nil,
	"or":       Or,
	"print":    Print,
	"return":   Return,
	"super":    Super,
	"this":     This,
	"true":     True,
	"var":      Var,
	"while":    While,
}
