package ast

import (
	"fmt"
	"strings"

	"github.com/smarthome-go/lox/lox/errors"
)

type Statement interface {
	Kind() StatementKind
	Span() errors.Span
	String() string
}

type StatementKind uint8

const (
	ExpressionStatementKind StatementKind = iota
	PrintStatementKind
	VarStatementKind
	BlockStatementKind
	IfStatementKind
	LoopStatementKind
	FunctionStatementKind
	ClassStatementKind
	ReturnStatementKind
	BreakStatementKind
	ContinueStatementKind
)

//
// Expression statement
//

type ExpressionStatement struct {
	Expression Expression
	Range      errors.Span
}

func (self ExpressionStatement) Kind() StatementKind { return ExpressionStatementKind }
func (self ExpressionStatement) Span() errors.Span   { return self.Range }
func (self ExpressionStatement) String() string      { return fmt.Sprintf("%s;", self.Expression) }

//
// Print statement
//

type PrintStatement struct {
	Expression Expression
	Range      errors.Span
}

func (self PrintStatement) Kind() StatementKind { return PrintStatementKind }
func (self PrintStatement) Span() errors.Span   { return self.Range }
func (self PrintStatement) String() string      { return fmt.Sprintf("print %s;", self.Expression) }

//
// Var statement
//

type VarStatement struct {
	Ident SpannedIdent
	// Is nil if the variable has no initializer
	Initializer Expression
	Range       errors.Span
}

func (self VarStatement) Kind() StatementKind { return VarStatementKind }
func (self VarStatement) Span() errors.Span   { return self.Range }
func (self VarStatement) String() string {
	if self.Initializer == nil {
		return fmt.Sprintf("var %s;", self.Ident)
	}
	return fmt.Sprintf("var %s = %s;", self.Ident, self.Initializer)
}

//
// Block statement
//

type BlockStatement struct {
	Statements []Statement
	Range      errors.Span
}

func (self BlockStatement) Kind() StatementKind { return BlockStatementKind }
func (self BlockStatement) Span() errors.Span   { return self.Range }
func (self BlockStatement) String() string      { return blockString(self.Statements) }

//
// If statement
//

type IfStatement struct {
	Condition Expression
	Then      Statement
	// Is nil if there is no else branch
	Else  Statement
	Range errors.Span
}

func (self IfStatement) Kind() StatementKind { return IfStatementKind }
func (self IfStatement) Span() errors.Span   { return self.Range }
func (self IfStatement) String() string {
	if self.Else == nil {
		return fmt.Sprintf("if (%s) %s", self.Condition, self.Then)
	}
	return fmt.Sprintf("if (%s) %s else %s", self.Condition, self.Then, self.Else)
}

//
// Loop statement
// Both `while` and `for` loops are represented by this node.
//

type LoopStatement struct {
	Condition Expression
	// Is nil for `while` loops and for `for` loops without an increment clause
	Increment Expression
	Body      Statement
	Range     errors.Span
}

func (self LoopStatement) Kind() StatementKind { return LoopStatementKind }
func (self LoopStatement) Span() errors.Span   { return self.Range }
func (self LoopStatement) String() string {
	if self.Increment == nil {
		return fmt.Sprintf("while (%s) %s", self.Condition, self.Body)
	}
	return fmt.Sprintf("for (; %s; %s) %s", self.Condition, self.Increment, self.Body)
}

//
// Function statement
//

type FunctionKind uint8

const (
	FunctionKindFunction FunctionKind = iota
	FunctionKindMethod
	FunctionKindGetter
	FunctionKindStaticMethod
	FunctionKindInitializer
)

func (self FunctionKind) String() string {
	switch self {
	case FunctionKindFunction:
		return "function"
	case FunctionKindMethod:
		return "method"
	case FunctionKindGetter:
		return "getter"
	case FunctionKindStaticMethod:
		return "static method"
	case FunctionKindInitializer:
		return "initializer"
	default:
		panic("A new function kind was added without updating this code")
	}
}

// Reports whether functions of this kind are bound to an instance (and can therefore use `this`)
func (self FunctionKind) IsBound() bool {
	return self == FunctionKindMethod || self == FunctionKindGetter || self == FunctionKindInitializer
}

type FunctionStatement struct {
	Ident        SpannedIdent
	FunctionKind FunctionKind
	Params       []SpannedIdent
	Body         []Statement
	Range        errors.Span
}

func (self FunctionStatement) Kind() StatementKind { return FunctionStatementKind }
func (self FunctionStatement) Span() errors.Span   { return self.Range }
func (self FunctionStatement) String() string {
	switch self.FunctionKind {
	case FunctionKindFunction:
		return fmt.Sprintf("fun %s(%s) %s", self.Ident, identList(self.Params), blockString(self.Body))
	case FunctionKindGetter:
		return fmt.Sprintf("%s %s", self.Ident, blockString(self.Body))
	case FunctionKindStaticMethod:
		return fmt.Sprintf("class %s(%s) %s", self.Ident, identList(self.Params), blockString(self.Body))
	default:
		return fmt.Sprintf("%s(%s) %s", self.Ident, identList(self.Params), blockString(self.Body))
	}
}

//
// Class statement
//

type ClassStatement struct {
	Ident SpannedIdent
	// Is nil if the class does not inherit from another class
	Superclass *VariableExpression
	Methods    []FunctionStatement
	Range      errors.Span
}

func (self ClassStatement) Kind() StatementKind { return ClassStatementKind }
func (self ClassStatement) Span() errors.Span   { return self.Range }
func (self ClassStatement) String() string {
	superclass := ""
	if self.Superclass != nil {
		superclass = fmt.Sprintf(" < %s", self.Superclass)
	}

	methods := make([]string, 0, len(self.Methods))
	for _, method := range self.Methods {
		methods = append(methods, "    "+strings.ReplaceAll(method.String(), "\n", "\n    "))
	}

	if len(methods) == 0 {
		return fmt.Sprintf("class %s%s {}", self.Ident, superclass)
	}
	return fmt.Sprintf("class %s%s {\n%s\n}", self.Ident, superclass, strings.Join(methods, "\n"))
}

//
// Return statement
//

type ReturnStatement struct {
	// Is nil for a bare `return;`
	Value Expression
	Range errors.Span
}

func (self ReturnStatement) Kind() StatementKind { return ReturnStatementKind }
func (self ReturnStatement) Span() errors.Span   { return self.Range }
func (self ReturnStatement) String() string {
	if self.Value == nil {
		return "return;"
	}
	return fmt.Sprintf("return %s;", self.Value)
}

//
// Break statement
//

type BreakStatement struct {
	Range errors.Span
}

func (self BreakStatement) Kind() StatementKind { return BreakStatementKind }
func (self BreakStatement) Span() errors.Span   { return self.Range }
func (self BreakStatement) String() string      { return "break;" }

//
// Continue statement
//

type ContinueStatement struct {
	Range errors.Span
}

func (self ContinueStatement) Kind() StatementKind { return ContinueStatementKind }
func (self ContinueStatement) Span() errors.Span   { return self.Range }
func (self ContinueStatement) String() string      { return "continue;" }
