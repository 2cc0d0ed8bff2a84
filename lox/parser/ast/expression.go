package ast

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/smarthome-go/lox/lox/errors"
)

type Expression interface {
	Kind() ExpressionKind
	Span() errors.Span
	String() string
}

type ExpressionKind uint8

const (
	IntLiteralExpressionKind ExpressionKind = iota
	FloatLiteralExpressionKind
	BoolLiteralExpressionKind
	StringLiteralExpressionKind
	NilLiteralExpressionKind
	FunctionExpressionKind
	UnaryExpressionKind
	BinaryExpressionKind
	LogicalExpressionKind
	GroupedExpressionKind
	CommaExpressionKind
	ConditionalExpressionKind
	VariableExpressionKind
	AssignExpressionKind
	CallExpressionKind
	GetExpressionKind
	SetExpressionKind
	ArrayExpressionKind
	SubscriptGetExpressionKind
	SubscriptSetExpressionKind
	ThisExpressionKind
	SuperExpressionKind
)

//
// Int literal
//

type IntLiteralExpression struct {
	Value int64
	Range errors.Span
}

func (self IntLiteralExpression) Kind() ExpressionKind { return IntLiteralExpressionKind }
func (self IntLiteralExpression) Span() errors.Span    { return self.Range }
func (self IntLiteralExpression) String() string       { return fmt.Sprint(self.Value) }

//
// Float literal
//

type FloatLiteralExpression struct {
	Value float64
	Range errors.Span
}

func (self FloatLiteralExpression) Kind() ExpressionKind { return FloatLiteralExpressionKind }
func (self FloatLiteralExpression) Span() errors.Span    { return self.Range }
func (self FloatLiteralExpression) String() string {
	str := strconv.FormatFloat(self.Value, 'f', -1, 64)
	// Keep the literal distinguishable from an int literal
	if !strings.ContainsAny(str, ".eE") {
		str += ".0"
	}
	return str
}

//
// Bool literal
//

type BoolLiteralExpression struct {
	Value bool
	Range errors.Span
}

func (self BoolLiteralExpression) Kind() ExpressionKind { return BoolLiteralExpressionKind }
func (self BoolLiteralExpression) Span() errors.Span    { return self.Range }
func (self BoolLiteralExpression) String() string       { return fmt.Sprint(self.Value) }

//
// String literal
//

type StringLiteralExpression struct {
	Value string
	Range errors.Span
}

func (self StringLiteralExpression) Kind() ExpressionKind { return StringLiteralExpressionKind }
func (self StringLiteralExpression) Span() errors.Span    { return self.Range }
func (self StringLiteralExpression) String() string       { return strconv.Quote(self.Value) }

//
// Nil literal
//

type NilLiteralExpression struct {
	Range errors.Span
}

func (self NilLiteralExpression) Kind() ExpressionKind { return NilLiteralExpressionKind }
func (self NilLiteralExpression) Span() errors.Span    { return self.Range }
func (self NilLiteralExpression) String() string       { return "nil" }

//
// Anonymous function
//

type FunctionExpression struct {
	Params []SpannedIdent
	Body   []Statement
	Range  errors.Span
}

func (self FunctionExpression) Kind() ExpressionKind { return FunctionExpressionKind }
func (self FunctionExpression) Span() errors.Span    { return self.Range }
func (self FunctionExpression) String() string {
	return fmt.Sprintf("fun (%s) %s", identList(self.Params), blockString(self.Body))
}

//
// Unary expression
//

type UnaryExpression struct {
	Operator UnaryOperator
	Operand  Expression
	Range    errors.Span
}

func (self UnaryExpression) Kind() ExpressionKind { return UnaryExpressionKind }
func (self UnaryExpression) Span() errors.Span    { return self.Range }
func (self UnaryExpression) String() string       { return fmt.Sprintf("(%s%s)", self.Operator, self.Operand) }

//
// Binary expression
//

type BinaryExpression struct {
	Lhs      Expression
	Operator BinaryOperator
	Rhs      Expression
	Range    errors.Span
}

func (self BinaryExpression) Kind() ExpressionKind { return BinaryExpressionKind }
func (self BinaryExpression) Span() errors.Span    { return self.Range }
func (self BinaryExpression) String() string {
	return fmt.Sprintf("(%s %s %s)", self.Lhs, self.Operator, self.Rhs)
}

//
// Logical expression
//

type LogicalExpression struct {
	Lhs      Expression
	Operator LogicalOperator
	Rhs      Expression
	Range    errors.Span
}

func (self LogicalExpression) Kind() ExpressionKind { return LogicalExpressionKind }
func (self LogicalExpression) Span() errors.Span    { return self.Range }
func (self LogicalExpression) String() string {
	return fmt.Sprintf("(%s %s %s)", self.Lhs, self.Operator, self.Rhs)
}

//
// Grouped expression
//

type GroupedExpression struct {
	Inner Expression
	Range errors.Span
}

func (self GroupedExpression) Kind() ExpressionKind { return GroupedExpressionKind }
func (self GroupedExpression) Span() errors.Span    { return self.Range }
func (self GroupedExpression) String() string       { return fmt.Sprintf("(%s)", self.Inner) }

//
// Comma expression
//

type CommaExpression struct {
	Lhs   Expression
	Rhs   Expression
	Range errors.Span
}

func (self CommaExpression) Kind() ExpressionKind { return CommaExpressionKind }
func (self CommaExpression) Span() errors.Span    { return self.Range }
func (self CommaExpression) String() string       { return fmt.Sprintf("(%s, %s)", self.Lhs, self.Rhs) }

//
// Conditional expression
//

type ConditionalExpression struct {
	Condition Expression
	Then      Expression
	Else      Expression
	Range     errors.Span
}

func (self ConditionalExpression) Kind() ExpressionKind { return ConditionalExpressionKind }
func (self ConditionalExpression) Span() errors.Span    { return self.Range }
func (self ConditionalExpression) String() string {
	return fmt.Sprintf("(%s ? %s : %s)", self.Condition, self.Then, self.Else)
}

//
// Variable expression
//

type VariableExpression struct {
	Ident SpannedIdent
}

func (self VariableExpression) Kind() ExpressionKind { return VariableExpressionKind }
func (self VariableExpression) Span() errors.Span    { return self.Ident.Span() }
func (self VariableExpression) String() string       { return self.Ident.Ident() }

//
// Assign expression
//

type AssignExpression struct {
	Ident SpannedIdent
	Value Expression
	Range errors.Span
}

func (self AssignExpression) Kind() ExpressionKind { return AssignExpressionKind }
func (self AssignExpression) Span() errors.Span    { return self.Range }
func (self AssignExpression) String() string {
	return fmt.Sprintf("(%s = %s)", self.Ident, self.Value)
}

//
// Call expression
//

type CallExpression struct {
	Callee    Expression
	Arguments []Expression
	Range     errors.Span
}

func (self CallExpression) Kind() ExpressionKind { return CallExpressionKind }
func (self CallExpression) Span() errors.Span    { return self.Range }
func (self CallExpression) String() string {
	return fmt.Sprintf("%s(%s)", self.Callee, expressionList(self.Arguments))
}

//
// Property get expression
//

type GetExpression struct {
	Object   Expression
	Property SpannedIdent
	Range    errors.Span
}

func (self GetExpression) Kind() ExpressionKind { return GetExpressionKind }
func (self GetExpression) Span() errors.Span    { return self.Range }
func (self GetExpression) String() string       { return fmt.Sprintf("%s.%s", self.Object, self.Property) }

//
// Property set expression
//

type SetExpression struct {
	Object   Expression
	Property SpannedIdent
	Value    Expression
	Range    errors.Span
}

func (self SetExpression) Kind() ExpressionKind { return SetExpressionKind }
func (self SetExpression) Span() errors.Span    { return self.Range }
func (self SetExpression) String() string {
	return fmt.Sprintf("(%s.%s = %s)", self.Object, self.Property, self.Value)
}

//
// Array literal
//

type ArrayExpression struct {
	Elements []Expression
	Range    errors.Span
}

func (self ArrayExpression) Kind() ExpressionKind { return ArrayExpressionKind }
func (self ArrayExpression) Span() errors.Span    { return self.Range }
func (self ArrayExpression) String() string       { return fmt.Sprintf("[%s]", expressionList(self.Elements)) }

//
// Subscript get expression
//

type SubscriptGetExpression struct {
	Object Expression
	Index  Expression
	Range  errors.Span
}

func (self SubscriptGetExpression) Kind() ExpressionKind { return SubscriptGetExpressionKind }
func (self SubscriptGetExpression) Span() errors.Span    { return self.Range }
func (self SubscriptGetExpression) String() string {
	return fmt.Sprintf("%s[%s]", self.Object, self.Index)
}

//
// Subscript set expression
//

type SubscriptSetExpression struct {
	Object Expression
	Index  Expression
	Value  Expression
	Range  errors.Span
}

func (self SubscriptSetExpression) Kind() ExpressionKind { return SubscriptSetExpressionKind }
func (self SubscriptSetExpression) Span() errors.Span    { return self.Range }
func (self SubscriptSetExpression) String() string {
	return fmt.Sprintf("(%s[%s] = %s)", self.Object, self.Index, self.Value)
}

//
// This expression
//

type ThisExpression struct {
	Range errors.Span
}

func (self ThisExpression) Kind() ExpressionKind { return ThisExpressionKind }
func (self ThisExpression) Span() errors.Span    { return self.Range }
func (self ThisExpression) String() string       { return "this" }

//
// Super expression
//

type SuperExpression struct {
	Method SpannedIdent
	Range  errors.Span
}

func (self SuperExpression) Kind() ExpressionKind { return SuperExpressionKind }
func (self SuperExpression) Span() errors.Span    { return self.Range }
func (self SuperExpression) String() string       { return fmt.Sprintf("super.%s", self.Method) }

func expressionList(expressions []Expression) string {
	output := make([]string, 0, len(expressions))
	for _, expr := range expressions {
		output = append(output, expr.String())
	}
	return strings.Join(output, ", ")
}
