package parser

import (
	"fmt"
	"strconv"

	"github.com/smarthome-go/lox/lox/errors"
	"github.com/smarthome-go/lox/lox/lexer"
	"github.com/smarthome-go/lox/lox/parser/ast"
)

//
// Precedence, lowest first:
// comma, assignment, conditional, or, and, equality, comparison,
// additive, multiplicative, unary, postfix, call / get / subscript, primary
//

func (self *Parser) expression() (ast.Expression, *errors.Error) {
	lhs, err := self.assignment()
	if err != nil {
		return nil, err
	}

	if !self.matches(lexer.Comma) {
		return lhs, nil
	}

	rhs, err := self.expression()
	if err != nil {
		return nil, err
	}

	return ast.CommaExpression{
		Lhs:   lhs,
		Rhs:   rhs,
		Range: lhs.Span().Until(rhs.Span()),
	}, nil
}

func (self *Parser) assignment() (ast.Expression, *errors.Error) {
	target, err := self.conditional()
	if err != nil {
		return nil, err
	}

	if !self.matches(
		lexer.Assign,
		lexer.PlusAssign,
		lexer.MinusAssign,
		lexer.MultiplyAssign,
		lexer.DivideAssign,
		lexer.ModuloAssign,
	) {
		return target, nil
	}
	operator := self.PreviousToken

	value, err := self.assignment()
	if err != nil {
		return nil, err
	}

	return self.makeAssign(target, operator, value), nil
}

// Builds the assignment node matching the target expression.
// Compound operators are desugared: `a += b` becomes `a = a + b`.
func (self *Parser) makeAssign(target ast.Expression, operator lexer.Token, value ast.Expression) ast.Expression {
	if operator.Kind != lexer.Assign {
		value = ast.BinaryExpression{
			Lhs:      target,
			Operator: ast.TokenAsBinaryOperator(operator.Kind),
			Rhs:      value,
			Range:    target.Span().Until(value.Span()),
		}
	}

	span := target.Span().Until(value.Span())

	switch target.Kind() {
	case ast.VariableExpressionKind:
		return ast.AssignExpression{
			Ident: target.(ast.VariableExpression).Ident,
			Value: value,
			Range: span,
		}
	case ast.GetExpressionKind:
		get := target.(ast.GetExpression)
		return ast.SetExpression{
			Object:   get.Object,
			Property: get.Property,
			Value:    value,
			Range:    span,
		}
	case ast.SubscriptGetExpressionKind:
		subscript := target.(ast.SubscriptGetExpression)
		return ast.SubscriptSetExpression{
			Object: subscript.Object,
			Index:  subscript.Index,
			Value:  value,
			Range:  span,
		}
	default:
		self.nonCriticalErr(target.Span(), "Invalid assignment target")
		return value
	}
}

func isAssignable(expr ast.Expression) bool {
	switch expr.Kind() {
	case ast.VariableExpressionKind, ast.GetExpressionKind, ast.SubscriptGetExpressionKind:
		return true
	default:
		return false
	}
}

func (self *Parser) conditional() (ast.Expression, *errors.Error) {
	condition, err := self.or()
	if err != nil {
		return nil, err
	}

	if !self.matches(lexer.Question) {
		return condition, nil
	}

	thenExpr, err := self.expression()
	if err != nil {
		return nil, err
	}

	if err := self.expect(lexer.Colon, "conditional branch"); err != nil {
		return nil, err
	}

	elseExpr, err := self.conditional()
	if err != nil {
		return nil, err
	}

	return ast.ConditionalExpression{
		Condition: condition,
		Then:      thenExpr,
		Else:      elseExpr,
		Range:     condition.Span().Until(elseExpr.Span()),
	}, nil
}

func (self *Parser) or() (ast.Expression, *errors.Error) {
	return self.logical(lexer.Or, self.and)
}

func (self *Parser) and() (ast.Expression, *errors.Error) {
	return self.logical(lexer.And, self.equality)
}

func (self *Parser) logical(operator lexer.TokenKind, operand func() (ast.Expression, *errors.Error)) (ast.Expression, *errors.Error) {
	lhs, err := operand()
	if err != nil {
		return nil, err
	}

	for self.matches(operator) {
		rhs, err := operand()
		if err != nil {
			return nil, err
		}

		lhs = ast.LogicalExpression{
			Lhs:      lhs,
			Operator: ast.TokenAsLogicalOperator(operator),
			Rhs:      rhs,
			Range:    lhs.Span().Until(rhs.Span()),
		}
	}

	return lhs, nil
}

func (self *Parser) equality() (ast.Expression, *errors.Error) {
	return self.binary(self.comparison, lexer.Equal, lexer.NotEqual)
}

func (self *Parser) comparison() (ast.Expression, *errors.Error) {
	return self.binary(self.additive, lexer.Greater, lexer.GreaterEqual, lexer.Less, lexer.LessEqual)
}

func (self *Parser) additive() (ast.Expression, *errors.Error) {
	return self.binary(self.multiplicative, lexer.Plus, lexer.Minus)
}

func (self *Parser) multiplicative() (ast.Expression, *errors.Error) {
	return self.binary(self.unary, lexer.Multiply, lexer.Divide, lexer.Modulo)
}

// Parses a left-associative chain of binary operations
func (self *Parser) binary(operand func() (ast.Expression, *errors.Error), operators ...lexer.TokenKind) (ast.Expression, *errors.Error) {
	lhs, err := operand()
	if err != nil {
		return nil, err
	}

	for self.matches(operators...) {
		operator := self.PreviousToken.Kind

		rhs, err := operand()
		if err != nil {
			return nil, err
		}

		lhs = ast.BinaryExpression{
			Lhs:      lhs,
			Operator: ast.TokenAsBinaryOperator(operator),
			Rhs:      rhs,
			Range:    lhs.Span().Until(rhs.Span()),
		}
	}

	return lhs, nil
}

func (self *Parser) unary() (ast.Expression, *errors.Error) {
	switch self.CurrentToken.Kind {
	case lexer.Not, lexer.Minus:
		self.next()
		operator := self.PreviousToken

		operand, err := self.unary()
		if err != nil {
			return nil, err
		}

		return ast.UnaryExpression{
			Operator: ast.TokenAsUnaryOperator(operator.Kind),
			Operand:  operand,
			Range:    operator.Span.Until(operand.Span()),
		}, nil
	case lexer.PlusPlus, lexer.MinusMinus:
		// `++a` becomes `a = a + 1`
		self.next()
		operator := self.PreviousToken

		operand, err := self.unary()
		if err != nil {
			return nil, err
		}

		return self.makeAssign(operand, operator, ast.IntLiteralExpression{Value: 1, Range: operator.Span}), nil
	default:
		return self.postfix()
	}
}

func (self *Parser) postfix() (ast.Expression, *errors.Error) {
	operand, err := self.call()
	if err != nil {
		return nil, err
	}

	if !self.matches(lexer.PlusPlus, lexer.MinusMinus) {
		return operand, nil
	}
	operator := self.PreviousToken

	if !isAssignable(operand) {
		self.nonCriticalErr(operand.Span(), "Invalid assignment target")
		return operand, nil
	}

	// `a++` becomes `(a = a + 1, a - 1)` so that the expression yields the previous value
	one := ast.IntLiteralExpression{Value: 1, Range: operator.Span}
	assign := self.makeAssign(operand, operator, one)

	inverse := ast.MinusBinaryOperator
	if operator.Kind == lexer.MinusMinus {
		inverse = ast.PlusBinaryOperator
	}

	span := operand.Span().Until(operator.Span)

	return ast.CommaExpression{
		Lhs: assign,
		Rhs: ast.BinaryExpression{
			Lhs:      operand,
			Operator: inverse,
			Rhs:      one,
			Range:    span,
		},
		Range: span,
	}, nil
}

func (self *Parser) call() (ast.Expression, *errors.Error) {
	expr, err := self.primary()
	if err != nil {
		return nil, err
	}

	for {
		switch {
		case self.matches(lexer.LParen):
			expr, err = self.finishCall(expr)
			if err != nil {
				return nil, err
			}
		case self.matches(lexer.Dot):
			name, nameSpan, err := self.expectIdent("property")
			if err != nil {
				return nil, err
			}
			expr = ast.GetExpression{
				Object:   expr,
				Property: ast.NewSpannedIdent(name, nameSpan),
				Range:    expr.Span().Until(nameSpan),
			}
		case self.matches(lexer.LBracket):
			index, err := self.expression()
			if err != nil {
				return nil, err
			}
			if err := self.expect(lexer.RBracket, "subscript index"); err != nil {
				return nil, err
			}
			expr = ast.SubscriptGetExpression{
				Object: expr,
				Index:  index,
				Range:  expr.Span().Until(self.PreviousToken.Span),
			}
		default:
			return expr, nil
		}
	}
}

func (self *Parser) finishCall(callee ast.Expression) (ast.Expression, *errors.Error) {
	arguments, err := self.expressionList(lexer.RParen, "arguments")
	if err != nil {
		return nil, err
	}

	return ast.CallExpression{
		Callee:    callee,
		Arguments: arguments,
		Range:     callee.Span().Until(self.PreviousToken.Span),
	}, nil
}

// Parses comma-separated expressions until the `closing` token, which is consumed as well
func (self *Parser) expressionList(closing lexer.TokenKind, what string) ([]ast.Expression, *errors.Error) {
	list := make([]ast.Expression, 0)

	if self.CurrentToken.Kind != closing {
		for {
			expr, err := self.assignment()
			if err != nil {
				return nil, err
			}
			if closing == lexer.RParen && len(list) == maxArguments {
				self.nonCriticalErr(expr.Span(), fmt.Sprintf("Cannot have more than %d %s", maxArguments, what))
			}
			list = append(list, expr)

			if !self.matches(lexer.Comma) {
				break
			}
		}
	}

	if err := self.expect(closing, what); err != nil {
		return nil, err
	}

	return list, nil
}

func (self *Parser) primary() (ast.Expression, *errors.Error) {
	token := self.CurrentToken

	switch token.Kind {
	case lexer.False, lexer.True:
		self.next()
		return ast.BoolLiteralExpression{Value: token.Kind == lexer.True, Range: token.Span}, nil
	case lexer.Nil:
		self.next()
		return ast.NilLiteralExpression{Range: token.Span}, nil
	case lexer.Integer:
		self.next()
		value, err := strconv.ParseInt(token.Value, 10, 64)
		if err != nil {
			return nil, errors.NewError(token.Span, fmt.Sprintf("Invalid number literal '%s'", token.Value), errors.SyntaxError)
		}
		return ast.IntLiteralExpression{Value: value, Range: token.Span}, nil
	case lexer.Float:
		self.next()
		value, err := strconv.ParseFloat(token.Value, 64)
		if err != nil {
			return nil, errors.NewError(token.Span, fmt.Sprintf("Invalid number literal '%s'", token.Value), errors.SyntaxError)
		}
		return ast.FloatLiteralExpression{Value: value, Range: token.Span}, nil
	case lexer.String:
		self.next()
		return ast.StringLiteralExpression{Value: token.Value, Range: token.Span}, nil
	case lexer.Identifier:
		self.next()
		return ast.VariableExpression{Ident: ast.NewSpannedIdent(token.Value, token.Span)}, nil
	case lexer.This:
		self.next()
		return ast.ThisExpression{Range: token.Span}, nil
	case lexer.Super:
		self.next()
		if err := self.expect(lexer.Dot, "'super'"); err != nil {
			return nil, err
		}
		method, methodSpan, err := self.expectIdent("superclass method")
		if err != nil {
			return nil, err
		}
		return ast.SuperExpression{
			Method: ast.NewSpannedIdent(method, methodSpan),
			Range:  token.Span.Until(methodSpan),
		}, nil
	case lexer.LParen:
		self.next()
		inner, err := self.expression()
		if err != nil {
			return nil, err
		}
		if err := self.expect(lexer.RParen, "expression"); err != nil {
			return nil, err
		}
		return ast.GroupedExpression{
			Inner: inner,
			Range: token.Span.Until(self.PreviousToken.Span),
		}, nil
	case lexer.LBracket:
		self.next()
		elements, err := self.expressionList(lexer.RBracket, "array elements")
		if err != nil {
			return nil, err
		}
		return ast.ArrayExpression{
			Elements: elements,
			Range:    token.Span.Until(self.PreviousToken.Span),
		}, nil
	case lexer.Fun:
		self.next()
		return self.anonymousFunction(token)
	default:
		return nil, self.expectedExpressionErr()
	}
}

func (self *Parser) anonymousFunction(funToken lexer.Token) (ast.Expression, *errors.Error) {
	params, err := self.params("'fun'")
	if err != nil {
		return nil, err
	}

	if err := self.expect(lexer.LCurly, "anonymous function signature"); err != nil {
		return nil, err
	}

	body, err := self.block()
	if err != nil {
		return nil, err
	}

	return ast.FunctionExpression{
		Params: params,
		Body:   body,
		Range:  funToken.Span.Until(self.PreviousToken.Span),
	}, nil
}
