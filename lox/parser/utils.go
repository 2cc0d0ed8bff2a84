package parser

import (
	"fmt"

	"github.com/smarthome-go/lox/lox/errors"
	"github.com/smarthome-go/lox/lox/lexer"
)

func (self *Parser) nonCriticalErr(span errors.Span, message string) {
	self.Errors = append(self.Errors, *errors.NewError(
		span,
		message,
		errors.SyntaxError,
	))
}

func (self *Parser) found() string {
	switch self.CurrentToken.Kind {
	case lexer.EOF:
		return "end of input"
	case lexer.String:
		return fmt.Sprintf("%q", self.CurrentToken.Value)
	default:
		return fmt.Sprintf("'%s'", self.CurrentToken.Value)
	}
}

// Consumes a token of the `expected` kind or fails with an error describing what the token was expected after
func (self *Parser) expect(expected lexer.TokenKind, after string) *errors.Error {
	if self.CurrentToken.Kind != expected {
		return errors.NewError(
			self.CurrentToken.Span,
			fmt.Sprintf("Expected '%s' after %s, found %s", expected, after, self.found()),
			errors.SyntaxError,
		)
	}

	self.next()
	return nil
}

func (self *Parser) expectIdent(what string) (string, errors.Span, *errors.Error) {
	if self.CurrentToken.Kind != lexer.Identifier {
		return "", errors.Span{}, errors.NewError(
			self.CurrentToken.Span,
			fmt.Sprintf("Expected %s name, found %s", what, self.found()),
			errors.SyntaxError,
		)
	}

	self.next()
	return self.PreviousToken.Value, self.PreviousToken.Span, nil
}

func (self *Parser) expectedExpressionErr() *errors.Error {
	return errors.NewError(
		self.CurrentToken.Span,
		fmt.Sprintf("Expected expression, found %s", self.found()),
		errors.SyntaxError,
	)
}
