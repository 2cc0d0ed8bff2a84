package parser

import (
	"github.com/smarthome-go/lox/lox/errors"
	"github.com/smarthome-go/lox/lox/lexer"
	"github.com/smarthome-go/lox/lox/parser/ast"
)

const maxArguments = 255

type Parser struct {
	tokens        []lexer.Token
	current       int
	Errors        []errors.Error
	PreviousToken lexer.Token
	CurrentToken  lexer.Token
	Filename      string
	// If set, the last statement of the program may be an expression without a trailing semicolon
	AllowExpression bool
	// Set if the program ended with such an expression; it is the last statement of the program
	HasTrailingExpression bool
	blockDepth            int
}

func NewParser(lex lexer.Lexer, filename string) Parser {
	tokens, lexErrors := lex.Scan()

	return Parser{
		tokens:        tokens,
		current:       0,
		Errors:        lexErrors,
		PreviousToken: lexer.UnknownToken(errors.Location{}),
		CurrentToken:  tokens[0],
		Filename:      filename,
	}
}

func (self *Parser) next() {
	if self.current < len(self.tokens)-1 {
		self.current++
	}
	self.PreviousToken = self.CurrentToken
	self.CurrentToken = self.tokens[self.current]
}

func (self *Parser) peekKind() lexer.TokenKind {
	if self.current+1 >= len(self.tokens) {
		return lexer.EOF
	}
	return self.tokens[self.current+1].Kind
}

// Consumes the current token if it is one of `kinds`
func (self *Parser) matches(kinds ...lexer.TokenKind) bool {
	for _, kind := range kinds {
		if self.CurrentToken.Kind == kind {
			self.next()
			return true
		}
	}
	return false
}

// Parses the whole token stream. Errors do not stop the parser: after each error, it synchronizes
// to the next statement boundary and continues so that all errors of a program are reported at once.
func (self *Parser) Parse() (ast.Program, []errors.Error) {
	program := make(ast.Program, 0)

	for self.CurrentToken.Kind != lexer.EOF {
		stmt, isExpression := self.declaration()
		if stmt != nil {
			program = append(program, stmt)
		}
		if isExpression {
			self.HasTrailingExpression = true
			break
		}
	}

	return program, self.Errors
}

// Parses a program which may end with a single unterminated expression
func (self *Parser) ParseLine() (ast.Program, []errors.Error) {
	self.AllowExpression = true
	return self.Parse()
}

func (self *Parser) declaration() (stmt ast.Statement, isTrailingExpression bool) {
	var err *errors.Error

	switch {
	case self.CurrentToken.Kind == lexer.Var:
		stmt, err = self.varDeclaration()
	case self.CurrentToken.Kind == lexer.Fun && self.peekKind() == lexer.Identifier:
		self.next()
		stmt, err = self.function(ast.FunctionKindFunction)
	case self.CurrentToken.Kind == lexer.Class:
		stmt, err = self.classDeclaration()
	default:
		stmt, isTrailingExpression, err = self.statement()
	}

	if err != nil {
		self.Errors = append(self.Errors, *err)
		self.synchronize()
		return nil, false
	}

	return stmt, isTrailingExpression
}

// Skips tokens until a probable statement boundary is reached
func (self *Parser) synchronize() {
	self.next()

	for self.CurrentToken.Kind != lexer.EOF {
		if self.PreviousToken.Kind == lexer.Semicolon {
			return
		}

		switch self.CurrentToken.Kind {
		case lexer.Class, lexer.Fun, lexer.Var, lexer.For, lexer.If, lexer.While, lexer.Print, lexer.Return:
			return
		}

		self.next()
	}
}
