package parser

import (
	"fmt"

	"github.com/smarthome-go/lox/lox/errors"
	"github.com/smarthome-go/lox/lox/lexer"
	"github.com/smarthome-go/lox/lox/parser/ast"
)

func (self *Parser) statement() (ast.Statement, bool, *errors.Error) {
	var stmt ast.Statement
	var err *errors.Error

	switch self.CurrentToken.Kind {
	case lexer.If:
		stmt, err = self.ifStatement()
	case lexer.Print:
		stmt, err = self.printStatement()
	case lexer.While:
		stmt, err = self.whileStatement()
	case lexer.For:
		stmt, err = self.forStatement()
	case lexer.Return:
		stmt, err = self.returnStatement()
	case lexer.Break:
		stmt, err = self.breakStatement()
	case lexer.Continue:
		stmt, err = self.continueStatement()
	case lexer.LCurly:
		stmt, err = self.blockStatement()
	default:
		return self.expressionStatement()
	}

	return stmt, false, err
}

// Parses a statement which is not allowed to be a trailing expression
func (self *Parser) innerStatement() (ast.Statement, *errors.Error) {
	self.blockDepth++
	defer func() { self.blockDepth-- }()

	stmt, _, err := self.statement()
	return stmt, err
}

//
// Var statement
//

func (self *Parser) varDeclaration() (ast.Statement, *errors.Error) {
	startLoc := self.CurrentToken.Span.Start

	// skip the `var`
	self.next()

	name, nameSpan, err := self.expectIdent("variable")
	if err != nil {
		return nil, err
	}

	var initializer ast.Expression
	if self.matches(lexer.Assign) {
		initializer, err = self.expression()
		if err != nil {
			return nil, err
		}
	}

	if err := self.expect(lexer.Semicolon, "variable declaration"); err != nil {
		return nil, err
	}

	return ast.VarStatement{
		Ident:       ast.NewSpannedIdent(name, nameSpan),
		Initializer: initializer,
		Range:       startLoc.Until(self.PreviousToken.Span.End, self.Filename),
	}, nil
}

//
// Function statement
//

// Parses a function or method after its leading keyword has been consumed
func (self *Parser) function(kind ast.FunctionKind) (ast.Statement, *errors.Error) {
	name, nameSpan, err := self.expectIdent(kind.String())
	if err != nil {
		return nil, err
	}

	if kind == ast.FunctionKindMethod && name == "init" {
		kind = ast.FunctionKindInitializer
	}

	params, err := self.params(fmt.Sprintf("%s name", kind))
	if err != nil {
		return nil, err
	}

	if err := self.expect(lexer.LCurly, fmt.Sprintf("%s signature", kind)); err != nil {
		return nil, err
	}

	body, err := self.block()
	if err != nil {
		return nil, err
	}

	return ast.FunctionStatement{
		Ident:        ast.NewSpannedIdent(name, nameSpan),
		FunctionKind: kind,
		Params:       params,
		Body:         body,
		Range:        nameSpan.Start.Until(self.PreviousToken.Span.End, self.Filename),
	}, nil
}

// Getters have no parameter list: `name { ... }`
func (self *Parser) getter() (ast.FunctionStatement, *errors.Error) {
	name, nameSpan, err := self.expectIdent("getter")
	if err != nil {
		return ast.FunctionStatement{}, err
	}

	// skip the `{`
	self.next()

	body, err := self.block()
	if err != nil {
		return ast.FunctionStatement{}, err
	}

	return ast.FunctionStatement{
		Ident:        ast.NewSpannedIdent(name, nameSpan),
		FunctionKind: ast.FunctionKindGetter,
		Params:       make([]ast.SpannedIdent, 0),
		Body:         body,
		Range:        nameSpan.Start.Until(self.PreviousToken.Span.End, self.Filename),
	}, nil
}

func (self *Parser) params(after string) ([]ast.SpannedIdent, *errors.Error) {
	if err := self.expect(lexer.LParen, after); err != nil {
		return nil, err
	}

	params := make([]ast.SpannedIdent, 0)

	if self.CurrentToken.Kind != lexer.RParen {
		for {
			name, span, err := self.expectIdent("parameter")
			if err != nil {
				return nil, err
			}
			if len(params) == maxArguments {
				self.nonCriticalErr(span, fmt.Sprintf("Cannot have more than %d parameters", maxArguments))
			}
			params = append(params, ast.NewSpannedIdent(name, span))

			if !self.matches(lexer.Comma) {
				break
			}
		}
	}

	if err := self.expect(lexer.RParen, "parameters"); err != nil {
		return nil, err
	}

	return params, nil
}

//
// Class statement
//

func (self *Parser) classDeclaration() (ast.Statement, *errors.Error) {
	startLoc := self.CurrentToken.Span.Start

	// skip the `class`
	self.next()

	name, nameSpan, err := self.expectIdent("class")
	if err != nil {
		return nil, err
	}

	var superclass *ast.VariableExpression
	if self.matches(lexer.Less) {
		superName, superSpan, err := self.expectIdent("superclass")
		if err != nil {
			return nil, err
		}
		superclass = &ast.VariableExpression{Ident: ast.NewSpannedIdent(superName, superSpan)}
	}

	if err := self.expect(lexer.LCurly, "class name"); err != nil {
		return nil, err
	}

	methods := make([]ast.FunctionStatement, 0)
	for self.CurrentToken.Kind != lexer.RCurly && self.CurrentToken.Kind != lexer.EOF {
		var method ast.Statement
		var err *errors.Error

		switch {
		case self.matches(lexer.Class):
			method, err = self.function(ast.FunctionKindStaticMethod)
		case self.CurrentToken.Kind == lexer.Identifier && self.peekKind() == lexer.LCurly:
			method, err = self.getter()
		default:
			method, err = self.function(ast.FunctionKindMethod)
		}

		if err != nil {
			return nil, err
		}
		methods = append(methods, method.(ast.FunctionStatement))
	}

	if err := self.expect(lexer.RCurly, "class body"); err != nil {
		return nil, err
	}

	return ast.ClassStatement{
		Ident:      ast.NewSpannedIdent(name, nameSpan),
		Superclass: superclass,
		Methods:    methods,
		Range:      startLoc.Until(self.PreviousToken.Span.End, self.Filename),
	}, nil
}

//
// If statement
//

func (self *Parser) ifStatement() (ast.Statement, *errors.Error) {
	startLoc := self.CurrentToken.Span.Start

	// skip the `if`
	self.next()

	if err := self.expect(lexer.LParen, "'if'"); err != nil {
		return nil, err
	}

	condition, err := self.expression()
	if err != nil {
		return nil, err
	}

	if err := self.expect(lexer.RParen, "if condition"); err != nil {
		return nil, err
	}

	thenBranch, err := self.innerStatement()
	if err != nil {
		return nil, err
	}

	var elseBranch ast.Statement
	if self.matches(lexer.Else) {
		elseBranch, err = self.innerStatement()
		if err != nil {
			return nil, err
		}
	}

	return ast.IfStatement{
		Condition: condition,
		Then:      thenBranch,
		Else:      elseBranch,
		Range:     startLoc.Until(self.PreviousToken.Span.End, self.Filename),
	}, nil
}

//
// Print statement
//

func (self *Parser) printStatement() (ast.Statement, *errors.Error) {
	startLoc := self.CurrentToken.Span.Start

	// skip the `print`
	self.next()

	expr, err := self.expression()
	if err != nil {
		return nil, err
	}

	if err := self.expect(lexer.Semicolon, "value"); err != nil {
		return nil, err
	}

	return ast.PrintStatement{
		Expression: expr,
		Range:      startLoc.Until(self.PreviousToken.Span.End, self.Filename),
	}, nil
}

//
// While statement
//

func (self *Parser) whileStatement() (ast.Statement, *errors.Error) {
	startLoc := self.CurrentToken.Span.Start

	// skip the `while`
	self.next()

	if err := self.expect(lexer.LParen, "'while'"); err != nil {
		return nil, err
	}

	condition, err := self.expression()
	if err != nil {
		return nil, err
	}

	if err := self.expect(lexer.RParen, "while condition"); err != nil {
		return nil, err
	}

	body, err := self.innerStatement()
	if err != nil {
		return nil, err
	}

	return ast.LoopStatement{
		Condition: condition,
		Increment: nil,
		Body:      body,
		Range:     startLoc.Until(self.PreviousToken.Span.End, self.Filename),
	}, nil
}

//
// For statement
// `for (init; cond; inc) body` becomes `{ init; loop(cond, inc) body }`
//

func (self *Parser) forStatement() (ast.Statement, *errors.Error) {
	startLoc := self.CurrentToken.Span.Start

	// skip the `for`
	self.next()

	if err := self.expect(lexer.LParen, "'for'"); err != nil {
		return nil, err
	}

	var initializer ast.Statement
	var err *errors.Error

	switch self.CurrentToken.Kind {
	case lexer.Semicolon:
		self.next()
	case lexer.Var:
		initializer, err = self.varDeclaration()
	default:
		initializer, err = self.terminatedExpressionStatement()
	}
	if err != nil {
		return nil, err
	}

	var condition ast.Expression
	if self.CurrentToken.Kind == lexer.Semicolon {
		condition = ast.BoolLiteralExpression{Value: true, Range: self.CurrentToken.Span}
		self.next()
	} else {
		condition, err = self.expression()
		if err != nil {
			return nil, err
		}
		if err := self.expect(lexer.Semicolon, "loop condition"); err != nil {
			return nil, err
		}
	}

	var increment ast.Expression
	if self.CurrentToken.Kind != lexer.RParen {
		increment, err = self.expression()
		if err != nil {
			return nil, err
		}
	}

	if err := self.expect(lexer.RParen, "for clauses"); err != nil {
		return nil, err
	}

	body, err := self.innerStatement()
	if err != nil {
		return nil, err
	}

	span := startLoc.Until(self.PreviousToken.Span.End, self.Filename)
	loop := ast.LoopStatement{
		Condition: condition,
		Increment: increment,
		Body:      body,
		Range:     span,
	}

	if initializer == nil {
		return loop, nil
	}

	return ast.BlockStatement{
		Statements: []ast.Statement{initializer, loop},
		Range:      span,
	}, nil
}

//
// Return statement
//

func (self *Parser) returnStatement() (ast.Statement, *errors.Error) {
	startLoc := self.CurrentToken.Span.Start

	// skip the `return`
	self.next()

	var value ast.Expression
	if self.CurrentToken.Kind != lexer.Semicolon {
		expr, err := self.expression()
		if err != nil {
			return nil, err
		}
		value = expr
	}

	if err := self.expect(lexer.Semicolon, "return value"); err != nil {
		return nil, err
	}

	return ast.ReturnStatement{
		Value: value,
		Range: startLoc.Until(self.PreviousToken.Span.End, self.Filename),
	}, nil
}

//
// Break and continue statements
//

func (self *Parser) breakStatement() (ast.Statement, *errors.Error) {
	startLoc := self.CurrentToken.Span.Start

	// skip the `break`
	self.next()

	if err := self.expect(lexer.Semicolon, "'break'"); err != nil {
		return nil, err
	}

	return ast.BreakStatement{
		Range: startLoc.Until(self.PreviousToken.Span.End, self.Filename),
	}, nil
}

func (self *Parser) continueStatement() (ast.Statement, *errors.Error) {
	startLoc := self.CurrentToken.Span.Start

	// skip the `continue`
	self.next()

	if err := self.expect(lexer.Semicolon, "'continue'"); err != nil {
		return nil, err
	}

	return ast.ContinueStatement{
		Range: startLoc.Until(self.PreviousToken.Span.End, self.Filename),
	}, nil
}

//
// Block statement
//

func (self *Parser) blockStatement() (ast.Statement, *errors.Error) {
	startLoc := self.CurrentToken.Span.Start

	// skip the `{`
	self.next()

	statements, err := self.block()
	if err != nil {
		return nil, err
	}

	return ast.BlockStatement{
		Statements: statements,
		Range:      startLoc.Until(self.PreviousToken.Span.End, self.Filename),
	}, nil
}

// Parses the statements of a block after its opening brace has been consumed
func (self *Parser) block() ([]ast.Statement, *errors.Error) {
	self.blockDepth++
	defer func() { self.blockDepth-- }()

	statements := make([]ast.Statement, 0)

	for self.CurrentToken.Kind != lexer.RCurly && self.CurrentToken.Kind != lexer.EOF {
		stmt, _ := self.declaration()
		if stmt != nil {
			statements = append(statements, stmt)
		}
	}

	if err := self.expect(lexer.RCurly, "block"); err != nil {
		return nil, err
	}

	return statements, nil
}

//
// Expression statement
//

func (self *Parser) expressionStatement() (ast.Statement, bool, *errors.Error) {
	expr, err := self.expression()
	if err != nil {
		return nil, false, err
	}

	if self.AllowExpression && self.blockDepth == 0 && self.CurrentToken.Kind == lexer.EOF {
		return ast.ExpressionStatement{
			Expression: expr,
			Range:      expr.Span(),
		}, true, nil
	}

	if err := self.expect(lexer.Semicolon, "expression"); err != nil {
		return nil, false, err
	}

	return ast.ExpressionStatement{
		Expression: expr,
		Range:      expr.Span().Start.Until(self.PreviousToken.Span.End, self.Filename),
	}, false, nil
}

func (self *Parser) terminatedExpressionStatement() (ast.Statement, *errors.Error) {
	expr, err := self.expression()
	if err != nil {
		return nil, err
	}

	if err := self.expect(lexer.Semicolon, "expression"); err != nil {
		return nil, err
	}

	return ast.ExpressionStatement{
		Expression: expr,
		Range:      expr.Span().Start.Until(self.PreviousToken.Span.End, self.Filename),
	}, nil
}
