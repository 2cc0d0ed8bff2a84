package resolver

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/smarthome-go/lox/lox/diagnostic"
	"github.com/smarthome-go/lox/lox/errors"
	"github.com/smarthome-go/lox/lox/parser/ast"
)

type functionContext uint8

const (
	functionContextNone functionContext = iota
	functionContextFunction
	functionContextMethod
	functionContextGetter
	functionContextStaticMethod
	functionContextInitializer
)

func contextOf(kind ast.FunctionKind) functionContext {
	switch kind {
	case ast.FunctionKindFunction:
		return functionContextFunction
	case ast.FunctionKindMethod:
		return functionContextMethod
	case ast.FunctionKindGetter:
		return functionContextGetter
	case ast.FunctionKindStaticMethod:
		return functionContextStaticMethod
	case ast.FunctionKindInitializer:
		return functionContextInitializer
	default:
		panic("A new function kind was added without updating this code")
	}
}

type classContext uint8

const (
	classContextNone classContext = iota
	classContextClass
	classContextSubclass
)

//
// Resolver
//

type Resolver struct {
	table       Table
	scopes      []*scope
	diagnostics []diagnostic.Diagnostic
	function    functionContext
	class       classContext
	// Set while resolving the members of a class which are bound to an instance
	receiver bool
	// Reset on every function boundary
	loopDepth int
}

func NewResolver(table Table) Resolver {
	return Resolver{
		table:       table,
		scopes:      make([]*scope, 0),
		diagnostics: make([]diagnostic.Diagnostic, 0),
		function:    functionContextNone,
		class:       classContextNone,
		receiver:    false,
		loopDepth:   0,
	}
}

// Records the position of every local variable reference of the program in the table.
// Resolving the same program twice yields an identical table.
func (self *Resolver) Resolve(program ast.Program) []diagnostic.Diagnostic {
	self.diagnostics = make([]diagnostic.Diagnostic, 0)

	for _, statement := range program {
		self.statement(statement)
	}

	return self.diagnostics
}

//
// Resolver helper functions
//

func (self *Resolver) error(message string, notes []string, span errors.Span) {
	self.diagnostics = append(self.diagnostics, diagnostic.Diagnostic{
		Level:   diagnostic.DiagnosticLevelError,
		Message: message,
		Notes:   notes,
		Span:    span,
	})
}

func (self *Resolver) warn(message string, notes []string, span errors.Span) {
	self.diagnostics = append(self.diagnostics, diagnostic.Diagnostic{
		Level:   diagnostic.DiagnosticLevelWarning,
		Message: message,
		Notes:   notes,
		Span:    span,
	})
}

func (self *Resolver) pushScope() {
	self.scopes = append(self.scopes, newScope())
}

func (self *Resolver) popScope() {
	last := self.scopes[len(self.scopes)-1]
	self.scopes = self.scopes[:len(self.scopes)-1]

	caser := cases.Title(language.AmericanEnglish)
	for _, variable := range last.order {
		if variable.used || variable.kind == variableKindImplicit || strings.HasPrefix(variable.name, "_") {
			continue
		}
		self.warn(
			fmt.Sprintf("%s '%s' is unused", caser.String(variable.kind.String()), variable.name),
			[]string{fmt.Sprintf("If this is intentional, change the name to '_%s' to hide this message", variable.name)},
			variable.span,
		)
	}
}

// Global declarations are not tracked
func (self *Resolver) declare(name string, kind variableKind, span errors.Span) {
	if len(self.scopes) == 0 {
		return
	}

	current := self.scopes[len(self.scopes)-1]
	if prev, exists := current.get(name); exists {
		self.error(
			fmt.Sprintf("Variable '%s' is already declared in this scope", name),
			[]string{fmt.Sprintf("'%s' was previously declared at %s", name, prev.span)},
			span,
		)
		return
	}

	current.add(name, kind, span)
}

func (self *Resolver) define(name string) {
	if len(self.scopes) == 0 {
		return
	}

	if variable, found := self.scopes[len(self.scopes)-1].get(name); found {
		variable.defined = true
	}
}

// Adds an implicit variable (`this` or `super`) to the innermost scope
func (self *Resolver) defineImplicit(name string, span errors.Span) {
	variable := self.scopes[len(self.scopes)-1].add(name, variableKindImplicit, span)
	variable.defined = true
}

// Searches the scope stack from the innermost scope outwards.
// If the name is not found, it is assumed to be a global and no entry is recorded.
func (self *Resolver) resolveLocal(name string, span errors.Span) {
	for idx := len(self.scopes) - 1; idx >= 0; idx-- {
		if variable, found := self.scopes[idx].get(name); found {
			variable.used = true
			self.table.set(name, span, Local{
				Depth: len(self.scopes) - 1 - idx,
				Index: variable.index,
			})
			return
		}
	}
}

//
// Statements
//

func (self *Resolver) statement(node ast.Statement) {
	switch node.Kind() {
	case ast.ExpressionStatementKind:
		self.expression(node.(ast.ExpressionStatement).Expression)
	case ast.PrintStatementKind:
		self.expression(node.(ast.PrintStatement).Expression)
	case ast.VarStatementKind:
		self.varStatement(node.(ast.VarStatement))
	case ast.BlockStatementKind:
		self.pushScope()
		for _, statement := range node.(ast.BlockStatement).Statements {
			self.statement(statement)
		}
		self.popScope()
	case ast.IfStatementKind:
		ifStmt := node.(ast.IfStatement)
		self.expression(ifStmt.Condition)
		self.statement(ifStmt.Then)
		if ifStmt.Else != nil {
			self.statement(ifStmt.Else)
		}
	case ast.LoopStatementKind:
		loop := node.(ast.LoopStatement)
		self.expression(loop.Condition)
		self.loopDepth++
		self.statement(loop.Body)
		self.loopDepth--
		// the increment runs outside of the body's frame
		if loop.Increment != nil {
			self.expression(loop.Increment)
		}
	case ast.FunctionStatementKind:
		function := node.(ast.FunctionStatement)
		// defined eagerly so that the function may refer to itself
		self.declare(function.Ident.Ident(), variableKindFunction, function.Ident.Span())
		self.define(function.Ident.Ident())
		self.functionBody(function.Params, function.Body, function.FunctionKind)
	case ast.ClassStatementKind:
		self.classStatement(node.(ast.ClassStatement))
	case ast.ReturnStatementKind:
		self.returnStatement(node.(ast.ReturnStatement))
	case ast.BreakStatementKind:
		if self.loopDepth == 0 {
			self.error("Cannot use 'break' outside of a loop", nil, node.Span())
		}
	case ast.ContinueStatementKind:
		if self.loopDepth == 0 {
			self.error("Cannot use 'continue' outside of a loop", nil, node.Span())
		}
	default:
		panic("A new statement kind was added without updating this code")
	}
}

func (self *Resolver) varStatement(node ast.VarStatement) {
	self.declare(node.Ident.Ident(), variableKindVariable, node.Ident.Span())
	if node.Initializer != nil {
		self.expression(node.Initializer)
	}
	self.define(node.Ident.Ident())
}

func (self *Resolver) returnStatement(node ast.ReturnStatement) {
	if self.function == functionContextNone {
		self.error("Cannot return from top-level code", nil, node.Range)
	}

	if node.Value == nil {
		return
	}

	if self.function == functionContextInitializer {
		self.warn(
			"The return value of an initializer is discarded",
			[]string{"Initializers always return the receiver"},
			node.Value.Span(),
		)
	}
	self.expression(node.Value)
}

func (self *Resolver) classStatement(node ast.ClassStatement) {
	className := node.Ident.Ident()

	self.declare(className, variableKindClass, node.Ident.Span())
	self.define(className)

	enclosingClass := self.class
	self.class = classContextClass

	if node.Superclass != nil {
		if node.Superclass.Ident.Ident() == className {
			self.error(
				fmt.Sprintf("Class '%s' cannot inherit from itself", className),
				nil,
				node.Superclass.Span(),
			)
		}

		self.class = classContextSubclass
		self.expression(*node.Superclass)

		self.pushScope()
		self.defineImplicit("super", node.Superclass.Span())
	}

	enclosingReceiver := self.receiver
	for _, method := range node.Methods {
		self.receiver = method.FunctionKind.IsBound()
		if !self.receiver {
			self.functionBody(method.Params, method.Body, method.FunctionKind)
			continue
		}

		self.pushScope()
		self.defineImplicit("this", method.Ident.Span())
		self.functionBody(method.Params, method.Body, method.FunctionKind)
		self.popScope()
	}
	self.receiver = enclosingReceiver

	if node.Superclass != nil {
		self.popScope()
	}

	self.class = enclosingClass

	// the class value is assigned to its name once all methods are created.
	// This assignment does not count as a use of the class.
	var declared *variable
	if len(self.scopes) > 0 {
		declared, _ = self.scopes[len(self.scopes)-1].get(className)
	}
	wasUsed := declared != nil && declared.used
	self.resolveLocal(className, node.Ident.Span())
	if declared != nil {
		declared.used = wasUsed
	}
}

// Parameters and body statements share a single scope, mirroring the call frame
func (self *Resolver) functionBody(params []ast.SpannedIdent, body []ast.Statement, kind ast.FunctionKind) {
	enclosingFunction := self.function
	enclosingLoopDepth := self.loopDepth
	self.function = contextOf(kind)
	self.loopDepth = 0

	self.pushScope()
	for _, param := range params {
		self.declare(param.Ident(), variableKindParameter, param.Span())
		self.define(param.Ident())
	}
	for _, statement := range body {
		self.statement(statement)
	}
	self.popScope()

	self.function = enclosingFunction
	self.loopDepth = enclosingLoopDepth
}

//
// Expressions
//

func (self *Resolver) expression(node ast.Expression) {
	switch node.Kind() {
	case ast.IntLiteralExpressionKind,
		ast.FloatLiteralExpressionKind,
		ast.BoolLiteralExpressionKind,
		ast.StringLiteralExpressionKind,
		ast.NilLiteralExpressionKind:
		// literals do not reference variables
	case ast.FunctionExpressionKind:
		function := node.(ast.FunctionExpression)
		self.functionBody(function.Params, function.Body, ast.FunctionKindFunction)
	case ast.UnaryExpressionKind:
		self.expression(node.(ast.UnaryExpression).Operand)
	case ast.BinaryExpressionKind:
		binary := node.(ast.BinaryExpression)
		self.expression(binary.Lhs)
		self.expression(binary.Rhs)
	case ast.LogicalExpressionKind:
		logical := node.(ast.LogicalExpression)
		self.expression(logical.Lhs)
		self.expression(logical.Rhs)
	case ast.GroupedExpressionKind:
		self.expression(node.(ast.GroupedExpression).Inner)
	case ast.CommaExpressionKind:
		comma := node.(ast.CommaExpression)
		self.expression(comma.Lhs)
		self.expression(comma.Rhs)
	case ast.ConditionalExpressionKind:
		conditional := node.(ast.ConditionalExpression)
		self.expression(conditional.Condition)
		self.expression(conditional.Then)
		self.expression(conditional.Else)
	case ast.VariableExpressionKind:
		self.variableExpression(node.(ast.VariableExpression))
	case ast.AssignExpressionKind:
		assign := node.(ast.AssignExpression)
		self.expression(assign.Value)
		self.resolveLocal(assign.Ident.Ident(), assign.Ident.Span())
	case ast.CallExpressionKind:
		call := node.(ast.CallExpression)
		self.expression(call.Callee)
		for _, arg := range call.Arguments {
			self.expression(arg)
		}
	case ast.GetExpressionKind:
		self.expression(node.(ast.GetExpression).Object)
	case ast.SetExpressionKind:
		set := node.(ast.SetExpression)
		self.expression(set.Value)
		self.expression(set.Object)
	case ast.ArrayExpressionKind:
		for _, element := range node.(ast.ArrayExpression).Elements {
			self.expression(element)
		}
	case ast.SubscriptGetExpressionKind:
		subscript := node.(ast.SubscriptGetExpression)
		self.expression(subscript.Object)
		self.expression(subscript.Index)
	case ast.SubscriptSetExpressionKind:
		subscript := node.(ast.SubscriptSetExpression)
		self.expression(subscript.Object)
		self.expression(subscript.Index)
		self.expression(subscript.Value)
	case ast.ThisExpressionKind:
		self.thisExpression(node.(ast.ThisExpression))
	case ast.SuperExpressionKind:
		self.superExpression(node.(ast.SuperExpression))
	default:
		panic("A new expression kind was added without updating this code")
	}
}

func (self *Resolver) variableExpression(node ast.VariableExpression) {
	name := node.Ident.Ident()

	if len(self.scopes) > 0 {
		if variable, found := self.scopes[len(self.scopes)-1].get(name); found && !variable.defined {
			self.error(
				fmt.Sprintf("Cannot read local variable '%s' in its own initializer", name),
				nil,
				node.Span(),
			)
		}
	}

	self.resolveLocal(name, node.Span())
}

func (self *Resolver) thisExpression(node ast.ThisExpression) {
	if self.class == classContextNone {
		self.error("Cannot use 'this' outside of a class", nil, node.Range)
		return
	}
	if !self.receiver {
		self.error("Cannot use 'this' inside a static method", nil, node.Range)
		return
	}

	self.resolveLocal("this", node.Range)
}

func (self *Resolver) superExpression(node ast.SuperExpression) {
	switch {
	case self.class == classContextNone:
		self.error("Cannot use 'super' outside of a class", nil, node.Range)
		return
	case self.class != classContextSubclass:
		self.error("Cannot use 'super' in a class without a superclass", nil, node.Range)
		return
	case !self.receiver:
		self.error("Cannot use 'super' inside a static method", nil, node.Range)
		return
	}

	self.resolveLocal("super", node.Range)
	// the receiver lives in the frame directly below the `super` frame
	self.resolveLocal("this", node.Range)
}
