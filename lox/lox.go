package lox

import (
	"fmt"

	"github.com/smarthome-go/lox/lox/diagnostic"
	"github.com/smarthome-go/lox/lox/errors"
	"github.com/smarthome-go/lox/lox/interpreter"
	"github.com/smarthome-go/lox/lox/interpreter/value"
	"github.com/smarthome-go/lox/lox/lexer"
	"github.com/smarthome-go/lox/lox/parser"
	"github.com/smarthome-go/lox/lox/parser/ast"
	"github.com/smarthome-go/lox/lox/resolver"
)

// The outcome of running one piece of source code
type Result struct {
	// Syntax errors, resolver errors and warnings, and the runtime error (if any)
	Diagnostics []diagnostic.Diagnostic
	// Is nil if the program completed without a runtime error
	RuntimeError *value.RuntimeError
	// Value of a trailing expression, only produced by `Session.RunLine`
	Value value.Value
	// The filename which the spans of the program refer to
	Filename string
}

// Reports whether the program was executed and terminated without an error
func (self Result) Success() bool {
	return self.RuntimeError == nil && !diagnostic.ContainsErrors(self.Diagnostics)
}

// Parses the source code, the returned diagnostics only contain syntax errors
func Parse(filename string, source string, allowTrailingExpression bool) (program ast.Program, hasTrailingExpression bool, diagnostics []diagnostic.Diagnostic) {
	p := parser.NewParser(lexer.NewLexer(source, filename), filename)

	var syntaxErrors []errors.Error
	if allowTrailingExpression {
		program, syntaxErrors = p.ParseLine()
	} else {
		program, syntaxErrors = p.Parse()
	}

	diagnostics = make([]diagnostic.Diagnostic, 0, len(syntaxErrors))
	for _, err := range syntaxErrors {
		diagnostics = append(diagnostics, diagnostic.FromError(err))
	}

	return program, p.HasTrailingExpression, diagnostics
}

// Parses and resolves the source code without executing it
func Check(filename string, source string) []diagnostic.Diagnostic {
	program, _, diagnostics := Parse(filename, source, false)
	if len(diagnostics) > 0 {
		return diagnostics
	}

	res := resolver.NewResolver(resolver.NewTable())
	return res.Resolve(program)
}

// Executes the source code using a new interpreter
func Run(executor value.Executor, filename string, source string) Result {
	return NewSession(executor).Run(filename, source)
}

//
// Session
//

// Keeps one interpreter alive across several programs, so that globals persist
type Session struct {
	interpreter interpreter.Interpreter
	lineCount   uint
	// How often each filename was passed to `Run`
	runCount map[string]uint
}

func NewSession(executor value.Executor) *Session {
	return &Session{
		interpreter: interpreter.NewInterpreter(executor),
		lineCount:   0,
		runCount:    make(map[string]uint),
	}
}

func (self *Session) SetCallStackLimit(limit uint) {
	self.interpreter.SetCallStackLimit(limit)
}

func (self *Session) Globals() *interpreter.Globals {
	return self.interpreter.Globals()
}

// Executes a complete program. If the session already ran a program under the same filename,
// `#N` is appended to it, so that resolved locals of earlier programs are never shadowed.
func (self *Session) Run(filename string, source string) Result {
	self.runCount[filename]++
	if count := self.runCount[filename]; count > 1 {
		filename = fmt.Sprintf("%s#%d", filename, count)
	}

	program, _, diagnostics := Parse(filename, source, false)
	result := self.execute(program, false, diagnostics)
	result.Filename = filename
	return result
}

// Executes a single REPL line. The line may end with an expression which lacks a semicolon;
// its value is returned in the result.
func (self *Session) RunLine(source string) Result {
	self.lineCount++
	// every line gets its own filename so that source locations of different lines never collide
	filename := fmt.Sprintf("<repl:%d>", self.lineCount)

	program, hasTrailingExpression, diagnostics := Parse(filename, source, true)
	result := self.execute(program, hasTrailingExpression, diagnostics)
	result.Filename = filename
	return result
}

func (self *Session) execute(program ast.Program, hasTrailingExpression bool, diagnostics []diagnostic.Diagnostic) Result {
	if len(diagnostics) > 0 {
		return Result{Diagnostics: diagnostics}
	}

	res := resolver.NewResolver(self.interpreter.Locals())
	diagnostics = append(diagnostics, res.Resolve(program)...)

	if diagnostic.ContainsErrors(diagnostics) {
		return Result{Diagnostics: diagnostics}
	}

	var trailing ast.Expression
	if hasTrailingExpression && len(program) > 0 {
		trailing = program[len(program)-1].(ast.ExpressionStatement).Expression
		program = program[:len(program)-1]
	}

	if err := self.interpreter.Interpret(program); err != nil {
		return Result{
			Diagnostics:  append(diagnostics, self.runtimeDiagnostic(err)),
			RuntimeError: err,
		}
	}

	if trailing == nil {
		return Result{Diagnostics: diagnostics}
	}

	val, err := self.interpreter.Evaluate(trailing)
	if err != nil {
		return Result{
			Diagnostics:  append(diagnostics, self.runtimeDiagnostic(err)),
			RuntimeError: err,
		}
	}

	return Result{
		Diagnostics: diagnostics,
		Value:       val,
	}
}

func (self *Session) runtimeDiagnostic(err *value.RuntimeError) diagnostic.Diagnostic {
	notes := make([]string, 0)

	if err.ErrKind == value.UndefinedVariableErrorKind {
		if suggestion, found := self.interpreter.Globals().Suggest(err.Context[0]); found {
			notes = append(notes, fmt.Sprintf("Did you mean '%s'?", suggestion))
		}
	}

	return diagnostic.Diagnostic{
		Level:   diagnostic.DiagnosticLevelError,
		Message: fmt.Sprintf("%s: %s", err.ErrKind, err.Message()),
		Notes:   notes,
		Span:    err.Span,
	}
}
