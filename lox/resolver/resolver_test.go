package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smarthome-go/lox/lox/diagnostic"
	"github.com/smarthome-go/lox/lox/errors"
	"github.com/smarthome-go/lox/lox/lexer"
	"github.com/smarthome-go/lox/lox/parser"
	"github.com/smarthome-go/lox/lox/parser/ast"
)

func parse(t *testing.T, program string) ast.Program {
	t.Helper()
	p := parser.NewParser(lexer.NewLexer(program, "test"), "test")
	tree, errs := p.Parse()
	require.Empty(t, errs)
	return tree
}

func resolve(t *testing.T, program string) (Table, []diagnostic.Diagnostic) {
	t.Helper()
	table := NewTable()
	res := NewResolver(table)
	return table, res.Resolve(parse(t, program))
}

// Returns the positions recorded for every occurrence of `name`
func localsOf(table Table, name string) []Local {
	locals := make([]Local, 0)
	for key, local := range table {
		if key.Name == name {
			locals = append(locals, local)
		}
	}
	return locals
}

func filter(diagnostics []diagnostic.Diagnostic, level diagnostic.DiagnosticLevel) []string {
	messages := make([]string, 0)
	for _, item := range diagnostics {
		if item.Level == level {
			messages = append(messages, item.Message)
		}
	}
	return messages
}

func TestNestedBlocks(t *testing.T) {
	table, diagnostics := resolve(t, `
{
    var a = 1;
    {
        var b = 2;
        var c = 3;
        print a + b + c;
    }
}`)
	require.Empty(t, diagnostics)

	assert.Equal(t, []Local{{Depth: 1, Index: 0}}, localsOf(table, "a"))
	assert.Equal(t, []Local{{Depth: 0, Index: 0}}, localsOf(table, "b"))
	assert.Equal(t, []Local{{Depth: 0, Index: 1}}, localsOf(table, "c"))

	// `a` in the print statement starts at line 7, column 15
	span := errors.Span{Start: errors.Location{Line: 7, Column: 15}, Filename: "test"}
	local, found := table.Lookup("a", span)
	require.True(t, found)
	assert.Equal(t, Local{Depth: 1, Index: 0}, local)

	_, found = table.Lookup("b", span)
	assert.False(t, found, "lookups are keyed by name and position")
}

func TestGlobalsAreNotRecorded(t *testing.T) {
	table, diagnostics := resolve(t, "var a = 1; fun f() { return a; } print f();")
	require.Empty(t, diagnostics)
	assert.Empty(t, table)
}

func TestFunctionScope(t *testing.T) {
	table, diagnostics := resolve(t, "fun f(x, y) { var z = x; return y + z; }")
	require.Empty(t, diagnostics)

	// parameters and body locals share one frame
	assert.Equal(t, []Local{{Depth: 0, Index: 0}}, localsOf(table, "x"))
	assert.Equal(t, []Local{{Depth: 0, Index: 1}}, localsOf(table, "y"))
	assert.Equal(t, []Local{{Depth: 0, Index: 2}}, localsOf(table, "z"))
}

func TestClosures(t *testing.T) {
	table, diagnostics := resolve(t, `
fun makeCounter() {
    var count = 0;
    fun increment() {
        count = count + 1;
        return count;
    }
    return increment;
}`)
	require.Empty(t, diagnostics)

	counts := localsOf(table, "count")
	assert.Len(t, counts, 3)
	for _, local := range counts {
		assert.Equal(t, Local{Depth: 1, Index: 0}, local)
	}

	assert.Equal(t, []Local{{Depth: 0, Index: 1}}, localsOf(table, "increment"))
}

func TestLoopIncrementScope(t *testing.T) {
	table, diagnostics := resolve(t, "{ for (var i = 0; i < 3; i = i + 1) { var j = i; print j; } }")
	require.Empty(t, diagnostics)

	// the condition and the increment see `i` in the enclosing frame, the body one level further out
	assert.ElementsMatch(t, []Local{
		{Depth: 0, Index: 0},
		{Depth: 1, Index: 0},
		{Depth: 0, Index: 0},
		{Depth: 0, Index: 0},
	}, localsOf(table, "i"))
	assert.Equal(t, []Local{{Depth: 0, Index: 0}}, localsOf(table, "j"))
}

func TestThisAndSuper(t *testing.T) {
	table, diagnostics := resolve(t, `
class A {
    m() { return this; }
}
class B < A {
    m() { return super.m(); }
}`)
	require.Empty(t, diagnostics)

	// function frame -> this frame -> super frame
	assert.ElementsMatch(t, []Local{{Depth: 1, Index: 0}, {Depth: 1, Index: 0}}, localsOf(table, "this"))
	assert.Equal(t, []Local{{Depth: 2, Index: 0}}, localsOf(table, "super"))
	assert.Empty(t, localsOf(table, "A"), "classes declared at the top level are globals")
}

func TestLocalClass(t *testing.T) {
	table, diagnostics := resolve(t, `
{
    class A {
        create() { return A(); }
    }
    print A;
}`)
	require.Empty(t, diagnostics)

	assert.ElementsMatch(t, []Local{
		// inside the method: function frame -> this frame -> block frame
		{Depth: 2, Index: 0},
		// the assignment of the class value to its name
		{Depth: 0, Index: 0},
		// the print statement
		{Depth: 0, Index: 0},
	}, localsOf(table, "A"))
}

func TestResolveIsIdempotent(t *testing.T) {
	program := parse(t, "fun f(a) { { var b = a; return b; } }")

	first := NewTable()
	firstResolver := NewResolver(first)
	require.Empty(t, firstResolver.Resolve(program))

	second := NewTable()
	secondResolver := NewResolver(second)
	require.Empty(t, secondResolver.Resolve(program))
	require.Empty(t, secondResolver.Resolve(program))

	assert.Equal(t, first, second)
}

func TestStaticErrors(t *testing.T) {
	tests := []struct {
		Program  string
		Messages []string
	}{
		{
			Program:  "{ var a = 1; var a = 2; print a; }",
			Messages: []string{"Variable 'a' is already declared in this scope"},
		},
		{
			Program:  "fun f(a, a) { return a; }",
			Messages: []string{"Variable 'a' is already declared in this scope"},
		},
		{
			Program:  "return 1;",
			Messages: []string{"Cannot return from top-level code"},
		},
		{
			Program:  "break;",
			Messages: []string{"Cannot use 'break' outside of a loop"},
		},
		{
			Program:  "continue;",
			Messages: []string{"Cannot use 'continue' outside of a loop"},
		},
		{
			Program:  "while (true) { fun f() { break; } f(); }",
			Messages: []string{"Cannot use 'break' outside of a loop"},
		},
		{
			Program:  "class A < A {}",
			Messages: []string{"Class 'A' cannot inherit from itself"},
		},
		{
			Program:  "{ var a = a; }",
			Messages: []string{"Cannot read local variable 'a' in its own initializer"},
		},
		{
			Program:  "print this;",
			Messages: []string{"Cannot use 'this' outside of a class"},
		},
		{
			Program:  "fun f() { return this; }",
			Messages: []string{"Cannot use 'this' outside of a class"},
		},
		{
			Program:  "class A { class create() { return this; } }",
			Messages: []string{"Cannot use 'this' inside a static method"},
		},
		{
			Program:  "class A { class create() { fun f() { return this; } return f; } }",
			Messages: []string{"Cannot use 'this' inside a static method"},
		},
		{
			Program:  "print super.x;",
			Messages: []string{"Cannot use 'super' outside of a class"},
		},
		{
			Program:  "class A { m() { return super.m(); } }",
			Messages: []string{"Cannot use 'super' in a class without a superclass"},
		},
		{
			Program:  "class B < A { class create() { return super.create(); } }",
			Messages: []string{"Cannot use 'super' inside a static method"},
		},
		{
			Program:  "class A { m() { fun f() { return this; } return f; } }",
			Messages: []string{},
		},
		{
			Program:  "var a = 1; var a = 2;",
			Messages: []string{},
		},
		{
			Program:  "while (true) { { break; } continue; }",
			Messages: []string{},
		},
	}

	for _, test := range tests {
		t.Run(test.Program, func(t *testing.T) {
			_, diagnostics := resolve(t, test.Program)
			assert.Equal(t, test.Messages, filter(diagnostics, diagnostic.DiagnosticLevelError))
		})
	}
}

func TestUnusedWarnings(t *testing.T) {
	tests := []struct {
		Program  string
		Messages []string
	}{
		{
			Program:  "{ var unused = 1; var _hidden = 2; }",
			Messages: []string{"Local Variable 'unused' is unused"},
		},
		{
			Program:  "fun f(a, b) { return a; }",
			Messages: []string{"Parameter 'b' is unused"},
		},
		{
			Program:  "{ fun helper() {} class Local {} }",
			Messages: []string{"Local Function 'helper' is unused", "Local Class 'Local' is unused"},
		},
		{
			Program:  "class A { m() { return 1; } }",
			Messages: []string{},
		},
		{
			Program:  "var global = 1;",
			Messages: []string{},
		},
	}

	for _, test := range tests {
		t.Run(test.Program, func(t *testing.T) {
			_, diagnostics := resolve(t, test.Program)
			assert.Equal(t, test.Messages, filter(diagnostics, diagnostic.DiagnosticLevelWarning))
			assert.Empty(t, filter(diagnostics, diagnostic.DiagnosticLevelError))
		})
	}

	_, diagnostics := resolve(t, "{ var x = 1; }")
	require.Len(t, diagnostics, 1)
	assert.Equal(t, []string{"If this is intentional, change the name to '_x' to hide this message"}, diagnostics[0].Notes)
}

func TestInitializerReturnValue(t *testing.T) {
	_, diagnostics := resolve(t, "class A { init() { return 1; } }")
	require.Len(t, diagnostics, 1)
	assert.Equal(t, diagnostic.DiagnosticLevelWarning, diagnostics[0].Level)
	assert.Equal(t, "The return value of an initializer is discarded", diagnostics[0].Message)

	_, diagnostics = resolve(t, "class A { init() { return; } }")
	assert.Empty(t, diagnostics)
}
