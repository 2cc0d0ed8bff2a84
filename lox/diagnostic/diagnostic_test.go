package diagnostic

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/smarthome-go/lox/lox/errors"
)

func span(line uint, start uint, end uint) errors.Span {
	return errors.Span{
		Start:    errors.Location{Line: line, Column: start},
		End:      errors.Location{Line: line, Column: end},
		Filename: "test.lox",
	}
}

func TestDisplay(t *testing.T) {
	program := "var a = 1;\nprint foo;\nprint a;"
	item := Diagnostic{
		Level:   DiagnosticLevelError,
		Message: "Undefined variable 'foo'",
		Notes:   []string{"Did you mean 'for'?"},
		Span:    span(2, 7, 9),
	}

	output := item.Display(program, false)
	assert.Contains(t, output, "Error at test.lox:2:7")
	assert.Contains(t, output, "var a = 1;")
	assert.Contains(t, output, "print foo;")
	assert.Contains(t, output, "print a;")
	assert.Contains(t, output, "^^^")
	assert.Contains(t, output, "Undefined variable 'foo'")
	assert.Contains(t, output, "note: Did you mean 'for'?")
	assert.NotContains(t, output, "\x1b[")

	assert.Contains(t, item.Display(program, true), "\x1b[")
}

func TestDisplayWarningMarkers(t *testing.T) {
	item := Diagnostic{
		Level:   DiagnosticLevelWarning,
		Message: "Local Variable 'a' is unused",
		Span:    span(1, 5, 5),
	}

	output := item.Display("var a = 1;", false)
	assert.Contains(t, output, "Warning at test.lox:1:5")
	assert.NotContains(t, output, "~~", "a single column span is marked with one caret")
}

func TestDisplayWithoutSource(t *testing.T) {
	item := Diagnostic{
		Level:   DiagnosticLevelError,
		Message: "Something failed",
		Span:    span(10, 1, 1),
	}

	output := item.Display("print 1;", false)
	assert.Contains(t, output, "Error in test.lox")
	assert.Contains(t, output, "Something failed")
}

func TestFromError(t *testing.T) {
	item := FromError(*errors.NewError(span(1, 1, 1), "Unterminated string", errors.SyntaxError))
	assert.Equal(t, DiagnosticLevelError, item.Level)
	assert.Equal(t, "SyntaxError: Unterminated string", item.Message)
}

func TestContainsErrors(t *testing.T) {
	assert.False(t, ContainsErrors(nil))
	assert.False(t, ContainsErrors([]Diagnostic{{Level: DiagnosticLevelWarning}, {Level: DiagnosticLevelHint}}))
	assert.True(t, ContainsErrors([]Diagnostic{{Level: DiagnosticLevelWarning}, {Level: DiagnosticLevelError}}))
}
