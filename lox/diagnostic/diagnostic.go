package diagnostic

import (
	"fmt"
	"strings"

	"github.com/smarthome-go/lox/lox/errors"
)

type DiagnosticLevel uint8

const (
	DiagnosticLevelHint DiagnosticLevel = iota
	DiagnosticLevelInfo
	DiagnosticLevelWarning
	DiagnosticLevelError
)

func (self DiagnosticLevel) String() string {
	switch self {
	case DiagnosticLevelHint:
		return "Hint"
	case DiagnosticLevelInfo:
		return "Info"
	case DiagnosticLevelWarning:
		return "Warning"
	case DiagnosticLevelError:
		return "Error"
	default:
		panic("A new diagnostic level was added without updating this code")
	}
}

//
// Diagnostic
//

type Diagnostic struct {
	Level   DiagnosticLevel `json:"level"`
	Message string          `json:"message"`
	Notes   []string        `json:"notes"`
	Span    errors.Span     `json:"span"`
}

func (self Diagnostic) String() string {
	return fmt.Sprintf("%s at %s: %s", self.Level, self.Span, self.Message)
}

// Converts a syntax error into an error diagnostic so that all kinds of errors share one representation
func FromError(err errors.Error) Diagnostic {
	return Diagnostic{
		Level:   DiagnosticLevelError,
		Message: fmt.Sprintf("%s: %s", err.Kind, err.Message),
		Notes:   nil,
		Span:    err.Span,
	}
}

// Reports whether at least one of the diagnostics is an error
func ContainsErrors(diagnostics []Diagnostic) bool {
	for _, item := range diagnostics {
		if item.Level == DiagnosticLevelError {
			return true
		}
	}
	return false
}

// Renders the diagnostic together with an excerpt of the source program
// If `useColor` is false, no ANSI escape sequences are emitted
func (self Diagnostic) Display(program string, useColor bool) string {
	markerMul := "~"
	var color uint8 = 0

	switch self.Level {
	case DiagnosticLevelHint:
		color = 5 // magenta
	case DiagnosticLevelInfo:
		color = 4 // blue
	case DiagnosticLevelWarning:
		color = 3 // yellow
	case DiagnosticLevelError:
		markerMul = "^"
		color = 1 // red
	}

	col := func(code uint8, bold bool) string {
		if !useColor {
			return ""
		}
		return ansiCol(code, bold)
	}
	reset := col(0, false)
	gray := col(90, false)

	notes := ""
	for _, note := range self.Notes {
		notes += fmt.Sprintf("%s - note:%s %s\n", col(36, true), reset, note)
	}

	lines := strings.Split(program, "\n")

	// take special action if there is no useful span / the source code does not contain the span
	if self.Span.Start.Line == 0 || int(self.Span.Start.Line) > len(lines) {
		return fmt.Sprintf(
			"%s%s%s in %s%s\n%s\n%s",
			col(color+30, true),
			self.Level,
			col(39, true),
			self.Span.Filename,
			reset,
			self.Message,
			notes,
		)
	}

	line1 := ""
	if self.Span.Start.Line > 1 {
		line1 = fmt.Sprintf("\n %s%- 3d | %s%s", gray, self.Span.Start.Line-1, reset, lines[self.Span.Start.Line-2])
	}
	line2 := fmt.Sprintf(" %s%- 3d | %s%s", gray, self.Span.Start.Line, reset, lines[self.Span.Start.Line-1])
	line3 := ""
	if int(self.Span.Start.Line) < len(lines) {
		line3 = fmt.Sprintf("\n %s%- 3d | %s%s", gray, self.Span.Start.Line+1, reset, lines[self.Span.Start.Line])
	}

	markers := "^"
	if self.Span.Start.Line == self.Span.End.Line && self.Span.End.Column > self.Span.Start.Column {
		// This is required because token spans are inclusive
		markers = strings.Repeat(markerMul, int(self.Span.End.Column-self.Span.Start.Column)+1)
	} else if self.Span.End.Line > self.Span.Start.Line {
		s := "s"
		if self.Span.End.Line-self.Span.Start.Line == 1 {
			s = ""
		}

		width := len(lines[self.Span.Start.Line-1]) - int(self.Span.Start.Column) + 1
		if width < 1 {
			width = 1
		}

		markers = fmt.Sprintf(
			"%s ...\n%s%s+ %d more line%s%s",
			strings.Repeat(markerMul, width),
			strings.Repeat(" ", int(self.Span.Start.Column)+6),
			col(32, true),
			self.Span.End.Line-self.Span.Start.Line,
			s,
			reset,
		)
	}

	marker := fmt.Sprintf(
		"%s%s%s%s",
		col(color+30, true),
		strings.Repeat(" ", int(self.Span.Start.Column+6)),
		markers,
		reset,
	)

	return fmt.Sprintf(
		"%s%v%s at %s:%d:%d%s\n%s\n%s\n%s%s\n\n%s%s%s\n%s",
		col(color+30, true),
		self.Level,
		col(39, true),
		self.Span.Filename,
		self.Span.Start.Line,
		self.Span.Start.Column,
		reset,
		line1,
		line2,
		marker,
		line3,
		col(color+30, true),
		self.Message,
		reset,
		notes,
	)
}

func ansiCol(color uint8, bold bool) string {
	if bold {
		return fmt.Sprintf("\x1b[1;%dm", color)
	}
	return fmt.Sprintf("\x1b[%dm", color)
}
