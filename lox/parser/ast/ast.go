package ast

import (
	"strings"

	"github.com/smarthome-go/lox/lox/errors"
)

func NewSpannedIdent(ident string, span errors.Span) SpannedIdent {
	return SpannedIdent{
		ident: ident,
		span:  span,
	}
}

type SpannedIdent struct {
	ident string
	span  errors.Span
}

func (self SpannedIdent) Ident() string     { return self.ident }
func (self SpannedIdent) Span() errors.Span { return self.span }
func (self SpannedIdent) String() string    { return self.ident }

// A parsed source file or REPL line
type Program []Statement

func (self Program) String() string {
	output := make([]string, 0, len(self))
	for _, stmt := range self {
		output = append(output, stmt.String())
	}
	return strings.Join(output, "\n")
}

func blockString(statements []Statement) string {
	if len(statements) == 0 {
		return "{}"
	}

	output := make([]string, 0, len(statements))
	for _, stmt := range statements {
		output = append(output, "    "+strings.ReplaceAll(stmt.String(), "\n", "\n    "))
	}
	return "{\n" + strings.Join(output, "\n") + "\n}"
}

func identList(idents []SpannedIdent) string {
	output := make([]string, 0, len(idents))
	for _, ident := range idents {
		output = append(output, ident.Ident())
	}
	return strings.Join(output, ", ")
}
