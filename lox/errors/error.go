package errors

import "fmt"

// All ranges inclusive
type Span struct {
	Start    Location
	End      Location
	Filename string
}

func (self Span) String() string {
	return fmt.Sprintf("%s:%d:%d", self.Filename, self.Start.Line, self.Start.Column)
}

// Returns a span which starts at `self` and ends at `other`
func (self Span) Until(other Span) Span {
	return Span{
		Start:    self.Start,
		End:      other.End,
		Filename: self.Filename,
	}
}

type Error struct {
	Kind    ErrorKind
	Message string
	Span    Span
}

func (self Error) Error() string {
	return fmt.Sprintf("%s at %s: %s", self.Kind, self.Span, self.Message)
}

type ErrorKind uint8

const (
	SyntaxError ErrorKind = iota
)

func (self ErrorKind) String() string {
	switch self {
	case SyntaxError:
		return "SyntaxError"
	default:
		panic("A new ErrorKind was added without updating this code")
	}
}

func NewError(span Span, message string, kind ErrorKind) *Error {
	return &Error{
		Span:    span,
		Message: message,
		Kind:    kind,
	}
}
