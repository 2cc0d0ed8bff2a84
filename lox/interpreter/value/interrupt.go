package value

import (
	"fmt"

	"github.com/smarthome-go/lox/lox/errors"
)

type InterruptKind uint8

const (
	ReturnInterruptKind InterruptKind = iota
	BreakInterruptKind
	ContinueInterruptKind
	RuntimeErrorInterruptKind
)

func (self InterruptKind) String() string {
	switch self {
	case ReturnInterruptKind:
		return "return"
	case BreakInterruptKind:
		return "break"
	case ContinueInterruptKind:
		return "continue"
	case RuntimeErrorInterruptKind:
		return "runtime error"
	default:
		panic("A new interrupt kind was added without updating this code")
	}
}

// Non-local control flow produced by executing a statement.
// A `nil` interrupt means that the statement completed normally.
type Interrupt interface {
	Kind() InterruptKind
	Message() string
	GetSpan() errors.Span
}

//
// Return interrupt
//

type ReturnInterrupt struct {
	ReturnValue Value
	Span        errors.Span
}

func (self ReturnInterrupt) Kind() InterruptKind  { return ReturnInterruptKind }
func (self ReturnInterrupt) Message() string      { return "<return-interrupt>" }
func (self ReturnInterrupt) GetSpan() errors.Span { return self.Span }

func NewReturnInterrupt(value Value, span errors.Span) Interrupt {
	return ReturnInterrupt{ReturnValue: value, Span: span}
}

//
// Break interrupt
//

type BreakInterrupt struct {
	Span errors.Span
}

func (self BreakInterrupt) Kind() InterruptKind  { return BreakInterruptKind }
func (self BreakInterrupt) Message() string      { return "<break-interrupt>" }
func (self BreakInterrupt) GetSpan() errors.Span { return self.Span }

func NewBreakInterrupt(span errors.Span) Interrupt {
	return BreakInterrupt{Span: span}
}

//
// Continue interrupt
//

type ContinueInterrupt struct {
	Span errors.Span
}

func (self ContinueInterrupt) Kind() InterruptKind  { return ContinueInterruptKind }
func (self ContinueInterrupt) Message() string      { return "<continue-interrupt>" }
func (self ContinueInterrupt) GetSpan() errors.Span { return self.Span }

func NewContinueInterrupt(span errors.Span) Interrupt {
	return ContinueInterrupt{Span: span}
}

//
// Runtime error
//

type RuntimeErrorKind uint8

const (
	GenericErrorKind RuntimeErrorKind = iota
	UnsupportedOperandErrorKind
	UnsupportedOperandsErrorKind
	DivisionByZeroErrorKind
	UndefinedVariableErrorKind
	NotACallableErrorKind
	MismatchingArityErrorKind
	NoPropertiesErrorKind
	UndefinedPropertyErrorKind
	NoFieldsErrorKind
	SuperclassIsNotClassErrorKind
	ExpectedTypeErrorKind
	IndexOutOfBoundsErrorKind
	NotAScriptableErrorKind
	ArrayIndexNotIntegerErrorKind
)

func (self RuntimeErrorKind) String() string {
	switch self {
	case GenericErrorKind:
		return "Generic"
	case UnsupportedOperandErrorKind:
		return "UnsupportedOperand"
	case UnsupportedOperandsErrorKind:
		return "UnsupportedOperands"
	case DivisionByZeroErrorKind:
		return "DivisionByZero"
	case UndefinedVariableErrorKind:
		return "UndefinedVariable"
	case NotACallableErrorKind:
		return "NotACallable"
	case MismatchingArityErrorKind:
		return "MismatchingArity"
	case NoPropertiesErrorKind:
		return "NoProperties"
	case UndefinedPropertyErrorKind:
		return "UndefinedProperty"
	case NoFieldsErrorKind:
		return "NoFields"
	case SuperclassIsNotClassErrorKind:
		return "SuperclassIsNotClass"
	case ExpectedTypeErrorKind:
		return "ExpectedType"
	case IndexOutOfBoundsErrorKind:
		return "IndexOutOfBounds"
	case NotAScriptableErrorKind:
		return "NotAScriptable"
	case ArrayIndexNotIntegerErrorKind:
		return "ArrayIndexNotInteger"
	default:
		panic("A new ErrorKind was added without updating this code")
	}
}

type RuntimeError struct {
	ErrKind RuntimeErrorKind
	Span    errors.Span
	// Contextual strings, their meaning depends on the error kind (operator, type names, identifiers)
	Context []string
	// Only set for `IndexOutOfBounds`
	Index  int64
	Length int
	// Only set for `MismatchingArity`
	Expected int
	Found    int
}

func (self *RuntimeError) Kind() InterruptKind  { return RuntimeErrorInterruptKind }
func (self *RuntimeError) GetSpan() errors.Span { return self.Span }

func (self *RuntimeError) Message() string {
	switch self.ErrKind {
	case GenericErrorKind:
		return self.Context[0]
	case UnsupportedOperandErrorKind:
		return fmt.Sprintf("Unsupported operand for '%s': %s", self.Context[0], self.Context[1])
	case UnsupportedOperandsErrorKind:
		return fmt.Sprintf("Unsupported operands for '%s': %s and %s", self.Context[0], self.Context[1], self.Context[2])
	case DivisionByZeroErrorKind:
		return "Division by zero"
	case UndefinedVariableErrorKind:
		return fmt.Sprintf("Undefined variable '%s'", self.Context[0])
	case NotACallableErrorKind:
		return fmt.Sprintf("A value of type %s is not callable", self.Context[0])
	case MismatchingArityErrorKind:
		return fmt.Sprintf("Expected %d %s but got %d", self.Expected, pluralize("argument", self.Expected), self.Found)
	case NoPropertiesErrorKind:
		return fmt.Sprintf("A value of type %s has no properties", self.Context[0])
	case UndefinedPropertyErrorKind:
		return fmt.Sprintf("Undefined property '%s'", self.Context[0])
	case NoFieldsErrorKind:
		return fmt.Sprintf("Cannot set fields on a value of type %s", self.Context[0])
	case SuperclassIsNotClassErrorKind:
		return fmt.Sprintf("Superclass must be a class, found %s", self.Context[0])
	case ExpectedTypeErrorKind:
		return fmt.Sprintf("Expected a value of type %s, found %s", self.Context[0], self.Context[1])
	case IndexOutOfBoundsErrorKind:
		return fmt.Sprintf("Index %d is out of bounds for length %d", self.Index, self.Length)
	case NotAScriptableErrorKind:
		return fmt.Sprintf("A value of type %s cannot be subscripted", self.Context[0])
	case ArrayIndexNotIntegerErrorKind:
		return fmt.Sprintf("Array index must be an integer, found %s", self.Context[0])
	default:
		panic("A new ErrorKind was added without updating this code")
	}
}

func (self *RuntimeError) Error() string {
	return fmt.Sprintf("%s at %s: %s", self.ErrKind, self.Span, self.Message())
}

func pluralize(word string, count int) string {
	if count == 1 {
		return word
	}
	return word + "s"
}

func newRuntimeError(kind RuntimeErrorKind, span errors.Span, context ...string) *RuntimeError {
	return &RuntimeError{
		ErrKind: kind,
		Span:    span,
		Context: context,
	}
}

func NewGenericError(span errors.Span, message string) *RuntimeError {
	return newRuntimeError(GenericErrorKind, span, message)
}

func NewUnsupportedOperandError(span errors.Span, operator string, operand Value) *RuntimeError {
	return newRuntimeError(UnsupportedOperandErrorKind, span, operator, TypeName(operand))
}

func NewUnsupportedOperandsError(span errors.Span, operator string, lhs Value, rhs Value) *RuntimeError {
	return newRuntimeError(UnsupportedOperandsErrorKind, span, operator, TypeName(lhs), TypeName(rhs))
}

func NewDivisionByZeroError(span errors.Span) *RuntimeError {
	return newRuntimeError(DivisionByZeroErrorKind, span)
}

func NewUndefinedVariableError(span errors.Span, name string) *RuntimeError {
	return newRuntimeError(UndefinedVariableErrorKind, span, name)
}

func NewNotACallableError(span errors.Span, callee Value) *RuntimeError {
	return newRuntimeError(NotACallableErrorKind, span, TypeName(callee))
}

func NewMismatchingArityError(span errors.Span, expected int, found int) *RuntimeError {
	err := newRuntimeError(MismatchingArityErrorKind, span)
	err.Expected = expected
	err.Found = found
	return err
}

func NewNoPropertiesError(span errors.Span, receiver Value) *RuntimeError {
	return newRuntimeError(NoPropertiesErrorKind, span, TypeName(receiver))
}

func NewUndefinedPropertyError(span errors.Span, name string) *RuntimeError {
	return newRuntimeError(UndefinedPropertyErrorKind, span, name)
}

func NewNoFieldsError(span errors.Span, receiver Value) *RuntimeError {
	return newRuntimeError(NoFieldsErrorKind, span, TypeName(receiver))
}

func NewSuperclassIsNotClassError(span errors.Span, superclass Value) *RuntimeError {
	return newRuntimeError(SuperclassIsNotClassErrorKind, span, TypeName(superclass))
}

func NewExpectedTypeError(span errors.Span, expected string, found Value) *RuntimeError {
	return newRuntimeError(ExpectedTypeErrorKind, span, expected, TypeName(found))
}

func NewIndexOutOfBoundsError(span errors.Span, index int64, length int) *RuntimeError {
	err := newRuntimeError(IndexOutOfBoundsErrorKind, span)
	err.Index = index
	err.Length = length
	return err
}

func NewNotAScriptableError(span errors.Span, receiver Value) *RuntimeError {
	return newRuntimeError(NotAScriptableErrorKind, span, TypeName(receiver))
}

func NewArrayIndexNotIntegerError(span errors.Span, index Value) *RuntimeError {
	return newRuntimeError(ArrayIndexNotIntegerErrorKind, span, TypeName(index))
}

// Returns the name of the value's type as it is presented to users
func TypeName(value Value) string {
	return value.Kind().String()
}
