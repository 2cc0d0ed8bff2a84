package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smarthome-go/lox/lox/errors"
	"github.com/smarthome-go/lox/lox/parser/ast"
)

// Only provides what native array methods need
type stubRuntime struct{}

func (stubRuntime) Executor() Executor { return nil }
func (stubRuntime) ExecuteBody(_ []ast.Statement, _ *Frame) Interrupt {
	panic("stubRuntime cannot execute user code")
}

func (self stubRuntime) Invoke(callable Callable, arguments []Value, span errors.Span) (Value, *RuntimeError) {
	return callable.Call(self, arguments, span)
}

func TestArithmetic(t *testing.T) {
	tests := []struct {
		Name     string
		Operator ast.BinaryOperator
		Lhs      Value
		Rhs      Value
		Expected Value
	}{
		{Name: "int addition", Operator: ast.PlusBinaryOperator, Lhs: NewValueInt(2), Rhs: NewValueInt(3), Expected: NewValueInt(5)},
		{Name: "int division truncates", Operator: ast.DivideBinaryOperator, Lhs: NewValueInt(7), Rhs: NewValueInt(2), Expected: NewValueInt(3)},
		{Name: "int modulo", Operator: ast.ModuloBinaryOperator, Lhs: NewValueInt(7), Rhs: NewValueInt(3), Expected: NewValueInt(1)},
		{Name: "mixed promotes", Operator: ast.PlusBinaryOperator, Lhs: NewValueInt(1), Rhs: NewValueFloat(0.5), Expected: NewValueFloat(1.5)},
		{Name: "float division", Operator: ast.DivideBinaryOperator, Lhs: NewValueFloat(7), Rhs: NewValueInt(2), Expected: NewValueFloat(3.5)},
		{Name: "float modulo", Operator: ast.ModuloBinaryOperator, Lhs: NewValueFloat(7.5), Rhs: NewValueInt(2), Expected: NewValueFloat(1.5)},
		{Name: "string concatenation", Operator: ast.PlusBinaryOperator, Lhs: NewValueString("foo"), Rhs: NewValueString("bar"), Expected: NewValueString("foobar")},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			result, err := Arithmetic(test.Operator, test.Lhs, test.Rhs, errors.Span{})
			require.Nil(t, err)
			assert.Equal(t, test.Expected.Kind(), result.Kind())
			assert.Equal(t, test.Expected, result)
		})
	}
}

func TestArithmeticErrors(t *testing.T) {
	tests := []struct {
		Name     string
		Operator ast.BinaryOperator
		Lhs      Value
		Rhs      Value
		Kind     RuntimeErrorKind
		Message  string
	}{
		{
			Name:     "int division by zero",
			Operator: ast.DivideBinaryOperator,
			Lhs:      NewValueInt(1),
			Rhs:      NewValueInt(0),
			Kind:     DivisionByZeroErrorKind,
			Message:  "Division by zero",
		},
		{
			Name:     "float division by zero",
			Operator: ast.DivideBinaryOperator,
			Lhs:      NewValueFloat(1),
			Rhs:      NewValueFloat(0),
			Kind:     DivisionByZeroErrorKind,
			Message:  "Division by zero",
		},
		{
			Name:     "modulo by zero",
			Operator: ast.ModuloBinaryOperator,
			Lhs:      NewValueInt(1),
			Rhs:      NewValueInt(0),
			Kind:     DivisionByZeroErrorKind,
			Message:  "Division by zero",
		},
		{
			Name:     "string and number",
			Operator: ast.PlusBinaryOperator,
			Lhs:      NewValueString("a"),
			Rhs:      NewValueInt(1),
			Kind:     UnsupportedOperandsErrorKind,
			Message:  "Unsupported operands for '+': string and integer",
		},
		{
			Name:     "string subtraction",
			Operator: ast.MinusBinaryOperator,
			Lhs:      NewValueString("a"),
			Rhs:      NewValueString("b"),
			Kind:     UnsupportedOperandsErrorKind,
			Message:  "Unsupported operands for '-': string and string",
		},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			_, err := Arithmetic(test.Operator, test.Lhs, test.Rhs, errors.Span{})
			require.NotNil(t, err)
			assert.Equal(t, test.Kind, err.ErrKind)
			assert.Equal(t, test.Message, err.Message())
		})
	}
}

func TestNegate(t *testing.T) {
	result, err := Negate(NewValueInt(3), errors.Span{})
	require.Nil(t, err)
	assert.Equal(t, NewValueInt(-3), result)

	result, err = Negate(NewValueFloat(1.5), errors.Span{})
	require.Nil(t, err)
	assert.Equal(t, NewValueFloat(-1.5), result)

	_, err = Negate(NewValueBool(true), errors.Span{})
	require.NotNil(t, err)
	assert.Equal(t, "Unsupported operand for '-': boolean", err.Message())
}

func TestCompare(t *testing.T) {
	result, err := Compare(ast.LessBinaryOperator, NewValueInt(1), NewValueFloat(1.5), errors.Span{})
	require.Nil(t, err)
	assert.Equal(t, NewValueBool(true), result)

	result, err = Compare(ast.GreaterEqualBinaryOperator, NewValueInt(2), NewValueInt(2), errors.Span{})
	require.Nil(t, err)
	assert.Equal(t, NewValueBool(true), result)

	_, err = Compare(ast.LessBinaryOperator, NewValueString("a"), NewValueString("b"), errors.Span{})
	require.NotNil(t, err)
	assert.Equal(t, UnsupportedOperandsErrorKind, err.ErrKind)
}

func TestEquality(t *testing.T) {
	array := NewValueArray([]Value{NewValueInt(1)})
	class := NewValueClass("Foo", nil, nil, nil, nil)

	tests := []struct {
		Name     string
		Lhs      Value
		Rhs      Value
		Expected bool
	}{
		{Name: "int and equal float", Lhs: NewValueInt(1), Rhs: NewValueFloat(1.0), Expected: true},
		{Name: "float tolerance", Lhs: NewValueFloat(0.1 + 0.2), Rhs: NewValueFloat(0.3), Expected: true},
		{Name: "different numbers", Lhs: NewValueInt(1), Rhs: NewValueFloat(1.5), Expected: false},
		{Name: "nil and nil", Lhs: NewValueNil(), Rhs: NewValueNil(), Expected: true},
		{Name: "nil and false", Lhs: NewValueNil(), Rhs: NewValueBool(false), Expected: false},
		{Name: "strings", Lhs: NewValueString("a"), Rhs: NewValueString("a"), Expected: true},
		{Name: "string and number", Lhs: NewValueString("1"), Rhs: NewValueInt(1), Expected: false},
		{Name: "same array", Lhs: array, Rhs: array, Expected: true},
		{Name: "equal arrays", Lhs: array, Rhs: NewValueArray([]Value{NewValueInt(1)}), Expected: false},
		{Name: "same class", Lhs: class, Rhs: class, Expected: true},
		{Name: "distinct instances", Lhs: NewValueInstance(class), Rhs: NewValueInstance(class), Expected: false},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			assert.Equal(t, test.Expected, test.Lhs.IsEqual(test.Rhs))
			assert.Equal(t, test.Expected, test.Rhs.IsEqual(test.Lhs))
		})
	}
}

func TestTruthiness(t *testing.T) {
	assert.False(t, IsTruthy(NewValueNil()))
	assert.False(t, IsTruthy(NewValueBool(false)))
	assert.True(t, IsTruthy(NewValueBool(true)))
	assert.True(t, IsTruthy(NewValueInt(0)))
	assert.True(t, IsTruthy(NewValueString("")))
	assert.True(t, IsTruthy(NewValueArray(make([]Value, 0))))
}

func TestDisplay(t *testing.T) {
	class := NewValueClass("Point", nil, nil, nil, nil)

	tests := []struct {
		Value    Value
		Expected string
	}{
		{Value: NewValueNil(), Expected: "nil"},
		{Value: NewValueInt(-42), Expected: "-42"},
		{Value: NewValueFloat(1.5), Expected: "1.5"},
		{Value: NewValueFloat(2), Expected: "2"},
		{Value: NewValueBool(true), Expected: "true"},
		{Value: NewValueString("hi"), Expected: "hi"},
		{Value: NewValueFunction("add", nil, nil, nil, false), Expected: "<fn add>"},
		{Value: NewValueFunction("", nil, nil, nil, false), Expected: "<anonymous fn>"},
		{Value: NewValueNativeFunction("clock", 0, nil), Expected: "<native fn clock>"},
		{Value: class, Expected: "<class Point>"},
		{Value: NewValueInstance(class), Expected: "<Point instance>"},
		{
			Value:    NewValueArray([]Value{NewValueInt(1), NewValueString("a"), NewValueArray(nil)}),
			Expected: "[1, a, []]",
		},
	}

	for _, test := range tests {
		t.Run(test.Expected, func(t *testing.T) {
			assert.Equal(t, test.Expected, test.Value.Display())
		})
	}
}

func TestFrame(t *testing.T) {
	outer := NewFrame(nil)
	outer.Define(NewValueInt(1))
	outer.Define(NewValueInt(2))

	inner := NewFrame(outer)
	inner.Define(NewValueString("inner"))

	assert.Equal(t, NewValueString("inner"), inner.GetAt(0, 0))
	assert.Equal(t, NewValueInt(2), inner.GetAt(1, 1))

	inner.AssignAt(1, 0, NewValueInt(10))
	assert.Equal(t, NewValueInt(10), outer.GetAt(0, 0), "writes are visible through every holder of the frame")

	assert.Equal(t, outer, inner.Enclosing())
	assert.Equal(t, 1, inner.Len())

	assert.Panics(t, func() { inner.GetAt(2, 0) }, "there is no frame at depth 2")
	assert.Panics(t, func() { inner.GetAt(0, 1) }, "slot 1 was never defined")
	assert.Panics(t, func() { outer.AssignAt(0, 5, NewValueNil()) })
}

func TestArraySubscript(t *testing.T) {
	array := NewValueArray([]Value{NewValueInt(1), NewValueInt(2), NewValueInt(3)})

	element, err := array.SubscriptGet(NewValueInt(2), errors.Span{})
	require.Nil(t, err)
	assert.Equal(t, NewValueInt(3), element)

	_, err = array.SubscriptSet(NewValueInt(0), NewValueString("first"), errors.Span{})
	require.Nil(t, err)
	assert.Equal(t, NewValueString("first"), array.Values[0])

	_, err = array.SubscriptGet(NewValueInt(5), errors.Span{})
	require.NotNil(t, err)
	assert.Equal(t, IndexOutOfBoundsErrorKind, err.ErrKind)
	assert.Equal(t, int64(5), err.Index)
	assert.Equal(t, 3, err.Length)
	assert.Equal(t, "Index 5 is out of bounds for length 3", err.Message())

	_, err = array.SubscriptGet(NewValueInt(-1), errors.Span{})
	require.NotNil(t, err)
	assert.Equal(t, IndexOutOfBoundsErrorKind, err.ErrKind)

	_, err = array.SubscriptSet(NewValueFloat(1), NewValueNil(), errors.Span{})
	require.NotNil(t, err)
	assert.Equal(t, ArrayIndexNotIntegerErrorKind, err.ErrKind)
	assert.Equal(t, "Array index must be an integer, found float", err.Message())
}

func callArrayMethod(t *testing.T, array *ValueArray, name string, args ...Value) (Value, *RuntimeError) {
	t.Helper()
	method, err := array.Get(name, errors.Span{})
	require.Nil(t, err)
	callable, ok := AsCallable(method)
	require.True(t, ok)
	require.Equal(t, callable.Arity(), len(args))
	return callable.Call(stubRuntime{}, args, errors.Span{})
}

func TestArrayMethods(t *testing.T) {
	array := NewValueArray(make([]Value, 0))

	_, err := callArrayMethod(t, array, "push", NewValueInt(1))
	require.Nil(t, err)
	_, err = callArrayMethod(t, array, "push", NewValueInt(3))
	require.Nil(t, err)
	_, err = callArrayMethod(t, array, "insert", NewValueInt(1), NewValueInt(2))
	require.Nil(t, err)
	_, err = callArrayMethod(t, array, "insert", NewValueInt(3), NewValueInt(4))
	require.Nil(t, err, "inserting at the length appends")
	assert.Equal(t, "[1, 2, 3, 4]", array.Display())

	length, err := array.Get("length", errors.Span{})
	require.Nil(t, err)
	assert.Equal(t, NewValueInt(4), length)

	_, err = callArrayMethod(t, array, "insert", NewValueInt(9), NewValueNil())
	require.NotNil(t, err)
	assert.Equal(t, IndexOutOfBoundsErrorKind, err.ErrKind)

	last, err := callArrayMethod(t, array, "pop")
	require.Nil(t, err)
	assert.Equal(t, NewValueInt(4), last)
	assert.Len(t, array.Values, 3)

	empty := NewValueArray(make([]Value, 0))
	popped, err := callArrayMethod(t, empty, "pop")
	require.Nil(t, err)
	assert.Equal(t, NilValueKind, popped.Kind())

	_, err = array.Get("size", errors.Span{})
	require.NotNil(t, err)
	assert.Equal(t, "Undefined property 'size'", err.Message())
}

func TestClassLookup(t *testing.T) {
	greet := NewValueFunction("greet", nil, nil, nil, false)
	name := NewValueFunction("name", nil, nil, nil, false)
	create := NewValueFunction("create", nil, nil, nil, false)

	base := NewValueClass(
		"Base",
		nil,
		map[string]*ValueFunction{"greet": greet},
		map[string]*ValueFunction{"name": name},
		map[string]*ValueFunction{"create": create},
	)
	derived := NewValueClass("Derived", base, map[string]*ValueFunction{}, map[string]*ValueFunction{}, map[string]*ValueFunction{})

	method, found := derived.FindMethod("greet")
	require.True(t, found)
	assert.Same(t, greet, method)

	member, isGetter, found := derived.FindMember("name")
	require.True(t, found)
	assert.True(t, isGetter)
	assert.Same(t, name, member)

	static, err := derived.GetStatic("create", errors.Span{})
	require.Nil(t, err)
	assert.Same(t, create, static)

	_, err = derived.GetStatic("greet", errors.Span{})
	require.NotNil(t, err)
	assert.Equal(t, UndefinedPropertyErrorKind, err.ErrKind)

	assert.Equal(t, 0, derived.Arity())
}

func TestBindCreatesFreshMethod(t *testing.T) {
	class := NewValueClass("Foo", nil, nil, nil, nil)
	instance := NewValueInstance(class)
	method := NewValueFunction("bar", nil, nil, NewFrame(nil), false)

	first := method.Bind(instance)
	second := method.Bind(instance)

	assert.NotSame(t, first, second)
	assert.False(t, first.IsEqual(second))
	assert.Equal(t, instance, first.Closure.GetAt(0, 0))
	assert.Equal(t, method.Closure, first.Closure.Enclosing())
}

func TestRuntimeErrorMessages(t *testing.T) {
	tests := []struct {
		Error    *RuntimeError
		Expected string
	}{
		{Error: NewMismatchingArityError(errors.Span{}, 1, 2), Expected: "Expected 1 argument but got 2"},
		{Error: NewMismatchingArityError(errors.Span{}, 2, 0), Expected: "Expected 2 arguments but got 0"},
		{Error: NewUndefinedVariableError(errors.Span{}, "x"), Expected: "Undefined variable 'x'"},
		{Error: NewNotACallableError(errors.Span{}, NewValueString("a")), Expected: "A value of type string is not callable"},
		{Error: NewNoPropertiesError(errors.Span{}, NewValueInt(1)), Expected: "A value of type integer has no properties"},
		{Error: NewNoFieldsError(errors.Span{}, NewValueNil()), Expected: "Cannot set fields on a value of type nil"},
		{Error: NewSuperclassIsNotClassError(errors.Span{}, NewValueInt(1)), Expected: "Superclass must be a class, found integer"},
		{Error: NewExpectedTypeError(errors.Span{}, "string", NewValueBool(true)), Expected: "Expected a value of type string, found boolean"},
		{Error: NewNotAScriptableError(errors.Span{}, NewValueInt(1)), Expected: "A value of type integer cannot be subscripted"},
		{Error: NewGenericError(errors.Span{}, "boom"), Expected: "boom"},
	}

	for _, test := range tests {
		t.Run(test.Error.ErrKind.String(), func(t *testing.T) {
			assert.Equal(t, test.Expected, test.Error.Message())
			assert.Equal(t, RuntimeErrorInterruptKind, test.Error.Kind())
		})
	}
}
