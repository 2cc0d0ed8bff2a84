package value

import (
	"math"
	"strconv"
)

type ValueKind uint8

const (
	NilValueKind ValueKind = iota
	IntValueKind
	FloatValueKind
	BoolValueKind
	StringValueKind
	FunctionValueKind
	NativeFunctionValueKind
	ClassValueKind
	InstanceValueKind
	ArrayValueKind
)

func (self ValueKind) String() string {
	switch self {
	case NilValueKind:
		return "nil"
	case IntValueKind:
		return "integer"
	case FloatValueKind:
		return "float"
	case BoolValueKind:
		return "boolean"
	case StringValueKind:
		return "string"
	case FunctionValueKind:
		return "function"
	case NativeFunctionValueKind:
		return "native function"
	case ClassValueKind:
		return "class"
	case InstanceValueKind:
		return "instance"
	case ArrayValueKind:
		return "array"
	default:
		panic("A new ValueKind was introduced without updating this code")
	}
}

type Value interface {
	Kind() ValueKind
	// Canonical textual rendering, as produced by `print`
	Display() string
	IsEqual(other Value) bool
}

// `false` and `nil` are falsy, everything else is truthy
func IsTruthy(value Value) bool {
	switch value.Kind() {
	case NilValueKind:
		return false
	case BoolValueKind:
		return value.(ValueBool).Inner
	default:
		return true
	}
}

// Maximum difference for which an int and a float (or two floats) are considered equal
const floatEqualityTolerance = 64 * 2.220446049250313e-16

func floatsEqual(lhs float64, rhs float64) bool {
	return math.Abs(lhs-rhs) <= floatEqualityTolerance
}

//
// Nil
//

type ValueNil struct{}

func (_ ValueNil) Kind() ValueKind { return NilValueKind }
func (_ ValueNil) Display() string { return "nil" }
func (_ ValueNil) IsEqual(other Value) bool {
	return other.Kind() == NilValueKind
}

func NewValueNil() Value {
	return ValueNil{}
}

//
// Int
//

type ValueInt struct {
	Inner int64
}

func (_ ValueInt) Kind() ValueKind    { return IntValueKind }
func (self ValueInt) Display() string { return strconv.FormatInt(self.Inner, 10) }
func (self ValueInt) IsEqual(other Value) bool {
	switch other.Kind() {
	case IntValueKind:
		return self.Inner == other.(ValueInt).Inner
	case FloatValueKind:
		return floatsEqual(float64(self.Inner), other.(ValueFloat).Inner)
	default:
		return false
	}
}

func NewValueInt(inner int64) Value {
	return ValueInt{Inner: inner}
}

//
// Float
//

type ValueFloat struct {
	Inner float64
}

func (_ ValueFloat) Kind() ValueKind { return FloatValueKind }
func (self ValueFloat) Display() string {
	return strconv.FormatFloat(self.Inner, 'f', -1, 64)
}
func (self ValueFloat) IsEqual(other Value) bool {
	switch other.Kind() {
	case IntValueKind:
		return floatsEqual(self.Inner, float64(other.(ValueInt).Inner))
	case FloatValueKind:
		return floatsEqual(self.Inner, other.(ValueFloat).Inner)
	default:
		return false
	}
}

func NewValueFloat(inner float64) Value {
	return ValueFloat{Inner: inner}
}

//
// Bool
//

type ValueBool struct {
	Inner bool
}

func (_ ValueBool) Kind() ValueKind    { return BoolValueKind }
func (self ValueBool) Display() string { return strconv.FormatBool(self.Inner) }
func (self ValueBool) IsEqual(other Value) bool {
	return other.Kind() == BoolValueKind && other.(ValueBool).Inner == self.Inner
}

func NewValueBool(inner bool) Value {
	return ValueBool{Inner: inner}
}

//
// String
//

type ValueString struct {
	Inner string
}

func (_ ValueString) Kind() ValueKind    { return StringValueKind }
func (self ValueString) Display() string { return self.Inner }
func (self ValueString) IsEqual(other Value) bool {
	return other.Kind() == StringValueKind && other.(ValueString).Inner == self.Inner
}

func NewValueString(inner string) Value {
	return ValueString{Inner: inner}
}

// Returns the numeric value of ints and floats
func AsFloat(value Value) (float64, bool) {
	switch value.Kind() {
	case IntValueKind:
		return float64(value.(ValueInt).Inner), true
	case FloatValueKind:
		return value.(ValueFloat).Inner, true
	default:
		return 0, false
	}
}
