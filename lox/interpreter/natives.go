package interpreter

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/smarthome-go/lox/lox/errors"
	"github.com/smarthome-go/lox/lox/interpreter/value"
)

// Upper bound of the length passed to `Array`
const maxArrayLength = 1 << 24

// Native functions which are defined in the globals of every interpreter
func natives() map[string]*value.ValueNativeFunction {
	return map[string]*value.ValueNativeFunction{
		"clock": value.NewValueNativeFunction("clock", 0, func(_ value.Executor, _ errors.Span, _ ...value.Value) (value.Value, *value.RuntimeError) {
			return value.NewValueFloat(float64(time.Now().UnixNano()) / float64(time.Second)), nil
		}),
		"str": value.NewValueNativeFunction("str", 1, func(_ value.Executor, _ errors.Span, args ...value.Value) (value.Value, *value.RuntimeError) {
			return value.NewValueString(args[0].Display()), nil
		}),
		"type": value.NewValueNativeFunction("type", 1, func(_ value.Executor, _ errors.Span, args ...value.Value) (value.Value, *value.RuntimeError) {
			return value.NewValueString(value.TypeName(args[0])), nil
		}),
		"len": value.NewValueNativeFunction("len", 1, func(_ value.Executor, span errors.Span, args ...value.Value) (value.Value, *value.RuntimeError) {
			switch arg := args[0].(type) {
			case value.ValueString:
				return value.NewValueInt(int64(utf8.RuneCountInString(arg.Inner))), nil
			case *value.ValueArray:
				return value.NewValueInt(int64(len(arg.Values))), nil
			default:
				return nil, value.NewExpectedTypeError(span, "string or array", arg)
			}
		}),
		"int":   value.NewValueNativeFunction("int", 1, toInt),
		"float": value.NewValueNativeFunction("float", 1, toFloat),
		"Array": value.NewValueNativeFunction("Array", 1, func(_ value.Executor, span errors.Span, args ...value.Value) (value.Value, *value.RuntimeError) {
			length, isInt := args[0].(value.ValueInt)
			if !isInt {
				return nil, value.NewExpectedTypeError(span, value.IntValueKind.String(), args[0])
			}
			if length.Inner < 0 {
				return nil, value.NewGenericError(span, fmt.Sprintf("Array length must not be negative, got %d", length.Inner))
			}
			if length.Inner > maxArrayLength {
				return nil, value.NewGenericError(span, fmt.Sprintf("Array length must not exceed %d, got %d", maxArrayLength, length.Inner))
			}

			elements := make([]value.Value, length.Inner)
			for idx := range elements {
				elements[idx] = value.NewValueNil()
			}
			return value.NewValueArray(elements), nil
		}),
	}
}

func toInt(_ value.Executor, span errors.Span, args ...value.Value) (value.Value, *value.RuntimeError) {
	switch arg := args[0].(type) {
	case value.ValueInt:
		return arg, nil
	case value.ValueFloat:
		return value.NewValueInt(int64(arg.Inner)), nil
	case value.ValueString:
		parsed, err := strconv.ParseInt(strings.TrimSpace(arg.Inner), 10, 64)
		if err != nil {
			return nil, value.NewGenericError(span, fmt.Sprintf("Cannot convert '%s' to an integer", arg.Inner))
		}
		return value.NewValueInt(parsed), nil
	default:
		return nil, value.NewExpectedTypeError(span, "number or string", arg)
	}
}

func toFloat(_ value.Executor, span errors.Span, args ...value.Value) (value.Value, *value.RuntimeError) {
	switch arg := args[0].(type) {
	case value.ValueInt:
		return value.NewValueFloat(float64(arg.Inner)), nil
	case value.ValueFloat:
		return arg, nil
	case value.ValueString:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(arg.Inner), 64)
		if err != nil {
			return nil, value.NewGenericError(span, fmt.Sprintf("Cannot convert '%s' to a float", arg.Inner))
		}
		return value.NewValueFloat(parsed), nil
	default:
		return nil, value.NewExpectedTypeError(span, "number or string", arg)
	}
}
