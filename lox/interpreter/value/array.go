package value

import (
	"fmt"
	"strings"

	"github.com/smarthome-go/lox/lox/errors"
)

type ValueArray struct {
	Values []Value
}

func (_ *ValueArray) Kind() ValueKind { return ArrayValueKind }

func (self *ValueArray) Display() string {
	elements := make([]string, 0, len(self.Values))
	for _, element := range self.Values {
		elements = append(elements, element.Display())
	}
	return fmt.Sprintf("[%s]", strings.Join(elements, ", "))
}

// Arrays are compared by identity, not by contents
func (self *ValueArray) IsEqual(other Value) bool {
	otherArray, ok := other.(*ValueArray)
	return ok && otherArray == self
}

func (self *ValueArray) index(index Value, length int, span errors.Span) (int, *RuntimeError) {
	if index.Kind() != IntValueKind {
		return 0, NewArrayIndexNotIntegerError(span, index)
	}

	idx := index.(ValueInt).Inner
	if idx < 0 || idx >= int64(length) {
		return 0, NewIndexOutOfBoundsError(span, idx, len(self.Values))
	}

	return int(idx), nil
}

func (self *ValueArray) SubscriptGet(index Value, span errors.Span) (Value, *RuntimeError) {
	idx, err := self.index(index, len(self.Values), span)
	if err != nil {
		return nil, err
	}
	return self.Values[idx], nil
}

func (self *ValueArray) SubscriptSet(index Value, newValue Value, span errors.Span) (Value, *RuntimeError) {
	idx, err := self.index(index, len(self.Values), span)
	if err != nil {
		return nil, err
	}
	self.Values[idx] = newValue
	return newValue, nil
}

// Resolves `array.name`
func (self *ValueArray) Get(name string, span errors.Span) (Value, *RuntimeError) {
	switch name {
	case "length":
		return NewValueInt(int64(len(self.Values))), nil
	case "push":
		return NewValueNativeFunction("push", 1, func(_ Executor, _ errors.Span, args ...Value) (Value, *RuntimeError) {
			self.Values = append(self.Values, args[0])
			return NewValueNil(), nil
		}), nil
	case "pop":
		return NewValueNativeFunction("pop", 0, func(_ Executor, _ errors.Span, _ ...Value) (Value, *RuntimeError) {
			length := len(self.Values)
			// popping from an empty array yields nil
			if length == 0 {
				return NewValueNil(), nil
			}
			last := self.Values[length-1]
			self.Values = self.Values[:length-1]
			return last, nil
		}), nil
	case "insert":
		return NewValueNativeFunction("insert", 2, func(_ Executor, callSpan errors.Span, args ...Value) (Value, *RuntimeError) {
			// inserting directly after the last element is allowed
			idx, err := self.index(args[0], len(self.Values)+1, callSpan)
			if err != nil {
				return nil, err
			}
			self.Values = append(self.Values, nil)
			copy(self.Values[idx+1:], self.Values[idx:])
			self.Values[idx] = args[1]
			return NewValueNil(), nil
		}), nil
	default:
		return nil, NewUndefinedPropertyError(span, name)
	}
}

func NewValueArray(values []Value) *ValueArray {
	return &ValueArray{Values: values}
}
