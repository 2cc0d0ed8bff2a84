package value

import (
	"fmt"

	"github.com/smarthome-go/lox/lox/errors"
)

type ValueInstance struct {
	Class  *ValueClass
	Fields map[string]Value
}

func (_ *ValueInstance) Kind() ValueKind { return InstanceValueKind }

func (self *ValueInstance) Display() string {
	return fmt.Sprintf("<%s instance>", self.Class.NameInternal)
}

func (self *ValueInstance) IsEqual(other Value) bool {
	otherInstance, ok := other.(*ValueInstance)
	return ok && otherInstance == self
}

// Resolves `instance.name`: fields first, then methods and getters of the class and its ancestors
func (self *ValueInstance) Get(runtime Runtime, name string, span errors.Span) (Value, *RuntimeError) {
	if field, found := self.Fields[name]; found {
		return field, nil
	}

	member, found, err := self.Class.BindMember(runtime, self, name, span)
	if err != nil {
		return nil, err
	}
	if found {
		return member, nil
	}

	return nil, NewUndefinedPropertyError(span, name)
}

func (self *ValueInstance) Set(name string, value Value) {
	self.Fields[name] = value
}

func NewValueInstance(class *ValueClass) *ValueInstance {
	return &ValueInstance{
		Class:  class,
		Fields: make(map[string]Value),
	}
}
